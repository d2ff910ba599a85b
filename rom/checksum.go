package rom

import "encoding/binary"

// Internal header locations within a LoROM image.
const (
	titleOffset      = 0x7fc0
	titleLength      = 21
	complementOffset = 0x7fdc
	checksumOffset   = 0x7fde
)

func sum16(data []byte) uint16 {
	var s uint16
	for _, b := range data {
		s += uint16(b)
	}
	return s
}

// Checksum computes the internal header checksum: the low 16 bits of the
// sum of every image byte. Images that are not a power of two in size are
// summed the way the boot code expects, with the trailing chunk repeated
// until the total reaches the next power of two; for the usual 3 MB image
// that means the first 2 MB once and the final 1 MB twice.
func Checksum(data []byte) uint16 {
	size := 1
	for size < len(data) {
		size <<= 1
	}
	if size == len(data) {
		return sum16(data)
	}

	half := size >> 1
	if half >= len(data) {
		// Undersized or empty image, nothing sensible to mirror.
		return sum16(data)
	}

	s := sum16(data[:half])
	rest := data[half:]
	for n := half; n > 0; n -= len(rest) {
		s += sum16(rest)
	}

	return s
}

// Verify checks the image checksum against the checksum and complement
// pair in the internal header.
func (r *ROM) Verify() bool {
	if len(r.Data) < checksumOffset+2 {
		return false
	}

	sum := Checksum(r.Data)
	stored := binary.LittleEndian.Uint16(r.Data[checksumOffset:])
	complement := binary.LittleEndian.Uint16(r.Data[complementOffset:])

	return sum == stored && sum^0xffff == complement
}
