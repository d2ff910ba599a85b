/*
Package tile converts 8 by 8 pixel 4bpp tiles between the SNES planar
format and the DS linear format.

A SNES tile stores each row as four bitplane bytes: planes 0 and 1
interleaved through the first 16 bytes, planes 2 and 3 through the second
16. A DS tile stores two pixels per byte, row major, with the even column
in the low nibble. Both formats are 32 bytes per tile, 16 colors per
pixel.
*/
package tile

import "errors"

const (
	// Size is the byte size of one 4bpp tile in either format.
	Size = 32

	tileWidth  = 8
	tileHeight = tileWidth
)

// ErrBlockSize is returned when a single tile conversion is not given
// exactly Size bytes.
var ErrBlockSize = errors.New("tile: block must be 32 bytes")

// Convert transcodes one SNES planar tile into DS linear format.
func Convert(block []byte) ([]byte, error) {
	if len(block) != Size {
		return nil, ErrBlockSize
	}

	out := make([]byte, Size)

	for y := 0; y < tileHeight; y++ {
		p0 := block[y*2]
		p1 := block[y*2+1]
		p2 := block[y*2+16]
		p3 := block[y*2+17]

		for x := 0; x < tileWidth; x++ {
			// Bit 7 is the leftmost pixel.
			shift := uint(7 - x)
			pixel := p0>>shift&1 | p1>>shift&1<<1 | p2>>shift&1<<2 | p3>>shift&1<<3

			if x&1 == 0 {
				out[y*4+x>>1] = pixel
			} else {
				out[y*4+x>>1] |= pixel << 4
			}
		}
	}

	return out, nil
}

// Revert transcodes one DS linear tile back into SNES planar format. It
// is the inverse of Convert.
func Revert(block []byte) ([]byte, error) {
	if len(block) != Size {
		return nil, ErrBlockSize
	}

	out := make([]byte, Size)

	for y := 0; y < tileHeight; y++ {
		for x := 0; x < tileWidth; x++ {
			pixel := block[y*4+x>>1]
			if x&1 == 0 {
				pixel &= 0x0f
			} else {
				pixel >>= 4
			}

			bit := byte(1) << uint(7-x)
			if pixel&1 != 0 {
				out[y*2] |= bit
			}
			if pixel&2 != 0 {
				out[y*2+1] |= bit
			}
			if pixel&4 != 0 {
				out[y*2+16] |= bit
			}
			if pixel&8 != 0 {
				out[y*2+17] |= bit
			}
		}
	}

	return out, nil
}
