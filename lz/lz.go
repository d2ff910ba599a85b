/*
Package lz implements a decompressor for the LC_LZ2 format used by Super
Metroid for tileset and level data.

Each command starts with a header byte; bits 7-5 hold the command and bits
4-0 the length minus one. Command 7 is an extended-length escape: the real
command moves to bits 4-2 and the length becomes a 10-bit value built from
bits 1-0 and the byte that follows, so lengths run to 1024 instead of 32.
A header byte of $FF ends the stream. There is no length prefix and no
encoder here; the code reads legacy data only.
*/
package lz

const (
	cmdCopy = iota
	cmdByteFill
	cmdWordFill
	cmdIncFill
	cmdBackRef
)

const (
	cmdExtend = 7
	sentinel  = 0xff
)

// DefaultMax bounds output when the caller has no better figure. The
// format is not self-terminating on malformed input so the cap is the
// only guard against runaway streams.
const DefaultMax = 0x10000

// Decompress decodes the stream within data starting at offset. Decoding
// stops at the $FF sentinel, at an unknown command, at the end of data or
// once the output reaches max bytes; the legacy format leaves malformed
// input behavior undefined so none of these are errors. Back references
// read the output produced so far, including bytes appended earlier by
// the same command, which is what makes overlapping copies repeat their
// pattern.
func Decompress(data []byte, offset, max int) []byte {
	var out []byte
	pos := offset

	for pos < len(data) && len(out) < max {
		header := data[pos]
		pos++

		if header == sentinel {
			break
		}

		command := int(header >> 5 & 0x07)
		length := int(header&0x1f) + 1

		if command == cmdExtend {
			if pos >= len(data) {
				break
			}
			command = int(header >> 2 & 0x07)
			length = int(header&0x03)<<8 + int(data[pos]) + 1
			pos++
		}

		switch command {
		case cmdCopy:
			if pos+length > len(data) {
				length = len(data) - pos
			}
			out = append(out, data[pos:pos+length]...)
			pos += length
		case cmdByteFill:
			if pos >= len(data) {
				return out
			}
			b := data[pos]
			pos++
			for i := 0; i < length; i++ {
				out = append(out, b)
			}
		case cmdWordFill:
			if pos+2 > len(data) {
				return out
			}
			a, b := data[pos], data[pos+1]
			pos += 2
			for i := 0; i < length; i++ {
				if i&1 == 0 {
					out = append(out, a)
				} else {
					out = append(out, b)
				}
			}
		case cmdIncFill:
			if pos >= len(data) {
				return out
			}
			b := data[pos]
			pos++
			for i := 0; i < length; i++ {
				out = append(out, b+byte(i))
			}
		case cmdBackRef:
			if pos+2 > len(data) {
				return out
			}
			ref := int(data[pos]) | int(data[pos+1])<<8
			pos += 2
			for i := 0; i < length; i++ {
				if ref+i < len(out) {
					out = append(out, out[ref+i])
				} else {
					// Reference runs past the output; pad
					// rather than fail on a bad stream.
					out = append(out, 0)
				}
			}
		default:
			return out
		}
	}

	return out
}
