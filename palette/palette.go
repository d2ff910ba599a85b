/*
Package palette validates SNES palette data for use on the DS.

Both machines store colors as BGR555: five bits each of blue, green and
red in bits 0-4, 5-9 and 10-14, with bit 15 unused and expected to be
zero. The encodings are identical so conversion is validation plus
pass-through.
*/
package palette

import (
	"encoding/binary"
	"errors"
)

const (
	// EntrySize is the byte size of one color.
	EntrySize = 2

	// ConventionalSize is the usual full palette: 256 colors.
	ConventionalSize = 512
)

// ErrOddLength is returned when palette data is not a whole number of
// colors.
var ErrOddLength = errors.New("palette: data must be a multiple of 2 bytes")

// Stats describes what Convert found.
type Stats struct {
	// Colors is the number of entries in the palette.
	Colors int

	// Reserved is the number of entries with bit 15 set, which the
	// format reserves as zero.
	Reserved int
}

// Unconventional reports whether the palette deviates from the 256 color
// convention.
func (s Stats) Unconventional() bool {
	return s.Colors != ConventionalSize/EntrySize
}

// Convert validates data as BGR555 color entries and returns it
// unchanged; the source and target encodings are bit-identical. Reserved
// bit violations and unconventional sizes are reported through the stats,
// not errors.
func Convert(data []byte) ([]byte, Stats, error) {
	var s Stats

	if len(data)%EntrySize != 0 {
		return nil, s, ErrOddLength
	}

	s.Colors = len(data) / EntrySize
	for i := 0; i < s.Colors; i++ {
		if binary.LittleEndian.Uint16(data[i*EntrySize:])&0x8000 != 0 {
			s.Reserved++
		}
	}

	return data, s, nil
}
