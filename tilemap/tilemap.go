/*
Package tilemap converts SNES BG tilemap entries into the DS BG map
format.

A SNES entry is 16 bits little-endian: the low byte holds the low eight
bits of the tile number and the high byte packs the two high tile bits
(1-0), the palette (4-2), priority (5), horizontal flip (6) and vertical
flip (7). A DS entry carries the tile index in bits 0-9, horizontal flip
in bit 10, vertical flip in bit 11 and the palette in bits 12-15. The DS
has no per-tile priority so that bit is dropped.
*/
package tilemap

import (
	"encoding/binary"
	"errors"
)

// EntrySize is the byte size of one map cell in either format.
const EntrySize = 2

// MaxTile is the highest tile index the DS can address in a BG map entry.
const MaxTile = 0x3ff

// ErrOddLength is returned when tilemap data is not a whole number of
// cells.
var ErrOddLength = errors.New("tilemap: data must be a multiple of 2 bytes")

// Cell is one decoded map entry.
type Cell struct {
	Tile    int
	HFlip   bool
	VFlip   bool
	Palette int
}

// DecodeSNES unpacks a SNES BG entry, discarding the priority bit. The
// second return reports whether the tile number exceeded MaxTile and was
// truncated to fit.
func DecodeSNES(entry uint16) (Cell, bool) {
	c := Cell{
		Tile:    int(entry & 0x3ff),
		HFlip:   entry&0x4000 != 0,
		VFlip:   entry&0x8000 != 0,
		Palette: int(entry >> 10 & 0x07),
	}

	if c.Tile > MaxTile {
		c.Tile &= MaxTile
		return c, true
	}

	return c, false
}

// EncodeDS packs the cell into a DS BG map entry.
func (c Cell) EncodeDS() uint16 {
	e := uint16(c.Tile) & MaxTile
	if c.HFlip {
		e |= 1 << 10
	}
	if c.VFlip {
		e |= 1 << 11
	}
	return e | uint16(c.Palette)&0x0f<<12
}

// Stats describes what Convert found.
type Stats struct {
	// Entries is the number of cells converted.
	Entries int

	// Clamped holds the indices of entries whose tile number was
	// truncated to MaxTile bits.
	Clamped []int
}

// Convert remaps a buffer of little-endian SNES entries into DS entries.
// Overflowing tile numbers are clamped and reported through the stats
// rather than failing the conversion.
func Convert(data []byte) ([]byte, Stats, error) {
	var s Stats

	if len(data)%EntrySize != 0 {
		return nil, s, ErrOddLength
	}

	s.Entries = len(data) / EntrySize
	out := make([]byte, len(data))

	for i := 0; i < s.Entries; i++ {
		cell, clamped := DecodeSNES(binary.LittleEndian.Uint16(data[i*EntrySize:]))
		if clamped {
			s.Clamped = append(s.Clamped, i)
		}
		binary.LittleEndian.PutUint16(out[i*EntrySize:], cell.EncodeDS())
	}

	return out, s, nil
}
