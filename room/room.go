/*
Package room locates room headers inside the level data bank.

Room headers are not length prefixed and are followed by a variable
amount of state entry data this package does not parse, so discovery is
heuristic: a header is any position whose dimension and area bytes look
plausible, and after each hit the scanner searches forward a byte at a
time for the next plausible position. The search can drift into unrelated
data that happens to satisfy the predicate; that is a limitation of the
format, not of the scanner.
*/
package room

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Field offsets within the fixed header window.
const (
	offIndex      = 0x00
	offArea       = 0x01
	offMapX       = 0x02
	offMapY       = 0x03
	offWidth      = 0x04
	offHeight     = 0x05
	offUpScroll   = 0x06
	offDownScroll = 0x07
	offGfxFlags   = 0x08
	offDoorList   = 0x09

	// HeaderSize is the fixed minimum size of a room header; state
	// entries of variable length follow it.
	HeaderSize = 0x0b
)

// DoorEntrySize is the size of each entry in the door list a header's
// DoorPtr refers to. The list itself lives in another bank and is not
// followed here.
const DoorEntrySize = 0x10

// Header is the fixed leading portion of a room record.
type Header struct {
	// Offset is the file offset the header was found at.
	Offset int

	Index      int
	Area       int
	MapX, MapY int

	// Width and Height are in screens.
	Width, Height int

	UpScroll, DownScroll int
	GfxFlags             int

	// DoorPtr is the in-bank pointer to the room's door list.
	DoorPtr uint16
}

// Parse decodes the fixed header window at the start of b, which must be
// at least HeaderSize bytes.
func Parse(b []byte) Header {
	return Header{
		Index:      int(b[offIndex]),
		Area:       int(b[offArea]),
		MapX:       int(b[offMapX]),
		MapY:       int(b[offMapY]),
		Width:      int(b[offWidth]),
		Height:     int(b[offHeight]),
		UpScroll:   int(b[offUpScroll]),
		DownScroll: int(b[offDownScroll]),
		GfxFlags:   int(b[offGfxFlags]),
		DoorPtr:    binary.LittleEndian.Uint16(b[offDoorList:]),
	}
}

// Predicate decides whether a parsed window is a plausible room header.
// Replacing it swaps the discovery heuristic without changing the
// scanner's control flow.
type Predicate func(Header) bool

// Plausible is the default predicate: dimensions within the 15 by 15
// screen bound and a known area.
func Plausible(h Header) bool {
	return h.Width >= 1 && h.Width <= 15 &&
		h.Height >= 1 && h.Height <= 15 &&
		h.Area <= 7
}

// WriteIndex writes the human readable room index to w, one line per
// header in discovery order.
func WriteIndex(w io.Writer, rooms []Header) error {
	if _, err := fmt.Fprintf(w, "Total rooms found: %d\n\n", len(rooms)); err != nil {
		return err
	}

	for _, h := range rooms {
		if _, err := fmt.Fprintf(w, "Room at 0x%06X: area=%d idx=%d size=%dx%d map=(%d,%d) doors=0x%04X\n",
			h.Offset, h.Area, h.Index, h.Width, h.Height, h.MapX, h.MapY, h.DoorPtr); err != nil {
			return err
		}
	}

	return nil
}
