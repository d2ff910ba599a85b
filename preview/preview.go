/*
Package preview renders converted DS tile data for inspection and encodes
images back into it.

A preview composes 4bpp linear tiles with one 16 color BGR555 palette
into a paletted image, sixteen tiles per row. The reverse direction
encodes an arbitrary image into tile and palette data, quantizing down to
16 colors when the source uses more.
*/
package preview

import (
	"encoding/binary"
	"errors"
	"image/color"
)

const (
	tileWidth        = 8
	tileHeight       = tileWidth
	tileBytes        = 32
	colorsPerPalette = 16
	paletteBytes     = colorsPerPalette * 2
	tilesPerRow      = 16
)

var (
	errNoTiles    = errors.New("preview: no complete tile data")
	errPalette    = errors.New("preview: palette must be 32 bytes")
	errDimensions = errors.New("preview: image dimensions must be multiples of 8")
)

// Palette converts 16 BGR555 colors into a color.Palette.
func Palette(data []byte) (color.Palette, error) {
	if len(data) != paletteBytes {
		return nil, errPalette
	}

	p := make(color.Palette, colorsPerPalette)
	for i := range p {
		v := binary.LittleEndian.Uint16(data[i*2:])
		p[i] = color.NRGBA{
			R: uint8(v>>10&0x1f) << 3,
			G: uint8(v>>5&0x1f) << 3,
			B: uint8(v&0x1f) << 3,
			A: 0xff,
		}
	}

	return p, nil
}

func packColor(c color.Color) uint16 {
	r, g, b, _ := c.RGBA()
	return uint16(r>>11)<<10 | uint16(g>>11)<<5 | uint16(b>>11)
}
