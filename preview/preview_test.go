package preview

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayscale() []byte {
	palette := make([]byte, paletteBytes)
	for i := 0; i < colorsPerPalette; i++ {
		v := uint16(i*2)<<10 | uint16(i*2)<<5 | uint16(i*2)
		palette[i*2] = byte(v)
		palette[i*2+1] = byte(v >> 8)
	}
	return palette
}

func TestPalette(t *testing.T) {
	p, err := Palette(grayscale())
	require.NoError(t, err)
	require.Len(t, p, colorsPerPalette)

	assert.Equal(t, color.NRGBA{A: 0xff}, p[0])
	assert.Equal(t, color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}, p[15])

	_, err = Palette(make([]byte, 30))
	assert.Equal(t, errPalette, err)
}

func TestRender(t *testing.T) {
	// One tile: pixel column 0 is color 1, the rest color 2.
	tiles := make([]byte, tileBytes)
	for y := 0; y < tileHeight; y++ {
		tiles[y*4] = 0x21
		tiles[y*4+1] = 0x22
		tiles[y*4+2] = 0x22
		tiles[y*4+3] = 0x22
	}

	m, err := Render(tiles, grayscale())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, tileWidth, tileHeight), m.Bounds())

	assert.Equal(t, uint8(1), m.ColorIndexAt(0, 0))
	assert.Equal(t, uint8(2), m.ColorIndexAt(1, 0))
	assert.Equal(t, uint8(2), m.ColorIndexAt(7, 7))
}

func TestRenderLayout(t *testing.T) {
	// 33 tiles span three rows of sixteen.
	tiles := make([]byte, tileBytes*33)

	m, err := Render(tiles, grayscale())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, tilesPerRow*tileWidth, 3*tileHeight), m.Bounds())
}

func TestRenderNoTiles(t *testing.T) {
	_, err := Render(make([]byte, tileBytes-1), grayscale())
	assert.Equal(t, errNoTiles, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	tiles := make([]byte, tileBytes*2)
	for i := range tiles {
		tiles[i] = byte(i) & 0x77
	}

	m, err := Render(tiles, grayscale())
	require.NoError(t, err)

	encoded, palette, err := Encode(m)
	require.NoError(t, err)
	assert.Equal(t, tiles, encoded)
	assert.Equal(t, grayscale(), palette)
}

func TestEncodeDimensions(t *testing.T) {
	_, _, err := Encode(image.NewRGBA(image.Rect(0, 0, 12, 8)))
	assert.Equal(t, errDimensions, err)
}

func TestEncodeQuantizes(t *testing.T) {
	// A gradient with more than 16 colors has to be quantized down.
	m := image.NewRGBA(image.Rect(0, 0, 64, 8))
	for x := 0; x < 64; x++ {
		for y := 0; y < 8; y++ {
			m.Set(x, y, color.NRGBA{R: uint8(x * 4), G: 0x80, B: uint8(255 - x*4), A: 0xff})
		}
	}

	tiles, palette, err := Encode(m)
	require.NoError(t, err)
	assert.Len(t, tiles, 64*8/2)
	assert.Len(t, palette, paletteBytes)

	for _, b := range tiles {
		assert.LessOrEqual(t, b&0x0f, byte(15))
		assert.LessOrEqual(t, b>>4, byte(15))
	}
}
