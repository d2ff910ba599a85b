package preview

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// Encode converts m into DS linear tiles plus one 16 color BGR555
// palette, left to right and top to bottom. The image is quantized first
// when it uses more than 16 colors; the palette is padded out to 16
// entries with black. The image dimensions must be multiples of 8.
func Encode(m image.Image) (tiles, palette []byte, err error) {
	b := m.Bounds()
	if b.Dx()%tileWidth != 0 || b.Dy()%tileHeight != 0 || b.Dx() == 0 || b.Dy() == 0 {
		return nil, nil, errDimensions
	}

	pm, _ := m.(*image.Paletted)
	if pm == nil {
		if cp, ok := m.ColorModel().(color.Palette); ok {
			pm = image.NewPaletted(b, cp)
			for y := b.Min.Y; y < b.Max.Y; y++ {
				for x := b.Min.X; x < b.Max.X; x++ {
					pm.Set(x, y, cp.Convert(m.At(x, y)))
				}
			}
		}
	}

	if pm == nil || len(pm.Palette) > colorsPerPalette {
		q := quantize.MedianCutQuantizer{}
		pm = image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colorsPerPalette), m))
		draw.Draw(pm, b, m, b.Min, draw.Src)
	}

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	tiles = make([]byte, 0, b.Dx()*b.Dy()>>1)
	for ty := 0; ty < b.Dy()/tileHeight; ty++ {
		for tx := 0; tx < b.Dx()/tileWidth; tx++ {
			for y := 0; y < tileHeight; y++ {
				for x := 0; x < tileWidth>>1; x++ {
					dx := tx*tileWidth + x<<1
					dy := ty*tileHeight + y

					tiles = append(tiles, pm.ColorIndexAt(dx, dy)&0x0f|pm.ColorIndexAt(dx+1, dy)&0x0f<<4)
				}
			}
		}
	}

	palette = make([]byte, paletteBytes)
	for i, c := range pm.Palette {
		if i == colorsPerPalette {
			break
		}
		binary.LittleEndian.PutUint16(palette[i*2:], packColor(c))
	}

	return tiles, palette, nil
}
