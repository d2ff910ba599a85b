package preview

import "image"

// Render composes DS linear tiles into a paletted image, tilesPerRow
// tiles wide. A trailing partial tile is ignored; unused cells in the
// final row stay at color zero.
func Render(tiles, palette []byte) (*image.Paletted, error) {
	p, err := Palette(palette)
	if err != nil {
		return nil, err
	}

	n := len(tiles) / tileBytes
	if n == 0 {
		return nil, errNoTiles
	}

	across := tilesPerRow
	if n < across {
		across = n
	}
	rows := (n + tilesPerRow - 1) / tilesPerRow

	m := image.NewPaletted(image.Rect(0, 0, across*tileWidth, rows*tileHeight), p)

	for t := 0; t < n; t++ {
		tx := t % tilesPerRow
		ty := t / tilesPerRow
		for y := 0; y < tileHeight; y++ {
			for x := 0; x < tileWidth>>1; x++ {
				b := tiles[t*tileBytes+y*(tileWidth>>1)+x]

				m.SetColorIndex(tx*tileWidth+x<<1, ty*tileHeight+y, b&0x0f)
				m.SetColorIndex(tx*tileWidth+x<<1+1, ty*tileHeight+y, b>>4)
			}
		}
	}

	return m, nil
}
