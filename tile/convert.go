package tile

// Result reports what a whole buffer conversion did.
type Result struct {
	// Tiles is the number of complete tiles converted.
	Tiles int

	// Remainder is the number of trailing bytes skipped because they
	// do not fill a whole chunk.
	Remainder int
}

// ConvertAll transcodes a buffer of planar tiles chunk by chunk. chunk
// defaults to Size when zero or negative; only 4bpp chunks of exactly
// Size bytes are convertible today. A trailing partial chunk is skipped
// and reported in the result rather than failing the conversion; any
// other conversion error aborts with the tiles converted so far.
func ConvertAll(data []byte, chunk int) ([]byte, Result, error) {
	if chunk <= 0 {
		chunk = Size
	}

	var result Result
	out := make([]byte, 0, len(data))

	for offset := 0; offset < len(data); offset += chunk {
		if offset+chunk > len(data) {
			result.Remainder = len(data) - offset
			break
		}

		converted, err := Convert(data[offset : offset+chunk])
		if err != nil {
			return out, result, err
		}
		out = append(out, converted...)
		result.Tiles++
	}

	return out, result, nil
}

// RevertAll is the inverse of ConvertAll, transcoding DS linear tiles
// back into planar format with the same partial chunk handling.
func RevertAll(data []byte, chunk int) ([]byte, Result, error) {
	if chunk <= 0 {
		chunk = Size
	}

	var result Result
	out := make([]byte, 0, len(data))

	for offset := 0; offset < len(data); offset += chunk {
		if offset+chunk > len(data) {
			result.Remainder = len(data) - offset
			break
		}

		reverted, err := Revert(data[offset : offset+chunk])
		if err != nil {
			return out, result, err
		}
		out = append(out, reverted...)
		result.Tiles++
	}

	return out, result, nil
}
