package imageutil

// atkinsonOffsets are the six unvisited neighbors that receive 1/8 of
// the quantization error each. Only 6/8 of the error propagates; the
// rest is dropped, which keeps edges crisp at 1-bit depth.
var atkinsonOffsets = [6][2]int{
	{1, 0}, {2, 0},
	{-1, 1}, {0, 1}, {1, 1},
	{0, 2},
}

// AtkinsonDither binarizes a [0, 1] field against the threshold with
// Atkinson error diffusion, in place, and returns the field. Pixels
// are scanned row-major; each pixel snaps to 0 or 1 and diffuses
// error/8 to the six forward neighbors.
//
// The scan is inherently sequential: every pixel depends on error
// diffused from earlier pixels.
func AtkinsonDither(f *Field, threshold float64) *Field {
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			old := f.Pix[y*f.W+x]
			var quantized float64
			if old >= threshold {
				quantized = 1
			}
			f.Pix[y*f.W+x] = quantized

			err := (old - quantized) / 8.0
			if err == 0 {
				continue
			}
			for _, off := range atkinsonOffsets {
				nx, ny := x+off[0], y+off[1]
				if nx < 0 || nx >= f.W || ny >= f.H {
					continue
				}
				f.Pix[ny*f.W+nx] += err
			}
		}
	}
	return f
}
