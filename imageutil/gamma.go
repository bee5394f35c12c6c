package imageutil

import "math"

// ApplyGamma raises every field value to the given exponent in place
// and returns the field. Gamma 1.0 is the identity; values above 1
// darken midtones, values below 1 lift them.
func ApplyGamma(f *Field, gamma float64) *Field {
	if gamma == 1.0 {
		return f
	}
	ParallelRows(f.H, func(y0, y1 int) {
		for i := y0 * f.W; i < y1*f.W; i++ {
			v := f.Pix[i]
			if v <= 0 {
				f.Pix[i] = 0
				continue
			}
			f.Pix[i] = math.Pow(v, gamma)
		}
	})
	return f
}

// Invert flips every field value around 1 in place and returns the
// field. Assumes values in [0, 1].
func Invert(f *Field) *Field {
	for i := range f.Pix {
		f.Pix[i] = 1.0 - f.Pix[i]
	}
	return f
}
