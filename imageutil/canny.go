package imageutil

import "math"

// Canny performs Canny edge detection on a [0, 1] brightness field and
// returns a boolean edge map of the same dimensions. Thresholds are in
// field units; typical values are 0.2 and 0.6.
func Canny(f *Field, lowThreshold, highThreshold float64) []bool {
	width, height := f.W, f.H
	if width == 0 || height == 0 {
		return nil
	}

	blurred := ConvolveField(f, gaussianKernel5x5())

	sobelX := NewKernel([][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	})
	sobelY := NewKernel([][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	})
	gx := ConvolveField(blurred, sobelX)
	gy := ConvolveField(blurred, sobelY)

	magnitude := NewField(width, height)
	direction := NewField(width, height)
	for i := range magnitude.Pix {
		magnitude.Pix[i] = math.Hypot(gx.Pix[i], gy.Pix[i])
		direction.Pix[i] = math.Atan2(gy.Pix[i], gx.Pix[i])
	}

	suppressed := nonMaxSuppression(magnitude, direction)
	strong, weak := doubleThreshold(suppressed, lowThreshold, highThreshold)
	return hysteresis(strong, weak, width, height)
}

// CannyDefault performs Canny edge detection with the default
// thresholds (0.2, 0.6).
func CannyDefault(f *Field) []bool {
	return Canny(f, 0.2, 0.6)
}

// nonMaxSuppression keeps only pixels that are local maxima along the
// gradient direction, thinning edges to single-pixel width.
func nonMaxSuppression(magnitude, direction *Field) *Field {
	width, height := magnitude.W, magnitude.H
	suppressed := NewField(width, height)

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			mag := magnitude.Pix[y*width+x]

			// Quantize the angle to 0/45/90/135 degrees.
			angle := direction.Pix[y*width+x] * 180.0 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var q, r float64
			switch {
			case angle < 22.5 || angle >= 157.5:
				q = magnitude.Pix[y*width+x+1]
				r = magnitude.Pix[y*width+x-1]
			case angle < 67.5:
				q = magnitude.Pix[(y+1)*width+x+1]
				r = magnitude.Pix[(y-1)*width+x-1]
			case angle < 112.5:
				q = magnitude.Pix[(y+1)*width+x]
				r = magnitude.Pix[(y-1)*width+x]
			default:
				q = magnitude.Pix[(y+1)*width+x-1]
				r = magnitude.Pix[(y-1)*width+x+1]
			}

			if mag >= q && mag >= r {
				suppressed.Pix[y*width+x] = mag
			}
		}
	}

	return suppressed
}

// doubleThreshold classifies suppressed magnitudes as strong or weak.
func doubleThreshold(suppressed *Field, low, high float64) (strong, weak []bool) {
	n := len(suppressed.Pix)
	strong = make([]bool, n)
	weak = make([]bool, n)
	for i, v := range suppressed.Pix {
		if v >= high {
			strong[i] = true
		} else if v >= low {
			weak[i] = true
		}
	}
	return strong, weak
}

// hysteresis keeps weak edges only when 8-connected to a strong edge,
// iterating until the edge set stops growing.
func hysteresis(strong, weak []bool, width, height int) []bool {
	edges := make([]bool, width*height)
	copy(edges, strong)

	changed := true
	for changed {
		changed = false
		for y := 1; y < height-1; y++ {
			for x := 1; x < width-1; x++ {
				i := y*width + x
				if !weak[i] || edges[i] {
					continue
				}
				for dy := -1; dy <= 1 && !edges[i]; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if edges[(y+dy)*width+(x+dx)] {
							edges[i] = true
							changed = true
							break
						}
					}
				}
			}
		}
	}

	return edges
}
