package imageutil

// OtsuThreshold computes a global binarization threshold for a [0, 1]
// brightness field using Otsu's method: build a 256-bin histogram and
// pick the split that maximizes the between-class variance
//
//	σ²(t) = ω0(t)·ω1(t)·(μ0(t)−μ1(t))²
//
// The returned threshold is in [0, 1]. A uniform bright field
// (single-valued histogram) yields a threshold below every pixel, so
// the whole field binarizes to the lit class.
func OtsuThreshold(f *Field) float64 {
	var hist [256]int
	total := 0
	for _, v := range f.Pix {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		hist[int(v*255.0+0.5)]++
		total++
	}
	if total == 0 {
		return 0
	}

	var sumAll float64
	for i, n := range hist {
		sumAll += float64(i) * float64(n)
	}

	var sumBelow float64
	var weightBelow int
	bestT := 0
	bestVariance := -1.0

	for t := 0; t < 256; t++ {
		weightBelow += hist[t]
		if weightBelow == 0 {
			continue
		}
		weightAbove := total - weightBelow
		if weightAbove == 0 {
			break
		}
		sumBelow += float64(t) * float64(hist[t])

		mean0 := sumBelow / float64(weightBelow)
		mean1 := (sumAll - sumBelow) / float64(weightAbove)
		diff := mean0 - mean1
		variance := float64(weightBelow) * float64(weightAbove) * diff * diff

		if variance > bestVariance {
			bestVariance = variance
			bestT = t
		}
	}

	// The split bin itself belongs to the dark class; returning the
	// midpoint above it keeps Binarize's >= comparison consistent.
	return (float64(bestT) + 0.5) / 255.0
}

// Binarize snaps every field value to 0 or 1 against the threshold,
// in place, and returns the field. Pixels at or above the threshold
// become 1.
func Binarize(f *Field, threshold float64) *Field {
	for i, v := range f.Pix {
		if v >= threshold {
			f.Pix[i] = 1
		} else {
			f.Pix[i] = 0
		}
	}
	return f
}
