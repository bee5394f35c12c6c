package ansimate

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/wbrown/ansimate/imageutil"
)

// Braille cell footprint in pixels.
const (
	brailleCellW = 2
	brailleCellH = 4
)

// Color boost applied to lit-dot averages. Sparse dot patterns read
// dimmer than their pixel colors; the boost compensates.
const (
	brailleSaturationBoost = 1.25
	brailleLightnessBoost  = 1.15
)

// dotSampleOffsets are the 13 sub-pixel probe offsets around a dot
// center: the center, a 4-point inner ring, and an 8-point outer ring.
var dotSampleOffsets = [13][2]float64{
	{0, 0},
	{0.25, 0}, {-0.25, 0}, {0, 0.25}, {0, -0.25},
	{0.5, 0}, {-0.5, 0}, {0, 0.5}, {0, -0.5},
	{0.354, 0.354}, {-0.354, 0.354}, {0.354, -0.354}, {-0.354, -0.354},
}

// renderBraille runs the 2x4 dot pipeline: resample, gamma, Otsu
// threshold, Atkinson diffusion, per-dot coverage sampling, pattern
// matching, and hybrid coloring from lit dots only.
func renderBraille(img *imageutil.RGBAImage, o *RenderOptions) *Frame {
	wc, hc := ResolveGrid(img.Width(), img.Height(), ModeBraille, o)
	if wc == 0 || hc == 0 {
		return NewFrame(0, 0)
	}

	pxW, pxH := wc*brailleCellW, hc*brailleCellH
	resized := imageutil.Resize(img, pxW, pxH, imageutil.InterpolationArea)

	bright := imageutil.ToBrightnessField(resized)
	if o.Invert {
		imageutil.Invert(bright)
	}
	imageutil.ApplyGamma(bright, o.Gamma)

	threshold := imageutil.OtsuThreshold(bright)
	imageutil.AtkinsonDither(bright, threshold)

	frame := NewFrame(wc, hc)
	imageutil.ParallelRows(hc, func(y0, y1 int) {
		for cy := y0; cy < y1; cy++ {
			for cx := 0; cx < wc; cx++ {
				frame.set(cx, cy, brailleCell(resized, bright, cx, cy, o))
			}
		}
	})
	return frame
}

func brailleCell(resized *imageutil.RGBAImage, dithered *imageutil.Field, cx, cy int, o *RenderOptions) Cell {
	x0 := cx * brailleCellW
	y0 := cy * brailleCellH

	var dots DotVec
	for i := 0; i < brailleDotCount; i++ {
		px := float64(x0+i%brailleCellW) + 0.5
		py := float64(y0+i/brailleCellW) + 0.5
		dots[i] = dotCoverage(dithered, px, py)
	}

	code := MatchBraillePattern(dots)
	if code == 0 {
		return Cell{Rune: ' '}
	}

	cell := Cell{Rune: BrailleRune(code)}
	if o.UseColor {
		c := litDotColor(resized, x0, y0, code)
		cell.FG = &c
	}
	return cell
}

// dotCoverage averages the 13 probe points around a dot center. On a
// binarized field the result is the fraction of lit probes.
func dotCoverage(f *imageutil.Field, cx, cy float64) float64 {
	var sum float64
	for _, off := range dotSampleOffsets {
		sum += f.At(int(cx+off[0]), int(cy+off[1]))
	}
	v := sum / float64(len(dotSampleOffsets))
	return clamp01(v)
}

// litDotColor averages the source colors of only the pixels whose dot
// the chosen pattern lights, then boosts saturation and lightness.
func litDotColor(img *imageutil.RGBAImage, x0, y0 int, code uint8) RGB {
	var sumR, sumG, sumB, count int
	for i := 0; i < brailleDotCount; i++ {
		if uint16(code)&brailleDotBit[i] == 0 {
			continue
		}
		x := x0 + i%brailleCellW
		y := y0 + i/brailleCellW
		if x >= img.Width() || y >= img.Height() {
			continue
		}
		c := img.GetRGB(x, y)
		sumR += int(c.R)
		sumG += int(c.G)
		sumB += int(c.B)
		count++
	}
	if count == 0 {
		return RGB{}
	}
	avg := RGB{
		R: uint8(sumR / count),
		G: uint8(sumG / count),
		B: uint8(sumB / count),
	}
	return boostColor(avg)
}

// boostColor scales saturation and lightness in HSL space, both
// capped at 1.
func boostColor(c RGB) RGB {
	h, s, l := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hsl()

	s *= brailleSaturationBoost
	if s > 1 {
		s = 1
	}
	l *= brailleLightnessBoost
	if l > 1 {
		l = 1
	}

	out := colorful.Hsl(h, s, l).Clamped()
	r, g, b := out.RGB255()
	return RGB{R: r, G: g, B: b}
}
