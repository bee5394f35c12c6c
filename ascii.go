package ansimate

import (
	"math"

	"github.com/wbrown/ansimate/imageutil"
)

// Supersampling factors for ASCII cell sampling. The grid resolution
// stays one cell per character; the extra pixels give the six sample
// discs sub-cell structure to measure.
const (
	asciiSuperX = 4
	asciiSuperY = 8
)

// renderASCII runs the shape-matching pipeline: resample, gamma,
// per-cell coverage sampling, contrast shaping, directional contrast,
// nearest-glyph lookup, colorization, and background cutoffs.
func renderASCII(img *imageutil.RGBAImage, o *RenderOptions) *Frame {
	wc, hc := ResolveGrid(img.Width(), img.Height(), ModeASCII, o)
	if wc == 0 || hc == 0 {
		return NewFrame(0, 0)
	}

	atlas := GetAtlas(o.Charset())
	resized := imageutil.Resize(img, wc*asciiSuperX, hc*asciiSuperY,
		imageutil.InterpolationArea)

	bright := imageutil.ToBrightnessField(resized)
	if o.Invert {
		imageutil.Invert(bright)
	}
	imageutil.ApplyGamma(bright, o.Gamma)

	var edges []bool
	if o.EdgeDetect {
		edges = imageutil.CannyDefault(bright)
	}

	pts := internalSamplePoints()
	radius := float64(asciiSuperX) / 2.0

	frame := NewFrame(wc, hc)
	imageutil.ParallelRows(hc, func(y0, y1 int) {
		for cy := y0; cy < y1; cy++ {
			for cx := 0; cx < wc; cx++ {
				frame.set(cx, cy, asciiCell(resized, bright, edges,
					atlas, pts, radius, cx, cy, o))
			}
		}
	})
	return frame
}

func asciiCell(
	resized *imageutil.RGBAImage,
	bright *imageutil.Field,
	edges []bool,
	atlas *Atlas,
	pts [ShapeDims][2]float64,
	radius float64,
	cx, cy int,
	o *RenderOptions,
) Cell {
	x0 := float64(cx * asciiSuperX)
	y0 := float64(cy * asciiSuperY)

	meanColor, meanLuma := cellMeanColor(resized,
		cx*asciiSuperX, cy*asciiSuperY, asciiSuperX, asciiSuperY, o.Invert)

	// Background suppression: near-background cells become bare
	// spaces so terminal background shows through.
	if !o.Invert && meanLuma < o.DarkCutoff {
		return Cell{Rune: ' '}
	}
	if o.Invert && meanLuma > o.LightCutoff {
		return Cell{Rune: ' '}
	}

	var vec ShapeVec
	for s := 0; s < ShapeDims; s++ {
		px := x0 + pts[s][0]*asciiSuperX
		py := y0 + pts[s][1]*asciiSuperY
		vec[s] = fieldDiscMean(bright, px, py, radius)
	}

	for s := 0; s < ShapeDims; s++ {
		vec[s] = math.Pow(clamp01(vec[s]), o.Contrast)
	}

	strength := o.DirectionalStrength
	if edges != nil && cellHasEdge(edges, bright.W,
		cx*asciiSuperX, cy*asciiSuperY, asciiSuperX, asciiSuperY) {
		strength *= 2
		if strength > 1 {
			strength = 1
		}
	}
	if strength > 0 {
		for s := 0; s < ShapeDims; s++ {
			off := outerSampleOffsets[outerNeighborFor[s]]
			ex := x0 + off[0]*asciiSuperX
			ey := y0 + off[1]*asciiSuperY
			e := math.Pow(clamp01(fieldDiscMean(bright, ex, ey, radius)), o.Contrast)
			vec[s] = math.Max(vec[s], e)*strength + vec[s]*(1-strength)
		}
	}

	cell := Cell{Rune: atlas.Lookup(vec)}
	if o.UseColor {
		c := meanColor
		cell.FG = &c
	}
	return cell
}

// cellMeanColor averages the cell's pixels. With inverted polarity
// the average weights toward darker pixels, which carry the ink on a
// light terminal.
func cellMeanColor(img *imageutil.RGBAImage, px, py, pw, ph int, invert bool) (RGB, float64) {
	var sumR, sumG, sumB, sumW, sumLuma float64
	var count int
	for y := py; y < py+ph && y < img.Height(); y++ {
		for x := px; x < px+pw && x < img.Width(); x++ {
			c := img.GetRGB(x, y)
			luma := c.Luma709() / 255.0
			w := 1.0
			if invert {
				w = 1.0 - luma + 0.05
			}
			sumR += float64(c.R) * w
			sumG += float64(c.G) * w
			sumB += float64(c.B) * w
			sumW += w
			sumLuma += luma
			count++
		}
	}
	if count == 0 || sumW == 0 {
		return RGB{}, 0
	}
	return RGB{
		R: uint8(sumR/sumW + 0.5),
		G: uint8(sumG/sumW + 0.5),
		B: uint8(sumB/sumW + 0.5),
	}, sumLuma / float64(count)
}

// fieldDiscMean averages the field within a disc. A sub-pixel radius
// degenerates to a single point sample.
func fieldDiscMean(f *imageutil.Field, cx, cy, radius float64) float64 {
	if radius < 1 {
		return f.At(int(cx), int(cy))
	}
	x0 := int(cx - radius)
	x1 := int(cx + radius)
	y0 := int(cy - radius)
	y1 := int(cy + radius)

	var sum float64
	var count int
	r2 := radius * radius
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			if dx*dx+dy*dy > r2 {
				continue
			}
			sum += f.At(x, y)
			count++
		}
	}
	if count == 0 {
		return f.At(int(cx), int(cy))
	}
	return sum / float64(count)
}

func cellHasEdge(edges []bool, stride, px, py, pw, ph int) bool {
	height := len(edges) / stride
	for y := py; y < py+ph && y < height; y++ {
		for x := px; x < px+pw && x < stride; x++ {
			if edges[y*stride+x] {
				return true
			}
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
