package ansimate

import (
	"image"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Glyph raster cell dimensions. The cell is twice as tall as wide to
// match the nominal terminal cell footprint.
const (
	glyphRasterW = 24
	glyphRasterH = 48
)

// outerSampleCount is the number of coverage samples taken just
// outside the cell boundary, used for directional contrast.
const outerSampleCount = 10

// OuterVec holds the outer coverage samples of a glyph or cell, in
// the order of outerSampleOffsets.
type OuterVec [outerSampleCount]float64

// sampleDelta is how far outside the cell (in cell-relative units)
// the outer samples sit.
const sampleDelta = 0.18

// outerSampleOffsets are the outer sample centers in cell-relative
// coordinates: four cardinals, four diagonals, and two edge midpoints.
var outerSampleOffsets = [outerSampleCount][2]float64{
	{0.5, -sampleDelta},                // N
	{0.5, 1 + sampleDelta},             // S
	{-sampleDelta, 0.5},                // W
	{1 + sampleDelta, 0.5},             // E
	{-sampleDelta, -sampleDelta},       // NW
	{1 + sampleDelta, -sampleDelta},    // NE
	{-sampleDelta, 1 + sampleDelta},    // SW
	{1 + sampleDelta, 1 + sampleDelta}, // SE
	{0.25, -sampleDelta},               // top edge midpoint, left
	{0.75, 1 + sampleDelta},            // bottom edge midpoint, right
}

// outerNeighborFor maps each internal sample (row-major position in
// the 3x2 arrangement) to the outer sample in its dominant direction.
var outerNeighborFor = [ShapeDims]int{
	4, // left-top    -> NW
	0, // mid-top     -> N
	5, // right-top   -> NE
	6, // left-bottom -> SW
	1, // mid-bottom  -> S
	7, // right-bottom-> SE
}

// internalSamplePoints returns the six internal disc centers in
// cell-relative coordinates: three columns by two rows, with the left
// column lowered and the right column raised by half a sample spacing
// so the pattern tiles without visible row seams.
func internalSamplePoints() [ShapeDims][2]float64 {
	const shift = 0.125 // half of the quarter-cell sample spacing
	cols := [3]float64{1.0 / 6.0, 0.5, 5.0 / 6.0}
	rows := [2]float64{0.25, 0.75}
	shifts := [3]float64{+shift, 0, -shift}

	var pts [ShapeDims][2]float64
	i := 0
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			pts[i] = [2]float64{cols[c], rows[r] + shifts[c]}
			i++
		}
	}
	return pts
}

// Atlas holds the coverage profiles for one character set and the
// nearest-neighbor index over them. Process-wide immutable after
// construction.
type Atlas struct {
	charset Charset
	chars   []rune
	vectors []ShapeVec
	outer   []OuterVec
	tree    *shapeTree

	// cache memoizes lookups by quantized vector key (5 bits per
	// component, 30-bit key). Concurrent inserts of the same key are
	// benign: the mapping is deterministic.
	cache sync.Map
}

var (
	atlasRegistry sync.Map // charset key -> *Atlas
	atlasBuildMu  sync.Mutex

	fontOnce   sync.Once
	bundledTTF *truetype.Font
)

// bundledFont parses the embedded monospace face once. A parse
// failure is an internal invariant violation: the font ships with the
// binary.
func bundledFont() *truetype.Font {
	fontOnce.Do(func() {
		f, err := freetype.ParseFont(gomono.TTF)
		if err != nil {
			panic("ansimate: bundled font failed to parse: " + err.Error())
		}
		bundledTTF = f
	})
	return bundledTTF
}

// GetAtlas returns the process-wide atlas for a character set,
// building it on first use.
func GetAtlas(cs Charset) *Atlas {
	if a, ok := atlasRegistry.Load(cs.Key()); ok {
		return a.(*Atlas)
	}
	atlasBuildMu.Lock()
	defer atlasBuildMu.Unlock()
	if a, ok := atlasRegistry.Load(cs.Key()); ok {
		return a.(*Atlas)
	}
	a := buildAtlas(cs)
	atlasRegistry.Store(cs.Key(), a)
	Logger().Info("glyph atlas built", "glyphs", len(a.chars))
	return a
}

// buildAtlas rasterizes every glyph, samples its coverage profile,
// and normalizes all components by the global maximum so the loudest
// glyph sits near magnitude 1.
func buildAtlas(cs Charset) *Atlas {
	chars := cs.Runes()
	a := &Atlas{
		charset: cs,
		chars:   chars,
		vectors: make([]ShapeVec, len(chars)),
		outer:   make([]OuterVec, len(chars)),
	}

	ttf := bundledFont()
	pts := internalSamplePoints()
	radius := float64(glyphRasterW) / 6.0

	for i, r := range chars {
		ink := rasterizeGlyph(ttf, r)
		for s := 0; s < ShapeDims; s++ {
			cx := pts[s][0] * glyphRasterW
			cy := pts[s][1] * glyphRasterH
			a.vectors[i][s] = discMean(ink, cx, cy, radius)
		}
		for s := 0; s < outerSampleCount; s++ {
			cx := outerSampleOffsets[s][0] * glyphRasterW
			cy := outerSampleOffsets[s][1] * glyphRasterH
			a.outer[i][s] = discMean(ink, cx, cy, radius)
		}
	}

	// Global max over the internal components of the whole atlas.
	maxVal := 0.0
	for _, v := range a.vectors {
		for _, c := range v {
			if c > maxVal {
				maxVal = c
			}
		}
	}
	if maxVal > 0 {
		for i := range a.vectors {
			for s := 0; s < ShapeDims; s++ {
				a.vectors[i][s] /= maxVal
			}
			for s := 0; s < outerSampleCount; s++ {
				a.outer[i][s] /= maxVal
			}
		}
	}

	a.tree = newShapeTree(a.vectors)
	return a
}

// rasterizeGlyph draws one rune into an alpha bitmap. Antialiased
// coverage is kept as fractional ink rather than thresholded, which
// gives the sampler sub-pixel information for free.
func rasterizeGlyph(ttf *truetype.Font, r rune) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, glyphRasterW, glyphRasterH))

	size := float64(glyphRasterH) * 0.8
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	metrics := face.Metrics()
	ascent := int(metrics.Ascent >> 6)
	descent := int(metrics.Descent >> 6)
	baselineY := (glyphRasterH + ascent - descent) / 2

	pt := freetype.Pt(0, baselineY)
	if _, err := ctx.DrawString(string(r), pt); err != nil {
		// Unrenderable rune: profile stays empty, matching a space.
		return img
	}
	return img
}

// discMean returns the mean alpha intensity within a disc, in [0, 1].
// Pixels outside the bitmap read as paper.
func discMean(img *image.Alpha, cx, cy, radius float64) float64 {
	x0 := int(cx - radius)
	x1 := int(cx + radius + 1)
	y0 := int(cy - radius)
	y1 := int(cy + radius + 1)

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
			count++
			if x < 0 || x >= glyphRasterW || y < 0 || y >= glyphRasterH {
				continue
			}
			sum += float64(img.AlphaAt(x, y).A) / 255.0
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Chars returns the atlas glyphs in character-set order.
func (a *Atlas) Chars() []rune {
	return a.chars
}

// Vector returns the normalized coverage profile of glyph i.
func (a *Atlas) Vector(i int) ShapeVec {
	return a.vectors[i]
}

// Lookup returns the glyph whose coverage profile is nearest to the
// query vector. It never fails: the character set is non-empty, and
// exact ties break by character-set order.
func (a *Atlas) Lookup(v ShapeVec) rune {
	key := quantizeShapeKey(v)
	if cached, ok := a.cache.Load(key); ok {
		return cached.(rune)
	}
	r := a.chars[a.tree.Nearest(v)]
	a.cache.Store(key, r)
	return r
}

// quantizeShapeKey packs a shape vector into a 30-bit key at 5 bits
// per component.
func quantizeShapeKey(v ShapeVec) uint32 {
	var key uint32
	for d := 0; d < ShapeDims; d++ {
		c := v[d]
		if c < 0 {
			c = 0
		} else if c > 1 {
			c = 1
		}
		key = key<<5 | uint32(c*31.0+0.5)
	}
	return key
}
