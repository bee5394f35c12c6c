package ansimate

import (
	"math/rand"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/wbrown/ansimate/imageutil"
)

// MatrixFrameRate is the synthetic animation rate for matrix mode
// over still images, in frames per second.
const MatrixFrameRate = 12

// matrixGlyphs is the default rain alphabet: halfwidth katakana plus
// digits.
const matrixGlyphs = "ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789"

// matrixRerollChance is the per-tick probability that a visible cell
// swaps its glyph.
const matrixRerollChance = 0.04

// matrixPalettes maps palette names to base rain colors.
var matrixPalettes = map[string]RGB{
	"green":  {0, 255, 70},
	"red":    {255, 60, 40},
	"amber":  {255, 176, 0},
	"blue":   {60, 120, 255},
	"cyan":   {0, 220, 255},
	"purple": {180, 80, 255},
}

// matrixColumn is the per-column rain state: a fractional head
// position, tail length in cells, and fall speed in cells per tick.
type matrixColumn struct {
	head  float64
	tail  int
	speed float64
}

// MatrixRenderer overlays a digital-rain cascade on the source
// brightness field. Column state persists across frames; a still
// image played through it becomes a synthetic animation.
type MatrixRenderer struct {
	opts   RenderOptions
	wc, hc int
	cols   []matrixColumn
	glyphs []rune
	grid   []rune
	rng    *rand.Rand
	base   RGB
}

// NewMatrixRenderer builds the rain state for a cell grid. The seed
// fixes the pseudo-random column behavior, keeping output
// reproducible for a given seed.
func NewMatrixRenderer(wc, hc int, opts RenderOptions, seed int64) *MatrixRenderer {
	m := &MatrixRenderer{
		opts:   opts,
		wc:     wc,
		hc:     hc,
		cols:   make([]matrixColumn, wc),
		glyphs: []rune(matrixGlyphs),
		grid:   make([]rune, wc*hc),
		rng:    rand.New(rand.NewSource(seed)),
		base:   resolveMatrixColor(opts.MatrixPalette),
	}
	if opts.CustomCharset != "" {
		m.glyphs = []rune(opts.CustomCharset)
	}
	for x := range m.cols {
		m.resetColumn(x, true)
	}
	for i := range m.grid {
		m.grid[i] = m.glyphs[m.rng.Intn(len(m.glyphs))]
	}
	return m
}

// Width returns the cell grid width.
func (m *MatrixRenderer) Width() int { return m.wc }

// Height returns the cell grid height.
func (m *MatrixRenderer) Height() int { return m.hc }

func (m *MatrixRenderer) resetColumn(x int, scatter bool) {
	c := &m.cols[x]
	c.tail = 4 + m.rng.Intn(m.hc/2+4)
	c.speed = 0.3 + m.rng.Float64()*0.9
	if scatter {
		c.head = -m.rng.Float64() * float64(m.hc)
	} else {
		c.head = -float64(m.rng.Intn(m.hc/2 + 1))
	}
}

// RenderFrame advances the rain one tick and composes it over the
// source image's brightness field. Bright source regions let the rain
// through; dark regions gate it out.
func (m *MatrixRenderer) RenderFrame(img *imageutil.RGBAImage) *Frame {
	resized := imageutil.Resize(img, m.wc, m.hc, imageutil.InterpolationArea)
	bright := imageutil.ToBrightnessField(resized)
	if m.opts.Invert {
		imageutil.Invert(bright)
	}
	imageutil.ApplyGamma(bright, m.opts.Gamma)

	// Advance heads; retire columns whose tail has left the grid.
	for x := range m.cols {
		m.cols[x].head += m.cols[x].speed
		if m.cols[x].head-float64(m.cols[x].tail) > float64(m.hc) {
			m.resetColumn(x, false)
		}
	}

	frame := NewFrame(m.wc, m.hc)
	frame.DelayMs = 1000 / MatrixFrameRate

	for y := 0; y < m.hc; y++ {
		for x := 0; x < m.wc; x++ {
			i := y*m.wc + x
			if m.rng.Float64() < matrixRerollChance {
				m.grid[i] = m.glyphs[m.rng.Intn(len(m.glyphs))]
			}

			intensity, leading := m.cellIntensity(x, y)
			gate := bright.Pix[i]
			intensity *= gate
			if intensity <= 0.02 {
				continue
			}

			cell := Cell{Rune: m.grid[i]}
			if m.opts.UseColor {
				c := m.cellColor(resized, x, y, intensity, leading)
				cell.FG = &c
				if leading {
					cell.Bold = true
				}
			}
			frame.set(x, y, cell)
		}
	}
	return frame
}

// cellIntensity returns the rain brightness at a cell: 1 at the head,
// fading linearly along the tail, 0 elsewhere.
func (m *MatrixRenderer) cellIntensity(x, y int) (float64, bool) {
	c := m.cols[x]
	head := int(c.head)
	dist := head - y
	if dist < 0 || dist > c.tail {
		return 0, false
	}
	if dist == 0 {
		return 1, true
	}
	return 1 - float64(dist)/float64(c.tail+1), false
}

// cellColor picks the emitted color: near-white at the head, the
// palette color faded along the tail, or the source pixel color when
// full-color mode is on.
func (m *MatrixRenderer) cellColor(resized *imageutil.RGBAImage, x, y int, intensity float64, leading bool) RGB {
	base := m.base
	if m.opts.MatrixFullColor {
		src := resized.GetRGB(x, y)
		base = RGB{R: src.R, G: src.G, B: src.B}
	}
	if leading {
		return RGB{
			R: blendChannel(base.R, 255, 0.8),
			G: blendChannel(base.G, 255, 0.8),
			B: blendChannel(base.B, 255, 0.8),
		}
	}
	return RGB{
		R: uint8(float64(base.R) * intensity),
		G: uint8(float64(base.G) * intensity),
		B: uint8(float64(base.B) * intensity),
	}
}

func blendChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}

// resolveMatrixColor maps a palette name or #RRGGBB hex value to the
// base rain color. Unknown names fall back to green.
func resolveMatrixColor(name string) RGB {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return matrixPalettes["green"]
	}
	if c, ok := matrixPalettes[name]; ok {
		return c
	}
	if strings.HasPrefix(name, "#") {
		if c, err := colorful.Hex(name); err == nil {
			r, g, b := c.RGB255()
			return RGB{R: r, G: g, B: b}
		}
	}
	return matrixPalettes["green"]
}
