package ansimate

import (
	"image"

	"github.com/wbrown/ansimate/imageutil"
)

// Renderer converts source images to frames in one render mode. It
// owns its options and the per-animation state (matrix rain columns,
// previous frame for temporal stability). Frames it produces belong
// to the caller.
type Renderer struct {
	Mode RenderMode
	Opts RenderOptions

	matrix *MatrixRenderer
	prev   *Frame
}

// NewRenderer validates the options and builds a renderer.
func NewRenderer(mode RenderMode, opts RenderOptions) (*Renderer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{Mode: mode, Opts: opts}, nil
}

// RenderImage produces one frame from a source image. It is total on
// valid configuration: a zero-sized source yields a zero-sized frame,
// never an error.
func (r *Renderer) RenderImage(img image.Image) *Frame {
	rgba := imageutil.FromImage(img)

	var frame *Frame
	switch r.Mode {
	case ModeBlocks:
		frame = renderBlocks(rgba, &r.Opts)
	case ModeBraille:
		frame = renderBraille(rgba, &r.Opts)
	case ModeMatrix:
		frame = r.renderMatrixFrame(rgba)
	default:
		frame = renderASCII(rgba, &r.Opts)
	}

	if r.Opts.ColorCount > 0 {
		quantizeFrameColors(frame, r.Opts.ColorCount)
	}
	if r.Opts.StabilityEnabled {
		frame = StabilizeFrame(r.prev, frame, r.Opts.StabilityThreshold)
	}
	r.prev = frame
	return frame
}

// Reset drops animation state so the next frame renders from scratch,
// e.g. after a terminal resize.
func (r *Renderer) Reset() {
	r.prev = nil
	r.matrix = nil
}

func (r *Renderer) renderMatrixFrame(rgba *imageutil.RGBAImage) *Frame {
	wc, hc := ResolveGrid(rgba.Width(), rgba.Height(), ModeMatrix, &r.Opts)
	if r.matrix == nil || r.matrix.Width() != wc || r.matrix.Height() != hc {
		r.matrix = NewMatrixRenderer(wc, hc, r.Opts, 1)
	}
	return r.matrix.RenderFrame(rgba)
}

// quantizeFrameColors reduces the frame's colors to at most n
// representatives via median-cut and remaps every cell in place
// before the frame is published.
func quantizeFrameColors(f *Frame, n int) {
	var population []RGB
	for _, c := range f.Cells {
		if c.FG != nil {
			population = append(population, *c.FG)
		}
		if c.BG != nil {
			population = append(population, *c.BG)
		}
	}
	if len(population) == 0 {
		return
	}
	pal := QuantizePalette(population, n)
	for i := range f.Cells {
		if f.Cells[i].FG != nil {
			q := pal.Nearest(*f.Cells[i].FG)
			f.Cells[i].FG = &q
		}
		if f.Cells[i].BG != nil {
			q := pal.Nearest(*f.Cells[i].BG)
			f.Cells[i].BG = &q
		}
	}
}
