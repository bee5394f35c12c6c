package source

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"os"
)

// defaultGIFDelayMs substitutes for the zero delays some encoders
// write; browsers use the same floor.
const defaultGIFDelayMs = 100

// GIF yields the frames of an animated GIF. Frames composite over the
// accumulated canvas, so partial-frame GIFs decode correctly.
type GIF struct {
	frames []gifFrame
	i      int
}

type gifFrame struct {
	img     *image.RGBA
	delayMs int
}

// OpenGIF decodes an animated GIF file.
func OpenGIF(path string) (*GIF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer f.Close()
	g, err := NewGIF(f)
	if err != nil {
		return nil, fmt.Errorf("source: %s: %w", path, err)
	}
	return g, nil
}

// NewGIF decodes an animated GIF from a reader.
func NewGIF(r io.Reader) (*GIF, error) {
	decoded, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("source: gif decode: %w", err)
	}
	if len(decoded.Image) == 0 {
		return &GIF{}, nil
	}

	bounds := decoded.Image[0].Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	g := &GIF{frames: make([]gifFrame, 0, len(decoded.Image))}
	for i, paletted := range decoded.Image {
		draw.Draw(canvas, paletted.Bounds(), paletted, paletted.Bounds().Min, draw.Over)

		frame := image.NewRGBA(canvas.Bounds())
		copy(frame.Pix, canvas.Pix)

		delayMs := 0
		if i < len(decoded.Delay) {
			delayMs = decoded.Delay[i] * 10 // GIF delays are centiseconds
		}
		if delayMs <= 0 {
			delayMs = defaultGIFDelayMs
		}
		g.frames = append(g.frames, gifFrame{img: frame, delayMs: delayMs})
	}
	return g, nil
}

// Next returns the next composited frame, io.EOF past the end.
func (g *GIF) Next() (*image.RGBA, int, error) {
	if g.i >= len(g.frames) {
		return nil, 0, io.EOF
	}
	f := g.frames[g.i]
	g.i++
	return f.img, f.delayMs, nil
}

// FrameCount returns the number of decoded frames.
func (g *GIF) FrameCount() int {
	return len(g.frames)
}

// Rewind restarts the sequence, e.g. for looped playback.
func (g *GIF) Rewind() {
	g.i = 0
}
