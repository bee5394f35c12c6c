package source

import (
	"image"
	"io"
)

// Still wraps a single image as a one-frame source.
type Still struct {
	img  *image.RGBA
	done bool
}

// NewStill builds a source that yields img once.
func NewStill(img image.Image) *Still {
	return &Still{img: toRGBA(img)}
}

// Next returns the image on the first call and io.EOF afterwards.
func (s *Still) Next() (*image.RGBA, int, error) {
	if s.done {
		return nil, 0, io.EOF
	}
	s.done = true
	return s.img, 0, nil
}

// Image exposes the underlying pixels, e.g. for matrix mode which
// re-reads the same still every synthetic tick.
func (s *Still) Image() *image.RGBA {
	return s.img
}
