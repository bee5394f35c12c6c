// Package source produces decoded frames for the renderers: a still
// image, an animated GIF, or an external FFmpeg process piping raw
// video. Decoders own timebase conversion; consumers accept whatever
// cadence arrives.
package source

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Source yields decoded frames in presentation order. Next returns
// io.EOF when the stream is exhausted. The delay is the time the
// frame should remain on screen, in milliseconds; zero means the
// source has no timing of its own.
type Source interface {
	Next() (img *image.RGBA, delayMs int, err error)
}

// toRGBA normalizes any decoded image to *image.RGBA anchored at the
// origin.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x-b.Min.X, y-b.Min.Y, img.At(x, y))
		}
	}
	return dst
}

// OpenImage loads a still image file, honoring EXIF orientation.
func OpenImage(path string) (*Still, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	return NewStill(img), nil
}
