package imageutil

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom, the closest pure x/image
	// equivalent to OpenCV's INTER_AREA for downscaling.
	InterpolationArea Interpolation = iota

	// InterpolationLanczos uses a Lanczos filter for the highest
	// quality downscaling of photographic content.
	InterpolationLanczos

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method. Zero target dimensions yield an empty
// image rather than an error.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	if width <= 0 || height <= 0 {
		return NewRGBAImage(max(width, 0), max(height, 0))
	}

	if interp == InterpolationLanczos {
		out := imaging.Resize(img.RGBA, width, height, imaging.Lanczos)
		dst := NewRGBAImage(width, height)
		draw.Draw(dst.RGBA, dst.Bounds(), out, image.Point{}, draw.Src)
		return dst
	}

	dst := NewRGBAImage(width, height)
	scalerFor(interp).Scale(dst.RGBA, dst.Bounds(), img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// ResizeGray resizes a grayscale image to the specified dimensions.
func ResizeGray(img *GrayImage, width, height int, interp Interpolation) *GrayImage {
	if width <= 0 || height <= 0 {
		return NewGrayImage(max(width, 0), max(height, 0))
	}
	dst := NewGrayImage(width, height)
	scalerFor(interp).Scale(dst.Gray, dst.Bounds(), img.Gray, img.Bounds(), draw.Src, nil)
	return dst
}

func scalerFor(interp Interpolation) draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}
