package imageutil

// ToGrayscale converts an RGBA image to a grayscale image using
// Rec. 709 luma: Y = 0.2126*R + 0.7152*G + 0.0722*B.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	ParallelRows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				c := img.RGBAAt(x, y)
				// Integer Rec. 709, scaled by 10000.
				lum := (2126*int(c.R) + 7152*int(c.G) + 722*int(c.B) + 5000) / 10000
				if lum > 255 {
					lum = 255
				}
				gray.Pix[y*gray.Stride+x] = uint8(lum)
			}
		}
	})

	return gray
}

// ToBrightnessField converts an RGBA image to a normalized [0, 1]
// brightness field using Rec. 709 luma.
func ToBrightnessField(img *RGBAImage) *Field {
	width, height := img.Width(), img.Height()
	f := NewField(width, height)

	ParallelRows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				c := img.RGBAAt(x, y)
				f.Pix[y*width+x] = (0.2126*float64(c.R) +
					0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255.0
			}
		}
	})

	return f
}

// GrayToField converts an 8-bit grayscale image to a [0, 1] field.
func GrayToField(gray *GrayImage) *Field {
	width, height := gray.Width(), gray.Height()
	f := NewField(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			f.Pix[y*width+x] = float64(gray.Pix[y*gray.Stride+x]) / 255.0
		}
	}
	return f
}

// FieldToGray converts a [0, 1] field to an 8-bit grayscale image,
// clamping out-of-range values.
func FieldToGray(f *Field) *GrayImage {
	gray := NewGrayImage(f.W, f.H)
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			v := f.Pix[y*f.W+x] * 255.0
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			gray.Pix[y*gray.Stride+x] = uint8(v + 0.5)
		}
	}
	return gray
}
