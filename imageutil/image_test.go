package imageutil

import (
	"image"
	"image/color"
	"sync/atomic"
	"testing"
)

func TestResizeDimensions(t *testing.T) {
	t.Parallel()

	img := NewRGBAImage(100, 60)
	for _, interp := range []Interpolation{
		InterpolationArea, InterpolationLanczos,
		InterpolationLinear, InterpolationNearest,
	} {
		out := Resize(img, 25, 15, interp)
		if out.Width() != 25 || out.Height() != 15 {
			t.Errorf("interp %d: got %dx%d", interp, out.Width(), out.Height())
		}
	}
}

func TestResizeZeroTarget(t *testing.T) {
	t.Parallel()

	img := NewRGBAImage(10, 10)
	out := Resize(img, 0, 0, InterpolationArea)
	if out.Width() != 0 || out.Height() != 0 {
		t.Errorf("zero target: got %dx%d", out.Width(), out.Height())
	}
}

func TestResizePreservesSolidColor(t *testing.T) {
	t.Parallel()

	img := NewRGBAImage(50, 50)
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			img.SetRGB(x, y, RGB{200, 100, 50})
		}
	}
	out := Resize(img, 10, 10, InterpolationArea)
	c := out.GetRGB(5, 5)
	if c.R < 195 || c.R > 205 || c.G < 95 || c.G > 105 {
		t.Errorf("solid color drifted to %+v", c)
	}
}

func TestToBrightnessFieldRec709(t *testing.T) {
	t.Parallel()

	img := NewRGBAImage(1, 3)
	img.SetRGB(0, 0, RGB{255, 255, 255})
	img.SetRGB(0, 1, RGB{0, 0, 0})
	img.SetRGB(0, 2, RGB{0, 255, 0}) // green dominates Rec. 709 luma

	f := ToBrightnessField(img)
	if f.At(0, 0) < 0.99 {
		t.Errorf("white luma %f", f.At(0, 0))
	}
	if f.At(0, 1) != 0 {
		t.Errorf("black luma %f", f.At(0, 1))
	}
	if g := f.At(0, 2); g < 0.70 || g > 0.73 {
		t.Errorf("green Rec. 709 luma %f, want ~0.7152", g)
	}
}

func TestLuma709Weights(t *testing.T) {
	t.Parallel()

	if got := (RGB{255, 255, 255}).Luma709(); got < 254.9 || got > 255.1 {
		t.Errorf("white luma %f", got)
	}
	if got := (RGB{0, 255, 0}).Luma709(); got < 182 || got > 183 {
		t.Errorf("green luma %f, want ~182.4", got)
	}
	if got := (RGB{0, 0, 255}).Luma709(); got < 18 || got > 19 {
		t.Errorf("blue luma %f, want ~18.4", got)
	}
}

func TestFromImageAnchorsAtOrigin(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(5, 5, 15, 10))
	src.SetRGBA(5, 5, color.RGBA{255, 0, 0, 255})

	out := FromImage(src)
	if out.Width() != 10 || out.Height() != 5 {
		t.Fatalf("got %dx%d", out.Width(), out.Height())
	}
	if c := out.GetRGB(0, 0); c.R != 255 {
		t.Errorf("origin pixel %+v", c)
	}
}

func TestFieldAtClampsEdges(t *testing.T) {
	t.Parallel()

	f := NewField(2, 2)
	f.Pix = []float64{1, 2, 3, 4}
	if f.At(-5, 0) != 1 || f.At(5, 0) != 2 || f.At(0, 5) != 3 || f.At(5, 5) != 4 {
		t.Error("out-of-range reads should clamp to the nearest edge")
	}
}

func TestParallelRowsCoversAllRows(t *testing.T) {
	t.Parallel()

	for _, height := range []int{0, 1, 63, 64, 65, 500} {
		var count atomic.Int64
		ParallelRows(height, func(y0, y1 int) {
			count.Add(int64(y1 - y0))
		})
		if int(count.Load()) != height {
			t.Errorf("height %d: covered %d rows", height, count.Load())
		}
	}
}

func TestApplyGammaIdentityAndCurve(t *testing.T) {
	t.Parallel()

	f := NewField(1, 2)
	f.Pix = []float64{0.25, 1.0}
	ApplyGamma(f, 1.0)
	if f.Pix[0] != 0.25 {
		t.Error("gamma 1.0 should be the identity")
	}
	ApplyGamma(f, 2.0)
	if f.Pix[0] != 0.0625 || f.Pix[1] != 1.0 {
		t.Errorf("gamma 2.0: got %v", f.Pix)
	}
}

func TestCannyFindsVerticalEdge(t *testing.T) {
	t.Parallel()

	// Left half dark, right half bright: an edge column must appear
	// near the boundary.
	f := NewField(32, 32)
	for y := 0; y < 32; y++ {
		for x := 16; x < 32; x++ {
			f.Pix[y*32+x] = 1.0
		}
	}

	edges := CannyDefault(f)
	found := false
	for y := 4; y < 28 && !found; y++ {
		for x := 13; x <= 19; x++ {
			if edges[y*32+x] {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no edge detected near the brightness boundary")
	}
}
