package ansimate

import (
	"image/color"
	"strings"
	"testing"

	"github.com/wbrown/ansimate/imageutil"
)

func TestBrailleCellsInBrailleBlock(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	o.MaxWidth = 20
	o.MaxHeight = 10

	img := gradientImage(80, 80)
	f := renderBraille(img, &o)

	if f.Width < 1 || f.Height < 1 {
		t.Fatalf("degenerate frame %dx%d", f.Width, f.Height)
	}
	for _, c := range f.Cells {
		if c.Rune == ' ' {
			continue
		}
		if c.Rune < 0x2800 || c.Rune > 0x28FF {
			t.Fatalf("cell %U outside the braille block", c.Rune)
		}
	}
}

func TestBrailleSolidBlackInvertedStaysDark(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	o.Invert = true
	o.MaxWidth = 10
	o.MaxHeight = 5

	img := solidImage(20, 20, color.RGBA{0, 0, 0, 255})
	f := renderBraille(img, &o)

	out := f.ANSI()
	for _, c := range f.Cells {
		if c.FG == nil {
			continue
		}
		if c.FG.R > 50 || c.FG.G > 50 || c.FG.B > 50 {
			t.Fatalf("black source emitted bright color %+v", *c.FG)
		}
	}
	// The serialized output likewise carries no bright components.
	if strings.Contains(out, "[38;2;255") {
		t.Error("serialized output contains a bright escape")
	}
}

func TestBrailleSolidWhiteLightsAllDots(t *testing.T) {
	t.Parallel()

	o := MonochromeOptions()
	o.MaxWidth = 8
	o.MaxHeight = 4

	img := solidImage(32, 32, color.RGBA{255, 255, 255, 255})
	f := renderBraille(img, &o)

	for _, c := range f.Cells {
		if c.Rune != '⣿' {
			t.Fatalf("solid white cell rendered %U, want U+28FF", c.Rune)
		}
	}
}

func TestBrailleNarrowSourceStillRenders(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	o.MaxWidth = 40
	o.MaxHeight = 20

	img := solidImage(1, 40, color.RGBA{180, 180, 180, 255})
	f := renderBraille(img, &o)
	if f.Width < 1 || f.Height < 1 {
		t.Errorf("narrow source yielded %dx%d frame", f.Width, f.Height)
	}
}

func TestBoostColorCapsAtWhite(t *testing.T) {
	t.Parallel()

	got := boostColor(RGB{250, 250, 250})
	if got.R < 250 || got.G < 250 || got.B < 250 {
		t.Errorf("boosting near-white dimmed it: %+v", got)
	}

	if got := boostColor(RGB{0, 0, 0}); got != (RGB{0, 0, 0}) {
		t.Errorf("boosting black changed it: %+v", got)
	}
}

func gradientImage(w, h int) *imageutil.RGBAImage {
	img := imageutil.NewRGBAImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / max(w-1, 1))
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}
