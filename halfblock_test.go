package ansimate

import (
	"image/color"
	"testing"

	"github.com/wbrown/ansimate/imageutil"
)

func TestBlocksPairColors(t *testing.T) {
	t.Parallel()

	// Two-pixel-tall source: red over blue should yield one cell
	// with red foreground and blue background.
	img := imageutil.NewRGBAImage(1, 2)
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})

	o := DefaultOptions()
	o.Width = 1
	o.Height = 1

	f := renderBlocks(img, &o)
	c := f.At(0, 0)
	if c.Rune != upperHalfBlock {
		t.Fatalf("cell rune %q, want upper half block", c.Rune)
	}
	if c.FG == nil || c.FG.R < 200 || c.FG.B > 60 {
		t.Errorf("foreground should be red, got %+v", c.FG)
	}
	if c.BG == nil || c.BG.B < 200 || c.BG.R > 60 {
		t.Errorf("background should be blue, got %+v", c.BG)
	}
}

func TestBlocksTransparency(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	o.Width = 1
	o.Height = 1

	// Transparent top over opaque bottom: space with background only.
	img := imageutil.NewRGBAImage(1, 2)
	img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 0})
	img.SetRGBA(0, 1, color.RGBA{0, 200, 0, 255})
	c := renderBlocks(img, &o).At(0, 0)
	if c.Rune != ' ' || c.FG != nil || c.BG == nil {
		t.Errorf("transparent top: got %q fg=%v bg=%v", c.Rune, c.FG, c.BG)
	}

	// Opaque top over transparent bottom: half block, no background.
	img2 := imageutil.NewRGBAImage(1, 2)
	img2.SetRGBA(0, 0, color.RGBA{0, 200, 0, 255})
	img2.SetRGBA(0, 1, color.RGBA{0, 0, 0, 0})
	c = renderBlocks(img2, &o).At(0, 0)
	if c.Rune != upperHalfBlock || c.FG == nil || c.BG != nil {
		t.Errorf("transparent bottom: got %q fg=%v bg=%v", c.Rune, c.FG, c.BG)
	}

	// Fully transparent pair: bare space.
	img3 := imageutil.NewRGBAImage(1, 2)
	c = renderBlocks(img3, &o).At(0, 0)
	if c.Rune != ' ' || c.FG != nil || c.BG != nil {
		t.Errorf("transparent pair: got %q fg=%v bg=%v", c.Rune, c.FG, c.BG)
	}
}

func TestBlocksColorlessFrameHasNoColors(t *testing.T) {
	t.Parallel()

	o := MonochromeOptions()
	o.MaxWidth = 10
	o.MaxHeight = 5

	img := solidImage(40, 40, color.RGBA{120, 50, 200, 255})
	f := renderBlocks(img, &o)
	for _, c := range f.Cells {
		if c.FG != nil || c.BG != nil {
			t.Fatal("monochrome block render carries colors")
		}
	}
}
