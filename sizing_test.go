package ansimate

import "testing"

func TestResolveGridExplicitDimensions(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	o.Width = 33
	o.Height = 7
	w, h := ResolveGrid(1000, 1000, ModeASCII, &o)
	if w != 33 || h != 7 {
		t.Errorf("explicit dims not honored: got %dx%d", w, h)
	}
}

func TestResolveGridRespectsCaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mode RenderMode
		srcW int
		srcH int
	}{
		{"ascii wide", ModeASCII, 1000, 100},
		{"ascii tall", ModeASCII, 100, 1000},
		{"braille square", ModeBraille, 500, 500},
		{"blocks square", ModeBlocks, 500, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			o.MaxWidth = 40
			o.MaxHeight = 20
			w, h := ResolveGrid(tt.srcW, tt.srcH, tt.mode, &o)
			if w < 1 || h < 1 {
				t.Fatalf("degenerate grid %dx%d", w, h)
			}
			if w > 40 || h > 20 {
				t.Errorf("grid %dx%d exceeds caps 40x20", w, h)
			}
		})
	}
}

func TestResolveGridZeroSource(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	w, h := ResolveGrid(0, 0, ModeASCII, &o)
	if w != 0 || h != 0 {
		t.Errorf("zero source should yield zero grid, got %dx%d", w, h)
	}
}

func TestResolveGridClampsZeroMaxWidth(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	o.MaxWidth = 0
	o.MaxHeight = 0
	w, h := ResolveGrid(100, 100, ModeASCII, &o)
	if w < 1 || h < 1 {
		t.Errorf("caps of zero must clamp to 1, got %dx%d", w, h)
	}
}

func TestResolveGridOneByOneSource(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	o.MaxWidth = 1
	o.MaxHeight = 1
	w, h := ResolveGrid(1, 1, ModeBraille, &o)
	if w != 1 || h != 1 {
		t.Errorf("1x1 source with 1x1 caps: got %dx%d", w, h)
	}
}

func TestResolveGridAspectTracksSource(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	o.MaxWidth = 100
	o.MaxHeight = 100
	o.CharAspect = 0.5

	// A square source in ASCII mode needs roughly twice as many
	// columns as rows to compensate for tall cells.
	w, h := ResolveGrid(400, 400, ModeASCII, &o)
	ratio := float64(w) / float64(h)
	if ratio < 1.6 || ratio > 2.4 {
		t.Errorf("square source: got %dx%d (ratio %.2f), want ~2.0", w, h, ratio)
	}
}
