package ansimate

import (
	"errors"
	"testing"
)

func TestOptionsValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*RenderOptions)
		wantErr error
	}{
		{"defaults valid", func(o *RenderOptions) {}, nil},
		{"negative width", func(o *RenderOptions) { o.Width = -1 }, ErrInvalidDimensions},
		{"negative max height", func(o *RenderOptions) { o.MaxHeight = -3 }, ErrInvalidDimensions},
		{"contrast below one", func(o *RenderOptions) { o.Contrast = 0.5 }, ErrInvalidContrast},
		{"zero gamma", func(o *RenderOptions) { o.Gamma = 0 }, ErrInvalidGamma},
		{"zero speed", func(o *RenderOptions) { o.Speed = 0 }, ErrInvalidSpeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			err := o.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRendererRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	o := DefaultOptions()
	o.Gamma = -1
	if _, err := NewRenderer(ModeASCII, o); err == nil {
		t.Error("invalid configuration accepted at construction")
	}
}

func TestPresetConstructors(t *testing.T) {
	t.Parallel()

	if o := MonochromeOptions(); o.UseColor {
		t.Error("monochrome preset has color enabled")
	}
	if o := ForLightBackground(); !o.Invert {
		t.Error("light-background preset does not invert")
	}
	if o := ForAnimation(3); o.Loops != 3 || !o.StabilityEnabled {
		t.Error("animation preset missing loops or stability")
	}
	if o := HighDetailOptions(); !o.EdgeDetect {
		t.Error("high-detail preset missing edge detection")
	}
	if o := ForTerminal(); o.Validate() != nil {
		t.Error("terminal preset is not valid")
	} else if o.UseColor != (DetectColorMode() != ColorOff) {
		t.Error("terminal preset color does not track the detected mode")
	}
}

func TestRenderModeTags(t *testing.T) {
	t.Parallel()

	for _, m := range []RenderMode{ModeASCII, ModeBlocks, ModeBraille, ModeMatrix} {
		back, ok := ParseRenderMode(m.String())
		if !ok || back != m {
			t.Errorf("mode %v does not round-trip through its tag %q", m, m.String())
		}
	}
	if _, ok := ParseRenderMode("Gouache"); ok {
		t.Error("unknown tag parsed successfully")
	}
}
