package ansimate

import "errors"

// RenderMode selects the rendering algorithm.
type RenderMode int

const (
	// ModeASCII matches cell shape vectors against a glyph atlas.
	ModeASCII RenderMode = iota

	// ModeBlocks paints 2x1 pixel pairs with the upper half block.
	ModeBlocks

	// ModeBraille binarizes 2x4 dot grids into braille patterns.
	ModeBraille

	// ModeMatrix overlays a digital-rain cascade gated by source
	// brightness.
	ModeMatrix
)

// String returns the document-format tag for the mode.
func (m RenderMode) String() string {
	switch m {
	case ModeBlocks:
		return "Blocks"
	case ModeBraille:
		return "Braille"
	case ModeMatrix:
		return "Matrix"
	default:
		return "ASCII"
	}
}

// ParseRenderMode maps a document-format tag back to a mode.
func ParseRenderMode(s string) (RenderMode, bool) {
	switch s {
	case "ASCII":
		return ModeASCII, true
	case "Blocks":
		return ModeBlocks, true
	case "Braille":
		return ModeBraille, true
	case "Matrix":
		return ModeMatrix, true
	}
	return ModeASCII, false
}

// Errors reported at renderer construction for invalid configuration.
var (
	ErrInvalidDimensions = errors.New("ansimate: negative width or height")
	ErrInvalidContrast   = errors.New("ansimate: contrast must be >= 1")
	ErrInvalidGamma      = errors.New("ansimate: gamma must be > 0")
	ErrInvalidSpeed      = errors.New("ansimate: speed must be > 0")
	ErrEmptyCharset      = errors.New("ansimate: character set is empty")
)

// RenderOptions configures all renderers and the player. The zero
// value is not usable; start from one of the preset constructors and
// mutate fields directly.
type RenderOptions struct {
	// Explicit cell dimensions. Zero means unset; the caps below
	// apply instead.
	Width  int
	Height int

	// Caps used when the explicit dimensions are unset.
	MaxWidth  int
	MaxHeight int

	// CharAspect is the terminal cell width divided by height,
	// typically 0.4-0.55 depending on the font.
	CharAspect float64

	// Contrast is the power applied to normalized shape samples
	// (>= 1). Higher values compress faint coverage toward zero.
	Contrast float64

	// Gamma is applied to the brightness field before sampling (> 0).
	Gamma float64

	// DirectionalStrength blends each internal sample toward its
	// strongest outer neighbor, sharpening edges at cell boundaries.
	DirectionalStrength float64

	// Invert flips brightness polarity for light-background
	// terminals. It does not reverse character-set traversal.
	Invert bool

	// UseColor enables 24-bit SGR color output.
	UseColor bool

	// ColorCount caps the palette via median-cut quantization.
	// Zero means unlimited.
	ColorCount int

	// DarkCutoff and LightCutoff suppress near-background cells:
	// cells darker than DarkCutoff (normal polarity) or brighter
	// than LightCutoff (inverted polarity) emit an uncolored space.
	DarkCutoff  float64
	LightCutoff float64

	// EdgeDetect runs Canny edge detection and doubles the
	// directional contrast at edge cells.
	EdgeDetect bool

	// Speed multiplies playback rate; Loops is the play count
	// (0 = forever).
	Speed float64
	Loops int

	// StabilityEnabled snaps cell colors to the previous frame's
	// when they differ by less than StabilityThreshold per-pixel
	// Euclidean RGB distance, suppressing quantization flicker.
	StabilityEnabled   bool
	StabilityThreshold float64

	// AltScreen switches to the alternate screen buffer during
	// playback.
	AltScreen bool

	// Charset selection: CustomCharset wins when non-empty,
	// otherwise Preset applies.
	Preset        CharsetPreset
	CustomCharset string

	// MatrixPalette names the rain color: green (default), red,
	// amber, blue, cyan, purple, or a #RRGGBB hex value. Empty
	// selects green. MatrixFullColor derives rain color from the
	// source instead.
	MatrixPalette   string
	MatrixFullColor bool
}

// DefaultOptions returns the baseline configuration: dark terminal,
// color on, extended charset, no explicit sizing.
func DefaultOptions() RenderOptions {
	return RenderOptions{
		MaxWidth:            120,
		MaxHeight:           40,
		CharAspect:          0.5,
		Contrast:            2.5,
		Gamma:               1.0,
		DirectionalStrength: 0.3,
		UseColor:            true,
		DarkCutoff:          0.02,
		LightCutoff:         0.98,
		Speed:               1.0,
		StabilityThreshold:  15,
		AltScreen:           true,
		Preset:              CharsetExtended,
	}
}

// HighDetailOptions favors fidelity: larger default grid, stronger
// contrast shaping, edge detection on.
func HighDetailOptions() RenderOptions {
	o := DefaultOptions()
	o.MaxWidth = 200
	o.MaxHeight = 60
	o.Contrast = 3.0
	o.EdgeDetect = true
	return o
}

// MonochromeOptions disables color entirely.
func MonochromeOptions() RenderOptions {
	o := DefaultOptions()
	o.UseColor = false
	return o
}

// ForTerminal gates color by the terminal's detected capabilities:
// NO_COLOR, a dumb terminal, or an unidentified one turns color off.
func ForTerminal() RenderOptions {
	o := DefaultOptions()
	o.UseColor = DetectColorMode() != ColorOff
	return o
}

// ForLightBackground inverts polarity for terminals with light themes.
func ForLightBackground() RenderOptions {
	o := DefaultOptions()
	o.Invert = true
	return o
}

// ForAnimation tunes the options for animated playback: temporal
// stability on and the given loop count.
func ForAnimation(loops int) RenderOptions {
	o := DefaultOptions()
	o.Loops = loops
	o.StabilityEnabled = true
	return o
}

// Validate rejects configurations no renderer can honor.
func (o *RenderOptions) Validate() error {
	if o.Width < 0 || o.Height < 0 || o.MaxWidth < 0 || o.MaxHeight < 0 {
		return ErrInvalidDimensions
	}
	if o.Contrast < 1 {
		return ErrInvalidContrast
	}
	if o.Gamma <= 0 {
		return ErrInvalidGamma
	}
	if o.Speed <= 0 {
		return ErrInvalidSpeed
	}
	if o.CustomCharset == "" && PresetCharset(o.Preset).Len() == 0 {
		return ErrEmptyCharset
	}
	return nil
}

// Charset resolves the effective character set.
func (o *RenderOptions) Charset() Charset {
	if o.CustomCharset != "" {
		return NewCharset(o.CustomCharset)
	}
	return PresetCharset(o.Preset)
}
