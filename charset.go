package ansimate

// CharsetPreset selects one of the built-in character ramps.
type CharsetPreset int

const (
	// CharsetExtended is the default ~91-glyph ramp with the widest
	// shape vocabulary.
	CharsetExtended CharsetPreset = iota

	// CharsetSimple is a short 10-glyph ramp, fast to match against.
	CharsetSimple

	// CharsetBlock uses shaded Unicode block elements.
	CharsetBlock

	// CharsetClassic is the traditional 71-glyph density ramp.
	CharsetClassic
)

const (
	extendedChars = " `.-':_,^=;><+!rc*/z?sLTv)J7(|Fi{C}fI31tlu[neoZ5Yxjya]2ESwqkP6h9d4VpOGbUAKXHm8RD#$Bg0MNWQ%&@█"
	simpleChars   = " .:-=+*#%@"
	blockChars    = " ░▒▓█"
	classicChars  = "$@B%8&WMN#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\\|()1{}[]?-_+~<>i!lI;:,\"^`'. "
)

// Charset is an ordered sequence of candidate glyphs, intended
// light-to-dark or dark-to-light; the renderer's polarity handling
// decides which end maps to bright pixels.
type Charset struct {
	runes []rune
	key   string
}

// NewCharset builds a charset from an arbitrary string of candidate
// glyphs. Duplicate runes are kept; order is preserved and used for
// deterministic tie-breaking in shape matching.
func NewCharset(chars string) Charset {
	return Charset{runes: []rune(chars), key: chars}
}

// PresetCharset returns the built-in charset for a preset.
func PresetCharset(p CharsetPreset) Charset {
	switch p {
	case CharsetSimple:
		return NewCharset(simpleChars)
	case CharsetBlock:
		return NewCharset(blockChars)
	case CharsetClassic:
		return NewCharset(classicChars)
	default:
		return NewCharset(extendedChars)
	}
}

// Runes returns the glyphs in order.
func (cs Charset) Runes() []rune {
	return cs.runes
}

// Len returns the number of glyphs.
func (cs Charset) Len() int {
	return len(cs.runes)
}

// Key returns a string that uniquely identifies the charset contents,
// used to key the process-wide atlas registry.
func (cs Charset) Key() string {
	return cs.key
}
