package ansimate

import (
	"os"
	"runtime"
	"strings"
	"sync"
)

// ColorMode describes how much color the terminal can render.
type ColorMode uint8

const (
	// ColorOff means no color at all: NO_COLOR set, a dumb terminal,
	// or no terminal identification.
	ColorOff ColorMode = iota

	// ColorANSI16 is the basic 16-color palette.
	ColorANSI16

	// ColorANSI256 is the 256-color palette.
	ColorANSI256

	// ColorTrue is 24-bit truecolor.
	ColorTrue
)

func (m ColorMode) String() string {
	switch m {
	case ColorANSI16:
		return "ansi16"
	case ColorANSI256:
		return "ansi256"
	case ColorTrue:
		return "truecolor"
	default:
		return "off"
	}
}

var (
	detectOnce sync.Once
	termColor  ColorMode
)

// DetectColorMode checks the terminal's color capabilities once per
// process from the environment: NO_COLOR wins outright, then
// COLORTERM, then TERM.
//
// Renderers emit 24-bit SGR whenever color is on; terminals below
// truecolor approximate those sequences themselves. ColorOff is the
// mode that matters for gating: callers should drop color entirely
// when it is reported (see ForTerminal).
func DetectColorMode() ColorMode {
	detectOnce.Do(func() {
		_, noColor := os.LookupEnv("NO_COLOR")
		termColor = colorModeFromEnv(os.Getenv("TERM"), os.Getenv("COLORTERM"), noColor)
	})
	return termColor
}

// colorModeFromEnv classifies the environment without touching
// process state, so it is directly testable.
func colorModeFromEnv(term, colorterm string, noColor bool) ColorMode {
	if noColor {
		return ColorOff
	}
	term = strings.ToLower(term)
	ct := strings.ToLower(colorterm)
	switch {
	case strings.Contains(ct, "truecolor"), strings.Contains(ct, "24bit"):
		return ColorTrue
	case strings.Contains(term, "256color"):
		return ColorANSI256
	case term == "dumb":
		return ColorOff
	case term == "" && runtime.GOOS == "windows":
		return ColorANSI16
	case term == "":
		return ColorOff
	default:
		return ColorANSI16
	}
}
