// Package player drives flicker-free terminal playback of rendered
// frames: synchronized output, absolute-deadline pacing, delta
// rendering, and keyboard control.
package player

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/wbrown/ansimate"
)

// Terminal owns the terminal during playback. Setup acquires state in
// order (alternate screen, then hidden cursor); synchronized output
// capability is probed once in NewTerminal. Teardown releases in
// strict LIFO order. Both are idempotent, so the
// teardown can hang off every exit path including panics.
type Terminal struct {
	out io.Writer

	// Color is the terminal's detected color capability, probed once
	// from NO_COLOR / COLORTERM / TERM.
	Color ansimate.ColorMode

	useAlt  bool
	useSync bool

	altActive    bool
	cursorHidden bool
}

// NewTerminal prepares a terminal wrapper. Synchronized output is
// probed from the environment: anything TTY-like that is not a dumb
// terminal is asked to batch updates, and terminals that ignore
// DECSET 2026 simply render unbatched with the same bytes. Color
// capability is probed the same way for callers gating color output.
func NewTerminal(out io.Writer, altScreen bool) *Terminal {
	return &Terminal{
		out:     out,
		Color:   ansimate.DetectColorMode(),
		useAlt:  altScreen,
		useSync: probeSyncOutput(out),
	}
}

func probeSyncOutput(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	if !term.IsTerminal(int(f.Fd())) {
		return false
	}
	if strings.EqualFold(os.Getenv("TERM"), "dumb") {
		ansimate.Logger().Warn("synchronized output unavailable, frames may tear")
		return false
	}
	return true
}

// Setup enters the alternate screen and hides the cursor.
func (t *Terminal) Setup() {
	if t.useAlt && !t.altActive {
		io.WriteString(t.out, ansimate.AltScreenEnter)
		t.altActive = true
	}
	if !t.cursorHidden {
		io.WriteString(t.out, ansimate.CursorHide)
		t.cursorHidden = true
	}
}

// Teardown restores the terminal, reversing Setup in LIFO order.
func (t *Terminal) Teardown() {
	if t.cursorHidden {
		io.WriteString(t.out, ansimate.CursorShow)
		t.cursorHidden = false
	}
	if t.altActive {
		io.WriteString(t.out, ansimate.AltScreenExit)
		t.altActive = false
	}
}

// BeginFrame opens the synchronized-output bracket and homes the
// cursor.
func (t *Terminal) BeginFrame() {
	if t.useSync {
		io.WriteString(t.out, ansimate.SyncBegin)
	}
	io.WriteString(t.out, ansimate.CursorHome)
}

// EndFrame closes the synchronized-output bracket.
func (t *Terminal) EndFrame() {
	if t.useSync {
		io.WriteString(t.out, ansimate.SyncEnd)
	}
}

// Size returns the terminal cell dimensions, defaulting to 80x24 when
// the output is not a terminal.
func (t *Terminal) Size() (w, h int) {
	if f, ok := t.out.(*os.File); ok {
		if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return 80, 24
}
