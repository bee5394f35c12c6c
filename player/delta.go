package player

import (
	"strings"

	"github.com/wbrown/ansimate"
)

// deltaBuffer holds the previously shown frame's cells so that the
// next frame can emit only the cells that changed. The player owns it
// exclusively; it reallocates only when the grid shape changes.
type deltaBuffer struct {
	width  int
	height int
	cells  []ansimate.Cell
	valid  bool
}

// Reset forgets the previous frame; the next emission is a full
// redraw. Called on resize and at playback start.
func (d *deltaBuffer) Reset() {
	d.valid = false
}

// Encode serializes the frame against the previous one: for each
// changed cell a cursor move (elided for runs of consecutive changes)
// plus the cell payload. Encoding a frame against an identical
// previous frame produces an empty string. The buffer updates to the
// new frame either way.
func (d *deltaBuffer) Encode(f *ansimate.Frame) (string, bool) {
	if !d.valid || d.width != f.Width || d.height != f.Height {
		d.adopt(f)
		return "", false
	}

	var sb strings.Builder
	lastRow, lastCol := -1, -1
	var curFG, curBG *ansimate.RGB
	sgrDirty := false

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			i := y*f.Width + x
			c := f.Cells[i]
			if c.Equal(d.cells[i]) {
				continue
			}

			// Consecutive changed cells need no cursor move.
			if !(y == lastRow && x == lastCol+1) {
				sb.WriteString(ansimate.CursorTo(y+1, x+1))
			}

			if c.Bold {
				sb.WriteString(ansimate.SGRBold)
				sgrDirty = true
			}
			if !sameColor(c.FG, curFG) || !sameColor(c.BG, curBG) {
				if c.FG == nil && c.BG == nil {
					if sgrDirty {
						sb.WriteString(ansimate.SGRReset)
						sgrDirty = false
					}
				} else {
					sb.WriteString(ansimate.SGRReset)
					if c.FG != nil {
						sb.WriteString(ansimate.SGRForeground(*c.FG))
					}
					if c.BG != nil {
						sb.WriteString(ansimate.SGRBackground(*c.BG))
					}
					sgrDirty = true
				}
				curFG, curBG = c.FG, c.BG
			}
			sb.WriteRune(c.Rune)
			lastRow, lastCol = y, x
		}
	}

	d.adopt(f)
	if sb.Len() == 0 {
		return "", true
	}
	if sgrDirty {
		sb.WriteString(ansimate.SGRReset)
	}
	return sb.String(), true
}

func (d *deltaBuffer) adopt(f *ansimate.Frame) {
	if len(d.cells) != len(f.Cells) {
		d.cells = make([]ansimate.Cell, len(f.Cells))
	}
	copy(d.cells, f.Cells)
	d.width = f.Width
	d.height = f.Height
	d.valid = true
}

func sameColor(a, b *ansimate.RGB) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
