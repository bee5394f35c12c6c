package ansimate

import "fmt"

const (
	// ESC is the ANSI escape introducer.
	ESC = "\u001b"

	// SGRReset clears all character attributes.
	SGRReset = ESC + "[0m"

	// SGRBold enables bold rendition.
	SGRBold = ESC + "[1m"

	// CursorHome moves the cursor to row 1, column 1.
	CursorHome = ESC + "[H"

	// CursorHide and CursorShow toggle cursor visibility (DECTCEM).
	CursorHide = ESC + "[?25l"
	CursorShow = ESC + "[?25h"

	// AltScreenEnter and AltScreenExit switch the alternate screen
	// buffer.
	AltScreenEnter = ESC + "[?1049h"
	AltScreenExit  = ESC + "[?1049l"

	// SyncBegin and SyncEnd bracket an atomic frame update
	// (DECSET 2026, synchronized output).
	SyncBegin = ESC + "[?2026h"
	SyncEnd   = ESC + "[?2026l"
)

// SGRForeground returns the 24-bit foreground color sequence.
func SGRForeground(c RGB) string {
	return fmt.Sprintf("%s[38;2;%d;%d;%dm", ESC, c.R, c.G, c.B)
}

// SGRBackground returns the 24-bit background color sequence.
func SGRBackground(c RGB) string {
	return fmt.Sprintf("%s[48;2;%d;%d;%dm", ESC, c.R, c.G, c.B)
}

// CursorTo returns the cursor position sequence for a 1-based
// row and column.
func CursorTo(row, col int) string {
	return fmt.Sprintf("%s[%d;%dH", ESC, row, col)
}
