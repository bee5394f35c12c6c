package player

import (
	"strings"
	"testing"

	"github.com/wbrown/ansimate"
)

func testFrame(w, h int, fill rune) *ansimate.Frame {
	f := ansimate.NewFrame(w, h)
	for i := range f.Cells {
		f.Cells[i].Rune = fill
	}
	return f
}

func TestDeltaFirstFrameIsFullRedraw(t *testing.T) {
	t.Parallel()

	var d deltaBuffer
	if _, ok := d.Encode(testFrame(4, 2, 'a')); ok {
		t.Error("first frame should request a full redraw")
	}
}

func TestDeltaIdenticalFrameEmitsNothing(t *testing.T) {
	t.Parallel()

	var d deltaBuffer
	f := testFrame(6, 3, '⣿')
	d.Encode(f)

	payload, ok := d.Encode(testFrame(6, 3, '⣿'))
	if !ok {
		t.Fatal("second frame of the same shape should delta")
	}
	if payload != "" {
		t.Errorf("identical frame emitted %q", payload)
	}
}

func TestDeltaEmitsOnlyChangedCells(t *testing.T) {
	t.Parallel()

	var d deltaBuffer
	d.Encode(testFrame(8, 4, '⠀'))

	next := testFrame(8, 4, '⠀')
	next.Cells[2*8+5].Rune = '⣿'

	payload, ok := d.Encode(next)
	if !ok {
		t.Fatal("expected delta encoding")
	}
	if !strings.Contains(payload, "[3;6H") {
		t.Errorf("payload missing cursor move to changed cell: %q", payload)
	}
	if strings.Count(payload, "⣿") != 1 {
		t.Errorf("payload should carry exactly the changed glyph: %q", payload)
	}
	if strings.Contains(payload, "⠀") {
		t.Errorf("payload carries unchanged glyphs: %q", payload)
	}
}

func TestDeltaElidesMovesForRuns(t *testing.T) {
	t.Parallel()

	var d deltaBuffer
	d.Encode(testFrame(8, 2, '.'))

	next := testFrame(8, 2, '.')
	for x := 2; x <= 5; x++ {
		next.Cells[x].Rune = '#'
	}

	payload, ok := d.Encode(next)
	if !ok {
		t.Fatal("expected delta encoding")
	}
	// Four consecutive changed cells need exactly one cursor move.
	if got := strings.Count(payload, "H"); got != 1 {
		t.Errorf("run of changes used %d cursor moves, want 1: %q", got, payload)
	}
}

func TestDeltaShapeChangeForcesRedraw(t *testing.T) {
	t.Parallel()

	var d deltaBuffer
	d.Encode(testFrame(4, 4, 'x'))
	if _, ok := d.Encode(testFrame(5, 4, 'x')); ok {
		t.Error("grid shape change should force a full redraw")
	}
}

func TestDeltaResetForcesRedraw(t *testing.T) {
	t.Parallel()

	var d deltaBuffer
	d.Encode(testFrame(4, 4, 'x'))
	d.Reset()
	if _, ok := d.Encode(testFrame(4, 4, 'x')); ok {
		t.Error("Reset should force a full redraw")
	}
}

func TestDeltaColorChangeDetected(t *testing.T) {
	t.Parallel()

	red := ansimate.RGB{R: 255}
	blue := ansimate.RGB{B: 255}

	var d deltaBuffer
	first := testFrame(2, 1, '█')
	first.Cells[0].FG = &red
	d.Encode(first)

	next := testFrame(2, 1, '█')
	next.Cells[0].FG = &blue

	payload, ok := d.Encode(next)
	if !ok {
		t.Fatal("expected delta encoding")
	}
	if !strings.Contains(payload, "[38;2;0;0;255m") {
		t.Errorf("recolored cell not re-emitted: %q", payload)
	}
}
