package ansimate

import "testing"

func frameWithFG(w, h int, c RGB) *Frame {
	f := NewFrame(w, h)
	for i := range f.Cells {
		cc := c
		f.Cells[i] = Cell{Rune: '█', FG: &cc}
	}
	return f
}

func TestStabilizeSnapsSmallJitter(t *testing.T) {
	t.Parallel()

	prev := frameWithFG(4, 2, RGB{100, 100, 100})
	next := frameWithFG(4, 2, RGB{104, 102, 98})

	out := StabilizeFrame(prev, next, 15)
	for _, c := range out.Cells {
		if *c.FG != (RGB{100, 100, 100}) {
			t.Fatalf("jittered color not snapped: %+v", *c.FG)
		}
	}
}

func TestStabilizeKeepsGenuineMotion(t *testing.T) {
	t.Parallel()

	prev := frameWithFG(4, 2, RGB{100, 100, 100})
	next := frameWithFG(4, 2, RGB{200, 40, 40})

	out := StabilizeFrame(prev, next, 15)
	for _, c := range out.Cells {
		if *c.FG != (RGB{200, 40, 40}) {
			t.Fatalf("genuine color change snapped away: %+v", *c.FG)
		}
	}
}

func TestStabilizeIsIdempotent(t *testing.T) {
	t.Parallel()

	prev := frameWithFG(3, 3, RGB{50, 60, 70})
	next := frameWithFG(3, 3, RGB{55, 58, 74})

	once := StabilizeFrame(prev, next, 15)
	twice := StabilizeFrame(prev, once, 15)
	for i := range once.Cells {
		if *once.Cells[i].FG != *twice.Cells[i].FG {
			t.Fatal("stability snap is not idempotent")
		}
	}
}

func TestStabilizeIncompatibleGrids(t *testing.T) {
	t.Parallel()

	prev := frameWithFG(2, 2, RGB{10, 10, 10})
	next := frameWithFG(3, 2, RGB{12, 12, 12})

	if out := StabilizeFrame(prev, next, 15); out != next {
		t.Error("mismatched grids should pass through unchanged")
	}
	if out := StabilizeFrame(nil, next, 15); out != next {
		t.Error("missing previous frame should pass through unchanged")
	}
}
