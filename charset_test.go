package ansimate

import "testing"

func TestPresetCharsetSizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		preset CharsetPreset
		want   int
	}{
		{"extended", CharsetExtended, 93},
		{"simple", CharsetSimple, 10},
		{"block", CharsetBlock, 5},
		{"classic", CharsetClassic, 71},
	}

	for _, tt := range tests {
		cs := PresetCharset(tt.preset)
		if cs.Len() != tt.want {
			t.Errorf("%s: got %d glyphs, want %d", tt.name, cs.Len(), tt.want)
		}
	}
}

func TestCustomCharset(t *testing.T) {
	t.Parallel()

	cs := NewCharset("ab█")
	if cs.Len() != 3 {
		t.Fatalf("got %d glyphs, want 3", cs.Len())
	}
	runes := cs.Runes()
	if runes[0] != 'a' || runes[2] != '█' {
		t.Errorf("rune order not preserved: %q", string(runes))
	}
}

func TestCharsetKeyIdentifiesContents(t *testing.T) {
	t.Parallel()

	a := NewCharset("abc")
	b := NewCharset("abc")
	c := NewCharset("abd")
	if a.Key() != b.Key() {
		t.Error("identical charsets should share a key")
	}
	if a.Key() == c.Key() {
		t.Error("different charsets should not share a key")
	}
}
