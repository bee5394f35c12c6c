package ansimate

import (
	"math/rand"
	"testing"
)

func TestAtlasLookupAlwaysInSet(t *testing.T) {
	t.Parallel()

	cs := PresetCharset(CharsetSimple)
	atlas := GetAtlas(cs)

	members := make(map[rune]bool)
	for _, r := range cs.Runes() {
		members[r] = true
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		var v ShapeVec
		for d := 0; d < ShapeDims; d++ {
			v[d] = rng.Float64()
		}
		if got := atlas.Lookup(v); !members[got] {
			t.Fatalf("lookup returned %q, not in charset", got)
		}
	}
}

func TestAtlasNormalizationMax(t *testing.T) {
	t.Parallel()

	atlas := GetAtlas(PresetCharset(CharsetExtended))

	maxVal := 0.0
	for i := range atlas.Chars() {
		v := atlas.Vector(i)
		for _, c := range v {
			if c < 0 {
				t.Fatalf("glyph %d has negative component %f", i, c)
			}
			if c > maxVal {
				maxVal = c
			}
		}
	}
	if maxVal < 0.999 || maxVal > 1.0 {
		t.Errorf("global max after normalization = %f, want 1.0", maxVal)
	}
}

func TestAtlasLookupDeterministic(t *testing.T) {
	t.Parallel()

	atlas := GetAtlas(PresetCharset(CharsetClassic))

	v := ShapeVec{0.4, 0.4, 0.4, 0.4, 0.4, 0.4}
	first := atlas.Lookup(v)
	for i := 0; i < 10; i++ {
		if got := atlas.Lookup(v); got != first {
			t.Fatalf("lookup not deterministic: %q then %q", first, got)
		}
	}
}

func TestAtlasCachedAcrossCalls(t *testing.T) {
	t.Parallel()

	cs := NewCharset(" .#")
	a1 := GetAtlas(cs)
	a2 := GetAtlas(NewCharset(" .#"))
	if a1 != a2 {
		t.Error("atlases for identical charsets should be the same instance")
	}
}

func TestAllOnesQueryPicksDenseGlyph(t *testing.T) {
	t.Parallel()

	atlas := GetAtlas(PresetCharset(CharsetExtended))

	// An all-ones query is the loudest possible cell; it should land
	// on a glyph near the dense end of the ramp.
	got := atlas.Lookup(ShapeVec{1, 1, 1, 1, 1, 1})

	var gotSum float64
	for i, r := range atlas.Chars() {
		if r == got {
			for _, c := range atlas.Vector(i) {
				gotSum += c
			}
			break
		}
	}
	if gotSum < float64(ShapeDims)*0.5 {
		t.Errorf("all-ones lookup chose %q with coverage sum %.2f, want a dense glyph",
			got, gotSum)
	}
}
