package ansimate

import (
	"image/color"
	"testing"
)

func TestHashIdenticalImagesMatch(t *testing.T) {
	t.Parallel()

	a := gradientImage(64, 64)
	b := gradientImage(64, 64)
	if HashImage(a).Distance(HashImage(b)) != 0 {
		t.Error("identical images should hash identically")
	}
}

func TestHashDistinguishesOpposites(t *testing.T) {
	t.Parallel()

	// A left-bright and a right-bright gradient are visually
	// opposite; their hashes should disagree on many bits.
	a := gradientImage(64, 64)
	b := solidImage(64, 64, color.RGBA{0, 0, 0, 255})
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8((63 - x) * 255 / 63)
			b.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}

	if d := HashImage(a).Distance(HashImage(b)); d < 16 {
		t.Errorf("opposite gradients only %d bits apart", d)
	}
}

func TestHashSolidImagesNearby(t *testing.T) {
	t.Parallel()

	a := solidImage(32, 32, color.RGBA{100, 100, 100, 255})
	b := solidImage(32, 32, color.RGBA{104, 104, 104, 255})
	if d := HashImage(a).Distance(HashImage(b)); d > 8 {
		t.Errorf("near-identical solids %d bits apart", d)
	}
}
