package ansimate

import (
	"math/bits"

	"github.com/wbrown/ansimate/imageutil"
)

// hashSide is the downsampled edge length used by the perceptual
// hash; 8x8 gives a 64-bit signature.
const hashSide = 8

// FrameHash is a perceptual hash of a source image. Hamming distance
// between two hashes approximates visual dissimilarity.
type FrameHash uint64

// HashImage reduces the image to an 8x8 grayscale, takes the mean,
// and sets bit i when pixel i is at or above it.
func HashImage(img *imageutil.RGBAImage) FrameHash {
	small := imageutil.Resize(img, hashSide, hashSide, imageutil.InterpolationArea)
	gray := imageutil.ToGrayscale(small)

	var sum int
	var px [hashSide * hashSide]uint8
	for y := 0; y < hashSide; y++ {
		for x := 0; x < hashSide; x++ {
			v := gray.GetGray(x, y)
			px[y*hashSide+x] = v
			sum += int(v)
		}
	}
	mean := sum / (hashSide * hashSide)

	var h FrameHash
	for i, v := range px {
		if int(v) >= mean {
			h |= 1 << uint(i)
		}
	}
	return h
}

// Distance returns the Hamming distance to another hash.
func (h FrameHash) Distance(other FrameHash) int {
	return bits.OnesCount64(uint64(h ^ other))
}
