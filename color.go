package ansimate

import "math"

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Distance returns the Euclidean distance to another color in RGB
// space.
func (rgb RGB) Distance(other RGB) float64 {
	dr := int(rgb.R) - int(other.R)
	dg := int(rgb.G) - int(other.G)
	db := int(rgb.B) - int(other.B)
	return math.Sqrt(float64(dr*dr + dg*dg + db*db))
}

const epsilon = 0.000001 // for floating-point comparisons
