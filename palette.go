package ansimate

import "sort"

// ColorNode is a node of a K-D tree over RGB colors, used to map
// arbitrary cell colors onto a quantized palette.
type ColorNode struct {
	Color       RGB
	Left, Right *ColorNode
	SplitAxis   int
}

// buildColorTree constructs a K-D tree from a list of colors. The
// split axis is the channel with the largest range, which preserves
// subtle shade differences in small palettes, and the sort is fully
// deterministic so identical palettes produce identical trees.
func buildColorTree(colors []RGB, depth, maxDepth int) *ColorNode {
	if len(colors) == 0 || depth >= maxDepth {
		return nil
	}

	axis := chooseColorAxis(colors)

	sort.Slice(colors, func(i, j int) bool {
		ic := colorComponent(colors[i], axis)
		jc := colorComponent(colors[j], axis)
		if ic != jc {
			return ic < jc
		}
		if colors[i].R != colors[j].R {
			return colors[i].R < colors[j].R
		}
		if colors[i].G != colors[j].G {
			return colors[i].G < colors[j].G
		}
		return colors[i].B < colors[j].B
	})

	median := len(colors) / 2
	for median < len(colors)-1 &&
		colorComponent(colors[median], axis) == colorComponent(colors[median+1], axis) {
		median++
	}

	return &ColorNode{
		Color:     colors[median],
		Left:      buildColorTree(colors[:median], depth+1, maxDepth),
		Right:     buildColorTree(colors[median+1:], depth+1, maxDepth),
		SplitAxis: axis,
	}
}

// chooseColorAxis selects the channel with the largest value range.
func chooseColorAxis(colors []RGB) int {
	minC, maxC := colors[0], colors[0]
	for _, c := range colors {
		if c.R < minC.R {
			minC.R = c.R
		}
		if c.R > maxC.R {
			maxC.R = c.R
		}
		if c.G < minC.G {
			minC.G = c.G
		}
		if c.G > maxC.G {
			maxC.G = c.G
		}
		if c.B < minC.B {
			minC.B = c.B
		}
		if c.B > maxC.B {
			maxC.B = c.B
		}
	}
	rangeR := maxC.R - minC.R
	rangeG := maxC.G - minC.G
	rangeB := maxC.B - minC.B
	if rangeR >= rangeG && rangeR >= rangeB {
		return 0
	} else if rangeG >= rangeB {
		return 1
	}
	return 2
}

func colorComponent(c RGB, axis int) uint8 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// nearest finds the palette color with minimum Euclidean distance to
// the target.
func (node *ColorNode) nearest(target RGB, best RGB, bestDist float64) (RGB, float64) {
	if node == nil {
		return best, bestDist
	}

	dist := node.Color.Distance(target)
	if dist < bestDist {
		best = node.Color
		bestDist = dist
	}

	diff := float64(colorComponent(target, node.SplitAxis)) -
		float64(colorComponent(node.Color, node.SplitAxis))

	next, other := node.Left, node.Right
	if diff >= 0 {
		next, other = node.Right, node.Left
	}

	best, bestDist = next.nearest(target, best, bestDist)
	if diff*diff < bestDist*bestDist {
		best, bestDist = other.nearest(target, best, bestDist)
	}

	return best, bestDist
}

// Palette is a fixed set of colors with nearest-entry mapping.
type Palette struct {
	colors []RGB
	tree   *ColorNode
}

// NewPalette indexes a color list for nearest-entry lookup.
func NewPalette(colors []RGB) *Palette {
	owned := make([]RGB, len(colors))
	copy(owned, colors)
	scratch := make([]RGB, len(colors))
	copy(scratch, colors)
	return &Palette{
		colors: owned,
		tree:   buildColorTree(scratch, 0, 32),
	}
}

// Colors returns the palette entries.
func (p *Palette) Colors() []RGB {
	return p.colors
}

// Nearest maps a color to its closest palette entry.
func (p *Palette) Nearest(c RGB) RGB {
	if p.tree == nil {
		return c
	}
	best, _ := p.tree.nearest(c, p.tree.Color, p.tree.Color.Distance(c)+1)
	return best
}

// QuantizePalette reduces an arbitrary color population to at most n
// representatives by median-cut box splitting: repeatedly split the
// box with the largest channel range at its median, then average each
// final box.
func QuantizePalette(colors []RGB, n int) *Palette {
	if n < 1 {
		n = 1
	}
	if len(colors) == 0 {
		return NewPalette(nil)
	}

	boxes := [][]RGB{append([]RGB(nil), colors...)}
	for len(boxes) < n {
		// Split the box with the widest channel range.
		widest, widestRange := -1, -1
		for i, box := range boxes {
			if len(box) < 2 {
				continue
			}
			r := boxRange(box)
			if r > widestRange {
				widestRange = r
				widest = i
			}
		}
		if widest < 0 {
			break
		}

		box := boxes[widest]
		axis := chooseColorAxis(box)
		sort.Slice(box, func(i, j int) bool {
			return colorComponent(box[i], axis) < colorComponent(box[j], axis)
		})
		mid := len(box) / 2
		boxes[widest] = box[:mid]
		boxes = append(boxes, box[mid:])
	}

	reps := make([]RGB, 0, len(boxes))
	for _, box := range boxes {
		if len(box) == 0 {
			continue
		}
		var sumR, sumG, sumB int
		for _, c := range box {
			sumR += int(c.R)
			sumG += int(c.G)
			sumB += int(c.B)
		}
		reps = append(reps, RGB{
			R: uint8(sumR / len(box)),
			G: uint8(sumG / len(box)),
			B: uint8(sumB / len(box)),
		})
	}
	return NewPalette(reps)
}

// boxRange returns the widest channel range of a color box.
func boxRange(box []RGB) int {
	minC, maxC := box[0], box[0]
	for _, c := range box {
		if c.R < minC.R {
			minC.R = c.R
		}
		if c.R > maxC.R {
			maxC.R = c.R
		}
		if c.G < minC.G {
			minC.G = c.G
		}
		if c.G > maxC.G {
			maxC.G = c.G
		}
		if c.B < minC.B {
			minC.B = c.B
		}
		if c.B > maxC.B {
			maxC.B = c.B
		}
	}
	r := int(maxC.R) - int(minC.R)
	if g := int(maxC.G) - int(minC.G); g > r {
		r = g
	}
	if b := int(maxC.B) - int(minC.B); b > r {
		r = b
	}
	return r
}
