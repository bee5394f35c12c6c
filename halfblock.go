package ansimate

import "github.com/wbrown/ansimate/imageutil"

// upperHalfBlock paints the top half of a cell with the foreground
// color and leaves the bottom to the background.
const upperHalfBlock = '▀'

// alphaOpaque is the alpha threshold below which a pixel counts as
// transparent.
const alphaOpaque = 128

// renderBlocks paints each cell from a vertically adjacent pixel
// pair: upper half block with foreground = top pixel and background =
// bottom pixel. No thresholding or shape matching is involved.
func renderBlocks(img *imageutil.RGBAImage, o *RenderOptions) *Frame {
	wc, hc := ResolveGrid(img.Width(), img.Height(), ModeBlocks, o)
	if wc == 0 || hc == 0 {
		return NewFrame(0, 0)
	}

	resized := imageutil.Resize(img, wc, hc*2, imageutil.InterpolationArea)

	frame := NewFrame(wc, hc)
	imageutil.ParallelRows(hc, func(y0, y1 int) {
		for cy := y0; cy < y1; cy++ {
			for cx := 0; cx < wc; cx++ {
				frame.set(cx, cy, blockCell(resized, cx, cy, o))
			}
		}
	})
	return frame
}

func blockCell(resized *imageutil.RGBAImage, cx, cy int, o *RenderOptions) Cell {
	topSrc := resized.GetRGB(cx, cy*2)
	top := RGB{R: topSrc.R, G: topSrc.G, B: topSrc.B}
	topA := resized.AlphaAt(cx, cy*2)

	var bot RGB
	botA := uint8(0)
	if cy*2+1 < resized.Height() {
		botSrc := resized.GetRGB(cx, cy*2+1)
		bot = RGB{R: botSrc.R, G: botSrc.G, B: botSrc.B}
		botA = resized.AlphaAt(cx, cy*2+1)
	}

	if !o.UseColor {
		// Half blocks carry their image in the colors; without color
		// the glyph alone still conveys coverage.
		if topA < alphaOpaque && botA < alphaOpaque {
			return Cell{Rune: ' '}
		}
		return Cell{Rune: upperHalfBlock}
	}

	switch {
	case topA < alphaOpaque && botA < alphaOpaque:
		return Cell{Rune: ' '}
	case topA < alphaOpaque:
		// Transparent top: background only.
		return Cell{Rune: ' ', BG: &bot}
	case botA < alphaOpaque:
		// Transparent bottom: upper half with no background.
		return Cell{Rune: upperHalfBlock, FG: &top}
	default:
		return Cell{Rune: upperHalfBlock, FG: &top, BG: &bot}
	}
}
