package ansimate

// PixelsPerCell returns the source-pixel footprint of one terminal
// cell for a render mode: 1x1 for ASCII and Matrix, 1x2 for half
// blocks, 2x4 for braille. Decoders use it to size their output.
func PixelsPerCell(mode RenderMode) (px, py int) {
	switch mode {
	case ModeBlocks:
		return 1, 2
	case ModeBraille:
		return 2, 4
	default:
		return 1, 1
	}
}

// ResolveGrid computes the target cell grid for a source of
// (srcW, srcH) pixels. Explicit dimensions are used verbatim; missing
// dimensions are derived from the caps so that the displayed aspect
// ratio (wc*charAspect : hc) matches the source. The cell footprint
// cancels out of the aspect equation: a braille cell shows 2x4 pixels
// inside the same physical cell shape. Both results are at least 1
// for a non-empty source; a zero-dimension source yields a zero grid.
func ResolveGrid(srcW, srcH int, mode RenderMode, o *RenderOptions) (wc, hc int) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	if o.Width > 0 && o.Height > 0 {
		return o.Width, o.Height
	}

	aspect := o.CharAspect
	if aspect <= 0 {
		aspect = 0.5
	}

	maxW := o.MaxWidth
	maxH := o.MaxHeight
	if o.Width > 0 {
		maxW = o.Width
	}
	if o.Height > 0 {
		maxH = o.Height
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}

	// Displayed aspect wc*charAspect/hc tracks srcW/srcH. Fit to
	// width first; fall back to height when that overflows.
	srcAspect := float64(srcW) / float64(srcH)
	wc = maxW
	hc = int(float64(wc)*aspect/srcAspect + 0.5)
	if hc > maxH {
		hc = maxH
		wc = int(float64(hc)*srcAspect/aspect + 0.5)
		if wc > maxW {
			wc = maxW
		}
	}

	if o.Width > 0 {
		wc = o.Width
	}
	if o.Height > 0 {
		hc = o.Height
	}
	if wc < 1 {
		wc = 1
	}
	if hc < 1 {
		hc = 1
	}
	return wc, hc
}
