package stitch

import "image"

// joinGeometry captures what the compositor decided for one join, feeding
// the per-join diagnostics.
type joinGeometry struct {
	seamRow   int
	overlapH  int
	noOverlap bool
}

// composite grows the running panorama by one frame. Both images must share
// width. The returned image is a fresh buffer (possibly pooled); pano is read
// but never mutated, so the caller decides when to recycle it.
func composite(pano, next *image.RGBA, res OffsetResult, o Options) (*image.RGBA, joinGeometry) {
	w := pano.Bounds().Dx()
	hp := pano.Bounds().Dy()
	h := next.Bounds().Dy()

	// Offsets at or beyond the frame height leave no shared rows; the raw
	// value decides that before any clamping.
	overlapH := h - res.OffsetPx
	if res.OffsetPx < 0 {
		overlapH = h + res.OffsetPx
	}
	if overlapH < 0 {
		overlapH = 0
	}
	if overlapH > h {
		overlapH = h
	}
	if overlapH > hp {
		overlapH = hp
	}
	// A degenerate alignment carries no usable offset; gluing along a guessed
	// seam would tear content, so append whole.
	if res.Degenerate() {
		overlapH = 0
	}

	if overlapH <= 0 {
		out := acquireFrame(w, hp+h)
		copyRows(out, 0, pano, 0, hp)
		copyRows(out, hp, next, 0, h)
		return out, joinGeometry{overlapH: 0, noOverlap: true}
	}

	alignTop := hp - overlapH
	seamRow := findSeamRow(pano, next, alignTop, overlapH)

	band := o.BlendBandPx
	if band < 0 {
		band = 0
	}
	seamStart := alignTop + seamRow - band/2
	if seamStart < 0 {
		seamStart = 0
	} else if seamStart > hp {
		seamStart = hp
	}
	seamEnd := seamStart + band
	if seamEnd > hp {
		seamEnd = hp
	}

	newHeight := alignTop + h
	if newHeight < hp {
		newHeight = hp
	}

	out := acquireFrame(w, newHeight)
	copyRows(out, 0, pano, 0, hp)

	for y := 0; y < seamEnd-seamStart; y++ {
		alpha := 1.0
		if band > 1 {
			alpha = float64(y) / float64(band-1)
		}
		ny := seamStart + y - alignTop
		if ny < 0 || ny >= h {
			continue
		}
		dst := out.Pix[(seamStart+y)*out.Stride:]
		rowP := pano.Pix[(seamStart+y)*pano.Stride:]
		rowN := next.Pix[ny*next.Stride:]
		blendRow(dst, rowP, rowN, alpha, w)
	}

	tailStart := seamRow + (band+1)/2
	if tailStart < 0 {
		tailStart = 0
	}
	// Rows below the panorama have nothing to blend with; when the band
	// reaches past its bottom the tail starts there so no row stays unwritten.
	if alignTop+tailStart > hp {
		tailStart = hp - alignTop
	}
	if tailStart < h {
		rows := h - tailStart
		if alignTop+tailStart+rows > newHeight {
			rows = newHeight - alignTop - tailStart
		}
		if rows > 0 {
			copyRows(out, alignTop+tailStart, next, tailStart, rows)
		}
	}
	return out, joinGeometry{seamRow: seamRow, overlapH: overlapH}
}

// copyRows copies rows [srcY, srcY+n) of src into dst starting at dstY.
func copyRows(dst *image.RGBA, dstY int, src *image.RGBA, srcY, n int) {
	w4 := dst.Bounds().Dx() * 4
	for y := 0; y < n; y++ {
		d := (dstY + y) * dst.Stride
		s := (srcY + y) * src.Stride
		copy(dst.Pix[d:d+w4], src.Pix[s:s+w4])
	}
}
