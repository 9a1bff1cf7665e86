package stitch

// buildPyramid returns levels progressively half-sized planes, level 0 being
// the input. Each level halves both dimensions with integer division, never
// below 1. Halving stops early once a level reaches 1x1; the remaining slots
// are simply not produced, so callers must use len() rather than the
// requested count.
func buildPyramid(base *grayPlane, levels int) []*grayPlane {
	if levels < 1 {
		levels = 1
	}
	pyr := make([]*grayPlane, 1, levels)
	pyr[0] = base
	for k := 1; k < levels; k++ {
		prev := pyr[k-1]
		if prev.w <= 1 && prev.h <= 1 {
			break
		}
		pyr = append(pyr, downsample(prev))
	}
	return pyr
}

// downsample halves a plane. When both dimensions divide cleanly the result
// is a 2x2 box average; otherwise each destination pixel is a bilinear sample
// at the center of its source cell. Either way a shift of d pixels at the
// destination corresponds to a shift of 2d at the source within one pixel,
// which is the property the coarse-to-fine search relies on.
func downsample(src *grayPlane) *grayPlane {
	nw := src.w / 2
	if nw < 1 {
		nw = 1
	}
	nh := src.h / 2
	if nh < 1 {
		nh = 1
	}
	dst := &grayPlane{w: nw, h: nh, pix: make([]float32, nw*nh)}

	if src.w == nw*2 && src.h == nh*2 {
		for y := 0; y < nh; y++ {
			srow0 := src.pix[(2*y)*src.w:]
			srow1 := src.pix[(2*y+1)*src.w:]
			drow := dst.pix[y*nw : y*nw+nw]
			for x := 0; x < nw; x++ {
				sx := 2 * x
				drow[x] = (srow0[sx] + srow0[sx+1] + srow1[sx] + srow1[sx+1]) * 0.25
			}
		}
		return dst
	}

	// Odd dimension: sample the source grid bilinearly at destination cell
	// centers.
	xRatio := float64(src.w) / float64(nw)
	yRatio := float64(src.h) / float64(nh)
	for y := 0; y < nh; y++ {
		sy := (float64(y)+0.5)*yRatio - 0.5
		y0 := int(sy)
		if y0 < 0 {
			y0 = 0
		}
		y1 := y0 + 1
		if y1 >= src.h {
			y1 = src.h - 1
		}
		fy := float32(sy - float64(y0))
		if fy < 0 {
			fy = 0
		}
		for x := 0; x < nw; x++ {
			sx := (float64(x)+0.5)*xRatio - 0.5
			x0 := int(sx)
			if x0 < 0 {
				x0 = 0
			}
			x1 := x0 + 1
			if x1 >= src.w {
				x1 = src.w - 1
			}
			fx := float32(sx - float64(x0))
			if fx < 0 {
				fx = 0
			}
			top := src.at(x0, y0)*(1-fx) + src.at(x1, y0)*fx
			bot := src.at(x0, y1)*(1-fx) + src.at(x1, y1)*fx
			dst.pix[y*nw+x] = top*(1-fy) + bot*fy
		}
	}
	return dst
}
