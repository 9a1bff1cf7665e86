package stitch

import "math"

// znccUndefined is the in-band score for cases where the correlation is
// undefined: overlap of fewer than four rows, no sampled points, or a flat
// (near-zero variance) region. It is deliberately outside the valid [-1, 1]
// range so the search can still rank it below any real score.
const znccUndefined = -2.0

// minOverlapRows is the smallest overlap height the scorer accepts. Fewer
// rows carry too little signal to correlate.
const minOverlapRows = 4

// varianceFloor guards the normalization against flat regions.
const varianceFloor = 1e-6

// znccScore computes the zero-mean normalized cross-correlation between two
// equal-size planes under a vertical shift off, sampling with strides sx, sy.
// Positive off models content scrolled up by off rows between a and b, so it
// compares a[off .. h) against b[0 .. h-off). Accumulation is in double
// precision; the inputs are not mutated.
func znccScore(a, b *grayPlane, off, sx, sy int) float64 {
	h := a.h
	w := a.w

	var aStart, bStart, overlap int
	if off >= 0 {
		aStart, bStart = off, 0
		overlap = h - off
	} else {
		aStart, bStart = 0, -off
		overlap = h + off
	}
	if overlap < minOverlapRows {
		return znccUndefined
	}

	var sumA, sumB, sumAA, sumBB, sumAB float64
	n := 0
	for y := 0; y < overlap; y += sy {
		arow := a.pix[(aStart+y)*w:]
		brow := b.pix[(bStart+y)*w:]
		for x := 0; x < w; x += sx {
			av := float64(arow[x])
			bv := float64(brow[x])
			sumA += av
			sumB += bv
			sumAA += av * av
			sumBB += bv * bv
			sumAB += av * bv
			n++
		}
	}
	if n == 0 {
		return znccUndefined
	}

	fn := float64(n)
	meanA := sumA / fn
	meanB := sumB / fn
	varA := sumAA/fn - meanA*meanA
	varB := sumBB/fn - meanB*meanB
	if varA*varB <= varianceFloor {
		return znccUndefined
	}
	cov := sumAB/fn - meanA*meanB
	score := cov / math.Sqrt(varA*varB)
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score
}
