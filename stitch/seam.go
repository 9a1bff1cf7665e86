package stitch

import (
	"image"
	"math"
)

// findSeamRow picks the row inside the overlap where the panorama and the
// next frame look most alike, measured as the L1 color distance over a
// central horizontal strip. The strip spans [round(0.1*w), round(0.9*w)) so
// scrollbars and dynamic side chrome never vote. Ties keep the first row.
func findSeamRow(pano, next *image.RGBA, alignTop, overlapH int) int {
	w := pano.Bounds().Dx()
	x0 := int(math.Round(0.1 * float64(w)))
	x1 := int(math.Round(0.9 * float64(w)))
	if x1 <= x0 {
		x0, x1 = 0, w
	}

	bestRow := 0
	bestSum := -1
	for y := 0; y < overlapH; y++ {
		prow := pano.Pix[(alignTop+y)*pano.Stride:]
		nrow := next.Pix[y*next.Stride:]
		sum := 0
		for x := x0; x < x1; x++ {
			i := x * 4
			sum += absInt(int(prow[i]) - int(nrow[i]))
			sum += absInt(int(prow[i+1]) - int(nrow[i+1]))
			sum += absInt(int(prow[i+2]) - int(nrow[i+2]))
		}
		if bestSum < 0 || sum < bestSum {
			bestSum = sum
			bestRow = y
		}
	}
	return bestRow
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
