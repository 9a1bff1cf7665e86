package stitch

import "image"

// grayPlane is a row-major float32 luminance buffer. Values stay in [0, 255];
// no rounding or clamping is applied on conversion.
type grayPlane struct {
	w, h int
	pix  []float32
}

// grayFromRGBA converts rows [top, top+height) of an RGBA frame to a
// luminance plane using Rec. 601 weights. Alpha is ignored.
func grayFromRGBA(img *image.RGBA, top, height int) *grayPlane {
	b := img.Bounds()
	w := b.Dx()
	g := &grayPlane{w: w, h: height, pix: make([]float32, w*height)}
	idx := 0
	for y := 0; y < height; y++ {
		row := img.Pix[(top+y)*img.Stride : (top+y)*img.Stride+w*4]
		for x := 0; x < w; x++ {
			i := x * 4
			r := float32(row[i])
			gr := float32(row[i+1])
			bl := float32(row[i+2])
			g.pix[idx] = 0.299*r + 0.587*gr + 0.114*bl
			idx++
		}
	}
	return g
}

// at returns the luminance at (x, y). Callers keep coordinates in range.
func (g *grayPlane) at(x, y int) float32 {
	return g.pix[y*g.w+x]
}
