package stitch

import "image"

// Test fixtures: synthetic frames cut from a tall "document" of per-row
// luminance values, mirroring how the stitcher sees a scrolled view.

// docRows returns h deterministic pseudo-random row values. The generator is
// a full-period LCG so rows never repeat within 256 and the correlation has
// no periodic structure to alias on.
func docRows(h int) []uint8 {
	rows := make([]uint8, h)
	v := uint32(37)
	for i := range rows {
		v = v*73 + 41
		rows[i] = uint8(v)
	}
	return rows
}

// frameFromRows builds a w-wide RGBA frame whose row y is the uniform gray
// rows[y], fully opaque.
func frameFromRows(w int, rows []uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, len(rows)))
	for y, v := range rows {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			img.Pix[i] = v
			img.Pix[i+1] = v
			img.Pix[i+2] = v
			img.Pix[i+3] = 255
		}
	}
	return img
}

// cropRows returns rows [top, top+h) of a document.
func cropRows(doc []uint8, top, h int) []uint8 {
	out := make([]uint8, h)
	copy(out, doc[top:top+h])
	return out
}

// planeFromRows builds a grayscale plane with one uniform value per row.
func planeFromRows(w int, rows []float32) *grayPlane {
	g := &grayPlane{w: w, h: len(rows), pix: make([]float32, w*len(rows))}
	for y, v := range rows {
		for x := 0; x < w; x++ {
			g.pix[y*w+x] = v
		}
	}
	return g
}

// setPixel writes an opaque RGB value at (x, y).
func setPixel(img *image.RGBA, x, y int, r, g, b uint8) {
	i := y*img.Stride + x*4
	img.Pix[i] = r
	img.Pix[i+1] = g
	img.Pix[i+2] = b
	img.Pix[i+3] = 255
}

// samePixels reports whether two frames have identical dimensions and RGB
// content (alpha ignored).
func samePixels(a, b *image.RGBA) bool {
	if a.Bounds().Dx() != b.Bounds().Dx() || a.Bounds().Dy() != b.Bounds().Dy() {
		return false
	}
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ai := y*a.Stride + x*4
			bi := y*b.Stride + x*4
			if a.Pix[ai] != b.Pix[bi] || a.Pix[ai+1] != b.Pix[bi+1] || a.Pix[ai+2] != b.Pix[bi+2] {
				return false
			}
		}
	}
	return true
}
