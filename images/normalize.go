// Package images holds pixel-buffer utilities: owned-RGBA conversion and
// bilinear width normalization (used by the stitch core) and PNG encoding.
package images

import (
	"bytes"
	"image"
	stddraw "image/draw"
	"image/png"
	"math"

	xdraw "golang.org/x/image/draw"
)

// ToRGBA returns a freshly allocated RGBA copy of src with bounds translated
// to the origin. A copy is made even when src already is an *image.RGBA so
// callers always own (and may mutate or recycle) the result.
func ToRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	stddraw.Draw(dst, dst.Bounds(), src, b.Min, stddraw.Src)
	return dst
}

// ScaleToWidth rescales src to the given width, keeping the aspect ratio
// (height becomes round(h * width / w)) using bilinear filtering.
func ScaleToWidth(src *image.RGBA, width int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if width < 1 {
		width = 1
	}
	if w == width {
		return src
	}
	nh := int(math.Round(float64(h) * float64(width) / float64(w)))
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, nh))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// EncodePNG encodes an image to PNG bytes with no compression using a fresh
// buffer each call. Simplicity over allocation count; the GC reclaims buffers
// when no longer referenced.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var b bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.NoCompression}
	_ = enc.Encode(&b, img)
	return b.Bytes()
}
