package stitch

import (
	"image"
	"sync"
)

// The compositor allocates a fresh panorama buffer per join; for long
// sequences that retains many large RGBA backing slices until the GC
// catches up. Joins therefore draw their output buffers from a pool and
// return the superseded panorama once it has been copied forward. Callers
// that keep a buffer simply never recycle it; behavior then degrades to the
// plain allocation pattern.

var panoPool sync.Pool // stores *image.RGBA

// acquireFrame returns a reusable RGBA image of w x h. The returned Pix
// length exactly matches w*h*4 and Stride is w*4. Contents are undefined.
func acquireFrame(w, h int) *image.RGBA {
	rect := image.Rect(0, 0, w, h)
	if w <= 0 || h <= 0 {
		return &image.RGBA{Rect: rect}
	}
	needed := w * h * 4
	var img *image.RGBA
	if v := panoPool.Get(); v != nil {
		img = v.(*image.RGBA)
	}
	if img == nil || cap(img.Pix) < needed {
		return &image.RGBA{Pix: make([]uint8, needed), Stride: w * 4, Rect: rect}
	}
	img.Pix = img.Pix[:needed]
	img.Stride = w * 4
	img.Rect = rect
	return img
}

// recycleFrame returns a buffer to the pool. The caller must not touch the
// image afterwards.
func recycleFrame(img *image.RGBA) {
	if img == nil || img.Pix == nil {
		return
	}
	panoPool.Put(img)
}
