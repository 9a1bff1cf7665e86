// Package stitch joins a sequence of vertically-scrolling screenshots into
// one tall image. Consecutive frames are aligned with a coarse-to-fine
// normalized cross-correlation search over an image pyramid, then spliced
// along the most similar overlap row with an alpha-feathered band hiding the
// transition.
package stitch

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/soocke/scroll-stitch-go/images"
)

// Result carries the stitched panorama plus one OffsetResult per join:
// Offsets[i] describes the join between input frames i and i+1.
type Result struct {
	Image   *image.RGBA
	Offsets []OffsetResult
	Stats   Stats
}

// Stitch aligns and composites frames into a single panorama. Frames are
// normalized to the width of the first frame (bilinear rescale) before any
// alignment. The output is always fully opaque and at least as tall as the
// first frame. Deterministic: identical inputs and options produce an
// identical panorama and identical offsets.
func Stitch(frames []image.Image, opts Options) (*Result, error) {
	return StitchContext(context.Background(), frames, opts)
}

// StitchContext is Stitch with cooperative cancellation. Cancellation is
// honored at join boundaries: a cancelled call returns the panorama
// assembled so far and the offsets collected up to that point, together with
// the context error.
func StitchContext(ctx context.Context, frames []image.Image, opts Options) (*Result, error) {
	start := time.Now()
	o := opts.withDefaults()
	if err := o.validate(); err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, ErrEmptyInput
	}

	norm, err := normalizeFrames(frames, o)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Image:   norm[0],
		Offsets: make([]OffsetResult, 0, len(norm)-1),
	}
	pano := norm[0]
	for i := 1; i < len(norm); i++ {
		if err := ctx.Err(); err != nil {
			res.Image = pano
			res.Stats.TotalDur = time.Since(start)
			return res, err
		}

		prev, next := norm[i-1], norm[i]
		if prev.Bounds().Dx() != next.Bounds().Dx() {
			return nil, fmt.Errorf("%w: frame %d is %dpx wide, frame %d is %dpx",
				ErrDimensionMismatch, i-1, prev.Bounds().Dx(), i, next.Bounds().Dx())
		}

		estStart := time.Now()
		off, err := estimateOffset(prev, next, o)
		if err != nil {
			return nil, err
		}
		estDur := time.Since(estStart)

		compStart := time.Now()
		grown, geom := composite(pano, next, off, o)
		recycleFrame(pano)
		pano = grown

		j := JoinStats{
			Offset:        off,
			SeamRow:       geom.seamRow,
			OverlapHeight: geom.overlapH,
			NoOverlap:     geom.noOverlap,
			LowConfidence: off.Confidence < o.MinConfidence,
			EstimateDur:   estDur,
			ComposeDur:    time.Since(compStart),
		}
		res.Offsets = append(res.Offsets, off)
		res.Stats.add(j)

		if o.Logger != nil {
			if j.LowConfidence {
				o.Logger.Warn("low confidence join",
					"join", i-1,
					"offset", off.OffsetPx,
					"confidence", off.Confidence,
					"threshold", o.MinConfidence,
				)
			} else {
				o.Logger.Debug("joined frame",
					"join", i-1,
					"offset", off.OffsetPx,
					"confidence", off.Confidence,
					"seamRow", geom.seamRow,
					"overlap", geom.overlapH,
					"panoHeight", pano.Bounds().Dy(),
				)
			}
		}

		// prev is no longer read by any later join; frame 0 already became
		// the initial panorama and was recycled above.
		if i-1 >= 1 {
			recycleFrame(prev)
		}
	}

	res.Image = pano
	res.Stats.TotalDur = time.Since(start)
	return res, nil
}

// normalizeFrames converts every frame to an owned, fully opaque RGBA buffer
// at the width of the first frame, rescaling bilinearly where needed, and fails fast when
// cropping would leave any frame too short to align.
func normalizeFrames(frames []image.Image, o Options) ([]*image.RGBA, error) {
	target := frames[0].Bounds().Dx()
	if target <= 0 || frames[0].Bounds().Dy() <= 0 {
		return nil, fmt.Errorf("%w: first frame is %dx%d",
			ErrDimensionMismatch, target, frames[0].Bounds().Dy())
	}
	norm := make([]*image.RGBA, len(frames))
	for i, f := range frames {
		r := images.ToRGBA(f)
		if r.Bounds().Dx() != target {
			r = images.ScaleToWidth(r, target)
		}
		// Alignment ignores alpha; forcing it opaque keeps the panorama opaque.
		for k := 3; k < len(r.Pix); k += 4 {
			r.Pix[k] = 0xff
		}
		// A lone frame is never aligned, so it may be arbitrarily short.
		if len(frames) > 1 {
			if _, _, err := effectiveBand(r.Bounds().Dy(), o); err != nil {
				return nil, fmt.Errorf("frame %d: %w", i, err)
			}
		}
		norm[i] = r
	}
	return norm, nil
}
