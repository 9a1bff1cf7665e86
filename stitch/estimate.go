package stitch

import (
	"fmt"
	"image"
	"math"
	"runtime"
	"sync"
)

// OffsetResult is the outcome of aligning two consecutive frames. A positive
// offset means the content scrolled up between prev and next: row y of prev
// matches row y-offset of next, so prev[offset..h) overlaps next[0..h-offset).
// Confidence is the correlation score at the finest level, in [-1, 1], or -2
// when every candidate was degenerate (flat or empty overlap).
type OffsetResult struct {
	OffsetPx   int
	Confidence float64
}

// Degenerate reports whether the alignment never saw a usable correlation.
func (r OffsetResult) Degenerate() bool { return r.Confidence <= znccUndefined }

// EstimateVerticalOffset aligns next against prev with a coarse-to-fine
// correlation search and returns the vertical displacement in pixels of the
// cropped band. It is exposed for diagnostic callers; Stitch runs it per join.
func EstimateVerticalOffset(prev, next *image.RGBA, opts Options) (OffsetResult, error) {
	o := opts.withDefaults()
	if err := o.validate(); err != nil {
		return OffsetResult{}, err
	}
	return estimateOffset(prev, next, o)
}

// effectiveBand clamps the configured crops against a frame height and
// returns the top offset plus remaining height.
func effectiveBand(h int, o Options) (top, eff int, err error) {
	top = o.CropTopPx
	if top > h {
		top = h
	}
	bottom := o.CropBottomPx
	if top+bottom > h {
		bottom = h - top
	}
	eff = h - top - bottom
	// Cropping that leaves eight rows or fewer cannot be aligned reliably;
	// uncropped frames only need enough rows for one valid overlap.
	if (top+bottom > 0 && eff <= 8) || eff < minOverlapRows {
		return 0, 0, fmt.Errorf("%w: %d rows after cropping %d+%d from height %d",
			ErrEffectiveHeightTooSmall, eff, o.CropTopPx, o.CropBottomPx, h)
	}
	return top, eff, nil
}

// estimateOffset assumes validated options.
func estimateOffset(prev, next *image.RGBA, o Options) (OffsetResult, error) {
	topPrev, effPrev, err := effectiveBand(prev.Bounds().Dy(), o)
	if err != nil {
		return OffsetResult{}, err
	}
	topNext, effNext, err := effectiveBand(next.Bounds().Dy(), o)
	if err != nil {
		return OffsetResult{}, err
	}

	// The scorer needs equal-size planes. When heights differ, the overlap of
	// a downward scroll lives in prev's bottom rows and next's top rows, so
	// align those bands; the resulting offset is still the scroll distance.
	common := effPrev
	if effNext < common {
		common = effNext
	}
	topPrev += effPrev - common

	var prevPyr, nextPyr []*grayPlane
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		prevPyr = buildPyramid(grayFromRGBA(prev, topPrev, common), o.PyramidLevels)
	}()
	go func() {
		defer wg.Done()
		nextPyr = buildPyramid(grayFromRGBA(next, topNext, common), o.PyramidLevels)
	}()
	wg.Wait()

	levels := len(prevPyr)
	if len(nextPyr) < levels {
		levels = len(nextPyr)
	}

	guess := 0
	best := OffsetResult{OffsetPx: 0, Confidence: znccUndefined}
	for level := levels - 1; level >= 0; level-- {
		a := prevPyr[level]
		b := nextPyr[level]
		hl := a.h

		var rng, coarse int
		if level == levels-1 {
			rng = int(math.Round(float64(hl) * o.MaxSearchPercent))
			coarse = guess
		} else {
			rng = o.RefineWindowPx
			coarse = 2 * guess
		}
		if rng < 1 {
			rng = 1
		}
		from := coarse - rng
		if from < -(hl - 1) {
			from = -(hl - 1)
		}
		to := coarse + rng
		if to > hl-1 {
			to = hl - 1
		}
		if from > to {
			from = to
		}

		off, score := sweepOffsets(a, b, from, to, o)
		if score <= znccUndefined {
			// Every candidate was flat or too short; keep the incoming guess
			// so finer levels can still look around it.
			best = OffsetResult{OffsetPx: 0, Confidence: znccUndefined}
			guess = coarse
			continue
		}
		best = OffsetResult{OffsetPx: off, Confidence: score}
		guess = off
	}

	if best.Degenerate() {
		return OffsetResult{OffsetPx: 0, Confidence: znccUndefined}, nil
	}
	if o.ClampOffsetToRange {
		if best.OffsetPx > common-1 {
			best.OffsetPx = common - 1
		} else if best.OffsetPx < -(common - 1) {
			best.OffsetPx = -(common - 1)
		}
	}
	return best, nil
}

// sweepOffsets scores every integer shift in [from, to] and reduces to the
// argmax. Scoring fans out across a bounded set of goroutines; the reduction
// scans ascending so ties keep the first-encountered shift regardless of
// completion order.
func sweepOffsets(a, b *grayPlane, from, to int, o Options) (int, float64) {
	count := to - from + 1
	scores := make([]float64, count)

	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > count {
		workers = count
	}

	if workers <= 1 {
		for i := 0; i < count; i++ {
			scores[i] = znccScore(a, b, from+i, o.SampleXStep, o.SampleYStep)
		}
	} else {
		sem := make(chan struct{}, workers)
		var wg sync.WaitGroup
		for i := 0; i < count; i++ {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()
				scores[i] = znccScore(a, b, from+i, o.SampleXStep, o.SampleYStep)
			}(i)
		}
		wg.Wait()
	}

	bestOff := from
	bestScore := math.Inf(-1)
	for i := 0; i < count; i++ {
		if scores[i] > bestScore {
			bestScore = scores[i]
			bestOff = from + i
		}
	}
	return bestOff, bestScore
}
