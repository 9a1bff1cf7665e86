package stitch

import (
	"fmt"
	"log/slog"
)

// Options configures offset estimation and compositing. The zero value of a
// numeric field means "use the default", except CropTopPx, CropBottomPx and
// BlendBandPx, where zero is taken literally; explicitly out-of-range values are
// rejected with ErrInvalidOption when the option enters a public entry point.
type Options struct {
	// PyramidLevels is the number of pyramid levels; the coarse search runs
	// at the smallest level.
	PyramidLevels int
	// MaxSearchPercent bounds the coarse search to ±round(h_coarse * p).
	MaxSearchPercent float64
	// RefineWindowPx bounds each finer-level search to ± this many pixels
	// around the upscaled coarse guess.
	RefineWindowPx int
	// SampleXStep / SampleYStep are the pixel strides used when sampling the
	// overlap inside the correlation. Larger strides trade accuracy for speed.
	SampleXStep int
	SampleYStep int
	// CropTopPx / CropBottomPx remove fixed header/footer bands from both
	// frames before alignment. The compositor still glues whole frames.
	CropTopPx    int
	CropBottomPx int
	// MinConfidence marks a join as unreliable when the best correlation
	// score falls below it. Reported and logged, never enforced.
	MinConfidence float64
	// BlendBandPx is the height of the alpha-feather band around the seam.
	BlendBandPx int
	// ClampOffsetToRange clamps the returned offset into [-(h_eff-1), h_eff-1].
	ClampOffsetToRange bool
	// Workers bounds the per-level scoring fan-out; 0 means runtime.NumCPU().
	// Has no effect on the result, only on wall time.
	Workers int
	// Logger receives per-join diagnostics. Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns the options used when a field is left at its zero
// value.
func DefaultOptions() Options {
	return Options{
		PyramidLevels:      3,
		MaxSearchPercent:   0.5,
		RefineWindowPx:     5,
		SampleXStep:        1,
		SampleYStep:        1,
		CropTopPx:          0,
		CropBottomPx:       0,
		MinConfidence:      0.35,
		BlendBandPx:        16,
		ClampOffsetToRange: true,
		Workers:            0,
	}
}

// withDefaults fills zero-valued fields from DefaultOptions. Crop and blend
// fields keep zero as a meaningful value.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PyramidLevels == 0 {
		o.PyramidLevels = d.PyramidLevels
	}
	if o.MaxSearchPercent == 0 {
		o.MaxSearchPercent = d.MaxSearchPercent
	}
	if o.RefineWindowPx == 0 {
		o.RefineWindowPx = d.RefineWindowPx
	}
	if o.SampleXStep == 0 {
		o.SampleXStep = d.SampleXStep
	}
	if o.SampleYStep == 0 {
		o.SampleYStep = d.SampleYStep
	}
	if o.MinConfidence == 0 {
		o.MinConfidence = d.MinConfidence
	}
	return o
}

// validate rejects explicitly out-of-range settings. Called after
// withDefaults, so zero values are no longer present in the checked fields.
func (o Options) validate() error {
	if o.PyramidLevels < 1 {
		return fmt.Errorf("%w: pyramid levels %d < 1", ErrInvalidOption, o.PyramidLevels)
	}
	if o.MaxSearchPercent <= 0 || o.MaxSearchPercent > 1 {
		return fmt.Errorf("%w: max search percent %v outside (0, 1]", ErrInvalidOption, o.MaxSearchPercent)
	}
	if o.RefineWindowPx < 1 {
		return fmt.Errorf("%w: refine window %d < 1", ErrInvalidOption, o.RefineWindowPx)
	}
	if o.SampleXStep < 1 || o.SampleYStep < 1 {
		return fmt.Errorf("%w: sample steps %dx%d must be >= 1", ErrInvalidOption, o.SampleXStep, o.SampleYStep)
	}
	if o.CropTopPx < 0 || o.CropBottomPx < 0 {
		return fmt.Errorf("%w: negative crop %d/%d", ErrInvalidOption, o.CropTopPx, o.CropBottomPx)
	}
	if o.BlendBandPx < 0 {
		return fmt.Errorf("%w: negative blend band %d", ErrInvalidOption, o.BlendBandPx)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidOption, o.Workers)
	}
	return nil
}
