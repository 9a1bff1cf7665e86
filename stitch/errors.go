package stitch

import "errors"

// Fatal error kinds raised from the public entry points before any heavy
// work. Internal degeneracies (flat variance, empty overlap) are not errors;
// they surface as the undefined-score sentinel and the append fallback.
var (
	// ErrEmptyInput means no frames were provided.
	ErrEmptyInput = errors.New("stitch: no input frames")
	// ErrDimensionMismatch means two adjacent frames disagree in width even
	// after normalization.
	ErrDimensionMismatch = errors.New("stitch: frame width mismatch")
	// ErrEffectiveHeightTooSmall means cropping leaves too few rows to align.
	ErrEffectiveHeightTooSmall = errors.New("stitch: effective height too small")
	// ErrInvalidOption means an option field is out of its documented range.
	ErrInvalidOption = errors.New("stitch: invalid option")
)
