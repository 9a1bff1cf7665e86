package stitch

import (
	"errors"
	"testing"
)

func singleLevelOptions() Options {
	o := DefaultOptions()
	o.PyramidLevels = 1
	o.MaxSearchPercent = 0.5
	o.BlendBandPx = 0
	return o
}

func TestEstimateRecoversShiftSingleLevel(t *testing.T) {
	doc := docRows(46)
	prev := frameFromRows(4, cropRows(doc, 0, 40))
	next := frameFromRows(4, cropRows(doc, 6, 40))

	res, err := EstimateVerticalOffset(prev, next, singleLevelOptions())
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if res.OffsetPx != 6 {
		t.Fatalf("offset = %d, want 6", res.OffsetPx)
	}
	if res.Confidence < 0.95 {
		t.Fatalf("confidence = %v, want >= 0.95", res.Confidence)
	}
}

func TestEstimateRecoversShiftMultiLevel(t *testing.T) {
	doc := docRows(76)
	prev := frameFromRows(16, cropRows(doc, 0, 64))
	next := frameFromRows(16, cropRows(doc, 12, 64))

	o := DefaultOptions()
	o.PyramidLevels = 3
	res, err := EstimateVerticalOffset(prev, next, o)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if res.OffsetPx != 12 {
		t.Fatalf("offset = %d, want 12", res.OffsetPx)
	}
	if res.Confidence < 0.95 {
		t.Fatalf("confidence = %v, want >= 0.95", res.Confidence)
	}
}

func TestEstimateNegativeShift(t *testing.T) {
	doc := docRows(46)
	prev := frameFromRows(4, cropRows(doc, 6, 40))
	next := frameFromRows(4, cropRows(doc, 1, 40))

	res, err := EstimateVerticalOffset(prev, next, singleLevelOptions())
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if res.OffsetPx != -5 {
		t.Fatalf("offset = %d, want -5 for content scrolled down", res.OffsetPx)
	}
}

// A fixed header band with per-frame dynamic content (a ticker) must not bias
// the alignment once it is cropped out.
func TestEstimateCropsDynamicHeader(t *testing.T) {
	doc := docRows(45)
	prev := frameFromRows(6, cropRows(doc, 0, 40))
	next := frameFromRows(6, cropRows(doc, 5, 40))
	// Rows [0, 2) simulate the header; its ticker content differs per frame.
	for x := 0; x < 6; x++ {
		setPixel(prev, x, 0, 250, 0, 0)
		setPixel(prev, x, 1, 0, 250, 0)
		setPixel(next, x, 0, uint8(40*x), 90, 200)
		setPixel(next, x, 1, 7, uint8(30*x), 13)
	}

	o := singleLevelOptions()
	o.CropTopPx = 2
	res, err := EstimateVerticalOffset(prev, next, o)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if res.OffsetPx != 5 {
		t.Fatalf("offset = %d, want 5 despite header ticker", res.OffsetPx)
	}
}

func TestEstimateFlatFramesDegenerate(t *testing.T) {
	prev := frameFromRows(4, make([]uint8, 32))
	next := frameFromRows(4, make([]uint8, 32))

	res, err := EstimateVerticalOffset(prev, next, singleLevelOptions())
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if res.OffsetPx != 0 {
		t.Fatalf("offset = %d, want 0 for flat input", res.OffsetPx)
	}
	if !res.Degenerate() {
		t.Fatalf("confidence = %v, want the undefined sentinel", res.Confidence)
	}
}

func TestEstimateRejectsOverCropped(t *testing.T) {
	doc := docRows(12)
	prev := frameFromRows(4, cropRows(doc, 0, 12))
	next := frameFromRows(4, cropRows(doc, 0, 12))

	o := singleLevelOptions()
	o.CropTopPx = 2
	o.CropBottomPx = 2
	_, err := EstimateVerticalOffset(prev, next, o)
	if !errors.Is(err, ErrEffectiveHeightTooSmall) {
		t.Fatalf("err = %v, want ErrEffectiveHeightTooSmall", err)
	}
}

func TestEstimateRejectsInvalidOptions(t *testing.T) {
	doc := docRows(20)
	f := frameFromRows(4, doc)

	bad := []Options{
		{PyramidLevels: -1},
		{MaxSearchPercent: 1.5},
		{SampleXStep: -2},
		{RefineWindowPx: -3},
		{BlendBandPx: -1},
	}
	for i, o := range bad {
		if _, err := EstimateVerticalOffset(f, f, o); !errors.Is(err, ErrInvalidOption) {
			t.Fatalf("case %d: err = %v, want ErrInvalidOption", i, err)
		}
	}
}

func TestEstimateClampsOffsetRange(t *testing.T) {
	doc := docRows(40)
	prev := frameFromRows(4, cropRows(doc, 0, 40))
	next := frameFromRows(4, cropRows(doc, 0, 40))

	o := singleLevelOptions()
	o.ClampOffsetToRange = true
	res, err := EstimateVerticalOffset(prev, next, o)
	if err != nil {
		t.Fatalf("estimate failed: %v", err)
	}
	if res.OffsetPx <= -40 || res.OffsetPx >= 40 {
		t.Fatalf("offset %d outside clamp range", res.OffsetPx)
	}
}

// Worker count must not change the result: the reduction scans ascending
// regardless of completion order.
func TestEstimateDeterministicAcrossWorkers(t *testing.T) {
	doc := docRows(70)
	prev := frameFromRows(8, cropRows(doc, 0, 60))
	next := frameFromRows(8, cropRows(doc, 9, 60))

	o := singleLevelOptions()
	o.Workers = 1
	serial, err := EstimateVerticalOffset(prev, next, o)
	if err != nil {
		t.Fatalf("serial estimate failed: %v", err)
	}
	o.Workers = 8
	parallel, err := EstimateVerticalOffset(prev, next, o)
	if err != nil {
		t.Fatalf("parallel estimate failed: %v", err)
	}
	if serial != parallel {
		t.Fatalf("serial %+v != parallel %+v", serial, parallel)
	}
	if serial.OffsetPx != 9 {
		t.Fatalf("offset = %d, want 9", serial.OffsetPx)
	}
}
