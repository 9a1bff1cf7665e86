package stitch

import "testing"

func TestCompositeOverlapGeometry(t *testing.T) {
	// Panorama rows 0..70 by tens; next frame continues 40..90, overlapping
	// the panorama's last four rows.
	pano := frameFromRows(4, []uint8{0, 10, 20, 30, 40, 50, 60, 70})
	next := frameFromRows(4, []uint8{40, 50, 60, 70, 80, 90})

	o := DefaultOptions()
	o.BlendBandPx = 2
	out, geom := composite(pano, next, OffsetResult{OffsetPx: 2, Confidence: 1}, o)

	if geom.noOverlap {
		t.Fatalf("unexpected no-overlap fallback")
	}
	if geom.overlapH != 4 || geom.seamRow != 0 {
		t.Fatalf("overlap %d seam %d, want 4 and 0", geom.overlapH, geom.seamRow)
	}
	if got := out.Bounds().Dy(); got != 10 {
		t.Fatalf("height = %d, want 10", got)
	}
	for y := 0; y < 10; y++ {
		want := uint8(y * 10)
		if got := out.Pix[y*out.Stride]; got != want {
			t.Fatalf("row %d = %d, want %d", y, got, want)
		}
	}
}

func TestCompositeZeroBlendBand(t *testing.T) {
	doc := docRows(12)
	pano := frameFromRows(4, cropRows(doc, 0, 8))
	next := frameFromRows(4, cropRows(doc, 2, 8))

	o := DefaultOptions()
	o.BlendBandPx = 0
	out, geom := composite(pano, next, OffsetResult{OffsetPx: 2, Confidence: 1}, o)

	if geom.seamRow != 0 {
		t.Fatalf("seam row = %d, want 0 on identical overlap", geom.seamRow)
	}
	if got := out.Bounds().Dy(); got != 10 {
		t.Fatalf("height = %d, want 10", got)
	}
	// No blending: rows [0,2) come from the panorama, [2,10) verbatim from
	// next starting at its first row.
	for y := 0; y < 10; y++ {
		if got := out.Pix[y*out.Stride]; got != doc[y] {
			t.Fatalf("row %d = %d, want %d", y, got, doc[y])
		}
	}
}

func TestCompositeOffsetAtHeightAppends(t *testing.T) {
	pano := frameFromRows(4, []uint8{1, 2, 3, 4, 5})
	next := frameFromRows(4, []uint8{6, 7, 8, 9})

	out, geom := composite(pano, next, OffsetResult{OffsetPx: 4, Confidence: 1}, DefaultOptions())
	if !geom.noOverlap {
		t.Fatalf("offset == height must take the no-overlap branch")
	}
	if got := out.Bounds().Dy(); got != 9 {
		t.Fatalf("height = %d, want panorama + frame = 9", got)
	}
	want := []uint8{1, 2, 3, 4, 5, 6, 7, 8, 9}
	for y, v := range want {
		if got := out.Pix[y*out.Stride]; got != v {
			t.Fatalf("row %d = %d, want %d", y, got, v)
		}
	}
}

func TestCompositeDegenerateOffsetAppends(t *testing.T) {
	pano := frameFromRows(4, []uint8{1, 2, 3})
	next := frameFromRows(4, []uint8{4, 5, 6})

	out, geom := composite(pano, next, OffsetResult{OffsetPx: 0, Confidence: znccUndefined}, DefaultOptions())
	if !geom.noOverlap {
		t.Fatalf("degenerate alignment must append without blending")
	}
	if got := out.Bounds().Dy(); got != 6 {
		t.Fatalf("height = %d, want 6", got)
	}
}

func TestCompositePanoramaNeverShrinks(t *testing.T) {
	doc := docRows(30)
	pano := frameFromRows(4, cropRows(doc, 0, 20))
	next := frameFromRows(4, cropRows(doc, 16, 6))

	// A short frame whose overlap covers most of it: next shares four rows
	// with the panorama and adds two; the height must grow, not shrink.
	out, _ := composite(pano, next, OffsetResult{OffsetPx: 2, Confidence: 1}, DefaultOptions())
	if got := out.Bounds().Dy(); got < 20 {
		t.Fatalf("height = %d, want >= 20", got)
	}
}

func TestCompositeDoesNotMutatePanorama(t *testing.T) {
	doc := docRows(12)
	pano := frameFromRows(4, cropRows(doc, 0, 8))
	next := frameFromRows(4, cropRows(doc, 2, 8))
	before := make([]uint8, len(pano.Pix))
	copy(before, pano.Pix)

	composite(pano, next, OffsetResult{OffsetPx: 2, Confidence: 1}, DefaultOptions())
	for i := range before {
		if pano.Pix[i] != before[i] {
			t.Fatalf("panorama mutated at byte %d", i)
		}
	}
}
