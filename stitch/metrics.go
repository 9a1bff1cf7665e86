package stitch

import "time"

// JoinStats describes one pairwise join for instrumentation.
type JoinStats struct {
	Offset        OffsetResult
	SeamRow       int
	OverlapHeight int
	// NoOverlap is set when the join fell back to a plain append, either
	// because the offset consumed the whole frame or because the alignment
	// was degenerate.
	NoOverlap bool
	// LowConfidence is set when the score fell below Options.MinConfidence.
	// Diagnostic only; the join proceeds unchanged.
	LowConfidence bool
	EstimateDur   time.Duration
	ComposeDur    time.Duration
}

// Stats summarises a whole stitch run.
type Stats struct {
	Joins              []JoinStats
	LowConfidenceJoins int
	AvgEstimate        time.Duration
	TotalDur           time.Duration
}

// add folds one join into the aggregate counters.
func (s *Stats) add(j JoinStats) {
	s.Joins = append(s.Joins, j)
	if j.LowConfidence {
		s.LowConfidenceJoins++
	}
	var sum time.Duration
	for _, jj := range s.Joins {
		sum += jj.EstimateDur
	}
	s.AvgEstimate = sum / time.Duration(len(s.Joins))
}
