package montecarlo

import "math"

// Aggregate is the combined view of several snapshots taken at about the same
// instant.
type Aggregate struct {
	Inside      uint64
	TotalPoints uint64
	Finished    bool
}

// Combine sums the snapshots. Finished is true only when every snapshot is
// finished; an empty input is not finished.
func Combine(snaps []Snapshot) Aggregate {
	agg := Aggregate{Finished: len(snaps) > 0}
	for _, s := range snaps {
		agg.Inside += s.Inside
		agg.TotalPoints += s.Points()
		if !s.Finished {
			agg.Finished = false
		}
	}
	return agg
}

// Estimate returns 4 * inside / total, or NaN when no points were drawn.
func (a Aggregate) Estimate() float64 {
	return EstimatePi(a.Inside, a.TotalPoints)
}

// EstimatePi returns 4 * inside / total, or NaN when total is zero.
func EstimatePi(inside, total uint64) float64 {
	if total == 0 {
		return math.NaN()
	}
	return 4 * float64(inside) / float64(total)
}

// AbsError returns |estimate - π|; NaN propagates.
func AbsError(estimate float64) float64 {
	return math.Abs(estimate - math.Pi)
}
