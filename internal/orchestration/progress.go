package orchestration

import (
	"io"
	"math"
	"math/bits"
	"sync"
	"time"

	"github.com/agbru/picalc/internal/montecarlo"
)

// buildReport snapshots every worker and aggregates the result. The second
// return value is true once every worker has finished.
func buildReport(workers []*montecarlo.Worker, iterations uint64, elapsed time.Duration) (ProgressReport, bool) {
	snaps := make([]montecarlo.Snapshot, len(workers))
	progress := make([]WorkerProgress, len(workers))
	for i, w := range workers {
		s := w.Snapshot()
		snaps[i] = s
		progress[i] = WorkerProgress{Index: w.Index(), Points: s.Points(), Finished: s.Finished}
	}

	agg := montecarlo.Combine(snaps)
	report := ProgressReport{
		Workers:     progress,
		TotalPoints: agg.TotalPoints,
		Inside:      agg.Inside,
		Estimate:    agg.Estimate(),
		Elapsed:     elapsed,
		Progress:    fraction(agg.TotalPoints, totalBudget(len(workers), iterations), agg.Finished),
	}
	return report, agg.Finished
}

// totalBudget returns workers*iterations, saturating at math.MaxUint64.
func totalBudget(workers int, iterations uint64) uint64 {
	if workers <= 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(workers), iterations)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// clampInt64 converts n for APIs that only take signed values.
func clampInt64(n uint64) int64 {
	if n > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(n)
}

// fraction returns done/budget clamped to [0, 1]. A zero budget counts as
// complete once the workers are finished.
func fraction(done, budget uint64, finished bool) float64 {
	if budget == 0 {
		if finished {
			return 1
		}
		return 0
	}
	f := float64(done) / float64(budget)
	if f > 1 {
		return 1
	}
	return f
}

// newSummary derives the final statistics from the last report.
func newSummary(report ProgressReport, iterations uint64, canceled bool) Summary {
	s := Summary{
		ProgressReport: report,
		Iterations:     iterations,
		AbsError:       montecarlo.AbsError(report.Estimate),
		Canceled:       canceled,
	}
	if secs := report.Elapsed.Seconds(); secs > 0 {
		s.Rate = float64(report.TotalPoints) / secs
	}
	return s
}

// TeeReporter returns a ProgressReporter that calls every observer with each
// report before forwarding it to primary. Observers run on the reporter
// goroutine and must not block.
func TeeReporter(primary ProgressReporter, observers ...func(ProgressReport)) ProgressReporter {
	return ProgressReporterFunc(func(wg *sync.WaitGroup, reports <-chan ProgressReport, out io.Writer) {
		defer wg.Done()

		inner := make(chan ProgressReport, cap(reports))
		var innerWg sync.WaitGroup
		innerWg.Add(1)
		go primary.DisplayProgress(&innerWg, inner, out)

		for r := range reports {
			for _, observe := range observers {
				observe(r)
			}
			inner <- r
		}
		close(inner)
		innerWg.Wait()
	})
}

// DrainChannel reads all reports from the channel without processing.
func DrainChannel(reports <-chan ProgressReport) {
	for range reports {
	}
}
