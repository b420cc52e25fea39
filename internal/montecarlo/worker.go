package montecarlo

import (
	"context"
	"sync/atomic"
)

// PublishEvery is the number of draws a worker accumulates locally before
// publishing its counts and checking for cancellation.
const PublishEvery = 4096

// Snapshot is a point-in-time view of a worker's counters.
type Snapshot struct {
	Inside   uint64
	Outside  uint64
	Finished bool
}

// Points returns the number of draws the snapshot accounts for.
func (s Snapshot) Points() uint64 {
	return s.Inside + s.Outside
}

// Worker accumulates inside/outside counts for one sampling goroutine.
//
// Only the goroutine running Sample writes to a Worker. Snapshot may be
// called from any goroutine at any time.
type Worker struct {
	index    int
	source   PointSource
	inside   atomic.Uint64
	outside  atomic.Uint64
	finished atomic.Bool
	started  atomic.Bool
}

// NewWorker creates a worker with zero counts drawing from source.
func NewWorker(index int, source PointSource) *Worker {
	return &Worker{index: index, source: source}
}

// Index returns the worker's position in its coordinator.
func (w *Worker) Index() int {
	return w.index
}

// ContainsPoint reports whether (x, y) lies within or on the unit circle.
func ContainsPoint(x, y float64) bool {
	return x*x+y*y <= 1
}

// Sample performs exactly iterations draws and then marks the worker
// finished. Counts are published every PublishEvery draws and once more at
// the end.
//
// If ctx is canceled between batches, Sample stops early, still marks the
// worker finished with the counts reached so far, and returns ctx.Err().
// Calling Sample a second time on the same worker panics.
func (w *Worker) Sample(ctx context.Context, iterations uint64) error {
	if !w.started.CompareAndSwap(false, true) {
		panic("montecarlo: Sample called twice on the same worker")
	}
	defer w.finished.Store(true)

	var inside, outside uint64
	for done := uint64(0); done < iterations; {
		batch := min(iterations-done, PublishEvery)
		for range batch {
			if ContainsPoint(w.source.Point()) {
				inside++
			} else {
				outside++
			}
		}
		done += batch

		w.inside.Store(inside)
		w.outside.Store(outside)

		if done < iterations {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Snapshot returns the current counters. The finished flag is loaded first:
// if it is true, the counters read afterwards are final.
func (w *Worker) Snapshot() Snapshot {
	finished := w.finished.Load()
	return Snapshot{
		Inside:   w.inside.Load(),
		Outside:  w.outside.Load(),
		Finished: finished,
	}
}
