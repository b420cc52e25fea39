//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"io"
	"sync"
	"time"
)

// WorkerProgress is one worker's line in a progress report.
type WorkerProgress struct {
	// Index is the worker's position, 0..N-1.
	Index int
	// Points is inside + outside as last published by the worker.
	Points uint64
	// Finished is true once the worker stopped drawing.
	Finished bool
}

// ProgressReport is the aggregated view sent to a ProgressReporter once per
// display cycle.
type ProgressReport struct {
	// Workers lists per-worker progress in index order.
	Workers []WorkerProgress
	// TotalPoints is the sum of Points over all workers.
	TotalPoints uint64
	// Inside is the sum of inside counts over all workers.
	Inside uint64
	// Estimate is 4 * Inside / TotalPoints, NaN when TotalPoints is 0.
	Estimate float64
	// Elapsed is the time since the workers were launched.
	Elapsed time.Duration
	// Progress is TotalPoints over the total budget, in [0, 1].
	Progress float64
	// Done marks the last report of a run.
	Done bool
}

// Summary is the outcome of a completed (or canceled) run.
type Summary struct {
	ProgressReport
	// Iterations is the per-worker budget the run was started with.
	Iterations uint64
	// AbsError is |Estimate - π|, NaN when the estimate is undefined.
	AbsError float64
	// Rate is TotalPoints per second of Elapsed.
	Rate float64
	// Canceled is true when the run stopped before every budget was spent.
	Canceled bool
}

// ProgressReporter defines the interface for displaying sampling progress.
// This interface decouples the orchestration layer from the presentation
// layer: the coordinator only produces reports, implementations decide how
// they look (table, spinner, log lines, dashboard).
type ProgressReporter interface {
	// DisplayProgress consumes reports until the channel is closed.
	// It is started in its own goroutine and must call wg.Done on return.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - reports: Channel receiving one report per display cycle; the last
	//     report has Done set.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, reports <-chan ProgressReport, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, reports <-chan ProgressReport, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, reports <-chan ProgressReport, out io.Writer) {
	f(wg, reports, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the report channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, reports <-chan ProgressReport, _ io.Writer) {
	defer wg.Done()
	DrainChannel(reports)
}

// ResultPresenter defines the interface for presenting the final result.
type ResultPresenter interface {
	// PresentSummary displays the final estimate and run statistics.
	PresentSummary(summary Summary, out io.Writer)
}

// ErrorHandler handles run errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
