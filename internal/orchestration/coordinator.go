package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/montecarlo"
)

// DefaultRefreshInterval is the pause between two progress reports.
const DefaultRefreshInterval = 2 * time.Second

// ReportBufferSize is the capacity of the report channel. Reports are small
// and produced at display frequency, so a short buffer is enough to keep the
// coordinator from waiting on a slow terminal.
const ReportBufferSize = 4

const tracerName = "github.com/agbru/picalc/internal/orchestration"

// Coordinator owns a set of sampling workers for one run. It launches them
// concurrently, reports aggregated progress at a fixed interval and returns
// the final summary once every worker has finished.
type Coordinator struct {
	workerCount int
	iterations  uint64
	refresh     time.Duration
	seed        uint64
	sources     montecarlo.SourceFactory
	reporter    ProgressReporter
	logger      logging.Logger
	tracer      trace.Tracer
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithRefreshInterval sets the interval between progress reports.
// Non-positive values are ignored.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.refresh = d
		}
	}
}

// WithSeed sets the base seed of the default uniform sources. Zero keeps the
// random seed.
func WithSeed(seed uint64) Option {
	return func(c *Coordinator) { c.seed = seed }
}

// WithSourceFactory replaces the random point sources, e.g. with a fixed
// sequence in tests.
func WithSourceFactory(f montecarlo.SourceFactory) Option {
	return func(c *Coordinator) { c.sources = f }
}

// WithReporter sets the progress reporter. The default discards reports.
func WithReporter(r ProgressReporter) Option {
	return func(c *Coordinator) {
		if r != nil {
			c.reporter = r
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTracer sets the tracer used for the run span. The default comes from
// the global otel provider.
func WithTracer(t trace.Tracer) Option {
	return func(c *Coordinator) {
		if t != nil {
			c.tracer = t
		}
	}
}

// NewCoordinator creates a coordinator for workerCount workers with the given
// per-worker budget. A workerCount below 1 is raised to 1.
func NewCoordinator(workerCount int, iterations uint64, opts ...Option) *Coordinator {
	if workerCount < 1 {
		workerCount = 1
	}
	c := &Coordinator{
		workerCount: workerCount,
		iterations:  iterations,
		refresh:     DefaultRefreshInterval,
		reporter:    NullProgressReporter{},
		logger:      logging.NewNopLogger(),
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sources == nil {
		c.sources = montecarlo.UniformSources(c.seed)
	}
	return c
}

// WorkerCount returns the number of workers a run launches.
func (c *Coordinator) WorkerCount() int {
	return c.workerCount
}

// Iterations returns the per-worker budget.
func (c *Coordinator) Iterations() uint64 {
	return c.iterations
}

// Run executes one estimation and blocks until every worker goroutine and
// the reporter have returned.
//
// The reporter receives one report per refresh interval while workers are
// running and a final report with Done set. If ctx is canceled the workers
// stop at their next batch boundary; Run then returns the partial summary
// together with the context error.
//
// Parameters:
//   - ctx: Cancels the run early (signals, --timeout).
//   - out: Writer handed to the reporter.
//
// Returns:
//   - Summary: The final aggregate, partial when canceled.
//   - error: nil, or the context error that stopped the run.
func (c *Coordinator) Run(ctx context.Context, out io.Writer) (Summary, error) {
	ctx, span := c.tracer.Start(ctx, "coordinator.run", trace.WithAttributes(
		attribute.Int("picalc.workers", c.workerCount),
		attribute.Int64("picalc.iterations", clampInt64(c.iterations)),
	))
	defer span.End()

	workers := make([]*montecarlo.Worker, c.workerCount)
	for i := range workers {
		workers[i] = montecarlo.NewWorker(i, c.sources(i))
	}

	reports := make(chan ProgressReport, ReportBufferSize)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go c.reporter.DisplayProgress(&displayWg, reports, out)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		g.Go(func() error {
			return w.Sample(gctx, c.iterations)
		})
	}
	c.logger.Debug("workers launched",
		logging.Int("workers", c.workerCount),
		logging.Uint64("iterations", c.iterations))

	var runErr error
	groupDone := make(chan struct{})
	go func() {
		runErr = g.Wait()
		close(groupDone)
	}()

	ticker := time.NewTicker(c.refresh)
	defer ticker.Stop()
	for {
		report, finished := buildReport(workers, c.iterations, time.Since(start))
		if finished {
			break
		}
		reports <- report
		select {
		case <-ticker.C:
		case <-groupDone:
		}
	}

	<-groupDone
	final, _ := buildReport(workers, c.iterations, time.Since(start))
	final.Done = true
	reports <- final
	close(reports)
	displayWg.Wait()

	summary := newSummary(final, c.iterations, runErr != nil)
	span.SetAttributes(
		attribute.Int64("picalc.points", int64(summary.TotalPoints)),
		attribute.Float64("picalc.estimate", summary.Estimate),
	)
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		if apperrors.IsContextError(runErr) {
			c.logger.Info("run stopped early", logging.Err(runErr), logging.Uint64("points", summary.TotalPoints))
		}
		return summary, runErr
	}

	c.logger.Debug("run finished",
		logging.Uint64("points", summary.TotalPoints),
		logging.Float64("estimate", summary.Estimate),
		logging.Duration("elapsed", summary.Elapsed))
	return summary, nil
}
