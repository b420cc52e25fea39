package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/picalc/internal/cli"
	"github.com/agbru/picalc/internal/config"
	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/server"
	"github.com/agbru/picalc/internal/tui"
	"github.com/agbru/picalc/internal/ui"
)

// ShutdownTimeout bounds how long the metrics server may take to stop.
const ShutdownTimeout = 5 * time.Second

// Application represents the picalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets the diagnostics logger. The default writes JSON lines to
// the error writer.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args includes the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}

	programName := "picalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = newLogger(cfg.LogFormat, errWriter)
	}
	return app, nil
}

// newLogger builds the diagnostics logger for the configured format.
func newLogger(format string, w io.Writer) logging.Logger {
	if format == config.LogFormatText {
		return logging.NewStdLoggerAdapter(log.New(w, "picalc ", log.LstdFlags))
	}
	return logging.NewLogger(w, "picalc")
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level, _ := logging.ParseLevel(a.Config.LogLevel)
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)
	if a.Config.TUI {
		// The dashboard owns the terminal; diagnostics would corrupt it.
		a.Logger = logging.NewNopLogger()
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	if a.Config.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancelTimeout()
	}

	var observers []func(orchestration.ProgressReport)
	if a.Config.MetricsAddr != "" {
		m := server.NewMetrics()
		srv := server.NewServer(a.Config.MetricsAddr, m, a.Logger)
		if err := srv.Start(); err != nil {
			return apperrors.HandleRunError(err, 0, a.ErrWriter, ui.ColorProvider{})
		}
		defer a.shutdownServer(srv)
		observers = append(observers, m.Observe)
	}

	if a.Config.TUI {
		return a.runTUI(ctx, out, observers)
	}
	return a.runCLI(ctx, out, observers)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// newCoordinator builds the coordinator for the configured run.
func (a *Application) newCoordinator(reporter orchestration.ProgressReporter) *orchestration.Coordinator {
	return orchestration.NewCoordinator(
		config.ResolveWorkers(a.Config.Workers),
		a.Config.Iterations,
		orchestration.WithRefreshInterval(a.Config.Refresh),
		orchestration.WithSeed(a.Config.Seed),
		orchestration.WithReporter(reporter),
		orchestration.WithLogger(a.Logger),
	)
}

// selectReporter maps the configured progress mode onto a reporter.
func (a *Application) selectReporter() orchestration.ProgressReporter {
	if a.Config.Quiet {
		return orchestration.NullProgressReporter{}
	}
	switch a.Config.Progress {
	case config.ProgressSpinner:
		return cli.SpinnerReporter{}
	case config.ProgressLog:
		return cli.LogReporter{Logger: a.Logger}
	case config.ProgressNone:
		return orchestration.NullProgressReporter{}
	default:
		return cli.TableReporter{}
	}
}

// runCLI runs the estimation with a terminal reporter and prints the summary.
func (a *Application) runCLI(ctx context.Context, out io.Writer, observers []func(orchestration.ProgressReport)) int {
	reporter := orchestration.TeeReporter(a.selectReporter(), observers...)
	coord := a.newCoordinator(reporter)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, coord.WorkerCount(), out)
	}

	summary, err := coord.Run(ctx, out)
	err = a.classifyRunError(err)
	a.logRuntime()

	presenter := cli.CLIResultPresenter{Quiet: a.Config.Quiet}
	return orchestration.PresentOutcome(summary, err, presenter, presenter, out)
}

// runTUI launches the interactive dashboard and prints the summary once the
// user leaves it.
func (a *Application) runTUI(ctx context.Context, out io.Writer, observers []func(orchestration.ProgressReport)) int {
	workers := config.ResolveWorkers(a.Config.Workers)
	run := func(ctx context.Context, reporter orchestration.ProgressReporter) (orchestration.Summary, error) {
		return a.newCoordinator(orchestration.TeeReporter(reporter, observers...)).Run(ctx, io.Discard)
	}

	summary, err := tui.Run(ctx, run, workers, a.Config.Iterations, Version)
	err = a.classifyRunError(err)

	presenter := cli.CLIResultPresenter{Quiet: a.Config.Quiet}
	return orchestration.PresentOutcome(summary, err, presenter, presenter, out)
}

// classifyRunError turns a deadline hit by --timeout into a TimeoutError.
func (a *Application) classifyRunError(err error) error {
	if a.Config.Timeout > 0 && errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: "sampling", Limit: a.Config.Timeout}
	}
	return err
}

// logRuntime records the process resource usage at debug level.
func (a *Application) logRuntime() {
	a.Logger.Debug("runtime", logging.String("stats", metrics.NewRuntimeCollector().Snapshot().String()))
}

// shutdownServer stops the metrics server, logging any failure.
func (a *Application) shutdownServer(srv *server.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		a.Logger.Error("metrics server shutdown failed", err)
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
