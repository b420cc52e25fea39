package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/sysmon"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "PICALC_"

// Defaults for the run parameters.
const (
	DefaultIterations      uint64 = 100_000_000
	DefaultRefreshInterval        = 2 * time.Second
	DefaultProgress               = ProgressTable
)

// Progress display modes accepted by --progress.
const (
	ProgressTable   = "table"
	ProgressSpinner = "spinner"
	ProgressLog     = "log"
	ProgressNone    = "none"
)

// Log formats accepted by --log-format.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// ProgressModes lists the valid --progress values in display order.
var ProgressModes = []string{ProgressTable, ProgressSpinner, ProgressLog, ProgressNone}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Iterations is the number of draws each worker performs.
	Iterations uint64
	// Workers is the requested worker count; 0 means one per available
	// execution unit.
	Workers int
	// Refresh is the interval between progress reports.
	Refresh time.Duration
	// Timeout bounds the whole run; 0 disables it.
	Timeout time.Duration
	// Seed is the base random seed; 0 picks a random one.
	Seed uint64
	// Progress selects the progress reporter (table, spinner, log, none).
	Progress string
	// Quiet prints only the final estimate.
	Quiet bool
	// TUI launches the interactive dashboard.
	TUI bool
	// NoColor disables ANSI colors.
	NoColor bool
	// MetricsAddr, when set, serves Prometheus metrics on this address.
	MetricsAddr string
	// LogLevel is the zerolog level name for diagnostics.
	LogLevel string
	// LogFormat selects JSON (zerolog) or plain text (log package) diagnostics.
	LogFormat string
	// Completion, when set, prints a shell completion script and exits.
	Completion string
}

// ParseConfig parses command-line arguments, applies PICALC_ environment
// overrides for flags that were not given explicitly, and validates the
// result.
//
// Parameters:
//   - programName: Name used in usage output.
//   - args: Arguments without the program name.
//   - errorWriter: Destination for usage and parse errors.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp for -h/--help, a ConfigError for invalid input.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.Uint64Var(&config.Iterations, "iterations", DefaultIterations, "Iterations per worker.")
	fs.Uint64Var(&config.Iterations, "n", DefaultIterations, "Iterations per worker (shorthand).")
	fs.IntVar(&config.Workers, "workers", 0, "Worker count (0 = one per available CPU).")
	fs.IntVar(&config.Workers, "w", 0, "Worker count (shorthand).")
	fs.DurationVar(&config.Refresh, "refresh", DefaultRefreshInterval, "Interval between progress reports.")
	fs.DurationVar(&config.Timeout, "timeout", 0, "Abort the run after this duration (0 = no limit).")
	fs.Uint64Var(&config.Seed, "seed", 0, "Base random seed (0 = random).")
	fs.StringVar(&config.Progress, "progress", DefaultProgress, "Progress display: "+strings.Join(ProgressModes, ", ")+".")
	fs.BoolVar(&config.Quiet, "quiet", false, "Only print the final estimate.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.TUI, "tui", false, "Launch the interactive dashboard.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.StringVar(&config.LogLevel, "log-level", "info", "Log level: debug, info, warn, error.")
	fs.StringVar(&config.LogFormat, "log-format", LogFormatJSON, "Log format: json, text.")
	fs.StringVar(&config.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish).")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if err := applyEnvOverrides(&config, fs); err != nil {
		return AppConfig{}, err
	}
	config.Progress = strings.ToLower(config.Progress)
	config.LogFormat = strings.ToLower(config.LogFormat)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if c.Completion != "" {
		switch c.Completion {
		case "bash", "zsh", "fish":
			return nil
		}
		return apperrors.NewConfigError("unsupported completion shell %q (want bash, zsh or fish)", c.Completion)
	}
	if c.Iterations == 0 {
		return apperrors.NewConfigError("iterations must be a positive integer")
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers must not be negative (got %d)", c.Workers)
	}
	if c.Refresh <= 0 {
		return apperrors.NewConfigError("refresh interval must be positive (got %s)", c.Refresh)
	}
	if c.Timeout < 0 {
		return apperrors.NewConfigError("timeout must not be negative (got %s)", c.Timeout)
	}
	if !isProgressMode(c.Progress) {
		return apperrors.NewConfigError("unknown progress mode %q (want %s)", c.Progress, strings.Join(ProgressModes, ", "))
	}
	if c.LogFormat != LogFormatJSON && c.LogFormat != LogFormatText {
		return apperrors.NewConfigError("unknown log format %q (want json or text)", c.LogFormat)
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return apperrors.NewConfigError("unknown log level %q (want debug, info, warn or error)", c.LogLevel)
	}
	return nil
}

func isProgressMode(mode string) bool {
	for _, m := range ProgressModes {
		if m == mode {
			return true
		}
	}
	return false
}

// availableCPUs is a hook for tests.
var availableCPUs = sysmon.AvailableCPUs

// ResolveWorkers returns the requested worker count, or the number of
// available execution units when requested is 0. The result is at least 1.
func ResolveWorkers(requested int) int {
	if requested > 0 {
		return requested
	}
	if n := availableCPUs(); n > 0 {
		return n
	}
	return 1
}

// setCustomUsage prints flags grouped the way the README documents them.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [flags]\n\n", fs.Name())
		fmt.Fprintf(out, "Estimates π by Monte Carlo sampling on every available CPU.\n\n")
		fmt.Fprintf(out, "Run:\n")
		fmt.Fprintf(out, "  -n, --iterations uint     iterations per worker (default %d)\n", DefaultIterations)
		fmt.Fprintf(out, "  -w, --workers int         worker count, 0 = available CPUs (default 0)\n")
		fmt.Fprintf(out, "      --seed uint           base random seed, 0 = random (default 0)\n")
		fmt.Fprintf(out, "      --timeout duration    abort after this long, 0 = no limit (default 0)\n")
		fmt.Fprintf(out, "\nDisplay:\n")
		fmt.Fprintf(out, "      --progress string     %s (default %s)\n", strings.Join(ProgressModes, " | "), DefaultProgress)
		fmt.Fprintf(out, "      --refresh duration    interval between reports (default %s)\n", DefaultRefreshInterval)
		fmt.Fprintf(out, "  -q, --quiet               only print the final estimate\n")
		fmt.Fprintf(out, "      --tui                 interactive dashboard\n")
		fmt.Fprintf(out, "      --no-color            disable colors (NO_COLOR is honored)\n")
		fmt.Fprintf(out, "\nOperations:\n")
		fmt.Fprintf(out, "      --metrics-addr string serve Prometheus metrics on this address\n")
		fmt.Fprintf(out, "      --log-level string    debug | info | warn | error (default info)\n")
		fmt.Fprintf(out, "      --log-format string   json | text (default json)\n")
		fmt.Fprintf(out, "      --completion string   print a completion script (bash | zsh | fish)\n")
		fmt.Fprintf(out, "  -V, --version             print version\n")
		fmt.Fprintf(out, "\nEvery flag can also be set with %s<NAME>, e.g. %sITERATIONS=1000000.\n", EnvPrefix, EnvPrefix)
	}
}
