package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/briandowns/spinner"

	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/ui"
)

// Verify that the reporters implement orchestration.ProgressReporter.
var (
	_ orchestration.ProgressReporter = TableReporter{}
	_ orchestration.ProgressReporter = SpinnerReporter{}
	_ orchestration.ProgressReporter = LogReporter{}
)

// TableReporter redraws a per-worker table on every report. On a terminal it
// clears the screen before each redraw and sets the window title; otherwise
// tables are separated by a blank line.
type TableReporter struct{}

// DisplayProgress renders each report as a table until the channel closes.
func (TableReporter) DisplayProgress(wg *sync.WaitGroup, reports <-chan orchestration.ProgressReport, out io.Writer) {
	defer wg.Done()
	terminal := isTerminal(out)
	if terminal {
		fmt.Fprintf(out, setTitleFmt, WindowTitle)
	}

	first := true
	for r := range reports {
		switch {
		case terminal:
			fmt.Fprint(out, clearScreen)
		case !first:
			fmt.Fprintln(out)
		}
		first = false
		DisplayProgressTable(r, out)
	}
}

// DisplayProgressTable writes one progress table: a line per worker, the
// total with a progress bar, and the current estimate.
func DisplayProgressTable(r orchestration.ProgressReport, out io.Writer) {
	width := len(format.FormatCount(r.TotalPoints))
	for _, w := range r.Workers {
		status := fmt.Sprintf("%srunning%s", ui.ColorYellow(), ui.ColorReset())
		if w.Finished {
			status = fmt.Sprintf("%sdone%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(out, "%sT%-3d%s %*s  %s\n",
			ui.ColorBlue(), w.Index, ui.ColorReset(), width, format.FormatCount(w.Points), status)
	}

	eta := format.EstimateETA(r.Progress, r.Elapsed)
	fmt.Fprintf(out, "%sTotal points:%s %s\n", ui.ColorBold(), ui.ColorReset(), format.FormatCount(r.TotalPoints))
	fmt.Fprintf(out, "%s %5.1f%%  ETA %s\n",
		format.ProgressBar(r.Progress, ProgressBarWidth), r.Progress*100, format.FormatETA(eta))
	fmt.Fprintf(out, "%sPi:%s %s%s%s\n",
		ui.ColorBold(), ui.ColorReset(), ui.ColorMagenta(), format.FormatEstimate(r.Estimate, estimateDecs), ui.ColorReset())
}

// SpinnerReporter shows a single animated line with overall progress and
// the running estimate.
type SpinnerReporter struct{}

// DisplayProgress runs a spinner until the channel closes.
func (SpinnerReporter) DisplayProgress(wg *sync.WaitGroup, reports <-chan orchestration.ProgressReport, out io.Writer) {
	defer wg.Done()
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	for r := range reports {
		s.UpdateSuffix(FormatSpinnerSuffix(r))
	}
	s.Stop()
}

// FormatSpinnerSuffix returns the text shown after the spinner glyph.
func FormatSpinnerSuffix(r orchestration.ProgressReport) string {
	parts := []string{
		fmt.Sprintf("%5.1f%%", r.Progress*100),
		format.FormatCount(r.TotalPoints) + " pts",
		"π ≈ " + format.FormatEstimate(r.Estimate, estimateDecs),
		"ETA " + format.FormatETA(format.EstimateETA(r.Progress, r.Elapsed)),
	}
	return " " + strings.Join(parts, " │ ")
}

// LogReporter writes one structured log line per report. It suits
// non-interactive runs where a redrawn table would only add noise.
type LogReporter struct {
	Logger logging.Logger
}

// DisplayProgress logs every report until the channel closes.
func (lr LogReporter) DisplayProgress(wg *sync.WaitGroup, reports <-chan orchestration.ProgressReport, _ io.Writer) {
	defer wg.Done()
	logger := lr.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	for r := range reports {
		msg := "sampling progress"
		if r.Done {
			msg = "sampling complete"
		}
		logger.Info(msg,
			logging.Uint64("points", r.TotalPoints),
			logging.Uint64("inside", r.Inside),
			logging.String("estimate", format.FormatEstimate(r.Estimate, estimateDecs)),
			logging.Float64("progress", r.Progress),
			logging.Duration("elapsed", r.Elapsed),
		)
	}
}
