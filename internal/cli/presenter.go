package cli

import (
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/ui"
)

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output of the final estimate.
type CLIResultPresenter struct {
	// Quiet prints only the estimate, for scripts.
	Quiet bool
}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentSummary displays the final result.
func (p CLIResultPresenter) PresentSummary(summary orchestration.Summary, out io.Writer) {
	if p.Quiet {
		DisplayQuietResult(summary, out)
		return
	}
	DisplaySummary(summary, out)
}

// HandleError handles run errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleRunError(err, duration, out, ui.ColorProvider{})
}

// FormatQuietResult returns the estimate alone, with ten decimals.
func FormatQuietResult(summary orchestration.Summary) string {
	return format.FormatEstimate(summary.Estimate, 10)
}

// DisplayQuietResult outputs the estimate on a single line.
func DisplayQuietResult(summary orchestration.Summary, out io.Writer) {
	fmt.Fprintln(out, FormatQuietResult(summary))
}

// DisplaySummary prints per-worker points followed by the aggregate and the
// run statistics.
func DisplaySummary(s orchestration.Summary, out io.Writer) {
	fmt.Fprintf(out, "\n--- Results ---\n")
	width := len(format.FormatCount(s.TotalPoints))
	for _, w := range s.Workers {
		fmt.Fprintf(out, "%sT%-3d%s %*s\n", ui.ColorBlue(), w.Index, ui.ColorReset(), width, format.FormatCount(w.Points))
	}

	fmt.Fprintf(out, "Total points:   %s%s%s\n", ui.ColorCyan(), format.FormatCount(s.TotalPoints), ui.ColorReset())
	fmt.Fprintf(out, "Inside circle:  %s\n", format.FormatCount(s.Inside))
	fmt.Fprintf(out, "Pi:             %s%s%s%s\n",
		ui.ColorBold(), ui.ColorGreen(), format.FormatEstimate(s.Estimate, 10), ui.ColorReset())
	fmt.Fprintf(out, "Abs. error:     %s\n", format.FormatEstimate(s.AbsError, 10))
	fmt.Fprintf(out, "Rate:           %s\n", format.FormatRate(s.Rate))
	fmt.Fprintf(out, "Elapsed:        %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(s.Elapsed), ui.ColorReset())
	if s.Canceled {
		fmt.Fprintf(out, "%sStopped early: %.1f%% of %s points drawn.%s\n",
			ui.ColorYellow(), s.Progress*100, format.FormatCount(s.Iterations*uint64(len(s.Workers))), ui.ColorReset())
	}
}
