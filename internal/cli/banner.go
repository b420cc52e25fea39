package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/picalc/internal/config"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/ui"
)

// PrintExecutionConfig displays the run parameters before sampling starts.
//
// Parameters:
//   - cfg: The application configuration.
//   - workers: The resolved worker count.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, workers int, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Sampling %s%s%s points on each of %s%d%s workers (%s in total).\n",
		ui.ColorMagenta(), format.FormatCount(cfg.Iterations), ui.ColorReset(),
		ui.ColorCyan(), workers, ui.ColorReset(),
		format.FormatCount(cfg.Iterations*uint64(workers)))
	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}
	fmt.Fprintf(out, "Refresh every %s%s%s, timeout %s%s%s.\n",
		ui.ColorYellow(), cfg.Refresh, ui.ColorReset(), ui.ColorYellow(), timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
