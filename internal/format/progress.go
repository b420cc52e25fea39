package format

import (
	"fmt"
	"strings"
	"time"
)

// EstimateETA extrapolates the remaining time from the completed fraction and
// the time spent so far. It returns 0 until some progress has been made.
func EstimateETA(progress float64, elapsed time.Duration) time.Duration {
	if progress <= 0 || progress >= 1 || elapsed <= 0 {
		return 0
	}
	remaining := float64(elapsed) * (1 - progress) / progress
	return time.Duration(remaining)
}

// FormatETA formats an ETA for display: "< 1s", "42s", "3m05s" or "1h02m".
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "--"
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(eta.Minutes()), int(eta.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(eta.Hours()), int(eta.Minutes())%60)
	}
}

// ProgressBar generates a textual progress bar of the given width.
// progress is clamped to [0, 1].
func ProgressBar(progress float64, width int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(width))
	var builder strings.Builder
	builder.Grow(width * 3)
	for i := 0; i < width; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
