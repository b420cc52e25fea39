package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration renders d in the largest unit that keeps it short:
// microseconds under 1ms, milliseconds under 1s, otherwise the Go duration
// string rounded to the millisecond.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(time.Millisecond).String()
	}
}
