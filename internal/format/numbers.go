package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UndefinedEstimate is shown in place of an estimate computed from zero points.
const UndefinedEstimate = "undefined"

// FormatCount renders n with thousands separators, e.g. 4,000,000.
func FormatCount(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/3)
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatEstimate renders a π estimate with the given number of decimals.
// NaN renders as UndefinedEstimate.
func FormatEstimate(v float64, decimals int) string {
	if math.IsNaN(v) {
		return UndefinedEstimate
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// FormatRate renders a points-per-second rate with a metric suffix.
func FormatRate(perSecond float64) string {
	switch {
	case math.IsNaN(perSecond) || math.IsInf(perSecond, 0) || perSecond <= 0:
		return "0 pts/s"
	case perSecond >= 1e9:
		return fmt.Sprintf("%.2f G pts/s", perSecond/1e9)
	case perSecond >= 1e6:
		return fmt.Sprintf("%.2f M pts/s", perSecond/1e6)
	case perSecond >= 1e3:
		return fmt.Sprintf("%.2f K pts/s", perSecond/1e3)
	default:
		return fmt.Sprintf("%.0f pts/s", perSecond)
	}
}

// FormatBytes renders a byte count with a binary suffix.
func FormatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
