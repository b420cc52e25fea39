package format

import (
	"math"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{250 * time.Millisecond, "250ms"},
		{1500 * time.Millisecond, "1.5s"},
		{1234567891 * time.Nanosecond, "1.235s"},
		{83 * time.Second, "1m23s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{4000000, "4,000,000"},
		{18446744073709551615, "18,446,744,073,709,551,615"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.n); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatEstimate(t *testing.T) {
	t.Parallel()
	if got := FormatEstimate(math.Pi, 6); got != "3.141593" {
		t.Errorf("FormatEstimate(π, 6) = %q", got)
	}
	if got := FormatEstimate(math.NaN(), 6); got != UndefinedEstimate {
		t.Errorf("FormatEstimate(NaN) = %q, want %q", got, UndefinedEstimate)
	}
}

func TestFormatRate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		rate float64
		want string
	}{
		{0, "0 pts/s"},
		{math.NaN(), "0 pts/s"},
		{512, "512 pts/s"},
		{2500, "2.50 K pts/s"},
		{3.2e6, "3.20 M pts/s"},
		{1.5e9, "1.50 G pts/s"},
	}
	for _, tt := range tests {
		if got := FormatRate(tt.rate); got != tt.want {
			t.Errorf("FormatRate(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	if got := FormatBytes(512); got != "512 B" {
		t.Errorf("FormatBytes(512) = %q", got)
	}
	if got := FormatBytes(3 << 20); got != "3.0 MB" {
		t.Errorf("FormatBytes(3MB) = %q", got)
	}
}

func TestEstimateETA(t *testing.T) {
	t.Parallel()
	if eta := EstimateETA(0, time.Second); eta != 0 {
		t.Errorf("no progress should give zero ETA, got %v", eta)
	}
	if eta := EstimateETA(1, time.Second); eta != 0 {
		t.Errorf("complete progress should give zero ETA, got %v", eta)
	}
	if eta := EstimateETA(0.25, 10*time.Second); eta != 30*time.Second {
		t.Errorf("EstimateETA(0.25, 10s) = %v, want 30s", eta)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "--"},
		{500 * time.Millisecond, "< 1s"},
		{42 * time.Second, "42s"},
		{185 * time.Second, "3m05s"},
		{62 * time.Minute, "1h02m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		filled   int
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.5, 10},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.progress, 10)
		if n := utf8.RuneCountInString(bar); n != 10 {
			t.Errorf("ProgressBar(%v) has %d runes, want 10", tt.progress, n)
		}
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("ProgressBar(%v) filled = %d, want %d", tt.progress, got, tt.filled)
		}
	}
}
