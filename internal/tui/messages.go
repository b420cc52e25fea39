package tui

import (
	"time"

	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
)

// ProgressMsg carries one aggregated progress report.
type ProgressMsg struct {
	Report orchestration.ProgressReport
}

// TickMsg drives the periodic resource sampling.
type TickMsg time.Time

// SysStatsMsg carries system-wide CPU and memory usage.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// RuntimeStatsMsg carries a Go runtime snapshot of this process.
type RuntimeStatsMsg struct {
	Snapshot metrics.RuntimeSnapshot
}

// RunCompleteMsg is sent once the estimation has returned.
type RunCompleteMsg struct {
	Summary orchestration.Summary
	Err     error
}
