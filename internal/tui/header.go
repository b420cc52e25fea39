package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/picalc/internal/format"
)

// HeaderModel renders the top bar: title, version, run shape, elapsed time.
type HeaderModel struct {
	startTime  time.Time
	endTime    time.Time
	version    string
	workers    int
	iterations uint64
	width      int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string, workers int, iterations uint64) HeaderModel {
	return HeaderModel{
		startTime:  time.Now(),
		version:    version,
		workers:    workers,
		iterations: iterations,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	if h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since the header was created, frozen by SetDone.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "picalc"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)
	pipe := versionStyle.Render(" | ")

	shape := versionStyle.Render(fmt.Sprintf("%d workers × %s points", h.workers, format.FormatCount(h.iterations)))
	elapsed := elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))

	row := title + pipe + shape + pipe + elapsed
	innerWidth := max(h.width-2, 0)
	row += spaces(innerWidth - lipgloss.Width(row))

	return headerStyle.Width(h.width).Render(row)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
