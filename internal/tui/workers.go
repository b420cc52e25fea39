package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/orchestration"
)

// WorkersModel shows one progress bar per worker.
type WorkersModel struct {
	workers    []orchestration.WorkerProgress
	iterations uint64
	width      int
	height     int
}

// NewWorkersModel creates the panel for n workers with the given budget.
func NewWorkersModel(n int, iterations uint64) WorkersModel {
	ws := make([]orchestration.WorkerProgress, n)
	for i := range ws {
		ws[i].Index = i
	}
	return WorkersModel{workers: ws, iterations: iterations}
}

// SetSize updates dimensions.
func (m *WorkersModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update replaces the per-worker state with the report's.
func (m *WorkersModel) Update(r orchestration.ProgressReport) {
	if len(r.Workers) > 0 {
		m.workers = append(m.workers[:0], r.Workers...)
	}
}

// workerFraction is the share of the budget a worker has drawn. A worker
// stopped by cancellation keeps its partial bar.
func (m WorkersModel) workerFraction(w orchestration.WorkerProgress) float64 {
	if m.iterations == 0 {
		if w.Finished {
			return 1
		}
		return 0
	}
	return min(float64(w.Points)/float64(m.iterations), 1)
}

// View renders the panel. Rows that do not fit are summarized.
func (m WorkersModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(" Workers"))

	visible := len(m.workers)
	if limit := m.height - 3; limit > 0 && visible > limit {
		visible = limit - 1
	}
	barWidth := max(m.width-36, 10)

	for _, w := range m.workers[:max(visible, 0)] {
		style := barStyle
		if w.Finished {
			style = barDoneStyle
		}
		fmt.Fprintf(&b, "\n %s %s %s",
			labelStyle.Render(fmt.Sprintf("T%-3d", w.Index)),
			style.Render(format.ProgressBar(m.workerFraction(w), barWidth)),
			valueStyle.Render(fmt.Sprintf("%15s", format.FormatCount(w.Points))))
	}
	if hidden := len(m.workers) - max(visible, 0); hidden > 0 {
		b.WriteString("\n " + labelStyle.Render(fmt.Sprintf("… %d more", hidden)))
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(b.String())
}
