package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/montecarlo"
	"github.com/agbru/picalc/internal/orchestration"
)

// minBand is the narrowest half-height of the convergence chart.
const minBand = 1e-4

// EstimateModel shows the running estimate, its error and a convergence chart.
type EstimateModel struct {
	last    orchestration.ProgressReport
	seen    bool
	history *RingBuffer
	width   int
	height  int
}

// NewEstimateModel creates the estimate panel.
func NewEstimateModel() EstimateModel {
	return EstimateModel{history: NewRingBuffer(120)}
}

// SetSize updates dimensions and resizes the history to the chart width.
func (m *EstimateModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.history.Resize(max(w-4, 1) * 2)
}

// Update records the report's estimate.
func (m *EstimateModel) Update(r orchestration.ProgressReport) {
	m.last = r
	m.seen = true
	if !math.IsNaN(r.Estimate) {
		m.history.Push(r.Estimate)
	}
}

// convergenceBand returns a range centered on π wide enough to hold every
// value, never narrower than ±minBand.
func convergenceBand(values []float64) (lo, hi float64) {
	band := minBand
	for _, v := range values {
		band = math.Max(band, math.Abs(v-math.Pi))
	}
	return math.Pi - band, math.Pi + band
}

// View renders the panel.
func (m EstimateModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(" Estimate"))

	r := m.last
	est := format.UndefinedEstimate
	absErr := format.UndefinedEstimate
	if m.seen {
		est = format.FormatEstimate(r.Estimate, 8)
		absErr = format.FormatEstimate(montecarlo.AbsError(r.Estimate), 8)
	}
	fmt.Fprintf(&b, "\n %s %s   %s %s",
		labelStyle.Render("π ≈"), estimateStyle.Render(est),
		labelStyle.Render("|err|"), valueStyle.Render(absErr))

	var rate float64
	if s := r.Elapsed.Seconds(); s > 0 {
		rate = float64(r.TotalPoints) / s
	}
	eta := "-"
	if !r.Done {
		eta = format.FormatETA(format.EstimateETA(r.Progress, r.Elapsed))
	}
	fmt.Fprintf(&b, "\n %s %s   %s %s",
		labelStyle.Render("points"), valueStyle.Render(format.FormatCount(r.TotalPoints)),
		labelStyle.Render("inside"), valueStyle.Render(format.FormatCount(r.Inside)))
	fmt.Fprintf(&b, "\n %s %s   %s %5.1f%%   %s %s",
		labelStyle.Render("rate"), valueStyle.Render(format.FormatRate(rate)),
		labelStyle.Render("done"), r.Progress*100,
		labelStyle.Render("ETA"), valueStyle.Render(eta))

	if rows := m.height - 7; rows > 0 {
		values := m.history.Slice()
		lo, hi := convergenceBand(values)
		b.WriteString("\n " + labelStyle.Render(fmt.Sprintf("convergence  π ± %.1e", hi-math.Pi)))
		for _, line := range RenderBrailleChart(values, lo, hi, max(m.width-4, 1), rows) {
			b.WriteString("\n " + chartStyle.Render(line))
		}
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(b.String())
}
