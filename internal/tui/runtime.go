package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/metrics"
)

// RuntimeModel displays process and system resource usage.
type RuntimeModel struct {
	snapshot metrics.RuntimeSnapshot
	cpu      *RingBuffer
	mem      *RingBuffer
	width    int
	height   int
}

// NewRuntimeModel creates the runtime panel.
func NewRuntimeModel() RuntimeModel {
	return RuntimeModel{
		cpu: NewRingBuffer(60),
		mem: NewRingBuffer(60),
	}
}

// SetSize updates dimensions and fits the sparklines to the width.
func (m *RuntimeModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	n := max(w-16, 1)
	m.cpu.Resize(n)
	m.mem.Resize(n)
}

// UpdateRuntime stores the latest Go runtime snapshot.
func (m *RuntimeModel) UpdateRuntime(s metrics.RuntimeSnapshot) {
	m.snapshot = s
}

// UpdateSysStats appends system-wide CPU and memory samples.
func (m *RuntimeModel) UpdateSysStats(cpu, mem float64) {
	m.cpu.Push(cpu)
	m.mem.Push(mem)
}

// View renders the panel.
func (m RuntimeModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(" Runtime"))

	s := m.snapshot
	fmt.Fprintf(&b, "\n %s %s / %s   %s %s",
		labelStyle.Render("Heap:"), valueStyle.Render(format.FormatBytes(s.HeapAlloc)), valueStyle.Render(format.FormatBytes(s.Sys)),
		labelStyle.Render("Goroutines:"), valueStyle.Render(fmt.Sprintf("%d", s.Goroutines)))
	fmt.Fprintf(&b, "\n %s %s",
		labelStyle.Render("GC:"), valueStyle.Render(fmt.Sprintf("%d (%.1fms)", s.NumGC, float64(s.PauseTotalNs)/1e6)))
	fmt.Fprintf(&b, "\n %s %s",
		labelStyle.Render(fmt.Sprintf("CPU %5.1f%%", m.cpu.Last())),
		cpuSparklineStyle.Render(RenderSparkline(m.cpu.Slice(), 0, 100)))
	fmt.Fprintf(&b, "\n %s %s",
		labelStyle.Render(fmt.Sprintf("MEM %5.1f%%", m.mem.Last())),
		memSparklineStyle.Render(RenderSparkline(m.mem.Slice(), 0, 100)))

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(b.String())
}
