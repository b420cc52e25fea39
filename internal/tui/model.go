package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	headerHeight       = 1
	footerHeight       = 1
	minBodyHeight      = 8
	RuntimePanelHeight = 6
	// WorkersPanelWidthPercent is the share of the width given to the
	// worker bars; the estimate and runtime panels take the rest.
	WorkersPanelWidthPercent = 50
	tickInterval             = 500 * time.Millisecond
)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

// workersWidth returns the width allocated to the workers panel.
func (l LayoutManager) workersWidth() int {
	return l.width * WorkersPanelWidthPercent / 100
}

// rightWidth returns the width allocated to the right column.
func (l LayoutManager) rightWidth() int {
	return l.width - l.workersWidth()
}

// runtimeHeight returns the height allocated to the runtime panel.
func (l LayoutManager) runtimeHeight() int {
	return min(RuntimePanelHeight, l.bodyHeight()/2)
}

// estimateHeight returns the height allocated to the estimate panel.
func (l LayoutManager) estimateHeight() int {
	return l.bodyHeight() - l.runtimeHeight()
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	header   HeaderModel
	workers  WorkersModel
	estimate EstimateModel
	runtime  RuntimeModel
	footer   FooterModel

	keymap    KeyMap
	collector *metrics.RuntimeCollector

	LayoutManager

	cancel context.CancelFunc
	paused bool
	done   bool
}

// NewModel creates the dashboard for a run of workers × iterations.
// cancel is called when the user quits.
func NewModel(cancel context.CancelFunc, workers int, iterations uint64, version string) Model {
	return Model{
		header:    NewHeaderModel(version, workers, iterations),
		workers:   NewWorkersModel(workers, iterations),
		estimate:  NewEstimateModel(),
		runtime:   NewRuntimeModel(),
		footer:    NewFooterModel(),
		keymap:    DefaultKeyMap(),
		collector: metrics.NewRuntimeCollector(),
		cancel:    cancel,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if !m.paused {
			m.workers.Update(msg.Report)
			m.estimate.Update(msg.Report)
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleRuntimeCmd(m.collector), sampleSysStatsCmd(), tickCmd())

	case RuntimeStatsMsg:
		m.runtime.UpdateRuntime(msg.Snapshot)
		return m, nil

	case SysStatsMsg:
		m.runtime.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case RunCompleteMsg:
		m.done = true
		m.paused = false
		m.workers.Update(msg.Summary.ProgressReport)
		m.estimate.Update(msg.Summary.ProgressReport)
		m.header.SetDone()
		m.footer.SetPaused(false)
		m.footer.SetDone(true)
		if msg.Err != nil {
			m.footer.SetError(true)
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		if !m.done {
			m.paused = !m.paused
			m.footer.SetPaused(m.paused)
		}
		return m, nil
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.estimate.View(), m.runtime.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.workers.View(), rightCol)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.workers.SetSize(m.workersWidth(), m.bodyHeight())
	m.estimate.SetSize(m.rightWidth(), m.estimateHeight())
	m.runtime.SetSize(m.rightWidth(), m.runtimeHeight())
}

// RunFunc performs one estimation, sending progress to reporter.
type RunFunc func(ctx context.Context, reporter orchestration.ProgressReporter) (orchestration.Summary, error)

// program is the part of *tea.Program that Run drives.
type program interface {
	sender
	Run() (tea.Model, error)
}

// newProgram is a hook for tests.
var newProgram = func(ctx context.Context, m tea.Model) program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
}

type runResult struct {
	summary orchestration.Summary
	err     error
}

// Run shows the dashboard while run executes and returns run's result.
//
// Quitting the dashboard cancels the context handed to run; Run then waits
// for run to return so the caller always receives the partial summary. A
// failed run closes the dashboard on its own, a successful one stays on
// screen until the user quits. If the dashboard cannot start, the run is
// canceled and the startup error is returned instead of the cancellation.
func Run(ctx context.Context, run RunFunc, workers int, iterations uint64, version string) (orchestration.Summary, error) {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ref := &programRef{}
	model := NewModel(cancel, workers, iterations, version)
	p := newProgram(ctx, model)
	// Inject the program reference before starting so the bridge can Send.
	ref.SetProgram(p)

	results := make(chan runResult, 1)
	go func() {
		summary, err := run(ctx, &Reporter{ref: ref})
		ref.Send(RunCompleteMsg{Summary: summary, Err: err})
		results <- runResult{summary: summary, err: err}
	}()

	_, progErr := p.Run()
	cancel()
	res := <-results
	if dashboardFailed(progErr) {
		return res.summary, fmt.Errorf("dashboard: %w", progErr)
	}
	return res.summary, res.err
}

// dashboardFailed reports whether err from tea.Program.Run is a real failure
// (no terminal, panic) rather than the program being stopped by cancellation.
func dashboardFailed(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, tea.ErrProgramPanic):
		return true
	case errors.Is(err, tea.ErrProgramKilled), errors.Is(err, tea.ErrInterrupted):
		return false
	}
	return true
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleRuntimeCmd reads Go runtime statistics of this process.
func sampleRuntimeCmd(c *metrics.RuntimeCollector) tea.Cmd {
	return func() tea.Msg {
		return RuntimeStatsMsg{Snapshot: c.Snapshot()}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}
