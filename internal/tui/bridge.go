package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/picalc/internal/orchestration"
)

// sender is the part of *tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program sender
}

// SetProgram sets the program reference (thread-safe).
func (r *programRef) SetProgram(p sender) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program, or drops it if none is set yet.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// Reporter implements orchestration.ProgressReporter by forwarding every
// report to the dashboard as a ProgressMsg.
type Reporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*Reporter)(nil)

// DisplayProgress forwards reports until the channel is closed. Once the
// program has exited, Send returns immediately, so the channel is still
// drained to the end.
func (r *Reporter) DisplayProgress(wg *sync.WaitGroup, reports <-chan orchestration.ProgressReport, _ io.Writer) {
	defer wg.Done()
	for report := range reports {
		r.ref.Send(ProgressMsg{Report: report})
	}
}
