package tui

import "github.com/charmbracelet/lipgloss"

// FooterModel renders key hints and the run status.
type FooterModel struct {
	paused bool
	done   bool
	failed bool
	width  int
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone marks the run finished.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError marks the run failed or canceled.
func (f *FooterModel) SetError(e bool) { f.failed = e }

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// Status returns the plain status label.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return "STOPPED"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	keys := footerKeyStyle.Render("q") + footerDescStyle.Render(" quit  ") +
		footerKeyStyle.Render("space") + footerDescStyle.Render(" pause")

	var status string
	switch f.Status() {
	case "STOPPED":
		status = statusErrorStyle.Render("STOPPED")
	case "DONE":
		status = statusDoneStyle.Render("DONE")
	case "PAUSED":
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}

	gap := f.width - lipgloss.Width(keys) - lipgloss.Width(status) - 2
	return " " + keys + spaces(gap) + status + " "
}
