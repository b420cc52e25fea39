package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of ANSI escape sequences for line-oriented CLI output.
// An empty sequence prints nothing, which is how NoColorTheme disables color.
type Theme struct {
	Name    string
	Primary string // worker labels, totals
	Info    string // the iteration count in the banner, the running estimate
	Success string // the final estimate
	Warning string // elapsed time, early-stop notices
	Error   string
	Bold    string
	Reset   string
}

// DarkTheme uses 256-color codes readable on dark backgrounds.
var DarkTheme = Theme{
	Name:    "dark",
	Primary: "\033[38;5;45m",
	Info:    "\033[38;5;177m",
	Success: "\033[38;5;114m",
	Warning: "\033[38;5;221m",
	Error:   "\033[38;5;203m",
	Bold:    "\033[1m",
	Reset:   "\033[0m",
}

// NoColorTheme emits no escape sequences at all.
var NoColorTheme = Theme{Name: "none"}

// TUITheme holds the lipgloss colors of the dashboard.
type TUITheme struct {
	Bg      lipgloss.TerminalColor
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
	Info    lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default dashboard palette.
	DarkTUITheme = TUITheme{
		Bg:      lipgloss.Color("#0B0E14"),
		Text:    lipgloss.Color("#D8DEE9"),
		Border:  lipgloss.Color("#4C6A92"),
		Accent:  lipgloss.Color("#5FD7FF"),
		Success: lipgloss.Color("#87D787"),
		Warning: lipgloss.Color("#FFD75F"),
		Error:   lipgloss.Color("#FF5F5F"),
		Dim:     lipgloss.Color("#6C7086"),
		Info:    lipgloss.Color("#D787FF"),
	}

	// NoColorTUITheme renders everything in the terminal's default colors.
	NoColorTUITheme = TUITheme{
		Bg:      lipgloss.NoColor{},
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
		Info:    lipgloss.NoColor{},
	}
)

var (
	themeMu      sync.RWMutex
	currentTheme = DarkTheme
)

// GetCurrentTheme returns the active CLI theme.
func GetCurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active CLI theme. Tests use it to restore
// state.
func SetCurrentTheme(t Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = t
}

// GetCurrentTUITheme returns the dashboard palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// InitTheme selects the theme for this process. Color is off when noColor
// is set (--no-color) or when NO_COLOR is present in the environment with
// any value (https://no-color.org/).
func InitTheme(noColor bool) {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		noColor = true
	}
	if noColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
