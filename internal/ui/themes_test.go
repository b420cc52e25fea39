package ui

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

// Theme tests mutate package state and therefore do not run in parallel.

func TestInitTheme_Default(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	InitTheme(false)
	if GetCurrentTheme().Name != DarkTheme.Name {
		t.Errorf("active theme = %q, want dark", GetCurrentTheme().Name)
	}
	if GetCurrentTUITheme() != DarkTUITheme {
		t.Error("dark theme should map to DarkTUITheme")
	}
	if ColorBold() == "" || ColorGreen() != DarkTheme.Success {
		t.Error("color accessors should read the dark theme")
	}
}

func TestInitTheme_NoColorFlag(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(true)
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("no-color theme should produce empty escape codes")
	}
	if _, ok := GetCurrentTUITheme().Accent.(lipgloss.NoColor); !ok {
		t.Error("no-color theme should map to NoColorTUITheme")
	}
}

func TestInitTheme_NoColorEnv(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())
	t.Setenv("NO_COLOR", "1")

	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR should select the none theme, got %q", GetCurrentTheme().Name)
	}
}

func TestColorProvider(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(DarkTheme)
	var p ColorProvider
	if p.Red() != DarkTheme.Error || p.Yellow() != DarkTheme.Warning || p.Reset() != DarkTheme.Reset {
		t.Error("ColorProvider should expose the active theme colors")
	}
}
