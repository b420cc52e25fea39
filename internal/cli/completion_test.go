package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/picalc/internal/config"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _picalc_completions picalc", "--iterations", "-n", "--progress)",
			`compgen -W "table spinner log none"`}},
		{"zsh", []string{"#compdef picalc", "'(-w --workers)'{-w,--workers}'[Worker count (0 = all CPUs)]:number:'",
			"'--completion[Generate completion script]:shell:(bash zsh fish)'"}},
		{"fish", []string{"complete -c picalc -f", "complete -c picalc -s q -l quiet -d 'Only print the estimate'",
			"complete -c picalc -s V -l version -d 'Show version information'",
			"complete -c picalc -l log-level -d 'Log level' -xa 'debug info warn error'"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell); err != nil {
				t.Fatalf("GenerateCompletion(%q) returned error: %v", tt.shell, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := GenerateCompletion(&buf, "tcsh"); err == nil {
		t.Fatal("expected an error for tcsh")
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written for an unsupported shell")
	}
}

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{Iterations: 1_000_000, Refresh: config.DefaultRefreshInterval}
	var buf bytes.Buffer
	PrintExecutionConfig(cfg, 4, &buf)

	for _, want := range []string{"1,000,000", "4", "4,000,000 in total", "timeout none", "logical processors"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("config banner missing %q:\n%s", want, buf.String())
		}
	}
}
