package cli

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/picalc/internal/errors"
	"github.com/agbru/picalc/internal/orchestration"
)

func sampleSummary(canceled bool) orchestration.Summary {
	return orchestration.Summary{
		ProgressReport: sampleReport(true),
		Iterations:     1_000_000,
		AbsError:       math.Abs(3.141592 - math.Pi),
		Rate:           750_000,
		Canceled:       canceled,
	}
}

func TestCLIResultPresenter_PresentSummary(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		presenter   CLIResultPresenter
		summary     orchestration.Summary
		contains    []string
		notContains []string
	}{
		{
			name:      "full summary",
			presenter: CLIResultPresenter{},
			summary:   sampleSummary(false),
			contains: []string{"--- Results ---", "T0", "T1", "Total points:   1,500,000",
				"Inside circle:  1,178,097", "Pi:             3.1415920000", "Rate:", "Elapsed:"},
			notContains: []string{"Stopped early"},
		},
		{
			name:      "canceled",
			presenter: CLIResultPresenter{},
			summary:   sampleSummary(true),
			contains:  []string{"Stopped early: 75.0% of 2,000,000 points drawn."},
		},
		{
			name:        "quiet",
			presenter:   CLIResultPresenter{Quiet: true},
			summary:     sampleSummary(false),
			contains:    []string{"3.1415920000\n"},
			notContains: []string{"Results", "Total points"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.presenter.PresentSummary(tt.summary, &buf)
			got := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.notContains {
				if strings.Contains(got, unwanted) {
					t.Errorf("output should not contain %q:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestFormatQuietResult_Undefined(t *testing.T) {
	t.Parallel()
	s := orchestration.Summary{ProgressReport: orchestration.ProgressReport{Estimate: math.NaN()}}
	if got := FormatQuietResult(s); got != "undefined" {
		t.Errorf("FormatQuietResult(NaN) = %q, want undefined", got)
	}
}

func TestCLIResultPresenter_HandleError(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	code := CLIResultPresenter{}.HandleError(context.DeadlineExceeded, time.Second, &buf)
	if code != apperrors.ExitErrorTimeout {
		t.Errorf("code = %d, want %d", code, apperrors.ExitErrorTimeout)
	}
	if buf.Len() == 0 {
		t.Error("expected an error message")
	}
}
