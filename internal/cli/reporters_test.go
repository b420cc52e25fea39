package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/orchestration"
)

// MockSpinner for testing
type MockSpinner struct {
	started  bool
	stopped  bool
	suffixes []string
}

func (m *MockSpinner) Start() {
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.suffixes = append(m.suffixes, suffix)
}

func sampleReport(done bool) orchestration.ProgressReport {
	return orchestration.ProgressReport{
		Workers: []orchestration.WorkerProgress{
			{Index: 0, Points: 1_000_000, Finished: true},
			{Index: 1, Points: 500_000, Finished: done},
		},
		TotalPoints: 1_500_000,
		Inside:      1_178_097,
		Estimate:    3.141592,
		Elapsed:     2 * time.Second,
		Progress:    0.75,
		Done:        done,
	}
}

// feed sends reports through a reporter and waits for it to return.
func feed(t *testing.T, r orchestration.ProgressReporter, out io.Writer, reports ...orchestration.ProgressReport) {
	t.Helper()
	ch := make(chan orchestration.ProgressReport, len(reports))
	for _, rep := range reports {
		ch <- rep
	}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	done := make(chan struct{})
	go func() {
		r.DisplayProgress(&wg, ch, out)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("reporter did not return after the channel closed")
	}
	wg.Wait()
}

func TestDisplayProgressTable(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayProgressTable(sampleReport(false), &buf)
	got := buf.String()

	for _, want := range []string{"T0", "T1", "1,000,000", "  500,000", "done", "running",
		"Total points: 1,500,000", "75.0%", "ETA", "Pi: 3.141592"} {
		if !strings.Contains(got, want) {
			t.Errorf("table missing %q:\n%s", want, got)
		}
	}
}

func TestDisplayProgressTable_Undefined(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayProgressTable(orchestration.ProgressReport{Estimate: math.NaN()}, &buf)
	if !strings.Contains(buf.String(), "Pi: undefined") {
		t.Errorf("NaN estimate should render as undefined, got:\n%s", buf.String())
	}
}

func TestTableReporter_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	feed(t, TableReporter{}, &buf, sampleReport(false), sampleReport(true))

	got := buf.String()
	if strings.Contains(got, clearScreen) {
		t.Error("clear-screen sequence written to a non-terminal")
	}
	if n := strings.Count(got, "Total points:"); n != 2 {
		t.Errorf("expected 2 tables, found %d", n)
	}
}

func TestTableReporter_Terminal(t *testing.T) {
	orig := isTerminal
	defer func() { isTerminal = orig }()
	isTerminal = func(io.Writer) bool { return true }

	var buf bytes.Buffer
	feed(t, TableReporter{}, &buf, sampleReport(false), sampleReport(true))

	got := buf.String()
	if n := strings.Count(got, clearScreen); n != 2 {
		t.Errorf("expected a screen clear per report, found %d", n)
	}
	if !strings.HasPrefix(got, "\033]0;"+WindowTitle) {
		t.Error("window title not set first")
	}
}

func TestSpinnerReporter(t *testing.T) {
	mock := &MockSpinner{}
	orig := newSpinner
	defer func() { newSpinner = orig }()
	newSpinner = func(...spinner.Option) Spinner { return mock }

	feed(t, SpinnerReporter{}, io.Discard, sampleReport(false), sampleReport(true))

	if !mock.started || !mock.stopped {
		t.Errorf("spinner started=%v stopped=%v, want both", mock.started, mock.stopped)
	}
	if len(mock.suffixes) != 2 {
		t.Fatalf("expected 2 suffix updates, got %d", len(mock.suffixes))
	}
	if !strings.Contains(mock.suffixes[0], "π ≈ 3.141592") {
		t.Errorf("suffix %q missing estimate", mock.suffixes[0])
	}
}

func TestFormatSpinnerSuffix(t *testing.T) {
	t.Parallel()
	got := FormatSpinnerSuffix(sampleReport(false))
	for _, want := range []string{" 75.0%", "1,500,000 pts", "π ≈ 3.141592", "ETA "} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatSpinnerSuffix() = %q, missing %q", got, want)
		}
	}
}

func TestLogReporter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	r := LogReporter{Logger: logging.NewLogger(&buf, "progress")}
	feed(t, r, io.Discard, sampleReport(false), sampleReport(true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d:\n%s", len(lines), buf.String())
	}

	var last map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &last); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if last["message"] != "sampling complete" {
		t.Errorf("message = %v, want sampling complete", last["message"])
	}
	if last["estimate"] != "3.141592" {
		t.Errorf("estimate = %v, want 3.141592", last["estimate"])
	}
	if last["component"] != "progress" {
		t.Errorf("component = %v, want progress", last["component"])
	}
}
