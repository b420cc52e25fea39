package montecarlo

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"
)

// TestSample_ClassifiesPoints checks the inside/outside rule against points
// with known distances, including points exactly on the circle.
func TestSample_ClassifiesPoints(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		point       [2]float64
		wantInside  uint64
		wantOutside uint64
	}{
		{"origin", [2]float64{0, 0}, 1, 0},
		{"on axis boundary", [2]float64{1, 0}, 1, 0},
		{"negative axis boundary", [2]float64{0, -1}, 1, 0},
		{"corner", [2]float64{1, 1}, 0, 1},
		{"3-4-5 boundary", [2]float64{0.6, 0.8}, 1, 0},
		{"just outside", [2]float64{0.8, 0.61}, 0, 1},
		{"opposite corner", [2]float64{-1, -1}, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := NewWorker(0, NewSequenceSource(tt.point))
			if err := w.Sample(context.Background(), 1); err != nil {
				t.Fatalf("Sample returned error: %v", err)
			}
			s := w.Snapshot()
			if s.Inside != tt.wantInside || s.Outside != tt.wantOutside {
				t.Errorf("point %v: got inside=%d outside=%d, want inside=%d outside=%d",
					tt.point, s.Inside, s.Outside, tt.wantInside, tt.wantOutside)
			}
		})
	}
}

// TestSample_MixedSequence runs the four reference points several times over.
func TestSample_MixedSequence(t *testing.T) {
	t.Parallel()
	src := NewSequenceSource(
		[2]float64{0, 0},
		[2]float64{1, 0},
		[2]float64{1, 1},
		[2]float64{0.6, 0.8},
	)
	w := NewWorker(3, src)
	if err := w.Sample(context.Background(), 400); err != nil {
		t.Fatalf("Sample returned error: %v", err)
	}

	s := w.Snapshot()
	if s.Inside != 300 {
		t.Errorf("Inside = %d, want 300", s.Inside)
	}
	if s.Outside != 100 {
		t.Errorf("Outside = %d, want 100", s.Outside)
	}
	if !s.Finished {
		t.Error("expected worker to be finished")
	}
	if w.Index() != 3 {
		t.Errorf("Index() = %d, want 3", w.Index())
	}
}

func TestSample_Conservation(t *testing.T) {
	t.Parallel()
	budgets := []uint64{1, PublishEvery - 1, PublishEvery, PublishEvery + 1, 3*PublishEvery + 17}

	for _, n := range budgets {
		w := NewWorker(0, NewUniformSource(7, 0))
		if err := w.Sample(context.Background(), n); err != nil {
			t.Fatalf("Sample(%d) returned error: %v", n, err)
		}
		s := w.Snapshot()
		if s.Points() != n {
			t.Errorf("Sample(%d): inside+outside = %d", n, s.Points())
		}
	}
}

func TestSample_ZeroIterations(t *testing.T) {
	t.Parallel()
	w := NewWorker(0, NewUniformSource(1, 0))
	if err := w.Sample(context.Background(), 0); err != nil {
		t.Fatalf("Sample(0) returned error: %v", err)
	}
	s := w.Snapshot()
	if s.Inside != 0 || s.Outside != 0 {
		t.Errorf("expected zero counts, got inside=%d outside=%d", s.Inside, s.Outside)
	}
	if !s.Finished {
		t.Error("Sample(0) should mark the worker finished")
	}
}

func TestSnapshot_IdempotentAfterFinish(t *testing.T) {
	t.Parallel()
	w := NewWorker(0, NewUniformSource(11, 0))
	if err := w.Sample(context.Background(), 10_000); err != nil {
		t.Fatalf("Sample returned error: %v", err)
	}
	first := w.Snapshot()
	for i := 0; i < 100; i++ {
		if got := w.Snapshot(); got != first {
			t.Fatalf("snapshot %d = %+v, want %+v", i, got, first)
		}
	}
}

func TestSnapshot_BeforeSample(t *testing.T) {
	t.Parallel()
	w := NewWorker(0, NewUniformSource(1, 0))
	if s := w.Snapshot(); s != (Snapshot{}) {
		t.Errorf("fresh worker snapshot = %+v, want zero value", s)
	}
}

// TestSnapshot_ConcurrentReads polls a running worker and checks that the
// observed point count never decreases and ends at the budget.
func TestSnapshot_ConcurrentReads(t *testing.T) {
	t.Parallel()
	const iterations = 2_000_000
	w := NewWorker(0, NewUniformSource(5, 0))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = w.Sample(context.Background(), iterations)
	}()

	var last uint64
	for {
		s := w.Snapshot()
		if s.Points() < last {
			t.Fatalf("point count went backwards: %d -> %d", last, s.Points())
		}
		last = s.Points()
		if s.Finished {
			if s.Points() != iterations {
				t.Fatalf("finished with %d points, want %d", s.Points(), iterations)
			}
			break
		}
	}
	wg.Wait()
}

func TestSample_Cancellation(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWorker(0, NewUniformSource(3, 0))
	err := w.Sample(ctx, 100*PublishEvery)
	if err != context.Canceled {
		t.Fatalf("Sample error = %v, want context.Canceled", err)
	}
	s := w.Snapshot()
	if !s.Finished {
		t.Error("canceled worker should be marked finished")
	}
	if s.Points() != PublishEvery {
		t.Errorf("canceled worker drew %d points, want one batch (%d)", s.Points(), PublishEvery)
	}
}

func TestSample_CalledTwicePanics(t *testing.T) {
	t.Parallel()
	w := NewWorker(0, NewUniformSource(1, 0))
	_ = w.Sample(context.Background(), 1)

	defer func() {
		if recover() == nil {
			t.Error("expected second Sample call to panic")
		}
	}()
	_ = w.Sample(context.Background(), 1)
}

func TestUniformSource_Range(t *testing.T) {
	t.Parallel()
	src := NewUniformSource(99, 1)
	for i := 0; i < 100_000; i++ {
		x, y := src.Point()
		if x < -1 || x > 1 || y < -1 || y > 1 {
			t.Fatalf("draw %d out of range: (%f, %f)", i, x, y)
		}
	}
}

func TestUniformSources_DistinctStreams(t *testing.T) {
	t.Parallel()
	factory := UniformSources(42)
	a, b := factory(0), factory(1)

	same := 0
	for i := 0; i < 1000; i++ {
		ax, ay := a.Point()
		bx, by := b.Point()
		if ax == bx && ay == by {
			same++
		}
	}
	if same > 0 {
		t.Errorf("workers 0 and 1 produced %d identical draws", same)
	}
}

func TestUniformSources_Reproducible(t *testing.T) {
	t.Parallel()
	a, b := UniformSources(42)(2), UniformSources(42)(2)
	for i := 0; i < 1000; i++ {
		ax, ay := a.Point()
		bx, by := b.Point()
		if ax != bx || ay != by {
			t.Fatalf("draw %d differs for identical seeds", i)
		}
	}
}

// TestConvergence runs four workers with 10^7 draws each; the standard error
// at that size is about 2.6e-4, so the 0.01 bound is very generous.
func TestConvergence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping convergence run in short mode")
	}
	t.Parallel()

	const workers, iterations = 4, 10_000_000
	factory := UniformSources(2024)
	ws := make([]*Worker, workers)
	for i := range ws {
		ws[i] = NewWorker(i, factory(i))
	}

	var wg sync.WaitGroup
	for _, w := range ws {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			_ = w.Sample(context.Background(), iterations)
		}(w)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Minute):
		t.Fatal("workers did not finish within 2 minutes")
	}

	snaps := make([]Snapshot, workers)
	for i, w := range ws {
		snaps[i] = w.Snapshot()
	}
	agg := Combine(snaps)
	if agg.TotalPoints != workers*iterations {
		t.Fatalf("TotalPoints = %d, want %d", agg.TotalPoints, workers*iterations)
	}
	if diff := math.Abs(agg.Estimate() - math.Pi); diff > 0.01 {
		t.Errorf("estimate %f is %f away from π", agg.Estimate(), diff)
	}
}

func BenchmarkSample(b *testing.B) {
	for i := 0; i < b.N; i++ {
		w := NewWorker(0, NewUniformSource(uint64(i)+1, 0))
		_ = w.Sample(context.Background(), 100_000)
	}
}

func TestContainsPoint(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{1, 0, true},
		{0.5, 0.5, true},
		{-0.3, -0.4, true},
		{1, 1, false},
		{-1, 0.01, false},
	}
	for _, tt := range tests {
		if got := ContainsPoint(tt.x, tt.y); got != tt.want {
			t.Errorf("ContainsPoint(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
