package montecarlo

import (
	"context"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestClassification_PropertyBased checks that a single draw lands in the
// inside counter exactly when x²+y² ≤ 1.
func TestClassification_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("one draw is counted inside iff x²+y² <= 1", prop.ForAll(
		func(x, y float64) bool {
			w := NewWorker(0, NewSequenceSource([2]float64{x, y}))
			if err := w.Sample(context.Background(), 1); err != nil {
				return false
			}
			s := w.Snapshot()
			if x*x+y*y <= 1 {
				return s.Inside == 1 && s.Outside == 0
			}
			return s.Inside == 0 && s.Outside == 1
		},
		gen.Float64Range(-1, 1),
		gen.Float64Range(-1, 1),
	))

	properties.TestingRun(t)
}

// TestConservation_PropertyBased checks inside+outside == iterations for
// arbitrary budgets and seeds.
func TestConservation_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("finished worker accounts for every iteration", prop.ForAll(
		func(n uint64, seed uint64) bool {
			n %= 50_000
			w := NewWorker(0, NewUniformSource(seed, 0))
			if err := w.Sample(context.Background(), n); err != nil {
				return false
			}
			s := w.Snapshot()
			return s.Finished && s.Points() == n
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

// TestEstimateBounds_PropertyBased checks that any non-empty aggregate lies
// in [0, 4].
func TestEstimateBounds_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("estimate stays within [0, 4]", prop.ForAll(
		func(inside, outside uint32) bool {
			est := EstimatePi(uint64(inside), uint64(inside)+uint64(outside))
			if inside == 0 && outside == 0 {
				return math.IsNaN(est)
			}
			return est >= 0 && est <= 4
		},
		gen.UInt32(),
		gen.UInt32(),
	))

	properties.TestingRun(t)
}
