package montecarlo

import "math/rand/v2"

// PointSource produces the (x, y) coordinates of successive draws.
// Implementations are owned by a single Worker and need not be safe for
// concurrent use.
type PointSource interface {
	Point() (x, y float64)
}

// SourceFactory builds the PointSource for the worker at the given index.
type SourceFactory func(index int) PointSource

// uniformSource draws coordinates uniformly from [-1, 1] using a PCG
// generator private to one worker.
type uniformSource struct {
	rng *rand.Rand
}

// NewUniformSource returns a PointSource over [-1, 1]² seeded with the pair
// (seed, stream).
func NewUniformSource(seed, stream uint64) PointSource {
	return &uniformSource{rng: rand.New(rand.NewPCG(seed, stream))}
}

// Point returns two independent coordinates in [-1, 1].
func (s *uniformSource) Point() (float64, float64) {
	return 2*s.rng.Float64() - 1, 2*s.rng.Float64() - 1
}

// UniformSources returns a SourceFactory giving every worker its own
// generator. A zero seed draws a random base seed, so two runs differ; any
// other seed makes the run reproducible for a fixed worker count.
func UniformSources(seed uint64) SourceFactory {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return func(index int) PointSource {
		return NewUniformSource(mix(seed+uint64(index)), uint64(index))
	}
}

// mix is the splitmix64 finalizer; it spreads neighbouring seeds apart so
// workers 0..N-1 do not start from correlated PCG states.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// SequenceSource replays a fixed list of points, wrapping around at the end.
// It exists for tests and for reproducing a classification by hand.
type SequenceSource struct {
	points [][2]float64
	next   int
}

// NewSequenceSource returns a source cycling through points. It panics when
// points is empty.
func NewSequenceSource(points ...[2]float64) *SequenceSource {
	if len(points) == 0 {
		panic("montecarlo: empty point sequence")
	}
	return &SequenceSource{points: points}
}

// Point returns the next point of the sequence.
func (s *SequenceSource) Point() (float64, float64) {
	p := s.points[s.next]
	s.next = (s.next + 1) % len(s.points)
	return p[0], p[1]
}
