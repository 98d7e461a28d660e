package pipeline

import (
	"sync"
	"time"
)

// Sample converts one iteration's elapsed time into frames per second.
// Non-positive durations (clock going backwards, zero resolution) yield 0.
func Sample(elapsed time.Duration) float64 {
	seconds := elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return 1 / seconds
}

// Series is the append-only FPS time series of one run, in processing order.
type Series struct {
	mu      sync.Mutex
	samples []float64
}

func (s *Series) Append(fps float64) {
	s.mu.Lock()
	s.samples = append(s.samples, fps)
	s.mu.Unlock()
}

func (s *Series) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.samples)
}

// Values returns a copy; never nil.
func (s *Series) Values() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]float64, len(s.samples))
	copy(out, s.samples)
	return out
}
