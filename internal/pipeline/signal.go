package pipeline

import (
	"sync"
	"sync/atomic"
)

// Signal is a set-once cancellation flag shared by the capture worker and the
// processing loop. Both check it cooperatively at iteration boundaries.
type Signal struct {
	set  atomic.Bool
	once sync.Once
	done chan struct{}
}

func NewSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Set is safe to call any number of times from any goroutine.
func (s *Signal) Set() {
	s.once.Do(func() {
		s.set.Store(true)
		close(s.done)
	})
}

func (s *Signal) IsSet() bool {
	return s.set.Load()
}

func (s *Signal) Done() <-chan struct{} {
	return s.done
}
