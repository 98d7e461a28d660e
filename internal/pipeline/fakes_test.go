package pipeline

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeFrame struct {
	id     int
	closed atomic.Int32
}

func (f *fakeFrame) Close() { f.closed.Add(1) }

// fakeSource yields numbered frames. limit < 0 means endless; failAt >= 0
// makes that read fail with a device error.
type fakeSource struct {
	limit     int
	failAt    int
	readDelay time.Duration

	mu     sync.Mutex
	reads  int
	frames []*fakeFrame
	closes atomic.Int32
}

func newFakeSource(limit int) *fakeSource {
	return &fakeSource{limit: limit, failAt: -1}
}

func (s *fakeSource) Read() (Frame, error) {
	if s.readDelay > 0 {
		time.Sleep(s.readDelay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAt >= 0 && s.reads == s.failAt {
		return nil, errors.New("device unplugged")
	}
	if s.limit >= 0 && s.reads >= s.limit {
		return nil, ErrEndOfStream
	}

	f := &fakeFrame{id: s.reads}
	s.reads++
	s.frames = append(s.frames, f)
	return f, nil
}

func (s *fakeSource) Close() error {
	s.closes.Add(1)
	return nil
}

func (s *fakeSource) opener() Opener {
	return func(string) (Source, error) { return s, nil }
}

func (s *fakeSource) produced() []*fakeFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*fakeFrame, len(s.frames))
	copy(out, s.frames)
	return out
}

// assertAllClosedOnce checks frame ownership: every frame the source handed
// out was closed exactly once, whether processed, dropped or drained.
func (s *fakeSource) assertAllClosedOnce(t *testing.T) {
	t.Helper()
	for _, f := range s.produced() {
		assert.EqualValues(t, 1, f.closed.Load(), "frame %d close count", f.id)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	labels []string
	count  atomic.Int64
}

func (s *recordingSink) Display(label string, f Frame) error {
	s.mu.Lock()
	s.labels = append(s.labels, label)
	s.mu.Unlock()
	s.count.Add(1)
	return nil
}

// copyProcessor stands in for grayscale conversion: it returns a new frame.
type copyProcessor struct {
	mu  sync.Mutex
	out []*fakeFrame
}

func (p *copyProcessor) Process(in Frame) (Frame, error) {
	src := in.(*fakeFrame)
	f := &fakeFrame{id: src.id}
	p.mu.Lock()
	p.out = append(p.out, f)
	p.mu.Unlock()
	return f, nil
}

func (p *copyProcessor) assertAllClosedOnce(t *testing.T) {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range p.out {
		assert.EqualValues(t, 1, f.closed.Load(), "processed frame %d close count", f.id)
	}
}

type sleepRecorder struct {
	calls atomic.Int64
	total atomic.Int64
}

func (s *sleepRecorder) Sleep(d time.Duration) {
	s.calls.Add(1)
	s.total.Add(int64(d))
}

func testConfig(mode Mode) Config {
	cfg := DefaultConfig(mode)
	cfg.Duration = 5 * time.Second
	cfg.IdlePoll = 50 * time.Microsecond
	return cfg
}
