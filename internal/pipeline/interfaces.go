package pipeline

import "time"

// Frame is one decoded image unit. The current owner closes it exactly once.
type Frame interface {
	Close()
}

// Source yields frames from a capture device or a video file.
// Read returns ErrEndOfStream when a finite source is exhausted and an error
// wrapping ErrCapture on a mid-stream failure. Close must be idempotent.
type Source interface {
	Read() (Frame, error)
	Close() error
}

// Opener opens a Source from a device index or a path. Failures are reported
// as ErrSourceUnavailable by the controller.
type Opener func(id string) (Source, error)

// Processor is the per-frame transform (grayscale conversion in production).
// The returned frame is owned by the caller; the input stays with the caller too.
type Processor interface {
	Process(in Frame) (Frame, error)
}

// Sink presents a processed frame. It must not retain the frame after returning.
type Sink interface {
	Display(label string, f Frame) error
}

// QuitSignal reports whether the user asked to stop. Polled once per iteration.
type QuitSignal interface {
	QuitRequested() bool
}

type ProcessorFunc func(in Frame) (Frame, error)

func (f ProcessorFunc) Process(in Frame) (Frame, error) { return f(in) }

type QuitFunc func() bool

func (f QuitFunc) QuitRequested() bool { return f() }

// AnyQuit reports quit as soon as one of signals does. Every signal is polled
// on each call so key-driven signals keep pumping their event loop.
func AnyQuit(signals ...QuitSignal) QuitSignal {
	return QuitFunc(func() bool {
		quit := false
		for _, s := range signals {
			if s != nil && s.QuitRequested() {
				quit = true
			}
		}
		return quit
	})
}

// DiscardSink drops every frame. Used for headless runs.
type DiscardSink struct{}

func (DiscardSink) Display(string, Frame) error { return nil }

type neverQuit struct{}

func (neverQuit) QuitRequested() bool { return false }

// Clock is swapped out in tests.
type Clock func() time.Time
