package pipeline

import (
	"errors"
	"runtime"
	"time"

	"fps-pipeline/internal/logger"
)

// processingLoop pulls frames, transforms them, shows them and records one
// FPS sample per processed frame.
type processingLoop struct {
	cfg    Config
	label  string
	next   func() (Frame, error) // nil frame and nil error means "nothing yet"
	proc   Processor
	sink   Sink
	quit   QuitSignal
	signal *Signal
	series *Series
	sleep  func(time.Duration)
	now    Clock
	log    logger.Logger

	processed  uint64
	emptyPolls uint64
	reads      uint64 // single mode only
	err        error  // capture failure seen by the loop itself
}

func (l *processingLoop) run() {
	start := l.now()

	for !l.signal.IsSet() {
		t0 := l.now()

		frame, err := l.next()
		if err != nil {
			l.endOfInput(err)
			return
		}

		if frame == nil {
			l.emptyPolls++
			l.idle()
		} else {
			l.handle(frame, t0)
		}

		if l.quit.QuitRequested() {
			l.log.Info("ProcessingLoop", "quit requested", map[string]interface{}{
				"mode":      l.cfg.Mode.String(),
				"processed": l.processed,
			})
			return
		}
		if l.now().Sub(start) >= l.cfg.Duration {
			l.log.Debug("ProcessingLoop", "duration budget reached", map[string]interface{}{
				"mode":     l.cfg.Mode.String(),
				"duration": l.cfg.Duration.String(),
			})
			return
		}
	}
}

func (l *processingLoop) handle(frame Frame, t0 time.Time) {
	l.processed++

	out := frame
	if l.proc != nil {
		var err error
		out, err = l.proc.Process(frame)
		frame.Close()
		if err != nil {
			l.log.Warning("ProcessingLoop", "processing step failed", map[string]interface{}{
				"frame": l.processed,
				"error": err.Error(),
			})
			return
		}
	}

	l.sleep(l.cfg.Delay)

	if err := l.sink.Display(l.label, out); err != nil {
		l.log.Warning("ProcessingLoop", "display failed", map[string]interface{}{
			"frame": l.processed,
			"error": err.Error(),
		})
	}
	out.Close()

	l.series.Append(Sample(l.now().Sub(t0)))
}

func (l *processingLoop) idle() {
	if l.cfg.IdlePoll > 0 {
		time.Sleep(l.cfg.IdlePoll)
		return
	}
	runtime.Gosched()
}

func (l *processingLoop) endOfInput(err error) {
	if errors.Is(err, ErrEndOfStream) {
		l.log.Info("ProcessingLoop", "end of stream", map[string]interface{}{
			"processed": l.processed,
		})
		return
	}
	l.err = asCaptureError(err, l.reads)
	l.log.Error("ProcessingLoop", l.err, map[string]interface{}{
		"processed": l.processed,
	})
}

// readDirect is the single-threaded frame supplier.
func (l *processingLoop) readDirect(source Source) func() (Frame, error) {
	return func() (Frame, error) {
		frame, err := source.Read()
		if err == nil && frame != nil {
			l.reads++
		}
		return frame, err
	}
}

// popQueued is the concurrent frame supplier. It never blocks.
func popQueued(queue *Queue[Frame]) func() (Frame, error) {
	return func() (Frame, error) {
		frame, ok := queue.TryPop()
		if !ok {
			return nil, nil
		}
		return frame, nil
	}
}
