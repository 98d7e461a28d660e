package pipeline

import (
	"errors"
	"sync"
	"sync/atomic"

	"fps-pipeline/internal/logger"
)

// captureWorker owns the source in concurrent mode and feeds the queue.
type captureWorker struct {
	source Source
	queue  *Queue[Frame]
	signal *Signal
	log    logger.Logger

	captured atomic.Uint64
	dropped  atomic.Uint64

	// err is written before wg.Done and read only after the join.
	err error
}

func newCaptureWorker(source Source, queue *Queue[Frame], signal *Signal, log logger.Logger) *captureWorker {
	return &captureWorker{
		source: source,
		queue:  queue,
		signal: signal,
		log:    log,
	}
}

// run reads until the signal is set, the stream ends or a read fails.
// The signal is only checked between reads, so shutdown waits for at most one
// in-flight Read.
func (w *captureWorker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	w.log.Debug("CaptureWorker", "capture started", map[string]interface{}{
		"queue_capacity": w.queue.Cap(),
	})

	for !w.signal.IsSet() {
		frame, err := w.source.Read()
		if err != nil {
			if errors.Is(err, ErrEndOfStream) {
				w.log.Info("CaptureWorker", "end of stream", map[string]interface{}{
					"captured": w.captured.Load(),
				})
				return
			}
			w.err = asCaptureError(err, w.captured.Load())
			w.log.Error("CaptureWorker", w.err, map[string]interface{}{
				"captured": w.captured.Load(),
			})
			return
		}
		if frame == nil {
			continue
		}

		w.captured.Add(1)
		if !w.queue.TryPush(frame) {
			frame.Close()
			w.dropped.Add(1)
		}
	}

	w.log.Debug("CaptureWorker", "cancellation observed", map[string]interface{}{
		"captured": w.captured.Load(),
		"dropped":  w.dropped.Load(),
	})
}

func asCaptureError(err error, frame uint64) error {
	if errors.Is(err, ErrCapture) {
		return err
	}
	return &CaptureError{Frame: frame, Err: err}
}
