package pipeline

import (
	"errors"
	"fmt"
)

var (
	ErrSourceUnavailable = errors.New("frame source unavailable")
	ErrEndOfStream       = errors.New("end of stream")
	ErrCapture           = errors.New("capture failed")
	ErrNotIdle           = errors.New("pipeline run already started")
)

// CaptureError is a read failure in the middle of a stream. In concurrent
// mode it stops the capture goroutine while the processing loop keeps polling.
type CaptureError struct {
	Frame uint64 // index of the read that failed
	Err   error
}

func (e *CaptureError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("capture failed at frame %d", e.Frame)
	}
	return fmt.Sprintf("capture failed at frame %d: %v", e.Frame, e.Err)
}

func (e *CaptureError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCapture}
	}
	return []error{ErrCapture, e.Err}
}
