package capture

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"fps-pipeline/internal/opencv/safe"
	"fps-pipeline/internal/pipeline"

	"gocv.io/x/gocv"
)

var errDeviceRead = errors.New("device returned no frame")

// Params describes the opened stream as reported by the backend.
type Params struct {
	Width  int
	Height int
	FPS    float64
}

// Source reads frames from a camera or a video file through OpenCV.
// It is not safe for concurrent Read calls; the pipeline guarantees a single
// reader.
type Source struct {
	vc     *gocv.VideoCapture
	id     string
	device bool
	seq    uint64

	closeOnce sync.Once
	closeErr  error
}

// Open treats a numeric id as a device index and anything else as a file
// path or stream URL.
func Open(id string) (*Source, error) {
	id = strings.TrimSpace(id)

	var (
		vc     *gocv.VideoCapture
		err    error
		device bool
	)
	if idx, convErr := strconv.Atoi(id); convErr == nil {
		device = true
		vc, err = gocv.VideoCaptureDevice(idx)
	} else {
		vc, err = gocv.VideoCaptureFile(id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", pipeline.ErrSourceUnavailable, id, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: %q: not opened", pipeline.ErrSourceUnavailable, id)
	}

	return &Source{vc: vc, id: id, device: device}, nil
}

// Read returns the next frame. A file that runs out reports end of stream; a
// device that stops delivering is a capture error.
func (s *Source) Read() (pipeline.Frame, error) {
	m := gocv.NewMat()
	if ok := s.vc.Read(&m); !ok || m.Empty() {
		m.Close()
		if s.device {
			return nil, &pipeline.CaptureError{Frame: s.seq, Err: errDeviceRead}
		}
		return nil, pipeline.ErrEndOfStream
	}

	frame, err := safe.Wrap(m, s.seq)
	if err != nil {
		return nil, &pipeline.CaptureError{Frame: s.seq, Err: err}
	}
	s.seq++
	return frame, nil
}

func (s *Source) Params() Params {
	return Params{
		Width:  int(s.vc.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(s.vc.Get(gocv.VideoCaptureFrameHeight)),
		FPS:    s.vc.Get(gocv.VideoCaptureFPS),
	}
}

func (s *Source) ID() string {
	return s.id
}

// Close releases the device. Later calls return the first result.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.vc.Close()
	})
	return s.closeErr
}
