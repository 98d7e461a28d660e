package display

import (
	"fmt"

	"fps-pipeline/internal/opencv/safe"
	"fps-pipeline/internal/pipeline"

	"gocv.io/x/gocv"
)

const keyEsc = 27

// Window shows frames in HighGUI windows, one per label, and reports a quit
// when 'q' or Esc is pressed. HighGUI is not thread safe: use it from the
// goroutine that runs the pipeline.
type Window struct {
	windows map[string]*gocv.Window
	last    *gocv.Window
}

func NewWindow() *Window {
	return &Window{windows: make(map[string]*gocv.Window)}
}

func (w *Window) Display(label string, f pipeline.Frame) error {
	m, ok := f.(*safe.Mat)
	if !ok {
		return fmt.Errorf("display: unsupported frame type %T", f)
	}
	if err := safe.ValidateMatForOperation(m, "display"); err != nil {
		return err
	}

	win, exists := w.windows[label]
	if !exists {
		win = gocv.NewWindow(label)
		w.windows[label] = win
	}
	win.IMShow(m.GetMat())
	w.last = win
	return nil
}

// QuitRequested pumps the HighGUI event loop for 1ms, which also paints the
// last IMShow.
func (w *Window) QuitRequested() bool {
	if w.last == nil {
		return false
	}
	key := w.last.WaitKey(1)
	if key < 0 {
		return false
	}
	key &= 0xFF
	return key == 'q' || key == keyEsc
}

func (w *Window) Close() {
	for label, win := range w.windows {
		win.Close()
		delete(w.windows, label)
	}
	w.last = nil
}
