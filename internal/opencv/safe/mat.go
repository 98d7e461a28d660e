package safe

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"gocv.io/x/gocv"
)

// Mat owns a gocv.Mat and implements pipeline.Frame. Close is idempotent and
// a finalizer releases the native memory if Close is never called.
type Mat struct {
	mat        gocv.Mat
	isValid    int32
	mu         sync.RWMutex
	seq        uint64
	capturedAt time.Time
}

// liveMats counts wrapped Mats not yet closed, across the process.
var liveMats atomic.Int64

// Live reports how many Mats are currently open. Non-zero after a run has
// torn down means a frame leaked.
func Live() int64 {
	return liveMats.Load()
}

// Wrap takes ownership of m. seq is the capture order of the frame.
func Wrap(m gocv.Mat, seq uint64) (*Mat, error) {
	if m.Empty() {
		m.Close()
		return nil, fmt.Errorf("cannot wrap empty Mat")
	}

	safeMat := &Mat{
		mat:        m,
		isValid:    1,
		seq:        seq,
		capturedAt: time.Now(),
	}

	liveMats.Add(1)
	runtime.SetFinalizer(safeMat, (*Mat).finalize)

	return safeMat, nil
}

func (sm *Mat) IsValid() bool {
	return atomic.LoadInt32(&sm.isValid) == 1
}

func (sm *Mat) Empty() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return true
	}

	return sm.mat.Empty()
}

func (sm *Mat) Rows() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}

	return sm.mat.Rows()
}

func (sm *Mat) Cols() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}

	return sm.mat.Cols()
}

func (sm *Mat) Channels() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.IsValid() {
		return 0
	}

	return sm.mat.Channels()
}

// Seq is the capture order assigned by the source.
func (sm *Mat) Seq() uint64 {
	return sm.seq
}

func (sm *Mat) CapturedAt() time.Time {
	return sm.capturedAt
}

// GetMat exposes the underlying Mat. It stays owned by sm.
func (sm *Mat) GetMat() gocv.Mat {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.mat
}

func (sm *Mat) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if atomic.CompareAndSwapInt32(&sm.isValid, 1, 0) {
		sm.mat.Close()
		liveMats.Add(-1)
		runtime.SetFinalizer(sm, nil)
	}
}

func (sm *Mat) finalize() {
	if atomic.LoadInt32(&sm.isValid) == 1 {
		sm.Close()
	}
}
