package pipeline

import "time"

// Stats are the frame counters of one run.
type Stats struct {
	Captured   uint64        // frames returned by the source
	Dropped    uint64        // frames rejected by the full queue
	Processed  uint64        // frames handed to the processing step
	EmptyPolls uint64        // loop iterations that found the queue empty
	Elapsed    time.Duration // open to teardown
}

// Result is what a finished run hands back to the caller.
// Samples has at most Stats.Processed entries and is never nil.
type Result struct {
	Mode       Mode
	Samples    []float64
	Stats      Stats
	CaptureErr error
}

func (s Stats) fields() map[string]interface{} {
	return map[string]interface{}{
		"captured":    s.Captured,
		"dropped":     s.Dropped,
		"processed":   s.Processed,
		"empty_polls": s.EmptyPolls,
		"elapsed_ms":  s.Elapsed.Milliseconds(),
	}
}
