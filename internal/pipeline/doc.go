// Package pipeline runs a frame capture/processing loop in one of two modes
// and records the per-frame FPS.
//
// In ModeSingle one goroutine reads a frame, processes it, displays it and
// samples the elapsed time, serially. In ModeConcurrent a capture goroutine
// reads frames into a bounded Queue while the calling goroutine pops and
// processes them. The queue drops frames when full and the loop skips an
// iteration when it is empty; both losses are intentional, they are what the
// comparison between the two modes measures.
//
// Shutdown is cooperative: a set-once Signal is checked once per iteration by
// both goroutines. A Controller owns one run and is never reused.
package pipeline
