package pipeline

import (
	"fmt"
	"strings"
	"time"
)

type Mode int

const (
	// ModeSingle captures and processes on one goroutine, serially.
	ModeSingle Mode = iota
	// ModeConcurrent runs a capture goroutine feeding a bounded queue.
	ModeConcurrent
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeConcurrent:
		return "concurrent"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "single-thread", "single_thread":
		return ModeSingle, nil
	case "concurrent", "multi", "multi-thread", "multi_thread":
		return ModeConcurrent, nil
	}
	return ModeSingle, fmt.Errorf("unknown pipeline mode %q", s)
}

const (
	DefaultSource        = "0"
	DefaultDuration      = 10 * time.Second
	DefaultDelay         = 50 * time.Millisecond
	DefaultQueueCapacity = 10
	DefaultIdlePoll      = time.Millisecond
)

// Config describes one pipeline run.
type Config struct {
	Mode Mode

	// Source is a device index ("0") or a file path / URL.
	Source string

	// Duration is the wall-clock budget of the processing loop.
	Duration time.Duration

	// Delay is the simulated heavy processing cost added to every frame.
	Delay time.Duration

	// QueueCapacity bounds the frame queue in concurrent mode.
	QueueCapacity int

	// IdlePoll is how long the loop waits after finding the queue empty.
	// Zero yields the processor instead of sleeping.
	IdlePoll time.Duration

	// WindowLabel is passed to the sink. Empty picks a per-mode default.
	WindowLabel string
}

func DefaultConfig(mode Mode) Config {
	return Config{
		Mode:          mode,
		Source:        DefaultSource,
		Duration:      DefaultDuration,
		Delay:         DefaultDelay,
		QueueCapacity: DefaultQueueCapacity,
		IdlePoll:      DefaultIdlePoll,
	}
}

func (c Config) Validate() error {
	if c.Mode != ModeSingle && c.Mode != ModeConcurrent {
		return fmt.Errorf("invalid mode: %v", c.Mode)
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %v", c.Duration)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %v", c.Delay)
	}
	if c.IdlePoll < 0 {
		return fmt.Errorf("idle poll must not be negative, got %v", c.IdlePoll)
	}
	if c.Mode == ModeConcurrent && c.QueueCapacity < 1 {
		return fmt.Errorf("queue capacity must be at least 1, got %d", c.QueueCapacity)
	}
	return nil
}

func (c Config) label() string {
	if c.WindowLabel != "" {
		return c.WindowLabel
	}
	if c.Mode == ModeConcurrent {
		return "Multi Thread"
	}
	return "Single Thread"
}
