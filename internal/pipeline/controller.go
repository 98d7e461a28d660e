package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"fps-pipeline/internal/logger"
)

type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Deps are the collaborators of a run. Only Open is required.
type Deps struct {
	Open      Opener
	Processor Processor  // nil passes frames through unchanged
	Sink      Sink       // nil discards frames
	Quit      QuitSignal // nil never quits
	Logger    logger.Logger
	Sleep     func(time.Duration) // simulated processing delay; defaults to time.Sleep
	Now       Clock               // defaults to time.Now
}

// Controller owns one pipeline run: Idle -> Running -> Stopped.
// A stopped controller cannot be restarted; build a new one.
type Controller struct {
	cfg  Config
	deps Deps
	log  logger.Logger

	state  atomic.Int32
	signal *Signal
	series Series

	source Source
	queue  *Queue[Frame]
	worker *captureWorker
	wg     sync.WaitGroup

	teardownOnce sync.Once
	done         chan struct{}
}

func NewController(cfg Config, deps Deps) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	if deps.Open == nil {
		return nil, errors.New("pipeline: Deps.Open is required")
	}
	if deps.Sink == nil {
		deps.Sink = DiscardSink{}
	}
	if deps.Quit == nil {
		deps.Quit = neverQuit{}
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if deps.Sleep == nil {
		deps.Sleep = time.Sleep
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Controller{
		cfg:    cfg,
		deps:   deps,
		log:    deps.Logger,
		signal: NewSignal(),
		done:   make(chan struct{}),
	}, nil
}

func (c *Controller) State() State {
	return State(c.state.Load())
}

// Run opens the source, runs the loop until a termination condition and tears
// everything down before returning. Cancelling ctx acts like Stop.
//
// A source that cannot be opened yields an empty sample slice and an error
// wrapping ErrSourceUnavailable. End of stream and capture failures are not
// returned as errors; a capture failure is reported on Result.CaptureErr.
func (c *Controller) Run(ctx context.Context) (*Result, error) {
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return nil, ErrNotIdle
	}
	started := c.deps.Now()

	c.log.Info("Controller", "run starting", map[string]interface{}{
		"mode":           c.cfg.Mode.String(),
		"source":         c.cfg.Source,
		"duration":       c.cfg.Duration.String(),
		"delay":          c.cfg.Delay.String(),
		"queue_capacity": c.cfg.QueueCapacity,
	})

	source, err := c.deps.Open(c.cfg.Source)
	if err == nil && source == nil {
		err = errors.New("opener returned no source")
	}
	if err != nil {
		if !errors.Is(err, ErrSourceUnavailable) {
			err = fmt.Errorf("%w: %q: %w", ErrSourceUnavailable, c.cfg.Source, err)
		}
		c.log.Error("Controller", err, map[string]interface{}{"source": c.cfg.Source})
		c.teardown()
		return &Result{Mode: c.cfg.Mode, Samples: []float64{}, Stats: Stats{Elapsed: c.deps.Now().Sub(started)}}, err
	}
	c.source = source

	go c.watch(ctx)

	loop := &processingLoop{
		cfg:    c.cfg,
		label:  c.cfg.label(),
		proc:   c.deps.Processor,
		sink:   c.deps.Sink,
		quit:   c.deps.Quit,
		signal: c.signal,
		series: &c.series,
		sleep:  c.deps.Sleep,
		now:    c.deps.Now,
		log:    c.log,
	}

	switch c.cfg.Mode {
	case ModeConcurrent:
		c.queue = NewQueue[Frame](c.cfg.QueueCapacity)
		c.worker = newCaptureWorker(source, c.queue, c.signal, c.log)
		c.wg.Add(1)
		go c.worker.run(&c.wg)
		loop.next = popQueued(c.queue)
	default:
		loop.next = loop.readDirect(source)
	}

	loop.run()
	c.teardown()

	result := c.result(loop, started)
	c.log.Info("Controller", "run finished", mergeFields(result.Stats.fields(), map[string]interface{}{
		"mode":    c.cfg.Mode.String(),
		"samples": len(result.Samples),
	}))
	return result, nil
}

// Stop cancels the run and waits for teardown. It returns the samples
// collected so far and may be called any number of times, from any goroutine,
// before, during or after Run.
func (c *Controller) Stop() []float64 {
	c.signal.Set()
	if c.state.CompareAndSwap(int32(StateIdle), int32(StateStopped)) {
		c.teardown()
	}
	<-c.done
	return c.series.Values()
}

func (c *Controller) watch(ctx context.Context) {
	select {
	case <-ctx.Done():
		c.log.Debug("Controller", "context cancelled", nil)
		c.signal.Set()
	case <-c.done:
	}
}

// teardown sets the signal, joins the worker, closes queued frames and
// releases the source. Runs once.
func (c *Controller) teardown() {
	c.teardownOnce.Do(func() {
		c.signal.Set()
		c.wg.Wait()

		if c.queue != nil {
			for _, f := range c.queue.Drain() {
				f.Close()
			}
		}
		if c.source != nil {
			if err := c.source.Close(); err != nil {
				c.log.Warning("Controller", "source release failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		c.state.Store(int32(StateStopped))
		close(c.done)
	})
}

func (c *Controller) result(loop *processingLoop, started time.Time) *Result {
	res := &Result{
		Mode:    c.cfg.Mode,
		Samples: c.series.Values(),
		Stats: Stats{
			Processed:  loop.processed,
			EmptyPolls: loop.emptyPolls,
			Elapsed:    c.deps.Now().Sub(started),
		},
		CaptureErr: loop.err,
	}
	if c.worker != nil {
		res.Stats.Captured = c.worker.captured.Load()
		res.Stats.Dropped = c.worker.dropped.Load()
		res.CaptureErr = c.worker.err
	} else {
		res.Stats.Captured = loop.reads
	}
	return res
}

func mergeFields(a, b map[string]interface{}) map[string]interface{} {
	for k, v := range b {
		a[k] = v
	}
	return a
}
