package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"fps-pipeline/internal/logger"
	"fps-pipeline/internal/pipeline"
)

// RunBoth runs the single-threaded baseline and then the concurrent pipeline.
const RunBoth = "both"

// Config is the full command-line surface of the tool.
type Config struct {
	Source        string
	Mode          string // "both", "single" or "concurrent"
	Duration      time.Duration
	Delay         time.Duration
	QueueCapacity int
	IdlePoll      time.Duration
	Headless      bool
	ReportPath    string
	ShowReport    bool
	LogLevel      logger.LogLevel
}

func Default() Config {
	return Config{
		Source:        pipeline.DefaultSource,
		Mode:          RunBoth,
		Duration:      pipeline.DefaultDuration,
		Delay:         pipeline.DefaultDelay,
		QueueCapacity: pipeline.DefaultQueueCapacity,
		IdlePoll:      pipeline.DefaultIdlePoll,
		ReportPath:    "result.png",
		LogLevel:      logger.InfoLevel,
	}
}

// ValidationError reports a single invalid setting.
type ValidationError struct {
	Parameter string
	Value     interface{}
	Message   string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", ve.Parameter, ve.Value, ve.Message)
}

// Load parses args on top of environment defaults. getenv is os.Getenv in
// production.
func Load(args []string, getenv func(string) string, output io.Writer) (Config, error) {
	cfg := Default()
	if v := getenv("FPS_SOURCE"); v != "" {
		cfg.Source = v
	}
	cfg.LogLevel = levelFromEnv(getenv)

	fs := flag.NewFlagSet("fps-pipeline", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&cfg.Source, "source", cfg.Source, "camera index or video file path")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "which pipeline to run: both, single or concurrent")
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "wall-clock budget per run")
	fs.DurationVar(&cfg.Delay, "delay", cfg.Delay, "simulated processing cost per frame")
	fs.IntVar(&cfg.QueueCapacity, "queue", cfg.QueueCapacity, "frame queue capacity in concurrent mode")
	fs.DurationVar(&cfg.IdlePoll, "idle-poll", cfg.IdlePoll, "wait after an empty queue poll")
	fs.BoolVar(&cfg.Headless, "headless", cfg.Headless, "do not open preview windows")
	fs.StringVar(&cfg.ReportPath, "report", cfg.ReportPath, "PNG path for the FPS chart, empty to skip")
	fs.BoolVar(&cfg.ShowReport, "show", cfg.ShowReport, "open the FPS chart in a window after the runs")
	level := fs.String("log-level", cfg.LogLevel.String(), "debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	parsed, err := logger.ParseLevel(*level)
	if err != nil {
		return cfg, &ValidationError{Parameter: "log-level", Value: *level, Message: err.Error()}
	}
	cfg.LogLevel = parsed
	cfg.Mode = strings.ToLower(strings.TrimSpace(cfg.Mode))

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return &ValidationError{Parameter: "source", Value: c.Source, Message: "must not be empty"}
	}
	if _, err := c.Modes(); err != nil {
		return &ValidationError{Parameter: "mode", Value: c.Mode, Message: err.Error()}
	}
	if c.Duration < 0 {
		return &ValidationError{Parameter: "duration", Value: c.Duration, Message: "must not be negative"}
	}
	if c.Delay < 0 {
		return &ValidationError{Parameter: "delay", Value: c.Delay, Message: "must not be negative"}
	}
	if c.IdlePoll < 0 {
		return &ValidationError{Parameter: "idle-poll", Value: c.IdlePoll, Message: "must not be negative"}
	}
	if c.QueueCapacity < 1 {
		return &ValidationError{Parameter: "queue", Value: c.QueueCapacity, Message: "must be at least 1"}
	}
	return nil
}

// Modes lists the pipeline modes to run, baseline first.
func (c Config) Modes() ([]pipeline.Mode, error) {
	if c.Mode == RunBoth {
		return []pipeline.Mode{pipeline.ModeSingle, pipeline.ModeConcurrent}, nil
	}
	m, err := pipeline.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	return []pipeline.Mode{m}, nil
}

// Pipeline builds the per-run configuration for mode.
func (c Config) Pipeline(mode pipeline.Mode) pipeline.Config {
	pc := pipeline.DefaultConfig(mode)
	pc.Source = c.Source
	pc.Duration = c.Duration
	pc.Delay = c.Delay
	pc.QueueCapacity = c.QueueCapacity
	pc.IdlePoll = c.IdlePoll
	return pc
}

func levelFromEnv(getenv func(string) string) logger.LogLevel {
	if v := getenv("LOG_LEVEL"); v != "" {
		if lvl, err := logger.ParseLevel(v); err == nil {
			return lvl
		}
	}
	if getenv("DEBUG") == "1" {
		return logger.DebugLevel
	}
	return logger.InfoLevel
}
