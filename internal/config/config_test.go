package config

import (
	"errors"
	"io"
	"testing"
	"time"

	"fps-pipeline/internal/logger"
	"fps-pipeline/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, env(nil), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "0", cfg.Source)
	assert.Equal(t, RunBoth, cfg.Mode)
	assert.Equal(t, 10*time.Second, cfg.Duration)
	assert.Equal(t, 50*time.Millisecond, cfg.Delay)
	assert.Equal(t, 10, cfg.QueueCapacity)
	assert.Equal(t, "result.png", cfg.ReportPath)
	assert.Equal(t, logger.InfoLevel, cfg.LogLevel)

	modes, err := cfg.Modes()
	require.NoError(t, err)
	assert.Equal(t, []pipeline.Mode{pipeline.ModeSingle, pipeline.ModeConcurrent}, modes)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	cfg, err := Load([]string{
		"-source", "clip.mp4",
		"-mode", "Concurrent",
		"-duration", "3s",
		"-delay", "0",
		"-queue", "4",
		"-headless",
		"-log-level", "warn",
	}, env(map[string]string{"FPS_SOURCE": "2", "LOG_LEVEL": "debug"}), io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "clip.mp4", cfg.Source)
	assert.True(t, cfg.Headless)
	assert.Equal(t, logger.WarnLevel, cfg.LogLevel)

	modes, err := cfg.Modes()
	require.NoError(t, err)
	assert.Equal(t, []pipeline.Mode{pipeline.ModeConcurrent}, modes)

	pc := cfg.Pipeline(pipeline.ModeConcurrent)
	assert.Equal(t, "clip.mp4", pc.Source)
	assert.Equal(t, 3*time.Second, pc.Duration)
	assert.Zero(t, pc.Delay)
	assert.Equal(t, 4, pc.QueueCapacity)
	require.NoError(t, pc.Validate())
}

func TestLoadEnv(t *testing.T) {
	cfg, err := Load(nil, env(map[string]string{"FPS_SOURCE": "video.avi", "DEBUG": "1"}), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "video.avi", cfg.Source)
	assert.Equal(t, logger.DebugLevel, cfg.LogLevel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][]string{
		"queue":     {"-queue", "0"},
		"mode":      {"-mode", "parallel"},
		"duration":  {"-duration", "-1s"},
		"log-level": {"-log-level", "loud"},
		"source":    {"-source", " "},
	}
	for param, args := range cases {
		_, err := Load(args, env(nil), io.Discard)
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), param)
		assert.Equal(t, param, verr.Parameter)
	}

	_, err := Load([]string{"-no-such-flag"}, env(nil), io.Discard)
	assert.Error(t, err)
}
