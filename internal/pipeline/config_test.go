package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(ModeConcurrent)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "0", cfg.Source)
	assert.Equal(t, 10*time.Second, cfg.Duration)
	assert.Equal(t, 50*time.Millisecond, cfg.Delay)
	assert.Equal(t, 10, cfg.QueueCapacity)
	assert.Equal(t, "Multi Thread", cfg.label())
	assert.Equal(t, "Single Thread", DefaultConfig(ModeSingle).label())
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig(ModeConcurrent)
	cfg.QueueCapacity = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig(ModeSingle)
	cfg.QueueCapacity = 0
	assert.NoError(t, cfg.Validate(), "capacity is unused in single mode")

	cfg.Duration = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig(ModeSingle)
	cfg.Delay = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig(Mode(7))
	assert.Error(t, cfg.Validate())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("single")
	require.NoError(t, err)
	assert.Equal(t, ModeSingle, m)

	m, err = ParseMode("Multi-Thread")
	require.NoError(t, err)
	assert.Equal(t, ModeConcurrent, m)

	_, err = ParseMode("both")
	assert.Error(t, err)
	assert.Equal(t, "concurrent", ModeConcurrent.String())
}
