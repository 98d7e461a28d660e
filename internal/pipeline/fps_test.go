package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSample(t *testing.T) {
	assert.Equal(t, 0.0, Sample(0))
	assert.Equal(t, 0.0, Sample(-time.Millisecond))
	assert.InDelta(t, 20.0, Sample(50*time.Millisecond), 1e-9)
	assert.InDelta(t, 1.0, Sample(time.Second), 1e-9)
	assert.Greater(t, Sample(time.Nanosecond), 0.0)
}

func TestSeriesValuesIsACopy(t *testing.T) {
	var s Series
	assert.NotNil(t, s.Values())
	assert.Empty(t, s.Values())

	s.Append(10)
	s.Append(20)
	vals := s.Values()
	vals[0] = 99

	assert.Equal(t, []float64{10, 20}, s.Values())
	assert.Equal(t, 2, s.Len())
}

func TestSignalSetOnce(t *testing.T) {
	s := NewSignal()
	assert.False(t, s.IsSet())

	s.Set()
	s.Set()
	assert.True(t, s.IsSet())

	select {
	case <-s.Done():
	default:
		t.Fatal("Done channel should be closed after Set")
	}
}
