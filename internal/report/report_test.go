package report

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := Summarize("Single Thread FPS", []float64{20, 10, 30, 40})
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 25, s.Mean, 1e-9)
	assert.InDelta(t, 25, s.Median, 1e-9)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 40.0, s.Max)
	assert.Contains(t, s.String(), "4 frames")

	odd := Summarize("x", []float64{3, 1, 2})
	assert.Equal(t, 2.0, odd.Median)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize("Multi Thread FPS", nil)
	assert.Zero(t, s.Count)
	assert.Zero(t, s.Mean)
	assert.Equal(t, "Multi Thread FPS: no frames processed", s.String())
	assert.Equal(t, 0, s.Fields()["frames"])
}

func TestNiceCeil(t *testing.T) {
	assert.Equal(t, 1.0, niceCeil(0))
	assert.Equal(t, 20.0, niceCeil(17.3))
	assert.Equal(t, 50.0, niceCeil(20.5))
	assert.Equal(t, 100.0, niceCeil(100))
	assert.InDelta(t, 0.5, niceCeil(0.31), 1e-12)
}

func TestLayoutMapsSeriesIntoPlotArea(t *testing.T) {
	p := Layout([][]float64{{0, 10, 20}, {20}}, 800, 400)

	require.Len(t, p.Lines, 2)
	assert.Equal(t, 3, p.MaxFrames)
	assert.Equal(t, 20.0, p.MaxFPS)

	first := p.Lines[0]
	assert.Equal(t, image.Pt(p.Area.Min.X, p.Area.Max.Y), first[0], "origin is bottom-left")
	assert.Equal(t, image.Pt(p.Area.Max.X, p.Area.Min.Y), first[2], "last frame at peak FPS is top-right")
	assert.Equal(t, p.Area.Min.Y+p.Area.Dy()/2, first[1].Y)

	for _, line := range p.Lines {
		for _, pt := range line {
			assert.True(t, pt.In(p.Area.Inset(-1)), "point %v outside %v", pt, p.Area)
		}
	}

	require.Len(t, p.YTicks, tickCount+1)
	assert.Equal(t, 0.0, p.YTicks[0].Value)
	assert.Equal(t, p.MaxFPS, p.YTicks[tickCount].Value)
	assert.Equal(t, p.Area.Max.X, p.XTicks[tickCount].Pos)
}

func TestLayoutHandlesEmptyAndInfinite(t *testing.T) {
	p := Layout([][]float64{nil, {math.Inf(1), 5}}, 640, 480)
	assert.Empty(t, p.Lines[0])
	assert.Equal(t, 5.0, p.MaxFPS)
	assert.Equal(t, p.Area.Min.Y, p.Lines[1][0].Y, "infinite samples are clamped to the top")
}
