package report

import (
	"fmt"
	"sort"
)

// Summary condenses one FPS series for logs and the chart legend.
type Summary struct {
	Label  string
	Count  int
	Mean   float64
	Median float64
	Min    float64
	Max    float64
}

func Summarize(label string, samples []float64) Summary {
	s := Summary{Label: label, Count: len(samples)}
	if len(samples) == 0 {
		return s
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	s.Mean = sum / float64(len(sorted))
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	if n := len(sorted); n%2 == 1 {
		s.Median = sorted[n/2]
	} else {
		s.Median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return s
}

func (s Summary) String() string {
	if s.Count == 0 {
		return fmt.Sprintf("%s: no frames processed", s.Label)
	}
	return fmt.Sprintf("%s: %d frames, mean %.1f FPS (median %.1f, min %.1f, max %.1f)",
		s.Label, s.Count, s.Mean, s.Median, s.Min, s.Max)
}

// Fields is the structured-log form of s.
func (s Summary) Fields() map[string]interface{} {
	return map[string]interface{}{
		"series":     s.Label,
		"frames":     s.Count,
		"mean_fps":   s.Mean,
		"median_fps": s.Median,
		"min_fps":    s.Min,
		"max_fps":    s.Max,
	}
}
