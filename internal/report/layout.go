package report

import (
	"image"
	"math"
)

const (
	marginLeft   = 70
	marginRight  = 20
	marginTop    = 50
	marginBottom = 60
	tickCount    = 5
)

// Tick is an axis label position in pixels.
type Tick struct {
	Value float64
	Pos   int
}

// Plot is the pixel geometry of an FPS chart, independent of any drawing
// backend. Lines[i] is the polyline of series i.
type Plot struct {
	Width, Height int
	Area          image.Rectangle
	MaxFrames     int
	MaxFPS        float64
	Lines         [][]image.Point
	XTicks        []Tick
	YTicks        []Tick
}

// Layout maps every series onto a shared frame-index / FPS coordinate system,
// x = frame number, y = FPS, origin bottom-left.
func Layout(series [][]float64, width, height int) Plot {
	p := Plot{
		Width:  width,
		Height: height,
		Area:   image.Rect(marginLeft, marginTop, width-marginRight, height-marginBottom),
	}

	peak := 0.0
	for _, s := range series {
		if len(s) > p.MaxFrames {
			p.MaxFrames = len(s)
		}
		for _, v := range s {
			if v > peak && !math.IsInf(v, 1) {
				peak = v
			}
		}
	}
	p.MaxFPS = niceCeil(peak)

	xSpan := float64(p.MaxFrames - 1)
	if xSpan < 1 {
		xSpan = 1
	}

	p.Lines = make([][]image.Point, len(series))
	for i, s := range series {
		line := make([]image.Point, len(s))
		for j, v := range s {
			line[j] = image.Pt(p.xPos(float64(j), xSpan), p.yPos(v))
		}
		p.Lines[i] = line
	}

	for i := 0; i <= tickCount; i++ {
		yv := p.MaxFPS * float64(i) / tickCount
		p.YTicks = append(p.YTicks, Tick{Value: yv, Pos: p.yPos(yv)})

		xv := math.Round(xSpan * float64(i) / tickCount)
		p.XTicks = append(p.XTicks, Tick{Value: xv, Pos: p.xPos(xv, xSpan)})
	}

	return p
}

func (p Plot) xPos(frame, span float64) int {
	return p.Area.Min.X + int(math.Round(frame/span*float64(p.Area.Dx())))
}

func (p Plot) yPos(fps float64) int {
	if fps < 0 || math.IsNaN(fps) {
		fps = 0
	}
	if fps > p.MaxFPS {
		fps = p.MaxFPS
	}
	return p.Area.Max.Y - int(math.Round(fps/p.MaxFPS*float64(p.Area.Dy())))
}

// niceCeil rounds v up to 1, 2 or 5 times a power of ten.
func niceCeil(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if m*exp >= v {
			return m * exp
		}
	}
	return 10 * exp
}
