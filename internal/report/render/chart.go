package render

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"fps-pipeline/internal/report"

	"gocv.io/x/gocv"
)

const (
	DefaultWidth  = 1000
	DefaultHeight = 500
	Title         = "Single vs Multi Thread Video Processing"
)

var palette = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
}

var (
	black = color.RGBA{A: 255}
	grid  = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

// Series is one labelled FPS curve.
type Series struct {
	Label   string
	Samples []float64
}

// Chart draws the FPS curves into a BGR Mat owned by the caller.
func Chart(series []Series, width, height int) (gocv.Mat, error) {
	if width <= 0 || height <= 0 {
		return gocv.NewMat(), fmt.Errorf("invalid chart size %dx%d", width, height)
	}

	data := make([][]float64, len(series))
	for i, s := range series {
		data[i] = s.Samples
	}
	plot := report.Layout(data, width, height)

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), height, width, gocv.MatTypeCV8UC3)

	for _, tick := range plot.YTicks {
		gocv.Line(&img, image.Pt(plot.Area.Min.X, tick.Pos), image.Pt(plot.Area.Max.X, tick.Pos), grid, 1)
		putText(&img, strconv.FormatFloat(tick.Value, 'g', 4, 64), image.Pt(plot.Area.Min.X-55, tick.Pos+5), 0.45)
	}
	for _, tick := range plot.XTicks {
		putText(&img, strconv.FormatFloat(tick.Value, 'f', 0, 64), image.Pt(tick.Pos-10, plot.Area.Max.Y+20), 0.45)
	}

	gocv.Line(&img, plot.Area.Min, image.Pt(plot.Area.Min.X, plot.Area.Max.Y), black, 1)
	gocv.Line(&img, image.Pt(plot.Area.Min.X, plot.Area.Max.Y), plot.Area.Max, black, 1)

	for i, line := range plot.Lines {
		c := palette[i%len(palette)]
		for j := 1; j < len(line); j++ {
			gocv.Line(&img, line[j-1], line[j], c, 2)
		}
		if len(line) == 1 {
			gocv.Circle(&img, line[0], 2, c, -1)
		}
	}

	putText(&img, Title, image.Pt(plot.Area.Min.X, 30), 0.7)
	putText(&img, "Frame #", image.Pt(plot.Area.Min.X+plot.Area.Dx()/2-30, height-15), 0.5)
	putText(&img, "FPS", image.Pt(10, plot.Area.Min.Y-10), 0.5)

	legendX := plot.Area.Max.X - 230
	for i, s := range series {
		y := plot.Area.Min.Y + 20 + i*22
		c := palette[i%len(palette)]
		gocv.Line(&img, image.Pt(legendX, y-5), image.Pt(legendX+25, y-5), c, 3)
		putText(&img, s.Label, image.Pt(legendX+32, y), 0.5)
	}

	return img, nil
}

// SavePNG renders the chart and writes it to path.
func SavePNG(path string, series []Series, width, height int) error {
	img, err := Chart(series, width, height)
	defer img.Close()
	if err != nil {
		return err
	}
	if ok := gocv.IMWrite(path, img); !ok {
		return fmt.Errorf("failed to write chart to %s", path)
	}
	return nil
}

// Image renders the chart as a Go image for viewers that do not speak gocv.
func Image(series []Series, width, height int) (image.Image, error) {
	img, err := Chart(series, width, height)
	defer img.Close()
	if err != nil {
		return nil, err
	}
	return img.ToImage()
}

func putText(img *gocv.Mat, text string, org image.Point, scale float64) {
	gocv.PutText(img, text, org, gocv.FontHersheySimplex, scale, black, 1)
}
