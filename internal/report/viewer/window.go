package viewer

import (
	"image"
	"strings"

	"fps-pipeline/internal/report"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const AppID = "com.fps-pipeline.report"

// Show opens a window with the chart and the per-series summaries and blocks
// until it is closed. Must be called from the main goroutine.
func Show(title string, chart image.Image, summaries []report.Summary) {
	a := app.NewWithID(AppID)
	w := a.NewWindow(title)

	img := canvas.NewImageFromImage(chart)
	img.FillMode = canvas.ImageFillContain
	bounds := chart.Bounds()
	img.SetMinSize(fyne.NewSize(float32(bounds.Dx()), float32(bounds.Dy())))

	lines := make([]string, len(summaries))
	for i, s := range summaries {
		lines[i] = s.String()
	}
	info := widget.NewLabel(strings.Join(lines, "\n"))

	w.SetContent(container.NewBorder(nil, info, nil, nil, img))
	w.CenterOnScreen()
	w.ShowAndRun()
}
