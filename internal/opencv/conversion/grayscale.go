package conversion

import (
	"fmt"

	"fps-pipeline/internal/opencv/safe"
	"fps-pipeline/internal/pipeline"

	"gocv.io/x/gocv"
)

// Grayscale is the per-frame processing step: BGR(A) to single channel.
// Input frames that are already gray are copied so the caller can close the
// input independently.
type Grayscale struct{}

func (Grayscale) Process(in pipeline.Frame) (pipeline.Frame, error) {
	src, ok := in.(*safe.Mat)
	if !ok {
		return nil, fmt.Errorf("grayscale: unsupported frame type %T", in)
	}

	code, convert, err := safe.GrayConversionCode(src)
	if err != nil {
		return nil, fmt.Errorf("grayscale: %w", err)
	}

	srcMat := src.GetMat()
	dst := gocv.NewMat()
	if convert {
		gocv.CvtColor(srcMat, &dst, code)
	} else {
		srcMat.CopyTo(&dst)
	}

	out, err := safe.Wrap(dst, src.Seq())
	if err != nil {
		return nil, fmt.Errorf("grayscale: %w", err)
	}
	return out, nil
}
