package safe

import (
	"fmt"

	"gocv.io/x/gocv"
)

func ValidateMatForOperation(mat *Mat, operation string) error {
	if mat == nil {
		return fmt.Errorf("Mat is nil for operation: %s", operation)
	}

	if !mat.IsValid() {
		return fmt.Errorf("Mat is invalid for operation: %s", operation)
	}

	if mat.Empty() {
		return fmt.Errorf("Mat is empty for operation: %s", operation)
	}

	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		return fmt.Errorf("Mat has invalid dimensions %dx%d for operation: %s",
			mat.Cols(), mat.Rows(), operation)
	}

	return nil
}

// GrayConversionCode picks the CvtColor code that turns mat into a single
// channel image. ok is false when mat is already grayscale.
func GrayConversionCode(mat *Mat) (code gocv.ColorConversionCode, ok bool, err error) {
	if err := ValidateMatForOperation(mat, "CvtColor"); err != nil {
		return 0, false, err
	}

	switch channels := mat.Channels(); channels {
	case 1:
		return 0, false, nil
	case 3:
		return gocv.ColorBGRToGray, true, nil
	case 4:
		return gocv.ColorBGRAToGray, true, nil
	default:
		return 0, false, fmt.Errorf("gray conversion requires 1, 3 or 4 channels, got %d", channels)
	}
}
