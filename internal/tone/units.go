package tone

import (
	"fmt"
	"math"

	"github.com/phototone/tonematch/internal/raster"
)

// DefaultDPI is the print resolution assumed when none is specified.
const DefaultDPI = 300

const cmPerInch = 2.54

// CmToPixels converts a physical length in centimeters to pixels at the
// given print resolution, rounding to the nearest pixel.
func CmToPixels(cm float64, dpi int) (int, error) {
	if dpi <= 0 {
		return 0, fmt.Errorf("invalid dpi %d: must be positive", dpi)
	}
	return int(math.Round(cm / cmPerInch * float64(dpi))), nil
}

// PixelsToCm converts a pixel length to centimeters at the given print
// resolution.
func PixelsToCm(px int, dpi int) (float64, error) {
	if dpi <= 0 {
		return 0, fmt.Errorf("invalid dpi %d: must be positive", dpi)
	}
	return float64(px) / float64(dpi) * cmPerInch, nil
}

// PrintSize is the physical size of an image at a given print resolution.
type PrintSize struct {
	WidthCm  float64
	HeightCm float64
	DPI      int
}

// PrintSizeOf reports how large the buffer prints at the given resolution.
func PrintSizeOf(buf *raster.PixelBuffer, dpi int) (PrintSize, error) {
	if err := buf.Validate(); err != nil {
		return PrintSize{}, err
	}
	w, err := PixelsToCm(buf.Width, dpi)
	if err != nil {
		return PrintSize{}, err
	}
	h, _ := PixelsToCm(buf.Height, dpi)
	return PrintSize{WidthCm: w, HeightCm: h, DPI: dpi}, nil
}
