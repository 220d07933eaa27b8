package match

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/phototone/tonematch/internal/chart"
	"github.com/phototone/tonematch/internal/raster"
)

// ColorTransform is a 3×3 matrix mapping source colors to reference colors.
// A pixel is treated as a row vector: out = in · T.
type ColorTransform [raster.Channels][raster.Channels]float64

// MatchWithChart matches the source image to the reference using the
// calibration chart visible in both.
//
// The chart is detected and its patch colors extracted from each image; a
// 3×3 transform is then fitted by linear least squares over the paired
// patch colors and applied to every source pixel. The boolean return is
// false when the chart cannot be found or sampled in either image — a
// recoverable condition that callers should answer by falling back to
// MatchHistograms or ColorTransfer. Errors are reserved for malformed
// buffers and degenerate patch sets.
func (m *Matcher) MatchWithChart(src, ref *raster.PixelBuffer) (*raster.PixelBuffer, bool, error) {
	if err := src.Validate(); err != nil {
		return nil, false, fmt.Errorf("source: %w", err)
	}
	if err := ref.Validate(); err != nil {
		return nil, false, fmt.Errorf("reference: %w", err)
	}

	srcChart, ok := m.detector.Detect(src)
	if !ok {
		return nil, false, nil
	}
	refChart, ok := m.detector.Detect(ref)
	if !ok {
		return nil, false, nil
	}

	srcColors, ok := m.detector.ExtractColors(src, srcChart)
	if !ok {
		return nil, false, nil
	}
	refColors, ok := m.detector.ExtractColors(ref, refChart)
	if !ok {
		return nil, false, nil
	}

	transform, err := FitColorTransform(srcColors, refColors)
	if err != nil {
		return nil, false, fmt.Errorf("fitting chart transform: %w", err)
	}

	return transform.Apply(src), true, nil
}

// FitColorTransform solves for the 3×3 matrix T minimizing the sum of
// squared residuals of srcColors·T − refColors, using QR decomposition of
// the overdetermined system. Color lists of different lengths are paired up
// to the shorter one.
func FitColorTransform(srcColors, refColors []chart.Color) (ColorTransform, error) {
	n := len(srcColors)
	if len(refColors) < n {
		n = len(refColors)
	}
	if n < raster.Channels {
		return ColorTransform{}, fmt.Errorf("need at least %d patch color pairs, got %d", raster.Channels, n)
	}

	a := mat.NewDense(n, raster.Channels, nil)
	b := mat.NewDense(n, raster.Channels, nil)
	for i := 0; i < n; i++ {
		for c := 0; c < raster.Channels; c++ {
			a.Set(i, c, srcColors[i][c])
			b.Set(i, c, refColors[i][c])
		}
	}

	var qr mat.QR
	qr.Factorize(a)

	var solved mat.Dense
	if err := qr.SolveTo(&solved, false, b); err != nil {
		return ColorTransform{}, fmt.Errorf("least squares solve: %w", err)
	}

	var t ColorTransform
	for i := 0; i < raster.Channels; i++ {
		for j := 0; j < raster.Channels; j++ {
			t[i][j] = solved.At(i, j)
		}
	}
	return t, nil
}

// Apply multiplies every pixel (as a row vector) by the transform and clips
// the result to the 8-bit range. The input buffer is not modified.
func (t ColorTransform) Apply(buf *raster.PixelBuffer) *raster.PixelBuffer {
	out := &raster.PixelBuffer{
		Width:  buf.Width,
		Height: buf.Height,
		Pix:    make([]uint8, len(buf.Pix)),
	}
	for i := 0; i < len(buf.Pix); i += raster.Channels {
		r := float64(buf.Pix[i])
		g := float64(buf.Pix[i+1])
		b := float64(buf.Pix[i+2])
		for j := 0; j < raster.Channels; j++ {
			v := r*t[0][j] + g*t[1][j] + b*t[2][j]
			out.Pix[i+j] = clipByte(v)
		}
	}
	return out
}

// clipByte clamps a float to [0, 255] and rounds to the nearest byte.
func clipByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
