package match

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/phototone/tonematch/internal/raster"
)

// labChannels is the number of channels in the transfer color space
// (L, a, b).
const labChannels = 3

// ColorTransfer imposes the reference image's global color statistics onto
// the source image.
//
// Both images are converted to CIE Lab (D65), a perceptually decorrelated
// space where luminance and the two chroma axes can be treated
// independently. For each channel the source values are rescaled around the
// reference statistics:
//
//	out = (value − srcMean) · (refStd / srcStd) + refMean
//
// A channel with zero source deviation (a perfectly flat channel) collapses
// to the reference mean instead of dividing by zero. Luminance is clipped to
// its valid range before the result is converted back to clamped 8-bit RGB.
func (m *Matcher) ColorTransfer(src, ref *raster.PixelBuffer) (*raster.PixelBuffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}

	srcLab := toLab(src)
	refLab := toLab(ref)

	srcMean, srcStd := labStats(srcLab)
	refMean, refStd := labStats(refLab)

	for c := 0; c < labChannels; c++ {
		if srcStd[c] == 0 {
			for i := c; i < len(srcLab); i += labChannels {
				srcLab[i] = refMean[c]
			}
			continue
		}
		scale := refStd[c] / srcStd[c]
		for i := c; i < len(srcLab); i += labChannels {
			srcLab[i] = (srcLab[i]-srcMean[c])*scale + refMean[c]
		}
	}

	// Luminance has a hard [0, 1] range in this representation; the chroma
	// axes are clamped implicitly when converting back to RGB.
	for i := 0; i < len(srcLab); i += labChannels {
		srcLab[i] = math.Max(0, math.Min(1, srcLab[i]))
	}

	return fromLab(srcLab, src.Width, src.Height), nil
}

// toLab converts a buffer to a flat L,a,b float array, three values per
// pixel.
func toLab(buf *raster.PixelBuffer) []float64 {
	out := make([]float64, buf.Width*buf.Height*labChannels)
	j := 0
	for i := 0; i < len(buf.Pix); i += raster.Channels {
		c := colorful.Color{
			R: float64(buf.Pix[i]) / 255,
			G: float64(buf.Pix[i+1]) / 255,
			B: float64(buf.Pix[i+2]) / 255,
		}
		l, a, b := c.Lab()
		out[j] = l
		out[j+1] = a
		out[j+2] = b
		j += labChannels
	}
	return out
}

// fromLab converts a flat Lab array back to an 8-bit RGB buffer, clamping
// out-of-gamut colors.
func fromLab(lab []float64, width, height int) *raster.PixelBuffer {
	out := &raster.PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*raster.Channels),
	}
	j := 0
	for i := 0; i < len(lab); i += labChannels {
		c := colorful.Lab(lab[i], lab[i+1], lab[i+2]).Clamped()
		out.Pix[j] = uint8(math.Round(c.R * 255))
		out.Pix[j+1] = uint8(math.Round(c.G * 255))
		out.Pix[j+2] = uint8(math.Round(c.B * 255))
		j += raster.Channels
	}
	return out
}

// labStats returns per-channel mean and population standard deviation of a
// flat Lab array.
func labStats(lab []float64) (mean, std [labChannels]float64) {
	n := float64(len(lab) / labChannels)
	for i := 0; i < len(lab); i += labChannels {
		mean[0] += lab[i]
		mean[1] += lab[i+1]
		mean[2] += lab[i+2]
	}
	for c := range mean {
		mean[c] /= n
	}
	for i := 0; i < len(lab); i += labChannels {
		for c := 0; c < labChannels; c++ {
			d := lab[i+c] - mean[c]
			std[c] += d * d
		}
	}
	for c := range std {
		std[c] = math.Sqrt(std[c] / n)
	}
	return mean, std
}
