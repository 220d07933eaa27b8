package match

import (
	"fmt"

	"github.com/anthonynsimon/bild/histogram"

	"github.com/phototone/tonematch/internal/raster"
)

const histBins = 256

// MatchHistograms remaps every channel of the source image so that its
// intensity distribution matches the reference image's.
//
// Per channel, both 256-bin histograms are accumulated into CDFs and
// normalized to [0, 1] by their final value. Each source level maps to the
// reference level whose normalized cumulative value is closest (the lowest
// such level on ties), producing a lookup table that is then applied to
// every pixel. The operation is deterministic, and matching an image
// against itself reproduces it exactly.
func (m *Matcher) MatchHistograms(src, ref *raster.PixelBuffer) (*raster.PixelBuffer, error) {
	if err := src.Validate(); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}

	srcHist := histogram.NewRGBAHistogram(src.ToNRGBA())
	refHist := histogram.NewRGBAHistogram(ref.ToNRGBA())

	luts := [raster.Channels][histBins]uint8{
		buildLUT(srcHist.R.Bins, refHist.R.Bins),
		buildLUT(srcHist.G.Bins, refHist.G.Bins),
		buildLUT(srcHist.B.Bins, refHist.B.Bins),
	}

	out := src.Clone()
	for i := 0; i < len(out.Pix); i += raster.Channels {
		out.Pix[i] = luts[0][out.Pix[i]]
		out.Pix[i+1] = luts[1][out.Pix[i+1]]
		out.Pix[i+2] = luts[2][out.Pix[i+2]]
	}
	return out, nil
}

// buildLUT produces the source-level to reference-level mapping by nearest
// normalized CDF value.
func buildLUT(srcBins, refBins []int) [histBins]uint8 {
	srcCDF := normalizedCDF(srcBins)
	refCDF := normalizedCDF(refBins)

	var lut [histBins]uint8
	for i := 0; i < histBins; i++ {
		best := 0
		bestDiff := absFloat(refCDF[0] - srcCDF[i])
		for j := 1; j < histBins; j++ {
			diff := absFloat(refCDF[j] - srcCDF[i])
			if diff < bestDiff {
				bestDiff = diff
				best = j
			}
		}
		lut[i] = uint8(best)
	}
	return lut
}

// normalizedCDF converts histogram bins into a cumulative distribution
// normalized by its final value.
func normalizedCDF(bins []int) [histBins]float64 {
	var cdf [histBins]float64
	running := 0
	for i := 0; i < histBins && i < len(bins); i++ {
		running += bins[i]
		cdf[i] = float64(running)
	}
	if running > 0 {
		for i := range cdf {
			cdf[i] /= float64(running)
		}
	}
	return cdf
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
