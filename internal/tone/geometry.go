package tone

import (
	"fmt"
	"math"

	"github.com/disintegration/imaging"

	"github.com/phototone/tonematch/internal/raster"
)

// Crop returns a copy of a sub-region of the image.
//
// The origin is clamped into the image and the extent is clamped to what
// remains, so a rectangle reaching past the borders degrades gracefully to
// the intersection. A requested width or height below 1 is a zero-area
// target and fails instead. The result never aliases the source.
func Crop(buf *raster.PixelBuffer, x, y, w, h int) (*raster.PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("invalid crop size %dx%d: width and height must be at least 1", w, h)
	}

	x = clampInt(x, 0, buf.Width-1)
	y = clampInt(y, 0, buf.Height-1)
	w = clampInt(w, 1, buf.Width-x)
	h = clampInt(h, 1, buf.Height-y)

	out, err := raster.New(w, h)
	if err != nil {
		return nil, err
	}
	for row := 0; row < h; row++ {
		srcOff := buf.Offset(x, y+row)
		dstOff := out.Offset(0, row)
		copy(out.Pix[dstOff:dstOff+w*raster.Channels], buf.Pix[srcOff:srcOff+w*raster.Channels])
	}
	return out, nil
}

// ResizeSpec describes a resize request. Zero-valued fields are treated as
// unset; the fields are resolved in priority order:
//
//  1. ScalePercent, when positive: both dimensions scale uniformly.
//  2. Width and Height together: an exact target, or with MaintainAspect a
//     bounding box the source is fitted into.
//  3. Width or Height alone: the other dimension follows the source aspect
//     ratio when MaintainAspect is set, otherwise it stays unchanged.
//  4. Nothing set: the image is returned as an unmodified copy.
//
// Resolved dimensions are floored at 1 pixel.
type ResizeSpec struct {
	Width          int
	Height         int
	ScalePercent   float64
	MaintainAspect bool
}

// Resize scales the image according to the spec.
//
// An area-averaging filter is used when either target dimension shrinks,
// a smooth interpolation filter when the image only grows. Negative
// dimensions or a non-positive explicit scale are rejected.
func Resize(buf *raster.PixelBuffer, spec ResizeSpec) (*raster.PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	targetW, targetH, err := resolveTarget(buf.Width, buf.Height, spec)
	if err != nil {
		return nil, err
	}

	if targetW == buf.Width && targetH == buf.Height {
		return buf.Clone(), nil
	}

	filter := imaging.CatmullRom
	if targetW < buf.Width || targetH < buf.Height {
		filter = imaging.Box
	}

	resized := imaging.Resize(buf.ToNRGBA(), targetW, targetH, filter)
	return raster.FromImage(resized)
}

// resolveTarget applies the ResizeSpec priority rules to the source
// dimensions.
func resolveTarget(srcW, srcH int, spec ResizeSpec) (int, int, error) {
	if spec.Width < 0 || spec.Height < 0 {
		return 0, 0, fmt.Errorf("invalid resize dimensions %dx%d: must not be negative", spec.Width, spec.Height)
	}
	if spec.ScalePercent < 0 {
		return 0, 0, fmt.Errorf("invalid scale percent %.2f: must be positive", spec.ScalePercent)
	}

	switch {
	case spec.ScalePercent > 0:
		w := atLeastOne(int(float64(srcW) * spec.ScalePercent / 100))
		h := atLeastOne(int(float64(srcH) * spec.ScalePercent / 100))
		return w, h, nil

	case spec.Width > 0 && spec.Height > 0:
		if !spec.MaintainAspect {
			return spec.Width, spec.Height, nil
		}
		// Fit within the box, preserving the source aspect ratio.
		ratio := math.Min(float64(spec.Width)/float64(srcW), float64(spec.Height)/float64(srcH))
		return atLeastOne(int(float64(srcW) * ratio)), atLeastOne(int(float64(srcH) * ratio)), nil

	case spec.Width > 0:
		if !spec.MaintainAspect {
			return spec.Width, srcH, nil
		}
		h := atLeastOne(int(math.Round(float64(spec.Width) * float64(srcH) / float64(srcW))))
		return spec.Width, h, nil

	case spec.Height > 0:
		if !spec.MaintainAspect {
			return srcW, spec.Height, nil
		}
		w := atLeastOne(int(math.Round(float64(spec.Height) * float64(srcW) / float64(srcH))))
		return w, spec.Height, nil

	default:
		return srcW, srcH, nil
	}
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
