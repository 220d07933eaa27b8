package tone

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/phototone/tonematch/internal/raster"
)

// Apply runs the slider adjustments in their fixed order: temperature,
// then tint, then brightness. Steps whose parameter is 0 are skipped
// entirely; if all three are neutral, the result is a byte-identical copy
// of the input.
//
// Contrast and saturation are separate operations (AdjustContrast,
// AdjustSaturation) and are not part of this sequence.
func Apply(buf *raster.PixelBuffer, params Params) (*raster.PixelBuffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	out := buf.Clone()
	var err error

	if params.Temperature != 0 {
		if out, err = AdjustTemperature(out, params.Temperature); err != nil {
			return nil, err
		}
	}
	if params.Tint != 0 {
		if out, err = AdjustTint(out, params.Tint); err != nil {
			return nil, err
		}
	}
	if params.Brightness != 0 {
		if out, err = AdjustBrightness(out, params.Brightness); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AdjustTemperature warms or cools the image. The value maps to a
// half-strength channel shift: +value·0.5 on red, −value·0.5 on blue,
// clipped to the 8-bit range. Positive values warm, negative cool.
func AdjustTemperature(buf *raster.PixelBuffer, value int) (*raster.PixelBuffer, error) {
	if err := checkAdjustInput(buf, "temperature", value); err != nil {
		return nil, err
	}
	adjustment := float64(value) * 0.5

	out := buf.Clone()
	for i := 0; i < len(out.Pix); i += raster.Channels {
		out.Pix[i] = clipChannel(float64(out.Pix[i]) + adjustment)
		out.Pix[i+2] = clipChannel(float64(out.Pix[i+2]) - adjustment)
	}
	return out, nil
}

// AdjustTint shifts the green/magenta balance: the green channel moves by
// −value·0.5, clipped. Negative values push green, positive push magenta.
func AdjustTint(buf *raster.PixelBuffer, value int) (*raster.PixelBuffer, error) {
	if err := checkAdjustInput(buf, "tint", value); err != nil {
		return nil, err
	}
	adjustment := float64(value) * 0.5

	out := buf.Clone()
	for i := 1; i < len(out.Pix); i += raster.Channels {
		out.Pix[i] = clipChannel(float64(out.Pix[i]) - adjustment)
	}
	return out, nil
}

// AdjustBrightness adds value to the V channel in HSV space (on the 8-bit
// scale), clipping to the valid range, and converts back. Hue and
// saturation are untouched.
func AdjustBrightness(buf *raster.PixelBuffer, value int) (*raster.PixelBuffer, error) {
	if err := checkAdjustInput(buf, "brightness", value); err != nil {
		return nil, err
	}
	delta := float64(value) / 255.0

	return mapHSV(buf, func(h, s, v float64) (float64, float64, float64) {
		return h, s, clamp01(v + delta)
	}), nil
}

// AdjustContrast scales every channel around mid-gray 128 by a factor of
// 1+value/100, clipping the result.
func AdjustContrast(buf *raster.PixelBuffer, value int) (*raster.PixelBuffer, error) {
	if err := checkAdjustInput(buf, "contrast", value); err != nil {
		return nil, err
	}
	factor := 1 + float64(value)/100

	out := buf.Clone()
	for i := range out.Pix {
		out.Pix[i] = clipChannel((float64(out.Pix[i])-128)*factor + 128)
	}
	return out, nil
}

// AdjustSaturation multiplies the S channel in HSV space by 1+value/100,
// clipping to the valid range, and converts back.
func AdjustSaturation(buf *raster.PixelBuffer, value int) (*raster.PixelBuffer, error) {
	if err := checkAdjustInput(buf, "saturation", value); err != nil {
		return nil, err
	}
	factor := 1 + float64(value)/100

	return mapHSV(buf, func(h, s, v float64) (float64, float64, float64) {
		return h, clamp01(s * factor), v
	}), nil
}

// mapHSV applies fn to every pixel in HSV space (h in degrees, s and v in
// [0, 1]) and returns the converted result.
func mapHSV(buf *raster.PixelBuffer, fn func(h, s, v float64) (float64, float64, float64)) *raster.PixelBuffer {
	out := buf.Clone()
	for i := 0; i < len(out.Pix); i += raster.Channels {
		c := colorful.Color{
			R: float64(out.Pix[i]) / 255,
			G: float64(out.Pix[i+1]) / 255,
			B: float64(out.Pix[i+2]) / 255,
		}
		h, s, v := c.Hsv()
		h, s, v = fn(h, s, v)
		c = colorful.Hsv(h, s, v).Clamped()
		out.Pix[i] = uint8(math.Round(c.R * 255))
		out.Pix[i+1] = uint8(math.Round(c.G * 255))
		out.Pix[i+2] = uint8(math.Round(c.B * 255))
	}
	return out
}

func checkAdjustInput(buf *raster.PixelBuffer, name string, value int) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if value < ParamMin || value > ParamMax {
		return fmt.Errorf("%s %d out of range [%d, %d]", name, value, ParamMin, ParamMax)
	}
	return nil
}

// clipChannel clamps a float to the 8-bit channel range.
func clipChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
