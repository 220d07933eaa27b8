package session

import (
	"fmt"

	"github.com/phototone/tonematch/internal/raster"
	"github.com/phototone/tonematch/internal/tone"
)

// Panel holds one photograph's editing state: the committed original, the
// processed derivative currently on display, and the adjustment parameters
// that produced it.
type Panel struct {
	original  *raster.PixelBuffer
	processed *raster.PixelBuffer
	params    tone.Params
}

// NewPanel creates a panel around a freshly loaded buffer, taking ownership
// of it. The processed image starts as an identical copy.
func NewPanel(buf *raster.PixelBuffer) (*Panel, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	return &Panel{
		original:  buf,
		processed: buf.Clone(),
	}, nil
}

// Loaded reports whether the panel currently holds an image.
func (p *Panel) Loaded() bool {
	return p.original != nil
}

// Original returns the committed baseline buffer. Callers must not mutate
// it; use the commit methods instead.
func (p *Panel) Original() *raster.PixelBuffer {
	return p.original
}

// Processed returns the buffer reflecting the current parameters.
func (p *Panel) Processed() *raster.PixelBuffer {
	return p.processed
}

// Params returns the adjustments last applied.
func (p *Panel) Params() tone.Params {
	return p.params
}

// SetParams recomputes the processed image from the original with the given
// adjustments. The original is never modified, so parameter changes do not
// accumulate error across calls.
func (p *Panel) SetParams(params tone.Params) error {
	if !p.Loaded() {
		return fmt.Errorf("no image loaded")
	}
	if err := params.Validate(); err != nil {
		return err
	}

	processed, err := tone.Apply(p.original, params)
	if err != nil {
		return err
	}
	if params.Contrast != 0 {
		if processed, err = tone.AdjustContrast(processed, params.Contrast); err != nil {
			return err
		}
	}
	if params.Saturation != 0 {
		if processed, err = tone.AdjustSaturation(processed, params.Saturation); err != nil {
			return err
		}
	}

	p.params = params
	p.processed = processed
	return nil
}

// CommitCrop crops the processed image and makes the result the new
// baseline.
func (p *Panel) CommitCrop(x, y, w, h int) error {
	if !p.Loaded() {
		return fmt.Errorf("no image loaded")
	}
	cropped, err := tone.Crop(p.processed, x, y, w, h)
	if err != nil {
		return err
	}
	p.commit(cropped)
	return nil
}

// CommitResize resizes the processed image and makes the result the new
// baseline.
func (p *Panel) CommitResize(spec tone.ResizeSpec) error {
	if !p.Loaded() {
		return fmt.Errorf("no image loaded")
	}
	resized, err := tone.Resize(p.processed, spec)
	if err != nil {
		return err
	}
	p.commit(resized)
	return nil
}

// CommitMatch accepts an externally produced match result (for example from
// the color matcher) as the new baseline, taking ownership of the buffer.
func (p *Panel) CommitMatch(result *raster.PixelBuffer) error {
	if !p.Loaded() {
		return fmt.Errorf("no image loaded")
	}
	if err := result.Validate(); err != nil {
		return err
	}
	p.commit(result)
	return nil
}

// commit installs buf as the new baseline and resets the parameters, since
// the previous adjustments are baked into the committed pixels.
func (p *Panel) commit(buf *raster.PixelBuffer) {
	p.original = buf
	p.processed = buf.Clone()
	p.params = tone.Params{}
}

// Reset releases both buffers and returns the panel to its unloaded state.
func (p *Panel) Reset() {
	p.original = nil
	p.processed = nil
	p.params = tone.Params{}
}
