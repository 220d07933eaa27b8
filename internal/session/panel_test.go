package session

import (
	"testing"

	"github.com/phototone/tonematch/internal/raster"
	"github.com/phototone/tonematch/internal/tone"
)

func testBuffer(width, height int, r, g, b uint8) *raster.PixelBuffer {
	buf, _ := raster.New(width, height)
	for i := 0; i < len(buf.Pix); i += raster.Channels {
		buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2] = r, g, b
	}
	return buf
}

func TestNewPanel(t *testing.T) {
	src := testBuffer(10, 10, 100, 100, 100)

	panel, err := NewPanel(src)
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}
	if !panel.Loaded() {
		t.Error("panel should be loaded")
	}
	if !panel.Processed().Equal(panel.Original()) {
		t.Error("processed should start identical to the original")
	}
	if panel.Processed() == panel.Original() {
		t.Error("processed must be its own buffer")
	}

	if _, err := NewPanel(&raster.PixelBuffer{}); err == nil {
		t.Error("empty buffer should be rejected")
	}
}

func TestSetParams_DoesNotMutateOriginal(t *testing.T) {
	panel, _ := NewPanel(testBuffer(6, 6, 128, 128, 128))
	before := panel.Original().Clone()

	if err := panel.SetParams(tone.Params{Temperature: 60, Contrast: 20}); err != nil {
		t.Fatalf("SetParams: %v", err)
	}
	if !panel.Original().Equal(before) {
		t.Error("SetParams must not modify the original")
	}
	if panel.Processed().Equal(before) {
		t.Error("processed should differ after a non-neutral adjustment")
	}
	if panel.Params() != (tone.Params{Temperature: 60, Contrast: 20}) {
		t.Errorf("params: got %+v", panel.Params())
	}
}

func TestSetParams_NonAccumulating(t *testing.T) {
	panel, _ := NewPanel(testBuffer(6, 6, 128, 128, 128))

	if err := panel.SetParams(tone.Params{Brightness: 80}); err != nil {
		t.Fatalf("SetParams: %v", err)
	}
	if err := panel.SetParams(tone.Params{}); err != nil {
		t.Fatalf("SetParams: %v", err)
	}
	if !panel.Processed().Equal(panel.Original()) {
		t.Error("returning to neutral parameters should restore the original")
	}
}

func TestSetParams_Invalid(t *testing.T) {
	panel, _ := NewPanel(testBuffer(4, 4, 10, 10, 10))
	shown := panel.Processed()

	if err := panel.SetParams(tone.Params{Contrast: 101}); err == nil {
		t.Fatal("contrast 101 should be rejected")
	}
	if panel.Processed() != shown {
		t.Error("a rejected parameter set must leave the processed image untouched")
	}
}

func TestCommitCrop(t *testing.T) {
	panel, _ := NewPanel(testBuffer(20, 20, 50, 60, 70))
	panel.SetParams(tone.Params{Brightness: 40})

	if err := panel.CommitCrop(5, 5, 10, 8); err != nil {
		t.Fatalf("CommitCrop: %v", err)
	}
	if panel.Original().Width != 10 || panel.Original().Height != 8 {
		t.Errorf("baseline: got %dx%d, want 10x8", panel.Original().Width, panel.Original().Height)
	}
	if panel.Params() != (tone.Params{}) {
		t.Error("commit should reset the parameters")
	}
	if !panel.Processed().Equal(panel.Original()) {
		t.Error("processed should equal the new baseline after commit")
	}
}

func TestCommitResize(t *testing.T) {
	panel, _ := NewPanel(testBuffer(40, 20, 200, 150, 100))

	if err := panel.CommitResize(tone.ResizeSpec{ScalePercent: 50}); err != nil {
		t.Fatalf("CommitResize: %v", err)
	}
	if panel.Original().Width != 20 || panel.Original().Height != 10 {
		t.Errorf("baseline: got %dx%d, want 20x10", panel.Original().Width, panel.Original().Height)
	}
}

func TestCommitMatch(t *testing.T) {
	panel, _ := NewPanel(testBuffer(8, 8, 10, 10, 10))
	result := testBuffer(8, 8, 90, 90, 90)

	if err := panel.CommitMatch(result); err != nil {
		t.Fatalf("CommitMatch: %v", err)
	}
	if panel.Original() != result {
		t.Error("CommitMatch should take ownership of the result buffer")
	}

	if err := panel.CommitMatch(&raster.PixelBuffer{}); err == nil {
		t.Error("malformed result should be rejected")
	}
}

func TestUnloadedPanel(t *testing.T) {
	var panel Panel

	if panel.Loaded() {
		t.Error("zero panel should be unloaded")
	}
	if err := panel.SetParams(tone.Params{Brightness: 10}); err == nil {
		t.Error("SetParams without an image should fail")
	}
	if err := panel.CommitCrop(0, 0, 1, 1); err == nil {
		t.Error("CommitCrop without an image should fail")
	}
	if err := panel.CommitResize(tone.ResizeSpec{ScalePercent: 50}); err == nil {
		t.Error("CommitResize without an image should fail")
	}
}

func TestReset(t *testing.T) {
	panel, _ := NewPanel(testBuffer(5, 5, 1, 2, 3))
	panel.Reset()

	if panel.Loaded() {
		t.Error("panel should be unloaded after Reset")
	}
	if panel.Original() != nil || panel.Processed() != nil {
		t.Error("Reset should release both buffers")
	}
}
