package tone

import (
	"math"
	"testing"

	"github.com/phototone/tonematch/internal/raster"
)

func TestCmToPixels(t *testing.T) {
	tests := []struct {
		cm   float64
		dpi  int
		want int
	}{
		{2.54, 300, 300},
		{2.54, 72, 72},
		{10, 300, 1181},
		{0, 300, 0},
	}

	for _, tt := range tests {
		got, err := CmToPixels(tt.cm, tt.dpi)
		if err != nil {
			t.Fatalf("CmToPixels(%g, %d): %v", tt.cm, tt.dpi, err)
		}
		if got != tt.want {
			t.Errorf("CmToPixels(%g, %d) = %d, want %d", tt.cm, tt.dpi, got, tt.want)
		}
	}
}

func TestPixelsToCm(t *testing.T) {
	got, err := PixelsToCm(300, 300)
	if err != nil {
		t.Fatalf("PixelsToCm: %v", err)
	}
	if math.Abs(got-2.54) > 1e-12 {
		t.Errorf("PixelsToCm(300, 300) = %g, want 2.54", got)
	}
}

func TestUnits_RoundTrip(t *testing.T) {
	px, err := CmToPixels(21.0, DefaultDPI)
	if err != nil {
		t.Fatalf("CmToPixels: %v", err)
	}
	cm, err := PixelsToCm(px, DefaultDPI)
	if err != nil {
		t.Fatalf("PixelsToCm: %v", err)
	}
	if math.Abs(cm-21.0) > 0.01 {
		t.Errorf("round trip: got %g cm, want near 21.0", cm)
	}
}

func TestUnits_InvalidDPI(t *testing.T) {
	if _, err := CmToPixels(1, 0); err == nil {
		t.Error("dpi 0 should be rejected")
	}
	if _, err := PixelsToCm(100, -300); err == nil {
		t.Error("negative dpi should be rejected")
	}
}

func TestPrintSizeOf(t *testing.T) {
	buf, _ := raster.New(600, 300)

	size, err := PrintSizeOf(buf, 300)
	if err != nil {
		t.Fatalf("PrintSizeOf: %v", err)
	}
	if math.Abs(size.WidthCm-5.08) > 1e-12 || math.Abs(size.HeightCm-2.54) > 1e-12 {
		t.Errorf("print size: got %.4fx%.4f cm, want 5.08x2.54", size.WidthCm, size.HeightCm)
	}
	if size.DPI != 300 {
		t.Errorf("dpi: got %d, want 300", size.DPI)
	}

	if _, err := PrintSizeOf(buf, 0); err == nil {
		t.Error("dpi 0 should be rejected")
	}
}
