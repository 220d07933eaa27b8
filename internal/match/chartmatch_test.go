package match

import (
	"math"
	"testing"

	"github.com/phototone/tonematch/internal/chart"
	"github.com/phototone/tonematch/internal/raster"
)

var testPatches = [chart.Patches][3]uint8{
	{115, 82, 68}, {194, 150, 130}, {98, 122, 157}, {87, 108, 67}, {133, 128, 177}, {103, 189, 170},
	{214, 126, 44}, {80, 91, 166}, {193, 90, 99}, {94, 60, 108}, {157, 188, 64}, {224, 163, 46},
	{56, 61, 150}, {70, 148, 73}, {175, 54, 60}, {231, 199, 31}, {187, 86, 149}, {8, 133, 161},
	{243, 243, 242}, {200, 200, 200}, {160, 160, 160}, {122, 122, 121}, {85, 85, 85}, {52, 52, 52},
}

// chartScene renders a calibration chart with 40px cells and a 2px black
// frame at (30, 20) on a 300x200 white canvas.
func chartScene() *raster.PixelBuffer {
	const cell, x0, y0 = 40, 30, 20
	buf, _ := raster.New(300, 200)
	for i := range buf.Pix {
		buf.Pix[i] = 255
	}
	for row := 0; row < chart.Rows; row++ {
		for col := 0; col < chart.Cols; col++ {
			c := testPatches[row*chart.Cols+col]
			for dy := 0; dy < cell; dy++ {
				for dx := 0; dx < cell; dx++ {
					buf.SetRGB(x0+col*cell+dx, y0+row*cell+dy, c[0], c[1], c[2])
				}
			}
		}
	}
	w, h := chart.Cols*cell, chart.Rows*cell
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			if x < x0+2 || x >= x0+w-2 || y < y0+2 || y >= y0+h-2 {
				buf.SetRGB(x, y, 0, 0, 0)
			}
		}
	}
	return buf
}

// scaleChannels multiplies every channel by the factor, clipping to bytes.
func scaleChannels(buf *raster.PixelBuffer, factor float64) *raster.PixelBuffer {
	out := buf.Clone()
	for i := range out.Pix {
		out.Pix[i] = clipByte(float64(out.Pix[i]) * factor)
	}
	return out
}

func TestFitColorTransform_RecoversLinearMap(t *testing.T) {
	want := ColorTransform{
		{0.9, 0.05, 0.0},
		{0.0, 1.1, 0.02},
		{0.03, 0.0, 0.95},
	}

	src := make([]chart.Color, chart.Patches)
	ref := make([]chart.Color, chart.Patches)
	for i, p := range testPatches {
		src[i] = chart.Color{float64(p[0]), float64(p[1]), float64(p[2])}
		for j := 0; j < raster.Channels; j++ {
			ref[i][j] = src[i][0]*want[0][j] + src[i][1]*want[1][j] + src[i][2]*want[2][j]
		}
	}

	got, err := FitColorTransform(src, ref)
	if err != nil {
		t.Fatalf("FitColorTransform: %v", err)
	}
	for i := 0; i < raster.Channels; i++ {
		for j := 0; j < raster.Channels; j++ {
			if math.Abs(got[i][j]-want[i][j]) > 1e-6 {
				t.Errorf("T[%d][%d]: got %g, want %g", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestFitColorTransform_PairsToShorterList(t *testing.T) {
	src := make([]chart.Color, chart.Patches)
	for i, p := range testPatches {
		src[i] = chart.Color{float64(p[0]), float64(p[1]), float64(p[2])}
	}
	ref := src[:12]

	if _, err := FitColorTransform(src, ref); err != nil {
		t.Errorf("FitColorTransform with 12 pairs: %v", err)
	}
}

func TestFitColorTransform_TooFewPairs(t *testing.T) {
	colors := []chart.Color{{1, 2, 3}, {4, 5, 6}}
	if _, err := FitColorTransform(colors, colors); err == nil {
		t.Error("two patch pairs should be rejected")
	}
}

func TestColorTransform_ApplyIdentity(t *testing.T) {
	identity := ColorTransform{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	src := gradientBuffer(16, 4)

	if got := identity.Apply(src); !got.Equal(src) {
		t.Error("identity transform should not change the image")
	}
}

func TestColorTransform_ApplyClips(t *testing.T) {
	double := ColorTransform{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}}
	negate := ColorTransform{{-1, 0, 0}, {0, -1, 0}, {0, 0, -1}}
	src := uniformBuffer(2, 2, 200, 200, 200)

	if r, _, _ := double.Apply(src).RGB(0, 0); r != 255 {
		t.Errorf("overflow: got %d, want 255", r)
	}
	if r, _, _ := negate.Apply(src).RGB(0, 0); r != 0 {
		t.Errorf("underflow: got %d, want 0", r)
	}
}

func TestMatchWithChart_NoChart(t *testing.T) {
	flat := uniformBuffer(200, 200, 128, 128, 128)
	scene := chartScene()

	if _, ok, err := newMatcher().MatchWithChart(flat, scene); err != nil || ok {
		t.Errorf("chartless source: ok=%v err=%v, want absence", ok, err)
	}
	if _, ok, err := newMatcher().MatchWithChart(scene, flat); err != nil || ok {
		t.Errorf("chartless reference: ok=%v err=%v, want absence", ok, err)
	}
}

func TestMatchWithChart_InvalidInput(t *testing.T) {
	scene := chartScene()
	if _, _, err := newMatcher().MatchWithChart(&raster.PixelBuffer{}, scene); err == nil {
		t.Error("empty source should be rejected")
	}
}

func TestMatchWithChart_RecoversDarkenedScene(t *testing.T) {
	ref := chartScene()
	src := scaleChannels(ref, 0.85)

	got, ok, err := newMatcher().MatchWithChart(src, ref)
	if err != nil {
		t.Fatalf("MatchWithChart: %v", err)
	}
	if !ok {
		t.Fatal("chart should be found in both images")
	}

	// Compare at the patch centers, where both images are locally uniform.
	const cell, x0, y0 = 40, 30, 20
	for row := 0; row < chart.Rows; row++ {
		for col := 0; col < chart.Cols; col++ {
			x := x0 + col*cell + cell/2
			y := y0 + row*cell + cell/2
			gr, gg, gb := got.RGB(x, y)
			wr, wg, wb := ref.RGB(x, y)
			for i, pair := range [3][2]uint8{{gr, wr}, {gg, wg}, {gb, wb}} {
				d := int(pair[0]) - int(pair[1])
				if d < 0 {
					d = -d
				}
				if d > 4 {
					t.Fatalf("patch (%d,%d) channel %d: got %d, want near %d",
						row, col, i, pair[0], pair[1])
				}
			}
		}
	}
}
