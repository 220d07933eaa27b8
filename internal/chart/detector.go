package chart

import (
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/phototone/tonematch/internal/raster"
)

// Point is a sub-pixel coordinate in image space.
type Point struct {
	X float64
	Y float64
}

// Color is a sampled patch color as per-channel means in R, G, B order,
// each in [0, 255].
type Color [raster.Channels]float64

// ChartRegion describes a detected calibration chart: the four corners of
// its outline ordered clockwise starting at the top-left, and the 24 patch
// centers in row-major grid order (left to right, top to bottom).
type ChartRegion struct {
	Corners [4]Point
	Patches []Point
}

// Detector locates calibration charts in pixel buffers. It is stateless
// apart from its configuration and safe for concurrent use.
type Detector struct {
	cfg Config
}

// NewDetector returns a detector using the given thresholds.
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Detect searches the buffer for a calibration chart.
//
// Candidates are the 4-vertex polygon approximations of external edge
// contours whose enclosed area exceeds Config.MinArea, evaluated largest
// first. The first candidate passing the aspect-ratio and color-diversity
// checks wins. The second return is false when no candidate qualifies;
// that is an expected outcome for chartless images, not an error.
func (d *Detector) Detect(buf *raster.PixelBuffer) (*ChartRegion, bool) {
	if buf.Validate() != nil {
		return nil, false
	}

	mask := cannyEdges(buf, d.cfg.CannyLow, d.cfg.CannyHigh)
	contours := findContours(mask, buf.Width, buf.Height, minContourPixels)

	type candidate struct {
		quad []gridPoint
		area float64
	}
	var candidates []candidate

	for _, c := range contours {
		epsilon := 0.02 * arcLength(c)
		approx := approxPolygon(c, epsilon)
		if len(approx) != 4 {
			continue
		}
		area := polygonArea(approx)
		if area <= d.cfg.MinArea {
			continue
		}
		candidates = append(candidates, candidate{quad: approx, area: area})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].area > candidates[j].area
	})

	for _, cand := range candidates {
		if !d.validateCandidate(buf, cand.quad) {
			continue
		}
		corners := orderCorners(cand.quad)
		return &ChartRegion{
			Corners: corners,
			Patches: patchCenters(corners),
		}, true
	}

	return nil, false
}

// minContourPixels filters out edge components too small to be worth
// tracing.
const minContourPixels = 10

// validateCandidate checks that a quadrilateral plausibly encloses a patch
// chart: a bounding-box aspect ratio matching a ~1.5:1 target in either
// orientation, and hue and saturation histogram statistics over the region
// clearing the configured floor.
func (d *Detector) validateCandidate(buf *raster.PixelBuffer, quad []gridPoint) bool {
	minX, minY, maxX, maxY := boundingBox(quad)
	w := maxX - minX
	h := maxY - minY
	if w <= 0 || h <= 0 {
		return false
	}

	aspect := float64(w) / float64(h)
	landscape := aspect >= d.cfg.LandscapeAspectMin && aspect <= d.cfg.LandscapeAspectMax
	portrait := aspect >= d.cfg.PortraitAspectMin && aspect <= d.cfg.PortraitAspectMax
	if !landscape && !portrait {
		return false
	}

	hueStd, satStd := hueSatHistStdDev(buf, minX, minY, maxX, maxY)
	return hueStd >= d.cfg.HistStdDevMin && satStd >= d.cfg.HistStdDevMin
}

// hueSatHistStdDev computes hue (180-bin, 2° each) and saturation (256-bin)
// histograms over the inclusive pixel rectangle and returns the standard
// deviation of each histogram's bin counts.
func hueSatHistStdDev(buf *raster.PixelBuffer, minX, minY, maxX, maxY int) (float64, float64) {
	minX = clamp(minX, 0, buf.Width-1)
	maxX = clamp(maxX, 0, buf.Width-1)
	minY = clamp(minY, 0, buf.Height-1)
	maxY = clamp(maxY, 0, buf.Height-1)

	var hueHist [180]float64
	var satHist [256]float64

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			r, g, b := buf.RGB(x, y)
			c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
			hue, sat, _ := c.Hsv()
			hueBin := clamp(int(hue/2), 0, 179)
			satBin := clamp(int(sat*255), 0, 255)
			hueHist[hueBin]++
			satHist[satBin]++
		}
	}

	return histStdDev(hueHist[:]), histStdDev(satHist[:])
}

// histStdDev returns the population standard deviation of bin counts.
func histStdDev(bins []float64) float64 {
	var sum float64
	for _, v := range bins {
		sum += v
	}
	mean := sum / float64(len(bins))

	var variance float64
	for _, v := range bins {
		d := v - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(bins)))
}

// orderCorners arranges four quadrilateral vertices clockwise starting at
// the top-left. The top-left corner minimizes x+y and the bottom-right
// maximizes it; the top-right maximizes x−y and the bottom-left minimizes
// it.
func orderCorners(quad []gridPoint) [4]Point {
	var out [4]Point

	sumMin, sumMax := math.Inf(1), math.Inf(-1)
	diffMin, diffMax := math.Inf(1), math.Inf(-1)

	for _, p := range quad {
		sum := float64(p.X + p.Y)
		diff := float64(p.X - p.Y)
		if sum < sumMin {
			sumMin = sum
			out[0] = Point{float64(p.X), float64(p.Y)} // top-left
		}
		if sum > sumMax {
			sumMax = sum
			out[2] = Point{float64(p.X), float64(p.Y)} // bottom-right
		}
		if diff > diffMax {
			diffMax = diff
			out[1] = Point{float64(p.X), float64(p.Y)} // top-right
		}
		if diff < diffMin {
			diffMin = diff
			out[3] = Point{float64(p.X), float64(p.Y)} // bottom-left
		}
	}

	return out
}

// patchCenters maps the 4×6 patch grid into image space. For each cell the
// relative position ((col+0.5)/Cols, (row+0.5)/Rows) is bilinearly
// interpolated across the ordered corners: along the top edge, along the
// bottom edge, then between those two points.
func patchCenters(corners [4]Point) []Point {
	centers := make([]Point, 0, Patches)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			relX := (float64(col) + 0.5) / Cols
			relY := (float64(row) + 0.5) / Rows
			centers = append(centers, bilinear(corners, relX, relY))
		}
	}
	return centers
}

// bilinear interpolates a relative (0-1, 0-1) grid position across the four
// ordered corners.
func bilinear(corners [4]Point, relX, relY float64) Point {
	topLeft, topRight := corners[0], corners[1]
	bottomRight, bottomLeft := corners[2], corners[3]

	topX := topLeft.X + relX*(topRight.X-topLeft.X)
	topY := topLeft.Y + relX*(topRight.Y-topLeft.Y)
	botX := bottomLeft.X + relX*(bottomRight.X-bottomLeft.X)
	botY := bottomLeft.Y + relX*(bottomRight.Y-bottomLeft.Y)

	return Point{
		X: topX + relY*(botX-topX),
		Y: topY + relY*(botY-topY),
	}
}

// ExtractColors samples the mean color of each chart patch.
//
// For every patch center, pixel values are averaged over a square window of
// half-width Config.PatchSize, clipped to the image bounds. Patches whose
// clipped window is empty are skipped. The second return is false when
// fewer than Config.MinValidPatches patches produced a sample, in which
// case the chart is unusable for calibration.
func (d *Detector) ExtractColors(buf *raster.PixelBuffer, region *ChartRegion) ([]Color, bool) {
	if buf.Validate() != nil || region == nil || len(region.Patches) == 0 {
		return nil, false
	}

	colors := make([]Color, 0, len(region.Patches))

	for _, center := range region.Patches {
		cx, cy := int(center.X), int(center.Y)
		x1 := clamp(cx-d.cfg.PatchSize, 0, buf.Width)
		y1 := clamp(cy-d.cfg.PatchSize, 0, buf.Height)
		x2 := clamp(cx+d.cfg.PatchSize, 0, buf.Width)
		y2 := clamp(cy+d.cfg.PatchSize, 0, buf.Height)

		if x2 <= x1 || y2 <= y1 {
			continue
		}

		var sum Color
		for y := y1; y < y2; y++ {
			for x := x1; x < x2; x++ {
				r, g, b := buf.RGB(x, y)
				sum[0] += float64(r)
				sum[1] += float64(g)
				sum[2] += float64(b)
			}
		}
		n := float64((x2 - x1) * (y2 - y1))
		colors = append(colors, Color{sum[0] / n, sum[1] / n, sum[2] / n})
	}

	if len(colors) < d.cfg.MinValidPatches {
		return nil, false
	}
	return colors, true
}
