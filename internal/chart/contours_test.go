package chart

import (
	"math"
	"testing"
)

// squareRingMask builds a binary mask containing the 1-pixel outline of a
// square with top-left (x0, y0) and side length side.
func squareRingMask(width, height, x0, y0, side int) [][]bool {
	mask := make([][]bool, height)
	for y := range mask {
		mask[y] = make([]bool, width)
	}
	for i := 0; i < side; i++ {
		mask[y0][x0+i] = true
		mask[y0+side-1][x0+i] = true
		mask[y0+i][x0] = true
		mask[y0+i][x0+side-1] = true
	}
	return mask
}

func TestFindContours_SquareRing(t *testing.T) {
	mask := squareRingMask(40, 40, 5, 5, 20)

	contours := findContours(mask, 40, 40, minContourPixels)
	if len(contours) != 1 {
		t.Fatalf("contours: got %d, want 1", len(contours))
	}

	// A 20x20 ring has 76 boundary pixels.
	if got := len(contours[0]); got != 76 {
		t.Errorf("boundary length: got %d, want 76", got)
	}
}

func TestFindContours_DiscardsNoise(t *testing.T) {
	mask := make([][]bool, 20)
	for y := range mask {
		mask[y] = make([]bool, 20)
	}
	mask[3][3] = true
	mask[3][4] = true
	mask[10][10] = true

	contours := findContours(mask, 20, 20, minContourPixels)
	if len(contours) != 0 {
		t.Errorf("tiny components should be discarded, got %d contours", len(contours))
	}
}

func TestApproxPolygon_SquareToFourVertices(t *testing.T) {
	mask := squareRingMask(40, 40, 5, 5, 20)
	contours := findContours(mask, 40, 40, minContourPixels)
	if len(contours) != 1 {
		t.Fatalf("contours: got %d, want 1", len(contours))
	}

	c := contours[0]
	approx := approxPolygon(c, 0.02*arcLength(c))
	if len(approx) != 4 {
		t.Fatalf("approximated vertices: got %d, want 4", len(approx))
	}

	// Every vertex must be a corner of the drawn square.
	corners := map[gridPoint]bool{
		{5, 5}: true, {24, 5}: true, {24, 24}: true, {5, 24}: true,
	}
	for _, p := range approx {
		if !corners[p] {
			t.Errorf("unexpected vertex %v", p)
		}
	}

	if area := polygonArea(approx); math.Abs(area-361) > 1e-9 {
		t.Errorf("area: got %.2f, want 361", area)
	}
}

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name string
		poly []gridPoint
		want float64
	}{
		{"unit square", []gridPoint{{0, 0}, {1, 0}, {1, 1}, {0, 1}}, 1},
		{"counterclockwise", []gridPoint{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, 1},
		{"rectangle", []gridPoint{{0, 0}, {10, 0}, {10, 4}, {0, 4}}, 40},
		{"triangle", []gridPoint{{0, 0}, {4, 0}, {0, 4}}, 8},
		{"degenerate", []gridPoint{{0, 0}, {5, 5}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := polygonArea(tt.poly); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("area: got %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestArcLength_ClosedSquare(t *testing.T) {
	c := contour{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if got := arcLength(c); math.Abs(got-40) > 1e-9 {
		t.Errorf("perimeter: got %.2f, want 40", got)
	}
}

func TestDouglasPeucker_KeepsEndpoints(t *testing.T) {
	// A noisy near-straight line collapses to its endpoints.
	pts := []gridPoint{{0, 0}, {2, 1}, {5, 0}, {8, 1}, {10, 0}}
	got := douglasPeucker(pts, 2.0)
	if len(got) != 2 || got[0] != pts[0] || got[1] != pts[len(pts)-1] {
		t.Errorf("simplified chain: got %v, want endpoints only", got)
	}
}

func TestDouglasPeucker_PreservesCorner(t *testing.T) {
	pts := []gridPoint{{0, 0}, {5, 0}, {10, 0}, {10, 5}, {10, 10}}
	got := douglasPeucker(pts, 1.0)
	if len(got) != 3 {
		t.Fatalf("simplified chain: got %d points, want 3", len(got))
	}
	if got[1] != (gridPoint{10, 0}) {
		t.Errorf("corner: got %v, want (10,0)", got[1])
	}
}
