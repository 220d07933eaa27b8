package chart

import (
	"math"
)

// gridPoint is an integer pixel coordinate used during contour extraction.
type gridPoint struct {
	X int
	Y int
}

// contour is an ordered, closed boundary of a connected edge component.
type contour []gridPoint

// mooreNeighbors lists the 8-neighborhood in clockwise order (y grows
// downward), starting west. The tracing step scans this ring.
var mooreNeighbors = [8]gridPoint{
	{-1, 0},  // W
	{-1, -1}, // NW
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
}

// findContours extracts the ordered outer boundary of every connected edge
// component in the mask. Components smaller than minComponent pixels are
// discarded as noise. Connectivity is 8-connected.
func findContours(mask [][]bool, width, height, minComponent int) []contour {
	labels := make([][]int, height)
	for y := 0; y < height; y++ {
		labels[y] = make([]int, width)
	}

	var contours []contour
	next := 1

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !mask[y][x] || labels[y][x] != 0 {
				continue
			}
			size := labelComponent(mask, labels, x, y, width, height, next)
			if size >= minComponent {
				if c := traceBoundary(labels, gridPoint{x, y}, width, height, next); len(c) > 0 {
					contours = append(contours, c)
				}
			}
			next++
		}
	}

	return contours
}

// labelComponent flood-fills the connected component containing (startX,
// startY), writing id into the label grid. Iterative to avoid stack
// overflow on large components. Returns the component size in pixels.
func labelComponent(mask [][]bool, labels [][]int, startX, startY, width, height, id int) int {
	stack := []gridPoint{{startX, startY}}
	size := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if labels[p.Y][p.X] != 0 || !mask[p.Y][p.X] {
			continue
		}

		labels[p.Y][p.X] = id
		size++

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, gridPoint{p.X + dx, p.Y + dy})
			}
		}
	}

	return size
}

// traceBoundary walks the outer boundary of a labeled component using
// Moore-neighbor tracing. start must be the first component pixel in
// row-major scan order, which guarantees its west neighbor is background.
// The walk terminates when it has returned to the start pixel and is about
// to repeat its first move (Jacob's stopping criterion), with a step cap as
// a safety net against pathological masks.
func traceBoundary(labels [][]int, start gridPoint, width, height, id int) contour {
	boundary := contour{start}
	cur := start
	// Entered from the west during the row-major scan.
	backtrack := 0
	maxSteps := 8 * (width*height + 8)

	var firstMove gridPoint
	haveFirstMove := false

	for step := 0; step < maxSteps; step++ {
		next, nextBacktrack, found := nextBoundaryPixel(labels, cur, backtrack, width, height, id)
		if !found {
			// Isolated pixel: its boundary is itself.
			return boundary
		}

		if haveFirstMove && cur == start && next == firstMove {
			break
		}
		if !haveFirstMove {
			firstMove = next
			haveFirstMove = true
		}

		boundary = append(boundary, next)
		cur = next
		backtrack = nextBacktrack
	}

	// The walk may close on the start pixel; drop the duplicate.
	if len(boundary) > 1 && boundary[len(boundary)-1] == start {
		boundary = boundary[:len(boundary)-1]
	}
	return boundary
}

// nextBoundaryPixel scans the Moore neighborhood of cur clockwise, starting
// just past the backtrack position, and returns the first component pixel
// together with the backtrack index to use from there (pointing at the last
// background cell passed, as seen from the new pixel).
func nextBoundaryPixel(labels [][]int, cur gridPoint, backtrack, width, height, id int) (gridPoint, int, bool) {
	inComponent := func(p gridPoint) bool {
		return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height && labels[p.Y][p.X] == id
	}

	for i := 1; i <= 8; i++ {
		idx := (backtrack + i) % 8
		n := gridPoint{cur.X + mooreNeighbors[idx].X, cur.Y + mooreNeighbors[idx].Y}
		if inComponent(n) {
			prevIdx := (backtrack + i - 1) % 8
			prev := gridPoint{cur.X + mooreNeighbors[prevIdx].X, cur.Y + mooreNeighbors[prevIdx].Y}
			return n, neighborIndex(n, prev), true
		}
	}
	return gridPoint{}, 0, false
}

// neighborIndex returns the Moore-neighborhood index of p relative to
// center, or 0 (west) if p is not adjacent.
func neighborIndex(center, p gridPoint) int {
	dx := p.X - center.X
	dy := p.Y - center.Y
	for i, n := range mooreNeighbors {
		if n.X == dx && n.Y == dy {
			return i
		}
	}
	return 0
}

// arcLength returns the perimeter of a closed contour.
func arcLength(c contour) float64 {
	if len(c) < 2 {
		return 0
	}
	var total float64
	for i := range c {
		j := (i + 1) % len(c)
		total += pointDistance(c[i], c[j])
	}
	return total
}

// polygonArea returns the enclosed area of a polygon via the shoelace
// formula. Vertex order does not matter; the result is always positive.
func polygonArea(poly []gridPoint) float64 {
	if len(poly) < 3 {
		return 0
	}
	var sum float64
	for i := range poly {
		j := (i + 1) % len(poly)
		sum += float64(poly[i].X*poly[j].Y - poly[j].X*poly[i].Y)
	}
	return math.Abs(sum) / 2
}

// boundingBox returns the axis-aligned bounds of a polygon as
// (minX, minY, maxX, maxY).
func boundingBox(poly []gridPoint) (int, int, int, int) {
	minX, minY := poly[0].X, poly[0].Y
	maxX, maxY := minX, minY
	for _, p := range poly[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY
}

// approxPolygon simplifies a closed contour with the Douglas-Peucker
// algorithm. epsilon is the maximum allowed deviation of dropped points
// from the simplified outline, in pixels.
//
// The closed contour is split at the point farthest from the first vertex,
// each half is simplified as an open chain, and the halves are rejoined.
func approxPolygon(c contour, epsilon float64) []gridPoint {
	if len(c) < 3 {
		return append([]gridPoint(nil), c...)
	}

	// Split point: farthest vertex from the start.
	far := 0
	var farDist float64
	for i, p := range c {
		if d := pointDistance(c[0], p); d > farDist {
			farDist = d
			far = i
		}
	}
	if far == 0 {
		// Degenerate contour collapsed onto one point.
		return []gridPoint{c[0]}
	}

	first := douglasPeucker(c[:far+1], epsilon)
	second := douglasPeucker(append(append(contour(nil), c[far:]...), c[0]), epsilon)

	// Drop duplicated endpoints at both seams.
	out := append([]gridPoint(nil), first...)
	if len(second) > 2 {
		out = append(out, second[1:len(second)-1]...)
	}
	return out
}

// douglasPeucker simplifies an open point chain, keeping both endpoints.
func douglasPeucker(pts []gridPoint, epsilon float64) []gridPoint {
	if len(pts) < 3 {
		return append([]gridPoint(nil), pts...)
	}

	// Farthest point from the chord.
	idx := 0
	var maxDist float64
	for i := 1; i < len(pts)-1; i++ {
		if d := perpendicularDistance(pts[i], pts[0], pts[len(pts)-1]); d > maxDist {
			maxDist = d
			idx = i
		}
	}

	if maxDist <= epsilon {
		return []gridPoint{pts[0], pts[len(pts)-1]}
	}

	left := douglasPeucker(pts[:idx+1], epsilon)
	right := douglasPeucker(pts[idx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// perpendicularDistance is the distance from p to the line through a and b.
// When a and b coincide it degrades to point distance.
func perpendicularDistance(p, a, b gridPoint) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return pointDistance(p, a)
	}
	return math.Abs(dy*float64(p.X)-dx*float64(p.Y)+float64(b.X*a.Y)-float64(b.Y*a.X)) / length
}

func pointDistance(a, b gridPoint) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
