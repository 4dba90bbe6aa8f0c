package detrand

// IRect is an axis-aligned integer rectangle.
type IRect struct {
	X, Y, W, H int64
}

// Overlaps reports whether r and o share any area.
func (r IRect) Overlaps(o IRect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether point (x, y) lies within r.
func (r IRect) Contains(x, y int64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Grow returns r expanded by n on every side.
func (r IRect) Grow(n int64) IRect {
	return IRect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Shrink returns r contracted by n on every side (negative-size results
// are left to the caller to validate; this mirrors Grow(-n) exactly).
func (r IRect) Shrink(n int64) IRect {
	return r.Grow(-n)
}

// Center returns r's integer-truncated center point.
func (r IRect) Center() (int64, int64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Manhattan returns |x1-x2| + |y1-y2|.
func Manhattan(x1, y1, x2, y2 int64) int64 {
	return IAbs(x1-x2) + IAbs(y1-y2)
}

// Chebyshev returns max(|x1-x2|, |y1-y2|).
func Chebyshev(x1, y1, x2, y2 int64) int64 {
	dx, dy := IAbs(x1-x2), IAbs(y1-y2)
	if dx > dy {
		return dx
	}
	return dy
}

// EuclideanSq returns the squared Euclidean distance, staying integer
// (no sqrt).
func EuclideanSq(x1, y1, x2, y2 int64) int64 {
	dx, dy := x1-x2, y1-y2
	return dx*dx + dy*dy
}

// Point is an integer 2D coordinate, used by Line/Circle/FloodFill.
type Point struct{ X, Y int64 }

// BresenhamLine returns every integer point on the line from (x0,y0) to
// (x1,y1) inclusive.
func BresenhamLine(x0, y0, x1, y1 int64) []Point {
	points := []Point{}
	dx := IAbs(x1 - x0)
	dy := -IAbs(y1 - y0)
	sx := Sign(x1 - x0)
	if sx == 0 {
		sx = 1
	}
	sy := Sign(y1 - y0)
	if sy == 0 {
		sy = 1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		points = append(points, Point{X: x, Y: y})
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return points
}

// MidpointCircle returns every integer point on the circle of radius r
// centered at (cx, cy) using the midpoint (Bresenham) circle algorithm.
func MidpointCircle(cx, cy, r int64) []Point {
	if r < 0 {
		return nil
	}
	points := []Point{}
	x, y := r, int64(0)
	err := int64(0)

	for x >= y {
		octant := []Point{
			{cx + x, cy + y}, {cx + y, cy + x},
			{cx - y, cy + x}, {cx - x, cy + y},
			{cx - x, cy - y}, {cx - y, cy - x},
			{cx + y, cy - x}, {cx + x, cy - y},
		}
		points = append(points, octant...)

		y++
		if err <= 0 {
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
	return points
}

// FloodFill returns every point reachable from (startX, startY) via
// 4-connectivity where match(x, y) is true, not exceeding bounds
// [0,width) x [0,height).
func FloodFill(startX, startY, width, height int64, match func(x, y int64) bool) []Point {
	if !match(startX, startY) {
		return nil
	}
	visited := make(map[Point]bool)
	stack := []Point{{X: startX, Y: startY}}
	var result []Point

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[p] {
			continue
		}
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if !match(p.X, p.Y) {
			continue
		}
		visited[p] = true
		result = append(result, p)
		stack = append(stack,
			Point{X: p.X + 1, Y: p.Y}, Point{X: p.X - 1, Y: p.Y},
			Point{X: p.X, Y: p.Y + 1}, Point{X: p.X, Y: p.Y - 1},
		)
	}
	return result
}
