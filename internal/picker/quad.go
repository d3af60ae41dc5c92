package picker

import "math"

// InQuad reports whether pt lies strictly inside the convex quadrilateral q.
// After a bounding-box reject, each edge spanning pt.X contributes the edge
// height at pt.X; pt is inside when the first two heights bracket pt.Y.
func InQuad(pt Point, q [4]Point) bool {
	minX, maxX := q[0].X, q[0].X
	minY, maxY := q[0].Y, q[0].Y
	for _, v := range q[1:] {
		minX, maxX = math.Min(minX, v.X), math.Max(maxX, v.X)
		minY, maxY = math.Min(minY, v.Y), math.Max(maxY, v.Y)
	}
	if pt.X <= minX || pt.X >= maxX || pt.Y <= minY || pt.Y >= maxY {
		return false
	}

	var ys []float64
	for i := range q {
		a, b := q[i], q[(i+1)%len(q)]
		lo, hi := math.Min(a.X, b.X), math.Max(a.X, b.X)
		if pt.X <= lo || pt.X >= hi {
			continue
		}
		ys = append(ys, a.Y+(b.Y-a.Y)*(pt.X-a.X)/(b.X-a.X))
		if len(ys) == 2 {
			lo, hi := math.Min(ys[0], ys[1]), math.Max(ys[0], ys[1])
			return pt.Y > lo && pt.Y < hi
		}
	}
	return false
}
