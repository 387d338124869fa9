// Package physics provides collision detection, distance and movement utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect is an axis-aligned bounding box with its origin at the top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Overlaps reports whether r and o share any interior area.
// Rects that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W &&
		r.X+r.W > o.X &&
		r.Y < o.Y+o.H &&
		r.Y+r.H > o.Y
}

// Clamp limits v to [lo, hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Seek moves (x, y) by step toward (tx, ty) along the unit vector.
// Nothing moves once the distance is at or below arrive.
// dx is the horizontal component of the offset to the target, zero when
// no movement happened, so callers can derive a facing from its sign.
func Seek(x, y, tx, ty, step, arrive float64) (nx, ny, dx float64, moved bool) {
	dist := Distance(x, y, tx, ty)
	if dist <= arrive {
		return x, y, 0, false
	}
	dx = tx - x
	return x + dx/dist*step, y + (ty-y)/dist*step, dx, true
}
