// Package physics provides the overlap tests used by the game loop.
package physics

// DistanceSquared returns the squared distance between two points.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap checks if two circles overlap. Touching circles do not.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// SpritesCollide checks two sprites given by center and full width, treating
// each as a circle of half its width.
func SpritesCollide(x1, y1, w1, x2, y2, w2 float64) bool {
	return CirclesOverlap(x1, y1, w1/2, x2, y2, w2/2)
}

// WithinBox reports whether (px, py) lies strictly inside the axis-aligned
// box centered on (cx, cy) with the given half extents.
func WithinBox(px, py, cx, cy, halfW, halfH float64) bool {
	return cx-halfW < px && px < cx+halfW &&
		cy-halfH < py && py < cy+halfH
}
