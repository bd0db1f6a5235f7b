package detection

import "github.com/james-nesbitt/coding-challenges/internal/geometry"

// Predicate decides whether four points form a rectangle.
//
// The zero value uses the dot-product perpendicularity test with
// geometry.DefaultTolerance.
type Predicate struct {
	// Mode selects the perpendicularity test.
	Mode geometry.Mode

	// Tolerance is the relative tolerance for right-angle and slope
	// comparisons. Zero means geometry.DefaultTolerance.
	Tolerance float64
}

// DefaultPredicate is the predicate used by IsRectangle and IsRightTriangle.
var DefaultPredicate = Predicate{Mode: geometry.ModeVector, Tolerance: geometry.DefaultTolerance}

func (p Predicate) tol() float64 {
	if p.Tolerance <= 0 {
		return geometry.DefaultTolerance
	}
	return p.Tolerance
}

// IsRightTriangle reports whether the angle at corner is a right angle:
// |start,corner|² + |corner,finish|² == |start,finish|².
func (p Predicate) IsRightTriangle(start, corner, finish geometry.Point) bool {
	legs := geometry.LengthSquared(start, corner) + geometry.LengthSquared(corner, finish)
	return geometry.IsClose(legs, geometry.LengthSquared(start, finish), p.tol())
}

func (p Predicate) perpendicular(anchor, q1, q2 geometry.Point) bool {
	return p.Mode.Perpendicular(geometry.Ln(anchor, q1), geometry.Ln(anchor, q2), p.tol())
}

// Classify tests whether a, b, c and d are the corners of a rectangle.
// When they are, diagonal is the position (1, 2 or 3) of the argument that
// sits opposite a: 1 for b, 2 for c, 3 for d.
//
// In ModeVector any argument order is accepted. ModeMagnitude only tries c
// and d as the opposite corner, so orderings that put it in b are rejected
// and results depend on argument order.
func (p Predicate) Classify(a, b, c, d geometry.Point) (diagonal int, ok bool) {
	switch {
	case p.perpendicular(a, b, c):
		// (a,d) is the only possible hypotenuse
		return 3, p.IsRightTriangle(a, b, d) && p.IsRightTriangle(a, c, d)
	case p.perpendicular(a, b, d):
		return 2, p.IsRightTriangle(a, b, c) && p.IsRightTriangle(a, d, c)
	case p.Mode == geometry.ModeMagnitude:
		return 0, false
	case p.perpendicular(a, c, d):
		return 1, p.IsRightTriangle(a, c, b) && p.IsRightTriangle(a, d, b)
	default:
		return 0, false
	}
}

// IsRectangle reports whether a, b, c and d are the corners of a rectangle.
func (p Predicate) IsRectangle(a, b, c, d geometry.Point) bool {
	_, ok := p.Classify(a, b, c, d)
	return ok
}

// IsRightTriangle reports whether start, corner, finish has a right angle at
// corner, using DefaultPredicate.
func IsRightTriangle(start, corner, finish geometry.Point) bool {
	return DefaultPredicate.IsRightTriangle(start, corner, finish)
}

// IsRectangle reports whether four points form a rectangle, using
// DefaultPredicate.
func IsRectangle(a, b, c, d geometry.Point) bool {
	return DefaultPredicate.IsRectangle(a, b, c, d)
}
