package geometry

import (
	"fmt"
	"math"
	"strconv"
)

// Point represents a 2D coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a convenience constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dot returns the dot product of p and q treated as vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// String formats the point as "(x, y)" using the shortest representation
// of each coordinate, so integral points print as "(1, 4)".
func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", formatCoord(p.X), formatCoord(p.Y))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Line is a pair of points. Lines are built on demand and never stored.
type Line struct {
	P1 Point `json:"p1"`
	P2 Point `json:"p2"`
}

// Ln is a convenience constructor for Line.
func Ln(p1, p2 Point) Line {
	return Line{P1: p1, P2: p2}
}

// Direction returns the vector from P1 to P2.
func (l Line) Direction() Point {
	return l.P2.Sub(l.P1)
}

// Length returns the Euclidean distance between two points.
// Identical points have length 0.
func Length(p1, p2 Point) float64 {
	return math.Sqrt(LengthSquared(p1, p2))
}

// LengthSquared returns the squared Euclidean distance between two points.
func LengthSquared(p1, p2 Point) float64 {
	rise := p1.Y - p2.Y
	run := p1.X - p2.X
	return rise*rise + run*run
}

// IsSlopeInfinite reports whether the line through p1 and p2 is vertical.
func IsSlopeInfinite(p1, p2 Point) bool {
	return p1.X == p2.X
}

// Slope returns the unsigned slope magnitude |Δy|/|Δx| of the line through
// p1 and p2.
//
// The caller must exclude vertical lines with IsSlopeInfinite first; Slope
// does not check for a zero run.
func Slope(p1, p2 Point) float64 {
	return math.Abs(p1.Y-p2.Y) / math.Abs(p1.X-p2.X)
}

// IsPerpendicular reports whether two lines are perpendicular using the dot
// product of their direction vectors.
//
// The comparison is relative to |u|·|v|, so the result does not depend on
// line length. A zero-length line has no direction and is perpendicular to
// nothing.
func IsPerpendicular(l1, l2 Line) bool {
	return isPerpendicular(l1, l2, DefaultTolerance)
}

func isPerpendicular(l1, l2 Line, tol float64) bool {
	u := l1.Direction()
	v := l2.Direction()
	scale := math.Sqrt(u.Dot(u) * v.Dot(v))
	if scale == 0 {
		return false
	}
	return math.Abs(u.Dot(v)) <= tol*scale
}

// IsPerpendicularMagnitude is the slope-magnitude perpendicularity test.
//
//   - both lines vertical: parallel, not perpendicular
//   - one line vertical: perpendicular iff the other is horizontal
//   - otherwise: perpendicular iff slope(l1) × slope(l2) == 1
//
// Slopes are unsigned, see the package documentation for what that misses.
func IsPerpendicularMagnitude(l1, l2 Line) bool {
	return isPerpendicularMagnitude(l1, l2, DefaultTolerance)
}

func isPerpendicularMagnitude(l1, l2 Line, tol float64) bool {
	inf1 := IsSlopeInfinite(l1.P1, l1.P2)
	inf2 := IsSlopeInfinite(l2.P1, l2.P2)

	switch {
	case inf1 && inf2:
		return false
	case inf1:
		return Slope(l2.P1, l2.P2) == 0
	case inf2:
		return Slope(l1.P1, l1.P2) == 0
	default:
		// slope(l1) = 1/slope(l2), rearranged to avoid another division
		return IsClose(Slope(l1.P1, l1.P2)*Slope(l2.P1, l2.P2), 1, tol)
	}
}
