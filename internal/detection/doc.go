// Package detection finds rectangles among a set of 2D points.
//
// A rectangle may have any orientation; detection relies only on lengths and
// right angles, never on sorting by axis.
//
// # Rectangle Predicate
//
// IsRectangle anchors at the first point a and looks at the three lines
// (a,b), (a,c) and (a,d). In a rectangle exactly two of these are sides and
// are perpendicular; the third reaches the diagonal corner. Once the
// perpendicular pair is found the predicate proves the two remaining right
// angles with the Pythagorean converse (IsRightTriangle):
//
//  1. (a,b) ⟂ (a,c): d is diagonal, require right angles at b and c.
//  2. (a,b) ⟂ (a,d): c is diagonal, require right angles at b and d.
//  3. (a,c) ⟂ (a,d): b is diagonal, require right angles at c and d.
//
// Anything else is rejected. Because every corner ordering falls into one of
// these cases, the result does not depend on the order of the input points.
//
// # Enumeration
//
// Scan walks every strictly increasing index tuple i<j<k<l, so each
// combination of four points is tested exactly once; C(n,4) tests in total.
// No pruning is applied. The search is O(n⁴) and suits point sets of a few
// hundred points.
//
// Matches are handed to a callback as they are found. FindAllRectangles
// collects them into a Result for callers that want the whole set.
//
// # Limitations
//
// Degenerate inputs are not rejected up front. Repeated points produce
// zero-length sides, which are perpendicular to nothing, so a quadruple with
// a duplicated corner is never reported in ModeVector.
//
// ModeMagnitude tries only two of the three possible opposite corners and
// compares unsigned slopes. Its results depend on point order and can include
// shapes that are not rectangles.
package detection
