// Package geometry provides the 2D primitives used by rectangle detection.
//
// Points carry float64 coordinates in a Cartesian plane; nothing here assumes
// an image coordinate system or axis-aligned shapes.
//
// # Perpendicularity
//
// Two tests are available:
//
//   - IsPerpendicular: dot product of the two direction vectors is zero
//     (relative to the product of their lengths). Correct for any pair of
//     lines and never divides.
//   - IsPerpendicularMagnitude: compares unsigned slope magnitudes, so that
//     slope(l1) × slope(l2) == 1 counts as perpendicular. This matches the
//     historical behaviour of the rectangle finder and is kept for parity.
//     It cannot distinguish slopes 2 and 0.5 (not perpendicular) from slopes
//     2 and -0.5 (perpendicular).
//
// Vertical lines are handled by IsSlopeInfinite before any slope is computed;
// Slope itself must never be called with two points sharing an X coordinate.
//
// # Floating Point
//
// Equality between computed quantities always goes through IsClose with a
// relative tolerance. DefaultTolerance is 1e-9.
package geometry
