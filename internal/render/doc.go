// Package render draws point sets and detected rectangles as PNG images.
//
// The plot uses a Cartesian layout: X increases rightward and Y increases
// upward, so a point set reads the same way it would on graph paper. Each
// plane unit spans Options.Cell pixels.
//
// Rectangles are outlined in Palette colours, one hue per match, and points
// are drawn on top as small black squares. Index labels use the fixed 7x13
// bitmap face from golang.org/x/image.
package render
