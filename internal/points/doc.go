// Package points reads and writes point sets.
//
// The text format is one or more "x,y" pairs per line. Parentheses around a
// pair are optional, pairs on the same line are separated by spaces, tabs
// or semicolons, and '#' starts a comment. Coordinates are float64; integral
// values are written without a decimal point.
//
// Cache keeps parsed files in memory for the lifetime of the server, and
// Sample provides the built-in demonstration set.
package points
