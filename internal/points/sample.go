package points

import "github.com/james-nesbitt/coding-challenges/internal/geometry"

// sample is a 15x15 scatter used for demonstrations. It contains (13, 9)
// twice, so some reported rectangles differ only by which copy was used.
var sample = []geometry.Point{
	{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 5, Y: 1}, {X: 6, Y: 1}, {X: 7, Y: 1}, {X: 11, Y: 1}, {X: 13, Y: 1}, {X: 1, Y: 2},
	{X: 3, Y: 2}, {X: 5, Y: 2}, {X: 6, Y: 2}, {X: 9, Y: 2}, {X: 10, Y: 2}, {X: 14, Y: 2}, {X: 1, Y: 3}, {X: 4, Y: 3},
	{X: 5, Y: 3}, {X: 8, Y: 3}, {X: 11, Y: 3}, {X: 14, Y: 3}, {X: 1, Y: 4}, {X: 2, Y: 4}, {X: 6, Y: 4}, {X: 12, Y: 4},
	{X: 3, Y: 5}, {X: 7, Y: 5}, {X: 11, Y: 5}, {X: 15, Y: 5}, {X: 1, Y: 6}, {X: 2, Y: 6}, {X: 4, Y: 6}, {X: 5, Y: 6},
	{X: 9, Y: 6}, {X: 12, Y: 6}, {X: 14, Y: 6}, {X: 1, Y: 7}, {X: 3, Y: 7}, {X: 4, Y: 7}, {X: 5, Y: 7}, {X: 8, Y: 7},
	{X: 9, Y: 7}, {X: 10, Y: 7}, {X: 13, Y: 7}, {X: 15, Y: 7}, {X: 1, Y: 8}, {X: 2, Y: 8}, {X: 3, Y: 8}, {X: 8, Y: 8},
	{X: 9, Y: 8}, {X: 10, Y: 8}, {X: 15, Y: 8}, {X: 10, Y: 9}, {X: 11, Y: 9}, {X: 12, Y: 9}, {X: 13, Y: 9}, {X: 13, Y: 9},
	{X: 14, Y: 9}, {X: 15, Y: 9}, {X: 2, Y: 10}, {X: 10, Y: 10}, {X: 15, Y: 10}, {X: 1, Y: 11}, {X: 3, Y: 11}, {X: 4, Y: 11},
	{X: 5, Y: 11}, {X: 6, Y: 11}, {X: 10, Y: 11}, {X: 1, Y: 12}, {X: 4, Y: 12}, {X: 5, Y: 12}, {X: 8, Y: 12}, {X: 10, Y: 12},
	{X: 11, Y: 12}, {X: 13, Y: 12}, {X: 15, Y: 12}, {X: 1, Y: 13}, {X: 2, Y: 13}, {X: 3, Y: 13}, {X: 8, Y: 13}, {X: 10, Y: 13},
	{X: 2, Y: 14}, {X: 3, Y: 14}, {X: 8, Y: 14}, {X: 9, Y: 14}, {X: 14, Y: 14}, {X: 11, Y: 14}, {X: 12, Y: 14}, {X: 15, Y: 14},
	{X: 1, Y: 15}, {X: 2, Y: 15}, {X: 3, Y: 15}, {X: 4, Y: 15}, {X: 7, Y: 15}, {X: 9, Y: 15}, {X: 10, Y: 15}, {X: 15, Y: 15},
}

// Sample returns a copy of the built-in demonstration point set.
func Sample() []geometry.Point {
	out := make([]geometry.Point, len(sample))
	copy(out, sample)
	return out
}
