package detection

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/james-nesbitt/coding-challenges/internal/geometry"
)

// MinPoints is the smallest point set that can hold a rectangle.
const MinPoints = 4

// ErrInsufficientPoints is returned when fewer than MinPoints points are
// supplied. No enumeration is attempted.
var ErrInsufficientPoints = errors.New("not enough points to make a rectangle")

// Quad is a strictly increasing tuple of four point indices.
type Quad [4]int

// Quads yields every strictly increasing 4-tuple of indices in [0, n), in
// lexicographic order. Tuples are produced lazily; nothing is materialized.
// For n < 4 the sequence is empty.
func Quads(n int) iter.Seq[Quad] {
	return func(yield func(Quad) bool) {
		for i := 0; i < n-3; i++ {
			for j := i + 1; j < n-2; j++ {
				for k := j + 1; k < n-1; k++ {
					for l := k + 1; l < n; l++ {
						if !yield(Quad{i, j, k, l}) {
							return
						}
					}
				}
			}
		}
	}
}

// Binomial4 returns C(n,4), the number of tuples Quads(n) yields.
func Binomial4(n int) int64 {
	if n < 4 {
		return 0
	}
	m := int64(n)
	return m * (m - 1) * (m - 2) * (m - 3) / 24
}

// Match is one rectangle found by Scan.
//
// Indices are in enumeration order (strictly increasing) and Points holds
// the corresponding coordinates in the same order.
type Match struct {
	Indices Quad              `json:"indices"`
	Points  [4]geometry.Point `json:"points"`

	// Diagonal is the position in Points (1, 2 or 3) of the corner opposite
	// Points[0].
	Diagonal int `json:"diagonal"`
}

// Perimeter returns the four corners in drawing order, starting at
// Points[0] and walking round the rectangle.
func (m Match) Perimeter() [4]geometry.Point {
	p := m.Points
	switch m.Diagonal {
	case 1:
		return [4]geometry.Point{p[0], p[2], p[1], p[3]}
	case 2:
		return [4]geometry.Point{p[0], p[1], p[2], p[3]}
	default:
		return [4]geometry.Point{p[0], p[1], p[3], p[2]}
	}
}

// Summary holds the run-level counters of a scan.
type Summary struct {
	// Points is the number of input points.
	Points int `json:"points"`

	// Checked is the number of 4-combinations examined.
	Checked int64 `json:"checked"`

	// Found is the number of rectangles reported.
	Found int64 `json:"found"`
}

// Result is the structured output of FindAllRectangles.
type Result struct {
	Matches []Match `json:"matches"`
	Summary Summary `json:"summary"`
}

// Scan tests every combination of four points against pred and calls emit
// for each rectangle as soon as it is found.
//
// Returns ErrInsufficientPoints, before emitting anything, if len(points) is
// below MinPoints. The context is checked each time the first index
// advances; on cancellation Scan stops and returns the counters so far with
// the context error.
func Scan(ctx context.Context, points []geometry.Point, pred Predicate, emit func(Match)) (Summary, error) {
	sum := Summary{Points: len(points)}
	if len(points) < MinPoints {
		return sum, fmt.Errorf("%w: got %d, need %d", ErrInsufficientPoints, len(points), MinPoints)
	}

	outer := -1
	for q := range Quads(len(points)) {
		if q[0] != outer {
			outer = q[0]
			if err := ctx.Err(); err != nil {
				return sum, fmt.Errorf("scan interrupted at index %d: %w", outer, err)
			}
		}

		sum.Checked++
		a, b, c, d := points[q[0]], points[q[1]], points[q[2]], points[q[3]]
		diagonal, ok := pred.Classify(a, b, c, d)
		if !ok {
			continue
		}
		sum.Found++
		if emit != nil {
			emit(Match{
				Indices:  q,
				Points:   [4]geometry.Point{a, b, c, d},
				Diagonal: diagonal,
			})
		}
	}

	return sum, nil
}

// FindAllRectangles returns every rectangle among points together with the
// scan counters.
func FindAllRectangles(ctx context.Context, points []geometry.Point, pred Predicate) (*Result, error) {
	matches := make([]Match, 0)
	sum, err := Scan(ctx, points, pred, func(m Match) {
		matches = append(matches, m)
	})
	if err != nil {
		return nil, err
	}
	return &Result{Matches: matches, Summary: sum}, nil
}
