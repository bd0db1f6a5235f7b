package detection

import (
	"context"
	"fmt"
	"io"

	"github.com/james-nesbitt/coding-challenges/internal/geometry"
)

// Report runs Scan and writes a line-oriented log of the run to w:
//
//	Checking for rectangles across 5 points
//	FOUND: (0, 1, 2, 3) => (1, 1), (1, 4), (3, 1), (3, 4)
//	FINISHED [Checked:5][Found:1]
//
// The matches are also collected into the returned Result. Nothing is
// written when the point set is too small. The first write error, if any,
// is returned once the scan completes.
func Report(ctx context.Context, w io.Writer, points []geometry.Point, pred Predicate) (*Result, error) {
	if len(points) < MinPoints {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrInsufficientPoints, len(points), MinPoints)
	}

	var werr error
	printf := func(format string, args ...interface{}) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(w, format, args...)
	}

	printf("Checking for rectangles across %d points\n", len(points))

	matches := make([]Match, 0)
	sum, err := Scan(ctx, points, pred, func(m Match) {
		matches = append(matches, m)
		printf("FOUND: %s\n", FormatMatch(m))
	})
	if err != nil {
		return nil, err
	}

	printf("FINISHED [Checked:%d][Found:%d]\n", sum.Checked, sum.Found)
	if werr != nil {
		return nil, fmt.Errorf("failed to write report: %w", werr)
	}
	return &Result{Matches: matches, Summary: sum}, nil
}

// FormatMatch renders a match as "(i, j, k, l) => (x, y), (x, y), (x, y), (x, y)".
func FormatMatch(m Match) string {
	return fmt.Sprintf("(%d, %d, %d, %d) => %s, %s, %s, %s",
		m.Indices[0], m.Indices[1], m.Indices[2], m.Indices[3],
		m.Points[0], m.Points[1], m.Points[2], m.Points[3])
}
