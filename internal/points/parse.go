package points

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/james-nesbitt/coding-challenges/internal/geometry"
)

const number = `[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`

// pairPattern matches one "x,y" pair, optionally wrapped in parentheses.
var pairPattern = regexp.MustCompile(`\(?\s*(` + number + `)\s*,\s*(` + number + `)\s*\)?`)

// separators are the characters allowed between pairs on one line.
const separators = " \t;"

// Parse reads a point set in the plain text format:
//
//	# comment
//	1,1
//	(1, 4)
//	3,1 ; 3,4
//
// Each line holds zero or more "x,y" pairs, optionally parenthesized and
// separated by spaces, tabs or semicolons. Anything after '#' is ignored.
// Errors name the 1-based line number.
func Parse(r io.Reader) ([]geometry.Point, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	pts := make([]geometry.Point, 0)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parsed, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		pts = append(pts, parsed...)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read points: %w", err)
	}
	return pts, nil
}

// ParseString parses points from a string. See Parse.
func ParseString(s string) ([]geometry.Point, error) {
	return Parse(strings.NewReader(s))
}

func parseLine(line string) ([]geometry.Point, error) {
	matches := pairPattern.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no x,y pair in %q", line)
	}

	pts := make([]geometry.Point, 0, len(matches))
	prev := 0
	for _, m := range matches {
		if gap := strings.Trim(line[prev:m[0]], separators); gap != "" {
			return nil, fmt.Errorf("unexpected %q", gap)
		}
		prev = m[1]

		x, err := strconv.ParseFloat(line[m[2]:m[3]], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x coordinate %q: %w", line[m[2]:m[3]], err)
		}
		y, err := strconv.ParseFloat(line[m[4]:m[5]], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y coordinate %q: %w", line[m[4]:m[5]], err)
		}
		pts = append(pts, geometry.Pt(x, y))
	}
	if tail := strings.Trim(line[prev:], separators); tail != "" {
		return nil, fmt.Errorf("unexpected %q", tail)
	}
	return pts, nil
}

// Format writes one "x,y" line per point; Parse reads it back unchanged.
func Format(pts []geometry.Point) string {
	var b strings.Builder
	for _, p := range pts {
		b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
		b.WriteByte('\n')
	}
	return b.String()
}
