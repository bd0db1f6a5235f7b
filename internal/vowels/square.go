// Package vowels finds 2x2 blocks of vowels in a letter matrix.
package vowels

import (
	"fmt"
	"strings"
	"unicode"
)

// Position is the top-left cell of a vowel square.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String formats the position the way the scanner reports it.
func (p Position) String() string {
	return fmt.Sprintf("Found at %d, %d", p.Row, p.Col)
}

// Sample is the demonstration matrix.
var Sample = [][]rune{
	[]rune("atydn"),
	[]rune("ftwoa"),
	[]rune("aelie"),
	[]rune("oauau"),
	[]rune("qeiui"),
}

// IsVowel reports whether c is one of a, e, i, o, u (lower case only).
func IsVowel(c rune) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// hasVowelAt tolerates ragged matrices: cells outside a row read as
// non-vowels.
func hasVowelAt(m [][]rune, row, col int) bool {
	if row < 0 || row >= len(m) || col < 0 || col >= len(m[row]) {
		return false
	}
	return IsVowel(m[row][col])
}

// FindSquares returns the top-left position of every 2x2 block of vowels,
// scanning rows top to bottom and columns left to right. Squares may
// overlap.
func FindSquares(m [][]rune) []Position {
	found := make([]Position, 0)
	for i := 0; i < len(m)-1; i++ {
		for j := 0; j < len(m[i])-1; j++ {
			if hasVowelAt(m, i, j) &&
				hasVowelAt(m, i+1, j) &&
				hasVowelAt(m, i, j+1) &&
				hasVowelAt(m, i+1, j+1) {
				found = append(found, Position{Row: i, Col: j})
			}
		}
	}
	return found
}

// ParseMatrix reads one row per line. Cells are either separated by spaces
// or commas ("a t y") or written together ("aty"). Blank lines are skipped
// and letters are lower-cased.
func ParseMatrix(s string) ([][]rune, error) {
	m := make([][]rune, 0)
	for n, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]rune, 0, len(line))
		for _, r := range line {
			switch {
			case r == ' ' || r == ',' || r == '\t':
				continue
			case unicode.IsLetter(r):
				row = append(row, unicode.ToLower(r))
			default:
				return nil, fmt.Errorf("line %d: unexpected %q", n+1, r)
			}
		}
		m = append(m, row)
	}
	return m, nil
}
