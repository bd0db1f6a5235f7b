package geometry

import (
	"fmt"
	"math"
	"strings"
)

// DefaultTolerance is the relative tolerance used for float comparisons.
const DefaultTolerance = 1e-9

// IsClose reports whether a and b are equal within a relative tolerance:
// |a-b| <= relTol * max(|a|, |b|). Exactly equal values, including two
// zeros, are always close.
func IsClose(a, b, relTol float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	return math.Abs(a-b) <= relTol*math.Max(math.Abs(a), math.Abs(b))
}

// Mode selects the perpendicularity test.
type Mode int

const (
	// ModeVector uses the dot-product test.
	ModeVector Mode = iota
	// ModeMagnitude uses the unsigned slope-magnitude test.
	ModeMagnitude
)

// String returns the config name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeVector:
		return "vector"
	case ModeMagnitude:
		return "magnitude"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a config name ("vector", "magnitude") to a Mode.
// The empty string selects ModeVector.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vector", "dot":
		return ModeVector, nil
	case "magnitude", "slope", "legacy":
		return ModeMagnitude, nil
	default:
		return ModeVector, fmt.Errorf("unknown perpendicular mode: %q", s)
	}
}

// Perpendicular applies the test selected by m with the given tolerance.
func (m Mode) Perpendicular(l1, l2 Line, tol float64) bool {
	if m == ModeMagnitude {
		return isPerpendicularMagnitude(l1, l2, tol)
	}
	return isPerpendicular(l1, l2, tol)
}
