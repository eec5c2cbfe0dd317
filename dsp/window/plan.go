package window

import (
	"fmt"
	"math"
	"strings"
)

// ErrorMode selects how the main lobe tolerance passed to PlanLength is
// interpreted.
type ErrorMode int

const (
	// ErrorRelative treats the tolerance as a fraction of the carrier.
	ErrorRelative ErrorMode = iota
	// ErrorAbsolute treats the tolerance as a width in Hz.
	ErrorAbsolute
)

func (m ErrorMode) String() string {
	switch m {
	case ErrorRelative:
		return "relative"
	case ErrorAbsolute:
		return "absolute"
	default:
		return fmt.Sprintf("ErrorMode(%d)", int(m))
	}
}

// ParseErrorMode converts "relative" or "absolute" to an ErrorMode.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "relative", "rel", "%":
		return ErrorRelative, nil
	case "absolute", "abs", "hz":
		return ErrorAbsolute, nil
	default:
		return 0, fmt.Errorf("window: unknown error mode %q", s)
	}
}

// PlanLength returns the window length whose main lobe is no wider than the
// allowed width. In relative mode the allowed width is tolerance*f0, in
// absolute mode it is tolerance in Hz. The result is
// floor(multiplier*fs/width).
func PlanLength(f0, fs float64, k Kind, tolerance float64, mode ErrorMode) (int, error) {
	if !k.Valid() {
		return 0, fmt.Errorf("%w: %v", ErrInvalidKind, k)
	}
	if !(fs > 0) || math.IsInf(fs, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSampleRate, fs)
	}

	var width float64
	switch mode {
	case ErrorRelative:
		if !(f0 > 0) {
			return 0, fmt.Errorf("%w: %v", ErrNonPositiveCarrier, f0)
		}
		width = tolerance * f0
	case ErrorAbsolute:
		width = tolerance
	default:
		return 0, fmt.Errorf("window: unknown error mode %v", mode)
	}

	if !(width > 0) || math.IsInf(width, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTolerance, width)
	}

	m := math.Floor(k.MainLobeMultiplier() * fs / width)
	if m > math.MaxInt32 {
		return 0, fmt.Errorf("%w: window length %.0f too large", ErrInvalidTolerance, m)
	}

	return int(m), nil
}

// LowestDetectable returns a frequency one decade below fc, a conservative
// carrier to plan for when the actual fundamental is not known yet.
func LowestDetectable(fc float64) float64 {
	return fc / 10
}
