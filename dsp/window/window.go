package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Kind identifies a window function.
type Kind int

const (
	Rectangular Kind = iota
	Bartlett
	Hanning
	Hamming
	Blackman
)

// Kinds lists every supported window kind in declaration order.
var Kinds = []Kind{Rectangular, Bartlett, Hanning, Hamming, Blackman}

// Metadata holds static properties of a window kind.
type Metadata struct {
	Name string
	// MainLobeMultiplier is the main lobe width in units of fs/N.
	MainLobeMultiplier float64
	// CoherentGain is the asymptotic mean of the coefficients.
	CoherentGain float64
	// ENBW is the asymptotic equivalent noise bandwidth in bins.
	ENBW float64
}

var metadataByKind = map[Kind]Metadata{
	Rectangular: {Name: "rectangular", MainLobeMultiplier: 2, CoherentGain: 1, ENBW: 1},
	Bartlett:    {Name: "bartlett", MainLobeMultiplier: 4, CoherentGain: 0.5, ENBW: 4.0 / 3.0},
	Hanning:     {Name: "hanning", MainLobeMultiplier: 4, CoherentGain: 0.5, ENBW: 1.5},
	Hamming:     {Name: "hamming", MainLobeMultiplier: 4, CoherentGain: 0.54, ENBW: 1.3628},
	Blackman:    {Name: "blackman", MainLobeMultiplier: 6, CoherentGain: 0.42, ENBW: 1.7268},
}

var kindAliases = map[string]Kind{
	"rect":     Rectangular,
	"boxcar":   Rectangular,
	"triangle": Bartlett,
	"hann":     Hanning,
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := metadataByKind[k]
	return ok
}

// String returns the lower-case window name.
func (k Kind) String() string {
	if m, ok := metadataByKind[k]; ok {
		return m.Name
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// MainLobeMultiplier returns the main lobe width in units of fs/N, or 0 for
// an invalid kind.
func (k Kind) MainLobeMultiplier() float64 {
	return metadataByKind[k].MainLobeMultiplier
}

// MainLobeWidth returns the main lobe width in Hz for n samples at fs.
func (k Kind) MainLobeWidth(fs float64, n int) float64 {
	if n <= 0 {
		return 0
	}

	return k.MainLobeMultiplier() * fs / float64(n)
}

// ParseKind converts a window name to a Kind. Matching is case-insensitive
// and accepts a few common aliases ("hann", "triangle", "boxcar").
func ParseKind(name string) (Kind, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	for k, m := range metadataByKind {
		if m.Name == s {
			return k, nil
		}
	}

	if k, ok := kindAliases[s]; ok {
		return k, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, name)
}

// Info returns static metadata for a window kind.
func Info(k Kind) Metadata {
	return metadataByKind[k]
}

// Generate returns the symmetric window of length m. It returns an empty
// slice for m < 1 or an invalid kind and [1] for m == 1.
func Generate(k Kind, m int) []float64 {
	if m < 1 || !k.Valid() {
		return nil
	}

	if m == 1 {
		return []float64{1}
	}

	out := make([]float64, m)
	den := float64(m - 1)

	// n runs over arange(1-m, m, 2), symmetric around zero.
	for i := range out {
		n := float64(1 - m + 2*i)
		out[i] = eval(k, n, den)
	}

	return out
}

// New is like Generate but reports invalid arguments.
func New(k Kind, m int) ([]float64, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKind, k)
	}
	if err := validateLength(m); err != nil {
		return nil, err
	}

	return Generate(k, m), nil
}

// Apply multiplies buf in place by the window of the same length.
func Apply(k Kind, buf []float64) {
	coeffs := Generate(k, len(buf))
	if len(coeffs) != len(buf) {
		return
	}

	vecmath.MulBlockInPlace(buf, coeffs)
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

func eval(k Kind, n, den float64) float64 {
	x := math.Pi * n / den

	switch k {
	case Bartlett:
		if n <= 0 {
			return 1 + n/den
		}
		return 1 - n/den
	case Hanning:
		return 0.5 + 0.5*math.Cos(x)
	case Hamming:
		return 0.54 + 0.46*math.Cos(x)
	case Blackman:
		return 0.42 + 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	default:
		return 1
	}
}
