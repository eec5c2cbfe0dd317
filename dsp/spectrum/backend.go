package spectrum

import (
	"fmt"
	"strings"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Backend computes the forward DFT of a real signal and returns the first
// floor(n/2)+1 complex bins, unnormalised.
type Backend interface {
	Name() string
	Forward(src []float64) ([]complex128, error)
}

// BackendKind selects one of the built-in backends.
type BackendKind int

const (
	// Auto uses AlgoFFT for power-of-two lengths and Gonum otherwise.
	Auto BackendKind = iota
	AlgoFFT
	Gonum
	GoDSP
)

var backendNames = map[BackendKind]string{
	Auto:    "auto",
	AlgoFFT: "algofft",
	Gonum:   "gonum",
	GoDSP:   "godsp",
}

func (k BackendKind) String() string {
	if s, ok := backendNames[k]; ok {
		return s
	}
	return fmt.Sprintf("BackendKind(%d)", int(k))
}

// ParseBackend converts a backend name to a BackendKind.
func ParseBackend(name string) (BackendKind, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return Auto, nil
	}
	for k, n := range backendNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("spectrum: unknown fft backend %q", name)
}

// NewBackend returns the backend for k.
func NewBackend(k BackendKind) (Backend, error) {
	switch k {
	case Auto:
		return autoBackend{}, nil
	case AlgoFFT:
		return algoBackend{}, nil
	case Gonum:
		return gonumBackend{}, nil
	case GoDSP:
		return godspBackend{}, nil
	default:
		return nil, fmt.Errorf("spectrum: unknown fft backend %v", k)
	}
}

// algoBackend runs a complex algo-fft plan. algo-fft builds plans for other
// sizes too, but only power-of-two transforms match the reference DFT, so
// any other length is rejected.
type algoBackend struct{}

func (algoBackend) Name() string { return AlgoFFT.String() }

func (algoBackend) Forward(src []float64) ([]complex128, error) {
	n := len(src)
	if n == 1 {
		return []complex128{complex(src[0], 0)}, nil
	}
	if !isPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: algofft needs a power-of-two length, got %d", ErrUnsupportedLength, n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("algofft plan for %d points: %w", n, err)
	}

	in := make([]complex128, n)
	for i, v := range src {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("algofft forward: %w", err)
	}

	return out[:n/2+1], nil
}

type gonumBackend struct{}

func (gonumBackend) Name() string { return Gonum.String() }

func (gonumBackend) Forward(src []float64) ([]complex128, error) {
	n := len(src)
	if n == 1 {
		return []complex128{complex(src[0], 0)}, nil
	}

	return fourier.NewFFT(n).Coefficients(nil, src), nil
}

type godspBackend struct{}

func (godspBackend) Name() string { return GoDSP.String() }

func (godspBackend) Forward(src []float64) ([]complex128, error) {
	if len(src) == 1 {
		return []complex128{complex(src[0], 0)}, nil
	}

	out := fft.FFTReal(src)
	if len(out) != len(src) {
		return nil, fmt.Errorf("godsp returned %d bins for %d points", len(out), len(src))
	}
	return out[:len(src)/2+1], nil
}

type autoBackend struct{}

func (autoBackend) Name() string { return Auto.String() }

func (autoBackend) Forward(src []float64) ([]complex128, error) {
	if isPowerOfTwo(len(src)) {
		if out, err := (algoBackend{}).Forward(src); err == nil {
			return out, nil
		}
	}
	return gonumBackend{}.Forward(src)
}

// resolve reports the backend that actually runs for n points.
func resolve(b Backend, n int) string {
	if _, ok := b.(autoBackend); ok {
		if isPowerOfTwo(n) {
			return AlgoFFT.String()
		}
		return Gonum.String()
	}
	return b.Name()
}
