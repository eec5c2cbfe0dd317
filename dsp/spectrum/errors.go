package spectrum

import (
	"errors"

	"github.com/cwbudde/algo-thdn/dsp/window"
)

var (
	// ErrEmptySignal is returned when there are no samples to analyze.
	ErrEmptySignal = errors.New("spectrum: empty signal")
	// ErrNonFiniteSample is returned when the signal holds NaN or Inf.
	ErrNonFiniteSample = errors.New("spectrum: non-finite sample")
	// ErrInvalidSampleRate is returned for a sample rate that is not a
	// positive finite number.
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be > 0")
	// ErrNonUniformSampling is returned when a time axis is too short, does
	// not match the samples or is not uniformly spaced.
	ErrNonUniformSampling = errors.New("spectrum: time axis is not uniformly sampled")
	// ErrZeroWindowGain is returned when the window coefficients sum to zero,
	// e.g. a Hanning window of two samples.
	ErrZeroWindowGain = errors.New("spectrum: window has zero coherent gain")
	// ErrUnsupportedLength is returned by a backend that cannot transform
	// the requested number of points.
	ErrUnsupportedLength = errors.New("spectrum: unsupported fft length")
	// ErrFFT wraps a failure reported by the FFT backend.
	ErrFFT = errors.New("spectrum: fft failed")
	// ErrInvalidKind is window.ErrInvalidKind, re-exported for callers that
	// only import this package.
	ErrInvalidKind = window.ErrInvalidKind
)
