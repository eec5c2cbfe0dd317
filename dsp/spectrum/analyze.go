package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-thdn/diag"
	"github.com/cwbudde/algo-thdn/dsp/core"
	"github.com/cwbudde/algo-thdn/dsp/vector"
	"github.com/cwbudde/algo-thdn/dsp/window"
)

// Spectrum is a normalised one-sided magnitude spectrum. Treat it as
// immutable; use Clone before modifying the slices.
type Spectrum struct {
	// Freqs holds bin centre frequencies in Hz, ascending from 0.
	Freqs []float64
	// Magnitudes holds |X[k]| / FFTLength / mean(w).
	Magnitudes []float64
	// FFTLength is the number of one-sided bins.
	FFTLength int
	// MainLobeWidth is the window main lobe width in Hz.
	MainLobeWidth float64
	// RMS is the RMS of the signal before DC removal and windowing.
	RMS        float64
	SampleRate float64
	// Samples is the length of the analyzed signal.
	Samples int
	Window  window.Kind
}

// Clone returns a deep copy of s.
func (s Spectrum) Clone() Spectrum {
	c := s
	c.Freqs = append([]float64(nil), s.Freqs...)
	c.Magnitudes = append([]float64(nil), s.Magnitudes...)
	return c
}

// BinSpacing returns the frequency resolution fs/N in Hz.
func (s Spectrum) BinSpacing() float64 {
	if s.Samples == 0 {
		return 0
	}
	return s.SampleRate / float64(s.Samples)
}

// FreqsKHz returns the frequency axis in kHz, rounded to 6 decimals in Hz
// before scaling.
func (s Spectrum) FreqsKHz() []float64 {
	out := vector.RoundAll(s.Freqs, 6)
	for i := range out {
		out[i] /= 1000
	}
	return out
}

// MagnitudesDB returns 20*log10 of each magnitude. Zero bins map to -Inf.
func (s Spectrum) MagnitudesDB() []float64 {
	out := make([]float64, len(s.Magnitudes))
	for i, m := range s.Magnitudes {
		out[i] = core.LinearToDB(m)
	}
	return out
}

// Bin returns the bin index of frequency f, floor(f*N/fs). A small epsilon
// keeps exact bin centres from rounding down.
func (s Spectrum) Bin(f float64) int {
	if s.SampleRate <= 0 {
		return 0
	}
	return int(math.Floor(f*float64(s.Samples)/s.SampleRate + 1e-9))
}

// Analyze windows the samples, transforms them and returns the normalised
// one-sided spectrum. The input slice is not modified.
func Analyze(samples []float64, sampleRate float64, kind window.Kind, opts ...Option) (Spectrum, error) {
	cfg := applyOptions(opts)

	if len(samples) == 0 {
		return Spectrum{}, ErrEmptySignal
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Spectrum{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}
	if !kind.Valid() {
		return Spectrum{}, fmt.Errorf("%w: %v", ErrInvalidKind, kind)
	}
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Spectrum{}, fmt.Errorf("%w: index %d is %v", ErrNonFiniteSample, i, v)
		}
	}

	n := len(samples)
	rms, _ := vector.RMS(samples)
	mean, _ := vector.Mean(samples)
	centred := vector.SubtractScalar(samples, mean)

	coeffs := window.Generate(kind, n)
	coherentGain, _ := vector.Mean(coeffs)
	if math.Abs(coherentGain) < 1e-12 {
		return Spectrum{}, fmt.Errorf("%w: %v window of %d samples", ErrZeroWindowGain, kind, n)
	}
	mainLobe := kind.MainLobeWidth(sampleRate, n)
	diag.Emit(cfg.observer, diag.Debug, "window", "window generated",
		"kind", kind.String(), "length", n, "main_lobe_hz", mainLobe, "coherent_gain", coherentGain)

	fftLength := FFTLength(n)
	if fast := NextFastRealSize(n); fast != n {
		diag.Emit(cfg.observer, diag.Debug, "fft", "signal length is not fft friendly",
			"length", n, "suggested", fast)
	}

	windowed := vector.Multiply(centred, coeffs)
	bins, err := cfg.backend.Forward(windowed)
	if err != nil {
		return Spectrum{}, fmt.Errorf("%w: %s backend: %w", ErrFFT, cfg.backend.Name(), err)
	}
	if len(bins) < fftLength {
		return Spectrum{}, fmt.Errorf("%w: %s backend returned %d bins, want %d",
			ErrFFT, cfg.backend.Name(), len(bins), fftLength)
	}
	diag.Emit(cfg.observer, diag.Debug, "fft", "transform done",
		"backend", resolve(cfg.backend, n), "fft_length", fftLength)

	mags := Magnitude(bins[:fftLength])
	mags = vector.MultiplyScalar(mags, 1/(float64(fftLength)*coherentGain))
	for i, m := range mags {
		if math.IsNaN(m) || math.IsInf(m, 0) {
			return Spectrum{}, fmt.Errorf("%w: bin %d is %v", ErrFFT, i, m)
		}
	}

	return Spectrum{
		Freqs:         RFFTFreq(n, 1/sampleRate),
		Magnitudes:    mags,
		FFTLength:     fftLength,
		MainLobeWidth: mainLobe,
		RMS:           rms,
		SampleRate:    sampleRate,
		Samples:       n,
		Window:        kind,
	}, nil
}

// AnalyzeTimeAxis is Analyze with the sample rate derived from a uniformly
// spaced time axis as round(1/(t[1]-t[0]), 2).
func AnalyzeTimeAxis(samples, timeAxis []float64, kind window.Kind, opts ...Option) (Spectrum, error) {
	if len(samples) == 0 {
		return Spectrum{}, ErrEmptySignal
	}

	fs, err := SampleRateFromTimeAxis(timeAxis)
	if err != nil {
		return Spectrum{}, err
	}
	if len(timeAxis) != len(samples) {
		return Spectrum{}, fmt.Errorf("%w: %d time points for %d samples",
			ErrNonUniformSampling, len(timeAxis), len(samples))
	}

	return Analyze(samples, fs, kind, opts...)
}

// SampleRateFromTimeAxis returns round(1/(t[1]-t[0]), 2) after checking that
// every step matches the first one to within one part in 1e6.
func SampleRateFromTimeAxis(t []float64) (float64, error) {
	if len(t) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 time points, got %d", ErrNonUniformSampling, len(t))
	}

	dt := t[1] - t[0]
	if !(dt > 0) {
		return 0, fmt.Errorf("%w: step %v", ErrNonUniformSampling, dt)
	}

	for i := 2; i < len(t); i++ {
		if math.Abs(t[i]-t[i-1]-dt) > 1e-6*dt {
			return 0, fmt.Errorf("%w: step %d is %v, first step %v",
				ErrNonUniformSampling, i, t[i]-t[i-1], dt)
		}
	}

	fs := vector.Round(1/dt, 2)
	if !(fs > 0) || math.IsInf(fs, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSampleRate, fs)
	}

	return fs, nil
}
