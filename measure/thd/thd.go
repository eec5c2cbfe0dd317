package thd

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-thdn/diag"
	"github.com/cwbudde/algo-thdn/dsp/core"
	"github.com/cwbudde/algo-thdn/dsp/spectrum"
	"github.com/cwbudde/algo-thdn/dsp/vector"
	"github.com/cwbudde/algo-thdn/dsp/window"
)

const (
	defaultLowPassHz = 100e3

	// floorValue replaces rejected bins so that dB views stay finite.
	floorValue = 1e-10

	// harmonicSearchRadius caps the half-width in bins of the window searched
	// around each harmonic estimate. It shrinks to peak/2 for low fundamentals.
	harmonicSearchRadius = 4
)

// Config holds distortion measurement parameters.
type Config struct {
	// HighPass rejects bins below this frequency in Hz. Zero disables it.
	HighPass float64
	// LowPass rejects bins above this frequency in Hz. Zero selects the
	// 100 kHz default and a negative value disables it.
	LowPass float64
	// Concurrency bounds the number of harmonics measured in parallel.
	// Values below 1 mean serial.
	Concurrency int
	// Observer receives diagnostic events. Nil discards them.
	Observer diag.Observer
}

// DefaultConfig returns the default band limits with serial harmonic search.
func DefaultConfig() Config {
	return Config{LowPass: defaultLowPassHz, Concurrency: 1}
}

// Variant names the reference a THD+N figure is normalised by.
type Variant int

const (
	// Fundamental references THD+N to the RMS of the fundamental lobe.
	Fundamental Variant = iota
	// Total references THD+N to the RMS of the whole filtered spectrum.
	Total
)

func (v Variant) String() string {
	switch v {
	case Fundamental:
		return "F"
	case Total:
		return "R"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Report is a THD+N measurement.
type Report struct {
	// THDN is the noise-plus-distortion ratio for the variant.
	THDN float64
	// Fundamental is the detected fundamental in Hz, rounded to 2 decimals.
	Fundamental float64
	// RMS is the reported RMS in micro-units, rounded to 2 decimals. It is the
	// residual noise RMS for Fundamental and the total RMS for Total.
	RMS     float64
	Variant Variant
}

// Percent returns THDN in percent.
func (r Report) Percent() float64 { return 100 * r.THDN }

// DB returns THDN in dB.
func (r Report) DB() float64 { return core.LinearToDB(r.THDN) }

// SINAD returns the signal to noise-and-distortion ratio in dB.
func (r Report) SINAD() float64 { return -r.DB() }

// HarmonicResult is a harmonic-only THD measurement.
type HarmonicResult struct {
	// THD is sqrt(sum(Amplitudes[1:]^2)) / Amplitudes[0], or 1 when
	// Degenerate is set.
	THD float64
	// Fundamental is the detected fundamental in Hz.
	Fundamental float64
	// Amplitudes holds lobe amplitudes by order: index 0 is the
	// fundamental, index i is harmonic order i+1.
	Amplitudes []float64
	// Degenerate is set when the fundamental fell on the DC bin. THD is the
	// sentinel 1 in that case.
	Degenerate bool
	// Partial is set when the harmonic search stopped before the highest
	// order below Nyquist.
	Partial bool
}

// Percent returns THD in percent.
func (h HarmonicResult) Percent() float64 { return 100 * h.THD }

// DB returns THD in dB.
func (h HarmonicResult) DB() float64 { return core.LinearToDB(h.THD) }

// Odd returns the THD contribution of odd orders (3rd, 5th, ...).
func (h HarmonicResult) Odd() float64 { return h.orderRatio(1) }

// Even returns the THD contribution of even orders (2nd, 4th, ...).
func (h HarmonicResult) Even() float64 { return h.orderRatio(0) }

func (h HarmonicResult) orderRatio(parity int) float64 {
	if len(h.Amplitudes) == 0 || h.Amplitudes[0] == 0 {
		return 0
	}

	var sq []float64
	for i := 1; i < len(h.Amplitudes); i++ {
		if (i+1)%2 == parity {
			sq = append(sq, h.Amplitudes[i]*h.Amplitudes[i])
		}
	}

	return math.Sqrt(vector.KSum(sq)) / math.Abs(h.Amplitudes[0])
}

// Result bundles every measurement taken from one spectrum.
type Result struct {
	THDNF    Report
	THDNR    Report
	Harmonic HarmonicResult
	Spectrum spectrum.Spectrum
}

// Calculator computes distortion figures from a spectrum.Spectrum. It is
// safe for concurrent use.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a calculator with cfg normalised.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: normalizeConfig(cfg)}
}

// Config returns the normalised configuration.
func (c *Calculator) Config() Config {
	return c.cfg
}

// Analyze runs THDNFundamental, THDNTotal and THD on s.
func (c *Calculator) Analyze(s spectrum.Spectrum) (Result, error) {
	f, err := c.THDNFundamental(s)
	if err != nil {
		return Result{}, err
	}

	r, err := c.THDNTotal(s)
	if err != nil {
		return Result{}, err
	}

	h, err := c.THD(s)
	if err != nil {
		return Result{}, err
	}

	return Result{THDNF: f, THDNR: r, Harmonic: h, Spectrum: s}, nil
}

// THDNF is a one-shot THDNFundamental with cfg.
func THDNF(s spectrum.Spectrum, cfg Config) (Report, error) {
	return NewCalculator(cfg).THDNFundamental(s)
}

// THDNR is a one-shot THDNTotal with cfg.
func THDNR(s spectrum.Spectrum, cfg Config) (Report, error) {
	return NewCalculator(cfg).THDNTotal(s)
}

// THD is a one-shot harmonic THD with cfg.
func THD(s spectrum.Spectrum, cfg Config) (HarmonicResult, error) {
	return NewCalculator(cfg).THD(s)
}

// AnalyzeSignal computes the spectrum of samples with the given window and
// runs every measurement on it.
func AnalyzeSignal(samples []float64, sampleRate float64, kind window.Kind, cfg Config, opts ...spectrum.Option) (Result, error) {
	if cfg.Observer != nil {
		opts = append([]spectrum.Option{spectrum.WithObserver(cfg.Observer)}, opts...)
	}

	s, err := spectrum.Analyze(samples, sampleRate, kind, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("thd: %w", err)
	}

	return NewCalculator(cfg).Analyze(s)
}

func normalizeConfig(cfg Config) Config {
	if cfg.LowPass == 0 {
		cfg.LowPass = defaultLowPassHz
	}

	if cfg.HighPass < 0 {
		cfg.HighPass = 0
	}

	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	cfg.Observer = diag.OrNop(cfg.Observer)

	return cfg
}
