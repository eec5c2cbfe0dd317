package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-thdn/diag"
	"github.com/cwbudde/algo-thdn/dsp/vector"
	"github.com/cwbudde/algo-thdn/dsp/window"
	"github.com/cwbudde/algo-thdn/internal/testutil"
)

func TestAnalyzeFrequencyAxis(t *testing.T) {
	s, err := Analyze(testutil.DeterministicSine(1000, 8000, 1, 8), 8000, window.Rectangular)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, s.Freqs, []float64{0, 1000, 2000, 3000, 4000}, 1e-9)
	if s.FFTLength != 5 || len(s.Magnitudes) != 5 {
		t.Fatalf("FFTLength=%d len=%d, want 5", s.FFTLength, len(s.Magnitudes))
	}
	if s.BinSpacing() != 1000 {
		t.Fatalf("BinSpacing=%v, want 1000", s.BinSpacing())
	}
	if s.MainLobeWidth != 2000 {
		t.Fatalf("MainLobeWidth=%v, want 2000", s.MainLobeWidth)
	}
}

func TestAnalyzePeakAtPlannedLength(t *testing.T) {
	const (
		f0 = 1000.0
		fs = 48000.0
	)

	n, err := window.PlanLength(f0, fs, window.Blackman, 0.01, window.ErrorRelative)
	if err != nil {
		t.Fatalf("PlanLength error: %v", err)
	}

	s, err := Analyze(testutil.DeterministicSine(f0, fs, 1, n), fs, window.Blackman)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	peak := vector.ArgMax(s.Magnitudes)
	if math.Abs(s.Freqs[peak]-f0) > s.BinSpacing() {
		t.Fatalf("peak at %v Hz, want within one bin of %v", s.Freqs[peak], f0)
	}
	if peak != s.Bin(f0) {
		t.Fatalf("peak bin=%d, Bin(f0)=%d", peak, s.Bin(f0))
	}
}

func TestAnalyzeAmplitudeCorrection(t *testing.T) {
	const (
		fs = 48000.0
		n  = 4800
		f  = 1000.0
	)

	for _, k := range window.Kinds {
		t.Run(k.String(), func(t *testing.T) {
			s, err := Analyze(testutil.DeterministicSine(f, fs, 0.5, n), fs, k)
			if err != nil {
				t.Fatalf("Analyze error: %v", err)
			}

			peak := s.Magnitudes[s.Bin(f)]
			if math.Abs(peak-0.5) > 0.005 {
				t.Fatalf("peak=%v, want ~0.5", peak)
			}
		})
	}
}

func TestAnalyzeRemovesDCAndReportsRMS(t *testing.T) {
	const fs = 8000.0

	sig := testutil.Mix(testutil.DeterministicSine(1000, fs, 1, 800), testutil.DC(0.5, 800))
	s, err := Analyze(sig, fs, window.Hanning)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if s.Magnitudes[0] > 1e-4 {
		t.Fatalf("DC bin=%v, want ~0", s.Magnitudes[0])
	}
	testutil.RequireNearlyEqual(t, "RMS", s.RMS, math.Sqrt(0.75), 1e-9)
}

func TestAnalyzeDoesNotMutateInput(t *testing.T) {
	sig := testutil.DeterministicSine(440, 44100, 1, 1024)
	orig := append([]float64(nil), sig...)

	if _, err := Analyze(sig, 44100, window.Blackman); err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, sig, orig, 0)
}

func TestAnalyzeBackendsAgree(t *testing.T) {
	sig := testutil.HarmonicTone(1000, 48000, 1, map[int]float64{2: 0.01}, 1024)

	ref, err := Analyze(sig, 48000, window.Hamming, WithBackendKind(Gonum))
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	for _, k := range []BackendKind{Auto, AlgoFFT, GoDSP} {
		got, err := Analyze(sig, 48000, window.Hamming, WithBackendKind(k))
		if err != nil {
			t.Fatalf("%v: %v", k, err)
		}
		testutil.RequireSliceNearlyEqual(t, got.Magnitudes, ref.Magnitudes, 1e-9)
	}
}

func TestAnalyzeSingleSample(t *testing.T) {
	s, err := Analyze([]float64{3}, 1000, window.Hanning)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if s.FFTLength != 1 || len(s.Freqs) != 1 || s.Magnitudes[0] != 0 {
		t.Fatalf("unexpected spectrum: %+v", s)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	sine := testutil.DeterministicSine(100, 1000, 1, 64)

	tests := []struct {
		name    string
		samples []float64
		fs      float64
		kind    window.Kind
		opts    []Option
		want    error
	}{
		{"empty", nil, 1000, window.Hanning, nil, ErrEmptySignal},
		{"zero fs", sine, 0, window.Hanning, nil, ErrInvalidSampleRate},
		{"nan fs", sine, math.NaN(), window.Hanning, nil, ErrInvalidSampleRate},
		{"bad kind", sine, 1000, window.Kind(17), nil, window.ErrInvalidKind},
		{"nan sample", []float64{1, math.NaN()}, 1000, window.Rectangular, nil, ErrNonFiniteSample},
		{"zero gain", []float64{1, 2}, 1000, window.Hanning, nil, ErrZeroWindowGain},
		{"backend failure", sine, 1000, window.Hanning, []Option{WithBackend(failingBackend{})}, ErrFFT},
		{"short backend", sine, 1000, window.Hanning, []Option{WithBackend(shortBackend{})}, ErrFFT},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Analyze(tc.samples, tc.fs, tc.kind, tc.opts...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err=%v, want %v", err, tc.want)
			}
			if s.Magnitudes != nil {
				t.Fatalf("spectrum returned alongside error: %v", s.Magnitudes)
			}
		})
	}
}

func TestAnalyzeTimeAxis(t *testing.T) {
	const fs = 48000.0

	sig := testutil.DeterministicSine(1000, fs, 1, 480)
	s, err := AnalyzeTimeAxis(sig, testutil.TimeAxis(fs, 480), window.Hanning)
	if err != nil {
		t.Fatalf("AnalyzeTimeAxis error: %v", err)
	}
	if s.SampleRate != fs {
		t.Fatalf("SampleRate=%v, want %v", s.SampleRate, fs)
	}

	bad := testutil.TimeAxis(fs, 480)
	bad[100] += 1e-5
	if _, err := AnalyzeTimeAxis(sig, bad, window.Hanning); !errors.Is(err, ErrNonUniformSampling) {
		t.Fatalf("err=%v, want ErrNonUniformSampling", err)
	}

	if _, err := AnalyzeTimeAxis(sig, testutil.TimeAxis(fs, 10), window.Hanning); !errors.Is(err, ErrNonUniformSampling) {
		t.Fatalf("err=%v, want ErrNonUniformSampling for short axis", err)
	}
	if _, err := AnalyzeTimeAxis(nil, nil, window.Hanning); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("err=%v, want ErrEmptySignal", err)
	}
}

func TestSampleRateFromTimeAxisRounds(t *testing.T) {
	fs, err := SampleRateFromTimeAxis([]float64{0, 1.0 / 44100.123, 2.0 / 44100.123})
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if fs != 44100.12 {
		t.Fatalf("fs=%v, want 44100.12", fs)
	}

	if _, err := SampleRateFromTimeAxis([]float64{1, 0}); !errors.Is(err, ErrNonUniformSampling) {
		t.Fatalf("err=%v, want ErrNonUniformSampling for decreasing axis", err)
	}
}

func TestSpectrumHelpers(t *testing.T) {
	s := Spectrum{
		Freqs:      []float64{0, 1500.0000004, 3000},
		Magnitudes: []float64{0, 0.1, 1},
		SampleRate: 6000,
		Samples:    4,
	}

	testutil.RequireSliceNearlyEqual(t, s.FreqsKHz(), []float64{0, 1.5, 3}, 1e-12)

	db := s.MagnitudesDB()
	if !math.IsInf(db[0], -1) || math.Abs(db[1]+20) > 1e-12 || db[2] != 0 {
		t.Fatalf("MagnitudesDB=%v", db)
	}

	c := s.Clone()
	c.Magnitudes[2] = 5
	if s.Magnitudes[2] != 1 {
		t.Fatal("Clone shares magnitude storage")
	}

	if got := s.Bin(3000); got != 2 {
		t.Fatalf("Bin(3000)=%d, want 2", got)
	}
}

func TestAnalyzeEmitsDiagnostics(t *testing.T) {
	var rec diag.Recorder

	_, err := Analyze(testutil.DeterministicSine(1000, 48000, 1, 1001), 48000, window.Blackman, WithObserver(&rec))
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	if len(rec.Stage("window")) != 1 {
		t.Fatalf("window events=%d, want 1", len(rec.Stage("window")))
	}

	fft := rec.Stage("fft")
	if len(fft) != 2 {
		t.Fatalf("fft events=%d, want 2", len(fft))
	}
	if got := fft[0].Fields["suggested"]; got != 1024 {
		t.Fatalf("suggested=%v, want 1024", got)
	}
	if got := fft[1].Fields["backend"]; got != "gonum" {
		t.Fatalf("backend=%v, want gonum", got)
	}
}
