package thd

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-thdn/dsp/spectrum"
	"github.com/cwbudde/algo-thdn/dsp/window"
	"github.com/cwbudde/algo-thdn/internal/testutil"
)

const (
	testF0 = 1000.0
	testFs = 48000.0
)

// syntheticSpectrum returns a 100-bin spectrum with 10 Hz bins, a
// fundamental lobe around 200 Hz, a 2nd harmonic and an off-harmonic spur.
func syntheticSpectrum() spectrum.Spectrum {
	const bins = 100

	freqs := make([]float64, bins)
	for k := range freqs {
		freqs[k] = float64(k) * 10
	}

	mags := make([]float64, bins)
	mags[19], mags[20], mags[21] = 0.5, 1.0, 0.5
	mags[40] = 0.1
	mags[70] = 0.05

	return spectrum.Spectrum{
		Freqs:         freqs,
		Magnitudes:    mags,
		FFTLength:     bins,
		MainLobeWidth: 40,
		SampleRate:    1980,
		Samples:       198,
		Window:        window.Hanning,
	}
}

func plannedSignal(t testing.TB, levels map[int]float64, noise float64) []float64 {
	t.Helper()

	n, err := window.PlanLength(testF0, testFs, window.Blackman, 0.01, window.ErrorRelative)
	if err != nil {
		t.Fatalf("PlanLength error: %v", err)
	}

	sig := testutil.HarmonicTone(testF0, testFs, 1, levels, n)
	if noise > 0 {
		sig = testutil.Mix(sig, testutil.DeterministicNoise(1, noise, n))
	}
	return sig
}

func plannedSpectrum(t testing.TB, levels map[int]float64, noise float64) spectrum.Spectrum {
	t.Helper()

	s, err := spectrum.Analyze(plannedSignal(t, levels, noise), testFs, window.Blackman)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	return s
}

func TestTHDNFundamentalSynthetic(t *testing.T) {
	r, err := THDNF(syntheticSpectrum(), Config{})
	if err != nil {
		t.Fatalf("THDNF error: %v", err)
	}

	testutil.RequireNearlyEqual(t, "THDN", r.THDN, math.Sqrt(0.0125/1.5), 1e-12)
	if r.Fundamental != 200 {
		t.Fatalf("Fundamental=%v, want 200", r.Fundamental)
	}
	if r.RMS != 111803.4 {
		t.Fatalf("RMS=%v, want 111803.4", r.RMS)
	}
	if r.Variant != Fundamental || r.Variant.String() != "F" {
		t.Fatalf("Variant=%v, want F", r.Variant)
	}
}

func TestTHDNTotalSynthetic(t *testing.T) {
	r, err := THDNR(syntheticSpectrum(), Config{})
	if err != nil {
		t.Fatalf("THDNR error: %v", err)
	}

	testutil.RequireNearlyEqual(t, "THDN", r.THDN, 1.0/11, 1e-12)
	if r.RMS != 122983.74 {
		t.Fatalf("RMS=%v, want 122983.74", r.RMS)
	}
	if r.Variant != Total || r.Variant.String() != "R" {
		t.Fatalf("Variant=%v, want R", r.Variant)
	}
}

func TestTHDNFundamentalFallsBackToLocalMinima(t *testing.T) {
	s := syntheticSpectrum()
	s.MainLobeWidth = 0

	r, err := THDNF(s, Config{})
	if err != nil {
		t.Fatalf("THDNF error: %v", err)
	}

	// FindRange gives [19,22), the same energy as the main lobe bounds.
	testutil.RequireNearlyEqual(t, "THDN", r.THDN, math.Sqrt(0.0125/1.5), 1e-12)
}

func TestBandLimits(t *testing.T) {
	s := syntheticSpectrum()

	r, err := THDNF(s, Config{LowPass: 500})
	if err != nil {
		t.Fatalf("THDNF error: %v", err)
	}
	// The spur at 700 Hz is rejected, the 2nd harmonic at 400 Hz stays.
	testutil.RequireNearlyEqual(t, "THDN lowpass", r.THDN, math.Sqrt(0.01/1.5), 1e-9)

	r, err = THDNF(s, Config{HighPass: 500})
	if err != nil {
		t.Fatalf("THDNF error: %v", err)
	}
	// The fundamental is located before filtering, so the lobe is floored
	// and the reference collapses to the floor value.
	if r.THDN < 1e6 {
		t.Fatalf("THDN=%v, want huge ratio once the fundamental is filtered out", r.THDN)
	}

	hum := syntheticSpectrum()
	hum.Magnitudes[5] = 0.3
	r, err = THDNF(hum, Config{HighPass: 150, LowPass: -1})
	if err != nil {
		t.Fatalf("THDNF error: %v", err)
	}
	// Bins below 150 Hz are rejected and nothing is cut at the top.
	testutil.RequireNearlyEqual(t, "THDN highpass", r.THDN, math.Sqrt(0.0125/1.5), 1e-9)
}

func TestHighPassRemovesHum(t *testing.T) {
	sig := plannedSignal(t, nil, 0)
	hum := testutil.DeterministicSine(50, testFs, 0.05, len(sig))
	s, err := spectrum.Analyze(testutil.Mix(sig, hum), testFs, window.Blackman)
	if err != nil {
		t.Fatalf("Analyze error: %v", err)
	}

	plain, err := THDNF(s, Config{})
	if err != nil {
		t.Fatalf("THDNF error: %v", err)
	}
	filtered, err := THDNF(s, Config{HighPass: 200})
	if err != nil {
		t.Fatalf("THDNF error: %v", err)
	}

	if plain.THDN < 0.04 {
		t.Fatalf("unfiltered THDN=%v, want hum to dominate", plain.THDN)
	}
	if filtered.THDN > 1e-3 {
		t.Fatalf("filtered THDN=%v, want hum removed", filtered.THDN)
	}
}

func TestTHDNMonotonicWithNoise(t *testing.T) {
	levels := []float64{0, 1e-3, 1e-2, 1e-1}

	var prevF, prevR float64
	for i, noise := range levels {
		s := plannedSpectrum(t, nil, noise)

		f, err := THDNF(s, Config{})
		if err != nil {
			t.Fatalf("THDNF error: %v", err)
		}
		r, err := THDNR(s, Config{})
		if err != nil {
			t.Fatalf("THDNR error: %v", err)
		}

		if i > 0 && (f.THDN <= prevF || r.THDN <= prevR) {
			t.Fatalf("noise=%v: F=%v (prev %v) R=%v (prev %v), want both increasing",
				noise, f.THDN, prevF, r.THDN, prevR)
		}
		prevF, prevR = f.THDN, r.THDN
	}
}

func TestTHDNErrors(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	if _, err := calc.THDNFundamental(spectrum.Spectrum{}); !errors.Is(err, ErrEmptySpectrum) {
		t.Fatalf("F err=%v, want ErrEmptySpectrum", err)
	}
	if _, err := calc.THDNTotal(spectrum.Spectrum{}); !errors.Is(err, ErrEmptySpectrum) {
		t.Fatalf("R err=%v, want ErrEmptySpectrum", err)
	}

	zero := syntheticSpectrum()
	zero.Magnitudes = make([]float64, len(zero.Freqs))
	if _, err := calc.THDNFundamental(zero); !errors.Is(err, ErrFundamentalNotFound) {
		t.Fatalf("F err=%v, want ErrFundamentalNotFound", err)
	}
	if _, err := calc.THDNTotal(zero); !errors.Is(err, ErrFundamentalNotFound) {
		t.Fatalf("R err=%v, want ErrFundamentalNotFound", err)
	}

	short := syntheticSpectrum()
	short.Freqs = short.Freqs[:10]
	if _, err := calc.THDNFundamental(short); !errors.Is(err, ErrEmptySpectrum) {
		t.Fatalf("F err=%v, want ErrEmptySpectrum for mismatched axes", err)
	}
}

func TestCalculatorDoesNotMutateSpectrum(t *testing.T) {
	s := plannedSpectrum(t, map[int]float64{3: 0.2}, 1e-3)
	orig := s.Clone()

	if _, err := NewCalculator(Config{HighPass: 100, LowPass: 20000}).Analyze(s); err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, s.Magnitudes, orig.Magnitudes, 0)
	testutil.RequireSliceNearlyEqual(t, s.Freqs, orig.Freqs, 0)
}

func TestReportConversions(t *testing.T) {
	r := Report{THDN: 0.01}
	testutil.RequireNearlyEqual(t, "Percent", r.Percent(), 1, 1e-12)
	testutil.RequireNearlyEqual(t, "DB", r.DB(), -40, 1e-9)
	testutil.RequireNearlyEqual(t, "SINAD", r.SINAD(), 40, 1e-9)
}

func TestNormalizeConfig(t *testing.T) {
	cfg := NewCalculator(Config{HighPass: -5}).Config()
	if cfg.LowPass != 100e3 || cfg.HighPass != 0 || cfg.Concurrency != 1 || cfg.Observer == nil {
		t.Fatalf("unexpected normalised config: %+v", cfg)
	}

	cfg = NewCalculator(Config{LowPass: -1, Concurrency: 4}).Config()
	if cfg.LowPass != -1 || cfg.Concurrency != 4 {
		t.Fatalf("unexpected normalised config: %+v", cfg)
	}
}

func TestAnalyzeSignal(t *testing.T) {
	res, err := AnalyzeSignal(plannedSignal(t, map[int]float64{2: 0.01}, 0), testFs, window.Blackman, DefaultConfig())
	if err != nil {
		t.Fatalf("AnalyzeSignal error: %v", err)
	}

	testutil.RequireNearlyEqual(t, "THD", res.Harmonic.THD, 0.01, 1e-4)
	testutil.RequireNearlyEqual(t, "THDN F", res.THDNF.THDN, 0.01, 1e-4)
	testutil.RequireNearlyEqual(t, "THDN R", res.THDNR.THDN, 0.01, 1e-4)
	if res.THDNF.Fundamental != testF0 || res.Spectrum.Samples != 28800 {
		t.Fatalf("fundamental=%v samples=%d", res.THDNF.Fundamental, res.Spectrum.Samples)
	}

	if _, err := AnalyzeSignal(nil, testFs, window.Blackman, Config{}); !errors.Is(err, spectrum.ErrEmptySignal) {
		t.Fatalf("err=%v, want ErrEmptySignal", err)
	}
}

func TestFindRange(t *testing.T) {
	tests := []struct {
		name        string
		f           []float64
		peak        int
		left, right int
	}{
		{"both sides", []float64{1, 0, 2, 5, 2, 0, 1}, 3, 2, 5},
		{"left edge", []float64{0, 1, 3, 1, 0, 2}, 2, 0, 4},
		{"falls to right edge", []float64{5, 4, 3, 2, 1}, 0, 0, 5},
		{"peak at end", []float64{0, 1, 2}, 2, 0, 3},
		{"plateau stops", []float64{0, 4, 4, 9, 4, 4, 0}, 3, 3, 4},
		{"out of range", []float64{1, 2}, 5, 0, 0},
		{"empty", nil, 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			left, right := FindRange(tc.f, tc.peak)
			if left != tc.left || right != tc.right {
				t.Fatalf("FindRange=[%d,%d), want [%d,%d)", left, right, tc.left, tc.right)
			}
		})
	}
}
