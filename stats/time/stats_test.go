package time

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-thdn/internal/testutil"
)

const tolerance = 1e-10

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)
	if s.Length != 0 || s.RMS != 0 || s.Peak != 0 {
		t.Fatalf("empty stats = %+v", s)
	}
	if !math.IsInf(s.RMSdB, -1) || !math.IsInf(s.PeakdB, -1) || !math.IsInf(s.CrestFactordB, -1) {
		t.Fatalf("empty dB fields should be -Inf: %+v", s)
	}
}

func TestCalculateSine(t *testing.T) {
	// 48 full cycles of 1 kHz at 48 kHz.
	x := testutil.DeterministicSine(1000, 48000, 0.5, 2304)
	s := Calculate(x)

	testutil.RequireNearlyEqual(t, "DC", s.DC, 0, 1e-12)
	testutil.RequireNearlyEqual(t, "RMS", s.RMS, 0.5/math.Sqrt2, 1e-12)
	testutil.RequireNearlyEqual(t, "Peak", s.Peak, 0.5, 1e-12)
	testutil.RequireNearlyEqual(t, "CrestFactor", s.CrestFactor, math.Sqrt2, 1e-9)
	testutil.RequireNearlyEqual(t, "CrestFactordB", s.CrestFactordB, 20*math.Log10(math.Sqrt2), 1e-8)
	testutil.RequireNearlyEqual(t, "PeakdB", s.PeakdB, 20*math.Log10(0.5), tolerance)

	if s.Length != len(x) {
		t.Fatalf("Length=%d, want %d", s.Length, len(x))
	}
}

func TestCalculateDC(t *testing.T) {
	s := Calculate(testutil.DC(-0.25, 100))

	testutil.RequireNearlyEqual(t, "DC", s.DC, -0.25, tolerance)
	testutil.RequireNearlyEqual(t, "DCdB", s.DCdB, 20*math.Log10(0.25), tolerance)
	testutil.RequireNearlyEqual(t, "CrestFactor", s.CrestFactor, 1, tolerance)

	if s.ZeroCrossings != 0 {
		t.Fatalf("ZeroCrossings=%d, want 0", s.ZeroCrossings)
	}
}

func TestCalculateSilence(t *testing.T) {
	s := Calculate(make([]float64, 16))
	if s.CrestFactor != 0 || !math.IsInf(s.CrestFactordB, -1) {
		t.Fatalf("silent crest = %v / %v", s.CrestFactor, s.CrestFactordB)
	}
}

func TestZeroCrossings(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want int
	}{
		{"empty", nil, 0},
		{"single", []float64{1}, 0},
		{"alternating", []float64{1, -1, 1, -1}, 3},
		{"touching zero", []float64{1, 0, -1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ZeroCrossings(tt.in); got != tt.want {
				t.Fatalf("ZeroCrossings=%d, want %d", got, tt.want)
			}
		})
	}
}

func TestClipped(t *testing.T) {
	x := []float64{0.5, 1, -1, 0.999, -1.2}
	if got := Clipped(x, 1); got != 3 {
		t.Fatalf("Clipped=%d, want 3", got)
	}
	if got := Clipped(x, 0.99); got != 4 {
		t.Fatalf("Clipped=%d, want 4", got)
	}
}
