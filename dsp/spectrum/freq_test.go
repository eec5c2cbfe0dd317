package spectrum

import (
	"testing"

	"github.com/cwbudde/algo-thdn/internal/testutil"
)

func TestFFTLength(t *testing.T) {
	tests := map[int]int{0: 0, 1: 1, 2: 2, 7: 4, 8: 5, 9: 5, 1024: 513, 1025: 513}
	for n, want := range tests {
		if got := FFTLength(n); got != want {
			t.Fatalf("FFTLength(%d)=%d, want %d", n, got, want)
		}
	}
}

func TestRFFTFreq(t *testing.T) {
	testutil.RequireSliceNearlyEqual(t, RFFTFreq(8, 1.0/8000), []float64{0, 1000, 2000, 3000, 4000}, 1e-9)
	testutil.RequireSliceNearlyEqual(t, RFFTFreq(5, 1), []float64{0, 0.2, 0.4}, 1e-12)

	if RFFTFreq(0, 1) != nil {
		t.Fatal("RFFTFreq(0) should be nil")
	}
}

func TestNextFastSize(t *testing.T) {
	tests := []struct{ n, fast, real int }{
		{1, 1, 2},
		{7, 8, 8},
		{11, 12, 12},
		{13, 15, 16},
		{25, 25, 30},
		{97, 100, 100},
		{1000, 1000, 1000},
		{1021, 1024, 1024},
	}

	for _, tc := range tests {
		if got := NextFastSize(tc.n); got != tc.fast {
			t.Fatalf("NextFastSize(%d)=%d, want %d", tc.n, got, tc.fast)
		}
		if got := NextFastRealSize(tc.n); got != tc.real {
			t.Fatalf("NextFastRealSize(%d)=%d, want %d", tc.n, got, tc.real)
		}
	}
}
