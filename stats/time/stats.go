package time

import (
	"math"

	"github.com/cwbudde/algo-thdn/dsp/core"
	"github.com/cwbudde/algo-thdn/dsp/vector"
)

// Stats holds level statistics of a signal under test.
type Stats struct {
	Length int
	// DC is the mean.
	DC   float64
	DCdB float64
	RMS  float64
	// RMSdB is relative to full scale (1.0).
	RMSdB  float64
	Peak   float64
	PeakdB float64
	// CrestFactor is Peak / RMS, or 0 for a silent signal.
	CrestFactor   float64
	CrestFactordB float64
	ZeroCrossings int
}

func emptyStats() Stats {
	return Stats{
		DCdB:          math.Inf(-1),
		RMSdB:         math.Inf(-1),
		PeakdB:        math.Inf(-1),
		CrestFactordB: math.Inf(-1),
	}
}

// Calculate computes the level statistics of signal. Sums are compensated,
// so long captures with a small DC offset keep full precision.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	nf := float64(n)
	dc := vector.KSum(signal) / nf
	rms := RMS(signal)
	peak := Peak(signal)

	s := Stats{
		Length:        n,
		DC:            dc,
		DCdB:          core.LinearToDB(math.Abs(dc)),
		RMS:           rms,
		RMSdB:         core.LinearToDB(rms),
		Peak:          peak,
		PeakdB:        core.LinearToDB(peak),
		CrestFactordB: math.Inf(-1),
		ZeroCrossings: ZeroCrossings(signal),
	}

	if rms > 0 {
		s.CrestFactor = peak / rms
		s.CrestFactordB = core.LinearToDB(s.CrestFactor)
	}

	return s
}

// RMS returns the root-mean-square of the signal, or 0 when empty.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(vector.KSum(vector.Square(signal)) / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		peak = math.Max(peak, math.Abs(x))
	}

	return peak
}

// ZeroCrossings returns the number of sign changes between consecutive
// samples.
func ZeroCrossings(signal []float64) int {
	var count int
	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}

	return count
}

// Clipped returns the number of samples whose magnitude reaches level.
func Clipped(signal []float64, level float64) int {
	var count int
	for _, x := range signal {
		if math.Abs(x) >= level {
			count++
		}
	}

	return count
}
