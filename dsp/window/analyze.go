package window

import (
	"math"

	"github.com/cwbudde/algo-thdn/dsp/core"
	"github.com/cwbudde/algo-thdn/dsp/vector"
)

// Analysis holds numerically measured spectral properties of a window.
type Analysis struct {
	// CoherentGain is mean(w), the DC gain that the spectrum analyzer
	// divides out.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// Bandwidth3dB is the two-sided half-power main lobe width in bins.
	Bandwidth3dB float64
	// FirstMinimumBins is the one-sided distance from DC to the first null.
	FirstMinimumBins float64
	// HighestSidelobedB is the highest sidelobe relative to DC.
	HighestSidelobedB float64
	// ScallopLossdB is the response at half a bin offset relative to DC.
	ScallopLossdB float64
}

// response evaluates the normalised power response of a coefficient set.
type response struct {
	coeffs []float64
	n      float64
	dc     float64
}

func newResponse(coeffs []float64) response {
	r := response{coeffs: coeffs, n: float64(len(coeffs))}
	r.dc = r.raw(0)
	return r
}

// raw returns |W(f)|^2 for normalised frequency f in cycles per sample.
func (r response) raw(f float64) float64 {
	var re, im float64
	w := 2 * math.Pi * f
	for k, c := range r.coeffs {
		s, co := math.Sincos(w * float64(k))
		re += c * co
		im -= c * s
	}
	return re*re + im*im
}

// at returns the power response at the given bin offset relative to DC.
func (r response) at(bins float64) float64 {
	return r.raw(bins/r.n) / r.dc
}

// AnalyzeKind generates a window of length m and analyzes it.
func AnalyzeKind(k Kind, m int) (Analysis, error) {
	coeffs, err := New(k, m)
	if err != nil {
		return Analysis{}, err
	}
	return Analyze(coeffs), nil
}

// Analyze measures coherent gain, ENBW, main lobe and sidelobe properties of
// the coefficients by direct DFT evaluation. It returns the zero Analysis
// for empty input or a window with zero DC gain.
func Analyze(coeffs []float64) Analysis {
	if len(coeffs) == 0 {
		return Analysis{}
	}

	r := newResponse(coeffs)
	if r.dc == 0 {
		return Analysis{}
	}

	sq := make([]float64, len(coeffs))
	for i, c := range coeffs {
		sq[i] = c * c
	}

	sum := vector.KSum(coeffs)
	firstMin := r.firstMinimum()

	return Analysis{
		CoherentGain:      sum / r.n,
		ENBW:              r.n * vector.KSum(sq) / (sum * sum),
		Bandwidth3dB:      r.halfPowerWidth(),
		FirstMinimumBins:  firstMin,
		HighestSidelobedB: r.highestSidelobe(firstMin),
		ScallopLossdB:     core.LinearPowerToDB(r.at(0.5)),
	}
}

// halfPowerWidth bisects for the -3 dB point on [0, n/2] bins and returns
// the two-sided width.
func (r response) halfPowerWidth() float64 {
	lo, hi := 0.0, r.n/2
	for range 80 {
		mid := (lo + hi) / 2
		if r.at(mid) > 0.5 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 2 * lo
}

// firstMinimum scans outward in eighth-bin steps until the response has
// dropped below 10% of DC and turns upward, then refines the turning point
// by golden-section search.
func (r response) firstMinimum() float64 {
	const step = 0.125

	nyquist := r.n / 2
	coarse := step
	prev := 1.0
	for b := step; b < nyquist; b += step {
		v := r.at(b)
		if prev < 0.1 && v > prev {
			coarse = b - step
			break
		}
		prev = v
	}

	lo := math.Max(0, coarse-2*step)
	hi := math.Min(nyquist, coarse+2*step)
	return r.goldenMin(lo, hi)
}

func (r response) goldenMin(a, b float64) float64 {
	const phi = 0.6180339887498949

	c := b - phi*(b-a)
	d := a + phi*(b-a)
	for range 80 {
		if r.at(c) < r.at(d) {
			b = d
		} else {
			a = c
		}
		c = b - phi*(b-a)
		d = a + phi*(b-a)
	}
	return (a + b) / 2
}

// highestSidelobe returns the peak response beyond the first null in dB.
func (r response) highestSidelobe(firstMin float64) float64 {
	const step = 0.125

	peak, peakAt := 0.0, firstMin
	for b := firstMin; b < r.n/2; b += step {
		if v := r.at(b); v > peak {
			peak, peakAt = v, b
		}
	}

	for b := math.Max(0, peakAt-step); b <= peakAt+step; b += step / 32 {
		if v := r.at(b); v > peak {
			peak = v
		}
	}

	return core.LinearPowerToDB(peak)
}
