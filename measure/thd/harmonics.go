package thd

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-thdn/diag"
	"github.com/cwbudde/algo-thdn/dsp/spectrum"
	"github.com/cwbudde/algo-thdn/dsp/vector"
)

var errOutOfRange = errors.New("harmonic search window out of range")

// THD measures harmonic distortion without noise. The fundamental is the
// spectral peak; each harmonic order below Nyquist is located by searching
// a few bins around its nominal position and measured as the RMS of its main
// lobe. If the fundamental is the DC bin the result is Degenerate with THD 1.
func (c *Calculator) THD(s spectrum.Spectrum) (HarmonicResult, error) {
	if len(s.Magnitudes) == 0 {
		return HarmonicResult{}, ErrEmptySpectrum
	}
	if len(s.Freqs) < len(s.Magnitudes) {
		return HarmonicResult{}, fmt.Errorf("%w: %d frequencies for %d magnitudes",
			ErrEmptySpectrum, len(s.Freqs), len(s.Magnitudes))
	}

	yf := vector.Abs(s.Magnitudes)
	peak := vector.ArgMax(yf)
	f0 := s.Freqs[peak]

	if peak == 0 {
		diag.Emit(c.cfg.Observer, diag.Warn, "harmonics", "fundamental is the DC bin, check the input connection")
		return HarmonicResult{THD: 1, Fundamental: f0, Degenerate: true}, nil
	}

	count := int(math.Floor(math.Floor(s.SampleRate/2/f0) - 1))
	count = max(count, 0)
	diag.Emit(c.cfg.Observer, diag.Debug, "harmonics", "searching harmonics",
		"fundamental_hz", f0, "count", count)

	// Order 1 is the fundamental, orders 2..count+1 are the harmonics.
	amps := make([]float64, count+1)
	errs := make([]error, count+1)

	var g errgroup.Group
	g.SetLimit(c.cfg.Concurrency)
	for i := range amps {
		g.Go(func() error {
			amps[i], errs[i] = c.harmonicAmplitude(s, yf, peak, i+1)
			return nil
		})
	}
	_ = g.Wait()

	res := HarmonicResult{Fundamental: f0, Amplitudes: amps}
	for i, err := range errs {
		if err != nil {
			diag.Emit(c.cfg.Observer, diag.Warn, "harmonics", "harmonic search stopped early",
				"order", i+1, "error", err.Error())
			res.Amplitudes = amps[:i]
			res.Partial = true
			break
		}
	}

	if len(res.Amplitudes) == 0 || res.Amplitudes[0] == 0 {
		return HarmonicResult{}, fmt.Errorf("%w: no energy at %.2f Hz", ErrFundamentalNotFound, f0)
	}

	res.THD = ratio(res.Amplitudes)
	return res, nil
}

// harmonicAmplitude measures harmonic order at its nominal bin peak*order.
// The estimate is refined to the strongest local maximum within
// min(4, peak/2) bins, so neighbouring orders never share a search window.
// For orders above the fundamental the lobe is clipped to the order's own
// cell [k-peak/2, k+peak-peak/2). The result is sqrt(2) times the RMS of
// the lobe.
func (c *Calculator) harmonicAmplitude(s spectrum.Spectrum, yf []float64, peak, order int) (float64, error) {
	estimate := peak * order
	if estimate < 0 || estimate >= len(yf) {
		return 0, fmt.Errorf("%w: bin %d of %d", errOutOfRange, estimate, len(yf))
	}

	bin := refineBin(yf, estimate, min(harmonicSearchRadius, peak/2))

	var left, right int
	if s.MainLobeWidth > 0 {
		left, right = lobeBounds(s, s.Freqs[bin], len(yf))
	} else {
		left, right = FindRange(yf, bin)
	}
	if order > 1 {
		left = max(left, estimate-peak/2)
		right = min(right, estimate+peak-peak/2, len(yf))
		right = max(right, left)
	}

	lobe := vector.MultiplyScalar(yf[left:right], math.Sqrt2)
	return math.Sqrt(vector.KSum(vector.Square(lobe))), nil
}

// refineBin returns the largest local maximum of yf in
// [estimate-radius, estimate+radius), or estimate when the window holds none.
func refineBin(yf []float64, estimate, radius int) int {
	lo := max(estimate-radius, 0)
	hi := min(max(estimate+radius, estimate+1), len(yf))

	best := -1
	for b := lo; b < hi; b++ {
		if b > 0 && yf[b] < yf[b-1] {
			continue
		}
		if b+1 < len(yf) && yf[b] < yf[b+1] {
			continue
		}
		if best < 0 || yf[b] > yf[best] {
			best = b
		}
	}
	if best < 0 {
		return estimate
	}
	return best
}

func ratio(amps []float64) float64 {
	return math.Sqrt(vector.KSum(vector.Square(amps[1:]))) / math.Abs(amps[0])
}
