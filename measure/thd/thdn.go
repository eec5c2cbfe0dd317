package thd

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-thdn/diag"
	"github.com/cwbudde/algo-thdn/dsp/spectrum"
	"github.com/cwbudde/algo-thdn/dsp/vector"
)

// THDNFundamental measures THD+N referenced to the fundamental. The lobe
// around the spectral peak is bounded by the window main lobe width, or by
// FindRange when the width is unknown. Noise is everything left once the
// lobe is floored.
func (c *Calculator) THDNFundamental(s spectrum.Spectrum) (Report, error) {
	yf, peak, err := c.prepare(s, "thdn_f")
	if err != nil {
		return Report{}, err
	}

	fundamental := s.Freqs[peak]
	left, right := c.fundamentalLobe(s, yf, peak, fundamental)

	rmsFund := math.Sqrt(vector.KSum(vector.Square(yf[left:right])))
	if rmsFund == 0 || math.IsNaN(rmsFund) {
		return Report{}, fmt.Errorf("%w: empty lobe [%d,%d) at %.2f Hz",
			ErrFundamentalNotFound, left, right, fundamental)
	}

	vector.Fill(yf, floorValue, left, right)
	noiseSq, _ := vector.Sum(vector.Square(yf))
	rmsNoise := math.Sqrt(noiseSq)

	thdn := rmsNoise / rmsFund
	diag.Emit(c.cfg.Observer, diag.Debug, "thdn_f", "measured",
		"rms_fundamental", rmsFund, "rms_noise", rmsNoise, "thdn", thdn)

	return Report{
		THDN:        thdn,
		Fundamental: vector.Round(fundamental, 2),
		RMS:         vector.Round(1e6*rmsNoise, 2),
		Variant:     Fundamental,
	}, nil
}

// THDNTotal measures THD+N referenced to the RMS of the whole filtered
// spectrum. The fundamental lobe is always bounded by FindRange.
func (c *Calculator) THDNTotal(s spectrum.Spectrum) (Report, error) {
	yf, peak, err := c.prepare(s, "thdn_r")
	if err != nil {
		return Report{}, err
	}

	rmsTotal, _ := vector.RMS(yf)
	if rmsTotal == 0 {
		return Report{}, fmt.Errorf("%w: filtered spectrum is empty", ErrFundamentalNotFound)
	}

	left, right := FindRange(yf, peak)
	diag.Emit(c.cfg.Observer, diag.Debug, "lobe", "fundamental lobe from local minima",
		"variant", Total.String(), "left", left, "right", right)

	vector.Fill(yf, floorValue, left, right)
	rmsNoise, _ := vector.RMS(yf)

	thdn := rmsNoise / rmsTotal
	diag.Emit(c.cfg.Observer, diag.Debug, "thdn_r", "measured",
		"rms_total", rmsTotal, "rms_noise", rmsNoise, "thdn", thdn)

	return Report{
		THDN:        thdn,
		Fundamental: vector.Round(s.Freqs[peak], 2),
		RMS:         vector.Round(1e6*rmsTotal, 2),
		Variant:     Total,
	}, nil
}

// prepare copies the magnitudes, locates the peak and applies the band
// limits to the copy.
func (c *Calculator) prepare(s spectrum.Spectrum, stage string) ([]float64, int, error) {
	if len(s.Magnitudes) == 0 {
		return nil, 0, ErrEmptySpectrum
	}
	if len(s.Freqs) < len(s.Magnitudes) {
		return nil, 0, fmt.Errorf("%w: %d frequencies for %d magnitudes",
			ErrEmptySpectrum, len(s.Freqs), len(s.Magnitudes))
	}

	yf := vector.Abs(s.Magnitudes)
	peak := vector.ArgMax(yf)
	if yf[peak] == 0 {
		return nil, 0, fmt.Errorf("%w: all bins are zero", ErrFundamentalNotFound)
	}
	diag.Emit(c.cfg.Observer, diag.Debug, stage, "fundamental located",
		"bin", peak, "hz", s.Freqs[peak])

	c.bandLimit(s, yf)

	return yf, peak, nil
}

// bandLimit floors bins below HighPass and above LowPass in place.
func (c *Calculator) bandLimit(s spectrum.Spectrum, yf []float64) {
	hpf, lpf := c.cfg.HighPass, c.cfg.LowPass

	if hpf > 0 && (lpf < 0 || hpf < lpf) {
		cut := s.Bin(hpf)
		vector.Fill(yf, floorValue, 0, cut)
		diag.Emit(c.cfg.Observer, diag.Debug, "filter", "high-pass applied", "hz", hpf, "bin", cut)
	}

	if lpf > 0 {
		cut := s.Bin(lpf) + 1
		if cut < len(yf) {
			vector.Fill(yf, floorValue, cut, -1)
			diag.Emit(c.cfg.Observer, diag.Debug, "filter", "low-pass applied", "hz", lpf, "bin", cut)
		}
	}
}

// fundamentalLobe returns the half-open bin range of the main lobe centred on
// the fundamental.
func (c *Calculator) fundamentalLobe(s spectrum.Spectrum, yf []float64, peak int, fundamental float64) (int, int) {
	if s.MainLobeWidth > 0 {
		left, right := lobeBounds(s, fundamental, len(yf))
		diag.Emit(c.cfg.Observer, diag.Debug, "lobe", "fundamental lobe from main lobe width",
			"variant", Fundamental.String(), "left", left, "right", right, "width_hz", s.MainLobeWidth)
		return left, right
	}

	left, right := FindRange(yf, peak)
	diag.Emit(c.cfg.Observer, diag.Debug, "lobe", "fundamental lobe from local minima",
		"variant", Fundamental.String(), "left", left, "right", right)
	return left, right
}

// lobeBounds returns [floor((f-w/2)N/fs), floor((f+w/2)N/fs)) clamped to
// [0, n].
func lobeBounds(s spectrum.Spectrum, f float64, n int) (int, int) {
	half := s.MainLobeWidth / 2
	left := min(max(s.Bin(f-half), 0), n)
	right := min(max(s.Bin(f+half), left), n)
	return left, right
}

// FindRange returns the half-open range [left, right) between the nearest
// local minima on either side of peak. Scanning right, the lobe ends at the
// first i > peak with f[i+1] >= f[i]; scanning left, it starts one past the
// first i < peak with f[i] <= f[i-1]. A side that never turns upward extends
// to the edge of f.
func FindRange(f []float64, peak int) (left, right int) {
	if peak < 0 || peak >= len(f) {
		return 0, 0
	}

	right = len(f)
	for i := peak + 1; i+1 < len(f); i++ {
		if f[i+1] >= f[i] {
			right = i
			break
		}
	}

	left = 0
	for i := peak - 1; i >= 1; i-- {
		if f[i] <= f[i-1] {
			left = i + 1
			break
		}
	}

	return left, right
}
