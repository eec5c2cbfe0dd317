package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// HarmonicTone generates a sine at f0 plus the given harmonics. levels maps
// harmonic order (2 = second harmonic) to amplitude relative to the
// fundamental.
func HarmonicTone(f0, sampleRate, amplitude float64, levels map[int]float64, length int) []float64 {
	out := DeterministicSine(f0, sampleRate, amplitude, length)
	for order, level := range levels {
		h := DeterministicSine(f0*float64(order), sampleRate, amplitude*level, length)
		for i := range out {
			out[i] += h[i]
		}
	}
	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude,
// amplitude) with a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Mix returns the element-wise sum of the inputs, truncated to the shortest.
func Mix(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}

	n := len(signals[0])
	for _, s := range signals[1:] {
		n = min(n, len(s))
	}

	out := make([]float64, n)
	for _, s := range signals {
		for i := range out {
			out[i] += s[i]
		}
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// TimeAxis returns i/sampleRate for i in [0, length).
func TimeAxis(sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = float64(i) / sampleRate
	}
	return out
}
