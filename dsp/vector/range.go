package vector

import "math"

// Arange returns evenly spaced values in [start, stop) with the given step,
// mirroring numpy.arange. A zero step or an empty interval yields nil.
func Arange(start, stop, step float64) []float64 {
	if step == 0 {
		return nil
	}

	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}

	return out
}

// Round rounds v to the given number of decimal places, half away from zero.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// RoundAll applies [Round] to every element and returns a new slice.
func RoundAll(x []float64, decimals int) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = Round(v, decimals)
	}

	return out
}

// Fill sets dst[start:end] to value in place. Bounds are clamped to dst;
// an end below zero means len(dst).
func Fill(dst []float64, value float64, start, end int) {
	if end < 0 || end > len(dst) {
		end = len(dst)
	}

	start = max(start, 0)
	for i := start; i < end; i++ {
		dst[i] = value
	}
}
