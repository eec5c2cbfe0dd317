package vector

import (
	"github.com/cwbudde/algo-vecmath"
)

// Magnitude treats x as interleaved (re, im) pairs and returns
// sqrt(re^2 + im^2) for each pair. If len(x) is odd the final value is used
// as both parts of the last pair.
func Magnitude(x []float64) []float64 {
	if len(x) == 0 {
		return nil
	}

	n := (len(x) + 1) / 2
	re := make([]float64, n)
	im := make([]float64, n)

	for i := range n {
		re[i] = x[2*i]
		if j := 2*i + 1; j < len(x) {
			im[i] = x[j]
		} else {
			im[i] = x[2*i]
		}
	}

	out := make([]float64, n)
	vecmath.Magnitude(out, re, im)

	return out
}
