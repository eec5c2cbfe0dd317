package spectrum

// FFTLength returns the number of one-sided bins for n samples:
// floor(n/2)+1 for even n and floor((n+2)/2) for odd n. Both forms agree
// for every n >= 0.
func FFTLength(n int) int {
	if n <= 0 {
		return 0
	}
	if n%2 == 0 {
		return n/2 + 1
	}
	return (n + 2) / 2
}

// RFFTFreq returns the one-sided frequency axis k/(n*d) for
// k in [0, floor(n/2)].
func RFFTFreq(n int, d float64) []float64 {
	if n <= 0 || d == 0 {
		return nil
	}

	out := make([]float64, n/2+1)
	scale := 1 / (float64(n) * d)
	for k := range out {
		out[k] = float64(k) * scale
	}

	return out
}

// NextFastSize returns the smallest m >= n whose only prime factors are 2, 3
// and 5.
func NextFastSize(n int) int {
	if n <= 1 {
		return 1
	}

	for m := n; ; m++ {
		if isSmooth235(m) {
			return m
		}
	}
}

// NextFastRealSize is NextFastSize restricted to even sizes, which real
// input FFTs handle fastest.
func NextFastRealSize(n int) int {
	if n <= 2 {
		return 2
	}

	m := NextFastSize(n)
	for m%2 != 0 {
		m = NextFastSize(m + 1)
	}

	return m
}

func isSmooth235(m int) bool {
	for _, p := range [...]int{2, 3, 5} {
		for m%p == 0 {
			m /= p
		}
	}
	return m == 1
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
