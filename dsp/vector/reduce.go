package vector

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sum returns the plain sum of x. It fails with [ErrEmpty] for an empty slice.
func Sum(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}

	return floats.Sum(x), nil
}

// KSum returns the compensated sum of x. The running compensation follows
// Neumaier's variant of Kahan summation, so the error stays within a few ulp
// of the exact result regardless of len(x), including inputs where a large
// term cancels a later one. Returns 0 for an empty slice.
func KSum(x []float64) float64 {
	var sum, c float64
	for _, v := range x {
		t := sum + v
		if math.Abs(sum) >= math.Abs(v) {
			c += (sum - t) + v
		} else {
			c += (v - t) + sum
		}
		sum = t
	}

	return sum + c
}

// Mean returns the arithmetic mean of x. It fails with [ErrEmpty] for an
// empty slice.
func Mean(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}

	return stat.Mean(x, nil), nil
}

// RMS returns sqrt(mean(|x|^2)). It fails with [ErrEmpty] for an empty slice.
func RMS(x []float64) (float64, error) {
	if len(x) == 0 {
		return 0, ErrEmpty
	}

	return math.Sqrt(KSum(Square(x)) / float64(len(x))), nil
}

// ArgMax returns the index of the first maximum of x, or -1 if x is empty.
func ArgMax(x []float64) int {
	if len(x) == 0 {
		return -1
	}

	return floats.MaxIdx(x)
}

// Max returns the largest element of x. ok is false if x is empty.
func Max(x []float64) (v float64, ok bool) {
	if len(x) == 0 {
		return 0, false
	}

	return floats.Max(x), true
}

// Min returns the smallest element of x. ok is false if x is empty.
func Min(x []float64) (v float64, ok bool) {
	if len(x) == 0 {
		return 0, false
	}

	return floats.Min(x), true
}
