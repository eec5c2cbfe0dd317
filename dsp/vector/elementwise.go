package vector

import (
	"github.com/cwbudde/algo-vecmath"
)

// Add returns a[i] + b[i].
func Add(a, b []float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	copy(out, a[:n])
	vecmath.AddBlockInPlace(out, b[:n])

	return out
}

// Subtract returns a[i] - b[i].
func Subtract(a, b []float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := range out {
		out[i] = a[i] - b[i]
	}

	return out
}

// Multiply returns a[i] * b[i].
func Multiply(a, b []float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	vecmath.MulBlock(out, a[:n], b[:n])

	return out
}

// Divide returns a[i] / b[i]. Division by zero follows IEEE 754.
func Divide(a, b []float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := range out {
		out[i] = a[i] / b[i]
	}

	return out
}

// AddScalar returns x[i] + s.
func AddScalar(x []float64, s float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v + s
	}

	return out
}

// SubtractScalar returns x[i] - s.
func SubtractScalar(x []float64, s float64) []float64 {
	return AddScalar(x, -s)
}

// ScalarSubtract returns s - x[i].
func ScalarSubtract(s float64, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = s - v
	}

	return out
}

// MultiplyScalar returns x[i] * s.
func MultiplyScalar(x []float64, s float64) []float64 {
	out := make([]float64, len(x))
	vecmath.ScaleBlock(out, x, s)

	return out
}

// DivideScalar returns x[i] / s.
func DivideScalar(x []float64, s float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v / s
	}

	return out
}

// ScalarDivide returns s / x[i].
func ScalarDivide(s float64, x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = s / v
	}

	return out
}

// LessEqual returns a[i] <= b[i].
func LessEqual(a, b []float64) []bool {
	n := min(len(a), len(b))
	out := make([]bool, n)
	for i := range out {
		out[i] = a[i] <= b[i]
	}

	return out
}

// LessEqualScalar returns x[i] <= s.
func LessEqualScalar(x []float64, s float64) []bool {
	out := make([]bool, len(x))
	for i, v := range x {
		out[i] = v <= s
	}

	return out
}

// Where returns x[i] where cond[i] holds and y[i] otherwise. The result is
// truncated to the shortest of the three inputs.
func Where(cond []bool, x, y []float64) []float64 {
	n := min(len(cond), len(x), len(y))
	out := make([]float64, n)
	for i := range out {
		if cond[i] {
			out[i] = x[i]
		} else {
			out[i] = y[i]
		}
	}

	return out
}

// Abs returns |x[i]|.
func Abs(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		if v < 0 {
			v = -v
		}
		out[i] = v
	}

	return out
}

// Square returns x[i]^2.
func Square(x []float64) []float64 {
	out := make([]float64, len(x))
	vecmath.MulBlock(out, x, x)

	return out
}
