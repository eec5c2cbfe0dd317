package vector

import (
	"math"
	"testing"
)

func TestPairwiseOps(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	b := []float64{4, 3, 2, 1}

	cases := []struct {
		name string
		got  []float64
		want []float64
	}{
		{name: "add", got: Add(a, b), want: []float64{5, 5, 5, 5}},
		{name: "subtract", got: Subtract(a, b), want: []float64{-3, -1, 1, 3}},
		{name: "multiply", got: Multiply(a, b), want: []float64{4, 6, 6, 4}},
		{name: "divide", got: Divide(a, b), want: []float64{0.25, 2.0 / 3.0, 1.5, 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requireClose(t, tc.got, tc.want, 1e-15)
		})
	}
}

func TestPairwiseTruncatesToShorter(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{10, 20}

	for name, got := range map[string][]float64{
		"add":      Add(a, b),
		"subtract": Subtract(b, a),
		"multiply": Multiply(a, b),
		"divide":   Divide(b, a),
	} {
		if len(got) != 2 {
			t.Fatalf("%s: len=%d, want 2", name, len(got))
		}
	}

	if got := LessEqual(a, b); len(got) != 2 {
		t.Fatalf("LessEqual len=%d, want 2", len(got))
	}
}

func TestBroadcastOps(t *testing.T) {
	x := []float64{2, 4, 8}

	requireClose(t, AddScalar(x, 1), []float64{3, 5, 9}, 0)
	requireClose(t, SubtractScalar(x, 1), []float64{1, 3, 7}, 0)
	requireClose(t, ScalarSubtract(10, x), []float64{8, 6, 2}, 0)
	requireClose(t, MultiplyScalar(x, 0.5), []float64{1, 2, 4}, 0)
	requireClose(t, DivideScalar(x, 2), []float64{1, 2, 4}, 0)
	requireClose(t, ScalarDivide(8, x), []float64{4, 2, 1}, 0)
}

func TestOpsDoNotMutateInputs(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{3, 2, 1}

	_ = Add(a, b)
	_ = Multiply(a, b)
	_ = MultiplyScalar(a, 3)
	_ = Square(a)

	requireClose(t, a, []float64{1, 2, 3}, 0)
	requireClose(t, b, []float64{3, 2, 1}, 0)
}

func TestWhereLessEqualTriangle(t *testing.T) {
	n := []float64{-4, -2, 0, 2, 4}
	m := 5.0

	rising := AddScalar(DivideScalar(n, m-1), 1)
	falling := ScalarSubtract(1, DivideScalar(n, m-1))

	got := Where(LessEqualScalar(n, 0), rising, falling)
	requireClose(t, got, []float64{0, 0.5, 1, 0.5, 0}, 1e-15)
}

func TestAbsSquare(t *testing.T) {
	requireClose(t, Abs([]float64{-1.5, 0, 2}), []float64{1.5, 0, 2}, 0)
	requireClose(t, Square([]float64{-3, 0.5}), []float64{9, 0.25}, 0)
}

func TestDivideByZeroIsIEEE(t *testing.T) {
	got := Divide([]float64{1, -1, 0}, []float64{0, 0, 0})
	if !math.IsInf(got[0], 1) || !math.IsInf(got[1], -1) || !math.IsNaN(got[2]) {
		t.Fatalf("unexpected IEEE results: %v", got)
	}
}

func requireClose(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
