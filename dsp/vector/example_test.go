package vector_test

import (
	"fmt"

	"github.com/cwbudde/algo-thdn/dsp/vector"
)

func ExampleKSum() {
	x := []float64{1e16, 1, -1e16}
	fmt.Println(vector.KSum(x))
	// Output:
	// 1
}

func ExampleMagnitude() {
	fmt.Println(vector.Magnitude([]float64{3, 4, 6, 8}))
	// Output:
	// [5 10]
}
