package vector

// Array is either a scalar or an ordered sequence of nested Arrays. It carries
// the broadcast contract of the flat slice operations to n-dimensional data.
//
// The zero value is the scalar 0.
type Array struct {
	value float64
	items []Array
	seq   bool
}

// Scalar wraps v as a zero-dimensional Array.
func Scalar(v float64) Array {
	return Array{value: v}
}

// Seq builds a one-dimensional Array from values.
func Seq(values ...float64) Array {
	items := make([]Array, len(values))
	for i, v := range values {
		items[i] = Scalar(v)
	}

	return Array{items: items, seq: true}
}

// Nest builds an Array whose elements are the given Arrays.
func Nest(items ...Array) Array {
	return Array{items: append([]Array(nil), items...), seq: true}
}

// IsScalar reports whether a is zero-dimensional.
func (a Array) IsScalar() bool { return !a.seq }

// Value returns the scalar value. It is 0 for sequences.
func (a Array) Value() float64 { return a.value }

// Len returns the number of elements along the outermost axis, or 0 for a
// scalar.
func (a Array) Len() int { return len(a.items) }

// At returns the i-th element along the outermost axis.
func (a Array) At(i int) Array { return a.items[i] }

// Flat returns the scalars of a in row-major order.
func (a Array) Flat() []float64 {
	if !a.seq {
		return []float64{a.value}
	}

	var out []float64
	for _, it := range a.items {
		out = append(out, it.Flat()...)
	}

	return out
}

// BinaryOp combines two scalars.
type BinaryOp func(x, y float64) float64

// Broadcast applies op elementwise. Two sequences are combined pairwise and
// truncated to the shorter one; a scalar operand is broadcast across every
// element of the other operand at every depth.
func Broadcast(op BinaryOp, a, b Array) Array {
	switch {
	case !a.seq && !b.seq:
		return Scalar(op(a.value, b.value))
	case a.seq && b.seq:
		n := min(len(a.items), len(b.items))
		items := make([]Array, n)
		for i := range items {
			items[i] = Broadcast(op, a.items[i], b.items[i])
		}

		return Array{items: items, seq: true}
	case a.seq:
		items := make([]Array, len(a.items))
		for i, it := range a.items {
			items[i] = Broadcast(op, it, b)
		}

		return Array{items: items, seq: true}
	default:
		items := make([]Array, len(b.items))
		for i, it := range b.items {
			items[i] = Broadcast(op, a, it)
		}

		return Array{items: items, seq: true}
	}
}

// AddArray returns a + b with broadcasting.
func AddArray(a, b Array) Array {
	return Broadcast(func(x, y float64) float64 { return x + y }, a, b)
}

// SubtractArray returns a - b with broadcasting.
func SubtractArray(a, b Array) Array {
	return Broadcast(func(x, y float64) float64 { return x - y }, a, b)
}

// MultiplyArray returns a * b with broadcasting.
func MultiplyArray(a, b Array) Array {
	return Broadcast(func(x, y float64) float64 { return x * y }, a, b)
}

// DivideArray returns a / b with broadcasting.
func DivideArray(a, b Array) Array {
	return Broadcast(func(x, y float64) float64 { return x / y }, a, b)
}

// LessEqualArray returns 1 where a <= b and 0 elsewhere, with broadcasting.
func LessEqualArray(a, b Array) Array {
	return Broadcast(func(x, y float64) float64 {
		if x <= y {
			return 1
		}
		return 0
	}, a, b)
}

// WhereArray selects from x where cond is non-zero and from y otherwise.
// cond, x and y are walked together; scalars broadcast as in [Broadcast].
func WhereArray(cond, x, y Array) Array {
	if !cond.seq {
		if cond.value != 0 {
			return x
		}
		return y
	}

	n := len(cond.items)
	if x.seq {
		n = min(n, len(x.items))
	}
	if y.seq {
		n = min(n, len(y.items))
	}

	items := make([]Array, n)
	for i := range items {
		xi, yi := x, y
		if x.seq {
			xi = x.items[i]
		}
		if y.seq {
			yi = y.items[i]
		}
		items[i] = WhereArray(cond.items[i], xi, yi)
	}

	return Array{items: items, seq: true}
}
