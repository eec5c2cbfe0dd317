// Package vector provides the small set of slice arithmetic the spectral
// engine is built on.
//
// Elementwise operations come in a pairwise form, where both operands are
// slices, and a broadcast form, where one operand is a scalar. Pairwise
// operations with operands of different lengths produce a result truncated to
// the shorter operand. Every operation returns a new slice and leaves its
// inputs untouched.
//
// [Array] extends the same contract to nested, n-dimensional data.
package vector
