package vector

import "errors"

// ErrEmpty is returned by reductions that are undefined for zero-length input.
var ErrEmpty = errors.New("vector: empty input")
