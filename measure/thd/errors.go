package thd

import "errors"

var (
	// ErrEmptySpectrum is returned when the spectrum has no bins.
	ErrEmptySpectrum = errors.New("thd: empty spectrum")
	// ErrFundamentalNotFound is returned when no non-zero fundamental lobe
	// can be isolated, e.g. for an all-zero spectrum.
	ErrFundamentalNotFound = errors.New("thd: fundamental not found")
)
