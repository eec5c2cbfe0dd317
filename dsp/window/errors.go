package window

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKind is returned for a window kind outside the declared set.
	ErrInvalidKind = errors.New("window: invalid window kind")
	// ErrNonPositiveCarrier is returned when a relative main lobe error is
	// requested for a carrier frequency that is not positive.
	ErrNonPositiveCarrier = errors.New("window: carrier frequency must be positive")
	// ErrInvalidTolerance is returned when the allowed main lobe width is not
	// a positive finite number.
	ErrInvalidTolerance = errors.New("window: main lobe tolerance must be > 0")
	// ErrInvalidSampleRate is returned for a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("window: sample rate must be > 0")

	errEmptyCoeffs      = errors.New("window coefficients must not be empty")
	errMismatchedLength = errors.New("samples and coefficients must have same length")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}
