package sweep

import (
	"errors"
	"fmt"
)

// Domain errors for sweep operations.
var (
	// ErrInvalidRange indicates a range with Stop < Start or a non-positive step.
	ErrInvalidRange = errors.New("sweep: invalid range (need start <= stop and step > 0)")

	// ErrTooManySamples indicates a range that would exceed MaxSamples.
	ErrTooManySamples = errors.New("sweep: range yields too many samples")

	// ErrUnknownKernel indicates a kernel name missing from the registry.
	ErrUnknownKernel = errors.New("sweep: unknown kernel")

	// ErrCanceled indicates the sweep was interrupted.
	ErrCanceled = errors.New("sweep: canceled by context")

	// ErrOutOfDomain indicates an input the kernel cannot represent.
	ErrOutOfDomain = errors.New("sweep: input outside kernel domain")
)

// SweepError wraps an error with the kernel and input it concerns.
type SweepError struct {
	Kernel  string
	Input   int64
	Wrapped error
}

func (e *SweepError) Error() string {
	return fmt.Sprintf("%s (kernel %s, input %d)", e.Wrapped, e.Kernel, e.Input)
}

func (e *SweepError) Unwrap() error {
	return e.Wrapped
}
