package repair

import (
	"errors"
	"fmt"
)

// ErrExhausted classifies retry-budget exhaustion for errors.Is checks.
var ErrExhausted = errors.New("retries exhausted")

// ExhaustedError is returned when the loop used its entire retry budget
// without a successful execution. It carries the attempt count and the
// last observed failure.
type ExhaustedError struct {
	// Attempts is the number of generation calls made.
	Attempts int

	// LastError is the last observed failure message.
	LastError string

	// LastCode is the last extracted code, if any attempt produced code.
	LastCode string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("code generation failed after %d attempts: %s", e.Attempts, e.LastError)
}

// Is reports whether this error matches ErrExhausted.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}
