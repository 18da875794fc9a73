// Package status defines the error taxonomy shared by the recognition engine.
//
// Every engine operation returns a plain error. Callers branch with
// errors.Is against the sentinels below, or collapse any error into a
// Result with Of when they need the four-way classification (for example
// to pick a message in a user interface).
package status

import (
	"errors"
	"fmt"
)

var (
	// ErrFailed reports a precondition violation: a nil or invalid argument,
	// an out-of-range index or a non-positive size.
	ErrFailed = errors.New("status: operation failed")

	// ErrNoMemory reports that an allocation was refused. The operation has
	// been rolled back before returning.
	ErrNoMemory = errors.New("status: out of memory")

	// ErrConflictingParameters reports arguments that are valid on their own
	// but disagree with each other, such as a stroke whose segment count
	// differs from the alphabet's.
	ErrConflictingParameters = errors.New("status: conflicting parameters")
)

// MaxAlloc is the largest element count any engine constructor will
// allocate in one request. Larger requests fail with ErrNoMemory.
const MaxAlloc = 1 << 24

// Result is the collaborator-facing outcome of an engine call.
type Result int

const (
	Success Result = iota
	Failed
	NoMemory
	ConflictingParameters
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Failed:
		return "failed"
	case NoMemory:
		return "no memory"
	case ConflictingParameters:
		return "conflicting parameters"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Of classifies err. A nil error is Success and errors that do not wrap one
// of the package sentinels are Failed.
func Of(err error) Result {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrNoMemory):
		return NoMemory
	case errors.Is(err, ErrConflictingParameters):
		return ConflictingParameters
	default:
		return Failed
	}
}

// CheckAlloc returns ErrNoMemory when n elements may not be allocated and
// ErrFailed when n is negative.
func CheckAlloc(what string, n int) error {
	if n < 0 {
		return fmt.Errorf("%s: negative size %d: %w", what, n, ErrFailed)
	}
	if n > MaxAlloc {
		return fmt.Errorf("%s: %d elements exceeds limit %d: %w", what, n, MaxAlloc, ErrNoMemory)
	}
	return nil
}

// Failf wraps ErrFailed with a formatted message.
func Failf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrFailed)
}

// Conflictf wraps ErrConflictingParameters with a formatted message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflictingParameters)
}
