package scheduling

import (
	"errors"
	"fmt"
)

// Engine error taxonomy. Handlers translate these to caller-facing HTTP
// responses; none of them is fatal to the process.
var (
	// Conflict errors.
	ErrDoctorConflict     = errors.New("subject already has an active booking with this doctor on this date")
	ErrDepartmentConflict = errors.New("subject already holds an active booking in this department")

	// Capacity errors.
	ErrSessionFull         = errors.New("session is at capacity")
	ErrTokenRangeExhausted = errors.New("daily token range exhausted")

	// Availability errors.
	ErrDoctorUnavailable = errors.New("doctor is not available on this date")
	ErrSessionClosed     = errors.New("session is not available")
	ErrCutoffPassed      = errors.New("booking window for this session has closed")

	// Allocation and lifecycle errors.
	ErrTokenAllocation   = errors.New("token allocation failed")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// ValidationError reports malformed caller input (missing or unparseable
// dates, times, identifiers).
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsConflict reports whether the error is one of the duplicate-booking
// conflicts.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDoctorConflict) || errors.Is(err, ErrDepartmentConflict)
}

// IsCapacity reports whether the error is a capacity exhaustion.
func IsCapacity(err error) bool {
	return errors.Is(err, ErrSessionFull) || errors.Is(err, ErrTokenRangeExhausted)
}

// IsAvailability reports whether the error is an availability rejection.
func IsAvailability(err error) bool {
	return errors.Is(err, ErrDoctorUnavailable) || errors.Is(err, ErrSessionClosed) || errors.Is(err, ErrCutoffPassed)
}
