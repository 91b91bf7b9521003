package schedule

import (
	"errors"
	"fmt"
)

var (
	ErrOverlap    = errors.New("overlapping booking")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid input")
)

// OverlapError reports an insert that would break per-day exclusivity.
type OverlapError struct {
	Attempt  Interval
	Existing Booking
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s %s–%s overlaps %q (%s–%s)",
		e.Attempt.Day, e.Attempt.Start, e.Attempt.End,
		e.Existing.Label, e.Existing.Start, e.Existing.End)
}

func (e *OverlapError) Is(target error) bool { return target == ErrOverlap }

// NotFoundError reports a remove or update target that does not exist.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ValidationError reports bad caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
