package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for unknown course/entry/booking ids.
var ErrNotFound = errors.New("not found")

// ConfigurationError rejects invalid scheduling input (bad weekday token,
// slot ids outside the catalog) before any generation happens.
type ConfigurationError struct {
	Field  string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
}

type RejectReason string

const (
	RejectDayConflict         RejectReason = "day_conflict"
	RejectSlotConflict        RejectReason = "slot_conflict"
	RejectLiveCourseImmutable RejectReason = "live_course_immutable"
	RejectPastDate            RejectReason = "past_date"
)

// ConflictError is a structured rejection of a reschedule or enrollment
// attempt. The caller is expected to map Reason to a specific message.
type ConflictError struct {
	Reason  RejectReason
	Weekday string
	SlotIDs []int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("rejected: %s", e.Reason)
}

// AsConflictError unwraps err into a ConflictError, if it is one.
func AsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// DataUnavailableError marks a failed read of an external store where the
// operation cannot proceed without the data.
type DataUnavailableError struct {
	Op  string
	Err error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("%s: data unavailable: %v", e.Op, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }
