package types

import (
	"errors"
	"fmt"
	"strings"
)

// Status represents the workflow label of a ticket.
// Any status may be assigned from any other; there is no enforced graph.
type Status string

// Ticket status constants
const (
	StatusTodo     Status = "TODO"
	StatusProgress Status = "PROGRESS"
	StatusDone     Status = "DONE"
)

// ErrInvalidStatus matches any *InvalidStatusError via errors.Is.
var ErrInvalidStatus = errors.New("invalid status")

// InvalidStatusError reports a status string that is not one of the known tags.
type InvalidStatusError struct {
	Input string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status not supported: %s", e.Input)
}

// Is lets errors.Is(err, ErrInvalidStatus) match.
func (e *InvalidStatusError) Is(target error) bool {
	return target == ErrInvalidStatus
}

// AllStatuses returns the statuses in workflow order.
func AllStatuses() []Status {
	return []Status{StatusTodo, StatusProgress, StatusDone}
}

// IsValid checks if the status value is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusProgress, StatusDone:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus converts user input to a Status. Matching is case-insensitive
// on the literal tags; anything else yields an *InvalidStatusError carrying
// the input unchanged.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(s) {
	case "TODO":
		return StatusTodo, nil
	case "PROGRESS":
		return StatusProgress, nil
	case "DONE":
		return StatusDone, nil
	}
	return "", &InvalidStatusError{Input: s}
}

// UnmarshalText accepts only the exact uppercase tags used on disk.
func (s *Status) UnmarshalText(text []byte) error {
	v := Status(text)
	if !v.IsValid() {
		return &InvalidStatusError{Input: string(text)}
	}
	*s = v
	return nil
}

// MarshalText rejects statuses that could not be read back.
func (s Status) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, &InvalidStatusError{Input: string(s)}
	}
	return []byte(s), nil
}
