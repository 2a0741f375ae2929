// Package types defines the core data structures for tix tickets.
package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyTitle is returned when a ticket would be created or updated with a blank title.
var ErrEmptyTitle = errors.New("title must not be empty")

// Ticket represents a trackable work item.
type Ticket struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Assignee    *string   `json:"assignee"` // nil means unassigned
}

// AssigneeOr returns the assignee, or fallback when the ticket is unassigned.
func (t *Ticket) AssigneeOr(fallback string) string {
	if t.Assignee == nil {
		return fallback
	}
	return *t.Assignee
}

// Clone returns a deep copy of the ticket.
func (t *Ticket) Clone() *Ticket {
	c := *t
	if t.Assignee != nil {
		a := *t.Assignee
		c.Assignee = &a
	}
	return &c
}

// Validate checks the field-level invariants of a ticket.
func (t *Ticket) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("ticket id must not be empty")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Status.IsValid() {
		return &InvalidStatusError{Input: string(t.Status)}
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return fmt.Errorf("ticket %s: updated_at %s is before created_at %s",
			t.ID, t.UpdatedAt.Format(time.RFC3339), t.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

// Touch sets UpdatedAt to now, bumping it past the previous value when the
// clock has not advanced so that every mutation is observable.
func (t *Ticket) Touch(now time.Time) {
	now = now.UTC()
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = now
}
