// Package idgen generates ticket identifiers.
package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// NewTicketID returns a random (version 4) UUID in canonical form.
func NewTicketID() string {
	return uuid.NewString()
}

// IsTicketID reports whether s looks like an id produced by NewTicketID.
// Lookups never require this; it only drives the hint printed for malformed
// ids on view and update.
func IsTicketID(s string) bool {
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	// uuid.Parse also accepts urn and braced forms.
	return u.String() == strings.ToLower(s)
}
