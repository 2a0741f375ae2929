package dispatch

import "fmt"

// NotFoundError reports a ticket id with no matching ticket. Dispatch renders
// it as an ordinary outcome rather than a failure.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ticket %s not found", e.ID)
}
