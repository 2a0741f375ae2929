package dispatch

// Request is one validated user command. The CLI layer builds these from
// parsed flags; the set of implementations is closed.
type Request interface {
	// Mutates reports whether the command writes the store.
	Mutates() bool
	isRequest()
}

// CreateRequest adds a new ticket.
type CreateRequest struct {
	Title       string
	Description string
	Assignee    *string
}

// ListRequest shows every ticket.
type ListRequest struct {
	// Sort orders rows by creation time instead of store order.
	Sort bool
}

// ViewRequest shows one ticket in full.
type ViewRequest struct {
	ID string
}

// UpdateRequest changes the supplied fields of one ticket. Nil fields are
// left untouched.
type UpdateRequest struct {
	ID          string
	Title       *string
	Description *string
	Status      *string // parsed with types.ParseStatus
	Assignee    *string
}

// HasChanges reports whether any field was supplied.
func (r UpdateRequest) HasChanges() bool {
	return r.Title != nil || r.Description != nil || r.Status != nil || r.Assignee != nil
}

func (CreateRequest) Mutates() bool { return true }
func (ListRequest) Mutates() bool   { return false }
func (ViewRequest) Mutates() bool   { return false }
func (UpdateRequest) Mutates() bool { return true }

func (CreateRequest) isRequest() {}
func (ListRequest) isRequest()   {}
func (ViewRequest) isRequest()   {}
func (UpdateRequest) isRequest() {}
