// Package dispatch executes tix commands against a ticket repository.
//
// Every command is one transaction: take the repository lock, load the whole
// store, operate, save when the command mutates, render the result. Nothing
// is written unless every supplied field has been validated first.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/tixcli/tix/internal/idgen"
	"github.com/tixcli/tix/internal/storage"
	"github.com/tixcli/tix/internal/types"
)

// maxIDAttempts bounds regeneration when a fresh id collides with a stored one.
const maxIDAttempts = 5

// Dispatcher runs requests against one repository.
type Dispatcher struct {
	Repo storage.Repository

	// Out receives rendered results. Defaults to os.Stdout.
	Out io.Writer
	// JSON switches rendering to indented JSON.
	JSON bool
	// Quiet drops the create and update confirmations in text mode.
	// Query results and JSON documents are always written.
	Quiet bool

	// Now and NewID default to the wall clock and random UUIDs.
	Now   func() time.Time
	NewID func() string

	Logger *slog.Logger
}

// New returns a dispatcher for repo with default clock, ids and output.
func New(repo storage.Repository) *Dispatcher {
	return &Dispatcher{Repo: repo}
}

// Dispatch runs req and renders its outcome. A missing ticket on view or
// update is rendered and is not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) error {
	d.logger().Debug("dispatching", "command", fmt.Sprintf("%T", req), "path", d.Repo.Path())

	var err error
	switch r := req.(type) {
	case CreateRequest:
		var t *types.Ticket
		if t, err = d.Create(ctx, r); err == nil {
			err = d.renderCreated(t)
		}
	case ListRequest:
		var tickets []*types.Ticket
		if tickets, err = d.List(ctx, r); err == nil {
			err = d.renderList(tickets)
		}
	case ViewRequest:
		var t *types.Ticket
		if t, err = d.View(ctx, r); err == nil {
			err = d.renderTicket(t)
		}
	case UpdateRequest:
		var t *types.Ticket
		if t, err = d.Update(ctx, r); err == nil {
			err = d.renderUpdated(t)
		}
	default:
		return fmt.Errorf("unsupported request type %T", req)
	}

	var nf *NotFoundError
	if errors.As(err, &nf) {
		return d.renderNotFound(nf.ID)
	}
	return err
}

// Create stores a new TODO ticket and returns a copy of it.
func (d *Dispatcher) Create(ctx context.Context, req CreateRequest) (*types.Ticket, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, types.ErrEmptyTitle
	}

	var created *types.Ticket
	err := d.transact(ctx, req.Mutates(), func(s *storage.Store) (bool, error) {
		id, err := d.uniqueID(s)
		if err != nil {
			return false, err
		}
		now := d.now()
		t := &types.Ticket{
			ID:          id,
			Title:       req.Title,
			Description: req.Description,
			Status:      types.StatusTodo,
			CreatedAt:   now,
			UpdatedAt:   now,
			Assignee:    cloneString(req.Assignee),
		}
		s.Add(t)
		created = t.Clone()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	d.logger().Debug("created ticket", "id", created.ID)
	return created, nil
}

// List returns every ticket, in store order unless req.Sort is set.
func (d *Dispatcher) List(ctx context.Context, req ListRequest) ([]*types.Ticket, error) {
	var tickets []*types.Ticket
	err := d.transact(ctx, req.Mutates(), func(s *storage.Store) (bool, error) {
		if req.Sort {
			tickets = s.Sorted()
		} else {
			tickets = s.List()
		}
		return false, nil
	})
	return tickets, err
}

// View returns one ticket, or a *NotFoundError.
func (d *Dispatcher) View(ctx context.Context, req ViewRequest) (*types.Ticket, error) {
	var found *types.Ticket
	err := d.transact(ctx, req.Mutates(), func(s *storage.Store) (bool, error) {
		t, ok := s.Get(req.ID)
		if !ok {
			return false, &NotFoundError{ID: req.ID}
		}
		found = t.Clone()
		return false, nil
	})
	return found, err
}

// Update applies the supplied fields to one ticket and refreshes UpdatedAt.
// All inputs are validated before the ticket is touched, so a failure leaves
// both the store and the data file unchanged.
func (d *Dispatcher) Update(ctx context.Context, req UpdateRequest) (*types.Ticket, error) {
	var status types.Status
	if req.Status != nil {
		var err error
		if status, err = types.ParseStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, types.ErrEmptyTitle
	}
	if !req.HasChanges() {
		d.logger().Debug("no fields supplied, refreshing updated_at only", "id", req.ID)
	}

	var updated *types.Ticket
	err := d.transact(ctx, req.Mutates(), func(s *storage.Store) (bool, error) {
		t, ok := s.Get(req.ID)
		if !ok {
			return false, &NotFoundError{ID: req.ID}
		}
		if req.Title != nil {
			t.Title = *req.Title
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.Status != nil {
			t.Status = status
		}
		if req.Assignee != nil {
			t.Assignee = cloneString(req.Assignee)
		}
		t.Touch(d.now())
		updated = t.Clone()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	d.logger().Debug("updated ticket", "id", updated.ID, "status", updated.Status)
	return updated, nil
}

// transact runs fn under the repository lock against a freshly loaded store
// and saves when fn reports a change. The lock is exclusive for requests
// that mutate and shared otherwise. Errors from fn abort without saving.
func (d *Dispatcher) transact(ctx context.Context, exclusive bool, fn func(*storage.Store) (bool, error)) (err error) {
	unlock, err := d.Repo.Lock(ctx, exclusive)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := unlock(); uerr != nil && err == nil {
			err = fmt.Errorf("releasing lock: %w", uerr)
		}
	}()

	s, err := d.Repo.Load(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(s)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return d.Repo.Save(ctx, s)
}

func (d *Dispatcher) uniqueID(s *storage.Store) (string, error) {
	newID := d.NewID
	if newID == nil {
		newID = idgen.NewTicketID
	}
	for i := 0; i < maxIDAttempts; i++ {
		id := newID()
		if _, exists := s.Get(id); !exists {
			return id, nil
		}
		d.logger().Debug("generated id already in use, retrying", "id", id)
	}
	return "", fmt.Errorf("could not generate an unused ticket id after %d attempts", maxIDAttempts)
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now().UTC()
	}
	return time.Now().UTC()
}

func (d *Dispatcher) out() io.Writer {
	if d.Out == nil {
		return os.Stdout
	}
	return d.Out
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
