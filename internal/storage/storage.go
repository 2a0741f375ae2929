// Package storage holds the ticket store and its on-disk JSON document.
//
// A Store is a plain in-memory map from ticket id to ticket. It is the only
// owner of the tickets it holds: Get hands out a pointer into the map so
// callers edit tickets in place, and nothing else keeps copies. A Store is
// built once per process from the data file, mutated, and written back as a
// whole.
//
// Store is not safe for concurrent use. Cross-process coordination is the
// job of Repository.Lock.
package storage

import (
	"sort"

	"github.com/tixcli/tix/internal/types"
)

// Store is the collection of all tickets, keyed by id.
type Store struct {
	tickets map[string]*types.Ticket
}

// New returns an empty store.
func New() *Store {
	return &Store{tickets: make(map[string]*types.Ticket)}
}

// Add inserts the ticket, silently replacing any ticket with the same id.
// Uniqueness comes from id generation, not from this call.
func (s *Store) Add(t *types.Ticket) {
	s.tickets[t.ID] = t
}

// Get returns the ticket for id and whether it exists. The returned pointer
// is the stored ticket; field writes through it change the store.
func (s *Store) Get(id string) (*types.Ticket, bool) {
	t, ok := s.tickets[id]
	return t, ok
}

// List returns every ticket exactly once, in no particular order.
func (s *Store) List() []*types.Ticket {
	out := make([]*types.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, t)
	}
	return out
}

// Sorted returns every ticket ordered by creation time, then id.
func (s *Store) Sorted() []*types.Ticket {
	out := s.List()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of tickets.
func (s *Store) Len() int {
	return len(s.tickets)
}
