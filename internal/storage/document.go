package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"

	"github.com/tixcli/tix/internal/types"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// document is the on-disk shape: {"tickets": {"<id>": {...}}}.
type document struct {
	Tickets map[string]*types.Ticket `json:"tickets"`
}

// wireDocument mirrors document with pointer fields so that missing keys
// can be told apart from zero values while decoding.
type wireDocument struct {
	Tickets *map[string]wireTicket `json:"tickets"`
}

type wireTicket struct {
	ID          *string       `json:"id"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Status      *types.Status `json:"status"`
	CreatedAt   *time.Time    `json:"created_at"`
	UpdatedAt   *time.Time    `json:"updated_at"`
	Assignee    *string       `json:"assignee"` // null and absent both mean unassigned
}

// Load reads the data file at path and reconstructs the store it describes.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is the configured data file
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: unwrapPathError(err)}
	}
	s, err := Decode(data)
	if err != nil {
		return nil, &DeserializationError{Path: path, Err: err}
	}
	return s, nil
}

// Save writes the whole store to path as indented JSON, replacing the file
// atomically. Missing parent directories are created.
func (s *Store) Save(path string) error {
	data, err := s.Encode()
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirPerms); err != nil {
			return &IOError{Op: "mkdir", Path: dir, Err: unwrapPathError(err)}
		}
	}

	_, statErr := os.Stat(path)
	isNew := errors.Is(statErr, fs.ErrNotExist)

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	// atomic.WriteFile leaves new files with temp-file permissions.
	if isNew {
		if err := os.Chmod(path, filePerms); err != nil {
			return &IOError{Op: "write", Path: path, Err: unwrapPathError(err)}
		}
	}
	return nil
}

// Encode serializes the store to the indented JSON document.
func (s *Store) Encode() ([]byte, error) {
	return json.MarshalIndent(document{Tickets: s.tickets}, "", "  ")
}

// Decode parses a JSON document into a store, checking that every ticket
// carries all required fields, satisfies Ticket.Validate and is filed
// under its own id.
func Decode(data []byte) (*Store, error) {
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Tickets == nil {
		return nil, errors.New(`missing field "tickets"`)
	}

	s := New()
	for key, w := range *doc.Tickets {
		t, err := w.ticket()
		if err != nil {
			return nil, fmt.Errorf("ticket %q: %w", key, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("ticket %q: %w", key, err)
		}
		if t.ID != key {
			return nil, fmt.Errorf("ticket %q: stored under mismatched id %q", t.ID, key)
		}
		s.Add(t)
	}
	return s, nil
}

func (w wireTicket) ticket() (*types.Ticket, error) {
	var missing string
	switch {
	case w.ID == nil:
		missing = "id"
	case w.Title == nil:
		missing = "title"
	case w.Description == nil:
		missing = "description"
	case w.Status == nil:
		missing = "status"
	case w.CreatedAt == nil:
		missing = "created_at"
	case w.UpdatedAt == nil:
		missing = "updated_at"
	}
	if missing != "" {
		return nil, fmt.Errorf("missing field %q", missing)
	}
	return &types.Ticket{
		ID:          *w.ID,
		Title:       *w.Title,
		Description: *w.Description,
		Status:      *w.Status,
		CreatedAt:   w.CreatedAt.UTC(),
		UpdatedAt:   w.UpdatedAt.UTC(),
		Assignee:    w.Assignee,
	}, nil
}

// unwrapPathError strips *fs.PathError since IOError already records the op and path.
func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
