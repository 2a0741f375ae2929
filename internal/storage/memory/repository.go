// Package memory implements storage.Repository in process memory.
//
// The store is kept in its encoded document form, so every Load and Save
// goes through the same codec as the file repository. Tests use the error
// hooks to exercise failure paths that are awkward to provoke on disk.
package memory

import (
	"context"
	"io/fs"
	"sync"

	"github.com/tixcli/tix/internal/storage"
)

// Path is the pseudo path reported in errors.
const Path = "memory://tickets.json"

// Repository is an in-memory ticket repository.
type Repository struct {
	txn sync.RWMutex // held between Lock and unlock

	mu    sync.Mutex
	data  []byte // nil until the first save, like a missing file
	saves int

	// InitMissing mirrors storage.FileRepository.InitMissing.
	InitMissing bool

	// LoadErr and SaveErr, when set, fail the next operations with an
	// IOError wrapping them.
	LoadErr error
	SaveErr error
}

// New returns an empty repository that starts as a missing file.
func New() *Repository {
	return &Repository{InitMissing: true}
}

// Path returns a fixed pseudo path.
func (r *Repository) Path() string {
	return Path
}

// Lock takes the in-process transaction lock.
func (r *Repository) Lock(ctx context.Context, exclusive bool) (func() error, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if exclusive {
		r.txn.Lock()
		return func() error { r.txn.Unlock(); return nil }, nil
	}
	r.txn.RLock()
	return func() error { r.txn.RUnlock(); return nil }, nil
}

// Load decodes the stored document.
func (r *Repository) Load(_ context.Context) (*storage.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.LoadErr != nil {
		return nil, &storage.IOError{Op: "read", Path: Path, Err: r.LoadErr}
	}
	if r.data == nil {
		if r.InitMissing {
			return storage.New(), nil
		}
		return nil, &storage.IOError{Op: "read", Path: Path, Err: fs.ErrNotExist}
	}
	s, err := storage.Decode(r.data)
	if err != nil {
		return nil, &storage.DeserializationError{Path: Path, Err: err}
	}
	return s, nil
}

// Save encodes s and replaces the stored document.
func (r *Repository) Save(_ context.Context, s *storage.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.SaveErr != nil {
		return &storage.IOError{Op: "write", Path: Path, Err: r.SaveErr}
	}
	data, err := s.Encode()
	if err != nil {
		return &storage.IOError{Op: "write", Path: Path, Err: err}
	}
	r.data = data
	r.saves++
	return nil
}

// Bytes returns a copy of the stored document, or nil if nothing was saved.
func (r *Repository) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.data == nil {
		return nil
	}
	return append([]byte(nil), r.data...)
}

// SetBytes replaces the stored document verbatim, valid or not.
func (r *Repository) SetBytes(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append([]byte(nil), data...)
}

// Saves reports how many successful saves have happened.
func (r *Repository) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}
