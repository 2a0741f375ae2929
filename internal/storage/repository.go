package storage

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/tixcli/tix/internal/lockfile"
)

// Repository binds a Store to its durable location.
// Consumers depend on this interface so that decorators (telemetry) and
// test doubles can be substituted for the file-backed implementation.
type Repository interface {
	// Path returns the data file location.
	Path() string
	// Lock takes the cross-process lock, exclusive for writers and shared
	// for readers. The returned func releases it.
	Lock(ctx context.Context, exclusive bool) (unlock func() error, err error)
	// Load reads the whole store.
	Load(ctx context.Context) (*Store, error)
	// Save replaces the persisted store with s.
	Save(ctx context.Context, s *Store) error
}

// FileRepository keeps the store in a single JSON file.
type FileRepository struct {
	path string

	// InitMissing makes Load return an empty store, without creating the
	// file, when the data file does not exist yet. When false a missing file
	// is an IOError.
	InitMissing bool

	// LockTimeout bounds how long Lock waits for another process.
	// Zero means a single non-blocking attempt.
	LockTimeout time.Duration

	Logger *slog.Logger
}

// NewFileRepository returns a repository for the data file at path with
// first-run initialization enabled.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path:        path,
		InitMissing: true,
		LockTimeout: 30 * time.Second,
	}
}

// Path returns the data file location.
func (r *FileRepository) Path() string {
	return r.path
}

// LockPath returns the sidecar lock file location.
func (r *FileRepository) LockPath() string {
	return r.path + ".lock"
}

// Lock acquires the advisory lock on the data file.
//
// A shared lock on a data directory that does not exist yet is a no-op:
// there is nothing to read and readers must not create directories.
// An exclusive lock creates the directory, since a save will follow.
// Likewise a shared lock whose lock file cannot be created because the
// directory is read-only falls back to an unlocked read; no writer can
// be running there either.
func (r *FileRepository) Lock(ctx context.Context, exclusive bool) (func() error, error) {
	dir := filepath.Dir(r.path)
	if exclusive {
		if err := os.MkdirAll(dir, dirPerms); err != nil {
			return nil, &IOError{Op: "mkdir", Path: dir, Err: unwrapPathError(err)}
		}
	} else if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		r.logger().Debug("data directory missing, skipping shared lock", "dir", dir)
		return func() error { return nil }, nil
	}

	l := lockfile.New(r.LockPath())
	var err error
	if exclusive {
		err = l.AcquireExclusive(ctx, r.LockTimeout)
	} else {
		err = l.AcquireShared(ctx, r.LockTimeout)
	}
	if err != nil {
		if !exclusive && isReadOnly(err) {
			r.logger().Debug("data directory is read-only, reading without a lock", "dir", dir, "error", err)
			return func() error { return nil }, nil
		}
		return nil, err
	}
	r.logger().Debug("acquired lock", "mode", l.Mode(), "path", l.Path())
	return func() error {
		r.logger().Debug("releasing lock", "mode", l.Mode(), "path", l.Path())
		return l.Release()
	}, nil
}

// isReadOnly reports whether err means the lock file could not be created
// for lack of write access.
func isReadOnly(err error) bool {
	return errors.Is(err, fs.ErrPermission) || errors.Is(err, syscall.EROFS)
}

// Load reads the store from disk, or returns an empty store for a missing
// file when InitMissing is set.
func (r *FileRepository) Load(_ context.Context) (*Store, error) {
	s, err := Load(r.path)
	if err != nil {
		if r.InitMissing && errors.Is(err, fs.ErrNotExist) {
			r.logger().Debug("data file missing, starting with an empty store", "path", r.path)
			return New(), nil
		}
		return nil, err
	}
	r.logger().Debug("loaded store", "path", r.path, "tickets", s.Len())
	return s, nil
}

// Save writes s over the data file.
func (r *FileRepository) Save(_ context.Context, s *Store) error {
	if err := s.Save(r.path); err != nil {
		return err
	}
	r.logger().Debug("saved store", "path", r.path, "tickets", s.Len())
	return nil
}

func (r *FileRepository) logger() *slog.Logger {
	if r.Logger == nil {
		return discardLogger
	}
	return r.Logger
}

var discardLogger = slog.New(slog.DiscardHandler)
