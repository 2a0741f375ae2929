package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tixcli/tix/internal/lockfile"
)

func TestFileRepositoryMissingFile(t *testing.T) {
	ctx := context.Background()

	t.Run("InitMissing loads an empty store without creating the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "tickets.json")
		repo := NewFileRepository(path)

		s, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())

		_, statErr := os.Stat(path)
		assert.True(t, errors.Is(statErr, fs.ErrNotExist), "Load must not create the data file")
		_, statErr = os.Stat(filepath.Dir(path))
		assert.True(t, errors.Is(statErr, fs.ErrNotExist), "Load must not create the data directory")
	})

	t.Run("without InitMissing a missing file is an IOError", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tickets.json")
		repo := NewFileRepository(path)
		repo.InitMissing = false

		_, err := repo.Load(ctx)
		var ioErr *IOError
		require.ErrorAs(t, err, &ioErr)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("corrupt file is never replaced by an empty store", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tickets.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

		_, err := NewFileRepository(path).Load(ctx)
		var decErr *DeserializationError
		assert.ErrorAs(t, err, &decErr)
	})
}

func TestFileRepositorySaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "tickets.json")
	repo := NewFileRepository(path)
	assert.Equal(t, path, repo.Path())

	s := New()
	s.Add(newTicket("a", "first", 0))
	require.NoError(t, repo.Save(ctx, s))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	got, ok := loaded.Get("a")
	require.True(t, ok)
	assert.Equal(t, "first", got.Title)
}

func TestFileRepositoryLock(t *testing.T) {
	ctx := context.Background()

	t.Run("shared lock on missing directory is a no-op", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "tickets.json")
		repo := NewFileRepository(path)

		unlock, err := repo.Lock(ctx, false)
		require.NoError(t, err)
		require.NoError(t, unlock())

		_, statErr := os.Stat(filepath.Dir(path))
		assert.True(t, errors.Is(statErr, fs.ErrNotExist))
	})

	t.Run("exclusive lock excludes a second writer", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "tickets.json")
		first := NewFileRepository(path)
		second := NewFileRepository(path)
		second.LockTimeout = 100 * time.Millisecond

		unlock, err := first.Lock(ctx, true)
		require.NoError(t, err)

		_, err = second.Lock(ctx, true)
		assert.ErrorIs(t, err, lockfile.ErrLockTimeout)

		_, err = second.Lock(ctx, false)
		assert.ErrorIs(t, err, lockfile.ErrLockTimeout)

		require.NoError(t, unlock())

		unlock2, err := second.Lock(ctx, true)
		require.NoError(t, err)
		require.NoError(t, unlock2())
	})
}

func TestFileRepositoryReadOnlyDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")
	path := filepath.Join(dir, "tickets.json")
	repo := NewFileRepository(path)
	repo.LockTimeout = 100 * time.Millisecond

	s := New()
	s.Add(newTicket("a", "first", 0))
	require.NoError(t, repo.Save(ctx, s))

	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, dirPerms) })

	unlock, err := repo.Lock(ctx, false)
	require.NoError(t, err)
	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
	require.NoError(t, unlock())

	_, statErr := os.Stat(repo.LockPath())
	assert.True(t, errors.Is(statErr, fs.ErrNotExist), "no lock file in a read-only directory")

	_, err = repo.Lock(ctx, true)
	assert.ErrorIs(t, err, fs.ErrPermission)
}
