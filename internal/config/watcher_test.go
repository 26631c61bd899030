package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestNewWatcherRequiresPath(t *testing.T) {
	store, err := NewStore("")
	require.NoError(t, err)
	_, err = NewWatcher(store)
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestWatcherReloads(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: 2\n"), 0o644))

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Load())

	changes := make(chan Change, 4)
	store.Subscribe(func(c Change) { changes <- c })

	reloadErrs := make(chan error, 4)
	w, err := NewWatcher(store,
		WithDebounce(50*time.Millisecond),
		WithErrorHandler(func(err error) { reloadErrs <- err }),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("Run returned early: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher not ready")
	}

	require.NoError(t, os.WriteFile(path, []byte("precision: 5\n"), 0o644))
	select {
	case c := <-changes:
		assert.Equal(t, SourceFile, c.Source)
		assert.Equal(t, 5, c.New.Precision)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload after write")
	}

	require.NoError(t, os.WriteFile(path, []byte("precision: 50\n"), 0o644))
	select {
	case err := <-reloadErrs:
		assert.ErrorIs(t, err, ErrValidationFailed)
	case <-time.After(3 * time.Second):
		t.Fatal("no reload error for an invalid file")
	}
	assert.Equal(t, 5, store.Settings().Precision)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))

	cancel()
	require.NoError(t, <-done)
}
