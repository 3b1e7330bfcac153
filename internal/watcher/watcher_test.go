package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(50 * time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func waitChange(t *testing.T, w *Watcher) Change {
	t.Helper()
	select {
	case c := <-w.Changes():
		return c
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
		return Change{}
	}
}

func TestWatchDirCoalesces(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)
	require.NoError(t, w.WatchDir(dir))

	a := filepath.Join(dir, "A.xml")
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(a, []byte("<shelf/>"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	c := waitChange(t, w)
	abs, _ := filepath.Abs(a)
	assert.Equal(t, []string{abs}, c.Paths)

	select {
	case extra := <-w.Changes():
		t.Fatalf("unexpected second change %v", extra.Paths)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t)

	target := filepath.Join(dir, "Macros.xml")
	require.NoError(t, w.WatchFile(target))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Other.xml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("<toolboxmacros/>"), 0o644))

	c := waitChange(t, w)
	abs, _ := filepath.Abs(target)
	assert.Equal(t, []string{abs}, c.Paths)
}

func TestWatchErrors(t *testing.T) {
	w := newTestWatcher(t)
	missing := filepath.Join(t.TempDir(), "missing")

	assert.ErrorIs(t, w.WatchDir(missing), ErrPathNotExist)
	assert.ErrorIs(t, w.WatchFile(filepath.Join(missing, "Macros.xml")), ErrPathNotExist)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.WatchDir(t.TempDir()), ErrWatcherClosed)

	_, ok := <-w.Changes()
	assert.False(t, ok)
}
