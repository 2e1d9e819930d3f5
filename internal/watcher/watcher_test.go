package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsStashPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/repo/.git/refs/stash", true},
		{"/repo/.git/logs/refs/stash", true},
		{"/repo/.git/packed-refs", true},
		{"/repo/.git/HEAD", true},
		{"/repo/.git/refs/stash.lock", false},
		{"/repo/.git/packed-refs.lock", false},
		{"/repo/.git/index", false},
		{"/repo/.git/ORIG_HEAD", false},
		{"/repo/.git/refs/heads", false},
		{"/repo/.git/COMMIT_EDITMSG", false},
		{"/repo/.git/.#stash", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isStashPath(tt.path))
		})
	}
}

func TestWatch_StashRefChange(t *testing.T) {
	gitDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "refs"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "logs", "refs"), 0o755))

	ch, stop, err := Watch(gitDir, 20*time.Millisecond)
	require.NoError(t, err)
	defer stop()

	// Unrelated writes do not fire.
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "index"), []byte("x"), 0o644))
	select {
	case <-ch:
		t.Fatal("unexpected event for index change")
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "refs", "stash"), []byte("abc\n"), 0o644))
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatal("no event after refs/stash changed")
	}
}

func TestWatch_BurstCoalesced(t *testing.T) {
	gitDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(gitDir, "refs"), 0o755))

	ch, stop, err := Watch(gitDir, 100*time.Millisecond)
	require.NoError(t, err)
	defer stop()

	ref := filepath.Join(gitDir, "refs", "stash")
	for i := range 5 {
		require.NoError(t, os.WriteFile(ref, []byte{byte('a' + i)}, 0o644))
	}

	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatal("no event after burst")
	}
	select {
	case <-ch:
		t.Fatal("burst produced more than one event")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatch_StopClosesChannel(t *testing.T) {
	ch, stop, err := Watch(t.TempDir(), time.Millisecond)
	require.NoError(t, err)
	stop()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after stop")
	}
}
