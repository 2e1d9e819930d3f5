package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/diff"
)

// gitEnv isolates test repositories from the user's git configuration.
func gitEnv(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_AUTHOR_NAME", "Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
}

func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
}

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newRepo(t *testing.T) string {
	t.Helper()
	gitEnv(t)
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	gitCmd(t, dir, "init", "-q")
	gitCmd(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	write(t, filepath.Join(dir, "a.txt"), "one\ntwo\n")
	gitCmd(t, dir, "add", "a.txt")
	gitCmd(t, dir, "commit", "-q", "-m", "initial")
	return dir
}

func TestNewCLIService_NotARepo(t *testing.T) {
	gitEnv(t)
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, err := NewCLIService(dir, CLIOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotARepo)
	assert.True(t, IsFatal(err))

	_, err = NewCLIService(filepath.Join(dir, "missing"), CLIOptions{})
	assert.ErrorIs(t, err, ErrNotARepo)
}

func TestCLIService_StashLifecycle(t *testing.T) {
	dir := newRepo(t)
	svc, err := NewCLIService(dir, CLIOptions{Timeout: 10 * time.Second, ContextLines: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, svc.GitDir())

	head, err := svc.Head()
	require.NoError(t, err)
	assert.Equal(t, "main", head)

	list, err := svc.StashList()
	require.NoError(t, err)
	assert.Zero(t, list.Len())

	write(t, filepath.Join(dir, "a.txt"), "one\nTWO\n")
	require.NoError(t, svc.StashSave("first change", false))

	write(t, filepath.Join(dir, "a.txt"), "one\ntwo\nthree\n")
	write(t, filepath.Join(dir, "new.txt"), "untracked\n")
	require.NoError(t, svc.StashSave("", true))

	list, err = svc.StashList()
	require.NoError(t, err)
	require.Equal(t, 2, list.Len())
	newest, _ := list.At(0)
	oldest, _ := list.At(1)
	assert.Equal(t, "main", newest.Branch)
	assert.Equal(t, "first change", oldest.Message)
	assert.NotEmpty(t, oldest.Hash)
	assert.False(t, oldest.CreatedAt.IsZero())

	doc, err := svc.StashShow(1)
	require.NoError(t, err)
	assert.False(t, doc.Partial)
	assert.Equal(t, diff.Stats{Files: 1, Insertions: 1, Deletions: 1}, doc.Stats())

	files, err := svc.StashFiles(1)
	require.NoError(t, err)
	require.False(t, files.Partial)
	require.Equal(t, 1, files.Len())
	assert.Equal(t, "a.txt", files.Files[0].Path)
	assert.Equal(t, diff.ChangeModified, files.Files[0].Change)

	require.NoError(t, svc.StashDrop(0))
	list, err = svc.StashList()
	require.NoError(t, err)
	require.Equal(t, 1, list.Len())

	require.NoError(t, svc.StashApply(0, false))
	list, err = svc.StashList()
	require.NoError(t, err)
	assert.Equal(t, 1, list.Len(), "apply keeps the entry")

	gitCmd(t, dir, "checkout", "--", "a.txt")
	require.NoError(t, svc.StashApply(0, true))
	list, err = svc.StashList()
	require.NoError(t, err)
	assert.Zero(t, list.Len(), "pop removes the entry")

	assert.ErrorIs(t, svc.StashDrop(5), ErrIndexGone)
	_, err = svc.StashShow(5)
	assert.ErrorIs(t, err, ErrIndexGone)

	gitCmd(t, dir, "checkout", "--", "a.txt")
	assert.ErrorIs(t, svc.StashSave("nothing", false), ErrNothingToStash)
}
