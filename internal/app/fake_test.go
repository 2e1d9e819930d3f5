package app

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/config"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/diff"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/git"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/stash"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeStash struct {
	hash, branch, message string
}

// fakeGit is an in-memory stash stack that behaves like git stash.
type fakeGit struct {
	mu       sync.Mutex
	stack    []fakeStash // Index 0 is the top.
	branch   string
	diffText string
	listErr  error
	showErr  error
	writeErr error
	calls    []string
	created  int
}

func newFakeGit(messages ...string) *fakeGit {
	f := &fakeGit{branch: "main", diffText: sampleDiff(3)}
	for i, msg := range messages {
		f.stack = append(f.stack, fakeStash{hash: fmt.Sprintf("h%d", i), branch: "main", message: msg})
	}
	return f
}

func (f *fakeGit) record(call string) {
	f.calls = append(f.calls, call)
}

// writes returns the recorded calls that change the stack.
func (f *fakeGit) writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		if !strings.HasPrefix(c, "list") && !strings.HasPrefix(c, "show") && !strings.HasPrefix(c, "files") {
			out = append(out, c)
		}
	}
	return out
}

// external removes the entry with hash as if another process dropped it.
func (f *fakeGit) external(hash string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.stack {
		if s.hash == hash {
			f.stack = append(f.stack[:i], f.stack[i+1:]...)
			return
		}
	}
}

func (f *fakeGit) RepoRoot() string { return "/repo" }
func (f *fakeGit) GitDir() string   { return "/repo/.git" }

func (f *fakeGit) Head() (string, error) { return f.branch, nil }

func (f *fakeGit) StashList() (stash.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("list")
	if f.listErr != nil {
		return stash.List{}, f.listErr
	}
	entries := make([]stash.Entry, len(f.stack))
	for i, s := range f.stack {
		entries[i] = stash.Entry{
			Index:     i,
			Hash:      s.hash,
			Branch:    s.branch,
			Message:   s.message,
			Subject:   "On " + s.branch + ": " + s.message,
			CreatedAt: testNow.Add(-time.Duration(i+1) * time.Hour),
		}
	}
	return stash.NewList(entries)
}

func (f *fakeGit) gone(op string, index int) error {
	if index < 0 || index >= len(f.stack) {
		return &git.Error{Op: op, Kind: git.ErrIndexGone}
	}
	return nil
}

func (f *fakeGit) StashShow(index int) (*diff.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("show %d", index))
	if f.showErr != nil {
		return nil, f.showErr
	}
	if err := f.gone("stash show", index); err != nil {
		return nil, err
	}
	return diff.Parse(f.diffText), nil
}

func (f *fakeGit) StashFiles(index int) (*diff.FileSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("files %d", index))
	if f.showErr != nil {
		return nil, f.showErr
	}
	if err := f.gone("stash show", index); err != nil {
		return nil, err
	}
	return diff.ParseFileSummary(":100644 100644 1111111 2222222 M\tmain.go\n3\t1\tmain.go\n"), nil
}

func (f *fakeGit) StashApply(index int, drop bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	verb := "apply"
	if drop {
		verb = "pop"
	}
	f.record(fmt.Sprintf("%s %d", verb, index))
	if f.writeErr != nil {
		return f.writeErr
	}
	if err := f.gone("stash "+verb, index); err != nil {
		return err
	}
	if drop {
		f.stack = append(f.stack[:index], f.stack[index+1:]...)
	}
	return nil
}

func (f *fakeGit) StashDrop(index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("drop %d", index))
	if f.writeErr != nil {
		return f.writeErr
	}
	if err := f.gone("stash drop", index); err != nil {
		return err
	}
	f.stack = append(f.stack[:index], f.stack[index+1:]...)
	return nil
}

func (f *fakeGit) StashSave(message string, includeUntracked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("save %q untracked=%t", message, includeUntracked))
	if f.writeErr != nil {
		return f.writeErr
	}
	f.created++
	if message == "" {
		message = "WIP"
	}
	s := fakeStash{hash: fmt.Sprintf("new%d", f.created), branch: f.branch, message: message}
	f.stack = append([]fakeStash{s}, f.stack...)
	return nil
}

// sampleDiff returns a one-file diff with n added lines.
func sampleDiff(n int) string {
	var b strings.Builder
	b.WriteString("diff --git a/main.go b/main.go\n")
	b.WriteString("index 1111111..2222222 100644\n")
	b.WriteString("--- a/main.go\n+++ b/main.go\n")
	fmt.Fprintf(&b, "@@ -1,0 +1,%d @@\n", n)
	for i := range n {
		fmt.Fprintf(&b, "+line %d\n", i)
	}
	return b.String()
}

// harness drives a Model the way the bubbletea runtime would, running
// commands synchronously. Commands that block, such as timers, are
// abandoned after a short wait.
type harness struct {
	t    *testing.T
	m    Model
	git  *fakeGit
	quit bool
}

func newHarness(t *testing.T, f *fakeGit, tweak ...func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.TickInterval = time.Hour
	for _, fn := range tweak {
		fn(cfg)
	}
	m := New(f, cfg)
	m.now = func() time.Time { return testNow }
	m.search.Cursor.SetMode(cursor.CursorStatic)
	m.form.Cursor.SetMode(cursor.CursorStatic)
	h := &harness{t: t, m: m, git: f}
	h.send(tea.WindowSizeMsg{Width: 100, Height: 20})
	h.run(h.m.Init())
	return h
}

// send delivers msg and drains the resulting commands.
func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	cmd := h.update(msg)
	h.run(cmd)
}

// update delivers msg without running the returned command.
func (h *harness) update(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	model, cmd := h.m.Update(msg)
	next, ok := model.(Model)
	require.True(h.t, ok)
	h.m = next
	return cmd
}

func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg, ok := exec(cmd)
	if !ok {
		return
	}
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case tea.QuitMsg:
		h.quit = true
	case spinner.TickMsg, tickMsg:
	default:
		h.send(msg)
	}
}

func exec(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(100 * time.Millisecond):
		return nil, false
	}
}

func (h *harness) press(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		h.send(keyMsg(k))
	}
}

func (h *harness) typeText(s string) {
	h.t.Helper()
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// hashes returns the hashes in display order.
func (h *harness) hashes() []string {
	out := make([]string, 0, len(h.m.order))
	for _, idx := range h.m.order {
		e, _ := h.m.list.At(idx)
		out = append(out, e.Hash)
	}
	return out
}
