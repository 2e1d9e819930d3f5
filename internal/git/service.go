package git

import (
	"github.com/Akashdeep-Patra/zed-git-stash/internal/diff"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/stash"
)

// Service defines the stash operations the controller depends on.
// The controller never calls exec.Command directly, so tests can drive it
// with an in-memory implementation.
//
// Every method blocks until git returns. Callers on the UI goroutine must
// run them inside a tea.Cmd.
type Service interface {
	// ── Repository info ──────────────────────────────────────────────
	RepoRoot() string
	GitDir() string
	Head() (string, error)

	// ── Stash reads ──────────────────────────────────────────────────
	StashList() (stash.List, error)
	StashShow(index int) (*diff.Document, error)
	StashFiles(index int) (*diff.FileSummary, error)

	// ── Stash writes ─────────────────────────────────────────────────
	// StashApply restores the stash; drop=true removes it afterwards (pop).
	StashApply(index int, drop bool) error
	StashDrop(index int) error
	// StashSave creates a stash; an empty message lets git pick one.
	StashSave(message string, includeUntracked bool) error
}

// Invalidator is implemented by services that cache reads.
type Invalidator interface {
	Invalidate()
}
