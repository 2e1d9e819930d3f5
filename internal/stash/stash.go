// Package stash holds the in-memory view of a repository's stash stack.
//
// A List is a read-only snapshot. It is rebuilt from a fresh listing after
// every mutation and never patched in place: stash indices are positional
// and shift whenever an entry is removed, so they are only meaningful
// against the snapshot they came from.
package stash

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// ErrNonContiguous is returned by NewList when entry indices are not 0..N-1.
var ErrNonContiguous = errors.New("stash indices are not contiguous")

// Entry is a single stash record.
type Entry struct {
	Index     int       // Position in the stack, 0 = most recent.
	Hash      string    // Stash commit id, used to detect index drift.
	Branch    string    // Branch the stash was taken on, "unknown" if not recorded.
	Message   string    // User message, or git's default "WIP" summary.
	Subject   string    // Raw reflog subject as reported by git.
	CreatedAt time.Time // Zero when git did not report a timestamp.
}

// Ref returns the git revision naming this entry.
func (e Entry) Ref() string { return Ref(e.Index) }

// Ref formats a stash index as a git revision.
func Ref(index int) string { return fmt.Sprintf("stash@{%d}", index) }

// RelativeAge renders the entry's age relative to now, e.g. "3 hours ago".
func (e Entry) RelativeAge(now time.Time) string {
	if e.CreatedAt.IsZero() {
		return ""
	}
	if now.Before(e.CreatedAt) {
		return "just now"
	}
	return humanize.RelTime(e.CreatedAt, now, "ago", "from now")
}

// SearchText is the string the fuzzy filter matches against.
func (e Entry) SearchText() string {
	return e.Branch + " " + e.Message
}

// List is an ordered, immutable snapshot of the stash stack.
type List struct {
	entries []Entry
}

// NewList validates that entries are in stack order with contiguous
// indices starting at zero and wraps them in a List.
func NewList(entries []Entry) (List, error) {
	for i, e := range entries {
		if e.Index != i {
			return List{}, fmt.Errorf("%w: position %d holds %s", ErrNonContiguous, i, e.Ref())
		}
	}
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return List{entries: cp}, nil
}

// Len returns the number of entries.
func (l List) Len() int { return len(l.entries) }

// At returns the entry at index i. ok is false when i is out of range.
func (l List) At(i int) (Entry, bool) {
	if i < 0 || i >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Entries returns a copy of the entries in stack order.
func (l List) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Contains reports whether the stash identified by hash still sits at index.
// An empty hash only checks that the index exists.
func (l List) Contains(index int, hash string) bool {
	e, ok := l.At(index)
	if !ok {
		return false
	}
	return hash == "" || e.Hash == hash
}

// Find returns the current index of the stash with the given hash, or -1.
func (l List) Find(hash string) int {
	if hash == "" {
		return -1
	}
	for _, e := range l.entries {
		if e.Hash == hash {
			return e.Index
		}
	}
	return -1
}
