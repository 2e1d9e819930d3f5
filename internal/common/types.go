// Package common holds the messages and the view-model shared between the
// controller, the renderer and the background refresh source.
package common

import tea "github.com/charmbracelet/bubbletea"

// ── Modes ───────────────────────────────────────────────────────────────────

// Mode identifies which screen the controller is in.
type Mode int

const (
	ModeList Mode = iota
	ModeDiff
	ModeFiles
	ModeSearch
	ModeNewStash
	ModeConfirm
)

var modeNames = [...]string{"list", "diff", "files", "search", "new-stash", "confirm"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// IsPreview reports whether the mode shows a single stash entry.
func (m Mode) IsPreview() bool { return m == ModeDiff || m == ModeFiles }

// ── Custom messages ─────────────────────────────────────────────────────────

// RefreshMsg asks the controller to re-list stashes. The file watcher sends
// it when the stash ref changes outside the session.
type RefreshMsg struct{}

// CmdRefresh returns a RefreshMsg (use as return from tea.Cmd).
func CmdRefresh() tea.Msg { return RefreshMsg{} }

// ── View-model ──────────────────────────────────────────────────────────────

// ViewModel is an immutable snapshot of everything the renderer draws.
// It carries no screen coordinates beyond the terminal size.
type ViewModel struct {
	Mode   Mode
	Width  int
	Height int

	Loading bool   // First listing has not arrived yet.
	Repo    string // Repository root.
	Branch  string // Current branch or short hash.
	Total   int    // Entries in the full stack.

	Rows      []EntryRow // Visible rows in display order.
	Cursor    int        // Position of the selection within Rows.
	Filter    string     // Committed or live query, empty when unfiltered.
	Searching bool       // Filter is being edited.
	Input     string     // Rendered text input for Search and NewStash.

	Preview Preview
	Form    Form
	Confirm Confirm

	Status    Status
	Busy      bool
	BusyLabel string // e.g. "⣾ popping stash@{1}"
	ShowHelp  bool
	Keys      []KeyHint // Hints for the footer, by mode.
	Help      []HelpSection
}

// EntryRow is one stash in the list.
type EntryRow struct {
	Index    int
	Ref      string
	Branch   string
	Message  string
	Age      string
	Selected bool
	Matches  []int // Byte offsets into Branch+" "+Message that matched the filter.
}

// Preview is the diff or file listing of one entry.
type Preview struct {
	Ref     string
	Title   string
	Lines   []PreviewLine
	Scroll  int
	Height  int // Rows available for Lines.
	Loading bool
	Partial bool
	Summary string // e.g. "3 files, +12 −4"
}

// LineStyle tells the renderer how to colour a preview line.
type LineStyle int

const (
	LineContext LineStyle = iota
	LineAdded
	LineRemoved
	LineMeta
	LineHunk
	LineFileAdded
	LineFileModified
	LineFileDeleted
	LineFileRenamed
)

// PreviewLine is one line of preview content.
type PreviewLine struct {
	Style LineStyle
	Text  string
}

// Form is the new-stash form.
type Form struct {
	IncludeUntracked bool
	RequireMessage   bool
}

// Confirm is a pending pop or drop.
type Confirm struct {
	Action  string // "pop" or "drop"
	Ref     string
	Message string
}

// Status is the transient message line.
type Status struct {
	Text    string
	IsError bool
}

// KeyHint is a key and what it does in the current mode.
type KeyHint struct {
	Key  string
	Desc string
}

// HelpSection groups hints in the help overlay.
type HelpSection struct {
	Title string
	Keys  []KeyHint
}
