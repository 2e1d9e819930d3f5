package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/common"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/diff"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/git"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/stash"
)

// Every git call runs inside a tea.Cmd, which bubbletea executes on its own
// goroutine. Results come back through the program's message loop and are
// only ever applied by Update.

type (
	// listLoadedMsg carries a fresh listing. seq identifies the fetch.
	listLoadedMsg struct {
		seq    int
		list   stash.List
		branch string
		err    error
	}

	// previewLoadedMsg carries a diff or file summary for one entry.
	previewLoadedMsg struct {
		seq   int
		mode  common.Mode
		index int
		doc   *diff.Document
		files *diff.FileSummary
		err   error
	}

	// mutationDoneMsg reports the outcome of a write.
	mutationDoneMsg struct {
		op  mutation
		err error
	}

	// tickMsg drives status expiry.
	tickMsg time.Time
)

type opKind int

const (
	opApply opKind = iota
	opPop
	opDrop
	opCreate
)

// mutation describes one write against the stash stack.
type mutation struct {
	kind      opKind
	index     int
	ref       string
	message   string
	untracked bool
}

// verb is the progressive form shown while the mutation runs.
func (op mutation) verb() string {
	switch op.kind {
	case opApply:
		return "applying " + op.ref
	case opPop:
		return "popping " + op.ref
	case opDrop:
		return "dropping " + op.ref
	default:
		return "creating stash"
	}
}

// fetchList lists stashes and the current branch. invalidate drops any
// cached listing first.
func fetchList(svc git.Service, seq int, invalidate bool) tea.Cmd {
	return func() tea.Msg {
		if inv, ok := svc.(git.Invalidator); ok && invalidate {
			inv.Invalidate()
		}
		list, err := svc.StashList()
		branch, _ := svc.Head()
		return listLoadedMsg{seq: seq, list: list, branch: branch, err: err}
	}
}

// fetchPreview loads the diff or the file summary for index.
func fetchPreview(svc git.Service, seq int, mode common.Mode, index int) tea.Cmd {
	return func() tea.Msg {
		msg := previewLoadedMsg{seq: seq, mode: mode, index: index}
		if mode == common.ModeFiles {
			msg.files, msg.err = svc.StashFiles(index)
		} else {
			msg.doc, msg.err = svc.StashShow(index)
		}
		return msg
	}
}

// mutate performs op.
func mutate(svc git.Service, op mutation) tea.Cmd {
	return func() tea.Msg {
		var err error
		switch op.kind {
		case opApply:
			err = svc.StashApply(op.index, false)
		case opPop:
			err = svc.StashApply(op.index, true)
		case opDrop:
			err = svc.StashDrop(op.index)
		case opCreate:
			err = svc.StashSave(op.message, op.untracked)
		}
		return mutationDoneMsg{op: op, err: err}
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}
