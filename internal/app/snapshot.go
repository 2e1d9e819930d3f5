package app

import (
	"github.com/Akashdeep-Patra/zed-git-stash/internal/common"
)

// Snapshot returns the immutable view-model for the current state.
func (m Model) Snapshot() common.ViewModel {
	vm := common.ViewModel{
		Mode:     m.mode,
		Width:    m.width,
		Height:   m.height,
		Loading:  !m.loaded,
		Repo:     m.git.RepoRoot(),
		Branch:   m.branch,
		Total:    m.list.Len(),
		Cursor:   m.cursor,
		Filter:   m.query,
		ShowHelp: m.showHelp,
		Keys:     m.keys.hints(m.mode),
		Status:   common.Status{Text: m.status.text, IsError: m.status.isErr},
	}
	if m.status.text != "" && !m.now().Before(m.status.until) {
		vm.Status = common.Status{}
	}
	if m.busy {
		vm.Busy = true
		vm.BusyLabel = m.spinner.View() + " " + m.busyOp
	}
	if m.showHelp {
		vm.Help = m.keys.helpSections()
	}

	now := m.now()
	vm.Rows = make([]common.EntryRow, 0, len(m.order))
	for pos, idx := range m.order {
		e, ok := m.list.At(idx)
		if !ok {
			continue
		}
		vm.Rows = append(vm.Rows, common.EntryRow{
			Index:    e.Index,
			Ref:      e.Ref(),
			Branch:   e.Branch,
			Message:  e.Message,
			Age:      e.RelativeAge(now),
			Selected: pos == m.cursor,
			Matches:  m.matches[idx],
		})
	}

	switch m.mode {
	case common.ModeSearch:
		vm.Searching = true
		vm.Filter = m.search.Value()
		vm.Input = m.search.View()
	case common.ModeNewStash:
		vm.Input = m.form.View()
		vm.Form = common.Form{
			IncludeUntracked: m.untracked,
			RequireMessage:   m.cfg.RequireStashMessage,
		}
	case common.ModeConfirm:
		vm.Confirm = common.Confirm{
			Action:  m.confirm.kind.name(),
			Ref:     m.confirm.target.Ref(),
			Message: m.confirm.target.Message,
		}
	case common.ModeDiff, common.ModeFiles:
		p := m.preview
		title := "Diff"
		if m.mode == common.ModeFiles {
			title = "Files"
		}
		vm.Preview = common.Preview{
			Ref:     p.entry.Ref(),
			Title:   title + " · " + p.entry.Ref() + " · " + p.entry.Branch + ": " + p.entry.Message,
			Lines:   p.lines,
			Scroll:  p.scroll,
			Height:  m.viewportHeight(),
			Loading: p.loading,
			Partial: p.partial,
			Summary: p.summary,
		}
	}
	return vm
}
