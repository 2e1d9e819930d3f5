package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/ui"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Branch    string
	Total     int
	Filter    string
	BusyLabel string // set while a stash mutation runs
	Message   string // transient info/error message
	IsError   bool
	RepoRoot  string
}

// RenderStatusBar renders the bottom status bar with sections separated by
// dim vertical bars.
//
// Wide (>= 60):   main  │  3 stashes  │  /login        ⣾ popping stash@{1}
// Narrow (< 40):   main  │  3 stashes
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sep := lipgloss.NewStyle().Foreground(t.Border).Faint(true).Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	branch := data.Branch
	if branch == "" {
		branch = "?"
	}
	left := " " + lipgloss.NewStyle().Foreground(t.BranchHead).Bold(true).Render(" "+branch)

	noun := "stashes"
	if data.Total == 1 {
		noun = "stash"
	}
	left += sep + lipgloss.NewStyle().Foreground(t.StashRef).Render(fmt.Sprintf("%d %s", data.Total, noun))

	if data.Filter != "" && width >= 40 {
		left += sep + lipgloss.NewStyle().Foreground(t.Match).Render("/"+ui.Truncate(data.Filter, 20))
	}

	// ── Right section ────────────────────────────────────────────

	inner := width - styles.StatusBar.GetHorizontalFrameSize()
	room := inner - lipgloss.Width(left) - 3
	var right string
	switch {
	case room < 4:
	case data.BusyLabel != "":
		right = lipgloss.NewStyle().Foreground(t.Warning).Render(ui.Truncate(data.BusyLabel, room)) + " "
	case data.Message != "":
		fg := t.Info
		if data.IsError {
			fg = t.Error
		}
		right = lipgloss.NewStyle().Foreground(fg).Render(ui.Truncate(data.Message, room)) + " "
	case width >= 60 && data.RepoRoot != "":
		right = lipgloss.NewStyle().Foreground(t.TextSubtle).Render(filepath.Base(data.RepoRoot)) + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 1
		right = "" // drop right side if no room
	}
	return styles.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
