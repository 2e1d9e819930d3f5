package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/common"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/ui"
)

// renderList draws the stash list title and the visible window of rows.
func renderList(styles ui.Styles, vm common.ViewModel, height int) (string, string) {
	t := styles.Theme
	title := lipgloss.NewStyle().Foreground(t.StashRef).Bold(true).Render(" Stashes")
	switch {
	case len(vm.Rows) > 0:
		title += styles.Muted.Render(fmt.Sprintf(" (%d/%d)", vm.Cursor+1, len(vm.Rows)))
	case vm.Total > 0:
		title += styles.Muted.Render(fmt.Sprintf(" (0/%d)", vm.Total))
	}
	if vm.Searching {
		title = " " + vm.Input
	} else if vm.Filter != "" {
		title += styles.Muted.Render("  filter: ") + lipgloss.NewStyle().Foreground(t.Match).Render(vm.Filter)
	}

	if len(vm.Rows) == 0 {
		msg := "No stashes found. Press n to create one."
		if vm.Total > 0 {
			msg = "No stashes match your filter."
		}
		return title, ui.PlaceCentre(vm.Width, height, styles.Muted.Render(msg))
	}

	start := 0
	if vm.Cursor >= height {
		start = vm.Cursor - height + 1
	}
	end := min(start+height, len(vm.Rows))

	refW, branchW := 0, 0
	for _, r := range vm.Rows[start:end] {
		refW = max(refW, len(r.Ref))
		branchW = max(branchW, lipgloss.Width(r.Branch))
	}
	branchW = min(branchW, max(vm.Width/4, 8))

	var b strings.Builder
	for i, r := range vm.Rows[start:end] {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderRow(styles, r, vm.Width, refW, branchW))
	}
	return title, b.String()
}

func renderRow(styles ui.Styles, r common.EntryRow, width, refW, branchW int) string {
	branchOffsets, msgOffsets := splitMatches(r.Matches, len(r.Branch))

	ref := styles.StashRef.Render(ui.PadRight(r.Ref, refW))
	branch := ui.Truncate(r.Branch, branchW)
	if branch != r.Branch {
		branchOffsets = nil
	}
	branchStr := ui.PadRight(ui.Highlight(branch, branchOffsets, styles.BranchName, styles.Match), branchW)
	age := styles.Age.Render(r.Age)

	msgW := width - refW - branchW - lipgloss.Width(r.Age) - 10
	msg := ui.Truncate(r.Message, max(msgW, 8))
	if msg != r.Message {
		msgOffsets = trimOffsets(msgOffsets, len(msg)-len("…"))
	}
	msgStr := ui.Highlight(msg, msgOffsets, styles.Body, styles.Match)

	left := ref + "  " + branchStr + "  " + msgStr
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(age)-4, 1)
	line := left + strings.Repeat(" ", gap) + age

	if r.Selected {
		return styles.ListSelected.Width(width).Render("▸ " + line)
	}
	return styles.ListItem.Render(line)
}

// splitMatches divides offsets into Branch+" "+Message between the two parts.
func splitMatches(offsets []int, branchLen int) (branch, message []int) {
	for _, o := range offsets {
		switch {
		case o < branchLen:
			branch = append(branch, o)
		case o > branchLen:
			message = append(message, o-branchLen-1)
		}
	}
	return branch, message
}

func trimOffsets(offsets []int, limit int) []int {
	var out []int
	for _, o := range offsets {
		if o < limit {
			out = append(out, o)
		}
	}
	return out
}
