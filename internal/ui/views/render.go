// Package views paints a common.ViewModel. Nothing here holds state or
// talks to git.
package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/common"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/ui"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/ui/components"
)

// Render draws the whole screen: header, title, body, status bar and key
// hints. The body gets Height-4 rows, matching the controller's viewport.
func Render(styles ui.Styles, vm common.ViewModel) string {
	if vm.Width <= 0 || vm.Height <= 0 {
		return ""
	}
	if vm.ShowHelp {
		return components.RenderHelp(styles, "Keyboard Shortcuts", vm.Help, vm.Width, vm.Height)
	}

	bodyH := max(vm.Height-4, 1)
	header := renderHeader(styles, vm)

	var title, body string
	switch {
	case vm.Loading:
		title = styles.Title.Render(" Stashes")
		body = ui.PlaceCentre(vm.Width, bodyH, styles.Muted.Render("Loading stashes…"))
	case vm.Mode.IsPreview():
		title, body = renderPreview(styles, vm.Preview, vm.Width, bodyH)
	default:
		title, body = renderList(styles, vm, bodyH)
	}
	body = lipgloss.NewStyle().Width(vm.Width).Height(bodyH).MaxHeight(bodyH).Render(body)

	bar := components.RenderStatusBar(styles, components.StatusBarData{
		Branch:    vm.Branch,
		Total:     vm.Total,
		Filter:    vm.Filter,
		BusyLabel: vm.BusyLabel,
		Message:   vm.Status.Text,
		IsError:   vm.Status.IsError,
		RepoRoot:  vm.Repo,
	}, vm.Width)
	hints := components.RenderKeyHints(styles, vm.Keys, vm.Width)

	screen := lipgloss.JoinVertical(lipgloss.Left, header, title, body, bar, hints)

	switch vm.Mode {
	case common.ModeConfirm:
		screen = ui.PlaceCentre(vm.Width, vm.Height, confirmBox(styles, vm))
	case common.ModeNewStash:
		screen = ui.PlaceCentre(vm.Width, vm.Height, newStashBox(styles, vm))
	}
	return screen
}

func renderHeader(styles ui.Styles, vm common.ViewModel) string {
	name := styles.KeyBind.Render("zgs")
	where := styles.Muted.Render(" · git stash")
	if vm.Branch != "" {
		where += styles.Muted.Render(" on ") + styles.BranchName.Render(vm.Branch)
	}
	return styles.Header.Width(vm.Width).Render(name + where)
}

func confirmBox(styles ui.Styles, vm common.ViewModel) string {
	c := vm.Confirm
	consequence := "The entry is removed from the stack and cannot be recovered from the list."
	if c.Action == "pop" {
		consequence = "The changes are applied to the working tree and the entry is removed."
	}
	key := "y"
	for _, h := range vm.Keys {
		if h.Desc == "confirm" {
			key = h.Key
		}
	}
	return components.RenderConfirm(styles, components.ConfirmDialog{
		Title:      fmt.Sprintf("%s %s?", titleCase(c.Action), c.Ref),
		Message:    ui.Truncate(c.Message, 48) + "\n\n" + consequence,
		ConfirmKey: key,
	})
}

func newStashBox(styles ui.Styles, vm common.ViewModel) string {
	hint := "enter save · esc cancel"
	if !vm.Form.RequireMessage {
		hint = "empty message uses git's default · " + hint
	}
	toggleKey := "tab"
	for _, h := range vm.Keys {
		if h.Desc == "toggle untracked" {
			toggleKey = h.Key
		}
	}
	return components.RenderInput(styles, components.InputDialog{
		Title:   "New stash",
		Input:   vm.Input,
		Toggles: []components.Toggle{{Key: toggleKey, Label: "include untracked files", On: vm.Form.IncludeUntracked}},
		Hint:    hint,
	})
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
