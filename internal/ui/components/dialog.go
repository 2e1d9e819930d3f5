package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/ui"
)

// ConfirmDialog describes a destructive action awaiting confirmation.
type ConfirmDialog struct {
	Title      string
	Message    string
	ConfirmKey string
}

// RenderConfirm renders a confirmation box. Only ConfirmKey proceeds; the
// footer says so.
func RenderConfirm(styles ui.Styles, d ConfirmDialog) string {
	t := styles.Theme
	title := styles.DialogTitle.Foreground(t.Error).Render(d.Title)
	message := lipgloss.NewStyle().Foreground(t.TextMuted).Render(d.Message)
	yes := lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Error).Bold(true).
		Padding(0, 1).Render(d.ConfirmKey)
	footer := yes + styles.Muted.Render(" confirm   any other key cancels")
	return styles.Dialog.BorderForeground(t.Error).Render(title + "\n\n" + message + "\n\n" + footer)
}

// InputDialog is a text entry box with optional toggles.
type InputDialog struct {
	Title   string
	Input   string // Rendered textinput.
	Toggles []Toggle
	Hint    string
}

// Toggle is a labelled on/off option with the key that flips it.
type Toggle struct {
	Key   string
	Label string
	On    bool
}

// RenderInput renders an input box.
func RenderInput(styles ui.Styles, d InputDialog) string {
	content := styles.DialogTitle.Render(d.Title) + "\n\n" + d.Input
	for _, tg := range d.Toggles {
		box := "[ ]"
		style := styles.Muted
		if tg.On {
			box = "[x]"
			style = styles.FileAdded
		}
		content += "\n\n" + style.Render(box+" "+tg.Label) + " " + styles.KeyBind.Render("("+tg.Key+")")
	}
	if d.Hint != "" {
		content += "\n\n" + styles.Muted.Render(d.Hint)
	}
	return styles.Dialog.Render(content)
}
