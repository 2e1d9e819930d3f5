package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/common"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/ui"
)

// RenderHelp renders a full-screen help overlay. Sections appear in the
// order given.
func RenderHelp(styles ui.Styles, title string, sections []common.HelpSection, width, height int) string {
	t := styles.Theme

	titleStr := lipgloss.NewStyle().
		Foreground(t.Primary).Bold(true).
		Align(lipgloss.Center).
		Width(max(0, min(70, width-4)-8)).
		Render(title)

	var body strings.Builder
	body.WriteString(titleStr + "\n\n")

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(16).Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	for _, section := range sections {
		if len(section.Keys) == 0 {
			continue
		}
		body.WriteString(sectionStyle.Render(section.Title) + "\n")
		for _, k := range section.Keys {
			body.WriteString("  " + keyStyle.Render(k.Key) + "  " + descStyle.Render(k.Desc) + "\n")
		}
		body.WriteString("\n")
	}

	overlay := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(min(70, width-4)).
		MaxHeight(height - 2).
		Render(strings.TrimRight(body.String(), "\n"))

	return ui.PlaceCentre(width, height, overlay)
}

// RenderKeyHints renders a one-line footer of key hints, dropping hints
// that do not fit.
func RenderKeyHints(styles ui.Styles, hints []common.KeyHint, width int) string {
	var parts []string
	used := 1
	for _, h := range hints {
		part := styles.KeyBind.Render(h.Key) + " " + styles.KeyDesc.Render(h.Desc)
		w := lipgloss.Width(part) + 2
		if used+w > width {
			break
		}
		used += w
		parts = append(parts, part)
	}
	return styles.HelpBar.Render(strings.Join(parts, "  "))
}
