package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/common"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/ui"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/ui/components"
)

// renderPreview draws a diff or file listing scrolled to p.Scroll.
func renderPreview(styles ui.Styles, p common.Preview, width, height int) (string, string) {
	title := " " + styles.Title.Render(ui.Truncate(p.Title, max(width-30, 10)))
	if p.Summary != "" {
		title += styles.Muted.Render("  " + p.Summary)
	}
	if p.Partial {
		title += styles.Warning.Render("  [partial]")
	}

	switch {
	case p.Loading:
		return title, ui.PlaceCentre(width, height, styles.Muted.Render("Loading "+p.Ref+"…"))
	case len(p.Lines) == 0:
		return title, ui.PlaceCentre(width, height, styles.Muted.Render("No changes in this stash"))
	}

	if len(p.Lines) > height {
		last := min(p.Scroll+height, len(p.Lines))
		title += styles.Muted.Render(position(p.Scroll+1, last, len(p.Lines)))
	}

	bar := components.RenderScrollbar(styles, height, len(p.Lines), height, p.Scroll)
	vpW := width
	if bar != "" {
		vpW--
	}

	// Long lines are cut rather than wrapped so scroll offsets stay exact.
	var b strings.Builder
	for i, l := range p.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		text := ui.Truncate(strings.ReplaceAll(l.Text, "\t", "    "), vpW)
		b.WriteString(lineStyle(styles, l.Style).Render(text))
	}
	vp := viewport.New(vpW, height)
	vp.SetContent(b.String())
	vp.SetYOffset(p.Scroll)
	if bar == "" {
		return title, vp.View()
	}
	return title, lipgloss.JoinHorizontal(lipgloss.Top, vp.View(), bar)
}

func position(first, last, total int) string {
	return fmt.Sprintf("  lines %d-%d/%d", first, last, total)
}

func lineStyle(styles ui.Styles, s common.LineStyle) lipgloss.Style {
	switch s {
	case common.LineAdded:
		return styles.DiffAdded
	case common.LineRemoved:
		return styles.DiffRemoved
	case common.LineMeta:
		return styles.DiffHeader
	case common.LineHunk:
		return styles.DiffHunkHeader
	case common.LineFileAdded:
		return styles.FileAdded
	case common.LineFileDeleted:
		return styles.FileDeleted
	case common.LineFileRenamed:
		return styles.FileRenamed
	case common.LineFileModified:
		return styles.FileModified
	default:
		return styles.DiffContext
	}
}
