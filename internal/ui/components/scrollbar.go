package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/ui"
)

// RenderScrollbar returns a vertical scrollbar track of the given height.
// The thumb is proportional to the visible portion and positioned by
// offset, the index of the first visible line.
//
// Returns an empty string if all content fits.
func RenderScrollbar(styles ui.Styles, height, total, visible, offset int) string {
	if total <= visible || height < 1 {
		return ""
	}
	t := styles.Theme

	thumbSize := min(max(height*visible/total, 1), height)
	maxOffset := height - thumbSize
	thumbStart := 0
	if last := total - visible; last > 0 {
		thumbStart = min(max(offset*maxOffset/last, 0), maxOffset)
	}

	thumb := lipgloss.NewStyle().Foreground(t.Primary).Render("█")
	track := lipgloss.NewStyle().Foreground(t.Border).Render("░")

	var b strings.Builder
	b.Grow(height * len(track))
	for i := 0; i < height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbStart && i < thumbStart+thumbSize {
			b.WriteString(thumb)
		} else {
			b.WriteString(track)
		}
	}
	return b.String()
}
