package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hel…", Truncate("hello", 4))
	assert.Equal(t, "…", Truncate("hello", 1))
	assert.Equal(t, "héll…", Truncate("héllo wörld", 5))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", PadRight("ab", 4))
	assert.Equal(t, "abcdef", PadRight("abcdef", 4))
}

func TestHighlight_PreservesText(t *testing.T) {
	plain := lipgloss.NewStyle()
	assert.Equal(t, "wip login", Highlight("wip login", []int{4, 5, 6}, plain, plain))
	assert.Equal(t, "wip login", Highlight("wip login", nil, plain, plain))
	// Offsets inside a multi-byte rune are ignored.
	assert.Equal(t, "héllo", Highlight("héllo", []int{2}, plain, plain))
}

func TestStylesFor(t *testing.T) {
	assert.Equal(t, LightTheme().Text, StylesFor("light").Theme.Text)
	assert.Equal(t, DarkTheme().Text, StylesFor("dark").Theme.Text)
	assert.Equal(t, DarkTheme().Text, StylesFor("nonsense").Theme.Text)
}
