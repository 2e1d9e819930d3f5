package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds all colours for the application.
type Theme struct {
	Bg           lipgloss.Color
	Surface      lipgloss.Color
	SurfaceHover lipgloss.Color
	Border       lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Added    lipgloss.Color
	Modified lipgloss.Color
	Deleted  lipgloss.Color
	Renamed  lipgloss.Color

	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	StashRef    lipgloss.Color
	BranchLocal lipgloss.Color
	BranchHead  lipgloss.Color
	Match       lipgloss.Color
}

// DarkTheme returns the default dark palette (Catppuccin Mocha).
func DarkTheme() Theme {
	return Theme{
		Bg:           lipgloss.Color("#1e1e2e"),
		Surface:      lipgloss.Color("#282840"),
		SurfaceHover: lipgloss.Color("#313152"),
		Border:       lipgloss.Color("#3b3b5c"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),
		Accent:    lipgloss.Color("#f5c2e7"),

		Added:    lipgloss.Color("#a6e3a1"),
		Modified: lipgloss.Color("#f9e2af"),
		Deleted:  lipgloss.Color("#f38ba8"),
		Renamed:  lipgloss.Color("#89dceb"),

		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Info:    lipgloss.Color("#89b4fa"),

		StashRef:    lipgloss.Color("#fab387"),
		BranchLocal: lipgloss.Color("#a6e3a1"),
		BranchHead:  lipgloss.Color("#89b4fa"),
		Match:       lipgloss.Color("#f5c2e7"),
	}
}

// LightTheme returns the light palette (Catppuccin Latte).
func LightTheme() Theme {
	return Theme{
		Bg:           lipgloss.Color("#eff1f5"),
		Surface:      lipgloss.Color("#e6e9ef"),
		SurfaceHover: lipgloss.Color("#ccd0da"),
		Border:       lipgloss.Color("#bcc0cc"),

		Text:        lipgloss.Color("#4c4f69"),
		TextMuted:   lipgloss.Color("#6c6f85"),
		TextSubtle:  lipgloss.Color("#8c8fa1"),
		TextInverse: lipgloss.Color("#eff1f5"),

		Primary:   lipgloss.Color("#1e66f5"),
		Secondary: lipgloss.Color("#7287fd"),
		Accent:    lipgloss.Color("#ea76cb"),

		Added:    lipgloss.Color("#40a02b"),
		Modified: lipgloss.Color("#df8e1d"),
		Deleted:  lipgloss.Color("#d20f39"),
		Renamed:  lipgloss.Color("#04a5e5"),

		Warning: lipgloss.Color("#df8e1d"),
		Error:   lipgloss.Color("#d20f39"),
		Info:    lipgloss.Color("#1e66f5"),

		StashRef:    lipgloss.Color("#fe640b"),
		BranchLocal: lipgloss.Color("#40a02b"),
		BranchHead:  lipgloss.Color("#1e66f5"),
		Match:       lipgloss.Color("#ea76cb"),
	}
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style

	// List items
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	StashRef     lipgloss.Style
	BranchName   lipgloss.Style
	Age          lipgloss.Style
	Match        lipgloss.Style

	// Text
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	KeyBind lipgloss.Style
	KeyDesc lipgloss.Style

	// Files
	FileAdded    lipgloss.Style
	FileModified lipgloss.Style
	FileDeleted  lipgloss.Style
	FileRenamed  lipgloss.Style

	// Diff
	DiffAdded      lipgloss.Style
	DiffRemoved    lipgloss.Style
	DiffContext    lipgloss.Style
	DiffHeader     lipgloss.Style
	DiffHunkHeader lipgloss.Style

	// Dialogs
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	Warning lipgloss.Style
	Spinner lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.Header = lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface).Bold(true).Padding(0, 1)
	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	s.HelpBar = lipgloss.NewStyle().Foreground(t.TextSubtle).Padding(0, 1)

	s.ListItem = lipgloss.NewStyle().Foreground(t.Text).PaddingLeft(2)
	s.ListSelected = lipgloss.NewStyle().Foreground(t.Text).Background(t.SurfaceHover).Bold(true).PaddingLeft(1)
	s.StashRef = lipgloss.NewStyle().Foreground(t.StashRef)
	s.BranchName = lipgloss.NewStyle().Foreground(t.BranchLocal).Bold(true)
	s.Age = lipgloss.NewStyle().Foreground(t.TextSubtle)
	s.Match = lipgloss.NewStyle().Foreground(t.Match).Bold(true).Underline(true)

	s.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Body = lipgloss.NewStyle().Foreground(t.Text)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.FileAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.FileModified = lipgloss.NewStyle().Foreground(t.Modified)
	s.FileDeleted = lipgloss.NewStyle().Foreground(t.Deleted).Strikethrough(true)
	s.FileRenamed = lipgloss.NewStyle().Foreground(t.Renamed)

	s.DiffAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.DiffRemoved = lipgloss.NewStyle().Foreground(t.Deleted)
	s.DiffContext = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.DiffHeader = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.DiffHunkHeader = lipgloss.NewStyle().Foreground(t.Secondary).Italic(true)

	s.Dialog = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(t.Primary).Padding(1, 3).Width(56)
	s.DialogTitle = lipgloss.NewStyle().Foreground(t.Text).Bold(true)

	s.Warning = lipgloss.NewStyle().Foreground(t.Warning)
	s.Spinner = lipgloss.NewStyle().Foreground(t.Primary)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}

// StylesFor returns styles for a theme name; unknown names use the dark theme.
func StylesFor(name string) Styles {
	if name == "light" {
		return NewStyles(LightTheme())
	}
	return DefaultStyles()
}
