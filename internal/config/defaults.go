package config

// KeyBindings maps each logical action to the keys that trigger it, using
// bubbletea key names ("enter", "ctrl+d", "G"). ctrl+c always quits and is
// not listed here.
type KeyBindings struct {
	Up              []string `mapstructure:"up"`
	Down            []string `mapstructure:"down"`
	Top             []string `mapstructure:"top"`
	Bottom          []string `mapstructure:"bottom"`
	PageUp          []string `mapstructure:"page_up"`
	PageDown        []string `mapstructure:"page_down"`
	Select          []string `mapstructure:"select"`
	ViewDiff        []string `mapstructure:"view_diff"`
	ViewFiles       []string `mapstructure:"view_files"`
	Apply           []string `mapstructure:"apply"`
	Pop             []string `mapstructure:"pop"`
	Drop            []string `mapstructure:"drop"`
	NewStash        []string `mapstructure:"new_stash"`
	Search          []string `mapstructure:"search"`
	Back            []string `mapstructure:"back"`
	Quit            []string `mapstructure:"quit"`
	Confirm         []string `mapstructure:"confirm"`
	ToggleUntracked []string `mapstructure:"toggle_untracked"`
	Refresh         []string `mapstructure:"refresh"`
	Help            []string `mapstructure:"help"`
}

// DefaultKeyBindings returns the default key bindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Up:              []string{"k", "up"},
		Down:            []string{"j", "down"},
		Top:             []string{"g", "home"},
		Bottom:          []string{"G", "end"},
		PageUp:          []string{"pgup", "ctrl+u"},
		PageDown:        []string{"pgdown", "ctrl+d"},
		Select:          []string{"enter"},
		ViewDiff:        []string{"d"},
		ViewFiles:       []string{"f"},
		Apply:           []string{"a"},
		Pop:             []string{"p"},
		Drop:            []string{"x", "delete"},
		NewStash:        []string{"n"},
		Search:          []string{"/"},
		Back:            []string{"esc"},
		Quit:            []string{"q"},
		Confirm:         []string{"y"},
		ToggleUntracked: []string{"tab"},
		Refresh:         []string{"r"},
		Help:            []string{"?"},
	}
}

// byAction indexes the bindings by their config key.
func (k *KeyBindings) byAction() map[string]*[]string {
	return map[string]*[]string{
		"up":               &k.Up,
		"down":             &k.Down,
		"top":              &k.Top,
		"bottom":           &k.Bottom,
		"page_up":          &k.PageUp,
		"page_down":        &k.PageDown,
		"select":           &k.Select,
		"view_diff":        &k.ViewDiff,
		"view_files":       &k.ViewFiles,
		"apply":            &k.Apply,
		"pop":              &k.Pop,
		"drop":             &k.Drop,
		"new_stash":        &k.NewStash,
		"search":           &k.Search,
		"back":             &k.Back,
		"quit":             &k.Quit,
		"confirm":          &k.Confirm,
		"toggle_untracked": &k.ToggleUntracked,
		"refresh":          &k.Refresh,
		"help":             &k.Help,
	}
}
