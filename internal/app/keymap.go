package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/Akashdeep-Patra/zed-git-stash/internal/common"
	"github.com/Akashdeep-Patra/zed-git-stash/internal/config"
)

// KeyMap binds logical actions to keys. Text-capturing modes (search and
// the new-stash form) only honour the non-printable ones.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	Select    key.Binding
	ViewDiff  key.Binding
	ViewFiles key.Binding
	Apply     key.Binding
	Pop       key.Binding
	Drop      key.Binding
	NewStash  key.Binding
	Search    key.Binding
	Refresh   key.Binding

	Back            key.Binding
	Quit            key.Binding
	ForceQuit       key.Binding
	Confirm         key.Binding
	ToggleUntracked key.Binding
	Help            key.Binding

	// Result navigation while typing a query.
	InputUp   key.Binding
	InputDown key.Binding
	Submit    key.Binding
}

// NewKeyMap builds the key map from configured bindings.
func NewKeyMap(kb config.KeyBindings) KeyMap {
	bind := func(keys []string, desc string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKeys(keys), desc))
	}
	return KeyMap{
		Up:       bind(kb.Up, "up"),
		Down:     bind(kb.Down, "down"),
		Top:      bind(kb.Top, "top"),
		Bottom:   bind(kb.Bottom, "bottom"),
		PageUp:   bind(kb.PageUp, "page up"),
		PageDown: bind(kb.PageDown, "page down"),

		Select:    bind(kb.Select, "open diff"),
		ViewDiff:  bind(kb.ViewDiff, "diff"),
		ViewFiles: bind(kb.ViewFiles, "files"),
		Apply:     bind(kb.Apply, "apply"),
		Pop:       bind(kb.Pop, "pop"),
		Drop:      bind(kb.Drop, "drop"),
		NewStash:  bind(kb.NewStash, "new stash"),
		Search:    bind(kb.Search, "filter"),
		Refresh:   bind(kb.Refresh, "refresh"),

		Back:            bind(kb.Back, "back"),
		Quit:            bind(kb.Quit, "quit"),
		ForceQuit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "force quit")),
		Confirm:         bind(kb.Confirm, "confirm"),
		ToggleUntracked: bind(kb.ToggleUntracked, "toggle untracked"),
		Help:            bind(kb.Help, "help"),

		InputUp:   key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous")),
		InputDown: key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
	}
}

// DefaultKeyMap returns the key map for the default bindings.
func DefaultKeyMap() KeyMap { return NewKeyMap(config.DefaultKeyBindings()) }

var keyGlyphs = strings.NewReplacer("pgup", "pgup", "pgdown", "pgdn", "up", "↑", "down", "↓")

func helpKeys(keys []string) string {
	if len(keys) > 2 {
		keys = keys[:2]
	}
	return keyGlyphs.Replace(strings.Join(keys, "/"))
}

func hint(b key.Binding) common.KeyHint {
	h := b.Help()
	return common.KeyHint{Key: h.Key, Desc: h.Desc}
}

// hints returns the footer hints for a mode.
func (k KeyMap) hints(mode common.Mode) []common.KeyHint {
	var bs []key.Binding
	switch mode {
	case common.ModeList:
		bs = []key.Binding{k.Select, k.ViewFiles, k.Apply, k.Pop, k.Drop, k.NewStash, k.Search, k.Help, k.Quit}
	case common.ModeDiff:
		bs = []key.Binding{k.Down, k.PageDown, k.ViewFiles, k.Back}
	case common.ModeFiles:
		bs = []key.Binding{k.Down, k.PageDown, k.ViewDiff, k.Back}
	case common.ModeSearch:
		bs = []key.Binding{k.InputUp, k.InputDown, k.Submit, k.Back}
	case common.ModeNewStash:
		bs = []key.Binding{k.Submit, k.ToggleUntracked, k.Back}
	case common.ModeConfirm:
		bs = []key.Binding{k.Confirm}
	}
	out := make([]common.KeyHint, len(bs))
	for i, b := range bs {
		out[i] = hint(b)
	}
	return out
}

// helpSections lists every binding for the help overlay.
func (k KeyMap) helpSections() []common.HelpSection {
	group := func(title string, bs ...key.Binding) common.HelpSection {
		s := common.HelpSection{Title: title}
		for _, b := range bs {
			s.Keys = append(s.Keys, hint(b))
		}
		return s
	}
	return []common.HelpSection{
		group("Navigation", k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown),
		group("Stash", k.Select, k.ViewDiff, k.ViewFiles, k.Apply, k.Pop, k.Drop, k.NewStash),
		group("Filter", k.Search, k.InputUp, k.InputDown, k.Submit),
		group("General", k.Refresh, k.Confirm, k.ToggleUntracked, k.Back, k.Help, k.Quit, k.ForceQuit),
	}
}
