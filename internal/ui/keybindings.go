package ui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/dialsel/pkg/selector"
)

// KeyMode represents the keybinding mode for the picker.
type KeyMode string

const (
	// KeyModeDefault binds arrows, page keys, home/end, enter and esc.
	KeyModeDefault KeyMode = "default"
	// KeyModeEmacs adds ctrl/alt chords on top of the default keys.
	KeyModeEmacs KeyMode = "emacs"
)

// DefaultKeyMode is the default keybinding mode.
const DefaultKeyMode = KeyModeDefault

// ValidKeyModes lists all valid key modes for validation.
var ValidKeyModes = []KeyMode{KeyModeDefault, KeyModeEmacs}

// IsValidKeyMode checks if a key mode string is valid.
func IsValidKeyMode(mode string) bool {
	for _, m := range ValidKeyModes {
		if string(m) == mode {
			return true
		}
	}
	return false
}

func keyModeList() string {
	names := make([]string, len(ValidKeyModes))
	for i, m := range ValidKeyModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// KeyMap holds the bindings of one mode. Printable keys are never bound:
// they all feed the typeahead search.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Select   key.Binding
	Close    key.Binding
	Quit     key.Binding
}

// NewKeyMap returns the bindings for mode; unknown modes get the default map.
func NewKeyMap(mode KeyMode) KeyMap {
	km := KeyMap{
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "first")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "last")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
	if mode == KeyModeEmacs {
		km.Up = key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("C-p", "up"))
		km.Down = key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("C-n", "down"))
		km.PageUp = key.NewBinding(key.WithKeys("pgup", "alt+v"), key.WithHelp("M-v", "first"))
		km.PageDown = key.NewBinding(key.WithKeys("pgdown", "ctrl+v"), key.WithHelp("C-v", "last"))
		km.Home = key.NewBinding(key.WithKeys("home", "alt+<"), key.WithHelp("M-<", "first"))
		km.End = key.NewBinding(key.WithKeys("end", "alt+>"), key.WithHelp("M->", "last"))
		km.Select = key.NewBinding(key.WithKeys("enter", "ctrl+j"), key.WithHelp("enter", "select"))
		km.Close = key.NewBinding(key.WithKeys("esc", "ctrl+g"), key.WithHelp("C-g", "close"))
	}
	return km
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Close}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Home, k.End, k.Select, k.Close, k.Quit},
	}
}

// Command maps a key press onto a controller command.
func (k KeyMap) Command(msg tea.KeyPressMsg) selector.Command {
	switch {
	case key.Matches(msg, k.Up):
		return selector.CommandUp
	case key.Matches(msg, k.Down):
		return selector.CommandDown
	case key.Matches(msg, k.PageUp):
		return selector.CommandPageUp
	case key.Matches(msg, k.PageDown):
		return selector.CommandPageDown
	case key.Matches(msg, k.Home):
		return selector.CommandHome
	case key.Matches(msg, k.End):
		return selector.CommandEnd
	case key.Matches(msg, k.Select):
		return selector.CommandEnter
	case key.Matches(msg, k.Close):
		return selector.CommandEscape
	}
	return selector.CommandNone
}
