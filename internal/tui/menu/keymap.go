package menu

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/mattsolo1/grove-core/tui/keymap"
)

// KeyMap defines the keybindings for the menu editor
type KeyMap struct {
	keymap.Base
	PageUp     key.Binding
	PageDown   key.Binding
	GoToTop    key.Binding
	GoToBottom key.Binding

	MoveUp     key.Binding
	MoveDown   key.Binding
	Grab       key.Binding
	DropBefore key.Binding
	DropAfter  key.Binding
	DropInto   key.Binding

	NewSubmenu   key.Binding
	NewSeparator key.Binding
	Remove       key.Binding
	Toggle       key.Binding
	Rename       key.Binding
	Icon         key.Binding
	OriginalIcon key.Binding
	Accel        key.Binding

	Save    key.Binding
	Discard key.Binding
	Default key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.Toggle, k.Save, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	baseHelp := k.Base.FullHelp()
	return append(baseHelp, [][]key.Binding{
		{
			k.PageUp,
			k.PageDown,
			k.GoToTop,
			k.GoToBottom,
		},
		{
			k.MoveUp,
			k.MoveDown,
			k.Grab,
			k.DropBefore,
			k.DropAfter,
			k.DropInto,
		},
		{
			k.NewSubmenu,
			k.NewSeparator,
			k.Remove,
			k.Toggle,
			k.Rename,
			k.Icon,
			k.OriginalIcon,
			k.Accel,
		},
		{
			k.Save,
			k.Discard,
			k.Default,
		},
	}...)
}

var keys = KeyMap{
	Base: keymap.NewBase(),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d", "page down"),
	),
	GoToTop: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "go to top"),
	),
	GoToBottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "go to bottom"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "move down"),
	),
	Grab: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "grab for moving"),
	),
	DropBefore: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "drop before"),
	),
	DropAfter: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "drop after"),
	),
	DropInto: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "drop into"),
	),
	NewSubmenu: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "new submenu"),
	),
	NewSeparator: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "new separator"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "remove"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "enable/disable"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "label"),
	),
	Icon: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "icon"),
	),
	OriginalIcon: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "original icon"),
	),
	Accel: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "shortcut"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s", "w"),
		key.WithHelp("w", "save"),
	),
	Discard: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "discard changes"),
	),
	Default: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "default layout"),
	),
}
