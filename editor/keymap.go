package editor

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/seo-rii/tiptap/command"
	"github.com/seo-rii/tiptap/table"
)

// KeyMap defines the editor key bindings.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks). Palette
// and Table bindings take precedence over the editing bindings while the
// palette is open or the cursor is inside a table.
type KeyMap struct {
	Left, Right, Up, Down key.Binding
	Home, End             key.Binding

	Backspace, Delete key.Binding
	Enter             key.Binding

	Undo, Redo key.Binding

	OrderedList, BulletList key.Binding
	LiftItem                key.Binding

	Palette command.KeyMap
	Table   table.KeyMap
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		Home: key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "block start")),
		End:  key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "block end")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "split block")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),

		OrderedList: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "toggle number list")),
		BulletList:  key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "toggle bullet list")),
		LiftItem:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "lift list item")),

		Palette: command.DefaultKeyMap(),
		Table:   table.DefaultKeyMap(),
	}
}
