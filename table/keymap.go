package table

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seo-rii/tiptap/document"
)

// KeyMap defines the table key bindings.
type KeyMap struct {
	NextCell key.Binding
	PrevCell key.Binding
	Delete   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextCell: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next cell")),
		PrevCell: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous cell")),
		Delete: key.NewBinding(
			key.WithKeys("backspace", "delete", "alt+backspace", "alt+delete"),
			key.WithHelp("del", "delete selected cells"),
		),
	}
}

// HandleKey runs the table command bound to msg. It reports whether the key
// was consumed.
func HandleKey(st *document.State, km KeyMap, msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, km.NextCell):
		return NextCellOrAddRow(st)
	case key.Matches(msg, km.PrevCell):
		return GoToPreviousCell(st)
	case key.Matches(msg, km.Delete):
		return DeleteTable(st)
	default:
		return false
	}
}

// GripKind identifies a selection grip drawn on a table.
type GripKind uint8

const (
	GripTable GripKind = iota
	GripRow
	GripColumn
)

// Grip is a clickable handle that selects a row, a column or the whole
// table.
type Grip struct {
	Kind     GripKind
	Index    int
	Pos      int // cell the grip is attached to
	Selected bool
	First    bool
	Last     bool
}

// Grips returns the grips of the table around the selection: one table grip,
// a row grip per cell of the first column and a column grip per cell of the
// first row. A grip's Index is the grid row or column its cell starts at.
func Grips(doc *document.Node, sel document.Selection) []Grip {
	table, ok := FindTable(doc, sel)
	if !ok {
		return nil
	}
	m := BuildMap(table.Node)
	rows := CellsInColumn(doc, sel, 0)
	if len(rows) == 0 {
		return nil
	}
	cols := CellsInRow(doc, sel, 0)
	out := make([]Grip, 0, 1+len(rows)+len(cols))
	out = append(out, Grip{Kind: GripTable, Pos: rows[0].Pos, Selected: IsTableSelected(doc, sel)})
	for _, c := range rows {
		r, _ := m.FindCell(c.Pos - table.Start)
		out = append(out, Grip{
			Kind:     GripRow,
			Index:    r.Top,
			Pos:      c.Pos,
			Selected: IsRowSelected(doc, sel, r.Top),
			First:    r.Top == 0,
			Last:     r.Bottom >= m.Height,
		})
	}
	for _, c := range cols {
		r, _ := m.FindCell(c.Pos - table.Start)
		out = append(out, Grip{
			Kind:     GripColumn,
			Index:    r.Left,
			Pos:      c.Pos,
			Selected: IsColumnSelected(doc, sel, r.Left),
			First:    r.Left == 0,
			Last:     r.Right >= m.Width,
		})
	}
	return out
}

// ActivateGrip applies the selection a grip stands for.
func ActivateGrip(st *document.State, g Grip) bool {
	tr := st.Tx()
	var ok bool
	switch g.Kind {
	case GripTable:
		ok = SelectTable(tr)
	case GripRow:
		ok = SelectRow(tr, g.Index)
	case GripColumn:
		ok = SelectColumn(tr, g.Index)
	}
	return ok && st.Dispatch(tr)
}
