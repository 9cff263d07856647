package editor

import (
	"strings"

	"github.com/seo-rii/tiptap/document"
	graphemeutil "github.com/seo-rii/tiptap/internal/grapheme"
	"github.com/seo-rii/tiptap/orderedlist"
)

func isListItem(n *document.Node) bool {
	return n != nil && n.Type().Spec.ListRole == document.ListRoleItem
}

// insertText replaces the selection with text. Outside code blocks every
// newline splits the textblock.
func (m *Model) insertText(text string) {
	if text == "" {
		return
	}
	sel := m.st.Selection()
	tr := m.st.Tx()
	from := sel.From()
	switch {
	case sel.Kind == document.CellSelection:
		from = sel.Anchor
	case !sel.Empty():
		tr.DeleteRange(sel.From(), sel.To())
		from = tr.Mapping().Map(sel.From(), -1)
	}
	if tr.Err() != nil {
		return
	}
	near := document.Near(tr.Doc(), from, 1)
	if near.Kind != document.TextSelection {
		return
	}
	pos := near.Head
	lines := []string{text}
	if !tr.Doc().ResolveClamped(pos).Parent().Type().Spec.Code {
		lines = strings.Split(text, "\n")
	}
	for i, ln := range lines {
		if i > 0 {
			tr.SplitBlock(pos)
			pos += 2
		}
		if ln == "" {
			continue
		}
		size := tr.Doc().ContentSize()
		tr.InsertText(pos, ln)
		pos += tr.Doc().ContentSize() - size
	}
	tr.SetSelection(document.Cursor(pos))
	m.st.Dispatch(tr)
}

func (m *Model) moveHorizontal(dir int) {
	doc := m.st.Doc()
	sel := m.st.Selection()
	switch {
	case sel.Kind == document.NodeSelection:
		if dir < 0 {
			m.st.SetSelection(document.Near(doc, sel.From(), -1))
		} else {
			m.st.SetSelection(document.Near(doc, sel.To(), 1))
		}
		return
	case sel.Kind == document.CellSelection:
		m.st.SetSelection(document.Near(doc, sel.Head, dir))
		return
	case !sel.Empty():
		if dir < 0 {
			m.st.SetSelection(document.Cursor(sel.From()))
		} else {
			m.st.SetSelection(document.Cursor(sel.To()))
		}
		return
	}

	pos := sel.Head
	rp := doc.ResolveClamped(pos)
	if !rp.Parent().IsTextblock() {
		m.st.SetSelection(document.Near(doc, pos, dir))
		return
	}
	off := rp.ParentOffset + dir
	if off >= 0 && off <= rp.Parent().ContentSize() {
		m.st.SetSelection(document.Cursor(pos + dir))
		return
	}
	edge := rp.After(rp.Depth)
	if dir < 0 {
		edge = rp.Before(rp.Depth)
	}
	if s, ok := atomBeside(doc, edge, dir); ok {
		m.st.SetSelection(s)
		return
	}
	m.st.SetSelection(document.Near(doc, edge, dir))
}

// atomBeside returns a node selection of the atom block next to the block
// boundary at pos in direction dir.
func atomBeside(doc *document.Node, pos, dir int) (document.Selection, bool) {
	rp := doc.ResolveClamped(pos)
	if dir < 0 {
		if n := rp.NodeBefore(); n != nil && n.IsBlock() && n.IsAtom() {
			return document.SelectNode(doc, pos-n.NodeSize())
		}
		return document.Selection{}, false
	}
	if n := rp.NodeAfter(); n != nil && n.IsBlock() && n.IsAtom() {
		return document.SelectNode(doc, pos)
	}
	return document.Selection{}, false
}

// moveVertical moves to the nearest line above or below that holds text or
// media, keeping the column.
func (m *Model) moveVertical(dir int) {
	row, col, ok := m.cursorRow()
	if !ok {
		return
	}
	lay := m.ui.layout
	sel := m.st.Selection()
	r := row + dir
	if sel.Kind == document.NodeSelection {
		for r >= 0 && r < len(lay.lines) && lay.lines[r].node == sel.Anchor && lay.lines[r].kind != lineText && lay.lines[r].kind != lineTable {
			r += dir
		}
	}
	for ; r >= 0 && r < len(lay.lines); r += dir {
		ln := lay.lines[r]
		if ln.kind == lineMedia {
			if s, ok := document.SelectNode(m.st.Doc(), ln.node); ok {
				m.st.SetSelection(s)
				return
			}
			continue
		}
		if pos, ok := lay.posAt(r, col); ok {
			m.st.SetSelection(document.Cursor(pos))
			return
		}
	}
}

// moveLineEdge moves to the start or end of the textblock.
func (m *Model) moveLineEdge(dir int) {
	sel := m.st.Selection()
	rp := m.st.Doc().ResolveClamped(sel.Head)
	if !rp.Parent().IsTextblock() {
		return
	}
	if dir < 0 {
		m.st.SetSelection(document.Cursor(rp.Start(rp.Depth)))
	} else {
		m.st.SetSelection(document.Cursor(rp.End(rp.Depth)))
	}
}

func (m *Model) deleteSelection() bool {
	sel := m.st.Selection()
	if sel.Empty() || sel.Kind == document.CellSelection {
		return false
	}
	if sel.Kind == document.NodeSelection {
		m.resizer.Destroy()
	}
	m.st.Dispatch(m.st.Tx().DeleteRange(sel.From(), sel.To()))
	return true
}

func (m *Model) deleteBackward() {
	if m.deleteSelection() {
		return
	}
	doc := m.st.Doc()
	pos := m.st.Selection().Head
	rp := doc.ResolveClamped(pos)
	if !rp.Parent().IsTextblock() {
		return
	}
	d := rp.Depth
	if rp.ParentOffset > 0 {
		m.st.Dispatch(m.st.Tx().DeleteRange(pos-1, pos))
		return
	}

	if d >= 2 && isListItem(rp.Node(d-1)) && rp.Index(d-1) == 0 {
		orderedlist.LiftListItem(m.st, "listItem")
		return
	}
	if rp.Parent().TypeName() == "heading" {
		m.st.Dispatch(m.st.Tx().SetBlockType(pos, pos, m.st.Schema().Type("paragraph"), nil))
		return
	}
	before := rp.Before(d)
	if s, ok := atomBeside(doc, before, -1); ok {
		m.st.SetSelection(s)
		return
	}
	prev := document.Near(doc, before, -1)
	if prev.Kind == document.TextSelection && prev.Head < pos {
		m.st.Dispatch(m.st.Tx().DeleteRange(prev.Head, pos))
	}
}

func (m *Model) deleteForward() {
	if m.deleteSelection() {
		return
	}
	doc := m.st.Doc()
	pos := m.st.Selection().Head
	rp := doc.ResolveClamped(pos)
	if !rp.Parent().IsTextblock() {
		return
	}
	d := rp.Depth
	if pos < rp.End(d) {
		m.st.Dispatch(m.st.Tx().DeleteRange(pos, pos+1))
		return
	}
	after := rp.After(d)
	if s, ok := atomBeside(doc, after, 1); ok {
		m.st.SetSelection(s)
		return
	}
	next := document.Near(doc, after, 1)
	if next.Kind == document.TextSelection && next.Head > pos {
		m.st.Dispatch(m.st.Tx().DeleteRange(pos, next.Head))
	}
}

// enter splits the textblock at the cursor. Code blocks get a newline, list
// items split into two items and an empty item leaves its list.
func (m *Model) enter() {
	sel := m.st.Selection()
	if sel.Kind == document.NodeSelection {
		end := sel.To()
		tr := m.st.Tx().Insert(end, m.st.Schema().Node("paragraph", nil))
		tr.SetSelection(document.Cursor(end + 1))
		m.st.Dispatch(tr)
		return
	}
	m.deleteSelection()

	head := m.st.Selection().Head
	rp := m.st.Doc().ResolveClamped(head)
	parent := rp.Parent()
	if !parent.IsTextblock() {
		return
	}
	if parent.Type().Spec.Code {
		m.insertText("\n")
		return
	}
	d := rp.Depth
	if d >= 2 && isListItem(rp.Node(d-1)) {
		if parent.ContentSize() == 0 {
			orderedlist.LiftListItem(m.st, "listItem")
			return
		}
		m.splitListItem(rp)
		return
	}

	tr := m.st.Tx().SplitBlock(head)
	if parent.TypeName() == "heading" && head == rp.End(d) {
		tr.SetBlockType(head+2, head+2, m.st.Schema().Type("paragraph"), nil)
	}
	tr.SetSelection(document.Cursor(head + 2))
	m.st.Dispatch(tr)
}

func (m *Model) splitListItem(rp *document.ResolvedPos) {
	d := rp.Depth
	tb := rp.Parent()
	item := rp.Node(d - 1)
	idx := rp.Index(d - 1)
	s := m.st.Schema()

	text := tb.TextContent()
	left := tb.Copy(textNodes(s, graphemeutil.Slice(text, 0, rp.ParentOffset)))
	right := tb.Copy(textNodes(s, graphemeutil.Slice(text, rp.ParentOffset, graphemeutil.Count(text))))
	kids := item.Children()
	leftItem := item.Copy(append(kids[:idx:idx], left))
	rightItem := item.Copy(append([]*document.Node{right}, kids[idx+1:]...))

	before := rp.Before(d - 1)
	tr := m.st.Tx().Replace(before, rp.After(d-1), []*document.Node{leftItem, rightItem})
	tr.SetSelection(document.Cursor(before + leftItem.NodeSize() + 2))
	m.st.Dispatch(tr)
}

func textNodes(s *document.Schema, text string) []*document.Node {
	if text == "" {
		return nil
	}
	return []*document.Node{s.Text(text)}
}
