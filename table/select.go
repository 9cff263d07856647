package table

import (
	"github.com/seo-rii/tiptap/document"
)

// Found locates a node in a document.
type Found struct {
	Pos   int // position before the node
	Start int // position at the start of its content
	Depth int
	Node  *document.Node
}

func isTable(n *document.Node) bool { return n.Type().Spec.TableRole == document.TableRoleTable }

func isCell(n *document.Node) bool {
	role := n.Type().Spec.TableRole
	return role == document.TableRoleCell || role == document.TableRoleHeaderCell
}

// FindParentClosestToPos returns the deepest ancestor of rp matching pred.
func FindParentClosestToPos(rp *document.ResolvedPos, pred func(*document.Node) bool) (Found, bool) {
	for d := rp.Depth; d > 0; d-- {
		if n := rp.Node(d); pred(n) {
			return Found{Pos: rp.Before(d), Start: rp.Start(d), Depth: d, Node: n}, true
		}
	}
	return Found{}, false
}

// FindCellClosestToPos returns the cell containing rp.
func FindCellClosestToPos(rp *document.ResolvedPos) (Found, bool) {
	return FindParentClosestToPos(rp, isCell)
}

// FindTable returns the table around the selection.
func FindTable(doc *document.Node, sel document.Selection) (Found, bool) {
	rp, err := doc.Resolve(sel.From())
	if err != nil {
		return Found{}, false
	}
	return FindParentClosestToPos(rp, isTable)
}

// cellSelection resolves a cell selection to its table map and the anchor
// and head offsets relative to the table content.
type cellSelection struct {
	table      Found
	m          Map
	anchor     int
	head       int
	anchorCell *document.ResolvedPos
}

func resolveCellSelection(doc *document.Node, sel document.Selection) (cellSelection, bool) {
	if sel.Kind != document.CellSelection {
		return cellSelection{}, false
	}
	rp, err := doc.Resolve(sel.Anchor)
	if err != nil || rp.Depth < 1 {
		return cellSelection{}, false
	}
	table := rp.Node(-1)
	if !isTable(table) {
		return cellSelection{}, false
	}
	start := rp.Start(-1)
	found := Found{Pos: rp.Before(rp.Depth - 1), Start: start, Depth: rp.Depth - 1, Node: table}
	return cellSelection{
		table:      found,
		m:          BuildMap(table),
		anchor:     sel.Anchor - start,
		head:       sel.Head - start,
		anchorCell: rp,
	}, true
}

// IsRectSelected reports whether the cell selection covers every cell
// intersecting rect. Non-cell selections never cover anything.
func IsRectSelected(doc *document.Node, sel document.Selection, rect Rect) bool {
	cs, ok := resolveCellSelection(doc, sel)
	if !ok {
		return false
	}
	return cs.m.RectSelected(rect, cs.anchor, cs.head)
}

func IsColumnSelected(doc *document.Node, sel document.Selection, i int) bool {
	cs, ok := resolveCellSelection(doc, sel)
	if !ok {
		return false
	}
	return cs.m.RectSelected(cs.m.ColumnRect(i), cs.anchor, cs.head)
}

func IsRowSelected(doc *document.Node, sel document.Selection, i int) bool {
	cs, ok := resolveCellSelection(doc, sel)
	if !ok {
		return false
	}
	return cs.m.RectSelected(cs.m.RowRect(i), cs.anchor, cs.head)
}

func IsTableSelected(doc *document.Node, sel document.Selection) bool {
	cs, ok := resolveCellSelection(doc, sel)
	if !ok {
		return false
	}
	return cs.m.RectSelected(cs.m.FullRect(), cs.anchor, cs.head)
}

// SelectedRect returns the grid rectangle of a cell selection.
func SelectedRect(doc *document.Node, sel document.Selection) (Rect, Map, Found, bool) {
	cs, ok := resolveCellSelection(doc, sel)
	if !ok {
		return Rect{}, Map{}, Found{}, false
	}
	return cs.m.RectBetween(cs.anchor, cs.head), cs.m, cs.table, true
}

// selectRect puts a cell selection over rect on tr: the head is the cell at
// the top-left slot of the rectangle and the anchor the cell at its
// bottom-right slot. With spans the resulting selection may grow past rect.
func selectRect(tr *document.Transaction, rect func(Map) (Rect, bool)) bool {
	table, ok := FindTable(tr.Doc(), tr.Selection())
	if !ok {
		return false
	}
	m := BuildMap(table.Node)
	r, ok := rect(m)
	if !ok {
		return false
	}
	cells := m.CellsInRect(r)
	if len(cells) == 0 {
		return false
	}
	head := m.At(r.Top, r.Left)
	if head < 0 {
		head = cells[0]
	}
	anchor := m.At(r.Bottom-1, r.Right-1)
	if anchor < 0 {
		anchor = cells[len(cells)-1]
	}
	tr.SetSelection(document.CellRange(table.Start+anchor, table.Start+head))
	return true
}

// SelectColumn selects column i of the table around the selection.
func SelectColumn(tr *document.Transaction, i int) bool {
	return selectRect(tr, func(m Map) (Rect, bool) {
		return m.ColumnRect(i), i >= 0 && i < m.Width
	})
}

// SelectRow selects row i of the table around the selection.
func SelectRow(tr *document.Transaction, i int) bool {
	return selectRect(tr, func(m Map) (Rect, bool) {
		return m.RowRect(i), i >= 0 && i < m.Height
	})
}

// SelectTable selects every cell of the table around the selection.
func SelectTable(tr *document.Transaction) bool {
	return selectRect(tr, func(m Map) (Rect, bool) {
		return m.FullRect(), len(m.Cells) > 0
	})
}

// CellInfo describes one cell found by the CellsIn helpers.
type CellInfo struct {
	Pos   int // before the cell
	Start int // start of the cell content
	Node  *document.Node
}

func cellsIn(doc *document.Node, sel document.Selection, rects func(Map) []Rect) []CellInfo {
	table, ok := FindTable(doc, sel)
	if !ok {
		return nil
	}
	m := BuildMap(table.Node)
	var out []CellInfo
	for _, r := range rects(m) {
		for _, off := range m.CellsInRect(r) {
			pos := table.Start + off
			out = append(out, CellInfo{Pos: pos, Start: pos + 1, Node: doc.NodeAt(pos)})
		}
	}
	return out
}

// CellsInColumn returns the cells of the given columns, skipping indexes
// outside the table.
func CellsInColumn(doc *document.Node, sel document.Selection, indexes ...int) []CellInfo {
	return cellsIn(doc, sel, func(m Map) []Rect {
		var rects []Rect
		for _, i := range indexes {
			if i >= 0 && i < m.Width {
				rects = append(rects, m.ColumnRect(i))
			}
		}
		return rects
	})
}

// CellsInRow returns the cells of the given rows.
func CellsInRow(doc *document.Node, sel document.Selection, indexes ...int) []CellInfo {
	return cellsIn(doc, sel, func(m Map) []Rect {
		var rects []Rect
		for _, i := range indexes {
			if i >= 0 && i < m.Height {
				rects = append(rects, m.RowRect(i))
			}
		}
		return rects
	})
}

// CellsInTable returns every cell of the table around the selection.
func CellsInTable(doc *document.Node, sel document.Selection) []CellInfo {
	return cellsIn(doc, sel, func(m Map) []Rect { return []Rect{m.FullRect()} })
}
