package table

import (
	"math"
	"sort"

	"github.com/seo-rii/tiptap/document"
)

// DeleteTable handles a delete keypress over a cell selection. A fully
// selected table is removed; otherwise the selected columns are removed when
// a whole column is selected, else the selected rows when a whole row is
// selected. It reports false when nothing applied, so the key falls through.
func DeleteTable(st *document.State) bool {
	doc, sel := st.Doc(), st.Selection()
	rect, m, table, ok := SelectedRect(doc, sel)
	if !ok {
		return false
	}
	tr := st.Tx()
	if IsTableSelected(doc, sel) {
		removeTable(tr, table)
		return st.Dispatch(tr)
	}
	for i := m.Width - 1; i >= 0; i-- {
		if IsColumnSelected(doc, sel, i) {
			replaceTable(tr, table, deleteColumns(table.Node, m, rect.Left, rect.Right), rect.Top, rect.Left)
			return st.Dispatch(tr)
		}
	}
	for i := m.Height - 1; i >= 0; i-- {
		if IsRowSelected(doc, sel, i) {
			replaceTable(tr, table, deleteRows(table.Node, m, rect.Top, rect.Bottom), rect.Top, rect.Left)
			return st.Dispatch(tr)
		}
	}
	return false
}

func removeTable(tr *document.Transaction, table Found) {
	rp := tr.Doc().ResolveClamped(table.Pos)
	if rp.Parent().ChildCount() == 1 {
		if p := tr.Schema().Type("paragraph"); p != nil {
			tr.ReplaceNode(table.Pos, tr.Schema().Node("paragraph", nil))
		} else {
			tr.DeleteNode(table.Pos)
		}
	} else {
		tr.DeleteNode(table.Pos)
	}
	tr.SetSelection(document.Near(tr.Doc(), table.Pos, 1))
}

// replaceTable swaps the table for next and puts the cursor into the cell
// nearest to (row, col). A nil next removes the table.
func replaceTable(tr *document.Transaction, table Found, next *document.Node, row, col int) {
	if next == nil {
		removeTable(tr, table)
		return
	}
	tr.ReplaceNode(table.Pos, next)
	nm := BuildMap(next)
	cell := nm.At(min(row, nm.Height-1), min(col, nm.Width-1))
	if cell < 0 && len(nm.Cells) > 0 {
		cell = nm.Cells[0]
	}
	tr.SetSelection(document.Near(tr.Doc(), table.Start+cell+1, 1))
}

type placedCell struct {
	left int
	node *document.Node
}

// eachCell calls fn for every cell with its row index, its offset inside the
// table content and its grid rectangle.
func eachCell(table *document.Node, m Map, fn func(row int, pos int, rect Rect, ok bool, cell *document.Node)) {
	pos := 0
	for r := 0; r < table.ChildCount(); r++ {
		row := table.Child(r)
		pos++
		for i := 0; i < row.ChildCount(); i++ {
			cell := row.Child(i)
			rect, ok := m.FindCell(pos)
			fn(r, pos, rect, ok, cell)
			pos += cell.NodeSize()
		}
		pos++
	}
}

func withSpan(cell *document.Node, key string, n int) *document.Node {
	return cell.WithMarkup(cell.Type(), cell.Attrs().Merge(document.Attrs{key: n}))
}

// deleteColumns removes columns [left, right). Cells that only partly
// overlap lose the overlapping part of their colspan.
func deleteColumns(table *document.Node, m Map, left, right int) *document.Node {
	rows := make([][]*document.Node, table.ChildCount())
	eachCell(table, m, func(r, _ int, rect Rect, ok bool, cell *document.Node) {
		if !ok {
			rows[r] = append(rows[r], cell)
			return
		}
		overlap := min(rect.Right, right) - max(rect.Left, left)
		width := rect.Right - rect.Left
		switch {
		case overlap <= 0:
			rows[r] = append(rows[r], cell)
		case overlap >= width:
		default:
			rows[r] = append(rows[r], withSpan(cell, "colspan", width-overlap))
		}
	})
	return rebuild(table, rows)
}

// deleteRows removes rows [top, bottom). Cells spanning into the removed rows
// shrink; cells starting in them and reaching past bottom move down to the
// first remaining row.
func deleteRows(table *document.Node, m Map, top, bottom int) *document.Node {
	placed := make([][]placedCell, table.ChildCount())
	var carry []placedCell
	eachCell(table, m, func(r, _ int, rect Rect, ok bool, cell *document.Node) {
		left := math.MaxInt
		if ok {
			left = rect.Left
		}
		if r >= top && r < bottom {
			if ok && rect.Bottom > bottom {
				carry = append(carry, placedCell{left: left, node: withSpan(cell, "rowspan", rect.Bottom-bottom)})
			}
			return
		}
		if ok && rect.Top < top && rect.Bottom > top {
			overlap := min(rect.Bottom, bottom) - top
			cell = withSpan(cell, "rowspan", rect.Bottom-rect.Top-overlap)
		}
		placed[r] = append(placed[r], placedCell{left: left, node: cell})
	})
	if bottom < len(placed) && len(carry) > 0 {
		placed[bottom] = append(placed[bottom], carry...)
		sort.SliceStable(placed[bottom], func(i, j int) bool { return placed[bottom][i].left < placed[bottom][j].left })
	}

	rows := make([][]*document.Node, table.ChildCount())
	for r := range placed {
		if r >= top && r < bottom {
			continue
		}
		for _, p := range placed[r] {
			rows[r] = append(rows[r], p.node)
		}
	}
	return rebuild(table, rows)
}

// rebuild copies table with new row contents; rows left without cells are
// dropped. It returns nil when no row remains.
func rebuild(table *document.Node, rows [][]*document.Node) *document.Node {
	var out []*document.Node
	for r, cells := range rows {
		if len(cells) == 0 {
			continue
		}
		out = append(out, table.Child(r).Copy(cells))
	}
	if len(out) == 0 {
		return nil
	}
	return table.Copy(out)
}

// AddRowAfter inserts an empty row below the row holding the selection
// head. Cells spanning across the insertion line grow instead.
func AddRowAfter(st *document.State) bool {
	doc, sel := st.Doc(), st.Selection()
	rp, err := doc.Resolve(sel.Head)
	if err != nil {
		return false
	}
	table, ok := FindParentClosestToPos(rp, isTable)
	if !ok {
		return false
	}
	cellPos := sel.Head
	if sel.Kind != document.CellSelection {
		cell, ok := FindCellClosestToPos(rp)
		if !ok {
			return false
		}
		cellPos = cell.Pos
	}
	m := BuildMap(table.Node)
	rect, ok := m.FindCell(cellPos - table.Start)
	if !ok {
		return false
	}
	next, rowStart, ok := addRow(st.Schema(), table.Node, m, rect.Bottom)
	if !ok {
		return false
	}
	added := next.NodeSize() - table.Node.NodeSize()
	end := table.Pos + table.Node.NodeSize() - 1
	tr := st.Tx()
	tr.Replace(table.Pos, end+1, []*document.Node{next},
		document.Gap{From: table.Pos, To: table.Start + rowStart, Target: table.Pos},
		document.Gap{From: table.Start + rowStart, To: end, Target: table.Start + rowStart + added})
	return st.Dispatch(tr)
}

// addRow returns table with a new row inserted at index at, and the offset
// of that row inside the table content.
func addRow(schema *document.Schema, table *document.Node, m Map, at int) (*document.Node, int, bool) {
	grow := make(map[int]bool)
	var cells []*document.Node
	for col := 0; col < m.Width; {
		pos := m.At(at, col)
		if at > 0 && at < m.Height && pos >= 0 && m.At(at-1, col) == pos {
			grow[pos] = true
			rect, _ := m.FindCell(pos)
			col = max(rect.Right, col+1)
			continue
		}
		cells = append(cells, emptyCell(schema, "tableCell"))
		col++
	}
	if len(cells) == 0 {
		return nil, 0, false
	}

	rows := make([]*document.Node, 0, table.ChildCount()+1)
	rowStart := 0
	pos := 0
	for r := 0; r < table.ChildCount(); r++ {
		if r == at {
			rowStart = pos
			rows = append(rows, schema.Node("tableRow", nil, cells...))
		}
		row := table.Child(r)
		pos++
		next := make([]*document.Node, 0, row.ChildCount())
		for i := 0; i < row.ChildCount(); i++ {
			cell := row.Child(i)
			if grow[pos] {
				_, rowspan := cellSpan(cell)
				cell = withSpan(cell, "rowspan", rowspan+1)
			}
			next = append(next, cell)
			pos += cell.NodeSize()
		}
		pos++
		rows = append(rows, row.Copy(next))
	}
	if at >= table.ChildCount() {
		rowStart = pos
		rows = append(rows, schema.Node("tableRow", nil, cells...))
	}
	return table.Copy(rows), rowStart, true
}

func emptyCell(schema *document.Schema, typ string) *document.Node {
	return schema.Node(typ, nil, schema.Node("paragraph", nil))
}

// cellPositions lists the absolute positions of every cell of table in
// document order.
func cellPositions(table Found) []int {
	var out []int
	pos := table.Start
	for r := 0; r < table.Node.ChildCount(); r++ {
		row := table.Node.Child(r)
		pos++
		for i := 0; i < row.ChildCount(); i++ {
			out = append(out, pos)
			pos += row.Child(i).NodeSize()
		}
		pos++
	}
	return out
}

func moveCell(st *document.State, dir int) bool {
	doc, sel := st.Doc(), st.Selection()
	rp, err := doc.Resolve(sel.Head)
	if err != nil {
		return false
	}
	var current int
	if sel.Kind == document.CellSelection {
		current = sel.Head
	} else {
		cell, ok := FindCellClosestToPos(rp)
		if !ok {
			return false
		}
		current = cell.Pos
	}
	table, ok := FindParentClosestToPos(rp, isTable)
	if !ok {
		return false
	}
	cells := cellPositions(table)
	for i, pos := range cells {
		if pos != current {
			continue
		}
		j := i + dir
		if j < 0 || j >= len(cells) {
			return false
		}
		tr := st.Tx()
		SelectCellContent(tr, cells[j])
		return st.Dispatch(tr)
	}
	return false
}

// SelectCellContent selects the text of the cell at pos.
func SelectCellContent(tr *document.Transaction, pos int) {
	doc := tr.Doc()
	cell := doc.NodeAt(pos)
	if cell == nil {
		return
	}
	from := document.Near(doc, pos+1, 1)
	to := document.Near(doc, pos+cell.NodeSize()-1, -1)
	tr.SetSelection(document.TextRange(from.Head, to.Head))
}

// GoToNextCell moves the selection to the next cell of the table.
func GoToNextCell(st *document.State) bool { return moveCell(st, 1) }

// GoToPreviousCell moves the selection to the previous cell of the table.
func GoToPreviousCell(st *document.State) bool { return moveCell(st, -1) }

// NextCellOrAddRow moves to the next cell, adding a row first when the
// selection is in the last cell.
func NextCellOrAddRow(st *document.State) bool {
	if GoToNextCell(st) {
		return true
	}
	if !AddRowAfter(st) {
		return false
	}
	return GoToNextCell(st)
}

// Build returns a rows x cols table of empty cells. With withHeader the
// first row holds header cells.
func Build(schema *document.Schema, rows, cols int, withHeader bool) *document.Node {
	rows, cols = max(rows, 1), max(cols, 1)
	out := make([]*document.Node, 0, rows)
	for r := 0; r < rows; r++ {
		typ := "tableCell"
		if withHeader && r == 0 {
			typ = "tableHeader"
		}
		cells := make([]*document.Node, 0, cols)
		for c := 0; c < cols; c++ {
			cells = append(cells, emptyCell(schema, typ))
		}
		out = append(out, schema.Node("tableRow", nil, cells...))
	}
	return schema.Node("table", nil, out...)
}

// InsertTable inserts a new table at the selection and puts the cursor into
// its first cell.
func InsertTable(tr *document.Transaction, rows, cols int, withHeader bool) bool {
	tbl := Build(tr.Schema(), rows, cols, withHeader)
	sel := tr.Selection()
	if !sel.Empty() && sel.Kind == document.TextSelection {
		tr.DeleteRange(sel.From(), sel.To())
		sel = tr.Selection()
	}
	tr.InsertBlocks(sel.Head, tbl)
	if tr.Err() != nil {
		return false
	}
	found := -1
	tr.Doc().Descendants(func(n *document.Node, pos int, _ *document.Node, _ int) bool {
		if found >= 0 {
			return false
		}
		if n == tbl {
			found = pos
			return false
		}
		return true
	})
	if found < 0 {
		return false
	}
	tr.SetSelection(document.Near(tr.Doc(), found+1, 1))
	return true
}
