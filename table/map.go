// Package table computes table geometry over document tables and builds
// row, column and table selections and edits from it.
package table

import (
	"github.com/seo-rii/tiptap/document"
)

// Rect is a half-open rectangle of grid coordinates.
type Rect struct {
	Left, Top, Right, Bottom int
}

func (r Rect) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Contains reports whether o lies inside r.
func (r Rect) Contains(o Rect) bool {
	return o.Left >= r.Left && o.Right <= r.Right && o.Top >= r.Top && o.Bottom <= r.Bottom
}

// Map is the grid of a table: Cells[row*Width+col] holds the offset of the
// cell covering that slot, relative to the start of the table content, or -1
// for a slot no cell covers.
type Map struct {
	Width  int
	Height int
	Cells  []int
}

func cellSpan(cell *document.Node) (colspan, rowspan int) {
	attrs := cell.Attrs()
	colspan, rowspan = 1, 1
	if n, ok := attrs.Int("colspan"); ok && n > 1 {
		colspan = n
	}
	if n, ok := attrs.Int("rowspan"); ok && n > 1 {
		rowspan = n
	}
	return colspan, rowspan
}

// BuildMap scans rows top to bottom and cells left to right. A slot claimed
// by an earlier cell's span is never overwritten by a later one.
func BuildMap(table *document.Node) Map {
	height := table.ChildCount()
	grid := make([][]int, height)
	claim := func(row, col, pos int) {
		for len(grid[row]) <= col {
			grid[row] = append(grid[row], -1)
		}
		if grid[row][col] == -1 {
			grid[row][col] = pos
		}
	}

	pos := 0
	for r := 0; r < height; r++ {
		row := table.Child(r)
		pos++
		col := 0
		for i := 0; i < row.ChildCount(); i++ {
			cell := row.Child(i)
			for col < len(grid[r]) && grid[r][col] != -1 {
				col++
			}
			colspan, rowspan := cellSpan(cell)
			for h := 0; h < rowspan && r+h < height; h++ {
				for w := 0; w < colspan; w++ {
					claim(r+h, col+w, pos)
				}
			}
			col += colspan
			pos += cell.NodeSize()
		}
		pos++
	}

	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	cells := make([]int, 0, width*height)
	for _, row := range grid {
		cells = append(cells, row...)
		for i := len(row); i < width; i++ {
			cells = append(cells, -1)
		}
	}
	return Map{Width: width, Height: height, Cells: cells}
}

// At returns the cell offset at (row, col), or -1.
func (m Map) At(row, col int) int {
	if row < 0 || col < 0 || row >= m.Height || col >= m.Width {
		return -1
	}
	return m.Cells[row*m.Width+col]
}

// PositionAt is an alias of At kept for callers thinking in positions.
func (m Map) PositionAt(row, col int) int { return m.At(row, col) }

func (m Map) clip(rect Rect) Rect {
	return Rect{
		Left:   max(rect.Left, 0),
		Top:    max(rect.Top, 0),
		Right:  min(rect.Right, m.Width),
		Bottom: min(rect.Bottom, m.Height),
	}
}

// CellsInRect returns the distinct offsets of cells whose span intersects
// rect, in row-major order of first appearance.
func (m Map) CellsInRect(rect Rect) []int {
	rect = m.clip(rect)
	var out []int
	seen := make(map[int]bool)
	for row := rect.Top; row < rect.Bottom; row++ {
		for col := rect.Left; col < rect.Right; col++ {
			pos := m.Cells[row*m.Width+col]
			if pos < 0 || seen[pos] {
				continue
			}
			seen[pos] = true
			out = append(out, pos)
		}
	}
	return out
}

// FindCell returns the grid rectangle covered by the cell at offset pos.
func (m Map) FindCell(pos int) (Rect, bool) {
	for i, p := range m.Cells {
		if p != pos {
			continue
		}
		left, top := i%m.Width, i/m.Width
		right, bottom := left+1, top+1
		for right < m.Width && m.Cells[top*m.Width+right] == pos {
			right++
		}
		for bottom < m.Height && m.Cells[bottom*m.Width+left] == pos {
			bottom++
		}
		return Rect{Left: left, Top: top, Right: right, Bottom: bottom}, true
	}
	return Rect{}, false
}

// RectBetween returns the smallest rectangle covering the cells at a and b.
func (m Map) RectBetween(a, b int) Rect {
	ra, okA := m.FindCell(a)
	rb, okB := m.FindCell(b)
	switch {
	case !okA && !okB:
		return Rect{}
	case !okA:
		return rb
	case !okB:
		return ra
	}
	return Rect{
		Left:   min(ra.Left, rb.Left),
		Top:    min(ra.Top, rb.Top),
		Right:  max(ra.Right, rb.Right),
		Bottom: max(ra.Bottom, rb.Bottom),
	}
}

// RectSelected reports whether every cell intersecting rect is among the
// cells of the selection spanned by anchorCell and headCell.
func (m Map) RectSelected(rect Rect, anchorCell, headCell int) bool {
	selected := make(map[int]bool)
	for _, pos := range m.CellsInRect(m.RectBetween(anchorCell, headCell)) {
		selected[pos] = true
	}
	for _, pos := range m.CellsInRect(rect) {
		if !selected[pos] {
			return false
		}
	}
	return true
}

func (m Map) ColumnRect(i int) Rect { return Rect{Left: i, Right: i + 1, Top: 0, Bottom: m.Height} }

func (m Map) RowRect(i int) Rect { return Rect{Left: 0, Right: m.Width, Top: i, Bottom: i + 1} }

func (m Map) FullRect() Rect { return Rect{Left: 0, Right: m.Width, Top: 0, Bottom: m.Height} }
