package document

import "fmt"

// SelectionKind discriminates Selection values.
type SelectionKind uint8

const (
	TextSelection SelectionKind = iota
	NodeSelection
	CellSelection
)

func (k SelectionKind) String() string {
	switch k {
	case TextSelection:
		return "text"
	case NodeSelection:
		return "node"
	case CellSelection:
		return "cell"
	default:
		return fmt.Sprintf("SelectionKind(%d)", uint8(k))
	}
}

// Selection is a text range, a selected node or a rectangle of table cells.
//
// For node selections Anchor is the position before the node and Head the
// position after it. For cell selections Anchor and Head are the positions
// before the anchor and head cells.
type Selection struct {
	Kind   SelectionKind
	Anchor int
	Head   int
}

// Cursor returns an empty text selection at pos.
func Cursor(pos int) Selection { return Selection{Kind: TextSelection, Anchor: pos, Head: pos} }

// TextRange returns a text selection from anchor to head.
func TextRange(anchor, head int) Selection {
	return Selection{Kind: TextSelection, Anchor: anchor, Head: head}
}

// SelectNode returns a node selection of the node starting at pos.
func SelectNode(doc *Node, pos int) (Selection, bool) {
	rp, err := doc.Resolve(pos)
	if err != nil || rp.TextOffset() != 0 {
		return Selection{}, false
	}
	node := rp.NodeAfter()
	if node == nil || node.IsText() || node.typ.Spec.NotSelectable {
		return Selection{}, false
	}
	return Selection{Kind: NodeSelection, Anchor: pos, Head: pos + node.NodeSize()}, true
}

// CellRange returns a cell selection between two cell positions.
func CellRange(anchorCell, headCell int) Selection {
	return Selection{Kind: CellSelection, Anchor: anchorCell, Head: headCell}
}

func (s Selection) From() int { return minInt(s.Anchor, s.Head) }

func (s Selection) To() int { return maxInt(s.Anchor, s.Head) }

func (s Selection) Empty() bool { return s.Kind == TextSelection && s.Anchor == s.Head }

// Node returns the selected node of a node selection.
func (s Selection) Node(doc *Node) *Node {
	if s.Kind != NodeSelection {
		return nil
	}
	return doc.NodeAt(s.Anchor)
}

func (s Selection) String() string {
	return fmt.Sprintf("%s(%d,%d)", s.Kind, s.Anchor, s.Head)
}

// Map maps the selection through m. The result is not validated against a
// document; see Validate.
func (s Selection) Map(m Mapping) Selection {
	switch s.Kind {
	case NodeSelection:
		pos, deleted := m.MapResult(s.Anchor, 1)
		end := m.Map(s.Head, -1)
		if deleted {
			return Cursor(pos)
		}
		return Selection{Kind: NodeSelection, Anchor: pos, Head: end}
	case CellSelection:
		return Selection{Kind: CellSelection, Anchor: m.Map(s.Anchor, 1), Head: m.Map(s.Head, 1)}
	default:
		return Selection{Kind: TextSelection, Anchor: m.Map(s.Anchor, 1), Head: m.Map(s.Head, 1)}
	}
}

// Validate returns s if it is valid in doc, otherwise the nearest valid
// selection.
func (s Selection) Validate(doc *Node) Selection {
	size := doc.ContentSize()
	switch s.Kind {
	case NodeSelection:
		if sel, ok := SelectNode(doc, clampInt(s.Anchor, 0, size)); ok && s.Anchor >= 0 && sel.Head == s.Head {
			return sel
		}
		return Near(doc, s.Anchor, 1)
	case CellSelection:
		if validCellPair(doc, s.Anchor, s.Head) {
			return s
		}
		return Near(doc, s.Anchor, 1)
	default:
		anchor := clampInt(s.Anchor, 0, size)
		head := clampInt(s.Head, 0, size)
		if inTextblock(doc, anchor) && inTextblock(doc, head) {
			return TextRange(anchor, head)
		}
		if anchor == head {
			return Near(doc, head, 1)
		}
		a := Near(doc, anchor, 1)
		h := Near(doc, head, -1)
		if a.Kind != TextSelection || h.Kind != TextSelection {
			return Near(doc, head, -1)
		}
		return TextRange(a.Head, h.Head)
	}
}

func inTextblock(doc *Node, pos int) bool {
	rp, err := doc.Resolve(pos)
	return err == nil && rp.Parent().IsTextblock()
}

func isCell(n *Node) bool {
	return n != nil && (n.typ.Spec.TableRole == TableRoleCell || n.typ.Spec.TableRole == TableRoleHeaderCell)
}

func validCellPair(doc *Node, a, b int) bool {
	ra, err := doc.Resolve(a)
	if err != nil || !isCell(ra.NodeAfter()) || ra.TextOffset() != 0 {
		return false
	}
	rb, err := doc.Resolve(b)
	if err != nil || !isCell(rb.NodeAfter()) || rb.TextOffset() != 0 {
		return false
	}
	// both cells must live in the same table
	if ra.Depth < 2 || rb.Depth < 2 {
		return false
	}
	return ra.Start(ra.Depth-1) == rb.Start(rb.Depth-1)
}

// Near finds a valid text selection near pos, searching in direction bias
// first and then the other way. When the document has no textblock it
// selects the nearest selectable atom.
func Near(doc *Node, pos int, bias int) Selection {
	pos = clampInt(pos, 0, doc.ContentSize())
	if inTextblock(doc, pos) {
		return Cursor(pos)
	}
	type cand struct{ start, end int }
	var blocks []cand
	var atoms []int
	doc.Descendants(func(n *Node, p int, _ *Node, _ int) bool {
		if n.IsTextblock() {
			blocks = append(blocks, cand{p + 1, p + n.NodeSize() - 1})
			return false
		}
		if n.IsBlock() && n.IsAtom() && !n.typ.Spec.NotSelectable {
			atoms = append(atoms, p)
		}
		return true
	})
	if len(blocks) > 0 {
		best := -1
		bestDist := 0
		for _, b := range blocks {
			var target, dist int
			switch {
			case pos < b.start:
				target, dist = b.start, b.start-pos
				if bias < 0 {
					dist++
				}
			case pos > b.end:
				target, dist = b.end, pos-b.end
				if bias > 0 {
					dist++
				}
			default:
				target, dist = pos, 0
			}
			if best < 0 || dist < bestDist {
				best, bestDist = target, dist
			}
		}
		return Cursor(best)
	}
	best, bestDist := -1, 0
	for _, p := range atoms {
		dist := p - pos
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best, bestDist = p, dist
		}
	}
	if best >= 0 {
		if sel, ok := SelectNode(doc, best); ok {
			return sel
		}
	}
	return Cursor(pos)
}

// AtStart returns the first valid cursor position in doc.
func AtStart(doc *Node) Selection { return Near(doc, 0, 1) }

// AtEnd returns the last valid cursor position in doc.
func AtEnd(doc *Node) Selection { return Near(doc, doc.ContentSize(), -1) }
