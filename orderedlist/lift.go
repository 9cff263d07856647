package orderedlist

import (
	"github.com/seo-rii/tiptap/document"
)

// LiftListItem lifts the list items around the selection one level: out of
// a nested list into the enclosing list, or out of a top-level list.
func LiftListItem(st *document.State, itemType string) bool {
	tr := st.Tx()
	if !liftListItem(tr, itemType) {
		return false
	}
	return st.Dispatch(tr)
}

func liftListItem(tr *document.Transaction, itemType string) bool {
	from, to, ok := selectionRange(tr)
	if !ok {
		return false
	}
	r, ok := from.BlockRange(to, func(n *document.Node) bool {
		return n.ChildCount() > 0 && n.FirstChild().TypeName() == itemType
	})
	if !ok {
		return false
	}
	if r.Depth >= 1 && r.From.Node(r.Depth-1).TypeName() == itemType {
		liftToOuterList(tr, r)
	} else {
		liftOutOfList(tr, r)
	}
	return tr.Err() == nil
}

// liftOutOfList replaces the items of r with their content, splitting the
// list around them.
func liftOutOfList(tr *document.Transaction, r document.NodeRange) {
	if r.Depth == 0 {
		return
	}
	list := r.Parent()
	items := list.Children()
	si, ei := r.StartIndex(), r.EndIndex()
	p := r.From.Before(r.Depth)

	var content []*document.Node
	var keep []document.Gap
	oldPos, newPos := p+1, p
	if si > 0 {
		before := list.Copy(items[:si])
		content = append(content, before)
		keep = append(keep, document.Gap{From: p, To: r.Start(), Target: p})
		oldPos = r.Start()
		newPos = p + before.NodeSize()
	}
	for _, item := range items[si:ei] {
		content = append(content, item.Children()...)
		keep = append(keep, document.Gap{From: oldPos + 1, To: oldPos + 1 + item.ContentSize(), Target: newPos})
		oldPos += item.NodeSize()
		newPos += item.ContentSize()
	}
	if ei < len(items) {
		after := list.Copy(items[ei:])
		content = append(content, after)
		keep = append(keep, document.Gap{From: oldPos, To: p + list.NodeSize() - 1, Target: newPos + 1})
	}
	tr.Replace(p, p+list.NodeSize(), content, keep...)
}

// liftToOuterList moves the items of r, a nested list inside an item of an
// outer list, up into the outer list. Items following r stay nested under
// the last lifted item.
func liftToOuterList(tr *document.Transaction, r document.NodeRange) {
	inner := r.Parent()
	outerItem := r.From.Node(r.Depth - 1)
	oPos := r.From.Before(r.Depth - 1)
	lPos := r.From.Before(r.Depth)
	lIndex := r.From.Index(r.Depth - 1)

	items := inner.Children()
	si, ei := r.StartIndex(), r.EndIndex()
	lifted := append([]*document.Node(nil), items[si:ei]...)
	if ei < len(items) {
		last := lifted[len(lifted)-1]
		lifted[len(lifted)-1] = last.Copy(append(last.Children(), inner.Copy(items[ei:])))
	}

	children := outerItem.Children()
	head := append([]*document.Node(nil), children[:lIndex]...)
	if si > 0 {
		head = append(head, inner.Copy(items[:si]))
	}
	tail := children[lIndex+1:]

	var content []*document.Node
	var keep []document.Gap
	newStart := oPos
	if len(head) > 0 {
		first := outerItem.Copy(head)
		content = append(content, first)
		if si > 0 {
			keep = append(keep, document.Gap{From: oPos, To: r.Start(), Target: oPos})
		} else {
			keep = append(keep, document.Gap{From: oPos, To: lPos, Target: oPos})
		}
		newStart = oPos + first.NodeSize()
	}
	content = append(content, lifted...)
	keep = append(keep, document.Gap{From: r.Start(), To: r.End() - 1, Target: newStart})
	if ei < len(items) {
		keep = append(keep, document.Gap{From: r.End(), To: r.To.End(r.Depth), Target: newStart + r.End() - r.Start()})
	}
	if len(tail) > 0 {
		liftedSize := 0
		for _, n := range lifted {
			liftedSize += n.NodeSize()
		}
		tailStart := lPos + inner.NodeSize()
		content = append(content, outerItem.Copy(tail))
		keep = append(keep, document.Gap{From: tailStart, To: oPos + outerItem.NodeSize() - 1, Target: newStart + liftedSize + 1})
	}
	tr.Replace(oPos, oPos+outerItem.NodeSize(), content, keep...)
}

// ClearNodes turns the textblocks around the selection into paragraphs and
// lifts them out of lists and quotes.
func ClearNodes(st *document.State) bool {
	tr := st.Tx()
	clearNodes(tr)
	if tr.Err() != nil {
		return false
	}
	return st.Dispatch(tr)
}

// maxLift bounds the unwrapping of one block.
const maxLift = 32

func clearNodes(tr *document.Transaction) {
	sel := tr.Selection()
	from, to := sel.From(), sel.To()
	if to == from {
		to = from + 1
	}
	var blocks []int
	tr.Doc().NodesBetween(from, to, func(n *document.Node, pos int, _ *document.Node, _ int) bool {
		if n.IsTextblock() {
			blocks = append(blocks, pos)
			return false
		}
		return true
	})

	para := tr.Schema().Type("paragraph")
	startMap := tr.Mapping()
	base := startMap.Len()
	current := func(pos int) int {
		m := tr.Mapping()
		return m.Slice(base).Map(pos, 1)
	}
	for _, pos := range blocks {
		for i := 0; i < maxLift && tr.Err() == nil; i++ {
			if !liftBlock(tr, current(pos)) {
				break
			}
		}
		at := current(pos)
		if n := tr.Doc().NodeAt(at); para != nil && n != nil && n.IsTextblock() && n.Type() != para {
			tr.SetNodeMarkup(at, para, nil)
		}
	}
}

// liftBlock moves the block at pos one wrapper up. It reports false when the
// block sits directly in the document or in a container it cannot leave.
func liftBlock(tr *document.Transaction, pos int) bool {
	in, err := tr.Doc().Resolve(pos + 1)
	if err != nil {
		return false
	}
	d := in.Depth - 1 // container of the block
	if d < 1 {
		return false
	}
	container := in.Node(d)
	switch {
	case container.Type().Spec.ListRole == document.ListRoleItem:
		r := document.NodeRange{From: in, To: in, Depth: d - 1}
		if d >= 2 && in.Node(d-2).Type().Spec.ListRole == document.ListRoleItem {
			liftToOuterList(tr, r)
		} else {
			liftOutOfList(tr, r)
		}
	case container.TypeName() == "blockquote":
		tr.Lift(document.NodeRange{From: in, To: in, Depth: d})
	default:
		return false
	}
	return tr.Err() == nil
}
