package document

import "fmt"

// Wrapper names a node type and attributes used to wrap content.
type Wrapper struct {
	Type  *NodeType
	Attrs Attrs
}

func (w Wrapper) node(content []*Node) *Node {
	return newNode(w.Type, w.Type.defaultAttrs(w.Attrs), content, "")
}

func (tr *Transaction) clampRange(from, to int) (int, int) {
	size := tr.doc.ContentSize()
	from = clampInt(from, 0, size)
	to = clampInt(to, from, size)
	return from, to
}

// Replace replaces [from, to) with content. Both ends must share a parent.
// keep lists old content that survives inside the replaced range.
func (tr *Transaction) Replace(from, to int, content []*Node, keep ...Gap) *Transaction {
	if tr.err != nil {
		return tr
	}
	return tr.Step(ReplaceStep{From: from, To: to, Content: content, Keep: keep})
}

// DeleteRange deletes [from, to). Positions are clamped into the document;
// an empty range is a no-op. When the range crosses block boundaries the
// blocks at either end are joined where their content allows it.
func (tr *Transaction) DeleteRange(from, to int) *Transaction {
	if tr.err != nil {
		return tr
	}
	from, to = tr.clampRange(from, to)
	if from == to {
		return tr
	}
	rf := tr.doc.ResolveClamped(from)
	rt := tr.doc.ResolveClamped(to)
	if rf.Depth == rt.Depth && rf.Start(rf.Depth) == rt.Start(rt.Depth) {
		return tr.Step(ReplaceStep{From: from, To: to})
	}

	d := rf.SharedDepth(to)
	start, end := from, to
	var left, right *Node
	if rf.Depth > d {
		a := rf.Node(d + 1)
		left = a.Copy(a.cutContent(0, from-rf.Start(d+1)))
		start = rf.Before(d + 1)
	}
	if rt.Depth > d {
		b := rt.Node(d + 1)
		right = b.Copy(b.cutContent(to-rt.Start(d+1), b.ContentSize()))
		end = rt.After(d + 1)
	}

	var content []*Node
	var keep []Gap
	switch {
	case left != nil && right != nil:
		content = joinCut(left, right)
		keep = append(keep, Gap{From: start, To: from, Target: start})
		if rf.Depth == rt.Depth && rf.Parent().IsTextblock() && rt.Parent().IsTextblock() && len(content) == 1 {
			keep = append(keep, Gap{From: to, To: rt.End(rt.Depth), Target: from})
		}
	case left != nil:
		content = dropEmpty(left)
		keep = append(keep, Gap{From: start, To: from, Target: start})
	case right != nil:
		content = dropEmpty(right)
		if len(content) == 1 {
			keep = append(keep, Gap{From: to, To: rt.End(rt.Depth), Target: from + (rt.Depth - d)})
		}
	}
	return tr.Step(ReplaceStep{From: start, To: end, Content: content, Keep: keep})
}

// joinCut merges the right edge of l with the left edge of r.
func joinCut(l, r *Node) []*Node {
	if l.IsTextblock() && r.IsTextblock() {
		all := append(append([]*Node(nil), l.content...), r.content...)
		if l.typ.ValidContent(normalizeContent(all)) {
			return []*Node{l.Copy(all)}
		}
		return []*Node{l, r}
	}
	if l.ChildCount() == 0 && !l.IsTextblock() {
		return dropEmpty(r)
	}
	if r.ChildCount() == 0 && !r.IsTextblock() {
		return []*Node{l}
	}
	if !l.IsLeaf() && !r.IsLeaf() && !l.IsTextblock() && !r.IsTextblock() {
		inner := joinCut(l.LastChild(), r.FirstChild())
		content := append([]*Node(nil), l.content[:len(l.content)-1]...)
		content = append(content, inner...)
		content = append(content, r.content[1:]...)
		if l.typ.ValidContent(content) {
			return []*Node{l.Copy(content)}
		}
	}
	return []*Node{l, r}
}

func dropEmpty(n *Node) []*Node {
	if !n.IsLeaf() && !n.IsTextblock() && n.ChildCount() == 0 {
		return nil
	}
	return []*Node{n}
}

// Insert inserts nodes at pos. The parent at pos must accept them.
func (tr *Transaction) Insert(pos int, nodes ...*Node) *Transaction {
	if tr.err != nil {
		return tr
	}
	pos = clampInt(pos, 0, tr.doc.ContentSize())
	return tr.Step(ReplaceStep{From: pos, To: pos, Content: nodes})
}

// InsertText inserts text at pos, which must be inside a textblock.
func (tr *Transaction) InsertText(pos int, text string) *Transaction {
	if tr.err != nil || text == "" {
		return tr
	}
	rp := tr.doc.ResolveClamped(pos)
	if !rp.Parent().IsTextblock() {
		return tr.fail(fmt.Errorf("%w: %d", ErrNotTextblock, pos))
	}
	return tr.Step(ReplaceStep{From: rp.Pos, To: rp.Pos, Content: []*Node{tr.schema.Text(text)}})
}

// ReplaceWith replaces [from, to) with nodes. Ranges crossing node
// boundaries are deleted first.
func (tr *Transaction) ReplaceWith(from, to int, nodes ...*Node) *Transaction {
	if tr.err != nil {
		return tr
	}
	from, to = tr.clampRange(from, to)
	rf := tr.doc.ResolveClamped(from)
	rt := tr.doc.ResolveClamped(to)
	if rf.Depth == rt.Depth && rf.Start(rf.Depth) == rt.Start(rt.Depth) {
		return tr.Step(ReplaceStep{From: from, To: to, Content: nodes})
	}
	mark := tr.mapping.Len()
	tr.DeleteRange(from, to)
	m := tr.mapping.Slice(mark)
	return tr.Insert(m.Map(from, -1), nodes...)
}

// InsertBlocks inserts block nodes at pos. Inside an empty textblock the
// textblock is replaced; at the start or end of a textblock the blocks go
// before or after it; in the middle the textblock is split first.
func (tr *Transaction) InsertBlocks(pos int, nodes ...*Node) *Transaction {
	if tr.err != nil {
		return tr
	}
	rp := tr.doc.ResolveClamped(pos)
	parent := rp.Parent()
	if !parent.IsTextblock() || rp.Depth == 0 {
		return tr.Insert(rp.Pos, nodes...)
	}
	d := rp.Depth
	switch {
	case parent.ContentSize() == 0:
		before, after := rp.Before(d), rp.After(d)
		if rp.Node(d-1).ChildCount() == 1 && len(nodes) == 0 {
			return tr
		}
		return tr.Step(ReplaceStep{From: before, To: after, Content: nodes})
	case rp.ParentOffset == 0:
		return tr.Insert(rp.Before(d), nodes...)
	case rp.ParentOffset == parent.ContentSize():
		return tr.Insert(rp.After(d), nodes...)
	default:
		tr.SplitBlock(rp.Pos)
		return tr.Insert(rp.Pos+1, nodes...)
	}
}

// SplitBlock splits the textblock around pos into two nodes of the same
// type.
func (tr *Transaction) SplitBlock(pos int) *Transaction {
	if tr.err != nil {
		return tr
	}
	rp := tr.doc.ResolveClamped(pos)
	parent := rp.Parent()
	if !parent.IsTextblock() || rp.Depth == 0 {
		return tr.fail(fmt.Errorf("%w: split at %d", ErrNotTextblock, pos))
	}
	d := rp.Depth
	left := parent.Copy(parent.cutContent(0, rp.ParentOffset))
	right := parent.Copy(parent.cutContent(rp.ParentOffset, parent.ContentSize()))
	return tr.Step(ReplaceStep{
		From:    rp.Before(d),
		To:      rp.After(d),
		Content: []*Node{left, right},
		Keep: []Gap{
			{From: rp.Before(d), To: rp.Pos, Target: rp.Before(d)},
			{From: rp.Pos, To: rp.End(d), Target: rp.Pos + 2},
		},
	})
}

// SetNodeMarkup replaces the type (nil keeps it) and attributes of the node
// at pos.
func (tr *Transaction) SetNodeMarkup(pos int, t *NodeType, attrs Attrs) *Transaction {
	if tr.err != nil {
		return tr
	}
	return tr.Step(SetNodeMarkupStep{Pos: pos, Type: t, Attrs: attrs})
}

// SetNodeAttributes merges attrs into the attributes of the node at pos. A
// nil value clears the attribute.
func (tr *Transaction) SetNodeAttributes(pos int, attrs Attrs) *Transaction {
	if tr.err != nil {
		return tr
	}
	rp, err := tr.doc.Resolve(pos)
	if err != nil {
		return tr.fail(err)
	}
	node := rp.NodeAfter()
	if node == nil || node.IsText() || rp.TextOffset() != 0 {
		return tr.fail(fmt.Errorf("%w: no node at %d", ErrOutOfRange, pos))
	}
	return tr.Step(SetNodeMarkupStep{Pos: pos, Type: node.typ, Attrs: node.attrs.Merge(attrs)})
}

// SetBlockType changes every textblock touching [from, to) to t.
func (tr *Transaction) SetBlockType(from, to int, t *NodeType, attrs Attrs) *Transaction {
	if tr.err != nil {
		return tr
	}
	from, to = tr.clampRange(from, to)
	if from == to {
		to = from + 1
	}
	var targets []int
	want := t.defaultAttrs(attrs)
	tr.doc.NodesBetween(from, to, func(n *Node, pos int, _ *Node, _ int) bool {
		if !n.IsTextblock() {
			return true
		}
		if n.typ != t || !n.attrs.Equal(want) {
			targets = append(targets, pos)
		}
		return false
	})
	for _, pos := range targets {
		tr.SetNodeMarkup(pos, t, attrs)
	}
	return tr
}

// Wrap wraps the nodes of r in the given wrappers, outermost first.
func (tr *Transaction) Wrap(r NodeRange, wrappers ...Wrapper) *Transaction {
	if tr.err != nil {
		return tr
	}
	if len(wrappers) == 0 {
		return tr
	}
	content := r.Nodes()
	for i := len(wrappers) - 1; i >= 0; i-- {
		content = []*Node{wrappers[i].node(content)}
	}
	start, end := r.Start(), r.End()
	return tr.Step(ReplaceStep{
		From:    start,
		To:      end,
		Content: content,
		Keep:    []Gap{{From: start, To: end, Target: start + len(wrappers)}},
	})
}

// WrapEach wraps the nodes of r in outer, putting each node into its own
// each wrapper.
func (tr *Transaction) WrapEach(r NodeRange, outer, each Wrapper) *Transaction {
	if tr.err != nil {
		return tr
	}
	start, end := r.Start(), r.End()
	nodes := r.Nodes()
	items := make([]*Node, 0, len(nodes))
	keep := make([]Gap, 0, len(nodes))
	oldPos, newPos := start, start+1
	for _, n := range nodes {
		items = append(items, each.node([]*Node{n}))
		keep = append(keep, Gap{From: oldPos, To: oldPos + n.NodeSize(), Target: newPos + 1})
		oldPos += n.NodeSize()
		newPos += n.NodeSize() + 2
	}
	return tr.Step(ReplaceStep{From: start, To: end, Content: []*Node{outer.node(items)}, Keep: keep})
}

// Lift moves the nodes of r out of their parent, splitting the parent around
// them. The parent must not be the document.
func (tr *Transaction) Lift(r NodeRange) *Transaction {
	if tr.err != nil {
		return tr
	}
	if r.Depth == 0 {
		return tr.fail(fmt.Errorf("%w: cannot lift out of the document", ErrStructure))
	}
	parent := r.Parent()
	before := parent.content[:r.StartIndex()]
	lifted := parent.content[r.StartIndex():r.EndIndex()]
	after := parent.content[r.EndIndex():]

	p := r.From.Before(r.Depth)
	sb, sn, sa := sumSizes(before), sumSizes(lifted), sumSizes(after)
	var content []*Node
	var keep []Gap
	target := p
	if len(before) > 0 {
		content = append(content, parent.Copy(before))
		keep = append(keep, Gap{From: p + 1, To: p + 1 + sb, Target: p + 1})
		target = p + sb + 2
	}
	content = append(content, lifted...)
	keep = append(keep, Gap{From: p + 1 + sb, To: p + 1 + sb + sn, Target: target})
	if len(after) > 0 {
		content = append(content, parent.Copy(after))
		keep = append(keep, Gap{From: p + 1 + sb + sn, To: p + 1 + sb + sn + sa, Target: target + sn + 1})
	}
	return tr.Step(ReplaceStep{From: p, To: p + parent.NodeSize(), Content: content, Keep: keep})
}

// CanJoin reports whether the nodes directly before and after pos can be
// joined into one.
func CanJoin(doc *Node, pos int) bool {
	rp, err := doc.Resolve(pos)
	if err != nil || rp.TextOffset() != 0 {
		return false
	}
	a, b := rp.NodeBefore(), rp.NodeAfter()
	if a == nil || b == nil || a.IsLeaf() || b.IsLeaf() || a.IsText() || b.IsText() {
		return false
	}
	all := append(append([]*Node(nil), a.content...), b.content...)
	return a.typ.ValidContent(normalizeContent(all))
}

// Join joins the nodes directly before and after pos.
func (tr *Transaction) Join(pos int) *Transaction {
	if tr.err != nil {
		return tr
	}
	if !CanJoin(tr.doc, pos) {
		return tr.fail(fmt.Errorf("%w: cannot join at %d", ErrStructure, pos))
	}
	rp := tr.doc.ResolveClamped(pos)
	a, b := rp.NodeBefore(), rp.NodeAfter()
	start, end := pos-a.NodeSize(), pos+b.NodeSize()
	joined := a.Copy(append(append([]*Node(nil), a.content...), b.content...))
	return tr.Step(ReplaceStep{
		From:    start,
		To:      end,
		Content: []*Node{joined},
		Keep: []Gap{
			{From: start, To: pos - 1, Target: start},
			{From: pos + 1, To: end - 1, Target: pos - 1},
		},
	})
}

// DeleteNode removes the node starting at pos.
func (tr *Transaction) DeleteNode(pos int) *Transaction {
	if tr.err != nil {
		return tr
	}
	rp, err := tr.doc.Resolve(pos)
	if err != nil {
		return tr.fail(err)
	}
	node := rp.NodeAfter()
	if node == nil || rp.TextOffset() != 0 {
		return tr.fail(fmt.Errorf("%w: no node at %d", ErrOutOfRange, pos))
	}
	return tr.Step(ReplaceStep{From: pos, To: pos + node.NodeSize()})
}

// ReplaceNode replaces the node starting at pos with nodes.
func (tr *Transaction) ReplaceNode(pos int, nodes ...*Node) *Transaction {
	if tr.err != nil {
		return tr
	}
	rp, err := tr.doc.Resolve(pos)
	if err != nil {
		return tr.fail(err)
	}
	node := rp.NodeAfter()
	if node == nil || rp.TextOffset() != 0 {
		return tr.fail(fmt.Errorf("%w: no node at %d", ErrOutOfRange, pos))
	}
	return tr.Step(ReplaceStep{From: pos, To: pos + node.NodeSize(), Content: nodes})
}
