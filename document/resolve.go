package document

import (
	"fmt"

	"github.com/seo-rii/tiptap/internal/grapheme"
)

type pathEntry struct {
	node   *Node
	index  int
	offset int // absolute position before child index
}

// ResolvedPos is a position with its ancestor chain.
type ResolvedPos struct {
	Pos          int
	Depth        int
	ParentOffset int

	path []pathEntry
}

// Resolve resolves pos against n, which is normally the document root.
func (n *Node) Resolve(pos int) (*ResolvedPos, error) {
	if pos < 0 || pos > n.ContentSize() {
		return nil, fmt.Errorf("%w: position %d outside 0..%d", ErrOutOfRange, pos, n.ContentSize())
	}
	var path []pathEntry
	start := 0
	parentOffset := pos
	node := n
	for {
		index, offset := node.findIndex(parentOffset)
		rem := parentOffset - offset
		path = append(path, pathEntry{node: node, index: index, offset: start + offset})
		if rem == 0 {
			break
		}
		node = node.Child(index)
		if node.IsText() {
			break
		}
		parentOffset = rem - 1
		start += offset + 1
	}
	return &ResolvedPos{Pos: pos, Depth: len(path) - 1, ParentOffset: parentOffset, path: path}, nil
}

// ResolveClamped resolves pos after clamping it into the document.
func (n *Node) ResolveClamped(pos int) *ResolvedPos {
	rp, _ := n.Resolve(clampInt(pos, 0, n.ContentSize()))
	return rp
}

func (r *ResolvedPos) depth(d int) int {
	if d < 0 {
		return r.Depth + d
	}
	return d
}

// Node returns the ancestor at depth d. Negative d counts up from the parent.
func (r *ResolvedPos) Node(d int) *Node { return r.path[r.depth(d)].node }

// Index returns the child index in the ancestor at depth d.
func (r *ResolvedPos) Index(d int) int { return r.path[r.depth(d)].index }

// IndexAfter returns the index pointing after this position in the ancestor
// at depth d.
func (r *ResolvedPos) IndexAfter(d int) int {
	d = r.depth(d)
	if d == r.Depth && r.TextOffset() == 0 {
		return r.Index(d)
	}
	return r.Index(d) + 1
}

// Start returns the position at the start of the ancestor at depth d.
func (r *ResolvedPos) Start(d int) int {
	d = r.depth(d)
	if d == 0 {
		return 0
	}
	return r.path[d-1].offset + 1
}

// End returns the position at the end of the ancestor at depth d.
func (r *ResolvedPos) End(d int) int {
	d = r.depth(d)
	return r.Start(d) + r.Node(d).ContentSize()
}

// Before returns the position directly before the ancestor at depth d.
// Depth 0 has no position before it and yields 0.
func (r *ResolvedPos) Before(d int) int {
	d = r.depth(d)
	if d <= 0 {
		return 0
	}
	if d == r.Depth+1 {
		return r.Pos
	}
	return r.path[d-1].offset
}

// After returns the position directly after the ancestor at depth d.
func (r *ResolvedPos) After(d int) int {
	d = r.depth(d)
	if d <= 0 {
		return r.Node(0).ContentSize()
	}
	if d == r.Depth+1 {
		return r.Pos
	}
	return r.path[d-1].offset + r.path[d].node.NodeSize()
}

func (r *ResolvedPos) Parent() *Node { return r.Node(r.Depth) }

func (r *ResolvedPos) Doc() *Node { return r.path[0].node }

// TextOffset is the offset into the text node the position points into, or
// zero between nodes.
func (r *ResolvedPos) TextOffset() int {
	return r.Pos - r.path[len(r.path)-1].offset
}

// NodeAfter returns the node directly after the position. Text is cut at the
// position.
func (r *ResolvedPos) NodeAfter() *Node {
	parent := r.Parent()
	index := r.Index(r.Depth)
	if index == parent.ChildCount() {
		return nil
	}
	child := parent.Child(index)
	if off := r.TextOffset(); off > 0 {
		return newNode(child.typ, nil, nil, sliceText(child, off, child.size))
	}
	return child
}

// NodeBefore returns the node directly before the position.
func (r *ResolvedPos) NodeBefore() *Node {
	parent := r.Parent()
	index := r.Index(r.Depth)
	if off := r.TextOffset(); off > 0 {
		return newNode(parent.Child(index).typ, nil, nil, sliceText(parent.Child(index), 0, off))
	}
	if index == 0 {
		return nil
	}
	return parent.Child(index - 1)
}

// SharedDepth returns the depth of the deepest ancestor that also contains
// pos.
func (r *ResolvedPos) SharedDepth(pos int) int {
	for d := r.Depth; d > 0; d-- {
		if r.Start(d) <= pos && r.End(d) >= pos {
			return d
		}
	}
	return 0
}

// NodeRange is a flat run of sibling nodes inside one parent.
type NodeRange struct {
	From  *ResolvedPos
	To    *ResolvedPos
	Depth int
}

// Start is the position before the first node in the range.
func (r NodeRange) Start() int { return r.From.Before(r.Depth + 1) }

// End is the position after the last node in the range.
func (r NodeRange) End() int { return r.To.After(r.Depth + 1) }

func (r NodeRange) Parent() *Node { return r.From.Node(r.Depth) }

func (r NodeRange) StartIndex() int { return r.From.Index(r.Depth) }

func (r NodeRange) EndIndex() int { return r.To.IndexAfter(r.Depth) }

// Nodes returns the nodes covered by the range.
func (r NodeRange) Nodes() []*Node {
	parent := r.Parent()
	out := make([]*Node, 0, r.EndIndex()-r.StartIndex())
	for i := r.StartIndex(); i < r.EndIndex(); i++ {
		out = append(out, parent.Child(i))
	}
	return out
}

// BlockRange returns the range of block nodes around r and other. pred,
// when non-nil, restricts which ancestor may act as the range parent.
func (r *ResolvedPos) BlockRange(other *ResolvedPos, pred func(*Node) bool) (NodeRange, bool) {
	if other == nil {
		other = r
	}
	if other.Pos < r.Pos {
		return other.BlockRange(r, pred)
	}
	d := r.Depth
	if r.Parent().IsTextblock() || r.Pos == other.Pos {
		d--
	}
	for ; d >= 0; d-- {
		if other.Pos <= r.End(d) && (pred == nil || pred(r.Node(d))) {
			return NodeRange{From: r, To: other, Depth: d}, true
		}
	}
	return NodeRange{}, false
}

func (r *ResolvedPos) String() string {
	return fmt.Sprintf("%d(depth=%d parent=%s offset=%d)", r.Pos, r.Depth, r.Parent().TypeName(), r.ParentOffset)
}

func sliceText(n *Node, from, to int) string {
	if from <= 0 && to >= n.size {
		return n.text
	}
	return grapheme.Slice(n.text, from, to)
}
