package document

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/seo-rii/tiptap/internal/grapheme"
)

// Attrs maps attribute names to primitive values (string, int, float64,
// bool or nil).
type Attrs map[string]any

// Clone returns a shallow copy of a.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return nil
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Merge returns a copy of a with every key of b set.
func (a Attrs) Merge(b Attrs) Attrs {
	out := make(Attrs, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// String returns the attribute formatted as a string; nil and missing
// attributes yield "".
func (a Attrs) String(key string) string {
	switch v := a[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Int returns the attribute as an int when it holds an integral number or a
// numeric string.
func (a Attrs) Int(key string) (int, bool) {
	switch v := a[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Equal reports whether a and b hold the same keys and values.
func (a Attrs) Equal(b Attrs) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}

// Node is an immutable document tree element.
type Node struct {
	typ     *NodeType
	attrs   Attrs
	content []*Node
	text    string
	size    int
}

func newNode(t *NodeType, attrs Attrs, content []*Node, text string) *Node {
	n := &Node{typ: t, attrs: attrs, text: text}
	if t.IsText() {
		n.size = grapheme.Count(text)
		return n
	}
	if t.IsLeaf() {
		n.size = 1
		return n
	}
	n.content = normalizeContent(content)
	n.size = 2 + sumSizes(n.content)
	return n
}

// normalizeContent drops nil children and merges adjacent text nodes.
func normalizeContent(in []*Node) []*Node {
	out := make([]*Node, 0, len(in))
	for _, c := range in {
		if c == nil || (c.IsText() && c.text == "") {
			continue
		}
		if c.IsText() && len(out) > 0 && out[len(out)-1].IsText() {
			prev := out[len(out)-1]
			out[len(out)-1] = newNode(prev.typ, nil, nil, prev.text+c.text)
			continue
		}
		out = append(out, c)
	}
	return out
}

func sumSizes(nodes []*Node) int {
	n := 0
	for _, c := range nodes {
		n += c.size
	}
	return n
}

func (n *Node) Type() *NodeType { return n.typ }

func (n *Node) TypeName() string { return n.typ.Name }

// Attrs returns a copy of the node's attributes.
func (n *Node) Attrs() Attrs { return n.attrs.Clone() }

// Attr returns a single attribute value.
func (n *Node) Attr(key string) any { return n.attrs[key] }

// Text returns the text of a text node.
func (n *Node) Text() string { return n.text }

func (n *Node) IsText() bool      { return n.typ.IsText() }
func (n *Node) IsLeaf() bool      { return n.typ.IsLeaf() }
func (n *Node) IsBlock() bool     { return n.typ.IsBlock() }
func (n *Node) IsInline() bool    { return n.typ.IsInline() }
func (n *Node) IsTextblock() bool { return n.typ.IsTextblock() }
func (n *Node) IsAtom() bool      { return n.typ.Spec.Atom || n.IsLeaf() }

// NodeSize is the number of offsets the node occupies in its parent.
func (n *Node) NodeSize() int { return n.size }

// ContentSize is the number of offsets inside the node.
func (n *Node) ContentSize() int {
	if n.IsText() || n.IsLeaf() {
		return 0
	}
	return n.size - 2
}

func (n *Node) ChildCount() int { return len(n.content) }

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.content) {
		return nil
	}
	return n.content[i]
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return append([]*Node(nil), n.content...) }

func (n *Node) FirstChild() *Node { return n.Child(0) }

func (n *Node) LastChild() *Node { return n.Child(len(n.content) - 1) }

// Copy returns a node of the same type and attributes with new content.
func (n *Node) Copy(content []*Node) *Node {
	return newNode(n.typ, n.attrs, content, "")
}

// WithMarkup returns a node with the given type and attributes and the same
// content.
func (n *Node) WithMarkup(t *NodeType, attrs Attrs) *Node {
	return newNode(t, t.defaultAttrs(attrs), n.content, n.text)
}

// findIndex returns the child index containing content offset pos, and the
// offset at which that child starts. Positions on a boundary resolve to the
// child after it.
func (n *Node) findIndex(pos int) (index, offset int) {
	if pos <= 0 {
		return 0, 0
	}
	size := n.ContentSize()
	if pos >= size {
		return len(n.content), size
	}
	cur := 0
	for i, c := range n.content {
		end := cur + c.size
		if end > pos {
			return i, cur
		}
		cur = end
	}
	return len(n.content), size
}

// NodeAt returns the node starting at content position pos, descending into
// children. It returns nil when no node starts there.
func (n *Node) NodeAt(pos int) *Node {
	node := n
	for {
		if pos < 0 || pos > node.ContentSize() {
			return nil
		}
		index, offset := node.findIndex(pos)
		child := node.Child(index)
		if child == nil {
			return nil
		}
		if offset == pos || child.IsText() {
			return child
		}
		node = child
		pos -= offset + 1
	}
}

// NodesBetween calls fn for every node overlapping the content range
// [from, to). pos is relative to n's content start. Returning false skips the
// node's children.
func (n *Node) NodesBetween(from, to int, fn func(node *Node, pos int, parent *Node, index int) bool) {
	n.nodesBetween(from, to, 0, fn)
}

func (n *Node) nodesBetween(from, to, base int, fn func(node *Node, pos int, parent *Node, index int) bool) {
	pos := 0
	for i := 0; i < len(n.content) && pos < to; i++ {
		child := n.content[i]
		end := pos + child.size
		if end > from && fn(child, base+pos, n, i) && child.ContentSize() > 0 {
			start := pos + 1
			child.nodesBetween(maxInt(0, from-start), minInt(child.ContentSize(), to-start), base+start, fn)
		}
		pos = end
	}
}

// Descendants calls fn for every node inside n.
func (n *Node) Descendants(fn func(node *Node, pos int, parent *Node, index int) bool) {
	n.NodesBetween(0, n.ContentSize(), fn)
}

// TextBetween returns the text in [from, to); blockSep is inserted between
// textblocks.
func (n *Node) TextBetween(from, to int, blockSep string) string {
	from = clampInt(from, 0, n.ContentSize())
	to = clampInt(to, from, n.ContentSize())
	var sb strings.Builder
	first := true
	n.NodesBetween(from, to, func(node *Node, pos int, _ *Node, _ int) bool {
		if node.IsText() {
			start := maxInt(from, pos) - pos
			end := minInt(to, pos+node.size) - pos
			sb.WriteString(grapheme.Slice(node.text, start, end))
			return false
		}
		if node.IsTextblock() && blockSep != "" {
			if first {
				first = false
			} else {
				sb.WriteString(blockSep)
			}
		}
		return true
	})
	return sb.String()
}

// TextContent concatenates all text inside n.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.text
	}
	return n.TextBetween(0, n.ContentSize(), "")
}

// cutContent returns the children covering content range [from, to), with
// text and partially covered containers cut at the boundaries.
func (n *Node) cutContent(from, to int) []*Node {
	from = clampInt(from, 0, n.ContentSize())
	to = clampInt(to, from, n.ContentSize())
	if from == to {
		return nil
	}
	out := make([]*Node, 0, len(n.content))
	pos := 0
	for _, c := range n.content {
		end := pos + c.size
		if end <= from {
			pos = end
			continue
		}
		if pos >= to {
			break
		}
		switch {
		case pos >= from && end <= to:
			out = append(out, c)
		case c.IsText():
			out = append(out, newNode(c.typ, nil, nil, grapheme.Slice(c.text, maxInt(from, pos)-pos, minInt(to, end)-pos)))
		case !c.IsLeaf():
			inner := c.cutContent(maxInt(0, from-pos-1), minInt(c.ContentSize(), to-pos-1))
			out = append(out, c.Copy(inner))
		}
		pos = end
	}
	return out
}

// Eq reports structural equality.
func (n *Node) Eq(other *Node) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil {
		return false
	}
	if n.typ != other.typ || n.text != other.text || !n.attrs.Equal(other.attrs) {
		return false
	}
	if len(n.content) != len(other.content) {
		return false
	}
	for i := range n.content {
		if !n.content[i].Eq(other.content[i]) {
			return false
		}
	}
	return true
}

// String renders a compact debug form such as doc(paragraph("ab")).
// Attributes that differ from the type defaults are listed in braces.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.IsText() {
		return strconv.Quote(n.text)
	}
	var sb strings.Builder
	sb.WriteString(n.typ.Name)
	if attrs := n.nonDefaultAttrs(); attrs != "" {
		sb.WriteString("{" + attrs + "}")
	}
	if n.IsLeaf() {
		return sb.String()
	}
	sb.WriteByte('(')
	for i, c := range n.content {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (n *Node) nonDefaultAttrs() string {
	keys := make([]string, 0, len(n.attrs))
	for k, v := range n.attrs {
		if def, ok := n.typ.Spec.Attrs[k]; ok && reflect.DeepEqual(def, v) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, n.attrs[k]))
	}
	return strings.Join(parts, " ")
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
