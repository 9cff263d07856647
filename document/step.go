package document

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange     = errors.New("document: position out of range")
	ErrInvalidContent = errors.New("document: invalid content")
	ErrNotTextblock   = errors.New("document: position is not inside a textblock")
	ErrStructure      = errors.New("document: unsupported structure")
	ErrStale          = errors.New("document: transaction built against an older state")
)

// StepMap maps positions through one step. Ranges are (start, oldSize,
// newSize) triples in old-document coordinates, sorted by start.
type StepMap struct {
	ranges []int
}

// EmptyStepMap maps every position to itself.
var EmptyStepMap = StepMap{}

// NewStepMap builds a StepMap from flat (start, oldSize, newSize) triples.
func NewStepMap(ranges ...int) StepMap {
	return StepMap{ranges: append([]int(nil), ranges...)}
}

// Map maps pos. assoc decides on which side a position at an insertion
// point ends up: negative keeps it before the inserted content.
func (m StepMap) Map(pos, assoc int) int {
	out, _ := m.MapResult(pos, assoc)
	return out
}

// MapResult maps pos and reports whether the content on the assoc side of pos
// was deleted.
func (m StepMap) MapResult(pos, assoc int) (int, bool) {
	diff := 0
	for i := 0; i+2 < len(m.ranges); i += 3 {
		start := m.ranges[i]
		if start > pos {
			break
		}
		oldSize, newSize := m.ranges[i+1], m.ranges[i+2]
		end := start + oldSize
		if pos <= end {
			side := assoc
			if oldSize > 0 {
				switch pos {
				case start:
					side = -1
				case end:
					side = 1
				}
			}
			result := start + diff
			if side >= 0 {
				result += newSize
			}
			deleted := oldSize > 0 && ((assoc < 0 && pos != start) || (assoc >= 0 && pos != end))
			return result, deleted
		}
		diff += newSize - oldSize
	}
	return pos + diff, false
}

// Mapping is an ordered list of step maps.
type Mapping struct {
	maps []StepMap
}

func (m *Mapping) Append(sm StepMap) { m.maps = append(m.maps, sm) }

func (m *Mapping) Len() int { return len(m.maps) }

// Slice returns the mapping of maps[from:].
func (m *Mapping) Slice(from int) Mapping {
	if from >= len(m.maps) {
		return Mapping{}
	}
	return Mapping{maps: m.maps[from:]}
}

func (m Mapping) Map(pos, assoc int) int {
	out, _ := m.MapResult(pos, assoc)
	return out
}

// MapResult maps pos through every map and reports whether it was deleted by
// any of them.
func (m Mapping) MapResult(pos, assoc int) (int, bool) {
	deleted := false
	for _, sm := range m.maps {
		var del bool
		pos, del = sm.MapResult(pos, assoc)
		deleted = deleted || del
	}
	return pos, deleted
}

// Step is one primitive document edit.
type Step interface {
	Apply(doc *Node) (*Node, error)
	StepMap() StepMap
}

// Gap marks old content [From, To) inside a replaced range that survives the
// replacement unchanged and starts at Target in the new document. Gaps only
// affect position mapping.
type Gap struct {
	From, To int
	Target   int
}

// ReplaceStep replaces [From, To) with Content. Both ends must share the
// same parent node.
type ReplaceStep struct {
	From, To int
	Content  []*Node
	Keep     []Gap
}

func (s ReplaceStep) insertedSize() int { return sumSizes(normalizeContent(s.Content)) }

func (s ReplaceStep) StepMap() StepMap {
	newEnd := s.From + s.insertedSize()
	if len(s.Keep) == 0 {
		return NewStepMap(s.From, s.To-s.From, newEnd-s.From)
	}
	ranges := make([]int, 0, 3*(len(s.Keep)+1))
	oldPos, newPos := s.From, s.From
	for _, g := range s.Keep {
		ranges = append(ranges, oldPos, g.From-oldPos, g.Target-newPos)
		oldPos = g.To
		newPos = g.Target + (g.To - g.From)
	}
	ranges = append(ranges, oldPos, s.To-oldPos, newEnd-newPos)
	return NewStepMap(ranges...)
}

func (s ReplaceStep) Apply(doc *Node) (*Node, error) {
	if s.From > s.To {
		return nil, fmt.Errorf("%w: replace %d..%d", ErrOutOfRange, s.From, s.To)
	}
	rf, err := doc.Resolve(s.From)
	if err != nil {
		return nil, err
	}
	rt, err := doc.Resolve(s.To)
	if err != nil {
		return nil, err
	}
	if rf.Depth != rt.Depth || rf.Start(rf.Depth) != rt.Start(rt.Depth) {
		return nil, fmt.Errorf("%w: replace %d..%d crosses node boundaries", ErrStructure, s.From, s.To)
	}
	parent := rf.Parent()
	start := rf.Start(rf.Depth)

	content := parent.cutContent(0, s.From-start)
	content = append(content, s.Content...)
	content = append(content, parent.cutContent(s.To-start, parent.ContentSize())...)
	content = normalizeContent(content)
	if !parent.typ.ValidContent(content) {
		return nil, fmt.Errorf("%w: %s cannot hold the replacement at %d", ErrInvalidContent, parent.TypeName(), s.From)
	}
	for _, c := range s.Content {
		if c == nil {
			continue
		}
		if err := checkNode(c); err != nil {
			return nil, err
		}
	}
	return rebuildPath(rf, rf.Depth, parent.Copy(content)), nil
}

// SetNodeMarkupStep changes the type and attributes of the node at Pos.
type SetNodeMarkupStep struct {
	Pos   int
	Type  *NodeType
	Attrs Attrs
}

func (s SetNodeMarkupStep) StepMap() StepMap { return EmptyStepMap }

func (s SetNodeMarkupStep) Apply(doc *Node) (*Node, error) {
	rp, err := doc.Resolve(s.Pos)
	if err != nil {
		return nil, err
	}
	node := rp.NodeAfter()
	if node == nil || node.IsText() || rp.TextOffset() != 0 {
		return nil, fmt.Errorf("%w: no node at %d", ErrOutOfRange, s.Pos)
	}
	t := s.Type
	if t == nil {
		t = node.typ
	}
	if !rp.Parent().typ.AllowsChild(t) || !t.ValidContent(node.content) {
		return nil, fmt.Errorf("%w: cannot turn %s into %s", ErrInvalidContent, node.TypeName(), t.Name)
	}
	if t.IsLeaf() != node.IsLeaf() {
		return nil, fmt.Errorf("%w: cannot turn %s into %s", ErrStructure, node.TypeName(), t.Name)
	}
	next := newNode(t, t.defaultAttrs(s.Attrs), node.content, "")
	parent := rp.Parent()
	content := append([]*Node(nil), parent.content...)
	content[rp.Index(rp.Depth)] = next
	return rebuildPath(rp, rp.Depth, parent.Copy(content)), nil
}

// rebuildPath replaces the ancestor at depth with node and rebuilds every
// ancestor above it.
func rebuildPath(rp *ResolvedPos, depth int, node *Node) *Node {
	for d := depth - 1; d >= 0; d-- {
		parent := rp.Node(d)
		content := append([]*Node(nil), parent.content...)
		content[rp.Index(d)] = node
		node = parent.Copy(content)
	}
	return node
}

func checkNode(n *Node) error {
	if n.IsText() || n.IsLeaf() {
		return nil
	}
	if !n.typ.ValidContent(n.content) {
		return fmt.Errorf("%w: invalid %s content", ErrInvalidContent, n.TypeName())
	}
	for _, c := range n.content {
		if err := checkNode(c); err != nil {
			return err
		}
	}
	return nil
}
