package upload

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/seo-rii/tiptap/document"
)

// SkeletonNode is the node type of upload placeholders.
const SkeletonNode = "tiptap-upload-skeleton"

// Kind selects the default placeholder height.
type Kind string

const (
	KindImage Kind = "image"
	KindFile  Kind = "file"
	KindPDF   Kind = "pdf"
	KindEmbed Kind = "embed"
	KindBlock Kind = "block"
)

const (
	MinSkeletonHeight = 44
	MaxSkeletonHeight = 1200
)

var defaultHeights = map[Kind]int{
	KindImage: 220,
	KindFile:  56,
	KindPDF:   420,
	KindEmbed: 420,
	KindBlock: 180,
}

// DefaultHeight returns the placeholder height for kind. Unknown kinds use
// the block height.
func DefaultHeight(kind Kind) int {
	if h, ok := defaultHeights[kind]; ok {
		return h
	}
	return defaultHeights[KindBlock]
}

// ClampHeight rounds h and keeps it within the placeholder bounds.
func ClampHeight(h float64) int {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return DefaultHeight(KindBlock)
	}
	return int(math.Max(MinSkeletonHeight, math.Min(MaxSkeletonHeight, math.Round(h))))
}

// SkeletonOptions configures InsertSkeleton. Zero values select defaults.
type SkeletonOptions struct {
	Kind   Kind
	Height int
	// At is the insert position. Defaults to the selection start.
	At *int
	// NoSelect keeps the current selection instead of node-selecting the
	// placeholder.
	NoSelect bool
	// NoParagraph skips the empty paragraph inserted after the placeholder.
	NoParagraph bool
}

// Skeleton is a handle to a placeholder in a state. The handle finds its
// node by upload ID, so it survives edits around the placeholder.
type Skeleton struct {
	ID string
	st *document.State
}

func newUploadID() string {
	// Eight base-36 digits.
	const lo, hi = 78364164096, 2821109907456
	return fmt.Sprintf("upload-%d-%s", time.Now().UnixMilli(), strconv.FormatUint(lo+rand.Uint64N(hi-lo), 36))
}

// InsertSkeleton inserts a placeholder into st and returns its handle. It
// returns nil when the schema has no placeholder type or the insert fails.
func InsertSkeleton(st *document.State, opt SkeletonOptions) *Skeleton {
	schema := st.Schema()
	if schema.Type(SkeletonNode) == nil {
		return nil
	}
	if opt.Kind == "" {
		opt.Kind = KindBlock
	}
	height := opt.Height
	if height == 0 {
		height = DefaultHeight(opt.Kind)
	}
	id := newUploadID()
	nodes := []*document.Node{schema.Node(SkeletonNode, document.Attrs{
		"uploadId": id,
		"kind":     string(opt.Kind),
		"height":   ClampHeight(float64(height)),
	})}
	if !opt.NoParagraph && schema.Type("paragraph") != nil {
		nodes = append(nodes, schema.Node("paragraph", nil))
	}

	pos := st.Selection().From()
	if opt.At != nil {
		pos = *opt.At
	}
	pos = max(0, min(pos, st.Doc().ContentSize()))

	tr := st.Tx().InsertBlocks(pos, nodes...)
	if !opt.NoSelect {
		if at, ok := findSkeleton(tr.Doc(), id); ok {
			if sel, ok := document.SelectNode(tr.Doc(), at); ok {
				tr.SetSelection(sel)
			}
		}
	}
	if !st.Dispatch(tr) {
		return nil
	}
	return &Skeleton{ID: id, st: st}
}

func findSkeleton(doc *document.Node, id string) (int, bool) {
	found := -1
	doc.Descendants(func(n *document.Node, pos int, _ *document.Node, _ int) bool {
		if found >= 0 {
			return false
		}
		if n.TypeName() == SkeletonNode && n.Attr("uploadId") == id {
			found = pos
			return false
		}
		return true
	})
	return found, found >= 0
}

// Pos returns the position of the placeholder.
func (s *Skeleton) Pos() (int, bool) {
	if s == nil {
		return 0, false
	}
	return findSkeleton(s.st.Doc(), s.ID)
}

// Exists reports whether the placeholder is still in the document.
func (s *Skeleton) Exists() bool {
	_, ok := s.Pos()
	return ok
}

// ReplaceWith swaps the placeholder for node and, when selectNode is set,
// node-selects the replacement.
func (s *Skeleton) ReplaceWith(node *document.Node, selectNode bool) bool {
	pos, ok := s.Pos()
	if !ok || node == nil {
		return false
	}
	tr := s.st.Tx().ReplaceNode(pos, node)
	if selectNode && tr.Err() == nil {
		if sel, ok := document.SelectNode(tr.Doc(), pos); ok {
			tr.SetSelection(sel)
		}
	}
	return s.st.Dispatch(tr)
}

// Remove deletes the placeholder together with an empty paragraph right
// after it.
func (s *Skeleton) Remove() bool {
	pos, ok := s.Pos()
	if !ok {
		return false
	}
	doc := s.st.Doc()
	to := pos + doc.NodeAt(pos).NodeSize()
	if next := doc.NodeAt(to); next != nil && next.TypeName() == "paragraph" && next.ContentSize() == 0 {
		to += next.NodeSize()
	}
	return s.st.Dispatch(s.st.Tx().DeleteRange(pos, to))
}
