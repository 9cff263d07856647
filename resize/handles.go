package resize

import (
	"github.com/seo-rii/tiptap/document"
)

// HandleOptions controls where resize handles are shown.
type HandleOptions struct {
	// Always shows handles on every resizable block except images.
	Always bool
	// OnActive shows a handle on a node-selected resizable node.
	OnActive bool
}

func DefaultHandleOptions() HandleOptions {
	return HandleOptions{Always: true, OnActive: true}
}

// Handle is a resize handle drawn below a node.
type Handle struct {
	Pos       int // position of the node
	WidgetPos int // position right after the node
	Meta      Meta
}

// Handles lists the resize handles of doc in document order, with the
// handle of the selected node last when it is not already shown.
func Handles(doc *document.Node, sel document.Selection, opt HandleOptions) []Handle {
	var out []Handle
	seen := make(map[int]bool)
	if opt.Always {
		doc.Descendants(func(n *document.Node, pos int, _ *document.Node, _ int) bool {
			meta, ok := Resolve(n)
			if !ok || meta.Kind == KindImage || n.IsInline() {
				return true
			}
			out = append(out, Handle{Pos: pos, WidgetPos: pos + n.NodeSize(), Meta: meta})
			seen[pos] = true
			return true
		})
	}
	if opt.OnActive && sel.Kind == document.NodeSelection && !seen[sel.Anchor] {
		if n := sel.Node(doc); n != nil {
			if meta, ok := Resolve(n); ok {
				out = append(out, Handle{Pos: sel.Anchor, WidgetPos: sel.Anchor + n.NodeSize(), Meta: meta})
			}
		}
	}
	return out
}

// AutoSelect is a document.AppendFunc that node-selects a resizable node
// right before the cursor, or the resizable node the transaction inserted
// last, so freshly inserted media can be resized at once.
func AutoSelect(applied *document.Transaction, next *document.State) *document.Transaction {
	sel := next.Selection()
	if sel.Kind == document.NodeSelection {
		return nil
	}
	doc := next.Doc()
	pos, ok := resizableBefore(doc, sel.From())
	if !ok {
		pos, ok = lastInserted(applied, doc)
	}
	if !ok {
		return nil
	}
	ns, ok := document.SelectNode(doc, pos)
	if !ok {
		return nil
	}
	return next.Tx().SetSelection(ns)
}

func resizableBefore(doc *document.Node, at int) (int, bool) {
	rp, err := doc.Resolve(at)
	if err != nil {
		return 0, false
	}
	before := rp.NodeBefore()
	if _, ok := Resolve(before); !ok {
		return 0, false
	}
	pos := at - before.NodeSize()
	if pos < 0 {
		return 0, false
	}
	if n := doc.NodeAt(pos); n == nil || n.TypeName() != before.TypeName() {
		return 0, false
	}
	return pos, true
}

// lastInserted finds the node ending the content of the last replace step
// of tr, mapped into doc, when that node is resizable.
func lastInserted(tr *document.Transaction, doc *document.Node) (int, bool) {
	if tr == nil {
		return 0, false
	}
	steps := tr.Steps()
	for i := len(steps) - 1; i >= 0; i-- {
		rs, ok := steps[i].(document.ReplaceStep)
		if !ok {
			continue
		}
		if len(rs.Content) == 0 {
			return 0, false
		}
		last := rs.Content[len(rs.Content)-1]
		if _, ok := Resolve(last); !ok {
			return 0, false
		}
		end := rs.From
		for _, n := range rs.Content {
			if n != nil {
				end += n.NodeSize()
			}
		}
		m := tr.Mapping()
		rest := m.Slice(i + 1)
		pos, deleted := rest.MapResult(end-last.NodeSize(), 1)
		if deleted {
			return 0, false
		}
		if n := doc.NodeAt(pos); n == nil || n.TypeName() != last.TypeName() {
			return 0, false
		}
		return pos, true
	}
	return 0, false
}
