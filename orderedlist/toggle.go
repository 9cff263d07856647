// Package orderedlist toggles bullet and ordered lists around the selection,
// recognizes typed list markers such as "1. " or "가. " and renders list
// markers for display.
package orderedlist

import (
	"github.com/seo-rii/tiptap/document"
)

type found struct {
	pos   int
	depth int
	node  *document.Node
}

func findParent(rp *document.ResolvedPos, pred func(*document.Node) bool) (found, bool) {
	for d := rp.Depth; d > 0; d-- {
		if n := rp.Node(d); pred(n) {
			return found{pos: rp.Before(d), depth: d, node: n}, true
		}
	}
	return found{}, false
}

func isList(n *document.Node) bool { return n.Type().Spec.ListRole == document.ListRoleList }

func selectionRange(tr *document.Transaction) (from, to *document.ResolvedPos, ok bool) {
	sel := tr.Selection()
	from, err := tr.Doc().Resolve(sel.From())
	if err != nil {
		return nil, nil, false
	}
	to, err = tr.Doc().Resolve(sel.To())
	if err != nil {
		return nil, nil, false
	}
	return from, to, true
}

// ToggleList toggles a list of listType around the selection:
//   - inside a list of the same type and marker style, the items are lifted
//     out of the list;
//   - inside another list whose items listType accepts, that list is retyped
//     in place;
//   - otherwise the selected blocks are wrapped in a new list.
//
// Retyped and wrapped lists are joined with adjacent lists of the same type.
func ToggleList(st *document.State, listType, itemType string, attrs document.Attrs) bool {
	tr := st.Tx()
	if !toggleList(tr, listType, itemType, attrs) {
		return false
	}
	return st.Dispatch(tr)
}

func toggleList(tr *document.Transaction, listType, itemType string, attrs document.Attrs) bool {
	lt, it := tr.Schema().Type(listType), tr.Schema().Type(itemType)
	if lt == nil || it == nil {
		return false
	}
	from, to, ok := selectionRange(tr)
	if !ok {
		return false
	}
	r, ok := from.BlockRange(to, nil)
	if !ok {
		return false
	}

	if parent, ok := findParent(from, isList); ok && r.Depth >= 1 && r.Depth-parent.depth <= 1 {
		want := lt.Spec.Attrs.Merge(attrs)
		if parent.node.Type() == lt && parent.node.Attrs().String("type") == want.String("type") {
			return liftListItem(tr, itemType)
		}
		if lt.ValidContent(parent.node.Children()) {
			tr.SetNodeMarkup(parent.pos, lt, attrs)
			joinBackward(tr, lt)
			joinForward(tr, lt)
			return tr.Err() == nil
		}
	}

	if !canWrap(r, lt, it) {
		clearNodes(tr)
	}
	if !wrapInList(tr, lt, it, attrs) {
		return false
	}
	joinBackward(tr, lt)
	joinForward(tr, lt)
	return tr.Err() == nil
}

func canWrap(r document.NodeRange, lt, it *document.NodeType) bool {
	if !r.Parent().Type().AllowsChild(lt) || !lt.AllowsChild(it) {
		return false
	}
	for _, n := range r.Nodes() {
		if !it.AllowsChild(n.Type()) {
			return false
		}
	}
	return true
}

// WrapInList wraps the blocks around the selection in a list of listType,
// one item per block.
func WrapInList(st *document.State, listType, itemType string, attrs document.Attrs) bool {
	lt, it := st.Schema().Type(listType), st.Schema().Type(itemType)
	if lt == nil || it == nil {
		return false
	}
	tr := st.Tx()
	if !wrapInList(tr, lt, it, attrs) {
		return false
	}
	return st.Dispatch(tr)
}

func wrapInList(tr *document.Transaction, lt, it *document.NodeType, attrs document.Attrs) bool {
	from, to, ok := selectionRange(tr)
	if !ok {
		return false
	}
	r, ok := from.BlockRange(to, nil)
	if !ok || !canWrap(r, lt, it) {
		return false
	}
	tr.WrapEach(r, document.Wrapper{Type: lt, Attrs: attrs}, document.Wrapper{Type: it})
	return tr.Err() == nil
}

func selectionList(tr *document.Transaction, lt *document.NodeType) (found, bool) {
	rp, err := tr.Doc().Resolve(tr.Selection().From())
	if err != nil {
		return found{}, false
	}
	return findParent(rp, func(n *document.Node) bool { return n.Type() == lt })
}

func joinBackward(tr *document.Transaction, lt *document.NodeType) {
	list, ok := selectionList(tr, lt)
	if !ok {
		return
	}
	rp, err := tr.Doc().Resolve(list.pos)
	if err != nil {
		return
	}
	if before := rp.NodeBefore(); before != nil && before.Type() == lt && document.CanJoin(tr.Doc(), list.pos) {
		tr.Join(list.pos)
	}
}

func joinForward(tr *document.Transaction, lt *document.NodeType) {
	list, ok := selectionList(tr, lt)
	if !ok {
		return
	}
	after := list.pos + list.node.NodeSize()
	rp, err := tr.Doc().Resolve(after)
	if err != nil {
		return
	}
	if next := rp.NodeAfter(); next != nil && next.Type() == lt && document.CanJoin(tr.Doc(), after) {
		tr.Join(after)
	}
}
