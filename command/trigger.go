package command

import (
	"strings"

	"github.com/seo-rii/tiptap/document"
	"github.com/seo-rii/tiptap/internal/grapheme"
)

// Trigger is a trigger character and the query typed after it.
type Trigger struct {
	Char  string
	Pos   int
	Query string
	Range Range
}

// FindTrigger looks for char before the cursor in the current textblock.
// The trigger must start the block or follow whitespace, and the query
// between it and the cursor must not contain whitespace.
func FindTrigger(doc *document.Node, sel document.Selection, char string) (Trigger, bool) {
	if !sel.Empty() || char == "" {
		return Trigger{}, false
	}
	rp, err := doc.Resolve(sel.Head)
	if err != nil {
		return Trigger{}, false
	}
	block := rp.Parent()
	if !block.IsTextblock() || block.Type().Spec.Code {
		return Trigger{}, false
	}
	clusters := grapheme.Split(block.TextBetween(0, rp.ParentOffset, ""))
	for i := len(clusters) - 1; i >= 0; i-- {
		c := clusters[i]
		if grapheme.IsSpace(c) {
			return Trigger{}, false
		}
		if c != char {
			continue
		}
		if i > 0 && !grapheme.IsSpace(clusters[i-1]) {
			return Trigger{}, false
		}
		pos := rp.Start(rp.Depth) + i
		return Trigger{
			Char:  char,
			Pos:   pos,
			Query: strings.Join(clusters[i+1:], ""),
			Range: Range{From: pos, To: sel.Head},
		}, true
	}
	return Trigger{}, false
}

// FixRange widens raw to cover exactly the typed trigger and query. When the
// text before the selection holds split, the range starts at the nearest
// split before raw.To (position 0 when there is none). The end then moves
// forward up to the selection end, stopping at a space.
func FixRange(doc *document.Node, sel document.Selection, raw Range, split string) Range {
	r := raw
	if rp, err := doc.Resolve(sel.To()); err == nil {
		if before := rp.NodeBefore(); before != nil && before.IsText() && strings.Contains(before.Text(), split) {
			r.From = r.To
			for r.From > 0 && doc.TextBetween(r.From-1, r.From, "") != split {
				r.From--
			}
			r.From = max(r.From-1, 0)
		}
	}
	for r.To < sel.To() && doc.TextBetween(r.To, r.To+1, "") != " " {
		r.To++
	}
	return r
}
