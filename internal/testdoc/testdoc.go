// Package testdoc builds documents in the default schema for tests.
package testdoc

import (
	"fmt"

	"github.com/seo-rii/tiptap/document"
)

var S = document.DefaultSchema()

type Node = document.Node

func Doc(children ...*Node) *Node { return S.Node("doc", nil, children...) }

func P(text string) *Node { return S.Node("paragraph", nil, S.Text(text)) }

func H(level int, text string) *Node {
	return S.Node("heading", document.Attrs{"level": level}, S.Text(text))
}

func Code(text string) *Node { return S.Node("codeBlock", nil, S.Text(text)) }

func Quote(blocks ...*Node) *Node { return S.Node("blockquote", nil, blocks...) }

func LI(blocks ...*Node) *Node { return S.Node("listItem", nil, blocks...) }

func UL(items ...*Node) *Node { return S.Node("bulletList", nil, items...) }

func OL(attrs document.Attrs, items ...*Node) *Node { return S.Node("orderedList", attrs, items...) }

// Items returns one list item holding a paragraph per text.
func Items(texts ...string) []*Node {
	out := make([]*Node, 0, len(texts))
	for _, t := range texts {
		out = append(out, LI(P(t)))
	}
	return out
}

func Table(rows ...*Node) *Node { return S.Node("table", nil, rows...) }

func Row(cells ...*Node) *Node { return S.Node("tableRow", nil, cells...) }

func Cell(text string) *Node { return S.Node("tableCell", nil, P(text)) }

func Header(text string) *Node { return S.Node("tableHeader", nil, P(text)) }

// Span returns a cell with the given colspan and rowspan.
func Span(text string, colspan, rowspan int) *Node {
	return S.Node("tableCell", document.Attrs{"colspan": colspan, "rowspan": rowspan}, P(text))
}

// Grid returns a rows x cols table whose cells read "r<row>c<col>".
func Grid(rows, cols int) *Node {
	out := make([]*Node, 0, rows)
	for r := 0; r < rows; r++ {
		cells := make([]*Node, 0, cols)
		for c := 0; c < cols; c++ {
			cells = append(cells, Cell(fmt.Sprintf("r%dc%d", r, c)))
		}
		out = append(out, Row(cells...))
	}
	return Table(out...)
}

func Image(attrs document.Attrs) *Node { return S.Node("image", attrs) }

func Iframe(attrs document.Attrs) *Node { return S.Node("iframe", attrs) }

func Embed(attrs document.Attrs) *Node { return S.Node("embed", attrs) }

func Midibus(attrs document.Attrs) *Node { return S.Node("tiptap-midibus", attrs) }

// State returns a state over doc with the cursor at pos.
func State(doc *Node, pos int) *document.State {
	st := document.NewState(S, doc, document.Options{})
	st.SetSelection(document.Cursor(pos))
	return st
}

func Widget(attrs document.Attrs) *Node { return S.Node("widget", attrs) }
