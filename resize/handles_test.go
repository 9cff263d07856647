package resize

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/seo-rii/tiptap/document"
	td "github.com/seo-rii/tiptap/internal/testdoc"
)

// mixedDoc is doc(paragraph("a"), iframe, image, widget): the media sit at
// positions 3, 4 and 5.
func mixedDoc() *document.Node {
	return td.Doc(
		td.P("a"),
		td.Iframe(nil),
		td.Image(nil),
		td.Widget(document.Attrs{"resizeHandler": true}),
	)
}

func handlePositions(hs []Handle) []int {
	out := make([]int, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.Pos)
	}
	return out
}

func TestHandles(t *testing.T) {
	doc := mixedDoc()
	imgSel, ok := document.SelectNode(doc, 4)
	if !ok {
		t.Fatalf("image should be selectable")
	}

	tests := []struct {
		name string
		sel  document.Selection
		opt  HandleOptions
		want []int
	}{
		{"always", document.Cursor(1), HandleOptions{Always: true}, []int{3, 5}},
		{"active image", imgSel, DefaultHandleOptions(), []int{3, 5, 4}},
		{"active only", imgSel, HandleOptions{OnActive: true}, []int{4}},
		{"off", imgSel, HandleOptions{}, []int{}},
	}
	for _, tt := range tests {
		got := handlePositions(Handles(doc, tt.sel, tt.opt))
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("%s: handles mismatch (-want +got):\n%s", tt.name, diff)
		}
	}

	hs := Handles(doc, document.Cursor(1), DefaultHandleOptions())
	if got, want := hs[0].WidgetPos, 4; got != want {
		t.Fatalf("widget pos=%d, want %d", got, want)
	}
	if got, want := hs[1].Meta.Kind, KindAttr; got != want {
		t.Fatalf("kind=%s, want %s", got, want)
	}
}

func TestAutoSelect_SelectsInsertedMedia(t *testing.T) {
	st := td.State(td.Doc(td.P("ab")), 3)
	st.AddAppendFunc(AutoSelect)

	if err := st.Apply(st.Tx().InsertBlocks(3, td.Iframe(nil))); err != nil {
		t.Fatalf("apply: %v", err)
	}
	want, _ := document.SelectNode(st.Doc(), 4)
	if got := st.Selection(); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}

func TestAutoSelect_IgnoresTyping(t *testing.T) {
	st := td.State(td.Doc(td.P("ab"), td.Iframe(nil)), 3)
	st.AddAppendFunc(AutoSelect)

	if err := st.Apply(st.Tx().InsertText(3, "c")); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := st.Selection(); got.Kind != document.TextSelection {
		t.Fatalf("selection=%v, want a text selection", got)
	}
}
