package orderedlist

import (
	"testing"

	"github.com/seo-rii/tiptap/document"
	td "github.com/seo-rii/tiptap/internal/testdoc"
)

func TestMatchInput(t *testing.T) {
	tests := []struct {
		text string
		want Match
		ok   bool
	}{
		{"1. ", Match{List: "orderedList", Type: "1", Start: 1}, true},
		{"12. ", Match{List: "orderedList", Type: "1", Start: 12}, true},
		{"i. ", Match{List: "orderedList", Type: "i", Start: 1}, true},
		{"I. ", Match{List: "orderedList", Type: "I", Start: 1}, true},
		{"C. ", Match{List: "orderedList", Type: "A", Start: 3}, true},
		{"c. ", Match{List: "orderedList", Type: "a", Start: 3}, true},
		{"ㄷ. ", Match{List: "orderedList", Type: "kors", Start: 3}, true},
		{"다. ", Match{List: "orderedList", Type: "korc", Start: 3}, true},
		{"- ", Match{List: "bulletList"}, true},
		{"* ", Match{List: "bulletList"}, true},
		{"1.", Match{}, false},
		{"ab. ", Match{}, false},
		{"ㄲ. ", Match{}, false},
		{"x 1. ", Match{}, false},
	}
	for _, tt := range tests {
		got, ok := MatchInput(tt.text)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("MatchInput(%q)=(%+v,%v), want (%+v,%v)", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestApplyInputRule_Ordered(t *testing.T) {
	st := td.State(td.Doc(td.P("1. ")), 4)
	if !ApplyInputRule(st) {
		t.Fatalf("rule did not apply")
	}
	assertDoc(t, st, `doc(orderedList(listItem(paragraph())))`)
	if got, want := st.Selection(), document.Cursor(3); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}

func TestApplyInputRule_LetterStart(t *testing.T) {
	st := td.State(td.Doc(td.P("b. ")), 4)
	if !ApplyInputRule(st) {
		t.Fatalf("rule did not apply")
	}
	assertDoc(t, st, `doc(orderedList{start=2 type=a}(listItem(paragraph())))`)
}

func TestApplyInputRule_JoinsContinuedList(t *testing.T) {
	st := td.State(td.Doc(td.OL(nil, td.Items("a", "b")...), td.P("3. ")), 16)
	if !ApplyInputRule(st) {
		t.Fatalf("rule did not apply")
	}
	assertDoc(t, st, `doc(orderedList(listItem(paragraph("a")), listItem(paragraph("b")), listItem(paragraph())))`)
}

func TestApplyInputRule_KeepsGapInNumbering(t *testing.T) {
	st := td.State(td.Doc(td.OL(nil, td.Items("a", "b")...), td.P("5. ")), 16)
	if !ApplyInputRule(st) {
		t.Fatalf("rule did not apply")
	}
	assertDoc(t, st, `doc(orderedList(listItem(paragraph("a")), listItem(paragraph("b"))), orderedList{start=5}(listItem(paragraph())))`)
}

func TestApplyInputRule_Ignored(t *testing.T) {
	st := td.State(td.Doc(td.Code("1. ")), 4)
	if ApplyInputRule(st) {
		t.Fatalf("rule applied inside a code block")
	}
	st = td.State(td.Doc(td.P("hello")), 6)
	before := st.Version()
	if ApplyInputRule(st) {
		t.Fatalf("rule applied to plain text")
	}
	if got, want := st.Version(), before; got != want {
		t.Fatalf("version=%d, want %d", got, want)
	}
}
