package document_test

import (
	"errors"
	"testing"

	"github.com/seo-rii/tiptap/document"
	. "github.com/seo-rii/tiptap/internal/testdoc"
)

func TestResolve_InsideText(t *testing.T) {
	doc := Doc(P("ab"))
	rp, err := doc.Resolve(2)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if rp.Depth != 1 || rp.ParentOffset != 1 || rp.TextOffset() != 1 {
		t.Fatalf("depth=%d parentOffset=%d textOffset=%d, want 1 1 1", rp.Depth, rp.ParentOffset, rp.TextOffset())
	}
	if got := rp.Parent().TypeName(); got != "paragraph" {
		t.Fatalf("parent=%s, want paragraph", got)
	}
	if rp.Start(1) != 1 || rp.End(1) != 3 || rp.Before(1) != 0 || rp.After(1) != 4 {
		t.Fatalf("start/end/before/after=%d/%d/%d/%d, want 1/3/0/4", rp.Start(1), rp.End(1), rp.Before(1), rp.After(1))
	}
	if got, want := rp.NodeBefore().Text(), "a"; got != want {
		t.Fatalf("node before=%q, want %q", got, want)
	}
	if got, want := rp.NodeAfter().Text(), "b"; got != want {
		t.Fatalf("node after=%q, want %q", got, want)
	}
}

func TestResolve_BetweenBlocks(t *testing.T) {
	doc := Doc(P("ab"), P("cd"))
	rp, err := doc.Resolve(4)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if rp.Depth != 0 || rp.Index(0) != 1 {
		t.Fatalf("depth=%d index=%d, want 0 1", rp.Depth, rp.Index(0))
	}
	if rp.NodeBefore() != doc.Child(0) || rp.NodeAfter() != doc.Child(1) {
		t.Fatalf("unexpected neighbours %v / %v", rp.NodeBefore(), rp.NodeAfter())
	}
	if _, err := doc.Resolve(9); !errors.Is(err, document.ErrOutOfRange) {
		t.Fatalf("resolve(9) err=%v, want ErrOutOfRange", err)
	}
}

func TestResolve_Nested(t *testing.T) {
	// doc(bulletList(listItem(paragraph("x"))))
	doc := Doc(UL(LI(P("x"))))
	rp, err := doc.Resolve(3)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if rp.Depth != 3 {
		t.Fatalf("depth=%d, want 3", rp.Depth)
	}
	if got := rp.Node(-1).TypeName(); got != "listItem" {
		t.Fatalf("node(-1)=%s, want listItem", got)
	}
	if got, want := rp.Before(1), 0; got != want {
		t.Fatalf("before(1)=%d, want %d", got, want)
	}
	if got, want := rp.After(2), 6; got != want {
		t.Fatalf("after(2)=%d, want %d", got, want)
	}
	if got, want := rp.SharedDepth(1), 1; got != want {
		t.Fatalf("shared depth=%d, want %d", got, want)
	}
}

func TestBlockRange(t *testing.T) {
	doc := Doc(P("a"), P("b"), P("c"))
	from, _ := doc.Resolve(1)
	to, _ := doc.Resolve(5)
	r, ok := from.BlockRange(to, nil)
	if !ok {
		t.Fatalf("expected block range")
	}
	if r.Depth != 0 || r.Start() != 0 || r.End() != 6 {
		t.Fatalf("range depth=%d start=%d end=%d, want 0 0 6", r.Depth, r.Start(), r.End())
	}
	if r.StartIndex() != 0 || r.EndIndex() != 2 {
		t.Fatalf("indices=%d..%d, want 0..2", r.StartIndex(), r.EndIndex())
	}
	if got := len(r.Nodes()); got != 2 {
		t.Fatalf("nodes=%d, want 2", got)
	}
}
