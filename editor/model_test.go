package editor

import (
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seo-rii/tiptap/document"
	td "github.com/seo-rii/tiptap/internal/testdoc"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

func newTestModel(doc *document.Node, pos int) Model {
	m := New(Config{Doc: doc})
	m.State().SetSelection(document.Cursor(pos))
	return m.SetSize(40, 30)
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		if r == ' ' {
			m = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
			continue
		}
		m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func assertDoc(t *testing.T, m Model, want string) {
	t.Helper()
	if got := m.State().Doc().String(); got != want {
		t.Fatalf("doc: got %s, want %s", got, want)
	}
}

func assertSelection(t *testing.T, m Model, want document.Selection) {
	t.Helper()
	if got := m.State().Selection(); got != want {
		t.Fatalf("selection: got %v, want %v", got, want)
	}
}

func TestNew_DefaultsToEmptyParagraph(t *testing.T) {
	m := New(Config{})
	assertDoc(t, m, `doc(paragraph())`)
	assertSelection(t, m, document.Cursor(1))
	if !m.Focused() {
		t.Fatalf("new model should be focused")
	}
}

func TestTyping_InsertsAtCursor(t *testing.T) {
	m := newTestModel(td.Doc(td.P("ab")), 1)
	m = send(m, keyMsg(tea.KeyRight))
	m = typeText(m, "X")
	assertDoc(t, m, `doc(paragraph("aXb"))`)
	assertSelection(t, m, document.Cursor(3))
}

func TestTyping_ReplacesRange(t *testing.T) {
	m := newTestModel(td.Doc(td.P("abcd")), 1)
	m.State().SetSelection(document.TextRange(2, 4))
	m = typeText(m, "X")
	assertDoc(t, m, `doc(paragraph("aXd"))`)
	assertSelection(t, m, document.Cursor(3))
}

func TestTyping_ReadOnlyIgnoresEdits(t *testing.T) {
	m := New(Config{Doc: td.Doc(td.P("ab")), ReadOnly: true})
	m = typeText(m, "X")
	m = send(m, keyMsg(tea.KeyBackspace), keyMsg(tea.KeyRight))
	assertDoc(t, m, `doc(paragraph("ab"))`)
	assertSelection(t, m, document.Cursor(2))
}

func TestEnter_SplitsAndBackspaceJoins(t *testing.T) {
	m := newTestModel(td.Doc(td.P("ab")), 2)
	m = send(m, keyMsg(tea.KeyEnter))
	assertDoc(t, m, `doc(paragraph("a"), paragraph("b"))`)
	assertSelection(t, m, document.Cursor(4))

	m = send(m, keyMsg(tea.KeyBackspace))
	assertDoc(t, m, `doc(paragraph("ab"))`)
	assertSelection(t, m, document.Cursor(2))
}

func TestEnter_HeadingEndStartsParagraph(t *testing.T) {
	m := newTestModel(td.Doc(td.H(1, "T")), 2)
	m = send(m, keyMsg(tea.KeyEnter))
	assertDoc(t, m, `doc(heading("T"), paragraph())`)
	assertSelection(t, m, document.Cursor(4))
}

func TestEnter_SplitsListItem(t *testing.T) {
	m := newTestModel(td.Doc(td.UL(td.LI(td.P("ab")))), 4)
	m = send(m, keyMsg(tea.KeyEnter))
	assertDoc(t, m, `doc(bulletList(listItem(paragraph("a")), listItem(paragraph("b"))))`)
	assertSelection(t, m, document.Cursor(8))
}

func TestEnter_CodeBlockInsertsNewline(t *testing.T) {
	m := newTestModel(td.Doc(td.Code("ab")), 2)
	m = send(m, keyMsg(tea.KeyEnter))
	if got, want := m.State().Doc().TextContent(), "a\nb"; got != want {
		t.Fatalf("code text: got %q, want %q", got, want)
	}
	assertSelection(t, m, document.Cursor(3))
}

func TestBackspace_HeadingStartBecomesParagraph(t *testing.T) {
	m := newTestModel(td.Doc(td.H(2, "ab")), 1)
	m = send(m, keyMsg(tea.KeyBackspace))
	assertDoc(t, m, `doc(paragraph("ab"))`)
}

func TestInputRule_OrderedList(t *testing.T) {
	m := newTestModel(td.Doc(td.P("")), 1)
	m = typeText(m, "1. ")
	assertDoc(t, m, `doc(orderedList(listItem(paragraph())))`)
	assertSelection(t, m, document.Cursor(3))
}

func TestToggleListKey(t *testing.T) {
	m := newTestModel(td.Doc(td.P("a"), td.P("b")), 1)
	m = send(m, keyMsg(tea.KeyCtrlO))
	assertDoc(t, m, `doc(orderedList(listItem(paragraph("a"))), paragraph("b"))`)
	assertSelection(t, m, document.Cursor(3))

	m = send(m, keyMsg(tea.KeyCtrlO))
	assertDoc(t, m, `doc(paragraph("a"), paragraph("b"))`)
}

func TestMove_SelectsMediaBetweenParagraphs(t *testing.T) {
	doc := td.Doc(td.P("a"), td.Iframe(document.Attrs{"src": "x"}), td.P("b"))
	m := newTestModel(doc, 2)
	m = send(m, keyMsg(tea.KeyRight))
	assertSelection(t, m, document.Selection{Kind: document.NodeSelection, Anchor: 3, Head: 4})

	m = send(m, keyMsg(tea.KeyRight))
	assertSelection(t, m, document.Cursor(5))

	m = send(m, keyMsg(tea.KeyLeft))
	assertSelection(t, m, document.Selection{Kind: document.NodeSelection, Anchor: 3, Head: 4})

	m = send(m, keyMsg(tea.KeyBackspace))
	assertDoc(t, m, `doc(paragraph("a"), paragraph("b"))`)
}

func TestMove_VerticalKeepsColumn(t *testing.T) {
	m := newTestModel(td.Doc(td.P("abc"), td.P("defg")), 3)
	m = send(m, keyMsg(tea.KeyDown))
	assertSelection(t, m, document.Cursor(8))
	m = send(m, keyMsg(tea.KeyUp))
	assertSelection(t, m, document.Cursor(3))
}

func TestUndoRedo(t *testing.T) {
	m := newTestModel(td.Doc(td.P("")), 1)
	m = typeText(m, "a")
	m = send(m, keyMsg(tea.KeyCtrlZ))
	assertDoc(t, m, `doc(paragraph())`)
	m = send(m, keyMsg(tea.KeyCtrlY))
	assertDoc(t, m, `doc(paragraph("a"))`)
}

func TestPaste_SplitsLines(t *testing.T) {
	m := newTestModel(td.Doc(td.P("")), 1)
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("one\r\ntwo"), Paste: true})
	assertDoc(t, m, `doc(paragraph("one"), paragraph("two"))`)
	assertSelection(t, m, document.Cursor(9))
}

func TestTableTabAddsRow(t *testing.T) {
	m := newTestModel(td.Doc(td.Grid(2, 2)), 30)
	m = send(m, keyMsg(tea.KeyTab))
	if got, want := m.State().Doc().Child(0).ChildCount(), 3; got != want {
		t.Fatalf("rows: got %d, want %d", got, want)
	}
	assertSelection(t, m, document.Cursor(40))
}

func TestOnChange_FiresOnChangesAndSkipsNoOps(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{
		Doc: td.Doc(td.P("ab")),
		OnChange: func(ev ChangeEvent) {
			events = append(events, ev)
		},
	})

	m = send(m, keyMsg(tea.KeyRight))
	if len(events) != 1 {
		t.Fatalf("events after move: got %d, want %d", len(events), 1)
	}
	if got, want := events[0].Selection, document.Cursor(2); got != want {
		t.Fatalf("event selection after move: got %v, want %v", got, want)
	}

	m = send(m, keyMsg(tea.KeyRight), keyMsg(tea.KeyRight))
	if len(events) != 2 {
		t.Fatalf("events after no-op: got %d, want %d", len(events), 2)
	}

	m = typeText(m, "X")
	if len(events) != 3 {
		t.Fatalf("events after insert: got %d, want %d", len(events), 3)
	}
	ev := events[2]
	if got, want := ev.Doc.String(), `doc(paragraph("abX"))`; got != want {
		t.Fatalf("event doc: got %s, want %s", got, want)
	}
	if !ev.HasChange || !ev.Change.DocChanged {
		t.Fatalf("event change: got %+v, want a document change", ev.Change)
	}
	if ev.Version != m.State().Version() {
		t.Fatalf("event version: got %d, want %d", ev.Version, m.State().Version())
	}
}
