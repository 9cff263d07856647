package command

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-rii/tiptap/document"
	td "github.com/seo-rii/tiptap/internal/testdoc"
)

func staticSource(n int) Source {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: fmt.Sprint(i), Title: fmt.Sprint("item ", i), Command: func(EditContext) {}}
	}
	return Source{Char: "/", Items: func(string) []Entry {
		if n == 0 {
			return nil
		}
		return []Entry{GroupEntry("all", items)}
	}}
}

func openStatic(t *testing.T, n int) *Engine {
	t.Helper()
	e := NewEngine(Options{Sources: []Source{staticSource(n)}})
	st := td.State(td.Doc(td.P("/")), 2)
	e.Open(1, EditContext{State: st, Range: Range{From: 1, To: 2}})
	require.True(t, e.Visible())
	return e
}

func typeText(t *testing.T, st *document.State, text string) {
	t.Helper()
	require.True(t, st.Dispatch(st.Tx().InsertText(st.Selection().Head, text)))
}

func keyMsg(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func TestMoveSelection_GroupAction(t *testing.T) {
	for n := 1; n <= 5; n++ {
		for d1 := -7; d1 <= 7; d1++ {
			for d2 := -7; d2 <= 7; d2++ {
				a := openStatic(t, n)
				a.MoveSelection(d1)
				a.MoveSelection(d2)

				b := openStatic(t, n)
				b.MoveSelection(d1 + d2)

				require.Equal(t, b.Session().SelectedIndex, a.Session().SelectedIndex, "n=%d d1=%d d2=%d", n, d1, d2)
				require.GreaterOrEqual(t, a.Session().SelectedIndex, 0)
				require.Less(t, a.Session().SelectedIndex, n)
			}
		}
	}
}

func TestMoveSelection_NoItems(t *testing.T) {
	e := openStatic(t, 0)
	for _, d := range []int{-3, -1, 1, 4} {
		e.MoveSelection(d)
		assert.Equal(t, 0, e.Session().SelectedIndex)
	}
}

func TestExecuteAt_Failures(t *testing.T) {
	e := NewEngine(Options{Sources: []Source{staticSource(3)}})
	e.UpdateQuery("")
	assert.False(t, e.ExecuteAt(0), "no context")

	e = openStatic(t, 3)
	assert.False(t, e.ExecuteAt(3))
	assert.False(t, e.ExecuteAt(-1))
	assert.True(t, e.Visible())
	assert.True(t, e.ExecuteAt(2))
	assert.False(t, e.Visible())
}

func TestHandleKey(t *testing.T) {
	e := openStatic(t, 3)

	assert.True(t, e.HandleKey(keyMsg(tea.KeyDown)))
	assert.Equal(t, 1, e.Session().SelectedIndex)
	assert.True(t, e.HandleKey(keyMsg(tea.KeyTab)))
	assert.Equal(t, 2, e.Session().SelectedIndex)
	assert.True(t, e.HandleKey(keyMsg(tea.KeyTab)))
	assert.Equal(t, 0, e.Session().SelectedIndex)
	assert.True(t, e.HandleKey(keyMsg(tea.KeyShiftTab)))
	assert.Equal(t, 2, e.Session().SelectedIndex)
	assert.True(t, e.HandleKey(keyMsg(tea.KeyUp)))
	assert.Equal(t, 1, e.Session().SelectedIndex)
	assert.False(t, e.HandleKey(keyMsg(tea.KeyLeft)))

	assert.True(t, e.HandleKey(keyMsg(tea.KeyEsc)))
	assert.False(t, e.Visible())
	assert.Equal(t, 0, e.Session().SelectedIndex)
	assert.False(t, e.HandleKey(keyMsg(tea.KeyDown)), "hidden palette ignores keys")
}

func TestSync_TableFlow(t *testing.T) {
	st := td.State(td.Doc(td.P("/")), 2)
	e := NewEngine(Options{})

	e.Sync(st)
	require.True(t, e.Visible())
	assert.Equal(t, "/", e.Session().Trigger)
	assert.Len(t, e.Session().Items, 2)

	typeText(t, st, "tab")
	e.Sync(st)
	require.Equal(t, "tab", e.Session().Query)
	items := e.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "table", items[0].ID)
	assert.Equal(t, "Block", e.Session().Items[0].Section)

	require.True(t, e.HandleKey(keyMsg(tea.KeyEnter)))
	assert.False(t, e.Visible())
	doc := st.Doc()
	require.Equal(t, 1, doc.ChildCount())
	tbl := doc.FirstChild()
	assert.Equal(t, "table", tbl.TypeName())
	assert.Equal(t, 2, tbl.ChildCount())
	assert.Equal(t, "tableHeader", tbl.FirstChild().FirstChild().TypeName())

	e.Sync(st)
	assert.False(t, e.Visible())
}

func TestSync_Heading(t *testing.T) {
	st := td.State(td.Doc(td.P("/h2")), 4)
	e := NewEngine(Options{})
	e.Sync(st)
	require.Equal(t, []string{"heading2"}, itemIDs(e.Items()))
	require.True(t, e.ExecuteAt(0))
	assert.Equal(t, `doc(heading{level=2}())`, st.Doc().String())
}

func TestSync_BulletList(t *testing.T) {
	st := td.State(td.Doc(td.P("/ul")), 4)
	e := NewEngine(Options{})
	e.Sync(st)
	require.Equal(t, []string{"bulletList"}, itemIDs(e.Items()))
	require.True(t, e.ExecuteAt(0))
	assert.Equal(t, `doc(bulletList(listItem(paragraph())))`, st.Doc().String())
}

func TestSync_Blockquote(t *testing.T) {
	st := td.State(td.Doc(td.P("x /quote")), 9)
	e := NewEngine(Options{})
	e.Sync(st)
	require.Equal(t, []string{"blockquote"}, itemIDs(e.Items()))
	require.True(t, e.ExecuteAt(0))
	assert.Equal(t, `doc(blockquote(paragraph("x ")))`, st.Doc().String())
}

func TestSync_DismissedTriggerStaysClosed(t *testing.T) {
	st := td.State(td.Doc(td.P("/")), 2)
	e := NewEngine(Options{})
	e.Sync(st)
	require.True(t, e.HandleKey(keyMsg(tea.KeyEsc)))

	e.Sync(st)
	assert.False(t, e.Visible())
	typeText(t, st, "a")
	e.Sync(st)
	assert.False(t, e.Visible())

	require.True(t, st.Dispatch(st.Tx().DeleteRange(1, 3)))
	e.Sync(st)
	typeText(t, st, "/")
	e.Sync(st)
	assert.True(t, e.Visible())
}

func TestDetail_Iframe(t *testing.T) {
	st := td.State(td.Doc(td.P("/iframe")), 8)
	e := NewEngine(Options{})
	e.Sync(st)
	require.Equal(t, []string{"iframe"}, itemIDs(e.Items()))

	require.True(t, e.ExecuteAt(0))
	s := e.Session()
	require.True(t, s.Visible)
	assert.Equal(t, DetailInput, s.Detail.Kind)
	assert.Equal(t, "url", s.Detail.Placeholder)
	assert.Equal(t, `doc(paragraph("/iframe"))`, st.Doc().String())
	assert.False(t, e.HandleKey(keyMsg(tea.KeyDown)), "detail input owns the keys")

	e.Sync(st)
	assert.True(t, e.Visible())

	require.True(t, e.SubmitDetail("https://example.com"))
	assert.False(t, e.Visible())
	assert.Equal(t, `doc(iframe{src=https://example.com}, paragraph())`, st.Doc().String())
	assert.Equal(t, document.Cursor(2), st.Selection())
	assert.False(t, e.SubmitDetail("again"))
}

func TestDetail_Youtube(t *testing.T) {
	st := td.State(td.Doc(td.P("/youtube")), 9)
	e := NewEngine(Options{})
	e.Sync(st)
	require.Equal(t, []string{"youtube"}, itemIDs(e.Items()))
	require.True(t, e.ExecuteAt(0))
	require.True(t, e.SubmitDetail("https://youtu.be/dQw4w9WgXcQ"))
	assert.Equal(t, `doc(lite-youtube{videoid=dQw4w9WgXcQ}, paragraph())`, st.Doc().String())

	st = td.State(td.Doc(td.P("/youtube")), 9)
	e.Sync(st)
	require.True(t, e.ExecuteAt(0))
	require.True(t, e.SubmitDetail("https://example.com/watch?v=abc"))
	assert.Equal(t, `doc(paragraph())`, st.Doc().String())
}

func TestImageItem(t *testing.T) {
	var pending func(string)
	picker := ImagePickerFunc(func(insert func(string)) { pending = insert })
	e := NewEngine(Options{Catalog: &Catalog{Images: picker}})
	st := td.State(td.Doc(td.P("/image")), 7)
	e.Sync(st)
	require.Equal(t, []string{"image"}, itemIDs(e.Items()))
	require.True(t, e.ExecuteAt(0))
	assert.Equal(t, `doc(paragraph())`, st.Doc().String())
	require.NotNil(t, pending)

	pending("blob:1")
	assert.Equal(t, `doc(image{src=blob:1})`, st.Doc().String())
}

func TestEmoji(t *testing.T) {
	st := td.State(td.Doc(td.P(":smile")), 7)
	e := NewEngine(Options{})
	e.Sync(st)
	require.True(t, e.Visible())
	s := e.Session()
	assert.Equal(t, ":", s.Trigger)
	assert.Equal(t, DetailEmoji, s.Detail.Kind)
	require.Equal(t, []string{"😃", "😄"}, itemIDs(e.Items()))

	require.True(t, e.ExecuteAt(1))
	assert.Equal(t, `doc(paragraph("😄 "))`, st.Doc().String())
	assert.False(t, e.Visible())
}

func TestEmojiItems_Capped(t *testing.T) {
	assert.Len(t, EmojiItems(""), MaxEmojiResults)
	assert.Empty(t, EmojiItems("nothing-matches-this"))
	require.NotEmpty(t, Emojis())
}

func itemIDs(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
