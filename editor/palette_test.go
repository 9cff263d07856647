package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seo-rii/tiptap/command"
	td "github.com/seo-rii/tiptap/internal/testdoc"
)

func paletteIDs(m Model) []string {
	var ids []string
	for _, it := range m.Palette().Items() {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestPalette_OpensOnSlashAndInsertsHeading(t *testing.T) {
	m := New(Config{Doc: td.Doc(td.P(""))}).SetSize(40, 10)
	m = typeText(m, "/h2")

	if !m.Palette().Visible() {
		t.Fatalf("palette should be visible")
	}
	if got := paletteIDs(m); len(got) != 1 || got[0] != "heading2" {
		t.Fatalf("palette items: got %v, want [heading2]", got)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "Title 2") {
		t.Fatalf("view should list the heading item:\n%s", view)
	}

	m = send(m, keyMsg(tea.KeyEnter))
	assertDoc(t, m, `doc(heading{level=2}())`)
	if m.Palette().Visible() {
		t.Fatalf("palette should close after running an item")
	}
}

func TestPalette_EscClosesWithoutEditing(t *testing.T) {
	m := New(Config{Doc: td.Doc(td.P(""))}).SetSize(40, 10)
	m = typeText(m, "/h2")
	m = send(m, keyMsg(tea.KeyEsc))
	if m.Palette().Visible() {
		t.Fatalf("palette should be hidden after esc")
	}
	assertDoc(t, m, `doc(paragraph("/h2"))`)
}

func TestPalette_NoResultRow(t *testing.T) {
	m := New(Config{Doc: td.Doc(td.P(""))}).SetSize(40, 10)
	m = typeText(m, "/zzzz")
	if got := paletteIDs(m); len(got) != 0 {
		t.Fatalf("palette items: got %v, want none", got)
	}
	if m.Palette().Visible() {
		if view := stripANSI(m.View()); !strings.Contains(view, "No result") {
			t.Fatalf("view should show the empty row:\n%s", view)
		}
	}
}

func TestPalette_IframeDetailSubmit(t *testing.T) {
	m := New(Config{Doc: td.Doc(td.P(""))}).SetSize(40, 20)
	m = typeText(m, "/iframe")
	m = send(m, keyMsg(tea.KeyEnter))
	if !m.Palette().Session().Detail.Pending() {
		t.Fatalf("iframe item should ask for a URL")
	}

	m = typeText(m, "https://x.test/v")
	m = send(m, keyMsg(tea.KeyEnter))
	assertDoc(t, m, `doc(iframe{src=https://x.test/v}, paragraph())`)
	if m.Palette().Session().Detail.Pending() {
		t.Fatalf("detail should be closed after submit")
	}
}

func TestPalette_IframeDetailCancel(t *testing.T) {
	m := New(Config{Doc: td.Doc(td.P(""))}).SetSize(40, 20)
	m = typeText(m, "/iframe")
	m = send(m, keyMsg(tea.KeyEnter))
	m = typeText(m, "abc")
	m = send(m, keyMsg(tea.KeyEsc))
	assertDoc(t, m, `doc(paragraph("/iframe"))`)
}

func TestPalette_KoreanLocale(t *testing.T) {
	m := New(Config{Doc: td.Doc(td.P("")), Language: "ko-KR"}).SetSize(40, 10)
	m = typeText(m, "/제목")
	if !m.Palette().Visible() || len(paletteIDs(m)) == 0 {
		t.Fatalf("palette should match localized titles, got %v", paletteIDs(m))
	}
}

func TestPalette_RegisteredBlock(t *testing.T) {
	reg := command.NewRegistry(nil)
	if err := reg.LoadYAML([]byte(midibusBlocks)); err != nil {
		t.Fatalf("load blocks: %v", err)
	}
	m := New(Config{Doc: td.Doc(td.P("")), Blocks: reg}).SetSize(40, 20)
	m = typeText(m, "/midi")
	if got := paletteIDs(m); len(got) != 1 || got[0] != "midibus" {
		t.Fatalf("palette items: got %v, want [midibus]", got)
	}
	m = send(m, keyMsg(tea.KeyEnter))
	assertDoc(t, m, `doc(tiptap-midibus{height=420 src=https://midibus.example/v/1}, paragraph())`)
}

const midibusBlocks = `
blocks:
  - id: midibus
    title: Midibus
    subtitle: Embed a Midibus player
    icon: music_video
    keywords: [Midibus, Player]
    node: tiptap-midibus
    attrs:
      src: https://midibus.example/v/1
      height: 420
    trailing-paragraph: true
`
