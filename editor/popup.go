package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/seo-rii/tiptap/command"
	"github.com/seo-rii/tiptap/i18n"
	"github.com/seo-rii/tiptap/internal/field"
	graphemeutil "github.com/seo-rii/tiptap/internal/grapheme"
)

type popupRow struct {
	text  string
	style lipgloss.Style
}

// popupView composites the palette or the image prompt over base, placed
// below the cursor when it fits and above it otherwise.
func (m Model) popupView(base string) (string, bool) {
	viewportWidth := m.contentWidth()
	viewportHeight := m.contentHeight()
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return "", false
	}
	anchorY, anchorX, ok := m.cursorRow()
	if !ok {
		return "", false
	}
	anchorY -= m.viewport.YOffset

	var rows []popupRow
	selected := 0
	switch {
	case m.ui.prompt.active:
		rows = m.promptRows()
	case m.palette.Visible():
		rows, selected = m.paletteRows()
	default:
		return "", false
	}
	if len(rows) == 0 {
		return "", false
	}

	maxRows := min(m.cfg.PaletteMaxRows, len(rows))
	belowAvail := max(viewportHeight-(anchorY+1), 0)
	aboveAvail := max(anchorY, 0)
	showBelow := true
	rowCount := maxRows
	if rowCount > belowAvail {
		if aboveAvail >= rowCount {
			showBelow = false
		} else if aboveAvail > belowAvail {
			showBelow = false
			rowCount = aboveAvail
		} else {
			rowCount = belowAvail
		}
	}
	if rowCount <= 0 {
		return "", false
	}

	// keep the selected row in the window
	start := 0
	if selected >= rowCount {
		start = selected - rowCount + 1
	}
	rows = rows[start:min(start+rowCount, len(rows))]

	width := min(m.cfg.PaletteMaxWidth, viewportWidth)
	rendered := make([]string, 0, len(rows))
	for _, r := range rows {
		text := graphemeutil.Truncate(r.text, width)
		if pad := width - graphemeutil.Width(text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
		rendered = append(rendered, r.style.Render(text))
	}

	y := anchorY + 1
	if !showBelow {
		y = anchorY - len(rendered)
	}
	y = clampInt(y, 0, max(viewportHeight-len(rendered), 0))
	x := clampInt(anchorX, 0, max(viewportWidth-width, 0))

	leftFrame := m.viewport.Style.GetMarginLeft() + m.viewport.Style.GetBorderLeftSize() + m.viewport.Style.GetPaddingLeft()
	topFrame := m.viewport.Style.GetMarginTop() + m.viewport.Style.GetBorderTopSize() + m.viewport.Style.GetPaddingTop()

	return overlay.Composite(
		strings.Join(rendered, "\n"),
		base,
		overlay.Left,
		overlay.Top,
		leftFrame+x,
		topFrame+y,
	), true
}

func (m Model) promptRows() []popupRow {
	loc := m.cfg.locale()
	return []popupRow{
		{text: " " + loc.T(i18n.Image), style: m.cfg.Style.PopupSection},
		{text: " " + inputText(m.ui.input), style: m.cfg.Style.PopupDetail},
	}
}

// paletteRows lists the section and item rows of the session and the index
// of the row holding the selected item.
func (m Model) paletteRows() ([]popupRow, int) {
	s := m.palette.Session()
	st := m.cfg.Style
	if s.Detail.Pending() {
		input := inputText(m.ui.input)
		style := st.PopupDetail
		if m.ui.input.Len() == 0 {
			input = s.Detail.Placeholder + "▏"
			style = st.PopupItem
		}
		return []popupRow{
			{text: " " + s.Detail.Title, style: st.PopupSection},
			{text: " " + input, style: style},
		}, 1
	}

	var rows []popupRow
	selected, n := 0, 0
	addItem := func(it command.Item) {
		style := st.PopupItem
		if n == s.SelectedIndex {
			style = st.PopupSelected
			selected = len(rows)
		}
		rows = append(rows, popupRow{text: itemText(it), style: style})
		n++
	}
	for _, e := range s.Items {
		switch e.Kind {
		case command.EntryItem:
			addItem(e.Item)
		case command.EntryGroup:
			if len(e.List) == 0 {
				continue
			}
			if e.Section != "" {
				rows = append(rows, popupRow{text: " " + e.Section, style: st.PopupSection})
			}
			for _, it := range e.List {
				addItem(it)
			}
		}
	}
	if n == 0 {
		return []popupRow{{text: " " + m.cfg.locale().T(i18n.NoResult), style: st.PopupItem}}, 0
	}
	return rows, selected
}

func itemText(it command.Item) string {
	var sb strings.Builder
	sb.WriteString(" ")
	if it.Icon != "" {
		sb.WriteString(it.Icon)
		sb.WriteString(" ")
	}
	sb.WriteString(it.Title)
	if it.Subtitle != "" {
		sb.WriteString("  ")
		sb.WriteString(it.Subtitle)
	}
	return strings.NewReplacer("\n", " ", "\t", " ").Replace(sb.String())
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// inputText draws the field with a bar caret before the cursor cluster.
func inputText(f *field.Field) string {
	before, at, after := f.View()
	return before + "▏" + at + after
}
