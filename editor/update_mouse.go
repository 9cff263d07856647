package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seo-rii/tiptap/document"
	"github.com/seo-rii/tiptap/table"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.cfg.ScrollPolicy.passes(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	if !m.focused {
		return m, cmd
	}

	ms := &m.ui.mouse
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.mouseInBounds(msg.X, msg.Y) {
			return m, cmd
		}
		col, row := m.contentPoint(msg.X, msg.Y)
		m.press(col, row)

	case tea.MouseActionMotion:
		if !ms.resizing && !ms.selecting {
			return m, cmd
		}
		col, row := m.contentPoint(m.clampMouseToBounds(msg.X, msg.Y))
		if ms.resizing {
			m.resizer.PointerMove(m.pixels(col, row))
			return m, cmd
		}
		if pos, ok := m.ui.layout.posAt(row, col); ok {
			m.st.SetSelection(document.TextRange(ms.anchor, pos).Validate(m.st.Doc()))
		}

	case tea.MouseActionRelease:
		if ms.resizing {
			col, row := m.contentPoint(m.clampMouseToBounds(msg.X, msg.Y))
			m.resizer.PointerUp(m.pixels(col, row))
		}
		*ms = mouseState{}
	}
	return m, cmd
}

// press dispatches a left click at a content cell.
func (m *Model) press(col, row int) {
	lay := m.ui.layout
	if row < 0 || row >= len(lay.lines) {
		return
	}
	ln := lay.lines[row]
	doc := m.st.Doc()
	switch ln.kind {
	case lineHandle:
		if m.cfg.ReadOnly {
			return
		}
		x, y := m.pixels(col, row)
		m.ui.mouse.resizing = m.resizer.PointerDown(ln.node, x, y)
		return
	case lineToolbar:
		if h, ok := ln.hotspotAt(col); ok {
			m.resizer.SelectPreset(ln.node, h.preset)
		}
		return
	case lineMedia:
		if s, ok := document.SelectNode(doc, ln.node); ok {
			m.st.SetSelection(s)
		}
		return
	case lineTable:
		if h, ok := ln.hotspotAt(col); ok && h.isGrip {
			m.st.SetSelection(document.Near(doc, ln.node+1, 1))
			table.ActivateGrip(m.st, h.grip)
			return
		}
	}
	if pos, ok := lay.posAt(row, col); ok {
		m.st.SetSelection(document.Cursor(pos))
		m.ui.mouse = mouseState{selecting: true, anchor: pos}
	}
}

// contentPoint converts screen coordinates to a content column and visual
// row.
func (m *Model) contentPoint(x, y int) (col, row int) {
	leftFrame := m.viewport.Style.GetMarginLeft() + m.viewport.Style.GetBorderLeftSize() + m.viewport.Style.GetPaddingLeft()
	topFrame := m.viewport.Style.GetMarginTop() + m.viewport.Style.GetBorderTopSize() + m.viewport.Style.GetPaddingTop()
	return x - leftFrame, y - topFrame + m.viewport.YOffset
}

// pixels returns the pixel center of a content cell.
func (m *Model) pixels(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * float64(m.cfg.CellWidth), (float64(row) + 0.5) * float64(m.cfg.CellHeight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}
