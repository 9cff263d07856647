package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seo-rii/tiptap/internal/field"
	"github.com/seo-rii/tiptap/orderedlist"
	"github.com/seo-rii/tiptap/table"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	if m.ui.prompt.active {
		return m.updatePromptKey(msg)
	}
	if m.palette.Session().Detail.Pending() {
		m.updateDetailKey(msg)
		return m, nil
	}
	if m.palette.HandleKey(msg) {
		m.ui.input.Reset("")
		return m, nil
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		m.moveHorizontal(-1)
		return m, nil
	case key.Matches(msg, km.Right):
		m.moveHorizontal(1)
		return m, nil
	case key.Matches(msg, km.Up):
		m.moveVertical(-1)
		return m, nil
	case key.Matches(msg, km.Down):
		m.moveVertical(1)
		return m, nil
	case key.Matches(msg, km.Home):
		m.moveLineEdge(-1)
		return m, nil
	case key.Matches(msg, km.End):
		m.moveLineEdge(1)
		return m, nil
	}
	if m.cfg.ReadOnly {
		return m, nil
	}

	// Paste events insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		text := string(msg.Runes)
		if files, ok := pastedFiles(text); ok {
			return m.DropFiles(nil, files...)
		}
		m.insertText(normalizeNewlines(text))
		return m, nil
	}

	if table.HandleKey(m.st, km.Table, msg) {
		return m, nil
	}

	switch {
	case key.Matches(msg, km.Backspace):
		m.deleteBackward()
	case key.Matches(msg, km.Delete):
		m.deleteForward()
	case key.Matches(msg, km.Enter):
		m.enter()
	case key.Matches(msg, km.Undo):
		m.resizer.Destroy()
		m.st.Undo()
	case key.Matches(msg, km.Redo):
		m.resizer.Destroy()
		m.st.Redo()
	case key.Matches(msg, km.OrderedList):
		orderedlist.ToggleList(m.st, "orderedList", "listItem", nil)
	case key.Matches(msg, km.BulletList):
		orderedlist.ToggleList(m.st, "bulletList", "listItem", nil)
	case key.Matches(msg, km.LiftItem):
		orderedlist.LiftListItem(m.st, "listItem")
	case msg.Type == tea.KeySpace:
		m.insertText(" ")
		orderedlist.ApplyInputRule(m.st)
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
		m.insertText(string(msg.Runes))
	}
	return m, nil
}

// updateDetailKey edits the input of a pending palette detail.
func (m *Model) updateDetailKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.palette.KeyMap().Close):
		m.palette.CancelDetail()
		m.ui.input.Reset("")
	case msg.Type == tea.KeyEnter:
		input := m.ui.input.Value()
		m.ui.input.Reset("")
		m.palette.SubmitDetail(input)
	default:
		editInput(m.ui.input, msg)
	}
}

func (m Model) updatePromptKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.ui.prompt = imagePrompt{}
		m.ui.input.Reset("")
	case tea.KeyEnter:
		path, insert := strings.TrimSpace(m.ui.input.Value()), m.ui.prompt.insert
		m.ui.prompt = imagePrompt{}
		m.ui.input.Reset("")
		if path == "" {
			return m, nil
		}
		return m, m.pickImage(path, insert)
	default:
		editInput(m.ui.input, msg)
	}
	return m, nil
}

// editInput applies line editing keys to f.
func editInput(f *field.Field, msg tea.KeyMsg) {
	switch msg.Type { //nolint:exhaustive
	case tea.KeyLeft:
		f.Move(field.MoveGrapheme, field.DirLeft)
	case tea.KeyRight:
		f.Move(field.MoveGrapheme, field.DirRight)
	case tea.KeyCtrlLeft:
		f.Move(field.MoveWord, field.DirLeft)
	case tea.KeyCtrlRight:
		f.Move(field.MoveWord, field.DirRight)
	case tea.KeyHome, tea.KeyCtrlA:
		f.Move(field.MoveLine, field.DirLeft)
	case tea.KeyEnd, tea.KeyCtrlE:
		f.Move(field.MoveLine, field.DirRight)
	case tea.KeyBackspace:
		f.DeleteBackward()
	case tea.KeyDelete:
		f.DeleteForward()
	case tea.KeyCtrlW:
		f.DeleteWordBackward()
	case tea.KeyCtrlZ:
		f.Undo()
	case tea.KeyCtrlY:
		f.Redo()
	case tea.KeySpace:
		f.Insert(" ")
	case tea.KeyRunes:
		f.Insert(string(msg.Runes))
	}
}

func normalizeNewlines(s string) string {
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(s)
}
