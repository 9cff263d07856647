// Package field implements the single-line text input used by editor
// prompts.
//
// The cursor is a 0-based grapheme column. Newlines are dropped on insert.
package field

import (
	"strings"

	graphemeutil "github.com/seo-rii/tiptap/internal/grapheme"
)

const defaultHistoryLimit = 100

type snapshot struct {
	text   []string
	cursor int
}

// Field is a grapheme-accurate line of text with a cursor and local undo.
type Field struct {
	text   []string
	cursor int

	undo []snapshot
	redo []snapshot
}

func New(text string) *Field {
	f := &Field{}
	f.text = graphemeutil.Split(clean(text))
	f.cursor = len(f.text)
	return f
}

func (f *Field) Value() string { return strings.Join(f.text, "") }

func (f *Field) Cursor() int { return f.cursor }

func (f *Field) Len() int { return len(f.text) }

// Reset replaces the content, drops the history and puts the cursor at the
// end.
func (f *Field) Reset(text string) {
	*f = *New(text)
}

// Insert puts s at the cursor.
func (f *Field) Insert(s string) {
	g := graphemeutil.Split(clean(s))
	if len(g) == 0 {
		return
	}
	f.record()
	next := make([]string, 0, len(f.text)+len(g))
	next = append(next, f.text[:f.cursor]...)
	next = append(next, g...)
	next = append(next, f.text[f.cursor:]...)
	f.text = next
	f.cursor += len(g)
}

func (f *Field) DeleteBackward() {
	if f.cursor == 0 {
		return
	}
	f.record()
	f.text = append(f.text[:f.cursor-1:f.cursor-1], f.text[f.cursor:]...)
	f.cursor--
}

func (f *Field) DeleteForward() {
	if f.cursor == len(f.text) {
		return
	}
	f.record()
	f.text = append(f.text[:f.cursor:f.cursor], f.text[f.cursor+1:]...)
}

// DeleteWordBackward deletes back to the previous word boundary.
func (f *Field) DeleteWordBackward() {
	start := prevWordBoundary(f.text, f.cursor)
	if start == f.cursor {
		return
	}
	f.record()
	f.text = append(f.text[:start:start], f.text[f.cursor:]...)
	f.cursor = start
}

func (f *Field) record() {
	f.undo = append(f.undo, snapshot{text: append([]string(nil), f.text...), cursor: f.cursor})
	if len(f.undo) > defaultHistoryLimit {
		f.undo = f.undo[len(f.undo)-defaultHistoryLimit:]
	}
	f.redo = nil
}

func (f *Field) Undo() bool {
	if len(f.undo) == 0 {
		return false
	}
	prev := f.undo[len(f.undo)-1]
	f.undo = f.undo[:len(f.undo)-1]
	f.redo = append(f.redo, snapshot{text: f.text, cursor: f.cursor})
	f.text, f.cursor = prev.text, prev.cursor
	return true
}

func (f *Field) Redo() bool {
	if len(f.redo) == 0 {
		return false
	}
	next := f.redo[len(f.redo)-1]
	f.redo = f.redo[:len(f.redo)-1]
	f.undo = append(f.undo, snapshot{text: f.text, cursor: f.cursor})
	f.text, f.cursor = next.text, next.cursor
	return true
}

// View returns the text before and after the cursor and the cluster under
// it, which is "" at the end of the field.
func (f *Field) View() (before, at, after string) {
	before = strings.Join(f.text[:f.cursor], "")
	if f.cursor < len(f.text) {
		at = f.text[f.cursor]
		after = strings.Join(f.text[f.cursor+1:], "")
	}
	return before, at, after
}

func clean(s string) string {
	return strings.NewReplacer("\r\n", "", "\r", "", "\n", "").Replace(s)
}
