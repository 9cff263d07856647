package field

import "testing"

const family = "\U0001F468‍\U0001F469‍\U0001F467‍\U0001F466"

func TestField_InsertAndDeleteGraphemes(t *testing.T) {
	f := New("ab")
	f.Move(MoveGrapheme, DirLeft)
	f.Insert(family + "\n")
	if got, want := f.Value(), "a"+family+"b"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
	if got, want := f.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}

	f.DeleteBackward()
	if got, want := f.Value(), "ab"; got != want {
		t.Fatalf("value after backspace=%q, want %q", got, want)
	}
	f.DeleteForward()
	if got, want := f.Value(), "a"; got != want {
		t.Fatalf("value after delete=%q, want %q", got, want)
	}
	f.DeleteForward()
	if got, want := f.Value(), "a"; got != want {
		t.Fatalf("delete at end changed value to %q", got)
	}
}

func TestField_MoveBounds(t *testing.T) {
	f := New("ab")
	if f.Move(MoveGrapheme, DirRight) {
		t.Fatalf("move past end should report no change")
	}
	f.Move(MoveLine, DirLeft)
	if got := f.Cursor(); got != 0 {
		t.Fatalf("cursor=%d, want 0", got)
	}
	if f.Move(MoveGrapheme, DirLeft) {
		t.Fatalf("move before start should report no change")
	}
}

func TestField_WordMovesAndDelete(t *testing.T) {
	f := New("open  the door")
	f.Move(MoveWord, DirLeft)
	if got, want := f.Cursor(), 10; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	f.Move(MoveWord, DirLeft)
	if got, want := f.Cursor(), 6; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	f.Move(MoveWord, DirRight)
	if got, want := f.Cursor(), 9; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	f.DeleteWordBackward()
	if got, want := f.Value(), "open   door"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
}

func TestField_UndoRedo(t *testing.T) {
	f := New("")
	f.Insert("a")
	f.Insert("b")
	if !f.Undo() || f.Value() != "a" || f.Cursor() != 1 {
		t.Fatalf("undo: value=%q cursor=%d, want a/1", f.Value(), f.Cursor())
	}
	if !f.Redo() || f.Value() != "ab" {
		t.Fatalf("redo: value=%q, want ab", f.Value())
	}
	f.Undo()
	f.Insert("c")
	if f.Redo() {
		t.Fatalf("redo should be cleared by an edit")
	}
	if got, want := f.Value(), "ac"; got != want {
		t.Fatalf("value=%q, want %q", got, want)
	}
}

func TestField_View(t *testing.T) {
	f := New("abc")
	f.Move(MoveGrapheme, DirLeft)
	before, at, after := f.View()
	if before != "ab" || at != "c" || after != "" {
		t.Fatalf("view=(%q,%q,%q), want (ab,c,)", before, at, after)
	}
	f.Reset("x")
	before, at, after = f.View()
	if before != "x" || at != "" || after != "" {
		t.Fatalf("view after reset=(%q,%q,%q), want (x,,)", before, at, after)
	}
}
