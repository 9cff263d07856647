package field

import graphemeutil "github.com/seo-rii/tiptap/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
)

// Move moves the cursor and reports whether it changed.
func (f *Field) Move(unit MoveUnit, dir MoveDir) bool {
	next := f.cursor
	switch unit {
	case MoveGrapheme:
		if dir == DirLeft {
			next--
		} else {
			next++
		}
	case MoveWord:
		if dir == DirLeft {
			next = prevWordBoundary(f.text, f.cursor)
		} else {
			next = nextWordBoundary(f.text, f.cursor)
		}
	case MoveLine:
		if dir == DirLeft {
			next = 0
		} else {
			next = len(f.text)
		}
	}
	next = clampInt(next, 0, len(f.text))
	if next == f.cursor {
		return false
	}
	f.cursor = next
	return true
}

// Word boundaries skip whitespace, then non-whitespace.
func prevWordBoundary(line []string, col int) int {
	i := clampInt(col, 0, len(line))
	for i > 0 && graphemeutil.IsSpace(line[i-1]) {
		i--
	}
	for i > 0 && !graphemeutil.IsSpace(line[i-1]) {
		i--
	}
	return i
}

func nextWordBoundary(line []string, col int) int {
	i := clampInt(col, 0, len(line))
	for i < len(line) && graphemeutil.IsSpace(line[i]) {
		i++
	}
	for i < len(line) && !graphemeutil.IsSpace(line[i]) {
		i++
	}
	return i
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
