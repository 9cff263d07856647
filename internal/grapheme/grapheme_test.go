package grapheme

import "testing"

const family = "\U0001F468‍\U0001F469‍\U0001F467‍\U0001F466"

func TestSplitAndCount_MultiRuneGraphemes(t *testing.T) {
	text := "a" + "é" + family + "b"
	got := Split(text)
	if len(got) != 4 {
		t.Fatalf("split len=%d, want %d", len(got), 4)
	}
	if got[1] != "é" {
		t.Fatalf("split[1]=%q, want %q", got[1], "é")
	}
	if got[2] != family {
		t.Fatalf("split[2]=%q, want family emoji", got[2])
	}
	if c := Count(text); c != 4 {
		t.Fatalf("count=%d, want %d", c, 4)
	}
}

func TestSlice_GraphemeSafe(t *testing.T) {
	text := "a" + "é" + family + "b"
	if got, want := Slice(text, 1, 3), "é"+family; got != want {
		t.Fatalf("slice=%q, want %q", got, want)
	}
	if got := Slice(text, 5, 6); got != "" {
		t.Fatalf("slice past end=%q, want empty", got)
	}
	if got, want := At(text, 3), "b"; got != want {
		t.Fatalf("at=%q, want %q", got, want)
	}
}

func TestWidthAndTruncate(t *testing.T) {
	if got, want := Width("ab"), 2; got != want {
		t.Fatalf("width=%d, want %d", got, want)
	}
	if got, want := Width("표"), 2; got != want {
		t.Fatalf("wide width=%d, want %d", got, want)
	}
	if got, want := Truncate("a표b", 2), "a"; got != want {
		t.Fatalf("truncate=%q, want %q", got, want)
	}
	if got, want := Truncate("a표b", 3), "a표"; got != want {
		t.Fatalf("truncate=%q, want %q", got, want)
	}
}

func TestIsSpace(t *testing.T) {
	if !IsSpace("\t") {
		t.Fatalf("tab should be space")
	}
	if IsSpace("a") {
		t.Fatalf("letter should not be space")
	}
	if IsSpace("") {
		t.Fatalf("empty should not be space")
	}
}
