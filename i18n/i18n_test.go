package i18n

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		tag  string
		want *Locale
	}{
		{"", EnUS},
		{"en", EnUS},
		{"en-GB", EnUS},
		{"ko", KoKR},
		{"ko-KR", KoKR},
		{"fr-FR", EnUS},
		{"not a tag!", EnUS},
	}
	for _, tt := range tests {
		if got := Detect(tt.tag); got != tt.want {
			t.Fatalf("Detect(%q)=%s, want %s", tt.tag, got.LangCountry(), tt.want.LangCountry())
		}
	}
}

func TestLangCountry(t *testing.T) {
	if got, want := EnUS.LangCountry(), "en-US"; got != want {
		t.Fatalf("LangCountry=%q, want %q", got, want)
	}
	if got, want := KoKR.LangCountry(), "ko-KR"; got != want {
		t.Fatalf("LangCountry=%q, want %q", got, want)
	}
}

func TestLocalesCoverSameKeys(t *testing.T) {
	for k := range EnUS.Strings {
		if KoKR.T(k) == "" {
			t.Fatalf("ko-KR lacks %q", k)
		}
	}
	for k := range KoKR.Strings {
		if EnUS.T(k) == "" {
			t.Fatalf("en-US lacks %q", k)
		}
	}
}

func TestT_Missing(t *testing.T) {
	if got := EnUS.T("nope"); got != "" {
		t.Fatalf("T(nope)=%q, want empty", got)
	}
	var l *Locale
	if got := l.T(Title); got != "" {
		t.Fatalf("nil T=%q, want empty", got)
	}
}

func TestKeywords(t *testing.T) {
	got := Keywords([]Key{UnorderedList, UnorderedListInfo}, "Bullet List", " ul ", "unordered list")
	want := []string{"unordered list", "리스트", "순서 없는 리스트", "bullet list", "ul"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestFold(t *testing.T) {
	// "가" spelled as conjoining jamo composes to the precomposed syllable.
	if got, want := Fold(" \u1100\u1161 "), "\uac00"; got != want {
		t.Fatalf("Fold=%q, want %q", got, want)
	}
	if got, want := Fold("Code BLOCK"), "code block"; got != want {
		t.Fatalf("Fold=%q, want %q", got, want)
	}
}
