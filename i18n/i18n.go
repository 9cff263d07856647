// Package i18n holds the user-facing strings of the editor in every
// supported locale and picks a locale from a BCP 47 language tag.
package i18n

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Key names a translatable string.
type Key string

const (
	Text     Key = "text"
	Block    Key = "block"
	Loading  Key = "loading"
	Delete   Key = "delete"
	Close    Key = "close"
	Cancel   Key = "cancel"
	Insert   Key = "insert"
	NoResult Key = "noResult"
	Default  Key = "default"
	Auto     Key = "auto"

	Title         Key = "title"
	Paragraph     Key = "paragraph"
	Link          Key = "link"
	AlignLeft     Key = "alignLeft"
	AlignCenter   Key = "alignCenter"
	AlignRight    Key = "alignRight"
	AlignJustify  Key = "alignJustify"
	UnorderedList Key = "unorderedList"
	NumberList    Key = "numberList"
	CodeBlock     Key = "codeBlock"
	MathBlock     Key = "mathBlock"
	Table         Key = "table"
	Image         Key = "image"
	Iframe        Key = "iframe"
	Youtube       Key = "youtube"
	Blockquote    Key = "blockquote"

	Title1Info        Key = "title1Info"
	Title2Info        Key = "title2Info"
	Title3Info        Key = "title3Info"
	UnorderedListInfo Key = "unorderedListInfo"
	NumberListInfo    Key = "numberListInfo"
	CodeBlockInfo     Key = "codeBlockInfo"
	MathBlockInfo     Key = "mathBlockInfo"
	TableInfo         Key = "tableInfo"
	ImageInfo         Key = "imageInfo"
	IframeInfo        Key = "iframeInfo"
	YoutubeInfo       Key = "youtubeInfo"
	BlockquoteInfo    Key = "blockquoteInfo"

	NewLineInfo Key = "newLineInfo"
	Placeholder Key = "placeholder"
	InsertCode  Key = "insertCode"

	// Detail prompts of the command palette.
	IframeURL  Key = "iframeURL"
	YoutubeURL Key = "youtubeURL"
	Emoji      Key = "emoji"
)

// Locale is one translation table.
type Locale struct {
	Tag     language.Tag
	Strings map[Key]string
}

// LangCountry returns the locale as "lang-COUNTRY", e.g. "en-US".
func (l *Locale) LangCountry() string {
	base, _ := l.Tag.Base()
	region, _ := l.Tag.Region()
	return base.String() + "-" + region.String()
}

// T returns the string for key, or "" when the locale lacks it.
func (l *Locale) T(key Key) string {
	if l == nil {
		return ""
	}
	return l.Strings[key]
}

// Locales returns every supported locale, the fallback first.
func Locales() []*Locale { return []*Locale{EnUS, KoKR} }

var matcher = language.NewMatcher([]language.Tag{EnUS.Tag, KoKR.Tag})

// Detect picks the locale best matching tag, e.g. "ko", "ko-KR" or
// "en-GB". Unknown or malformed tags fall back to en-US.
func Detect(tag string) *Locale {
	if strings.TrimSpace(tag) == "" {
		return EnUS
	}
	t, err := language.Parse(tag)
	if err != nil {
		return EnUS
	}
	_, index, conf := matcher.Match(t)
	if conf == language.No {
		return EnUS
	}
	return Locales()[index]
}

var lower = cases.Lower(language.Und)

// Fold prepares s for case-insensitive matching: NFC-normalized, trimmed
// and lower-cased.
func Fold(s string) string {
	return lower.String(norm.NFC.String(strings.TrimSpace(s)))
}

// Keywords collects the folded strings of keys in every locale followed by
// extra, dropping empty and duplicate entries.
func Keywords(keys []Key, extra ...string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		s = Fold(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, l := range Locales() {
		for _, k := range keys {
			add(l.T(k))
		}
	}
	for _, s := range extra {
		add(s)
	}
	return out
}
