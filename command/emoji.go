package command

import (
	_ "embed"
	"log/slog"
	"strings"
	"sync"

	"go.yaml.in/yaml/v4"
)

//go:embed emoji.yaml
var emojiYAML []byte

// MaxEmojiResults caps the ":" palette.
const MaxEmojiResults = 10

// Emoji is one entry of the emoji table.
type Emoji struct {
	Emoji string `yaml:"emoji"`
	Tags  string `yaml:"tags"`
}

var emojiTable = sync.OnceValue(func() []Emoji {
	var out []Emoji
	if err := yaml.Unmarshal(emojiYAML, &out); err != nil {
		slog.Warn("Failed to parse emoji table", "error", err)
		return nil
	}
	return out
})

// Emojis returns the built-in emoji table.
func Emojis() []Emoji { return append([]Emoji(nil), emojiTable()...) }

// EmojiSource returns the ":" palette source.
func EmojiSource() Source {
	return Source{Char: ":", Items: EmojiItems, Detail: DetailEmoji}
}

// EmojiItems returns up to MaxEmojiResults emoji whose tags contain ":" and
// the lower-cased query. Running an item replaces the trigger text with the
// emoji and a space.
func EmojiItems(query string) []Entry {
	needle := ":" + strings.ToLower(query)
	var out []Entry
	for _, e := range emojiTable() {
		if !strings.Contains(e.Tags, needle) {
			continue
		}
		value := e.Emoji
		out = append(out, ItemEntry(Item{
			ID:    value,
			Title: value + "  " + e.Tags,
			Command: func(ctx EditContext) {
				r := ctx.FixRange(":")
				tr := ctx.State.Tx().DeleteRange(r.From, r.To)
				tr.InsertText(tr.Selection().Head, value+" ")
				ctx.State.Dispatch(tr)
			},
		}))
		if len(out) >= MaxEmojiResults {
			break
		}
	}
	return out
}
