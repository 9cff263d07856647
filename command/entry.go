package command

import "github.com/seo-rii/tiptap/document"

// Range is a half-open document range.
type Range struct {
	From int
	To   int
}

// EditContext is where a palette command applies: the editor state and the
// range covering the trigger and query text.
type EditContext struct {
	State *document.State
	Range Range

	engine *Engine
}

// FixRange returns the range of the typed trigger and query at the time of
// the call. See FixRange.
func (c EditContext) FixRange(split string) Range {
	return FixRange(c.State.Doc(), c.State.Selection(), c.Range, split)
}

// DeleteTrigger removes the trigger and query text from the document.
func (c EditContext) DeleteTrigger(split string) bool {
	r := c.FixRange(split)
	return c.State.Dispatch(c.State.Tx().DeleteRange(r.From, r.To))
}

// RequestDetail asks the host for more input before the command can finish.
// The trigger text is removed right before d's handler runs.
func (c EditContext) RequestDetail(d Detail) {
	if c.engine == nil {
		return
	}
	split := c.engine.triggerChar()
	c.engine.requestDetail(d, func() { c.DeleteTrigger(split) })
}

// Item is one palette action.
type Item struct {
	ID       string
	Icon     string
	Title    string
	Subtitle string
	Keywords []string

	Command func(EditContext)
}

// EntryKind discriminates Entry.
type EntryKind uint8

const (
	EntryItem EntryKind = iota
	EntryGroup
)

// Entry is either a single item or a named section of items.
type Entry struct {
	Kind EntryKind

	Item Item // EntryItem

	Section string // EntryGroup
	List    []Item
}

func ItemEntry(it Item) Entry { return Entry{Kind: EntryItem, Item: it} }

func GroupEntry(section string, list []Item) Entry {
	return Entry{Kind: EntryGroup, Section: section, List: list}
}

// Flatten returns the items of entries in display order.
func Flatten(entries []Entry) []Item {
	var out []Item
	for _, e := range entries {
		switch e.Kind {
		case EntryItem:
			out = append(out, e.Item)
		case EntryGroup:
			out = append(out, e.List...)
		}
	}
	return out
}

// Count returns the number of items in entries.
func Count(entries []Entry) int {
	n := 0
	for _, e := range entries {
		switch e.Kind {
		case EntryItem:
			n++
		case EntryGroup:
			n += len(e.List)
		}
	}
	return n
}

// DetailKind discriminates Detail.
type DetailKind uint8

const (
	DetailNone DetailKind = iota
	// DetailEmoji marks an emoji session; the popup renders a grid.
	DetailEmoji
	// DetailInput asks for one line of text, e.g. a URL.
	DetailInput
	// DetailCode asks for a code snippet.
	DetailCode
)

func (k DetailKind) String() string {
	switch k {
	case DetailNone:
		return "none"
	case DetailEmoji:
		return "emoji"
	case DetailInput:
		return "input"
	case DetailCode:
		return "code"
	default:
		return "unknown"
	}
}

// Detail is an extra step shown by the palette.
type Detail struct {
	Kind        DetailKind
	Title       string
	Placeholder string
	Handler     func(input string)
}

// Pending reports whether d waits for user input.
func (d Detail) Pending() bool { return d.Kind == DetailInput || d.Kind == DetailCode }
