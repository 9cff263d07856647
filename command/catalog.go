package command

import (
	"fmt"

	"github.com/seo-rii/tiptap/document"
	"github.com/seo-rii/tiptap/i18n"
	"github.com/seo-rii/tiptap/orderedlist"
	"github.com/seo-rii/tiptap/table"
)

// ImagePicker lets the user choose an image. The host calls insert with the
// image source once it is available, on the event loop.
type ImagePicker interface {
	PickImage(insert func(src string))
}

type ImagePickerFunc func(insert func(src string))

func (f ImagePickerFunc) PickImage(insert func(src string)) { f(insert) }

// Catalog is the built-in slash command list.
type Catalog struct {
	// Locale defaults to en-US.
	Locale *i18n.Locale
	// Blocks are listed first in the block section.
	Blocks *Registry
	// Images enables the image item.
	Images ImagePicker
	Mode   MatchMode
}

// Source returns the "/" palette source of c.
func (c *Catalog) Source() Source {
	return Source{Char: "/", Items: c.Items}
}

// Items returns the catalog filtered by query.
func (c *Catalog) Items(query string) []Entry {
	return Filter(c.Groups(), query, c.Mode)
}

func (c *Catalog) locale() *i18n.Locale {
	if c.Locale == nil {
		return i18n.EnUS
	}
	return c.Locale
}

// Groups returns the unfiltered catalog: a text section and a block section.
func (c *Catalog) Groups() []Group {
	l := c.locale()
	text := []Item{
		c.heading(1, i18n.Title1Info, "heading 1", "h1"),
		c.heading(2, i18n.Title2Info, "heading 2", "h2"),
		c.heading(3, i18n.Title3Info, "heading 3", "h3"),
		{
			ID: "bulletList", Icon: "format_list_bulleted",
			Title: l.T(i18n.UnorderedList), Subtitle: l.T(i18n.UnorderedListInfo),
			Keywords: i18n.Keywords([]i18n.Key{i18n.UnorderedList, i18n.UnorderedListInfo}, "bullet list", "ul"),
			Command:  toggleList("bulletList"),
		},
		{
			ID: "orderedList", Icon: "format_list_numbered",
			Title: l.T(i18n.NumberList), Subtitle: l.T(i18n.NumberListInfo),
			Keywords: i18n.Keywords([]i18n.Key{i18n.NumberList, i18n.NumberListInfo}, "ordered list", "ol"),
			Command:  toggleList("orderedList"),
		},
	}

	var blocks []Item
	if c.Blocks != nil {
		blocks = append(blocks, c.Blocks.Items()...)
	}
	if c.Images != nil {
		blocks = append(blocks, Item{
			ID: "image", Icon: "image",
			Title: l.T(i18n.Image), Subtitle: l.T(i18n.ImageInfo),
			Keywords: i18n.Keywords([]i18n.Key{i18n.Image, i18n.ImageInfo}),
			Command:  c.insertImage,
		})
	}
	blocks = append(blocks,
		Item{
			ID: "codeBlock", Icon: "code",
			Title: l.T(i18n.CodeBlock), Subtitle: l.T(i18n.CodeBlockInfo),
			Keywords: i18n.Keywords([]i18n.Key{i18n.CodeBlock, i18n.CodeBlockInfo}, "code"),
			Command:  setBlock("codeBlock", document.Attrs{"language": nil}),
		},
		Item{
			ID: "mathBlock", Icon: "functions",
			Title: l.T(i18n.MathBlock), Subtitle: l.T(i18n.MathBlockInfo),
			Keywords: i18n.Keywords([]i18n.Key{i18n.MathBlock, i18n.MathBlockInfo}, "latex", "equation"),
			Command:  setBlock("math_display", nil),
		},
		Item{
			ID: "table", Icon: "table_chart",
			Title: l.T(i18n.Table), Subtitle: l.T(i18n.TableInfo),
			Keywords: i18n.Keywords([]i18n.Key{i18n.Table, i18n.TableInfo}),
			Command:  insertTable,
		},
		Item{
			ID: "blockquote", Icon: "format_quote",
			Title: l.T(i18n.Blockquote), Subtitle: l.T(i18n.BlockquoteInfo),
			Keywords: i18n.Keywords([]i18n.Key{i18n.Blockquote, i18n.BlockquoteInfo}, "quote"),
			Command:  wrapBlockquote,
		},
		Item{
			ID: "iframe", Icon: "iframe",
			Title: l.T(i18n.Iframe), Subtitle: l.T(i18n.IframeInfo),
			Keywords: i18n.Keywords([]i18n.Key{i18n.Iframe, i18n.IframeInfo}, "embed", "url"),
			Command: func(ctx EditContext) {
				ctx.RequestDetail(Detail{
					Kind: DetailInput, Title: "iframe", Placeholder: "url",
					Handler: func(src string) { InsertIframe(ctx.State, src) },
				})
			},
		},
		Item{
			ID: "youtube", Icon: "youtube_activity",
			Title: l.T(i18n.Youtube), Subtitle: l.T(i18n.YoutubeInfo),
			Keywords: i18n.Keywords([]i18n.Key{i18n.Youtube, i18n.YoutubeInfo}, "video"),
			Command: func(ctx EditContext) {
				ctx.RequestDetail(Detail{
					Kind: DetailInput, Title: "youtube", Placeholder: "url",
					Handler: func(url string) { InsertYoutube(ctx.State, url) },
				})
			},
		},
	)

	return []Group{
		{Section: l.T(i18n.Text), List: text},
		{Section: l.T(i18n.Block), List: blocks},
	}
}

func (c *Catalog) heading(level int, info i18n.Key, extra ...string) Item {
	l := c.locale()
	return Item{
		ID:       fmt.Sprintf("heading%d", level),
		Icon:     "title",
		Title:    fmt.Sprintf("%s %d", l.T(i18n.Title), level),
		Subtitle: l.T(info),
		Keywords: i18n.Keywords([]i18n.Key{i18n.Title, info}, extra...),
		Command:  setBlock("heading", document.Attrs{"level": level}),
	}
}

// setBlock removes the trigger text and turns the textblocks of the
// selection into t.
func setBlock(typeName string, attrs document.Attrs) func(EditContext) {
	return func(ctx EditContext) {
		t := ctx.State.Schema().Type(typeName)
		if t == nil {
			return
		}
		r := ctx.FixRange("/")
		tr := ctx.State.Tx().DeleteRange(r.From, r.To)
		sel := tr.Selection()
		tr.SetBlockType(sel.From(), sel.To(), t, attrs)
		ctx.State.Dispatch(tr)
	}
}

func toggleList(listType string) func(EditContext) {
	return func(ctx EditContext) {
		ctx.DeleteTrigger("/")
		orderedlist.ToggleList(ctx.State, listType, "listItem", nil)
	}
}

func insertTable(ctx EditContext) {
	r := ctx.FixRange("/")
	tr := ctx.State.Tx().DeleteRange(r.From, r.To)
	if table.InsertTable(tr, 2, 3, true) {
		ctx.State.Dispatch(tr)
	}
}

func wrapBlockquote(ctx EditContext) {
	quote := ctx.State.Schema().Type("blockquote")
	if quote == nil {
		return
	}
	r := ctx.FixRange("/")
	tr := ctx.State.Tx().DeleteRange(r.From, r.To)
	sel := tr.Selection()
	from, err := tr.Doc().Resolve(sel.From())
	if err != nil {
		return
	}
	to, err := tr.Doc().Resolve(sel.To())
	if err != nil {
		return
	}
	nr, ok := from.BlockRange(to, func(n *document.Node) bool { return n.Type().AllowsChild(quote) })
	if !ok {
		return
	}
	tr.Wrap(nr, document.Wrapper{Type: quote})
	ctx.State.Dispatch(tr)
}

func (c *Catalog) insertImage(ctx EditContext) {
	if ctx.State.Schema().Type("image") == nil {
		return
	}
	ctx.DeleteTrigger("/")
	st := ctx.State
	c.Images.PickImage(func(src string) {
		if src == "" {
			return
		}
		InsertBlocks(st, 1, st.Schema().Node("image", document.Attrs{"src": src}))
	})
}

// InsertBlocks inserts nodes at the cursor and moves the cursor next to
// them, searching in direction bias.
func InsertBlocks(st *document.State, bias int, nodes ...*document.Node) bool {
	tr := st.Tx()
	head := tr.Selection().Head
	startMap := tr.Mapping()
	mark := startMap.Len()
	tr.InsertBlocks(head, nodes...)
	if tr.Err() != nil {
		return false
	}
	m := tr.Mapping()
	end := m.Slice(mark).Map(head, 1)
	tr.SetSelection(document.Near(tr.Doc(), end, bias))
	return st.Dispatch(tr)
}

// InsertIframe inserts an iframe for src followed by an empty paragraph. It
// reports false when the schema has no iframe type.
func InsertIframe(st *document.State, src string) bool {
	s := st.Schema()
	if src == "" || s.Type("iframe") == nil {
		return false
	}
	return InsertBlocks(st, -1, s.Node("iframe", document.Attrs{"src": src}), s.Node("paragraph", nil))
}

// InsertYoutube inserts a YouTube player for url followed by an empty
// paragraph. It reports false when url is not a YouTube video URL or the
// schema has no lite-youtube type.
func InsertYoutube(st *document.State, url string) bool {
	s := st.Schema()
	if s.Type("lite-youtube") == nil {
		return false
	}
	id, ok := YoutubeID(url)
	if !ok {
		return false
	}
	return InsertBlocks(st, -1, s.Node("lite-youtube", document.Attrs{"videoid": id}), s.Node("paragraph", nil))
}
