// Package command implements the slash command palette: trigger detection,
// the filtered and grouped item list, keyboard navigation and execution of
// the chosen item against the editor state.
package command

import (
	"log/slog"
	"reflect"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seo-rii/tiptap/document"
)

// Location anchors the palette popup on screen.
type Location struct {
	X      int
	Y      int
	Height int
}

// Props holds where the next command applies.
type Props struct {
	Context *EditContext
}

// Session is the live palette state.
type Session struct {
	Visible       bool
	Items         []Entry
	SelectedIndex int
	Location      Location
	Props         Props
	Detail        Detail

	// Selection runs right before a pending detail's handler.
	Selection func()

	Trigger string
	Query   string
}

// Source produces palette entries for one trigger character.
type Source struct {
	Char   string
	Items  func(query string) []Entry
	Detail DetailKind
}

// KeyMap defines the palette bindings used while the popup is visible.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Next  key.Binding
	Prev  key.Binding
	Enter key.Binding
	Close key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous item")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next item")),
		Next:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next item")),
		Prev:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous item")),
		Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run item")),
		Close: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// Options configures an Engine. Zero values select defaults.
type Options struct {
	// Sources are tried in order. Defaults to the slash catalog built from
	// Catalog plus the emoji source.
	Sources []Source
	Catalog *Catalog
	KeyMap  KeyMap
	Logger  *slog.Logger
}

func normalizeOptions(opt Options) Options {
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if reflect.DeepEqual(opt.KeyMap, KeyMap{}) {
		opt.KeyMap = DefaultKeyMap()
	}
	if len(opt.Sources) == 0 {
		if opt.Catalog == nil {
			opt.Catalog = &Catalog{}
		}
		opt.Sources = []Source{opt.Catalog.Source(), EmojiSource()}
	}
	return opt
}

// Engine owns the palette session of one editor.
type Engine struct {
	opt Options
	s   Session

	source    int
	triggerAt int

	// dismissed is the trigger closed with esc. Sync leaves it closed while
	// the same trigger text stays in place.
	dismissed    int
	hasDismissed bool
	requested    bool
}

func NewEngine(opt Options) *Engine {
	return &Engine{opt: normalizeOptions(opt)}
}

// Session returns a copy of the session state.
func (e *Engine) Session() Session { return e.s }

func (e *Engine) Visible() bool { return e.s.Visible }

func (e *Engine) KeyMap() KeyMap { return e.opt.KeyMap }

// Items returns the flattened items of the session.
func (e *Engine) Items() []Item { return Flatten(e.s.Items) }

// Selected returns the highlighted item.
func (e *Engine) Selected() (Item, bool) {
	items := e.Items()
	if e.s.SelectedIndex < 0 || e.s.SelectedIndex >= len(items) {
		return Item{}, false
	}
	return items[e.s.SelectedIndex], true
}

// Open starts a session for the trigger at triggerPos. The source is chosen
// by the character at triggerPos, falling back to the first source.
func (e *Engine) Open(triggerPos int, ctx EditContext) {
	src := 0
	if ctx.State != nil {
		doc := ctx.State.Doc()
		for i, s := range e.opt.Sources {
			if doc.TextBetween(triggerPos, triggerPos+1, "") == s.Char {
				src = i
				break
			}
		}
	}
	e.open(src, triggerPos, ctx)
}

func (e *Engine) open(src, triggerPos int, ctx EditContext) {
	e.source = src
	e.triggerAt = triggerPos
	e.requested = false
	e.s.Visible = true
	e.s.SelectedIndex = 0
	e.s.Detail = Detail{Kind: e.opt.Sources[src].Detail}
	e.s.Selection = nil
	e.s.Trigger = e.opt.Sources[src].Char
	e.setContext(ctx)
	e.UpdateQuery(e.queryOf(ctx))
	e.opt.Logger.Debug("palette opened", "trigger", e.s.Trigger, "pos", triggerPos)
}

func (e *Engine) queryOf(ctx EditContext) string {
	if ctx.State == nil {
		return ""
	}
	return ctx.State.Doc().TextBetween(ctx.Range.From+1, ctx.Range.To, "")
}

func (e *Engine) setContext(ctx EditContext) {
	ctx.engine = e
	e.s.Props.Context = &ctx
}

// SetContext replaces the pending edit context, e.g. after more query text
// was typed.
func (e *Engine) SetContext(ctx EditContext) { e.setContext(ctx) }

func (e *Engine) SetLocation(loc Location) { e.s.Location = loc }

// UpdateQuery recomputes the items for query and keeps the selected index
// within the new item count.
func (e *Engine) UpdateQuery(query string) []Entry {
	e.s.Query = query
	var items []Entry
	if len(e.opt.Sources) > 0 {
		items = e.opt.Sources[e.source].Items(query)
	}
	e.s.Items = items
	e.normalizeIndex()
	return items
}

// MoveSelection moves the highlight by delta, wrapping around in both
// directions.
func (e *Engine) MoveSelection(delta int) {
	if Count(e.s.Items) == 0 {
		e.s.SelectedIndex = 0
		return
	}
	e.s.SelectedIndex += delta
	e.normalizeIndex()
}

func (e *Engine) normalizeIndex() {
	n := Count(e.s.Items)
	if n == 0 {
		e.s.SelectedIndex = 0
		return
	}
	e.s.SelectedIndex = ((e.s.SelectedIndex % n) + n) % n
}

// ExecuteAt runs the item at index against the pending context. It reports
// false when there is no such item or no context. The session closes unless
// the item asked for more input.
func (e *Engine) ExecuteAt(index int) bool {
	items := e.Items()
	ctx := e.s.Props.Context
	if index < 0 || index >= len(items) || ctx == nil || ctx.State == nil {
		return false
	}
	it := items[index]
	if it.Command == nil {
		return false
	}
	e.requested = false
	it.Command(*ctx)
	e.opt.Logger.Debug("palette item executed", "item", it.ID, "title", it.Title)
	if !e.requested {
		e.Close()
	}
	return true
}

// Close hides the session and resets the highlight.
func (e *Engine) Close() {
	e.s.Visible = false
	e.s.SelectedIndex = 0
	e.s.Detail = Detail{}
	e.s.Selection = nil
}

func (e *Engine) triggerChar() string {
	if len(e.opt.Sources) == 0 {
		return "/"
	}
	return e.opt.Sources[e.source].Char
}

func (e *Engine) requestDetail(d Detail, selection func()) {
	e.requested = true
	e.s.Detail = d
	e.s.Selection = selection
}

// SubmitDetail completes a pending detail with input: the trigger text is
// removed, the handler runs and the session closes.
func (e *Engine) SubmitDetail(input string) bool {
	if !e.s.Visible || !e.s.Detail.Pending() {
		return false
	}
	d, sel := e.s.Detail, e.s.Selection
	if sel != nil {
		sel()
	}
	if d.Handler != nil {
		d.Handler(input)
	}
	e.Close()
	return true
}

// CancelDetail abandons a pending detail. The trigger text stays and the
// palette does not reopen for it.
func (e *Engine) CancelDetail() {
	if !e.s.Detail.Pending() {
		return
	}
	e.Close()
	e.dismissed, e.hasDismissed = e.triggerAt, true
}

// HandleKey routes msg while the popup is visible. It reports whether the
// key was consumed. Enter is consumed only when an item ran.
func (e *Engine) HandleKey(msg tea.KeyMsg) bool {
	if !e.s.Visible || e.s.Detail.Pending() {
		return false
	}
	km := e.opt.KeyMap
	switch {
	case key.Matches(msg, km.Up), key.Matches(msg, km.Prev):
		e.MoveSelection(-1)
		return true
	case key.Matches(msg, km.Down), key.Matches(msg, km.Next):
		e.MoveSelection(1)
		return true
	case key.Matches(msg, km.Enter):
		return e.ExecuteAt(e.s.SelectedIndex)
	case key.Matches(msg, km.Close):
		e.Close()
		e.dismissed, e.hasDismissed = e.triggerAt, true
		return true
	default:
		return false
	}
}

// Sync follows the trigger under the cursor of st: it opens a session when
// a trigger appears, refreshes the query while it is typed and closes the
// session when the trigger goes away. A session waiting for detail input is
// left alone.
func (e *Engine) Sync(st *document.State) {
	if e.s.Visible && e.s.Detail.Pending() {
		return
	}
	for i, src := range e.opt.Sources {
		t, ok := FindTrigger(st.Doc(), st.Selection(), src.Char)
		if !ok {
			continue
		}
		ctx := EditContext{State: st, Range: t.Range}
		if e.hasDismissed && e.dismissed == t.Pos {
			return
		}
		if !e.s.Visible || e.source != i || e.triggerAt != t.Pos {
			e.open(i, t.Pos, ctx)
			return
		}
		e.setContext(ctx)
		e.UpdateQuery(t.Query)
		return
	}
	e.hasDismissed = false
	if e.s.Visible {
		e.Close()
	}
}
