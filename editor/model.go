package editor

import (
	"sync/atomic"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/seo-rii/tiptap/command"
	"github.com/seo-rii/tiptap/document"
	"github.com/seo-rii/tiptap/internal/field"
	"github.com/seo-rii/tiptap/resize"
	"github.com/seo-rii/tiptap/upload"
)

var lastID atomic.Int64

func nextID() int { return int(lastID.Add(1)) }

// Model is a Bubble Tea component that renders and edits a document.
//
// Model is a value type; the document state, palette, resize controller and
// UI scratch state are shared by copies.
type Model struct {
	id  int
	cfg Config
	st  *document.State

	palette *command.Engine
	resizer *resize.Controller
	frames  *frameQueue
	objects *upload.ObjectURLStore
	ui      *uiState

	focused bool

	viewport viewport.Model

	lastVersion uint64
	lastSel     document.Selection
}

type uiState struct {
	layout layout
	// input holds the text of a pending palette detail or the image prompt.
	input  *field.Field
	prompt imagePrompt
	mouse  mouseState
}

// imagePrompt collects a file path for the palette image item in
// uiState.input.
type imagePrompt struct {
	active bool
	insert func(src string)
}

type mouseState struct {
	resizing  bool
	selecting bool
	anchor    int
}

func New(cfg Config) Model {
	cfg = normalizeConfig(cfg)
	m := Model{
		id:       nextID(),
		cfg:      cfg,
		frames:   &frameQueue{},
		ui:       &uiState{input: field.New("")},
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.st = document.NewState(cfg.Schema, cfg.Doc, document.Options{
		HistoryLimit: cfg.HistoryLimit,
		Append:       []document.AppendFunc{resize.AutoSelect},
		Logger:       cfg.Logger,
	})
	m.objects = upload.NewObjectURLStore(upload.StoreOptions{Logger: cfg.Logger})
	if m.cfg.Uploader == nil {
		m.cfg.Uploader = m.objects
	}

	mode := command.MatchSubstring
	if cfg.FuzzyPalette {
		mode = command.MatchFuzzy
	}
	ui := m.ui
	m.palette = command.NewEngine(command.Options{
		Catalog: &command.Catalog{
			Locale: cfg.locale(),
			Blocks: cfg.Blocks,
			Images: command.ImagePickerFunc(func(insert func(src string)) {
				ui.prompt = imagePrompt{active: true, insert: insert}
				ui.input.Reset("")
			}),
			Mode: mode,
		},
		KeyMap: cfg.KeyMap.Palette,
		Logger: cfg.Logger,
	})

	cellW, cellH := cfg.CellWidth, cfg.CellHeight
	m.resizer = resize.NewController(m.st, resize.TargetFunc(func(pos int) (resize.Size, bool) {
		return ui.layout.measure(pos, cellW, cellH)
	}), resize.Options{
		Deadzone: cfg.Deadzone,
		Frames:   m.frames,
		Logger:   cfg.Logger,
	})

	m.lastVersion = m.st.Version()
	m.lastSel = m.st.Selection()
	m.rebuildContent()
	return m
}

// State returns the document state. Hosts may dispatch transactions on it;
// the next Update picks the change up.
func (m Model) State() *document.State { return m.st }

// Palette returns the slash command engine.
func (m Model) Palette() *command.Engine { return m.palette }

// Resizer returns the media resize controller.
func (m Model) Resizer() *resize.Controller { return m.resizer }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.resizer.Destroy()
		m.ui.mouse = mouseState{}
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		m, cmd = m.updateKey(msg)
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
	case frameMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.frames.ticking = false
		m.frames.flush()
	case uploadDoneMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.applyUpload(msg)
	case imagePickedMsg:
		if msg.id != m.id {
			return m, nil
		}
		m.applyPicked(msg)
	}
	m.sync()
	return m, tea.Batch(cmd, m.frameCmd())
}

func (m Model) View() string {
	base := m.viewport.View()
	if view, ok := m.popupView(base); ok {
		return view
	}
	return base
}

// sync follows changes of the state: the palette trigger, change events,
// the rendered content and the viewport offset.
func (m *Model) sync() {
	m.palette.Sync(m.st)
	ver, sel := m.st.Version(), m.st.Selection()
	changed := ver != m.lastVersion || sel != m.lastSel
	m.lastVersion, m.lastSel = ver, sel

	m.rebuildContent()
	if changed {
		m.followCursor()
		if m.cfg.OnChange != nil {
			m.cfg.OnChange(buildChangeEvent(m.st))
		}
	}
	m.placePalette()
}

func (m *Model) rebuildContent() {
	m.ui.layout = m.render()
	m.viewport.SetContent(m.ui.layout.content())
}

func (m *Model) contentWidth() int {
	return m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
}

func (m *Model) contentHeight() int {
	return m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
}

// cursorRow returns the visual row of the selection head.
func (m *Model) cursorRow() (row, col int, ok bool) {
	sel := m.st.Selection()
	pos := sel.Head
	if sel.Kind == document.NodeSelection {
		pos = sel.Anchor
	}
	return m.ui.layout.cursor(pos)
}

func (m *Model) followCursor() {
	row, _, ok := m.cursorRow()
	h := m.contentHeight()
	if !ok || h <= 0 {
		return
	}
	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}

// placePalette anchors the palette at the cursor cell in viewport
// coordinates.
func (m *Model) placePalette() {
	if !m.palette.Visible() {
		return
	}
	row, col, ok := m.cursorRow()
	if !ok {
		return
	}
	m.palette.SetLocation(command.Location{X: col, Y: row - m.viewport.YOffset, Height: 1})
}
