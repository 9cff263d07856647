package editor

import (
	"log/slog"
	"reflect"

	"github.com/seo-rii/tiptap/command"
	"github.com/seo-rii/tiptap/document"
	"github.com/seo-rii/tiptap/i18n"
	"github.com/seo-rii/tiptap/resize"
	"github.com/seo-rii/tiptap/upload"
)

const (
	defaultCellWidth       = 8
	defaultCellHeight      = 20
	defaultPaletteMaxRows  = 8
	defaultPaletteMaxWidth = 48
)

// Config configures the editor Model. Zero values select defaults.
type Config struct {
	// Doc is the initial document. Defaults to a single empty paragraph.
	Doc    *document.Node
	Schema *document.Schema

	// Language picks the UI locale, e.g. "ko-KR". Defaults to en-US.
	Language string

	ReadOnly bool
	Style    Style
	KeyMap   KeyMap

	// ScrollPolicy defaults to ScrollWheel.
	ScrollPolicy ScrollPolicy

	// CellWidth and CellHeight are the pixel size of one terminal cell.
	// Media heights are stored in pixels and drawn in cells.
	CellWidth  int
	CellHeight int

	// Handles controls where media resize handles are drawn.
	Handles resize.HandleOptions
	// Deadzone is the resize click/drag threshold in pixels.
	Deadzone float64

	// Blocks are host block items shown first in the palette block section.
	Blocks *command.Registry
	// FuzzyPalette ranks palette items by fuzzy score.
	FuzzyPalette    bool
	PaletteMaxRows  int
	PaletteMaxWidth int

	// Uploader stores dropped and picked images. Defaults to an in-memory
	// object URL store.
	Uploader upload.Uploader

	HistoryLimit int

	OnChange func(ChangeEvent)
	Logger   *slog.Logger
}

func normalizeConfig(cfg Config) Config {
	if cfg.Schema == nil {
		cfg.Schema = document.DefaultSchema()
	}
	if cfg.Doc == nil {
		cfg.Doc = cfg.Schema.Node("doc", nil, cfg.Schema.Node("paragraph", nil))
	}
	if reflect.DeepEqual(cfg.Style, Style{}) {
		cfg.Style = DefaultStyle()
	}
	if reflect.DeepEqual(cfg.KeyMap, KeyMap{}) {
		cfg.KeyMap = DefaultKeyMap()
	}
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = defaultCellWidth
	}
	if cfg.CellHeight <= 0 {
		cfg.CellHeight = defaultCellHeight
	}
	if cfg.Handles == (resize.HandleOptions{}) {
		cfg.Handles = resize.DefaultHandleOptions()
	}
	if cfg.PaletteMaxRows <= 0 {
		cfg.PaletteMaxRows = defaultPaletteMaxRows
	}
	if cfg.PaletteMaxWidth <= 0 {
		cfg.PaletteMaxWidth = defaultPaletteMaxWidth
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

func (cfg Config) locale() *i18n.Locale {
	return i18n.Detect(cfg.Language)
}
