package editor

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v4"

	"github.com/seo-rii/tiptap/command"
)

// FileConfig is the YAML form of the host-facing settings:
//
//	language: ko-KR
//	read-only: false
//	cell: {width: 8, height: 20}
//	handles: {always: true, on-active: true}
//	deadzone: 4
//	palette: {fuzzy: true, max-rows: 8, max-width: 48}
//	blocks: blocks.yaml
//	history-limit: 500
//	scroll: cursor
type FileConfig struct {
	Language string `yaml:"language"`
	ReadOnly bool   `yaml:"read-only"`
	Cell     struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"cell"`
	Handles *struct {
		Always   bool `yaml:"always"`
		OnActive bool `yaml:"on-active"`
	} `yaml:"handles"`
	Deadzone float64 `yaml:"deadzone"`
	Palette  struct {
		Fuzzy    bool `yaml:"fuzzy"`
		MaxRows  int  `yaml:"max-rows"`
		MaxWidth int  `yaml:"max-width"`
	} `yaml:"palette"`
	// Blocks names a block definition file, relative to the config file.
	Blocks       string `yaml:"blocks"`
	HistoryLimit int    `yaml:"history-limit"`
	// Scroll is "wheel" or "cursor"; see ScrollPolicy.
	Scroll string `yaml:"scroll"`
}

// ParseConfig decodes YAML settings.
func ParseConfig(data []byte) (FileConfig, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return FileConfig{}, fmt.Errorf("parse editor config: %w", err)
	}
	if fc.Scroll != "" {
		if _, err := ParseScrollPolicy(fc.Scroll); err != nil {
			return FileConfig{}, fmt.Errorf("parse editor config: %w", err)
		}
	}
	return fc, nil
}

// Apply copies the settings present in fc onto cfg.
func (fc FileConfig) Apply(cfg Config) Config {
	if fc.Language != "" {
		cfg.Language = fc.Language
	}
	cfg.ReadOnly = cfg.ReadOnly || fc.ReadOnly
	if fc.Cell.Width > 0 {
		cfg.CellWidth = fc.Cell.Width
	}
	if fc.Cell.Height > 0 {
		cfg.CellHeight = fc.Cell.Height
	}
	if fc.Handles != nil {
		cfg.Handles.Always = fc.Handles.Always
		cfg.Handles.OnActive = fc.Handles.OnActive
	}
	if fc.Deadzone > 0 {
		cfg.Deadzone = fc.Deadzone
	}
	cfg.FuzzyPalette = cfg.FuzzyPalette || fc.Palette.Fuzzy
	if fc.Palette.MaxRows > 0 {
		cfg.PaletteMaxRows = fc.Palette.MaxRows
	}
	if fc.Palette.MaxWidth > 0 {
		cfg.PaletteMaxWidth = fc.Palette.MaxWidth
	}
	if fc.HistoryLimit > 0 {
		cfg.HistoryLimit = fc.HistoryLimit
	}
	if p, err := ParseScrollPolicy(fc.Scroll); err == nil {
		cfg.ScrollPolicy = p
	}
	return cfg
}

// LoadConfigFile reads the YAML settings at path onto cfg. A blocks file
// named by the settings is loaded into cfg.Blocks, which is created when
// nil.
func LoadConfigFile(path string, cfg Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read editor config: %w", err)
	}
	fc, err := ParseConfig(data)
	if err != nil {
		return cfg, err
	}
	cfg = fc.Apply(cfg)
	if fc.Blocks == "" {
		return cfg, nil
	}

	blocksPath := fc.Blocks
	if !filepath.IsAbs(blocksPath) {
		blocksPath = filepath.Join(filepath.Dir(path), blocksPath)
	}
	blocks, err := os.ReadFile(blocksPath)
	if err != nil {
		return cfg, fmt.Errorf("read block definitions: %w", err)
	}
	if cfg.Blocks == nil {
		cfg.Blocks = command.NewRegistry(cfg.Schema)
	}
	if err := cfg.Blocks.LoadYAML(blocks); err != nil {
		return cfg, err
	}
	slog.Debug("Loaded editor config", "path", path, "blocks", blocksPath)
	return cfg, nil
}
