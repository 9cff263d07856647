package editor

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "blocks.yaml"), midibusBlocks)
	writeFile(t, filepath.Join(dir, "config.yaml"), `
language: ko-KR
cell: {width: 10}
handles: {always: false, on-active: true}
palette: {fuzzy: true, max-rows: 5}
blocks: blocks.yaml
`)

	cfg, err := LoadConfigFile(filepath.Join(dir, "config.yaml"), Config{CellHeight: 18})
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Language != "ko-KR" {
		t.Fatalf("language: got %q, want %q", cfg.Language, "ko-KR")
	}
	if cfg.CellWidth != 10 || cfg.CellHeight != 18 {
		t.Fatalf("cell: got %dx%d, want 10x18", cfg.CellWidth, cfg.CellHeight)
	}
	if cfg.Handles.Always || !cfg.Handles.OnActive {
		t.Fatalf("handles: got %+v, want on-active only", cfg.Handles)
	}
	if !cfg.FuzzyPalette || cfg.PaletteMaxRows != 5 {
		t.Fatalf("palette: got fuzzy=%v rows=%d, want fuzzy=true rows=5", cfg.FuzzyPalette, cfg.PaletteMaxRows)
	}
	if cfg.Blocks == nil {
		t.Fatalf("blocks registry should be created")
	}
	if items := cfg.Blocks.Items(); len(items) != 1 || items[0].ID != "midibus" {
		t.Fatalf("blocks: got %+v, want one midibus item", items)
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfigFile(filepath.Join(dir, "missing.yaml"), Config{}); err == nil {
		t.Fatalf("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "language: [")
	if _, err := LoadConfigFile(bad, Config{}); err == nil {
		t.Fatalf("invalid yaml should fail")
	}

	noBlocks := filepath.Join(dir, "noblocks.yaml")
	writeFile(t, noBlocks, "blocks: nope.yaml\n")
	if _, err := LoadConfigFile(noBlocks, Config{}); err == nil {
		t.Fatalf("missing blocks file should fail")
	}
}

func TestFileConfig_ApplyKeepsUnsetFields(t *testing.T) {
	fc, err := ParseConfig([]byte("read-only: true\n"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	cfg := fc.Apply(Config{Language: "en-US", CellWidth: 7})
	if !cfg.ReadOnly || cfg.Language != "en-US" || cfg.CellWidth != 7 {
		t.Fatalf("apply: got %+v", cfg)
	}
}

func TestParseConfig_ScrollPolicy(t *testing.T) {
	fc, err := ParseConfig([]byte("scroll: cursor\n"))
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if got := fc.Apply(Config{}).ScrollPolicy; got != ScrollFollowCursor {
		t.Fatalf("scroll policy: got %v, want %v", got, ScrollFollowCursor)
	}
	if _, err := ParseConfig([]byte("scroll: sideways\n")); err == nil {
		t.Fatalf("unknown scroll policy should fail")
	}
}
