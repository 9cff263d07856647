package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/seo-rii/tiptap"
	"github.com/seo-rii/tiptap/document"
	"github.com/seo-rii/tiptap/editor"
	"github.com/seo-rii/tiptap/table"
)

type model struct {
	editor editor.Model
}

func sampleDoc(s *document.Schema) *document.Node {
	p := func(text string) *document.Node {
		if text == "" {
			return s.Node("paragraph", nil)
		}
		return s.Node("paragraph", nil, s.Text(text))
	}
	item := func(text string) *document.Node { return s.Node("listItem", nil, p(text)) }
	return s.Node("doc", nil,
		s.Node("heading", document.Attrs{"level": 1}, s.Text("tiptap "+tiptap.Version())),
		p("Type / for blocks, : for emoji. Drop or paste an image path to upload it."),
		s.Node("orderedList", nil, item("Type \"1. \" to start a numbered list"), item("ctrl+o toggles it")),
		table.Build(s, 2, 3, true),
		s.Node("iframe", document.Attrs{"src": "https://example.com", "height": "200"}),
		p("Drag the ⇕ handle to resize; click it for aspect ratios. Ctrl+C quits."),
	)
}

func (m model) Init() tea.Cmd { return m.editor.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor = m.editor.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.editor.View() }

func main() {
	configPath := flag.String("config", "", "YAML editor config file")
	lang := flag.String("lang", "", "UI language, e.g. ko-KR")
	logPath := flag.String("log", "", "write debug logs to this file")
	version := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *version {
		fmt.Println(tiptap.VersionTag())
		return
	}

	cfg := editor.Config{Schema: document.DefaultSchema(), Language: *lang}
	if *logPath != "" {
		f, err := tea.LogToFile(*logPath, "tiptap")
		if err != nil {
			fail(err)
		}
		defer f.Close()
		cfg.Logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if *configPath != "" {
		var err error
		if cfg, err = editor.LoadConfigFile(*configPath, cfg); err != nil {
			fail(err)
		}
	}
	cfg.Doc = sampleDoc(cfg.Schema)

	p := tea.NewProgram(model{editor: editor.New(cfg)}, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	_, _ = os.Stderr.WriteString(err.Error() + "\n")
	os.Exit(1)
}
