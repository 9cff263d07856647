package command

import (
	"fmt"
	"log/slog"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/seo-rii/tiptap/document"
	"github.com/seo-rii/tiptap/i18n"
)

// Registry holds host supplied block items shown at the top of the block
// section.
type Registry struct {
	schema *document.Schema
	items  []Item
	index  map[string]int
}

// NewRegistry returns an empty registry for schema, or the default schema
// when schema is nil.
func NewRegistry(schema *document.Schema) *Registry {
	if schema == nil {
		schema = document.DefaultSchema()
	}
	return &Registry{schema: schema, index: make(map[string]int)}
}

// Register adds items. An item whose ID is already registered replaces the
// earlier one in place.
func (r *Registry) Register(items ...Item) {
	for _, it := range items {
		if it.ID != "" {
			if i, ok := r.index[it.ID]; ok {
				r.items[i] = it
				continue
			}
			r.index[it.ID] = len(r.items)
		}
		r.items = append(r.items, it)
	}
}

// Items returns the registered items in registration order.
func (r *Registry) Items() []Item {
	if r == nil {
		return nil
	}
	return append([]Item(nil), r.items...)
}

// BlockDef describes a block item in YAML.
type BlockDef struct {
	ID       string         `yaml:"id"`
	Title    string         `yaml:"title"`
	Subtitle string         `yaml:"subtitle"`
	Icon     string         `yaml:"icon"`
	Keywords []string       `yaml:"keywords"`
	Node     string         `yaml:"node"`
	Attrs    map[string]any `yaml:"attrs"`
	// TrailingParagraph adds an empty paragraph after the node.
	TrailingParagraph bool `yaml:"trailing-paragraph"`
}

type blockFile struct {
	Blocks []BlockDef `yaml:"blocks"`
}

// LoadYAML registers the blocks of a YAML document:
//
//	blocks:
//	  - id: midibus
//	    title: Midibus
//	    node: tiptap-midibus
//	    attrs: {src: "", height: 420}
//	    trailing-paragraph: true
//
// Definitions naming an unknown node type or lacking a title are rejected
// and nothing is registered.
func (r *Registry) LoadYAML(data []byte) error {
	var f blockFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse block definitions: %w", err)
	}
	items := make([]Item, 0, len(f.Blocks))
	for i, def := range f.Blocks {
		it, err := r.blockItem(def)
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		items = append(items, it)
	}
	r.Register(items...)
	slog.Debug("Loaded block definitions", "count", len(items))
	return nil
}

func (r *Registry) blockItem(def BlockDef) (Item, error) {
	if strings.TrimSpace(def.Title) == "" {
		return Item{}, fmt.Errorf("missing title")
	}
	t := r.schema.Type(def.Node)
	if t == nil || !t.IsBlock() || t.Name == "doc" {
		return Item{}, fmt.Errorf("unknown block node %q", def.Node)
	}
	id := def.ID
	if id == "" {
		id = def.Node
	}
	attrs := document.Attrs(def.Attrs)
	trailing := def.TrailingParagraph
	return Item{
		ID:       id,
		Icon:     def.Icon,
		Title:    def.Title,
		Subtitle: def.Subtitle,
		Keywords: i18n.Keywords(nil, def.Keywords...),
		Command: func(ctx EditContext) {
			ctx.DeleteTrigger("/")
			nodes := []*document.Node{ctx.State.Schema().Node(t.Name, attrs.Clone())}
			bias := 1
			if trailing {
				nodes = append(nodes, ctx.State.Schema().Node("paragraph", nil))
				bias = -1
			}
			InsertBlocks(ctx.State, bias, nodes...)
		},
	}, nil
}
