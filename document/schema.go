package document

import (
	"fmt"
	"sort"
	"sync"
)

// Table roles used by NodeSpec.TableRole.
const (
	TableRoleTable      = "table"
	TableRoleRow        = "row"
	TableRoleCell       = "cell"
	TableRoleHeaderCell = "header_cell"
)

// List roles used by NodeSpec.ListRole.
const (
	ListRoleList = "list"
	ListRoleItem = "item"
)

// NodeSpec describes a node type.
//
// Content lists the child type names or group names a node accepts. A node
// with empty Content is a leaf.
type NodeSpec struct {
	Content []string
	Min     int

	Group  string
	Inline bool
	Atom   bool
	Code   bool

	TableRole string
	ListRole  string

	NotSelectable bool

	Attrs Attrs
}

// NodeType is a named NodeSpec bound to a Schema.
type NodeType struct {
	Name string
	Spec NodeSpec

	schema *Schema
}

func (t *NodeType) Schema() *Schema { return t.schema }

func (t *NodeType) IsText() bool { return t.Name == "text" }

func (t *NodeType) IsInline() bool { return t.Spec.Inline || t.IsText() }

func (t *NodeType) IsBlock() bool { return !t.IsInline() }

// IsLeaf reports whether the type has no content (atoms and text).
func (t *NodeType) IsLeaf() bool { return len(t.Spec.Content) == 0 }

// IsTextblock reports whether the type is a block holding inline content.
func (t *NodeType) IsTextblock() bool {
	if t.IsInline() {
		return false
	}
	return t.allows("text") || t.allows("inline")
}

func (t *NodeType) allows(name string) bool {
	for _, c := range t.Spec.Content {
		if c == name {
			return true
		}
	}
	return false
}

// AllowsChild reports whether child may appear in t's content.
func (t *NodeType) AllowsChild(child *NodeType) bool {
	if child == nil {
		return false
	}
	for _, c := range t.Spec.Content {
		if c == child.Name || (child.Spec.Group != "" && c == child.Spec.Group) {
			return true
		}
	}
	return false
}

// ValidContent reports whether children form valid content for t.
func (t *NodeType) ValidContent(children []*Node) bool {
	if len(children) < t.Spec.Min {
		return false
	}
	for _, c := range children {
		if !t.AllowsChild(c.typ) {
			return false
		}
	}
	return true
}

func (t *NodeType) defaultAttrs(attrs Attrs) Attrs {
	if len(t.Spec.Attrs) == 0 && len(attrs) == 0 {
		return nil
	}
	out := make(Attrs, len(t.Spec.Attrs)+len(attrs))
	for k, v := range t.Spec.Attrs {
		out[k] = v
	}
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

// Schema is a set of node types.
type Schema struct {
	types map[string]*NodeType
	text  *NodeType
}

// NewSchema builds a schema. It requires "doc" and "text" types and rejects
// content expressions naming unknown types or groups.
func NewSchema(specs map[string]NodeSpec) (*Schema, error) {
	s := &Schema{types: make(map[string]*NodeType, len(specs))}
	groups := map[string]bool{"inline": true}
	for name, spec := range specs {
		s.types[name] = &NodeType{Name: name, Spec: spec, schema: s}
		if spec.Group != "" {
			groups[spec.Group] = true
		}
	}
	if _, ok := s.types["doc"]; !ok {
		return nil, fmt.Errorf("%w: schema has no doc type", ErrInvalidContent)
	}
	text, ok := s.types["text"]
	if !ok {
		return nil, fmt.Errorf("%w: schema has no text type", ErrInvalidContent)
	}
	text.Spec.Inline = true
	if text.Spec.Group == "" {
		text.Spec.Group = "inline"
	}
	s.text = text

	for _, name := range s.TypeNames() {
		for _, c := range s.types[name].Spec.Content {
			if _, ok := s.types[c]; ok || groups[c] {
				continue
			}
			return nil, fmt.Errorf("%w: type %q references unknown content %q", ErrInvalidContent, name, c)
		}
	}
	return s, nil
}

// Type returns the named node type, or nil.
func (s *Schema) Type(name string) *NodeType { return s.types[name] }

// TypeNames returns all type names in sorted order.
func (s *Schema) TypeNames() []string {
	out := make([]string, 0, len(s.types))
	for name := range s.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Node creates a node of the named type. It panics on an unknown type name,
// which is a programming error.
func (s *Schema) Node(name string, attrs Attrs, content ...*Node) *Node {
	t := s.types[name]
	if t == nil {
		panic(fmt.Sprintf("document: unknown node type %q", name))
	}
	return newNode(t, t.defaultAttrs(attrs), content, "")
}

// Text creates a text node. It returns nil for empty text; node constructors
// drop nil children.
func (s *Schema) Text(text string) *Node {
	if text == "" {
		return nil
	}
	return newNode(s.text, nil, nil, text)
}

// DefaultSchema returns the node set used by the editor extensions. The
// schema is built once and shared.
func DefaultSchema() *Schema { return defaultSchema() }

var defaultSchema = sync.OnceValue(func() *Schema {
	s, err := NewSchema(map[string]NodeSpec{
		"doc":          {Content: []string{"block"}, Min: 1},
		"text":         {Group: "inline"},
		"paragraph":    {Content: []string{"inline"}, Group: "block"},
		"heading":      {Content: []string{"inline"}, Group: "block", Attrs: Attrs{"level": 1}},
		"blockquote":   {Content: []string{"block"}, Min: 1, Group: "block"},
		"codeBlock":    {Content: []string{"text"}, Group: "block", Code: true, Attrs: Attrs{"language": nil}},
		"math_display": {Content: []string{"text"}, Group: "block", Code: true},

		"bulletList":  {Content: []string{"listItem"}, Min: 1, Group: "block", ListRole: ListRoleList},
		"orderedList": {Content: []string{"listItem"}, Min: 1, Group: "block", ListRole: ListRoleList, Attrs: Attrs{"start": 1, "type": "1"}},
		"listItem":    {Content: []string{"block"}, Min: 1, ListRole: ListRoleItem},

		"table":       {Content: []string{"tableRow"}, Min: 1, Group: "block", TableRole: TableRoleTable},
		"tableRow":    {Content: []string{"tableCell", "tableHeader"}, Min: 1, TableRole: TableRoleRow},
		"tableCell":   {Content: []string{"block"}, Min: 1, TableRole: TableRoleCell, Attrs: Attrs{"colspan": 1, "rowspan": 1}},
		"tableHeader": {Content: []string{"block"}, Min: 1, TableRole: TableRoleHeaderCell, Attrs: Attrs{"colspan": 1, "rowspan": 1}},

		"image":          {Group: "block", Atom: true, Attrs: Attrs{"src": nil, "alt": nil, "title": nil, "width": nil, "height": nil}},
		"iframe":         {Group: "block", Atom: true, Attrs: Attrs{"src": nil, "width": "100%", "height": "600", "aspectRatio": nil}},
		"embed":          {Group: "block", Atom: true, Attrs: Attrs{"src": nil, "type": "", "width": "100%", "height": "800px", "aspectRatio": nil}},
		"lite-youtube":   {Group: "block", Atom: true, Attrs: Attrs{"videoid": nil, "provider": "youtube"}},
		"tiptap-midibus": {Group: "block", Atom: true, Attrs: Attrs{"src": nil, "height": nil, "aspectRatio": nil}},

		// widget hosts externally registered blocks.
		"widget": {Group: "block", Atom: true, Attrs: Attrs{
			"name": nil, "src": nil, "height": nil, "aspectRatio": nil,
			"resizeHandler": false, "resizeTarget": nil, "minHeight": nil, "maxHeight": nil,
		}},

		"tiptap-upload-skeleton": {Group: "block", Atom: true, Attrs: Attrs{"uploadId": nil, "kind": "block", "height": 180}},
	})
	if err != nil {
		panic(err)
	}
	return s
})
