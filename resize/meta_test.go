package resize

import (
	"testing"

	"github.com/seo-rii/tiptap/document"
	td "github.com/seo-rii/tiptap/internal/testdoc"
)

func TestResolve_Defaults(t *testing.T) {
	tests := []struct {
		node     *document.Node
		kind     Kind
		min, max float64
	}{
		{td.Image(nil), KindImage, 120, 1600},
		{td.Iframe(nil), KindIframe, 180, 1600},
		{td.Embed(nil), KindEmbed, 200, 1600},
		{td.Midibus(nil), KindMidibus, 220, 1600},
		{td.Widget(document.Attrs{"resizeHandler": true}), KindAttr, 160, 1600},
	}
	for _, tt := range tests {
		m, ok := Resolve(tt.node)
		if !ok {
			t.Fatalf("%s: not resizable", tt.node.TypeName())
		}
		if m.Kind != tt.kind || m.MinHeight != tt.min || m.MaxHeight != tt.max {
			t.Fatalf("%s: meta=%+v, want kind=%s min=%v max=%v", tt.node.TypeName(), m, tt.kind, tt.min, tt.max)
		}
	}
}

func TestResolve_AttrBounds(t *testing.T) {
	m, ok := Resolve(td.Widget(document.Attrs{"resizeHandler": "yes", "minHeight": "50px", "maxHeight": 10}))
	if !ok {
		t.Fatalf("widget should be resizable")
	}
	if m.MinHeight != 50 || m.MaxHeight != 50 {
		t.Fatalf("bounds=[%v,%v], want [50,50]", m.MinHeight, m.MaxHeight)
	}

	m, _ = Resolve(td.Widget(document.Attrs{"resizeHandler": true, "minHeight": "0"}))
	if m.MinHeight != 1 {
		t.Fatalf("min=%v, want 1", m.MinHeight)
	}

	for _, v := range []any{false, "off", "No", "0", nil} {
		if _, ok := Resolve(td.Widget(document.Attrs{"resizeHandler": v})); ok {
			t.Fatalf("resizeHandler=%v should disable resizing", v)
		}
	}
	if _, ok := Resolve(td.P("x")); ok {
		t.Fatalf("paragraph should not be resizable")
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{"640px", 640, true},
		{" 12.5 ", 12.5, true},
		{"300abc", 300, true},
		{360, 360, true},
		{"", 0, false},
		{"px", 0, false},
		{"auto", 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseSize(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("ParseSize(%#v)=(%v,%v), want (%v,%v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeAttrs(t *testing.T) {
	if got, ok := NormalizeWidthAttr("50%"); !ok || got != "50%" {
		t.Fatalf("width 50%%=(%q,%v)", got, ok)
	}
	if got, ok := NormalizeWidthAttr("640px"); !ok || got != "640" {
		t.Fatalf("width 640px=(%q,%v)", got, ok)
	}
	if got, ok := NormalizeWidthAttr(320.4); !ok || got != "320" {
		t.Fatalf("width 320.4=(%q,%v)", got, ok)
	}
	if _, ok := NormalizeWidthAttr("  "); ok {
		t.Fatalf("blank width should not normalize")
	}
	if got, ok := NormalizeNumericAttr("12.6px"); !ok || got != "13" {
		t.Fatalf("numeric 12.6px=(%q,%v)", got, ok)
	}
}

func TestBuildAttrs(t *testing.T) {
	img := BuildAttrs(KindImage, td.Image(document.Attrs{"src": "a.png"}), 200, 1.5)
	if img["width"] != "300" || img["height"] != "200" || img["src"] != "a.png" {
		t.Fatalf("image attrs=%v", img)
	}
	embed := BuildAttrs(KindEmbed, td.Embed(document.Attrs{"width": ""}), 321.6, 1)
	if embed["width"] != "100%" || embed["height"] != "322" {
		t.Fatalf("embed attrs=%v", embed)
	}
	iframe := BuildAttrs(KindIframe, td.Iframe(document.Attrs{"width": "640"}), 400, 1)
	if iframe["width"] != "640" {
		t.Fatalf("iframe width=%v, want 640", iframe["width"])
	}
	mid := BuildAttrs(KindMidibus, td.Midibus(nil), 250, 1)
	if _, ok := mid["width"]; ok {
		t.Fatalf("midibus attrs gained a width: %v", mid)
	}
}

func TestParseAspectRatio(t *testing.T) {
	tests := []struct {
		in   string
		want Ratio
		ok   bool
	}{
		{"16:9", Ratio{16, 9}, true},
		{" 4/3 ", Ratio{4, 3}, true},
		{"21 x 9", Ratio{21, 9}, true},
		{"1.5", Ratio{1.5, 1}, true},
		{"auto", Ratio{}, false},
		{"", Ratio{}, false},
		{"abc", Ratio{}, false},
		{"16:0", Ratio{}, false},
		{"-1:2", Ratio{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseAspectRatio(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("ParseAspectRatio(%q)=(%v,%v), want (%v,%v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if got, want := (Ratio{16, 9}).String(), "16:9"; got != want {
		t.Fatalf("string=%q, want %q", got, want)
	}
}
