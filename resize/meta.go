// Package resize implements height resizing of embedded media blocks:
// resize bounds per node kind, attribute building, aspect-ratio presets, the
// pointer-drag state machine and resize handle placement.
package resize

import (
	"math"
	"strconv"
	"strings"

	"github.com/seo-rii/tiptap/document"
)

// Kind classifies a resizable node.
type Kind string

const (
	KindImage   Kind = "image"
	KindIframe  Kind = "iframe"
	KindEmbed   Kind = "embed"
	KindMidibus Kind = "tiptap-midibus"
	// KindAttr is any node whose resizeHandler attribute is truthy.
	KindAttr Kind = "attr"
)

// MaxHeight is the default upper bound for every kind.
const MaxHeight = 1600

var defaultHeight = map[Kind]float64{
	KindImage:   360,
	KindIframe:  600,
	KindEmbed:   500,
	KindMidibus: 600,
	KindAttr:    420,
}

var minHeight = map[Kind]float64{
	KindImage:   120,
	KindIframe:  180,
	KindEmbed:   200,
	KindMidibus: 220,
	KindAttr:    160,
}

// DefaultHeight returns the fallback height of kind.
func DefaultHeight(k Kind) float64 { return defaultHeight[k] }

// Meta is the resize description of one node.
type Meta struct {
	Kind      Kind
	TypeName  string
	MinHeight float64
	MaxHeight float64
}

// Resolve returns the resize metadata of n. Bounds stored on the node
// override the kind defaults; the minimum is at least 1 and the maximum is
// never below the minimum.
func Resolve(n *document.Node) (Meta, bool) {
	if n == nil || n.IsText() {
		return Meta{}, false
	}
	kind := Kind(n.TypeName())
	switch kind {
	case KindImage, KindIframe, KindEmbed, KindMidibus:
	default:
		if !HasResizeHandler(n.Attr("resizeHandler")) {
			return Meta{}, false
		}
		kind = KindAttr
	}

	lo := minHeight[kind]
	if v, ok := ParseSize(n.Attr("minHeight")); ok {
		lo = math.Max(1, v)
	}
	hi := float64(MaxHeight)
	if v, ok := ParseSize(n.Attr("maxHeight")); ok {
		hi = math.Max(lo, v)
	}
	return Meta{Kind: kind, TypeName: n.TypeName(), MinHeight: lo, MaxHeight: hi}, true
}

// Clamp limits h to the bounds of m.
func (m Meta) Clamp(h float64) float64 {
	return math.Min(m.MaxHeight, math.Max(m.MinHeight, h))
}

// ParseSize reads a numeric size from an attribute value. Strings may carry
// a "px" suffix.
func ParseSize(v any) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		if strings.HasSuffix(strings.ToLower(s), "px") {
			s = strings.TrimSpace(s[:len(s)-2])
		}
		f, err := strconv.ParseFloat(leadingNumber(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// leadingNumber returns the longest prefix of s that looks like a decimal
// number, so "640abc" reads as 640.
func leadingNumber(s string) string {
	end := 0
	dot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case (r == '-' || r == '+') && i == 0:
		case r == '.' && !dot:
			dot = true
		default:
			return s[:end]
		}
		end = i + 1
	}
	return s[:end]
}

// HasResizeHandler reports whether a resizeHandler attribute enables
// resizing. Empty strings count as enabled; "false", "0", "off" and "no"
// disable it.
func HasResizeHandler(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "false", "0", "off", "no":
			return false
		}
		return true
	case int:
		return v != 0
	case float64:
		return v != 0 && !math.IsNaN(v)
	default:
		return true
	}
}

// NormalizeNumericAttr formats a size attribute as a rounded integer string.
func NormalizeNumericAttr(v any) (string, bool) {
	f, ok := ParseSize(v)
	if !ok {
		return "", false
	}
	return strconv.Itoa(int(math.Round(f))), true
}

// NormalizeWidthAttr is NormalizeNumericAttr that keeps percentages as is.
func NormalizeWidthAttr(v any) (string, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return "", false
		}
		if strings.HasSuffix(s, "%") {
			return s, true
		}
		return NormalizeNumericAttr(s)
	}
	return NormalizeNumericAttr(v)
}

// BuildAttrs returns the attributes of node resized to height. Images also
// get a width derived from ratio; iframes and embeds keep their width,
// defaulting to "100%".
func BuildAttrs(kind Kind, node *document.Node, height, ratio float64) document.Attrs {
	attrs := node.Attrs()
	if attrs == nil {
		attrs = document.Attrs{}
	}
	attrs["height"] = strconv.Itoa(int(math.Round(height)))
	switch kind {
	case KindImage:
		attrs["width"] = strconv.Itoa(max(1, int(math.Round(height*ratio))))
	case KindIframe, KindEmbed:
		if attrs.String("width") == "" {
			attrs["width"] = "100%"
		}
	}
	return attrs
}

// sameSize reports whether next would leave the stored size of node
// unchanged.
func sameSize(node *document.Node, next document.Attrs) bool {
	cur := node.Attrs()
	return cur.String("height") == next.String("height") &&
		cur.String("width") == next.String("width") &&
		cur.String("aspectRatio") == next.String("aspectRatio")
}
