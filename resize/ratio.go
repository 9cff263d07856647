package resize

import (
	"math"
	"strconv"
	"strings"
)

// Ratio is a width:height aspect ratio.
type Ratio struct {
	W, H float64
}

// Value returns W/H.
func (r Ratio) Value() float64 { return r.W / r.H }

// String renders the ratio in its normalized "w:h" form.
func (r Ratio) String() string {
	return formatFloat(r.W) + ":" + formatFloat(r.H)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseAspectRatio parses "16:9", "16/9", "16 x 9" or a bare positive
// number such as "1.5". Empty, "auto" and malformed input yield false.
func ParseAspectRatio(s string) (Ratio, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return Ratio{}, false
	}
	if i := strings.IndexAny(s, ":/x"); i >= 0 {
		w, okW := parsePositive(s[:i])
		h, okH := parsePositive(s[i+1:])
		if !okW || !okH {
			return Ratio{}, false
		}
		return Ratio{W: w, H: h}, true
	}
	v, ok := parsePositive(s)
	if !ok {
		return Ratio{}, false
	}
	return Ratio{W: v, H: 1}, true
}

func parsePositive(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}

// Preset is an entry of the aspect-ratio toolbar.
type Preset string

// PresetAuto clears the stored aspect ratio.
const PresetAuto Preset = "auto"

// Presets lists the toolbar entries in display order.
var Presets = []Preset{PresetAuto, "16:9", "4:3", "1:1", "3:4", "9:16"}
