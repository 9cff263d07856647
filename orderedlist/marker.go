package orderedlist

import (
	"strconv"
	"strings"
)

// Bullet is the marker of bullet list items.
const Bullet = "•"

// Marker renders the marker of the n-th item (1-based, counting from the
// list start) for a marker style: "1", "a", "A", "i", "I", "kors" or
// "korc". An empty style renders a bullet. Numbers a style cannot express
// fall back to decimal.
func Marker(style string, n int) string {
	var s string
	switch style {
	case "":
		return Bullet
	case "a":
		s = alphabetic(n, lowerLatin)
	case "A":
		s = alphabetic(n, upperLatin)
	case "i":
		s = strings.ToLower(roman(n))
	case "I":
		s = roman(n)
	case "kors":
		s = alphabetic(n, consonants)
	case "korc":
		s = alphabetic(n, syllables)
	}
	if s == "" {
		s = strconv.Itoa(n)
	}
	return s + "."
}

var (
	lowerLatin = letters('a')
	upperLatin = letters('A')
)

func letters(first byte) []string {
	out := make([]string, 26)
	for i := range out {
		out[i] = string(rune(first) + rune(i))
	}
	return out
}

// alphabetic counts in bijective base len(symbols): a, b, ..., z, aa, ab.
func alphabetic(n int, symbols []string) string {
	if n <= 0 {
		return ""
	}
	var parts []string
	for n > 0 {
		n--
		parts = append(parts, symbols[n%len(symbols)])
		n /= len(symbols)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "")
}

var romanDigits = []struct {
	value int
	sym   string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	if n <= 0 || n >= 4000 {
		return ""
	}
	var sb strings.Builder
	for _, d := range romanDigits {
		for n >= d.value {
			sb.WriteString(d.sym)
			n -= d.value
		}
	}
	return sb.String()
}
