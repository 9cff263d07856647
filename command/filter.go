package command

import (
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"

	"github.com/seo-rii/tiptap/i18n"
)

// MatchMode selects how items are matched against the query.
type MatchMode uint8

const (
	// MatchSubstring keeps items whose title, subtitle or a keyword contains
	// the query, in catalog order.
	MatchSubstring MatchMode = iota
	// MatchFuzzy keeps fuzzy matches ranked by score within each section.
	MatchFuzzy
)

// Group is a named section of the catalog before filtering.
type Group struct {
	Section string
	List    []Item
}

func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func searchValues(it Item) []string {
	out := make([]string, 0, len(it.Keywords)+2)
	out = append(out, it.Title, it.Subtitle)
	return append(out, it.Keywords...)
}

// MatchItem reports whether it matches query. The query matches a value when
// the folded query is a substring of the folded value, or when the query
// without whitespace is a substring of the value without whitespace. An
// empty query matches everything.
func MatchItem(it Item, query string) bool {
	q := i18n.Fold(query)
	if q == "" {
		return true
	}
	cq := compact(q)
	for _, v := range searchValues(it) {
		v = i18n.Fold(v)
		if strings.Contains(v, q) || strings.Contains(compact(v), cq) {
			return true
		}
	}
	return false
}

// Filter matches every group against query and drops the groups left
// empty. Group order is kept.
func Filter(groups []Group, query string, mode MatchMode) []Entry {
	out := make([]Entry, 0, len(groups))
	for _, g := range groups {
		var list []Item
		if mode == MatchFuzzy {
			list = fuzzyItems(g.List, query)
		} else {
			for _, it := range g.List {
				if MatchItem(it, query) {
					list = append(list, it)
				}
			}
		}
		if len(list) > 0 {
			out = append(out, GroupEntry(g.Section, list))
		}
	}
	return out
}

func fuzzyItems(items []Item, query string) []Item {
	q := compact(i18n.Fold(query))
	if q == "" {
		return append([]Item(nil), items...)
	}
	var values []string
	var owner []int
	for i, it := range items {
		for _, v := range searchValues(it) {
			if v = compact(i18n.Fold(v)); v != "" {
				values = append(values, v)
				owner = append(owner, i)
			}
		}
	}
	seen := make(map[int]bool)
	var out []Item
	for _, m := range fuzzy.Find(q, values) {
		i := owner[m.Index]
		if seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, items[i])
	}
	return out
}
