package orderedlist

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/seo-rii/tiptap/document"
)

// Korean ordinal alphabets for the "kors" and "korc" marker styles.
var (
	consonants = []string{"ㄱ", "ㄴ", "ㄷ", "ㄹ", "ㅁ", "ㅂ", "ㅅ", "ㅇ", "ㅈ", "ㅊ", "ㅋ", "ㅌ", "ㅍ", "ㅎ"}
	syllables  = []string{"가", "나", "다", "라", "마", "바", "사", "아", "자", "차", "카", "타", "파", "하"}
)

// Match is a list marker recognized at the start of a textblock.
type Match struct {
	List  string // list node type
	Type  string // marker style, empty for bullet lists
	Start int
}

// Attrs returns the list attributes for m.
func (m Match) Attrs() document.Attrs {
	if m.Type == "" {
		return nil
	}
	return document.Attrs{"type": m.Type, "start": m.Start}
}

type inputRule struct {
	find  *regexp.Regexp
	list  string
	style string
	start func(marker string) int
}

func indexOf(alphabet []string) func(string) int {
	return func(s string) int {
		for i, a := range alphabet {
			if a == s {
				return i + 1
			}
		}
		return 0
	}
}

var inputRules = []inputRule{
	{
		find: regexp.MustCompile(`^(\d+)\.\s$`), list: "orderedList", style: "1",
		start: func(s string) int { n, _ := strconv.Atoi(s); return n },
	},
	{find: regexp.MustCompile(`^(i)\.\s$`), list: "orderedList", style: "i", start: func(string) int { return 1 }},
	{find: regexp.MustCompile(`^(I)\.\s$`), list: "orderedList", style: "I", start: func(string) int { return 1 }},
	{
		find: regexp.MustCompile(`^([A-Z])\.\s$`), list: "orderedList", style: "A",
		start: func(s string) int { return int(s[0]-'A') + 1 },
	},
	{
		find: regexp.MustCompile(`^([a-z])\.\s$`), list: "orderedList", style: "a",
		start: func(s string) int { return int(s[0]-'a') + 1 },
	},
	{
		find: regexp.MustCompile(`^(` + strings.Join(consonants, "|") + `)\.\s$`), list: "orderedList", style: "kors",
		start: indexOf(consonants),
	},
	{
		find: regexp.MustCompile(`^(` + strings.Join(syllables, "|") + `)\.\s$`), list: "orderedList", style: "korc",
		start: indexOf(syllables),
	},
	{find: regexp.MustCompile(`^\s*([-+*])\s$`), list: "bulletList"},
}

// MatchInput matches the text typed at the start of a textblock against the
// list marker rules, e.g. "1. ", "C. " or "가. ".
func MatchInput(text string) (Match, bool) {
	for _, r := range inputRules {
		m := r.find.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		out := Match{List: r.list, Type: r.style}
		if r.start != nil {
			out.Start = r.start(m[1])
		}
		return out, true
	}
	return Match{}, false
}

// ApplyInputRule turns the textblock holding the cursor into a list when the
// text before the cursor is a list marker. The marker text is removed. A new
// ordered list joins a preceding one when its numbering continues it.
func ApplyInputRule(st *document.State) bool {
	sel := st.Selection()
	if !sel.Empty() {
		return false
	}
	doc := st.Doc()
	rp, err := doc.Resolve(sel.Head)
	if err != nil {
		return false
	}
	block := rp.Parent()
	if !block.IsTextblock() || block.Type().Spec.Code {
		return false
	}
	m, ok := MatchInput(block.TextBetween(0, rp.ParentOffset, ""))
	if !ok {
		return false
	}
	lt, it := st.Schema().Type(m.List), st.Schema().Type("listItem")
	if lt == nil || it == nil {
		return false
	}

	tr := st.Tx()
	start := rp.Start(rp.Depth)
	tr.DeleteRange(start, sel.Head)
	in, err := tr.Doc().Resolve(start)
	if err != nil {
		return false
	}
	r, ok := in.BlockRange(nil, nil)
	if !ok || !canWrap(r, lt, it) {
		return false
	}
	listPos := r.Start()
	tr.WrapEach(r, document.Wrapper{Type: lt, Attrs: m.Attrs()}, document.Wrapper{Type: it})

	if at, err := tr.Doc().Resolve(listPos); err == nil {
		before := at.NodeBefore()
		if before != nil && before.Type() == lt && continues(before, m) && document.CanJoin(tr.Doc(), listPos) {
			tr.Join(listPos)
		}
	}
	return st.Dispatch(tr)
}

// continues reports whether a new list matching m continues the numbering
// of list.
func continues(list *document.Node, m Match) bool {
	if m.Type == "" {
		return true
	}
	start, ok := list.Attrs().Int("start")
	if !ok {
		start = 1
	}
	return list.Attrs().String("type") == m.Type && list.ChildCount()+start == m.Start
}
