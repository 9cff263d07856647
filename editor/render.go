package editor

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/seo-rii/tiptap/document"
	graphemeutil "github.com/seo-rii/tiptap/internal/grapheme"
	"github.com/seo-rii/tiptap/orderedlist"
	"github.com/seo-rii/tiptap/resize"
	"github.com/seo-rii/tiptap/table"
)

type lineKind uint8

const (
	lineText lineKind = iota
	lineMedia
	lineHandle
	lineToolbar
	lineTable
)

// segment maps the screen columns of one visual line to document
// positions. cells[i] is the width of the cluster at pos+i.
type segment struct {
	col     int
	pos     int
	cells   []int
	ownsEnd bool
}

func (s segment) end() int { return s.pos + len(s.cells) }

func (s segment) width() int {
	w := 0
	for _, c := range s.cells {
		w += c
	}
	return w
}

func (s segment) contains(pos int) bool {
	return pos >= s.pos && (pos < s.end() || (pos == s.end() && s.ownsEnd))
}

func (s segment) colOf(pos int) int {
	c := s.col
	for i := 0; i < pos-s.pos && i < len(s.cells); i++ {
		c += s.cells[i]
	}
	return c
}

func (s segment) posAt(col int) int {
	c := s.col
	for i, w := range s.cells {
		if col < c+w {
			return s.pos + i
		}
		c += w
	}
	return s.end()
}

// hotspot is a clickable column range of a handle, toolbar or table line.
type hotspot struct {
	from, to int

	preset resize.Preset
	grip   table.Grip
	isGrip bool
}

type line struct {
	text string
	kind lineKind
	segs []segment
	// node is the media or table position the line belongs to.
	node int
	hot  []hotspot
}

func (ln line) hotspotAt(col int) (hotspot, bool) {
	for _, h := range ln.hot {
		if col >= h.from && col < h.to {
			return h, true
		}
	}
	return hotspot{}, false
}

type mediaBox struct {
	top  int
	rows int
	cols int
}

type layout struct {
	lines []line
	media map[int]mediaBox
}

func (l layout) content() string {
	out := make([]string, len(l.lines))
	for i, ln := range l.lines {
		out[i] = ln.text
	}
	return strings.Join(out, "\n")
}

// cursor returns the visual row and column of pos.
func (l layout) cursor(pos int) (row, col int, ok bool) {
	for i, ln := range l.lines {
		if ln.kind == lineMedia && ln.node == pos {
			return i, 0, true
		}
		for _, s := range ln.segs {
			if s.contains(pos) {
				return i, s.colOf(pos), true
			}
		}
	}
	return 0, 0, false
}

// posAt returns the text position at a visual row and column.
func (l layout) posAt(row, col int) (int, bool) {
	if row < 0 || row >= len(l.lines) {
		return 0, false
	}
	segs := l.lines[row].segs
	if len(segs) == 0 {
		return 0, false
	}
	for _, s := range segs {
		if col < s.col+s.width()+1 {
			if col < s.col {
				return s.pos, true
			}
			return s.posAt(col), true
		}
	}
	return segs[len(segs)-1].end(), true
}

func (l layout) measure(pos int, cellW, cellH int) (resize.Size, bool) {
	box, ok := l.media[pos]
	if !ok {
		return resize.Size{}, false
	}
	return resize.Size{
		Width:  float64(box.cols * cellW),
		Height: float64(box.rows * cellH),
	}, true
}

// indent is the prefix stack of nested blocks. The first line a block emits
// takes first; later lines take rest.
type indent struct {
	parent      *indent
	first, rest string
	used        bool
}

func (in *indent) next() string {
	if in == nil {
		return ""
	}
	p := in.parent.next()
	if in.used {
		return p + in.rest
	}
	in.used = true
	return p + in.first
}

func (in *indent) width() int {
	if in == nil {
		return 0
	}
	return in.parent.width() + graphemeutil.Width(in.rest)
}

type styleKind uint8

const (
	styleBase styleKind = iota
	styleSelected
	styleCursor
)

type renderer struct {
	doc     *document.Node
	sel     document.Selection
	style   Style
	width   int
	focused bool
	cellW   int
	cellH   int

	handles  map[int]bool
	toolbar  int
	hasBar   bool
	ghostPos int
	ghostH   int
	hasGhost bool
	selCells map[int]bool

	out layout
}

func (m *Model) render() layout {
	r := &renderer{
		doc:      m.st.Doc(),
		sel:      m.st.Selection(),
		style:    m.cfg.Style,
		width:    max(m.contentWidth(), 8),
		focused:  m.focused,
		cellW:    m.cfg.CellWidth,
		cellH:    m.cfg.CellHeight,
		handles:  make(map[int]bool),
		selCells: make(map[int]bool),
		out:      layout{media: make(map[int]mediaBox)},
	}
	if !m.cfg.ReadOnly {
		for _, h := range resize.Handles(r.doc, r.sel, m.cfg.Handles) {
			r.handles[h.Pos] = true
		}
		r.toolbar, r.hasBar = m.resizer.Toolbar()
		r.ghostPos, r.ghostH, r.hasGhost = m.resizer.Placeholder()
	}
	if r.sel.Kind == document.CellSelection {
		if rect, tm, found, ok := table.SelectedRect(r.doc, r.sel); ok {
			for _, off := range tm.CellsInRect(rect) {
				r.selCells[found.Start+off] = true
			}
		}
	}
	r.blocks(r.doc, 0, nil)
	return r.out
}

func (r *renderer) blocks(parent *document.Node, start int, in *indent) {
	pos := start
	for i := 0; i < parent.ChildCount(); i++ {
		child := parent.Child(i)
		r.block(child, pos, in)
		pos += child.NodeSize()
	}
}

func (r *renderer) block(n *document.Node, pos int, in *indent) {
	switch {
	case n.IsTextblock():
		r.textblock(n, pos, in)
	case n.Type().Spec.ListRole == document.ListRoleList:
		r.list(n, pos, in)
	case n.Type().Spec.TableRole == document.TableRoleTable:
		r.table(n, pos, in)
	case n.TypeName() == "blockquote":
		r.blocks(n, pos+1, &indent{parent: in, first: "│ ", rest: "│ "})
	case n.IsAtom():
		r.media(n, pos, in)
	default:
		r.blocks(n, pos+1, in)
	}
}

func (r *renderer) list(n *document.Node, pos int, in *indent) {
	start := 1
	if v, ok := n.Attrs().Int("start"); ok {
		start = v
	}
	style := ""
	if n.TypeName() == "orderedList" {
		style = n.Attrs().String("type")
		if style == "" {
			style = "1"
		}
	}
	p := pos + 1
	for i := 0; i < n.ChildCount(); i++ {
		item := n.Child(i)
		marker := orderedlist.Marker(style, start+i) + " "
		pad := strings.Repeat(" ", graphemeutil.Width(marker))
		r.blocks(item, p+1, &indent{parent: in, first: marker, rest: pad})
		p += item.NodeSize()
	}
}

func (r *renderer) baseStyle(n *document.Node) lipgloss.Style {
	switch {
	case n.TypeName() == "heading":
		return r.style.Heading
	case n.Type().Spec.Code:
		return r.style.Code
	}
	return r.style.Text
}

type textRun struct {
	from, to int
	hard     bool
}

func (r *renderer) textblock(n *document.Node, pos int, in *indent) {
	clusters := graphemeutil.Split(n.TextContent())
	code := n.Type().Spec.Code
	avail := max(r.width-in.width(), 1)

	var runs []textRun
	from, w := 0, 0
	for i, c := range clusters {
		if code && c == "\n" {
			runs = append(runs, textRun{from: from, to: i, hard: true})
			from, w = i+1, 0
			continue
		}
		cw := graphemeutil.ClusterWidth(c)
		if w+cw > avail && i > from {
			runs = append(runs, textRun{from: from, to: i})
			from, w = i, 0
		}
		w += cw
	}
	runs = append(runs, textRun{from: from, to: len(clusters), hard: true})

	base := r.baseStyle(n)
	for _, run := range runs {
		r.textLine(in.next(), clusters[run.from:run.to], pos+1+run.from, base, run.hard)
	}
}

func (r *renderer) prefix(p string) string {
	if p == "" {
		return ""
	}
	return r.style.Marker.Render(p)
}

func (r *renderer) cursorAt(pos int) bool {
	return r.focused && r.sel.Empty() && r.sel.Head == pos
}

func (r *renderer) kindAt(pos int) styleKind {
	switch {
	case r.cursorAt(pos):
		return styleCursor
	case r.sel.Kind == document.TextSelection && pos >= r.sel.From() && pos < r.sel.To():
		return styleSelected
	}
	return styleBase
}

func (r *renderer) styled(k styleKind, base lipgloss.Style, text string) string {
	switch k {
	case styleCursor:
		return r.style.Cursor.Inherit(base).Render(text)
	case styleSelected:
		return r.style.Selection.Inherit(base).Render(text)
	}
	return base.Render(text)
}

// writeClusters renders clusters starting at pos, grouping runs that share a
// style.
func (r *renderer) writeClusters(sb *strings.Builder, clusters []string, pos int, base lipgloss.Style) {
	var run strings.Builder
	cur := styleBase
	flush := func() {
		if run.Len() > 0 {
			sb.WriteString(r.styled(cur, base, run.String()))
			run.Reset()
		}
	}
	for i, c := range clusters {
		k := r.kindAt(pos + i)
		if k != cur {
			flush()
			cur = k
		}
		if c == "\t" {
			c = " "
		}
		run.WriteString(c)
	}
	flush()
}

func (r *renderer) textLine(prefix string, clusters []string, pos int, base lipgloss.Style, ownsEnd bool) {
	var sb strings.Builder
	sb.WriteString(r.prefix(prefix))
	seg := segment{col: graphemeutil.Width(prefix), pos: pos, ownsEnd: ownsEnd, cells: make([]int, len(clusters))}
	for i, c := range clusters {
		seg.cells[i] = graphemeutil.ClusterWidth(c)
	}
	r.writeClusters(&sb, clusters, pos, base)
	if ownsEnd && r.cursorAt(seg.end()) {
		sb.WriteString(r.style.Cursor.Render(" "))
	}
	r.out.lines = append(r.out.lines, line{text: sb.String(), kind: lineText, segs: []segment{seg}})
}

func (r *renderer) table(n *document.Node, pos int, in *indent) {
	tm := table.BuildMap(n)
	if tm.Width == 0 || tm.Height == 0 {
		return
	}
	pw := in.width()
	colW := max((r.width-pw-(tm.Width+1))/tm.Width, 3)
	start := pos + 1

	selected := make(map[table.GripKind]map[int]bool)
	if found, ok := table.FindTable(r.doc, r.sel); ok && found.Pos == pos {
		for _, g := range table.Grips(r.doc, r.sel) {
			if !g.Selected {
				continue
			}
			if selected[g.Kind] == nil {
				selected[g.Kind] = make(map[int]bool)
			}
			selected[g.Kind][g.Index] = true
		}
	}
	border := func(sel bool) lipgloss.Style {
		if sel {
			return r.style.GripSelected
		}
		return r.style.TableBorder
	}

	// top border carries the table and column grips
	{
		prefix := in.next()
		var sb strings.Builder
		sb.WriteString(r.prefix(prefix))
		top := line{kind: lineTable, node: pos}
		sb.WriteString(border(selected[table.GripTable][0]).Render("┌"))
		top.hot = append(top.hot, hotspot{from: pw, to: pw + 1, isGrip: true, grip: table.Grip{Kind: table.GripTable}})
		col := pw + 1
		for c := 0; c < tm.Width; c++ {
			sb.WriteString(border(selected[table.GripColumn][c]).Render(strings.Repeat("─", colW)))
			top.hot = append(top.hot, hotspot{from: col, to: col + colW, isGrip: true, grip: table.Grip{Kind: table.GripColumn, Index: c}})
			joint := "┬"
			if c == tm.Width-1 {
				joint = "┐"
			}
			sb.WriteString(r.style.TableBorder.Render(joint))
			col += colW + 1
		}
		top.text = sb.String()
		r.out.lines = append(r.out.lines, top)
	}

	for row := 0; row < tm.Height; row++ {
		prefix := in.next()
		var sb strings.Builder
		sb.WriteString(r.prefix(prefix))
		ln := line{kind: lineTable, node: pos}
		sb.WriteString(border(selected[table.GripRow][row]).Render("│"))
		ln.hot = append(ln.hot, hotspot{from: pw, to: pw + 1, isGrip: true, grip: table.Grip{Kind: table.GripRow, Index: row}})
		col := pw + 1
		for c := 0; c < tm.Width; {
			off := tm.At(row, c)
			span := 1
			var cell *document.Node
			cellPos := -1
			if off >= 0 {
				rect, _ := tm.FindCell(off)
				span = max(rect.Right-c, 1)
				if rect.Top == row {
					cellPos = start + off
					cell = r.doc.NodeAt(cellPos)
				}
			}
			w := colW*span + span - 1
			r.cell(&sb, &ln, cell, cellPos, col, w)
			sb.WriteString(r.style.TableBorder.Render("│"))
			col += w + 1
			c += span
		}
		ln.text = sb.String()
		r.out.lines = append(r.out.lines, ln)
	}

	prefix := in.next()
	var sb strings.Builder
	sb.WriteString(r.prefix(prefix))
	sb.WriteString(r.style.TableBorder.Render("└"))
	for c := 0; c < tm.Width; c++ {
		joint := "┴"
		if c == tm.Width-1 {
			joint = "┘"
		}
		sb.WriteString(r.style.TableBorder.Render(strings.Repeat("─", colW) + joint))
	}
	r.out.lines = append(r.out.lines, line{text: sb.String(), kind: lineTable, node: pos})
}

// cell draws the first textblock of cell into a slot of width w. Text that
// does not fit is cut.
func (r *renderer) cell(sb *strings.Builder, ln *line, cell *document.Node, cellPos, col, w int) {
	base := r.style.Text
	if cell != nil && cell.Type().Spec.TableRole == document.TableRoleHeaderCell {
		base = r.style.Heading
	}
	if r.selCells[cellPos] {
		base = r.style.CellSelected.Inherit(base)
	}
	if cell == nil || cell.ChildCount() == 0 || !cell.Child(0).IsTextblock() {
		sb.WriteString(base.Render(strings.Repeat(" ", w)))
		return
	}

	clusters := graphemeutil.Split(cell.Child(0).TextContent())
	textPos := cellPos + 2
	avail := w - 1
	used, n := 0, 0
	for _, c := range clusters {
		cw := graphemeutil.ClusterWidth(c)
		if used+cw > avail {
			break
		}
		used += cw
		n++
	}
	seg := segment{col: col + 1, pos: textPos, ownsEnd: n == len(clusters), cells: make([]int, n)}
	for i := 0; i < n; i++ {
		seg.cells[i] = graphemeutil.ClusterWidth(clusters[i])
	}
	ln.segs = append(ln.segs, seg)

	sb.WriteString(base.Render(" "))
	r.writeClusters(sb, clusters[:n], textPos, base)
	pad := avail - used
	if seg.ownsEnd && r.cursorAt(seg.end()) && pad > 0 {
		sb.WriteString(r.style.Cursor.Render(" "))
		pad--
	}
	if pad > 0 {
		sb.WriteString(base.Render(strings.Repeat(" ", pad)))
	}
}

func mediaLabel(n *document.Node) string {
	a := n.Attrs()
	switch n.TypeName() {
	case "lite-youtube":
		return "youtube " + a.String("videoid")
	case "tiptap-midibus":
		return "midibus " + a.String("src")
	case "widget":
		return "widget " + a.String("name")
	case "tiptap-upload-skeleton":
		return "uploading " + a.String("kind")
	}
	if src := a.String("src"); src != "" {
		return n.TypeName() + " " + src
	}
	return n.TypeName()
}

func (r *renderer) mediaHeight(n *document.Node, cols int) float64 {
	if h, ok := resize.ParseSize(n.Attr("height")); ok && h > 0 {
		return h
	}
	if n.TypeName() == "lite-youtube" {
		return float64(cols*r.cellW) * 9 / 16
	}
	if meta, ok := resize.Resolve(n); ok {
		return resize.DefaultHeight(meta.Kind)
	}
	return float64(3 * r.cellH)
}

func (r *renderer) media(n *document.Node, pos int, in *indent) {
	avail := max(r.width-in.width(), 4)
	cols := avail
	if wv := n.Attrs().String("width"); wv != "" && !strings.HasSuffix(wv, "%") {
		if w, ok := resize.ParseSize(wv); ok {
			cols = min(max(int(math.Round(w/float64(r.cellW))), 8), avail)
		}
	}
	height := r.mediaHeight(n, cols)
	ghost := r.hasGhost && r.ghostPos == pos
	if ghost {
		height = float64(r.ghostH)
	}
	rows := max(int(math.Round(height/float64(r.cellH))), 3)

	st := r.style.Media
	switch {
	case ghost:
		st = r.style.Placeholder
	case r.sel.Kind == document.NodeSelection && r.sel.Anchor == pos:
		st = r.style.MediaSelected
	}
	hz, vt := "─", "│"
	if ghost {
		hz, vt = "┄", "┆"
	}

	inner := cols - 2
	label := graphemeutil.Truncate(" "+mediaLabel(n)+" ", max(inner-1, 0))
	top := "┌" + hz + label + strings.Repeat(hz, max(inner-1-graphemeutil.Width(label), 0)) + "┐"
	footer := n.Attrs().String("aspectRatio")
	if footer != "" {
		footer = graphemeutil.Truncate(" "+footer+" ", max(inner-1, 0))
	}
	bottom := "└" + strings.Repeat(hz, max(inner-1-graphemeutil.Width(footer), 0)) + footer + hz + "┘"
	middle := vt + strings.Repeat(" ", max(inner, 0)) + vt

	r.out.media[pos] = mediaBox{top: len(r.out.lines), rows: rows, cols: cols}
	for i := 0; i < rows; i++ {
		body := middle
		switch i {
		case 0:
			body = top
		case rows - 1:
			body = bottom
		}
		r.out.lines = append(r.out.lines, line{
			text: r.prefix(in.next()) + st.Render(body),
			kind: lineMedia,
			node: pos,
		})
	}

	if r.handles[pos] {
		pw := in.width()
		grip := " ⇕ "
		side := max((cols-graphemeutil.Width(grip))/2, 0)
		bar := strings.Repeat("╌", side) + grip + strings.Repeat("╌", max(cols-side-graphemeutil.Width(grip), 0))
		r.out.lines = append(r.out.lines, line{
			text: r.prefix(in.next()) + r.style.Handle.Render(bar),
			kind: lineHandle,
			node: pos,
			hot:  []hotspot{{from: pw, to: pw + cols}},
		})
	}
	if r.hasBar && r.toolbar == pos {
		r.presetBar(n, pos, in)
	}
}

func (r *renderer) presetBar(n *document.Node, pos int, in *indent) {
	current := resize.Preset(n.Attrs().String("aspectRatio"))
	if current == "" {
		current = resize.PresetAuto
	}
	var sb strings.Builder
	sb.WriteString(r.prefix(in.next()))
	ln := line{kind: lineToolbar, node: pos}
	col := in.width()
	for i, p := range resize.Presets {
		if i > 0 {
			sb.WriteString(r.style.Toolbar.Render(" "))
			col++
		}
		label := "[" + string(p) + "]"
		st := r.style.Toolbar
		if p == current {
			st = r.style.ToolbarActive
		}
		sb.WriteString(st.Render(label))
		w := graphemeutil.Width(label)
		ln.hot = append(ln.hot, hotspot{from: col, to: col + w, preset: p})
		col += w
	}
	ln.text = sb.String()
	r.out.lines = append(r.out.lines, ln)
}
