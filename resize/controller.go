package resize

import (
	"log/slog"
	"math"
	"strconv"

	"github.com/seo-rii/tiptap/document"
)

// DefaultDeadzone is the pointer travel, in pixels, below which a press and
// release counts as a click.
const DefaultDeadzone = 4

// Size is the rendered geometry of a node.
type Size struct {
	Width, Height float64

	// NaturalWidth and NaturalHeight are the intrinsic size of image
	// content, zero when unknown.
	NaturalWidth, NaturalHeight float64
}

// Target measures rendered nodes. Measure returns false when the node at pos
// is not rendered.
type Target interface {
	Measure(pos int) (Size, bool)
}

// TargetFunc adapts a function to Target.
type TargetFunc func(pos int) (Size, bool)

func (f TargetFunc) Measure(pos int) (Size, bool) { return f(pos) }

// FrameScheduler runs callbacks before the next rendered frame. The returned
// function cancels a callback that has not run yet.
type FrameScheduler interface {
	RequestFrame(fn func()) (cancel func())
}

// Phase is the state of the drag state machine.
type Phase uint8

const (
	Idle Phase = iota
	PendingDrag
	Dragging
	Committing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case PendingDrag:
		return "pending"
	case Dragging:
		return "dragging"
	case Committing:
		return "committing"
	default:
		return "phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// Options configures a Controller.
type Options struct {
	// Deadzone defaults to DefaultDeadzone.
	Deadzone float64

	// Frames coalesces image commits. With nil Frames every pointer move
	// commits immediately.
	Frames FrameScheduler

	Logger *slog.Logger
}

func normalizeOptions(o Options) Options {
	if o.Deadzone <= 0 {
		o.Deadzone = DefaultDeadzone
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Session is the state of one drag gesture.
type Session struct {
	Kind     Kind
	TypeName string
	Pos      int

	StartX, StartY float64
	StartHeight    float64
	MinHeight      float64
	MaxHeight      float64

	// ImageRatio is width/height, fixed at drag start. Only images use it.
	ImageRatio float64

	// PendingHeight is the clamped height the gesture currently asks for.
	PendingHeight float64

	// Placeholder is set for kinds previewed through a placeholder box
	// instead of live document edits.
	Placeholder bool
}

// Controller runs resize gestures against a document state. A controller
// holds at most one session; starting a new one discards the previous one.
type Controller struct {
	st     *document.State
	target Target
	opt    Options

	phase       Phase
	sess        Session
	cancelFrame func()

	toolbarPos  int
	toolbarOpen bool
}

func NewController(st *document.State, target Target, opt Options) *Controller {
	return &Controller{st: st, target: target, opt: normalizeOptions(opt)}
}

func (c *Controller) Phase() Phase { return c.phase }

// Session returns the active session, if any.
func (c *Controller) Session() (Session, bool) {
	if c.phase == Idle {
		return Session{}, false
	}
	return c.sess, true
}

// Placeholder returns the preview box shown instead of a non-image node
// from pointer-down until release.
func (c *Controller) Placeholder() (pos int, height int, ok bool) {
	if (c.phase != PendingDrag && c.phase != Dragging) || !c.sess.Placeholder {
		return 0, 0, false
	}
	return c.sess.Pos, int(math.Round(c.sess.PendingHeight)), true
}

// PointerDown starts a gesture on the resize handle of the node at pos. It
// returns false, leaving the event to the host, when the node is not
// resizable or not rendered.
func (c *Controller) PointerDown(pos int, x, y float64) bool {
	c.release()

	node := c.st.Doc().NodeAt(pos)
	meta, ok := Resolve(node)
	if !ok {
		return false
	}
	size, ok := c.target.Measure(pos)
	if !ok {
		return false
	}
	start := startHeight(meta.Kind, node, size)
	ratio := 1.0
	if meta.Kind == KindImage {
		ratio = imageRatio(node, size)
	}
	c.sess = Session{
		Kind:          meta.Kind,
		TypeName:      meta.TypeName,
		Pos:           pos,
		StartX:        x,
		StartY:        y,
		StartHeight:   start,
		MinHeight:     meta.MinHeight,
		MaxHeight:     meta.MaxHeight,
		ImageRatio:    ratio,
		PendingHeight: start,
		Placeholder:   meta.Kind != KindImage,
	}
	c.phase = PendingDrag
	c.opt.Logger.Debug("resize started", "kind", meta.Kind, "pos", pos, "height", start)
	return true
}

// PointerMove updates the gesture. Images commit at most once per frame;
// other kinds only update the placeholder.
func (c *Controller) PointerMove(x, y float64) {
	switch c.phase {
	case PendingDrag:
		if !c.beyondDeadzone(x, y) {
			return
		}
		c.phase = Dragging
	case Dragging:
	default:
		return
	}
	h := c.track(y)
	if c.sess.Placeholder {
		return
	}
	c.scheduleCommit(h)
}

// PointerUp ends the gesture. A release inside the deadzone toggles the
// aspect-ratio toolbar of the node; a drag commits the final height.
func (c *Controller) PointerUp(x, y float64) {
	// terminals may report no motion between press and release
	if c.phase == PendingDrag && c.beyondDeadzone(x, y) {
		c.phase = Dragging
	}
	switch c.phase {
	case PendingDrag:
		if c.sess.Kind != KindImage {
			c.toggleToolbar(c.sess.Pos)
		}
		c.release()
	case Dragging:
		h := c.track(y)
		c.phase = Committing
		c.stopFrame()
		c.commit(h)
		c.release()
	}
}

// Destroy drops the active session and pending frame and closes the
// toolbar.
func (c *Controller) Destroy() {
	c.release()
	c.toolbarOpen = false
}

func (c *Controller) beyondDeadzone(x, y float64) bool {
	return math.Abs(x-c.sess.StartX) > c.opt.Deadzone || math.Abs(y-c.sess.StartY) > c.opt.Deadzone
}

func (c *Controller) track(y float64) float64 {
	h := math.Min(c.sess.MaxHeight, math.Max(c.sess.MinHeight, c.sess.StartHeight+y-c.sess.StartY))
	c.sess.PendingHeight = h
	return h
}

func (c *Controller) scheduleCommit(h float64) {
	c.stopFrame()
	if c.opt.Frames == nil {
		c.commit(h)
		return
	}
	c.cancelFrame = c.opt.Frames.RequestFrame(func() {
		c.cancelFrame = nil
		c.commit(h)
	})
}

func (c *Controller) stopFrame() {
	if c.cancelFrame != nil {
		c.cancelFrame()
		c.cancelFrame = nil
	}
}

func (c *Controller) release() {
	c.stopFrame()
	c.phase = Idle
	c.sess = Session{}
}

// commit writes height into the node under the session. The node is looked
// up again since the document may have changed during the drag. A drag
// always clears a stored aspect ratio.
func (c *Controller) commit(height float64) bool {
	pos := c.sess.Pos
	cur := c.st.Doc().NodeAt(pos)
	if cur == nil || cur.TypeName() != c.sess.TypeName {
		return false
	}
	meta, ok := Resolve(cur)
	if !ok {
		return false
	}
	next := BuildAttrs(meta.Kind, cur, height, c.sess.ImageRatio)
	if cur.Attr("aspectRatio") != nil {
		next["aspectRatio"] = nil
	}
	if sameSize(cur, next) {
		return false
	}
	ok = c.st.Dispatch(c.st.Tx().SetNodeMarkup(pos, cur.Type(), next))
	if ok {
		c.opt.Logger.Debug("resize committed", "pos", pos, "height", next["height"])
	}
	return ok
}

// Toolbar returns the node whose aspect-ratio toolbar is open.
func (c *Controller) Toolbar() (int, bool) { return c.toolbarPos, c.toolbarOpen }

func (c *Controller) CloseToolbar() { c.toolbarOpen = false }

func (c *Controller) toggleToolbar(pos int) {
	if c.toolbarOpen && c.toolbarPos == pos {
		c.toolbarOpen = false
		return
	}
	c.toolbarPos, c.toolbarOpen = pos, true
}

// SelectPreset applies an aspect-ratio preset to the node at pos. The height
// is derived from the rendered width and clamped; PresetAuto clears the
// ratio and keeps the height unless none is stored. Images have no presets.
func (c *Controller) SelectPreset(pos int, p Preset) bool {
	node := c.st.Doc().NodeAt(pos)
	meta, ok := Resolve(node)
	if !ok || meta.Kind == KindImage {
		return false
	}

	var next document.Attrs
	if p == PresetAuto {
		next = node.Attrs()
		next["aspectRatio"] = nil
		if _, ok := ParseSize(node.Attr("height")); !ok {
			h := DefaultHeight(meta.Kind)
			if size, ok := c.target.Measure(pos); ok && size.Height > 0 {
				h = size.Height
			}
			next["height"] = strconv.Itoa(int(math.Round(meta.Clamp(h))))
		}
	} else {
		r, ok := ParseAspectRatio(string(p))
		if !ok {
			return false
		}
		size, ok := c.target.Measure(pos)
		if !ok || size.Width <= 0 {
			return false
		}
		next = BuildAttrs(meta.Kind, node, meta.Clamp(size.Width*r.H/r.W), 1)
		next["aspectRatio"] = r.String()
	}
	c.toolbarOpen = false
	if sameSize(node, next) {
		return false
	}
	return c.st.Dispatch(c.st.Tx().SetNodeMarkup(pos, node.Type(), next))
}

func startHeight(kind Kind, node *document.Node, size Size) float64 {
	if size.Height > 0 {
		return size.Height
	}
	if h, ok := ParseSize(node.Attr("height")); ok {
		return h
	}
	return DefaultHeight(kind)
}

func imageRatio(node *document.Node, size Size) float64 {
	if size.NaturalWidth > 0 && size.NaturalHeight > 0 {
		return size.NaturalWidth / size.NaturalHeight
	}
	if size.Width > 0 && size.Height > 0 {
		return size.Width / size.Height
	}
	w, okW := ParseSize(node.Attr("width"))
	h, okH := ParseSize(node.Attr("height"))
	if okW && okH && w > 0 && h > 0 {
		return w / h
	}
	return 1
}
