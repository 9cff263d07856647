package resize

import (
	"testing"

	"github.com/seo-rii/tiptap/document"
	td "github.com/seo-rii/tiptap/internal/testdoc"
)

type fakeFrame struct {
	fn       func()
	canceled bool
}

type fakeFrames struct {
	pending []*fakeFrame
}

func (f *fakeFrames) RequestFrame(fn func()) func() {
	fr := &fakeFrame{fn: fn}
	f.pending = append(f.pending, fr)
	return func() { fr.canceled = true }
}

// flush runs the frames still scheduled and reports how many ran.
func (f *fakeFrames) flush() int {
	pending := f.pending
	f.pending = nil
	n := 0
	for _, fr := range pending {
		if !fr.canceled {
			fr.fn()
			n++
		}
	}
	return n
}

func fixedSize(s Size) Target {
	return TargetFunc(func(int) (Size, bool) { return s, true })
}

// mediaState returns a state over doc(paragraph("a"), media); media sits at
// position 3.
func mediaState(media *document.Node) *document.State {
	return td.State(td.Doc(td.P("a"), media), 1)
}

func attrAt(st *document.State, pos int, key string) any {
	return st.Doc().NodeAt(pos).Attr(key)
}

func TestController_ClampsToBounds(t *testing.T) {
	st := mediaState(td.Iframe(nil))
	c := NewController(st, fixedSize(Size{Width: 800, Height: 600}), Options{})

	if !c.PointerDown(3, 0, 100) {
		t.Fatalf("pointer down should start a session")
	}
	if got := c.Phase(); got != PendingDrag {
		t.Fatalf("phase=%v, want %v", got, PendingDrag)
	}
	c.PointerMove(2, 103)
	if got := c.Phase(); got != PendingDrag {
		t.Fatalf("move inside deadzone: phase=%v, want %v", got, PendingDrag)
	}
	c.PointerMove(0, -1000)
	if got := c.Phase(); got != Dragging {
		t.Fatalf("phase=%v, want %v", got, Dragging)
	}
	if pos, h, ok := c.Placeholder(); !ok || pos != 3 || h != 180 {
		t.Fatalf("placeholder=(%d,%d,%v), want (3,180,true)", pos, h, ok)
	}
	if got := st.Version(); got != 0 {
		t.Fatalf("placeholder kinds must not edit while dragging, version=%d", got)
	}
	c.PointerUp(0, -1000)
	if got := c.Phase(); got != Idle {
		t.Fatalf("phase after release=%v, want %v", got, Idle)
	}
	if got, want := attrAt(st, 3, "height"), "180"; got != want {
		t.Fatalf("height=%v, want %v", got, want)
	}

	c.PointerDown(3, 0, 0)
	c.PointerMove(0, 5000)
	c.PointerUp(0, 5000)
	if got, want := attrAt(st, 3, "height"), "1600"; got != want {
		t.Fatalf("height=%v, want %v", got, want)
	}
	if got, want := attrAt(st, 3, "width"), "100%"; got != want {
		t.Fatalf("width=%v, want %v", got, want)
	}
}

func TestController_SameHeightIsNoop(t *testing.T) {
	st := mediaState(td.Iframe(document.Attrs{"height": "600"}))
	c := NewController(st, fixedSize(Size{Width: 800, Height: 600}), Options{})

	c.PointerDown(3, 0, 100)
	c.PointerMove(0, 120)
	c.PointerUp(0, 100)
	if got := st.Version(); got != 0 {
		t.Fatalf("unchanged height produced an edit, version=%d", got)
	}
}

func TestController_DragClearsAspectRatio(t *testing.T) {
	st := mediaState(td.Iframe(document.Attrs{"aspectRatio": "16:9"}))
	c := NewController(st, fixedSize(Size{Width: 800, Height: 450}), Options{})

	c.PointerDown(3, 0, 0)
	c.PointerMove(0, 50)
	c.PointerUp(0, 50)
	if got := attrAt(st, 3, "aspectRatio"); got != nil {
		t.Fatalf("aspectRatio=%v, want nil", got)
	}
	if got, want := attrAt(st, 3, "height"), "500"; got != want {
		t.Fatalf("height=%v, want %v", got, want)
	}
}

func TestController_ImageCommitsOncePerFrame(t *testing.T) {
	st := mediaState(td.Image(document.Attrs{"src": "a.png", "width": "400", "height": "200"}))
	frames := &fakeFrames{}
	c := NewController(st, fixedSize(Size{Width: 400, Height: 200, NaturalWidth: 800, NaturalHeight: 400}), Options{Frames: frames})

	c.PointerDown(3, 0, 0)
	c.PointerMove(0, 50)
	c.PointerMove(0, 60)
	if _, _, ok := c.Placeholder(); ok {
		t.Fatalf("images are not previewed through a placeholder")
	}
	if got, want := frames.flush(), 1; got != want {
		t.Fatalf("frames run=%d, want %d", got, want)
	}
	if got, want := st.Version(), uint64(1); got != want {
		t.Fatalf("version=%d, want %d", got, want)
	}
	if w, h := attrAt(st, 3, "width"), attrAt(st, 3, "height"); w != "520" || h != "260" {
		t.Fatalf("size=%vx%v, want 520x260", w, h)
	}

	c.PointerMove(0, 70)
	c.PointerUp(0, 80)
	if got := frames.flush(); got != 0 {
		t.Fatalf("release should cancel the pending frame, ran %d", got)
	}
	if got, want := attrAt(st, 3, "height"), "280"; got != want {
		t.Fatalf("height after release=%v, want %v", got, want)
	}
}

func TestController_ClickTogglesToolbar(t *testing.T) {
	st := mediaState(td.Embed(nil))
	c := NewController(st, fixedSize(Size{Width: 600, Height: 500}), Options{})

	c.PointerDown(3, 10, 10)
	c.PointerUp(12, 13)
	if pos, ok := c.Toolbar(); !ok || pos != 3 {
		t.Fatalf("toolbar=(%d,%v), want (3,true)", pos, ok)
	}
	if got := st.Version(); got != 0 {
		t.Fatalf("click produced an edit, version=%d", got)
	}
	c.PointerDown(3, 10, 10)
	c.PointerUp(10, 10)
	if _, ok := c.Toolbar(); ok {
		t.Fatalf("second click should close the toolbar")
	}
}

func TestController_PlaceholderFromPointerDown(t *testing.T) {
	st := mediaState(td.Iframe(nil))
	c := NewController(st, fixedSize(Size{Width: 800, Height: 240}), Options{})

	if _, _, ok := c.Placeholder(); ok {
		t.Fatalf("idle controller should not report a placeholder")
	}
	c.PointerDown(3, 0, 0)
	if got := c.Phase(); got != PendingDrag {
		t.Fatalf("phase=%v, want %v", got, PendingDrag)
	}
	if pos, h, ok := c.Placeholder(); !ok || pos != 3 || h != 240 {
		t.Fatalf("placeholder=(%d,%d,%v), want (3,240,true)", pos, h, ok)
	}
	c.PointerUp(0, 0)
	if _, _, ok := c.Placeholder(); ok {
		t.Fatalf("placeholder should clear on release")
	}
}

func TestController_CustomDeadzone(t *testing.T) {
	st := mediaState(td.Embed(nil))
	c := NewController(st, fixedSize(Size{Width: 600, Height: 500}), Options{Deadzone: 20})

	c.PointerDown(3, 0, 0)
	c.PointerMove(0, 15)
	if got := c.Phase(); got != PendingDrag {
		t.Fatalf("phase=%v, want %v", got, PendingDrag)
	}
	c.PointerMove(0, 25)
	if got := c.Phase(); got != Dragging {
		t.Fatalf("phase=%v, want %v", got, Dragging)
	}
	c.Destroy()
	if got := c.Phase(); got != Idle {
		t.Fatalf("phase after destroy=%v, want %v", got, Idle)
	}
}

func TestController_RejectsUnresolvableTarget(t *testing.T) {
	st := mediaState(td.Iframe(nil))
	hidden := TargetFunc(func(int) (Size, bool) { return Size{}, false })
	c := NewController(st, hidden, Options{})
	if c.PointerDown(3, 0, 0) {
		t.Fatalf("unrendered node should not start a session")
	}
	c = NewController(st, fixedSize(Size{Width: 10, Height: 10}), Options{})
	if c.PointerDown(0, 0, 0) {
		t.Fatalf("paragraph should not start a session")
	}
	if got := c.Phase(); got != Idle {
		t.Fatalf("phase=%v, want %v", got, Idle)
	}
}

func TestController_StartHeightFallsBackToAttrs(t *testing.T) {
	st := mediaState(td.Midibus(document.Attrs{"height": "300px"}))
	c := NewController(st, fixedSize(Size{Width: 600}), Options{})
	c.PointerDown(3, 0, 0)
	if s, _ := c.Session(); s.StartHeight != 300 {
		t.Fatalf("start height=%v, want 300", s.StartHeight)
	}

	st = mediaState(td.Midibus(nil))
	c = NewController(st, fixedSize(Size{Width: 600}), Options{})
	c.PointerDown(3, 0, 0)
	if s, _ := c.Session(); s.StartHeight != 600 {
		t.Fatalf("start height=%v, want 600", s.StartHeight)
	}
}

func TestSelectPreset(t *testing.T) {
	st := mediaState(td.Iframe(nil))
	c := NewController(st, fixedSize(Size{Width: 800, Height: 600}), Options{})

	if !c.SelectPreset(3, "16:9") {
		t.Fatalf("16:9 preset should apply")
	}
	if got, want := attrAt(st, 3, "height"), "450"; got != want {
		t.Fatalf("height=%v, want %v", got, want)
	}
	if got, want := attrAt(st, 3, "aspectRatio"), "16:9"; got != want {
		t.Fatalf("aspectRatio=%v, want %v", got, want)
	}

	if !c.SelectPreset(3, PresetAuto) {
		t.Fatalf("auto preset should clear the ratio")
	}
	if got := attrAt(st, 3, "aspectRatio"); got != nil {
		t.Fatalf("aspectRatio=%v, want nil", got)
	}
	if got, want := attrAt(st, 3, "height"), "450"; got != want {
		t.Fatalf("auto changed height to %v, want %v", got, want)
	}

	if !c.SelectPreset(3, "1:4") {
		t.Fatalf("1:4 preset should apply")
	}
	if got, want := attrAt(st, 3, "height"), "1600"; got != want {
		t.Fatalf("height=%v, want clamped %v", got, want)
	}

	if c.SelectPreset(3, "wide") {
		t.Fatalf("malformed preset should not apply")
	}
}

func TestSelectPreset_AutoSetsMissingHeight(t *testing.T) {
	st := mediaState(td.Midibus(document.Attrs{"aspectRatio": "1:1"}))
	c := NewController(st, fixedSize(Size{Width: 500, Height: 500}), Options{})
	if !c.SelectPreset(3, PresetAuto) {
		t.Fatalf("auto preset should apply")
	}
	if got, want := attrAt(st, 3, "height"), "500"; got != want {
		t.Fatalf("height=%v, want %v", got, want)
	}
}

func TestSelectPreset_ImageUnsupported(t *testing.T) {
	st := mediaState(td.Image(nil))
	c := NewController(st, fixedSize(Size{Width: 800, Height: 600}), Options{})
	if c.SelectPreset(3, "16:9") {
		t.Fatalf("images have no presets")
	}
}
