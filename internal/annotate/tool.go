package annotate

import (
	"image"
	"image/color"
	"math"
)

// Tool selects which element type pointer drags author. ToolNone is the idle
// state in which pointer events are ignored.
type Tool int

const (
	ToolNone Tool = iota
	ToolArrow
	ToolRect
	ToolCrop
)

func (t Tool) String() string {
	switch t {
	case ToolArrow:
		return "arrow"
	case ToolRect:
		return "rect"
	case ToolCrop:
		return "crop"
	default:
		return "none"
	}
}

// Session owns the ordered element list for one screenshot being annotated
// and runs the draft lifecycle: pointer-down starts a draft, pointer-move
// updates it, pointer-up inside the surface commits it to the list.
// Pointer-up outside the surface, or Cancel, discards the draft; the
// committed list only ever changes on a clean commit or an explicit
// Undo/Clear.
//
// All methods must be called from a single goroutine. The session mutates the
// list strictly inside discrete event callbacks, never concurrently with a
// redraw reading it.
type Session struct {
	width, height int
	elements      []Element

	tool     Tool
	dragging bool
	start    Point
	draft    Element

	strokeColor color.RGBA
	strokeWidth float64
}

// NewSession creates a session for the given screenshot. The screenshot
// becomes the image element at the bottom of the z-order and fixes the
// surface pixel dimensions.
func NewSession(screenshot image.Image) *Session {
	b := screenshot.Bounds()
	s := &Session{width: b.Dx(), height: b.Dy()}
	s.elements = append(s.elements, ImageElement{
		ID:     NewID(),
		W:      float64(b.Dx()),
		H:      float64(b.Dy()),
		Bitmap: screenshot,
	})
	return s
}

// Size reports the surface pixel dimensions the session was created with.
func (s *Session) Size() (int, int) { return s.width, s.height }

// SelectTool switches the active tool. An in-progress draft is discarded.
func (s *Session) SelectTool(t Tool) {
	s.tool = t
	s.Cancel()
}

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// SetStyle overrides the stroke color and width applied to committed
// elements. A zero width keeps the adaptive width; a zero color keeps the
// per-kind default.
func (s *Session) SetStyle(col color.RGBA, width float64) {
	s.strokeColor = col
	s.strokeWidth = width
}

func (s *Session) inBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= float64(s.width) && p.Y <= float64(s.height)
}

// PointerDown starts a draft at p. Ignored when no tool is selected or p is
// outside the surface.
func (s *Session) PointerDown(p Point) {
	if s.tool == ToolNone || !s.inBounds(p) {
		return
	}
	s.dragging = true
	s.start = p
	s.draft = s.makeDraft(p, p)
}

// PointerMove updates the draft geometry while dragging.
func (s *Session) PointerMove(p Point) {
	if !s.dragging {
		return
	}
	s.draft = s.makeDraft(s.start, p)
}

// PointerUp finishes the drag. When p is inside the surface and the draft has
// real extent it is committed to the element list and returned; otherwise the
// draft is discarded. The tool stays selected either way so shapes can be
// authored repeatedly.
func (s *Session) PointerUp(p Point) (Element, bool) {
	if !s.dragging {
		return nil, false
	}
	s.dragging = false
	draft := s.makeDraft(s.start, p)
	s.draft = nil
	if !s.inBounds(p) || !s.draftCommittable(draft) {
		return nil, false
	}
	s.elements = append(s.elements, draft)
	return draft, true
}

// Cancel discards an in-progress draft without touching the committed list.
func (s *Session) Cancel() {
	s.dragging = false
	s.draft = nil
}

// Dragging reports whether a draft is being authored.
func (s *Session) Dragging() bool { return s.dragging }

// makeDraft builds the draft element for the active tool between the anchor
// and the current pointer position. Rectangular drafts are normalised so
// width and height stay positive regardless of drag direction.
func (s *Session) makeDraft(a, b Point) Element {
	switch s.tool {
	case ToolArrow:
		return ArrowElement{
			ID: NewID(),
			X1: a.X, Y1: a.Y,
			X2: b.X, Y2: b.Y,
			Color: s.strokeColor,
			Width: s.strokeWidth,
		}
	case ToolRect:
		x, y, w, h := normalizedBox(a, b)
		return RectElement{
			ID: NewID(),
			X:  x, Y: y, W: w, H: h,
			Color: s.strokeColor,
			Width: s.strokeWidth,
		}
	case ToolCrop:
		x, y, w, h := normalizedBox(a, b)
		return CropElement{ID: NewID(), X: x, Y: y, W: w, H: h}
	default:
		return nil
	}
}

// draftCommittable rejects degenerate drags: a zero-length arrow or a
// zero-area box is treated like a cancel, not an element.
func (s *Session) draftCommittable(e Element) bool {
	switch el := e.(type) {
	case ArrowElement:
		return math.Hypot(el.X2-el.X1, el.Y2-el.Y1) > 0
	case RectElement:
		return el.valid()
	case CropElement:
		return el.valid()
	default:
		return false
	}
}

func normalizedBox(a, b Point) (x, y, w, h float64) {
	x = math.Min(a.X, b.X)
	y = math.Min(a.Y, b.Y)
	w = math.Abs(b.X - a.X)
	h = math.Abs(b.Y - a.Y)
	return
}

// Elements returns the committed list followed by the in-progress draft, in
// paint order. The returned slice is shared with the session; callers only
// read it.
func (s *Session) Elements() []Element {
	if s.draft == nil {
		return s.elements
	}
	out := make([]Element, 0, len(s.elements)+1)
	out = append(out, s.elements...)
	return append(out, s.draft)
}

// Committed returns only the committed elements.
func (s *Session) Committed() []Element { return s.elements }

// Undo removes the most recently committed annotation. The backing image
// element is never removed.
func (s *Session) Undo() bool {
	for i := len(s.elements) - 1; i >= 0; i-- {
		if s.elements[i].Kind() == KindImage {
			continue
		}
		s.elements = append(s.elements[:i], s.elements[i+1:]...)
		return true
	}
	return false
}

// Clear removes every annotation, leaving only the backing image.
func (s *Session) Clear() {
	kept := s.elements[:0]
	for _, e := range s.elements {
		if e.Kind() == KindImage {
			kept = append(kept, e)
		}
	}
	s.elements = kept
}

// CropRegion returns the authoritative crop boundary, clipped to the surface.
func (s *Session) CropRegion() (image.Rectangle, bool) {
	c, ok := LastCrop(s.elements)
	if !ok {
		return image.Rectangle{}, false
	}
	r := c.Rect().Intersect(image.Rect(0, 0, s.width, s.height))
	if r.Empty() {
		return image.Rectangle{}, false
	}
	return r, true
}

// Redraw composites the session onto s, draft included.
func (s *Session) Redraw(surface Surface) {
	Redraw(surface, s.Elements())
}
