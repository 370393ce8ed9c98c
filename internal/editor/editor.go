// Package editor provides the interactive annotation window. A captured
// screenshot is shown scaled to fit, pointer drags draw arrows,
// rectangles and crop frames, and keyboard shortcuts save, copy or
// export the annotated result.
package editor

import (
	"image"
	"image/color"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/lucasdeeiroz/robotshot/internal/annotate"
	"github.com/lucasdeeiroz/robotshot/internal/palette"
)

// Editor owns the annotation window state.
type Editor struct {
	session *annotate.Session
	pal     *palette.Palette
	output  string

	onSave func(img image.Image, path string)
	onCopy func(img image.Image)

	closeOnce sync.Once
	onClose   func()
}

// Option configures an Editor.
type Option func(*Editor)

// WithOutput sets the path used by the save shortcut.
func WithOutput(path string) Option { return func(e *Editor) { e.output = path } }

// WithPalette sets the tool colors.
func WithPalette(p *palette.Palette) Option { return func(e *Editor) { e.pal = p } }

// WithSaveHandler registers the handler invoked by the save shortcut.
func WithSaveHandler(fn func(img image.Image, path string)) Option {
	return func(e *Editor) { e.onSave = fn }
}

// WithCopyHandler registers the handler invoked by the copy shortcut.
func WithCopyHandler(fn func(img image.Image)) Option {
	return func(e *Editor) { e.onCopy = fn }
}

// WithOnClose registers a callback invoked once when the window closes.
func WithOnClose(fn func()) Option { return func(e *Editor) { e.onClose = fn } }

// New creates an Editor for the given screenshot.
func New(screenshot image.Image, opts ...Option) *Editor {
	e := &Editor{
		session: annotate.NewSession(screenshot),
		pal:     palette.Default(),
	}
	for _, o := range opts {
		o(e)
	}
	e.session.SelectTool(annotate.ToolArrow)
	e.applyToolColor(annotate.ToolArrow)
	return e
}

// Session exposes the underlying annotation session, mainly for loading
// saved element lists before the window opens.
func (e *Editor) Session() *annotate.Session { return e.session }

// Run opens the window and blocks until it closes.
func (e *Editor) Run() { driver.Main(e.main) }

func (e *Editor) applyToolColor(tool annotate.Tool) {
	var col color.RGBA
	switch tool {
	case annotate.ToolArrow:
		col = e.pal.Arrow
	case annotate.ToolRect:
		col = e.pal.Rect
	}
	e.session.SetStyle(col, 0)
}

func (e *Editor) selectTool(tool annotate.Tool) {
	e.session.SelectTool(tool)
	e.applyToolColor(tool)
}

func (e *Editor) notifyClose() {
	e.closeOnce.Do(func() {
		if e.onClose != nil {
			e.onClose()
		}
	})
}

// rendered flattens the committed elements onto a fresh canvas and cuts
// the result down to the crop region when one is set. Crop frames are
// editing chrome and stay out of the flattened image.
func (e *Editor) rendered() image.Image {
	w, h := e.session.Size()
	canvas := annotate.NewCanvas(w, h)
	defer canvas.Close()
	annotate.Redraw(canvas, annotate.WithoutCrops(e.session.Committed()))

	src := canvas.Image()
	region := src.Bounds()
	if r, ok := e.session.CropRegion(); ok {
		region = r
	}
	out := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	xdraw.Draw(out, out.Bounds(), src, region.Min, xdraw.Src)
	return out
}

func (e *Editor) main(s screen.Screen) {
	surfW, surfH := e.session.Size()
	winW, winH := initialWindowSize(surfW, surfH)

	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  winW,
		Height: winH,
		Title:  "robotshot",
	})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer e.notifyClose()

	canvas := annotate.NewCanvas(surfW, surfH)
	defer canvas.Close()

	display := fitRect(surfW, surfH, winW, winH)

	for {
		switch ev := w.NextEvent().(type) {
		case lifecycle.Event:
			if ev.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			winW, winH = ev.WidthPx, ev.HeightPx
			display = fitRect(surfW, surfH, winW, winH)
			w.Send(paint.Event{})
		case key.Event:
			if ev.Direction == key.DirRelease {
				continue
			}
			if e.handleKey(ev, w) {
				return
			}
		case mouse.Event:
			if e.handleMouse(ev, display) {
				w.Send(paint.Event{})
			}
		case paint.Event:
			e.paintFrame(s, w, canvas, display, winW, winH)
		}
	}
}

// handleKey dispatches shortcuts; it reports whether the window should
// close.
func (e *Editor) handleKey(ev key.Event, w screen.Window) bool {
	if ev.Modifiers&key.ModControl != 0 {
		switch ev.Rune {
		case 's':
			e.save()
		case 'c':
			e.copy()
		case 'z':
			e.session.Undo()
		}
		w.Send(paint.Event{})
		return false
	}
	switch {
	case ev.Rune == 'a':
		e.selectTool(annotate.ToolArrow)
	case ev.Rune == 'r':
		e.selectTool(annotate.ToolRect)
	case ev.Rune == 'c':
		e.selectTool(annotate.ToolCrop)
	case ev.Rune == 'x':
		e.session.Clear()
	case ev.Code == key.CodeEscape:
		if e.session.Dragging() {
			e.session.Cancel()
		} else {
			return true
		}
	case ev.Code == key.CodeDeleteBackspace:
		e.session.Undo()
	default:
		return false
	}
	w.Send(paint.Event{})
	return false
}

// handleMouse feeds pointer events into the session; it reports whether
// a repaint is needed.
func (e *Editor) handleMouse(ev mouse.Event, display annotate.DisplayRect) bool {
	surfW, surfH := e.session.Size()
	p := annotate.ToSurfaceCoords(surfW, surfH, display, float64(ev.X), float64(ev.Y))
	switch {
	case ev.Button == mouse.ButtonLeft && ev.Direction == mouse.DirPress:
		e.session.PointerDown(p)
		return true
	case ev.Button == mouse.ButtonLeft && ev.Direction == mouse.DirRelease:
		e.session.PointerUp(p)
		return true
	case ev.Direction == mouse.DirNone && e.session.Dragging():
		e.session.PointerMove(p)
		return true
	}
	return false
}

func (e *Editor) paintFrame(s screen.Screen, w screen.Window, canvas *annotate.Canvas, display annotate.DisplayRect, winW, winH int) {
	e.session.Redraw(canvas)

	buf, err := s.NewBuffer(image.Point{X: winW, Y: winH})
	if err != nil {
		log.Printf("paint: %v", err)
		return
	}
	defer buf.Release()

	frame := buf.RGBA()
	fillBackground(frame)
	dst := image.Rect(int(display.Left), int(display.Top),
		int(display.Left+display.Width), int(display.Top+display.Height))
	xdraw.ApproxBiLinear.Scale(frame, dst, canvas.Image(), canvas.Image().Bounds(), xdraw.Over, nil)

	w.Upload(image.Point{}, buf, frame.Bounds())
	w.Publish()
}

func (e *Editor) save() {
	if e.onSave != nil {
		e.onSave(e.rendered(), e.output)
	}
}

func (e *Editor) copy() {
	if e.onCopy != nil {
		e.onCopy(e.rendered())
	}
}

var backgroundGray = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}

func fillBackground(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[(y-b.Min.Y)*img.Stride : (y-b.Min.Y)*img.Stride+b.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			row[x] = backgroundGray.R
			row[x+1] = backgroundGray.G
			row[x+2] = backgroundGray.B
			row[x+3] = 0xff
		}
	}
}

// initialWindowSize caps the window below common desktop resolutions
// while keeping the screenshot aspect ratio.
func initialWindowSize(surfW, surfH int) (int, int) {
	const maxW, maxH = 1600, 1000
	if surfW <= maxW && surfH <= maxH {
		return surfW, surfH
	}
	r := fitRect(surfW, surfH, maxW, maxH)
	return int(r.Width), int(r.Height)
}

// fitRect centers a surfW x surfH image inside winW x winH preserving
// aspect ratio.
func fitRect(surfW, surfH, winW, winH int) annotate.DisplayRect {
	if surfW <= 0 || surfH <= 0 || winW <= 0 || winH <= 0 {
		return annotate.DisplayRect{Width: float64(winW), Height: float64(winH)}
	}
	scale := float64(winW) / float64(surfW)
	if s := float64(winH) / float64(surfH); s < scale {
		scale = s
	}
	w := float64(surfW) * scale
	h := float64(surfH) * scale
	return annotate.DisplayRect{
		Left:   (float64(winW) - w) / 2,
		Top:    (float64(winH) - h) / 2,
		Width:  w,
		Height: h,
	}
}
