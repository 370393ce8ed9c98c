package annotate

import (
	"image/color"
	"log"
	"math"
)

const (
	// adaptiveDivisor scales stroke weight with surface resolution so a
	// 1080px phone screenshot and a 2560px tablet screenshot look
	// comparably weighted.
	adaptiveDivisor = 150
	minLineWidth    = 2
	headAngle       = math.Pi / 6
	headLengthScale = 4
	cropDashOn      = 6
	cropDashOff     = 4
	cropWidthFactor = 1.5
)

var shadowColor = color.RGBA{A: 128}

// AdaptiveLineWidth derives a stroke width from the surface dimensions:
// max(2, round(max(w, h)/150)). It must be recomputed whenever the surface
// changes size, never cached.
func AdaptiveLineWidth(width, height int) float64 {
	w := math.Round(math.Max(float64(width), float64(height)) / adaptiveDivisor)
	if w < minLineWidth {
		return minLineWidth
	}
	return w
}

// CropLineWidth derives the thinner crop boundary stroke from the adaptive
// width, floored at 2.
func CropLineWidth(base float64) float64 {
	w := math.Round(base / cropWidthFactor)
	if w < minLineWidth {
		return minLineWidth
	}
	return w
}

// Renderer paints single elements onto a surface. The zero value is usable;
// Logf defaults to the standard logger.
type Renderer struct {
	// Logf receives drawing faults. Faults are logged and swallowed so a
	// broken element cannot abort the rest of a redraw.
	Logf func(format string, args ...any)
}

func (r *Renderer) logf(format string, args ...any) {
	if r != nil && r.Logf != nil {
		r.Logf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// Render paints one element onto the surface. Elements missing required
// fields draw nothing. Drawing faults are logged, never propagated.
func (r *Renderer) Render(s Surface, e Element) {
	defer func() {
		if p := recover(); p != nil {
			r.logf("annotate: render %s element: %v", e.Kind(), p)
		}
	}()

	switch el := e.(type) {
	case ImageElement:
		r.renderImage(s, el)
	case ArrowElement:
		r.renderArrow(s, el)
	case RectElement:
		r.renderRect(s, el)
	case CropElement:
		r.renderCrop(s, el)
	default:
		r.logf("annotate: unknown element kind %q", e.Kind())
	}
}

func (r *Renderer) renderImage(s Surface, e ImageElement) {
	if !e.valid() {
		return
	}
	if err := s.DrawBitmap(e.Bitmap, e.X, e.Y, e.W, e.H); err != nil {
		r.logf("annotate: draw image element: %v", err)
	}
}

func (r *Renderer) renderArrow(s Surface, e ArrowElement) {
	if !e.valid() {
		return
	}
	width := e.Width
	if width <= 0 {
		width = AdaptiveLineWidth(s.Size())
	}
	col := e.Color
	if col == (color.RGBA{}) {
		col = DefaultArrowColor
	}

	s.Push()
	defer s.Pop()
	s.SetShadow(width, shadowColor)
	s.SetStroke(col, width)
	if err := s.StrokeLine(e.X1, e.Y1, e.X2, e.Y2); err != nil {
		r.logf("annotate: stroke arrow shaft: %v", err)
	}

	angle := math.Atan2(e.Y2-e.Y1, e.X2-e.X1)
	head := headLengthScale * width
	left := Point{
		X: e.X2 - head*math.Cos(angle-headAngle),
		Y: e.Y2 - head*math.Sin(angle-headAngle),
	}
	right := Point{
		X: e.X2 - head*math.Cos(angle+headAngle),
		Y: e.Y2 - head*math.Sin(angle+headAngle),
	}
	if err := s.FillPolygon([]Point{{e.X2, e.Y2}, left, right}); err != nil {
		r.logf("annotate: fill arrowhead: %v", err)
	}
}

func (r *Renderer) renderRect(s Surface, e RectElement) {
	if !e.valid() {
		return
	}
	width := e.Width
	if width <= 0 {
		width = AdaptiveLineWidth(s.Size())
	}
	col := e.Color
	if col == (color.RGBA{}) {
		col = DefaultRectColor
	}

	s.Push()
	defer s.Pop()
	s.SetShadow(width, shadowColor)
	s.SetStroke(col, width)
	if err := s.StrokeRect(e.X, e.Y, e.W, e.H); err != nil {
		r.logf("annotate: stroke rect: %v", err)
	}
}

func (r *Renderer) renderCrop(s Surface, e CropElement) {
	if !e.valid() {
		return
	}
	base := AdaptiveLineWidth(s.Size())
	width := CropLineWidth(base)

	s.Push()
	defer s.Pop()
	s.SetShadow(base, shadowColor)
	s.SetStroke(CropColor, width)
	s.SetDash(cropDashOn, cropDashOff)
	if err := s.StrokeRect(e.X, e.Y, e.W, e.H); err != nil {
		r.logf("annotate: stroke crop boundary: %v", err)
	}
	s.ClearDash()
}
