package annotate

import (
	"image"
	"image/color"
)

// Point is a position in surface (bitmap) pixel space.
type Point struct {
	X float64
	Y float64
}

// Surface is the pixel-addressable drawing target elements are painted onto.
// Push/Pop bracket per-element drawing so stroke, dash and shadow settings
// never leak from one element to the next.
type Surface interface {
	// Size reports the backing pixel dimensions.
	Size() (width, height int)

	// Clear erases the full extent of the surface.
	Clear()

	Push()
	Pop()

	SetStroke(col color.Color, width float64)
	// SetShadow enables a soft glow of the given blur radius behind
	// subsequent strokes and fills. Cleared by Pop.
	SetShadow(blur float64, col color.Color)
	SetDash(on, off float64)
	ClearDash()

	StrokeLine(x1, y1, x2, y2 float64) error
	StrokeRect(x, y, w, h float64) error
	FillPolygon(pts []Point) error

	// DrawBitmap blits img scaled into the destination rectangle.
	DrawBitmap(img image.Image, x, y, w, h float64) error
}
