package annotate

import (
	"image"
	"image/color"
	"math"

	"github.com/google/uuid"
)

// Kind discriminates the annotation element variants.
type Kind string

const (
	KindImage Kind = "image"
	KindArrow Kind = "arrow"
	KindRect  Kind = "rect"
	KindCrop  Kind = "crop"
)

// Element is the closed set of annotations a session can hold. The ordered
// element list defines paint order: earlier elements are painted first and end
// up visually behind later ones. Validity is checked at render time; an
// element missing its required fields draws nothing instead of failing the
// whole redraw.
type Element interface {
	Kind() Kind
	ElementID() string
}

// ImageElement is the backing screenshot layer. A session holds exactly one
// and keeps it at the bottom of the z-order.
type ImageElement struct {
	ID   string
	X, Y float64
	W, H float64
	// Path records where the bitmap was loaded from so a serialized session
	// can be reopened. The decoded pixels are never inlined.
	Path   string
	Bitmap image.Image
}

func (e ImageElement) Kind() Kind        { return KindImage }
func (e ImageElement) ElementID() string { return e.ID }

func (e ImageElement) valid() bool {
	return e.Bitmap != nil && e.W > 0 && e.H > 0
}

// ArrowElement is a directional marker from (X1,Y1) to (X2,Y2).
// A zero Width requests the adaptive stroke width; a zero-value Color
// requests the default arrow red.
type ArrowElement struct {
	ID     string
	X1, Y1 float64
	X2, Y2 float64
	Color  color.RGBA
	Width  float64
}

func (e ArrowElement) Kind() Kind        { return KindArrow }
func (e ArrowElement) ElementID() string { return e.ID }

func (e ArrowElement) valid() bool {
	for _, v := range []float64{e.X1, e.Y1, e.X2, e.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// RectElement is a stroke-only rectangular highlight.
type RectElement struct {
	ID    string
	X, Y  float64
	W, H  float64
	Color color.RGBA
	Width float64
}

func (e RectElement) Kind() Kind        { return KindRect }
func (e RectElement) ElementID() string { return e.ID }

func (e RectElement) valid() bool { return e.W > 0 && e.H > 0 }

// CropElement marks the output boundary for a cropped export. When several
// appear in a list the last one wins.
type CropElement struct {
	ID   string
	X, Y float64
	W, H float64
}

func (e CropElement) Kind() Kind        { return KindCrop }
func (e CropElement) ElementID() string { return e.ID }

func (e CropElement) valid() bool { return e.W > 0 && e.H > 0 }

// Rect returns the crop boundary as an integer rectangle in surface pixels.
func (e CropElement) Rect() image.Rectangle {
	return image.Rect(int(math.Round(e.X)), int(math.Round(e.Y)),
		int(math.Round(e.X+e.W)), int(math.Round(e.Y+e.H)))
}

// Default stroke colors. Arrows are red, highlight rectangles blue and crop
// boundaries the fixed success green so a crop is never mistaken for a
// highlight box.
var (
	DefaultArrowColor = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	DefaultRectColor  = color.RGBA{R: 0x00, G: 0x88, B: 0xff, A: 0xff}
	CropColor         = color.RGBA{R: 0x4a, G: 0xde, B: 0x80, A: 0xff}
)

// NewID returns a fresh element identifier.
func NewID() string { return uuid.NewString() }

// LastCrop returns the authoritative crop element of the list, which is the
// last valid one in paint order.
func LastCrop(elements []Element) (CropElement, bool) {
	for i := len(elements) - 1; i >= 0; i-- {
		if c, ok := elements[i].(CropElement); ok && c.valid() {
			return c, true
		}
	}
	return CropElement{}, false
}

// WithoutCrops returns the list with every crop element removed. Final
// exports use it so, once the crop is applied to the pixels, the dashed
// frame is not burned into the output.
func WithoutCrops(elements []Element) []Element {
	out := make([]Element, 0, len(elements))
	for _, e := range elements {
		if e.Kind() == KindCrop {
			continue
		}
		out = append(out, e)
	}
	return out
}
