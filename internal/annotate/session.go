package annotate

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/lucasdeeiroz/robotshot/internal/palette"
)

// sessionVersion guards the wire format of saved sessions.
const sessionVersion = 1

// sessionDoc is the persisted form of an element list. Bitmaps are referenced
// by path, never inlined.
type sessionDoc struct {
	Version  int           `json:"version"`
	Elements []elementWire `json:"elements"`
}

type elementWire struct {
	Kind  Kind    `json:"kind"`
	ID    string  `json:"id,omitempty"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	X1    float64 `json:"x1,omitempty"`
	Y1    float64 `json:"y1,omitempty"`
	X2    float64 `json:"x2,omitempty"`
	Y2    float64 `json:"y2,omitempty"`
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Path  string  `json:"path,omitempty"`
}

// SaveSession writes the element list as a JSON document.
func SaveSession(w io.Writer, elements []Element) error {
	doc := sessionDoc{Version: sessionVersion}
	for _, e := range elements {
		wire, err := toWire(e)
		if err != nil {
			return err
		}
		doc.Elements = append(doc.Elements, wire)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// LoadSession reads a JSON session document. Image elements come back with a
// nil bitmap and their recorded path; use AttachBitmap once the pixels have
// been decoded.
func LoadSession(r io.Reader) ([]Element, error) {
	var doc sessionDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if doc.Version != sessionVersion {
		return nil, fmt.Errorf("unsupported session version %d", doc.Version)
	}
	elements := make([]Element, 0, len(doc.Elements))
	for _, wire := range doc.Elements {
		e, err := fromWire(wire)
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	return elements, nil
}

// AttachBitmap sets img as the backing bitmap of every image element in the
// list and returns the updated list.
func AttachBitmap(elements []Element, img image.Image) []Element {
	for i, e := range elements {
		if ie, ok := e.(ImageElement); ok {
			ie.Bitmap = img
			elements[i] = ie
		}
	}
	return elements
}

func toWire(e Element) (elementWire, error) {
	switch el := e.(type) {
	case ImageElement:
		return elementWire{Kind: KindImage, ID: el.ID, X: el.X, Y: el.Y, W: el.W, H: el.H, Path: el.Path}, nil
	case ArrowElement:
		return elementWire{Kind: KindArrow, ID: el.ID, X1: el.X1, Y1: el.Y1, X2: el.X2, Y2: el.Y2,
			Color: formatHex(el.Color), Width: el.Width}, nil
	case RectElement:
		return elementWire{Kind: KindRect, ID: el.ID, X: el.X, Y: el.Y, W: el.W, H: el.H,
			Color: formatHex(el.Color), Width: el.Width}, nil
	case CropElement:
		return elementWire{Kind: KindCrop, ID: el.ID, X: el.X, Y: el.Y, W: el.W, H: el.H}, nil
	default:
		return elementWire{}, fmt.Errorf("cannot serialize element kind %q", e.Kind())
	}
}

func fromWire(wire elementWire) (Element, error) {
	switch wire.Kind {
	case KindImage:
		return ImageElement{ID: wire.ID, X: wire.X, Y: wire.Y, W: wire.W, H: wire.H, Path: wire.Path}, nil
	case KindArrow:
		col, err := parseHex(wire.Color)
		if err != nil {
			return nil, err
		}
		return ArrowElement{ID: wire.ID, X1: wire.X1, Y1: wire.Y1, X2: wire.X2, Y2: wire.Y2,
			Color: col, Width: wire.Width}, nil
	case KindRect:
		col, err := parseHex(wire.Color)
		if err != nil {
			return nil, err
		}
		return RectElement{ID: wire.ID, X: wire.X, Y: wire.Y, W: wire.W, H: wire.H,
			Color: col, Width: wire.Width}, nil
	case KindCrop:
		return CropElement{ID: wire.ID, X: wire.X, Y: wire.Y, W: wire.W, H: wire.H}, nil
	default:
		return nil, fmt.Errorf("unknown element kind %q", wire.Kind)
	}
}

// formatHex serializes a stroke color, mapping the zero value (use the
// per-kind default) to the empty string.
func formatHex(c color.RGBA) string {
	if c == (color.RGBA{}) {
		return ""
	}
	return palette.FormatColor(c)
}

func parseHex(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{}, nil
	}
	return palette.ParseColor(s)
}
