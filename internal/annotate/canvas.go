package annotate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gg"

	"github.com/lucasdeeiroz/robotshot/internal/render"
)

// Canvas is the production Surface, backed by a gg drawing context. gg's
// Push/Pop only covers transform, clip and mask, so the canvas snapshots its
// own paint state (stroke, dash, shadow) and reapplies it on Pop.
type Canvas struct {
	dc     *gg.Context
	state  canvasState
	stack  []canvasState
	closed bool
}

type canvasState struct {
	col        color.Color
	width      float64
	dashOn     float64
	dashOff    float64
	shadowBlur float64
	shadowCol  color.RGBA
	shadow     bool
}

// NewCanvas creates a transparent canvas of the given pixel size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{dc: gg.NewContext(width, height)}
}

// NewCanvasForImage creates a canvas initialised with img's pixels.
func NewCanvasForImage(img image.Image) *Canvas {
	return &Canvas{dc: gg.NewContextForImage(img)}
}

// Image returns the current pixel contents.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// Close releases the drawing context. The canvas must not be used afterwards.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.dc.Close()
}

func (c *Canvas) Size() (int, int) { return c.dc.Width(), c.dc.Height() }

func (c *Canvas) Clear() { c.dc.Clear() }

func (c *Canvas) Push() {
	c.dc.Push()
	c.stack = append(c.stack, c.state)
}

func (c *Canvas) Pop() {
	c.dc.Pop()
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.applyState(c.dc)
}

func (c *Canvas) applyState(dc *gg.Context) {
	if c.state.col != nil {
		dc.SetColor(c.state.col)
	}
	if c.state.width > 0 {
		dc.SetLineWidth(c.state.width)
	}
	if c.state.dashOn > 0 {
		dc.SetDash(c.state.dashOn, c.state.dashOff)
	} else {
		dc.ClearDash()
	}
}

func (c *Canvas) SetStroke(col color.Color, width float64) {
	c.state.col = col
	c.state.width = width
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
}

func (c *Canvas) SetShadow(blur float64, col color.Color) {
	r, g, b, a := col.RGBA()
	c.state.shadowCol = color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	c.state.shadowBlur = blur
	c.state.shadow = blur > 0 && c.state.shadowCol.A > 0
}

func (c *Canvas) SetDash(on, off float64) {
	c.state.dashOn = on
	c.state.dashOff = off
	c.dc.SetDash(on, off)
}

func (c *Canvas) ClearDash() {
	c.state.dashOn = 0
	c.state.dashOff = 0
	c.dc.ClearDash()
}

func (c *Canvas) StrokeLine(x1, y1, x2, y2 float64) error {
	return c.paint(func(dc *gg.Context) error {
		dc.DrawLine(x1, y1, x2, y2)
		return dc.Stroke()
	})
}

func (c *Canvas) StrokeRect(x, y, w, h float64) error {
	return c.paint(func(dc *gg.Context) error {
		dc.DrawRectangle(x, y, w, h)
		return dc.Stroke()
	})
}

func (c *Canvas) FillPolygon(pts []Point) error {
	if len(pts) < 3 {
		return fmt.Errorf("polygon needs at least 3 points, got %d", len(pts))
	}
	return c.paint(func(dc *gg.Context) error {
		dc.MoveTo(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		return dc.Fill()
	})
}

// paint runs op on the main context, preceded by a glow pass when a shadow is
// active. The glow renders the same op into a scratch context, blurs its
// coverage and composites the halo underneath the shape.
func (c *Canvas) paint(op func(dc *gg.Context) error) error {
	if c.state.shadow {
		if err := c.paintGlow(op); err != nil {
			return err
		}
	}
	return op(c.dc)
}

func (c *Canvas) paintGlow(op func(dc *gg.Context) error) error {
	w, h := c.Size()
	scratch := gg.NewContext(w, h)
	defer func() { _ = scratch.Close() }()
	scratch.SetColor(color.Black)
	if c.state.width > 0 {
		scratch.SetLineWidth(c.state.width)
	}
	if c.state.dashOn > 0 {
		scratch.SetDash(c.state.dashOn, c.state.dashOff)
	}
	if err := op(scratch); err != nil {
		return err
	}
	glow := render.Glow(toRGBA(scratch.Image()), int(math.Round(c.state.shadowBlur)), c.state.shadowCol)
	if glow == nil {
		return nil
	}
	c.dc.DrawImageEx(gg.ImageBufFromImage(glow), gg.DrawImageOptions{
		Interpolation: gg.InterpNearest,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
	return nil
}

func (c *Canvas) DrawBitmap(img image.Image, x, y, w, h float64) error {
	if img == nil {
		return fmt.Errorf("nil bitmap")
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("bitmap destination %gx%g is empty", w, h)
	}
	c.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBilinear,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
	return nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

var _ Surface = (*Canvas)(nil)
