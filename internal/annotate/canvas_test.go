package annotate

import (
	"image"
	"image/color"
	"testing"
)

func rgbaAt(t *testing.T, img image.Image, x, y int) color.RGBA {
	t.Helper()
	r, g, b, a := img.At(x, y).RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

func TestCanvasStrokeLinePaintsPixels(t *testing.T) {
	c := NewCanvas(100, 100)
	defer c.Close()

	c.SetStroke(color.RGBA{255, 0, 0, 255}, 10)
	if err := c.StrokeLine(10, 50, 90, 50); err != nil {
		t.Fatalf("stroke line: %v", err)
	}
	if got := rgbaAt(t, c.Image(), 50, 50); got.A == 0 {
		t.Fatalf("expected coverage at line centre, got %v", got)
	}
	if got := rgbaAt(t, c.Image(), 50, 10); got.A != 0 {
		t.Fatalf("expected no coverage away from the line, got %v", got)
	}
}

func TestCanvasClearErasesEverything(t *testing.T) {
	c := NewCanvas(50, 50)
	defer c.Close()

	c.SetStroke(color.RGBA{0, 0, 255, 255}, 8)
	if err := c.StrokeRect(5, 5, 40, 40); err != nil {
		t.Fatalf("stroke rect: %v", err)
	}
	c.Clear()
	for _, p := range []image.Point{{5, 5}, {25, 5}, {45, 45}} {
		if got := rgbaAt(t, c.Image(), p.X, p.Y); got.A != 0 {
			t.Fatalf("pixel %v not cleared: %v", p, got)
		}
	}
}

func TestCanvasShadowPaintsHalo(t *testing.T) {
	c := NewCanvas(100, 100)
	defer c.Close()

	c.Push()
	c.SetShadow(6, color.RGBA{A: 128})
	c.SetStroke(color.RGBA{255, 0, 0, 255}, 4)
	if err := c.StrokeLine(20, 50, 80, 50); err != nil {
		t.Fatalf("stroke line: %v", err)
	}
	c.Pop()

	// The glow extends past the stroke itself.
	if got := rgbaAt(t, c.Image(), 50, 44); got.A == 0 {
		t.Fatal("expected glow coverage above the stroke")
	}
}

func TestCanvasShadowDoesNotLeakAfterPop(t *testing.T) {
	c := NewCanvas(100, 100)
	defer c.Close()

	c.Push()
	c.SetShadow(8, color.RGBA{A: 128})
	c.Pop()

	c.SetStroke(color.RGBA{0, 136, 255, 255}, 2)
	if err := c.StrokeLine(10, 20, 90, 20); err != nil {
		t.Fatalf("stroke line: %v", err)
	}
	// Without a glow the area well above the thin stroke stays empty.
	if got := rgbaAt(t, c.Image(), 50, 10); got.A != 0 {
		t.Fatalf("shadow leaked across Pop: %v", got)
	}
}

func TestCanvasDrawBitmapValidation(t *testing.T) {
	c := NewCanvas(10, 10)
	defer c.Close()

	if err := c.DrawBitmap(nil, 0, 0, 10, 10); err == nil {
		t.Fatal("expected error for nil bitmap")
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if err := c.DrawBitmap(img, 0, 0, 0, 10); err == nil {
		t.Fatal("expected error for empty destination")
	}
	if err := c.DrawBitmap(img, 0, 0, 10, 10); err != nil {
		t.Fatalf("valid blit failed: %v", err)
	}
}

func TestCanvasCompositesFullScene(t *testing.T) {
	shot := image.NewRGBA(image.Rect(0, 0, 300, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 300; x++ {
			shot.SetRGBA(x, y, color.RGBA{40, 40, 40, 255})
		}
	}
	session := NewSession(shot)
	session.SelectTool(ToolRect)
	session.PointerDown(Point{50, 50})
	if _, ok := session.PointerUp(Point{150, 120}); !ok {
		t.Fatal("rect commit failed")
	}

	c := NewCanvas(session.Size())
	defer c.Close()
	session.Redraw(c)

	// Backing screenshot shows through away from annotations.
	if got := rgbaAt(t, c.Image(), 250, 30); got.A == 0 {
		t.Fatal("backing image missing after redraw")
	}
}
