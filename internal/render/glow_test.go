package render

import (
	"image"
	"image/color"
	"testing"
)

func TestGlowSpreadsCoverage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 20))
	src.SetRGBA(10, 10, color.RGBA{255, 0, 0, 255})

	out := Glow(src, 4, color.RGBA{A: 128})
	if out == nil {
		t.Fatal("expected a glow image")
	}
	if !out.Bounds().Eq(image.Rect(0, 0, 20, 20)) {
		t.Fatalf("glow bounds %v, want source bounds", out.Bounds())
	}
	if out.RGBAAt(10, 10).A == 0 {
		t.Fatal("no coverage at the source pixel")
	}
	if out.RGBAAt(13, 10).A == 0 {
		t.Fatal("blur did not spread coverage sideways")
	}
	if out.RGBAAt(10, 10).A >= 255 {
		t.Fatal("glow should be translucent")
	}
}

func TestGlowNoOpCases(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if Glow(nil, 3, color.RGBA{A: 128}) != nil {
		t.Fatal("nil source must yield nil")
	}
	if Glow(src, 3, color.RGBA{}) != nil {
		t.Fatal("fully transparent glow color must yield nil")
	}
}

func TestGlowZeroRadiusKeepsMask(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	src.SetRGBA(2, 2, color.RGBA{0, 0, 0, 255})
	out := Glow(src, 0, color.RGBA{A: 255})
	if out == nil {
		t.Fatal("expected a glow image")
	}
	if out.RGBAAt(2, 2).A == 0 {
		t.Fatal("coverage lost at zero radius")
	}
	if out.RGBAAt(5, 5).A != 0 {
		t.Fatal("coverage appeared where the mask was empty")
	}
}
