package main

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/lucasdeeiroz/robotshot/internal/export"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
	if err := export.SavePNG(path, img); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestDrawRectRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeTestPNG(t, in, 120, 80)

	cmd, err := parseDrawCmd([]string{
		"-file", in, "-output", out, "-color", "#ff0000", "-width", "3",
		"rect", "20", "20", "60", "30",
	}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	img, err := loadImage(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if img.Bounds().Dx() != 120 || img.Bounds().Dy() != 80 {
		t.Fatalf("output bounds = %v", img.Bounds())
	}
	// The rectangle edge should carry red somewhere along the top border.
	found := false
	for x := 20; x <= 80 && !found; x++ {
		r, _, _, _ := img.At(x, 20).RGBA()
		if r > 0x8000 {
			found = true
		}
	}
	if !found {
		t.Fatal("no red stroke found along the rectangle edge")
	}
}

func TestDrawApplyCropRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeTestPNG(t, in, 100, 100)

	cmd, err := parseDrawCmd([]string{
		"-file", in, "-output", out, "-apply-crop",
		"crop", "10", "20", "50", "40",
	}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	img, err := loadImage(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 40 {
		t.Fatalf("cropped bounds = %v, want 50x40", img.Bounds())
	}
}

func TestDrawCropOutsideImage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	writeTestPNG(t, in, 40, 40)

	cmd, err := parseDrawCmd([]string{
		"-file", in, "-output", filepath.Join(dir, "out.png"), "-apply-crop",
		"crop", "100", "100", "50", "50",
	}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cmd.Run(); err == nil {
		t.Fatal("expected error for crop outside the image")
	}
}

func TestDrawDefaultColorsFromPalette(t *testing.T) {
	cmd, err := parseDrawCmd([]string{"-file", "x.png", "arrow", "0", "0", "10", "10"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := cmd.shapeColor(); got != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("arrow palette color = %v", got)
	}
}
