package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasdeeiroz/robotshot/internal/annotate"
)

func writeTestSession(t *testing.T, path string, elements []annotate.Element) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := annotate.SaveSession(f, elements); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close session: %v", err)
	}
}

func TestSessionRenderRun(t *testing.T) {
	dir := t.TempDir()
	shot := filepath.Join(dir, "shot.png")
	sess := filepath.Join(dir, "run.json")
	out := filepath.Join(dir, "out.png")
	writeTestPNG(t, shot, 200, 100)
	writeTestSession(t, sess, []annotate.Element{
		annotate.ImageElement{ID: annotate.NewID(), W: 200, H: 100},
		annotate.ArrowElement{ID: annotate.NewID(), X1: 10, Y1: 10, X2: 90, Y2: 60,
			Color: color.RGBA{R: 0xff, A: 0xff}},
		annotate.CropElement{ID: annotate.NewID(), X: 20, Y: 10, W: 100, H: 50},
	})

	cmd, err := parseSessionCmd([]string{"-file", sess, "-image", shot, "-output", out, "render"}, testRoot())
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
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 100 {
		t.Fatalf("render bounds = %v", img.Bounds())
	}
}

func TestSessionRenderApplyCrop(t *testing.T) {
	dir := t.TempDir()
	shot := filepath.Join(dir, "shot.png")
	sess := filepath.Join(dir, "run.json")
	out := filepath.Join(dir, "out.png")
	writeTestPNG(t, shot, 200, 100)
	writeTestSession(t, sess, []annotate.Element{
		annotate.ImageElement{ID: annotate.NewID(), W: 200, H: 100},
		annotate.CropElement{ID: annotate.NewID(), X: 20, Y: 10, W: 100, H: 50},
	})

	cmd, err := parseSessionCmd([]string{"-file", sess, "-image", shot, "-output", out, "-apply-crop", "render"}, testRoot())
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
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
		t.Fatalf("cropped bounds = %v, want 100x50", img.Bounds())
	}
	// Cutting the crop out of the pixels must not paint its frame first.
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if g > r+0x2800 && g > bl+0x2800 {
				t.Fatalf("crop frame color leaked into the export at (%d,%d)", x, y)
			}
		}
	}
}

func TestSessionRenderWithoutImageUsesGeometry(t *testing.T) {
	dir := t.TempDir()
	sess := filepath.Join(dir, "run.json")
	out := filepath.Join(dir, "out.png")
	writeTestSession(t, sess, []annotate.Element{
		annotate.ImageElement{ID: annotate.NewID(), W: 64, H: 32},
		annotate.RectElement{ID: annotate.NewID(), X: 4, Y: 4, W: 20, H: 10,
			Color: color.RGBA{B: 0xff, A: 0xff}},
	})

	cmd, err := parseSessionCmd([]string{"-file", sess, "-output", out, "render"}, testRoot())
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
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 32 {
		t.Fatalf("render bounds = %v, want 64x32", img.Bounds())
	}
}
