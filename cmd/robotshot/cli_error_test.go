package main

import (
	"context"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/lucasdeeiroz/robotshot/internal/adb"
	"github.com/lucasdeeiroz/robotshot/internal/capture"
	"github.com/lucasdeeiroz/robotshot/internal/config"
	"github.com/lucasdeeiroz/robotshot/internal/palette"
)

func testRoot() *root {
	return &root{
		program: "robotshot",
		config:  config.New(),
		pal:     palette.Default(),
	}
}

func TestAnnotateRunMirrorError(t *testing.T) {
	original := captureMirrorFn
	sentinel := errors.New("no mirror")
	captureMirrorFn = func(string) (*image.RGBA, capture.Window, error) {
		return nil, capture.Window{}, sentinel
	}
	t.Cleanup(func() { captureMirrorFn = original })

	cmd := &annotateCmd{source: "mirror", root: testRoot()}
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "failed to capture mirror window"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
}

func TestCaptureScreenshotSeam(t *testing.T) {
	original := deviceScreenshotFn
	sentinel := errors.New("device offline")
	deviceScreenshotFn = func(context.Context, *adb.Client, string) (*image.RGBA, error) {
		return nil, sentinel
	}
	t.Cleanup(func() { deviceScreenshotFn = original })

	_, err := deviceScreenshotFn(context.Background(), &adb.Client{}, "any")
	if !errors.Is(err, sentinel) {
		t.Fatalf("seam not applied: %v", err)
	}
}

func TestParseDrawClipboardRequiresOutput(t *testing.T) {
	_, err := parseDrawCmd([]string{"-from-clipboard", "arrow", "0", "0", "10", "10"}, testRoot())
	if err == nil {
		t.Fatal("expected error")
	}
	if want := "output file is required when reading from the clipboard"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to mention %q, got %v", want, err)
	}
}

func TestParseDrawRejectsUnknownShape(t *testing.T) {
	_, err := parseDrawCmd([]string{"-file", "x.png", "circle", "0", "0", "5"}, testRoot())
	if err == nil || !strings.Contains(err.Error(), "unsupported shape") {
		t.Fatalf("expected unsupported shape error, got %v", err)
	}
}

func TestParseDrawCoordCount(t *testing.T) {
	_, err := parseDrawCmd([]string{"-file", "x.png", "rect", "1", "2", "3"}, testRoot())
	if err == nil || !strings.Contains(err.Error(), "requires 4 coordinates") {
		t.Fatalf("expected coordinate count error, got %v", err)
	}
}

func TestParseDrawNegativeCoordinates(t *testing.T) {
	cmd, err := parseDrawCmd([]string{"-file", "x.png", "arrow", "-5", "-5", "40", "60"}, testRoot())
	if err != nil {
		t.Fatalf("negative coordinates should parse as positionals: %v", err)
	}
	if cmd.coords[0] != -5 || cmd.coords[3] != 60 {
		t.Fatalf("coords = %v", cmd.coords)
	}
}

func TestParseDrawFlagsAfterShape(t *testing.T) {
	cmd, err := parseDrawCmd([]string{"rect", "1", "2", "3", "4", "-color", "#00ff00", "-width", "5"}, testRoot())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.color.G != 0xff || cmd.width != 5 {
		t.Fatalf("flags after shape ignored: color=%v width=%v", cmd.color, cmd.width)
	}
}

func TestParseSessionValidation(t *testing.T) {
	if _, err := parseSessionCmd([]string{"render"}, testRoot()); err == nil ||
		!strings.Contains(err.Error(), "requires -file") {
		t.Fatalf("expected -file error, got %v", err)
	}
	if _, err := parseSessionCmd([]string{"-file", "s.json", "render"}, testRoot()); err == nil ||
		!strings.Contains(err.Error(), "requires -output") {
		t.Fatalf("expected -output error, got %v", err)
	}
	if _, err := parseSessionCmd([]string{"-file", "s.json", "shred"}, testRoot()); err == nil ||
		!strings.Contains(err.Error(), "unknown session action") {
		t.Fatalf("expected action error, got %v", err)
	}
}

func TestParseAnnotateFileRequiresPath(t *testing.T) {
	_, err := parseAnnotateCmd([]string{"file"}, testRoot())
	if err == nil || !strings.Contains(err.Error(), "requires -file") {
		t.Fatalf("expected -file error, got %v", err)
	}
}
