package capture

import (
	"errors"
	"image"
	"testing"
)

func testWindows() []Window {
	return []Window{
		{ID: 0x100, Title: "Terminal", Class: "xterm", Rect: image.Rect(0, 0, 800, 600)},
		{ID: 0x200, Title: "Pixel 8 Pro", Class: "scrcpy", Rect: image.Rect(100, 50, 550, 1050)},
		{ID: 0x300, Title: "Editor", Class: "code", Rect: image.Rect(0, 0, 1920, 1080), Active: true},
	}
}

func TestSelectWindow(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		wantID   uint32
	}{
		{"empty prefers mirror", "", 0x200},
		{"active", "active", 0x300},
		{"by id", "id:0x200", 0x200},
		{"by id without prefix", "id:300", 0x300},
		{"by index", "index:0", 0x100},
		{"title substring", "pixel", 0x200},
		{"class substring", "xterm", 0x100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win, err := SelectWindow(testWindows(), tt.selector)
			if err != nil {
				t.Fatalf("SelectWindow(%q): %v", tt.selector, err)
			}
			if win.ID != tt.wantID {
				t.Fatalf("SelectWindow(%q) = 0x%x, want 0x%x", tt.selector, win.ID, tt.wantID)
			}
		})
	}
}

func TestSelectWindowErrors(t *testing.T) {
	tests := []struct {
		name     string
		windows  []Window
		selector string
	}{
		{"no windows", nil, ""},
		{"no match", testWindows(), "browser"},
		{"bad id", testWindows(), "id:zz"},
		{"unknown id", testWindows(), "id:0xdead"},
		{"index out of range", testWindows(), "index:9"},
		{"negative index", testWindows(), "index:-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SelectWindow(tt.windows, tt.selector); err == nil {
				t.Fatalf("SelectWindow(%q): expected error", tt.selector)
			}
		})
	}
}

func TestSelectWindowEmptyFallsBackToActive(t *testing.T) {
	windows := []Window{
		{ID: 0x100, Title: "Terminal", Class: "xterm"},
		{ID: 0x300, Title: "Editor", Class: "code", Active: true},
	}
	win, err := SelectWindow(windows, "")
	if err != nil {
		t.Fatalf("SelectWindow: %v", err)
	}
	if win.ID != 0x300 {
		t.Fatalf("SelectWindow fell back to 0x%x, want the active window", win.ID)
	}
}

func TestSelectWindowNoActive(t *testing.T) {
	windows := []Window{{ID: 0x100, Title: "Terminal", Class: "xterm"}}
	_, err := SelectWindow(windows, "active")
	if !errors.Is(err, ErrNoWindow) {
		t.Fatalf("SelectWindow(active) = %v, want ErrNoWindow", err)
	}
}
