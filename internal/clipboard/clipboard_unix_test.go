//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"errors"
	"sync"
	"testing"
)

func TestWriteTextWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")

	initOnce = sync.Once{}
	initErr = nil

	if err := WriteText("boot screen"); !errors.Is(err, errNoDisplay) {
		t.Fatalf("WriteText without a display = %v, want errNoDisplay", err)
	}
}
