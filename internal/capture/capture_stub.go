//go:build !linux && !freebsd && !openbsd && !netbsd

package capture

import (
	"fmt"
	"image"
	"runtime"
)

// ListWindows is unavailable off X11 platforms; capture over adb instead.
func ListWindows() ([]Window, error) {
	return nil, fmt.Errorf("capture: window capture is not supported on %s", runtime.GOOS)
}

func CaptureWindow(Window) (*image.RGBA, error) {
	return nil, fmt.Errorf("capture: window capture is not supported on %s", runtime.GOOS)
}
