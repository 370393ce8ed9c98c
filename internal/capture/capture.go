// Package capture grabs pixels from a device mirror window on the local
// display. It is used when a screenshot over adb is not possible or when
// the user wants exactly what the mirror (for example scrcpy) is showing.
package capture

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

// ErrNoWindow is returned when no window matches the requested selector.
var ErrNoWindow = errors.New("capture: no matching window")

// Window describes a top-level window on the local display.
type Window struct {
	ID     uint32
	Title  string
	Class  string
	Rect   image.Rectangle
	Active bool
}

func (w Window) String() string {
	return fmt.Sprintf("0x%08x %dx%d %q", w.ID, w.Rect.Dx(), w.Rect.Dy(), w.Title)
}

// mirrorClasses are window classes used by known device mirrors. An empty
// selector picks the first window whose class matches one of these.
var mirrorClasses = []string{"scrcpy", "qtscrcpy", "guiscrcpy"}

// SelectWindow resolves a selector against the window list. Supported
// selectors:
//
//	""            first known mirror window, else the active window
//	"active"      the currently focused window
//	"id:0x..."    a specific window by X id
//	"index:N"     the Nth window in stacking order
//	anything else case-insensitive substring of the title or class
func SelectWindow(windows []Window, selector string) (Window, error) {
	if len(windows) == 0 {
		return Window{}, ErrNoWindow
	}
	switch {
	case selector == "":
		for _, w := range windows {
			if isMirrorClass(w.Class) {
				return w, nil
			}
		}
		return activeWindow(windows)
	case selector == "active":
		return activeWindow(windows)
	case strings.HasPrefix(selector, "id:"):
		id, err := parseWindowID(strings.TrimPrefix(selector, "id:"))
		if err != nil {
			return Window{}, err
		}
		for _, w := range windows {
			if w.ID == id {
				return w, nil
			}
		}
		return Window{}, fmt.Errorf("%w: id 0x%x", ErrNoWindow, id)
	case strings.HasPrefix(selector, "index:"):
		n, err := strconv.Atoi(strings.TrimPrefix(selector, "index:"))
		if err != nil || n < 0 {
			return Window{}, fmt.Errorf("capture: bad window index %q", selector)
		}
		if n >= len(windows) {
			return Window{}, fmt.Errorf("%w: index %d of %d", ErrNoWindow, n, len(windows))
		}
		return windows[n], nil
	default:
		needle := strings.ToLower(selector)
		for _, w := range windows {
			if strings.Contains(strings.ToLower(w.Title), needle) ||
				strings.Contains(strings.ToLower(w.Class), needle) {
				return w, nil
			}
		}
		return Window{}, fmt.Errorf("%w: title %q", ErrNoWindow, selector)
	}
}

func activeWindow(windows []Window) (Window, error) {
	for _, w := range windows {
		if w.Active {
			return w, nil
		}
	}
	return Window{}, fmt.Errorf("%w: no active window", ErrNoWindow)
}

func isMirrorClass(class string) bool {
	c := strings.ToLower(class)
	for _, m := range mirrorClasses {
		if strings.Contains(c, m) {
			return true
		}
	}
	return false
}

func parseWindowID(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("capture: bad window id %q", s)
	}
	return uint32(v), nil
}

// Mirror captures the contents of the window matching selector. The empty
// selector prefers a known device-mirror window.
func Mirror(selector string) (*image.RGBA, Window, error) {
	windows, err := ListWindows()
	if err != nil {
		return nil, Window{}, err
	}
	win, err := SelectWindow(windows, selector)
	if err != nil {
		return nil, Window{}, err
	}
	img, err := CaptureWindow(win)
	if err != nil {
		return nil, win, err
	}
	return img, win, nil
}
