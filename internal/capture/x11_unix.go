//go:build linux || freebsd || openbsd || netbsd

package capture

import (
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// ListWindows enumerates top-level windows in stacking order, bottom to
// top, as reported by the window manager.
func ListWindows() ([]Window, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("capture: connect to X server: %w", err)
	}
	defer conn.Close()
	return listWindows(conn)
}

// CaptureWindow grabs the current contents of win as an RGBA image.
func CaptureWindow(win Window) (*image.RGBA, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("capture: connect to X server: %w", err)
	}
	defer conn.Close()

	drawable := xproto.Drawable(win.ID)
	geom, err := xproto.GetGeometry(conn, drawable).Reply()
	if err != nil {
		return nil, fmt.Errorf("capture: window 0x%x geometry: %w", win.ID, err)
	}
	reply, err := xproto.GetImage(conn, xproto.ImageFormatZPixmap, drawable,
		0, 0, geom.Width, geom.Height, 0xffffffff).Reply()
	if err != nil {
		return nil, fmt.Errorf("capture: window 0x%x contents: %w", win.ID, err)
	}
	setup := xproto.Setup(conn)
	return zPixmapToRGBA(reply.Data, int(geom.Width), int(geom.Height), reply.Depth, setup.PixmapFormats)
}

func listWindows(conn *xgb.Conn) ([]Window, error) {
	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root

	ids, err := clientList(conn, root)
	if err != nil {
		return nil, err
	}
	active := activeWindowID(conn, root)

	windows := make([]Window, 0, len(ids))
	for _, id := range ids {
		rect, err := windowRect(conn, root, id)
		if err != nil {
			continue
		}
		windows = append(windows, Window{
			ID:     uint32(id),
			Title:  windowTitle(conn, id),
			Class:  windowClass(conn, id),
			Rect:   rect,
			Active: id == active,
		})
	}
	return windows, nil
}

func clientList(conn *xgb.Conn, root xproto.Window) ([]xproto.Window, error) {
	for _, name := range []string{"_NET_CLIENT_LIST_STACKING", "_NET_CLIENT_LIST"} {
		atom, err := internAtom(conn, name)
		if err != nil {
			continue
		}
		reply, err := xproto.GetProperty(conn, false, root, atom,
			xproto.AtomWindow, 0, 1<<20).Reply()
		if err != nil || len(reply.Value) == 0 {
			continue
		}
		ids := make([]xproto.Window, 0, len(reply.Value)/4)
		for i := 0; i+4 <= len(reply.Value); i += 4 {
			ids = append(ids, xproto.Window(xgb.Get32(reply.Value[i:])))
		}
		return ids, nil
	}
	return nil, fmt.Errorf("capture: window manager does not expose a client list")
}

func activeWindowID(conn *xgb.Conn, root xproto.Window) xproto.Window {
	atom, err := internAtom(conn, "_NET_ACTIVE_WINDOW")
	if err != nil {
		return 0
	}
	reply, err := xproto.GetProperty(conn, false, root, atom,
		xproto.AtomWindow, 0, 1).Reply()
	if err != nil || len(reply.Value) < 4 {
		return 0
	}
	return xproto.Window(xgb.Get32(reply.Value))
}

func windowRect(conn *xgb.Conn, root, win xproto.Window) (image.Rectangle, error) {
	geom, err := xproto.GetGeometry(conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	// Geometry is relative to the parent; translate to root coordinates.
	trans, err := xproto.TranslateCoordinates(conn, win, root, 0, 0).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	x, y := int(trans.DstX), int(trans.DstY)
	return image.Rect(x, y, x+int(geom.Width), y+int(geom.Height)), nil
}

func windowTitle(conn *xgb.Conn, win xproto.Window) string {
	if atom, err := internAtom(conn, "_NET_WM_NAME"); err == nil {
		if utf8, err := internAtom(conn, "UTF8_STRING"); err == nil {
			if s := stringProperty(conn, win, atom, utf8); s != "" {
				return s
			}
		}
	}
	return stringProperty(conn, win, xproto.AtomWmName, xproto.AtomString)
}

// windowClass returns the class portion of WM_CLASS, the second of two
// NUL-terminated strings.
func windowClass(conn *xgb.Conn, win xproto.Window) string {
	reply, err := xproto.GetProperty(conn, false, win, xproto.AtomWmClass,
		xproto.AtomString, 0, 1<<16).Reply()
	if err != nil || len(reply.Value) == 0 {
		return ""
	}
	var parts []string
	start := 0
	for i, b := range reply.Value {
		if b == 0 {
			parts = append(parts, string(reply.Value[start:i]))
			start = i + 1
		}
	}
	if len(parts) >= 2 {
		return parts[1]
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return ""
}

func stringProperty(conn *xgb.Conn, win xproto.Window, prop, typ xproto.Atom) string {
	reply, err := xproto.GetProperty(conn, false, win, prop, typ, 0, 1<<16).Reply()
	if err != nil {
		return ""
	}
	return string(reply.Value)
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	if reply.Atom == xproto.AtomNone {
		return 0, fmt.Errorf("capture: atom %q not present", name)
	}
	return reply.Atom, nil
}
