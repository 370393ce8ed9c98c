//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const appName = "robotshot"

// Notify sends a desktop notification over the Freedesktop.org
// org.freedesktop.Notifications interface.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		appName, uint32(0), opts.IconPath, title, body,
		[]string{}, map[string]dbus.Variant{}, int32(5000))
	return call.Err
}
