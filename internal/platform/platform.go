// Package platform holds the OS-specific notification backends.
package platform

// Options controls presentation of a notification.
type Options struct {
	// IconPath, when non-empty, names an image file to display alongside
	// the notification where the platform supports one.
	IconPath string
}
