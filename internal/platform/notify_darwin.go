//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify posts to the macOS Notification Center via osascript.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	return exec.Command("osascript", "-e", script).Run()
}
