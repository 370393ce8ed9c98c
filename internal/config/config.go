// Package config loads and serializes the robotshot rc file.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasdeeiroz/robotshot/internal/palette"
)

// Notify toggles notifications per event.
type Notify struct {
	Capture bool
	Save    bool
	Export  bool
	Copy    bool
}

// Config is the application configuration.
type Config struct {
	Palette  string // active palette name, empty means default
	SaveDir  string // where annotated screenshots are written
	AdbPath  string // adb binary, empty means "adb" on PATH
	Device   string // preferred device serial
	Window   string // mirror window selector for the mirror command
	Notify   Notify
	Palettes map[string]*palette.Palette
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		Palettes: make(map[string]*palette.Palette),
	}
}

// ActivePalette resolves the configured palette, falling back on the
// default for unknown names.
func (c *Config) ActivePalette() *palette.Palette {
	if p, ok := c.Palettes[c.Palette]; ok {
		return p
	}
	if p := palette.Builtin(c.Palette); p != nil {
		return p
	}
	return palette.Default()
}

// String renders the configuration in rc format, parseable by Parse.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Palette != "" {
		fmt.Fprintf(&sb, "palette = %s\n", c.Palette)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.AdbPath != "" {
		fmt.Fprintf(&sb, "adb_path = %s\n", c.AdbPath)
	}
	if c.Device != "" {
		fmt.Fprintf(&sb, "device = %s\n", c.Device)
	}
	if c.Window != "" {
		fmt.Fprintf(&sb, "window = %s\n", c.Window)
	}
	sb.WriteString("\n[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	names := make([]string, 0, len(c.Palettes))
	for name := range c.Palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		p := c.Palettes[name]
		fmt.Fprintf(&sb, "\n[palette.%s]\n", name)
		fmt.Fprintf(&sb, "Arrow: %s\n", palette.FormatColor(p.Arrow))
		fmt.Fprintf(&sb, "Rect: %s\n", palette.FormatColor(p.Rect))
	}
	return sb.String()
}
