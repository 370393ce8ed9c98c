package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lucasdeeiroz/robotshot/internal/palette"
)

// Parse reads an rc-format configuration. Keys accept either "key = value"
// or "key: value"; sections are bracketed. Unknown keys are ignored.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *palette.Palette

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			current = nil
			if name, ok := strings.CutPrefix(section, "palette."); ok {
				current = palette.Default()
				current.Name = name
				cfg.Palettes[name] = current
			}
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		switch {
		case current != nil:
			if err := current.Set(key, value); err != nil {
				return nil, fmt.Errorf("section [%s]: %w", section, err)
			}
		case section == "notify":
			if err := setNotifyField(&cfg.Notify, key, value); err != nil {
				return nil, fmt.Errorf("section [notify]: %w", err)
			}
		case section == "":
			setRootField(cfg, key, value)
		}
	}
	return cfg, scanner.Err()
}

func splitKeyValue(line string) (key, value string, ok bool) {
	// Prefer "=" so values containing ":" (Windows paths) survive.
	sep := strings.Index(line, "=")
	if sep < 0 {
		sep = strings.Index(line, ":")
	}
	if sep < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:sep])
	value = strings.TrimSpace(line[sep+1:])
	if strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2 {
		value = value[1 : len(value)-1]
	}
	return key, value, key != ""
}

func setRootField(cfg *Config, key, value string) {
	switch strings.ToLower(key) {
	case "palette":
		cfg.Palette = value
	case "save_dir":
		cfg.SaveDir = value
	case "adb_path":
		cfg.AdbPath = value
	case "device":
		cfg.Device = value
	case "window":
		cfg.Window = value
	}
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("key %s wants a boolean: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "capture":
		n.Capture = b
	case "save":
		n.Save = b
	case "export":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}
