package config

import (
	"os"
	"path/filepath"
)

// Loader locates and reads the configuration file.
type Loader struct {
	Version      string // build version; "dev" also checks the working directory
	OverridePath string
}

// NewLoader creates a Loader.
func NewLoader(version, overridePath string) *Loader {
	return &Loader{Version: version, OverridePath: overridePath}
}

// Load reads the configuration, returning defaults when no file exists.
func (l *Loader) Load() (*Config, error) {
	path := l.ConfigPath()
	if path == "" {
		return New(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// ConfigPath returns the first configuration file that exists, or "".
func (l *Loader) ConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		local := filepath.Join(wd, ".robotshotrc")
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}
	home, _ := os.UserHomeDir()
	for _, name := range []string{"config.rc", "robotshot.rc"} {
		path := filepath.Join(home, ".config", "robotshot", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
