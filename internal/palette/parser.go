package palette

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads a palette definition, one "key: color" pair per line.
// Missing keys keep their defaults and unknown keys are ignored so old
// builds can read newer files.
func Parse(r io.Reader) (*Palette, error) {
	p := Default()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.EqualFold(key, "name") {
			p.Name = value
			continue
		}
		if err := p.Set(key, value); err != nil {
			return nil, err
		}
	}
	return p, scanner.Err()
}

// Set assigns a color to the named tool. Unknown keys are ignored.
func (p *Palette) Set(key, value string) error {
	col, err := ParseColor(value)
	if err != nil {
		return fmt.Errorf("palette key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "arrow":
		p.Arrow = col
	case "rect", "rectangle":
		p.Rect = col
	}
	return nil
}
