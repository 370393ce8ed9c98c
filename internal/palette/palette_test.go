package palette

import (
	"image/color"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{R: 0xff, A: 0xff}},
		{"#0088ff", color.RGBA{G: 0x88, B: 0xff, A: 0xff}},
		{"#4ade80", color.RGBA{R: 0x4a, G: 0xde, B: 0x80, A: 0xff}},
		{"#ffffff80", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x80}},
		{"#f00", color.RGBA{R: 0xff, A: 0xff}},
		{"red", color.RGBA{R: 0xff, A: 0xff}},
		{"Deepskyblue", color.RGBA{G: 0xbf, B: 0xff, A: 0xff}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "notacolor", "#12345", "#gggggg"} {
		if _, err := ParseColor(in); err == nil {
			t.Fatalf("ParseColor(%q): expected error", in)
		}
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{
		{R: 0xff, A: 0xff},
		{R: 0x4a, G: 0xde, B: 0x80, A: 0xff},
		{R: 0x11, G: 0x22, B: 0x33, A: 0x44},
	} {
		got, err := ParseColor(FormatColor(c))
		if err != nil {
			t.Fatalf("round trip %v: %v", c, err)
		}
		if got != c {
			t.Fatalf("round trip %v = %v", c, got)
		}
	}
}

func TestParsePaletteFile(t *testing.T) {
	src := `# team colors
Name: team
Arrow: #ff8800
Rect: deepskyblue
Unknown: #123456
`
	p, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "team" {
		t.Fatalf("name = %q", p.Name)
	}
	if p.Arrow != (color.RGBA{R: 0xff, G: 0x88, A: 0xff}) {
		t.Fatalf("arrow = %v", p.Arrow)
	}
	if p.Rect != (color.RGBA{G: 0xbf, B: 0xff, A: 0xff}) {
		t.Fatalf("rect = %v", p.Rect)
	}
}

func TestParsePaletteBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Arrow: #zz0000\n")); err == nil {
		t.Fatal("expected error for malformed color")
	}
}

func TestBuiltin(t *testing.T) {
	if p := Builtin(""); p == nil || p.Name != "default" {
		t.Fatalf("empty name should yield the default palette, got %+v", p)
	}
	if Builtin("dark") == nil || Builtin("mono") == nil {
		t.Fatal("expected dark and mono built-ins")
	}
	if Builtin("nope") != nil {
		t.Fatal("unknown name should yield nil")
	}
}
