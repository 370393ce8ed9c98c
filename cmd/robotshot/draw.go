package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasdeeiroz/robotshot/internal/annotate"
	"github.com/lucasdeeiroz/robotshot/internal/clipboard"
	"github.com/lucasdeeiroz/robotshot/internal/export"
	"github.com/lucasdeeiroz/robotshot/internal/palette"
)

// drawCmd applies a single annotation to an image without opening a
// window, for scripted pipelines.
type drawCmd struct {
	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	colorSpec     string
	color         color.RGBA
	width         float64
	applyCrop     bool
	shape         string
	coords        []float64
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet { return d.fs }

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "input image file")
	fs.StringVar(&d.output, "output", "", "output file path (defaults to the input file)")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.StringVar(&d.colorSpec, "color", "", "stroke color name or hex value (default: the palette color for the shape)")
	fs.Float64Var(&d.width, "width", 0, "stroke width in pixels (default: scaled to the image size)")
	fs.BoolVar(&d.applyCrop, "apply-crop", false, "crop the output to the crop region instead of drawing its frame")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.shape = strings.ToLower(positionals[0])
	switch d.shape {
	case "arrow", "rect", "crop":
		d.coords, err = expectFloats(positionals[1:], 4, d.shape)
	default:
		return nil, fmt.Errorf("unsupported shape %q", d.shape)
	}
	if err != nil {
		return nil, err
	}
	if d.colorSpec != "" {
		col, err := palette.ParseColor(d.colorSpec)
		if err != nil {
			return nil, err
		}
		d.color = col
	}
	if d.fromClipboard {
		if d.output == "" {
			if d.file == "" {
				return nil, fmt.Errorf("output file is required when reading from the clipboard")
			}
			d.output = d.file
		}
	} else {
		if d.file == "" {
			return nil, fmt.Errorf("input file is required")
		}
		if d.output == "" {
			d.output = d.file
		}
	}
	if d.width < 0 {
		d.width = 0
	}
	return d, nil
}

func (d *drawCmd) element() annotate.Element {
	switch d.shape {
	case "arrow":
		return annotate.ArrowElement{
			ID: annotate.NewID(),
			X1: d.coords[0], Y1: d.coords[1],
			X2: d.coords[2], Y2: d.coords[3],
			Color: d.shapeColor(),
			Width: d.width,
		}
	case "rect":
		return annotate.RectElement{
			ID: annotate.NewID(),
			X:  d.coords[0], Y: d.coords[1],
			W: d.coords[2], H: d.coords[3],
			Color: d.shapeColor(),
			Width: d.width,
		}
	case "crop":
		return annotate.CropElement{
			ID: annotate.NewID(),
			X:  d.coords[0], Y: d.coords[1],
			W: d.coords[2], H: d.coords[3],
		}
	}
	return nil
}

// shapeColor resolves the explicit color flag, falling back on the
// active palette.
func (d *drawCmd) shapeColor() color.RGBA {
	if d.color != (color.RGBA{}) {
		return d.color
	}
	if d.root == nil || d.root.pal == nil {
		return color.RGBA{}
	}
	switch d.shape {
	case "arrow":
		return d.root.pal.Arrow
	case "rect":
		return d.root.pal.Rect
	}
	return color.RGBA{}
}

func (d *drawCmd) Run() error {
	src, err := d.loadSource()
	if err != nil {
		return err
	}
	bounds := src.Bounds()
	elem := d.element()

	var result image.Image
	if crop, ok := elem.(annotate.CropElement); ok && d.applyCrop {
		region := crop.Rect().Intersect(bounds)
		if region.Empty() {
			return fmt.Errorf("crop region %v is outside the image", crop.Rect())
		}
		out := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
		draw.Draw(out, out.Bounds(), src, region.Min, draw.Src)
		result = out
	} else {
		canvas := annotate.NewCanvas(bounds.Dx(), bounds.Dy())
		defer canvas.Close()
		annotate.Redraw(canvas, []annotate.Element{
			annotate.ImageElement{
				ID: annotate.NewID(),
				W:  float64(bounds.Dx()), H: float64(bounds.Dy()),
				Bitmap: src,
			},
			elem,
		})
		result = canvas.Image()
	}

	if err := export.SavePNG(d.output, result); err != nil {
		return err
	}
	saved := d.output
	if abs, err := filepath.Abs(d.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	d.root.notifySave(saved)

	if d.toClipboard {
		if err := export.CopyImage(result); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(d.output)
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		d.root.notifyCopy(detail)
	}
	return nil
}

func (d *drawCmd) loadSource() (image.Image, error) {
	if d.fromClipboard {
		img, err := clipboard.ReadImage()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		return img, nil
	}
	return loadImage(d.file)
}

func expectFloats(args []string, n int, shape string) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d coordinates, got %d", shape, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%s coordinate %q is not a number", shape, a)
		}
		out[i] = v
	}
	return out, nil
}

var drawFlagNames = map[string]struct{}{
	"file":           {},
	"output":         {},
	"from-clipboard": {},
	"to-clipboard":   {},
	"color":          {},
	"width":          {},
	"apply-crop":     {},
}

var drawBoolFlags = map[string]struct{}{
	"from-clipboard": {},
	"to-clipboard":   {},
	"apply-crop":     {},
}

// splitDrawArgs separates recognized flags from positional shape
// arguments so flags may appear on either side of the shape.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "" {
			positionals = append(positionals, arg)
			continue
		}
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			positionals = append(positionals, arg)
			continue
		}
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
