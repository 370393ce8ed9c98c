package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/lucasdeeiroz/robotshot/internal/annotate"
	"github.com/lucasdeeiroz/robotshot/internal/export"
)

// sessionCmd re-renders a saved annotation session, so captures can be
// re-annotated or re-exported long after the device is gone.
type sessionCmd struct {
	action    string
	file      string
	imagePath string
	output    string
	applyCrop bool
	*root
	fs *flag.FlagSet
}

func (s *sessionCmd) FlagSet() *flag.FlagSet { return s.fs }

func parseSessionCmd(args []string, r *root) (*sessionCmd, error) {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	s := &sessionCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	fs.StringVar(&s.file, "file", "", "session JSON file")
	fs.StringVar(&s.imagePath, "image", "", "screenshot to place under the annotations")
	fs.StringVar(&s.output, "output", "", "output PNG path (render only)")
	fs.BoolVar(&s.applyCrop, "apply-crop", false, "crop the render to the session's crop region")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 {
		return nil, &UsageError{of: s}
	}
	s.action = fs.Arg(0)
	switch s.action {
	case "render", "info":
	default:
		return nil, fmt.Errorf("unknown session action %q", s.action)
	}
	if s.file == "" {
		return nil, fmt.Errorf("session %s requires -file", s.action)
	}
	if s.action == "render" && s.output == "" {
		return nil, fmt.Errorf("session render requires -output")
	}
	return s, nil
}

func (s *sessionCmd) Run() error {
	f, err := os.Open(s.file)
	if err != nil {
		return err
	}
	elements, err := annotate.LoadSession(f)
	closeErr := f.Close()
	if err != nil {
		return fmt.Errorf("load session %s: %w", s.file, err)
	}
	if closeErr != nil {
		return closeErr
	}

	switch s.action {
	case "info":
		return s.runInfo(elements)
	case "render":
		return s.runRender(elements)
	}
	return nil
}

func (s *sessionCmd) runInfo(elements []annotate.Element) error {
	counts := map[annotate.Kind]int{}
	for _, e := range elements {
		counts[e.Kind()]++
	}
	fmt.Printf("%s: %d elements\n", s.file, len(elements))
	for _, kind := range []annotate.Kind{annotate.KindImage, annotate.KindArrow, annotate.KindRect, annotate.KindCrop} {
		if counts[kind] > 0 {
			fmt.Printf("  %-6s %d\n", kind, counts[kind])
		}
	}
	if crop, ok := annotate.LastCrop(elements); ok {
		fmt.Printf("  crop region %v\n", crop.Rect())
	}
	return nil
}

func (s *sessionCmd) runRender(elements []annotate.Element) error {
	var base *image.RGBA
	if s.imagePath != "" {
		img, err := loadImage(s.imagePath)
		if err != nil {
			return err
		}
		base = img
		elements = annotate.AttachBitmap(elements, img)
	}
	w, h, err := sessionBounds(elements, base)
	if err != nil {
		return err
	}

	crop, hasCrop := annotate.LastCrop(elements)
	renderList := elements
	if s.applyCrop && hasCrop {
		// The crop is cut out of the pixels, so its frame stays out of
		// the render.
		renderList = annotate.WithoutCrops(elements)
	}

	canvas := annotate.NewCanvas(w, h)
	defer canvas.Close()
	annotate.Redraw(canvas, renderList)
	var result image.Image = canvas.Image()

	if s.applyCrop && hasCrop {
		region := crop.Rect().Intersect(image.Rect(0, 0, w, h))
		if region.Empty() {
			return fmt.Errorf("crop region %v is outside the image", crop.Rect())
		}
		out := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
		draw.Draw(out, out.Bounds(), result, region.Min, draw.Src)
		result = out
	}

	if err := export.SavePNG(s.output, result); err != nil {
		return err
	}
	saved := s.output
	if abs, err := filepath.Abs(s.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	s.root.notifySave(saved)
	return nil
}

// sessionBounds derives the render size from the screenshot, falling
// back on the session's image element geometry.
func sessionBounds(elements []annotate.Element, base *image.RGBA) (int, int, error) {
	if base != nil {
		return base.Bounds().Dx(), base.Bounds().Dy(), nil
	}
	for _, e := range elements {
		if img, ok := e.(annotate.ImageElement); ok && img.W > 0 && img.H > 0 {
			return int(img.X + img.W), int(img.Y + img.H), nil
		}
	}
	return 0, 0, fmt.Errorf("session has no image geometry; pass -image")
}
