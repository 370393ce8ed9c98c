package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/lucasdeeiroz/robotshot/internal/export"
)

// exportCmd bundles annotated screenshots into a PDF report.
type exportCmd struct {
	output string
	inputs []string
	*root
	fs *flag.FlagSet
}

func (e *exportCmd) FlagSet() *flag.FlagSet { return e.fs }

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	e := &exportCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.output, "output", "", "output PDF path (default: a timestamped name in save_dir)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	e.inputs = fs.Args()
	if len(e.inputs) == 0 {
		return nil, &UsageError{of: e}
	}
	if e.output == "" {
		e.output = export.DefaultName("pdf")
		if dir := r.config.SaveDir; dir != "" {
			e.output = filepath.Join(dir, e.output)
		}
	}
	return e, nil
}

func (e *exportCmd) Run() error {
	pages := make([]image.Image, 0, len(e.inputs))
	for _, path := range e.inputs {
		img, err := loadImage(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		pages = append(pages, img)
	}
	if err := export.SavePDF(e.output, pages); err != nil {
		return err
	}
	saved := e.output
	if abs, err := filepath.Abs(e.output); err == nil {
		saved = abs
	}
	fmt.Fprintf(os.Stderr, "exported %s (%d pages)\n", saved, len(pages))
	e.root.notifyExport(saved)
	return nil
}
