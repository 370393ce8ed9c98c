package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasdeeiroz/robotshot/internal/capture"
	"github.com/lucasdeeiroz/robotshot/internal/export"
)

// captureMirrorFn is swapped out in tests.
var captureMirrorFn = capture.Mirror

// mirrorCmd grabs the device mirror window shown on the local display.
type mirrorCmd struct {
	window      string
	output      string
	list        bool
	toClipboard bool
	stdout      bool
	*root
	fs *flag.FlagSet
}

func (m *mirrorCmd) FlagSet() *flag.FlagSet { return m.fs }

func parseMirrorCmd(args []string, r *root) (*mirrorCmd, error) {
	fs := flag.NewFlagSet("mirror", flag.ExitOnError)
	m := &mirrorCmd{root: r, fs: fs}
	fs.Usage = usageFunc(m)
	fs.StringVar(&m.window, "window", "", "window selector: active, id:0x..., index:N or a title substring (default: a known mirror window)")
	fs.StringVar(&m.output, "output", "", "output file path (default: a timestamped name in save_dir)")
	fs.BoolVar(&m.list, "list", false, "list candidate windows and exit")
	fs.BoolVar(&m.toClipboard, "to-clipboard", false, "copy the capture to the clipboard")
	fs.BoolVar(&m.stdout, "stdout", false, "write the PNG to standard output instead of a file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if m.window == "" {
		m.window = r.config.Window
	}
	return m, nil
}

func (m *mirrorCmd) Run() error {
	if m.list {
		return m.runList()
	}
	img, win, err := captureMirrorFn(m.window)
	if err != nil {
		return fmt.Errorf("failed to capture mirror window: %w", err)
	}
	m.root.notifyCapture(win.Title, img)

	if m.stdout {
		return writePNGStdout(img)
	}

	path := m.outputPath()
	if err := export.SavePNG(path, img); err != nil {
		return err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", path)
	m.root.notifySave(path)

	if m.toClipboard {
		if err := export.CopyImage(img); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "copied to clipboard")
		m.root.notifyCopy(filepath.Base(path))
	}
	return nil
}

func (m *mirrorCmd) runList() error {
	windows, err := capture.ListWindows()
	if err != nil {
		return err
	}
	for i, w := range windows {
		marker := " "
		if w.Active {
			marker = "*"
		}
		fmt.Printf("%s %3d  %s  [%s]\n", marker, i, w, w.Class)
	}
	return nil
}

func (m *mirrorCmd) outputPath() string {
	if m.output != "" {
		return m.output
	}
	name := export.DefaultName("png")
	if dir := m.root.config.SaveDir; dir != "" {
		return filepath.Join(dir, name)
	}
	return name
}
