package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/lucasdeeiroz/robotshot/internal/annotate"
	"github.com/lucasdeeiroz/robotshot/internal/editor"
	"github.com/lucasdeeiroz/robotshot/internal/export"
)

// annotateCmd opens the interactive editor on a fresh capture or a file.
type annotateCmd struct {
	source      string
	file        string
	output      string
	window      string
	sessionPath string
	*root
	fs *flag.FlagSet
}

func (a *annotateCmd) FlagSet() *flag.FlagSet { return a.fs }

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	a := &annotateCmd{root: r, fs: fs}
	fs.Usage = usageFunc(a)
	fs.StringVar(&a.file, "file", "", "annotate an existing PNG instead of capturing")
	fs.StringVar(&a.output, "output", "", "output file path for the save shortcut")
	fs.StringVar(&a.window, "window", "", "mirror window selector (mirror source only)")
	fs.StringVar(&a.sessionPath, "save-session", "", "write the element list as JSON when the window closes")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	a.source = "device"
	if fs.NArg() > 0 {
		a.source = fs.Arg(0)
	}
	if a.file != "" {
		a.source = "file"
	}
	switch a.source {
	case "device", "mirror", "file":
	default:
		return nil, &UsageError{of: a}
	}
	if a.source == "file" && a.file == "" {
		return nil, fmt.Errorf("annotate file requires -file")
	}
	if a.window == "" {
		a.window = r.config.Window
	}
	return a, nil
}

func (a *annotateCmd) Run() error {
	img, detail, err := a.loadSource()
	if err != nil {
		return err
	}
	a.root.notifyCapture(detail, img)

	output := a.output
	if output == "" {
		output = export.DefaultName("png")
		if dir := a.root.config.SaveDir; dir != "" {
			output = filepath.Join(dir, output)
		}
	}

	ed := editor.New(img,
		editor.WithOutput(output),
		editor.WithPalette(a.root.pal),
		editor.WithSaveHandler(func(img image.Image, path string) {
			if err := export.SavePNG(path, img); err != nil {
				log.Printf("save: %v", err)
				return
			}
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			log.Printf("saved %s", path)
			a.root.notifySave(path)
		}),
		editor.WithCopyHandler(func(img image.Image) {
			if err := export.CopyImage(img); err != nil {
				log.Printf("copy: %v", err)
				return
			}
			log.Print("copied to clipboard")
			a.root.notifyCopy(filepath.Base(output))
		}),
	)
	ed.Run()

	if a.sessionPath != "" {
		if err := a.saveSession(ed); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		fmt.Fprintf(os.Stderr, "session written to %s\n", a.sessionPath)
	}
	return nil
}

func (a *annotateCmd) saveSession(ed *editor.Editor) error {
	f, err := os.Create(a.sessionPath)
	if err != nil {
		return err
	}
	if err := annotate.SaveSession(f, ed.Session().Committed()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (a *annotateCmd) loadSource() (*image.RGBA, string, error) {
	switch a.source {
	case "device":
		ctx, cancel := context.WithTimeout(context.Background(), adbTimeout)
		defer cancel()
		client := a.root.adbClient()
		serial, err := resolveSerial(ctx, client, a.root.deviceSerial())
		if err != nil {
			return nil, "", err
		}
		img, err := deviceScreenshotFn(ctx, client, serial)
		if err != nil {
			return nil, "", fmt.Errorf("failed to capture screenshot from %s: %w", serial, err)
		}
		return img, serial, nil
	case "mirror":
		img, win, err := captureMirrorFn(a.window)
		if err != nil {
			return nil, "", fmt.Errorf("failed to capture mirror window: %w", err)
		}
		return img, win.Title, nil
	case "file":
		img, err := loadImage(a.file)
		if err != nil {
			return nil, "", err
		}
		return img, filepath.Base(a.file), nil
	}
	return nil, "", &UsageError{of: a}
}
