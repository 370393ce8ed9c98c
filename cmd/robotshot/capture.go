package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasdeeiroz/robotshot/internal/adb"
	"github.com/lucasdeeiroz/robotshot/internal/export"
)

const adbTimeout = 30 * time.Second

// deviceScreenshotFn is swapped out in tests.
var deviceScreenshotFn = func(ctx context.Context, client *adb.Client, serial string) (*image.RGBA, error) {
	return client.Screenshot(ctx, serial)
}

// captureCmd grabs a screenshot over adb and writes it out.
type captureCmd struct {
	output      string
	toClipboard bool
	stdout      bool
	*root
	fs *flag.FlagSet
}

func (c *captureCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseCaptureCmd(args []string, r *root) (*captureCmd, error) {
	fs := flag.NewFlagSet("capture", flag.ExitOnError)
	c := &captureCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "output file path (default: a timestamped name in save_dir)")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the screenshot to the clipboard")
	fs.BoolVar(&c.stdout, "stdout", false, "write the PNG to standard output instead of a file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

// resolveSerial picks the device to talk to, consulting the device list
// when no serial was given.
func resolveSerial(ctx context.Context, client *adb.Client, preferred string) (string, error) {
	devices, err := client.ListDevices(ctx)
	if err != nil {
		return "", err
	}
	dev, err := adb.PickDevice(devices, preferred)
	if err != nil {
		return "", err
	}
	return dev.Serial, nil
}

func (c *captureCmd) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), adbTimeout)
	defer cancel()

	client := c.root.adbClient()
	serial, err := resolveSerial(ctx, client, c.root.deviceSerial())
	if err != nil {
		return err
	}
	img, err := deviceScreenshotFn(ctx, client, serial)
	if err != nil {
		return fmt.Errorf("failed to capture screenshot from %s: %w", serial, err)
	}
	c.root.notifyCapture(serial, img)

	if c.stdout {
		return writePNGStdout(img)
	}

	path := c.outputPath()
	if err := export.SavePNG(path, img); err != nil {
		return err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", path)
	c.root.notifySave(path)

	if c.toClipboard {
		if err := export.CopyImage(img); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "copied to clipboard")
		c.root.notifyCopy(filepath.Base(path))
	}
	return nil
}

func (c *captureCmd) outputPath() string {
	if c.output != "" {
		return c.output
	}
	name := export.DefaultName("png")
	if dir := c.root.config.SaveDir; dir != "" {
		return filepath.Join(dir, name)
	}
	return name
}
