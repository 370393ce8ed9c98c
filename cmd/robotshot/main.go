package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/lucasdeeiroz/robotshot/internal/adb"
	"github.com/lucasdeeiroz/robotshot/internal/config"
	"github.com/lucasdeeiroz/robotshot/internal/notify"
	"github.com/lucasdeeiroz/robotshot/internal/palette"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs       *flag.FlagSet
	program  string
	notifier *notify.Notifier
	config   *config.Config

	device      string
	adbPath     string
	paletteName string
	pal         *palette.Palette

	captureAlerts bool
	saveAlerts    bool
	exportAlerts  bool
	copyAlerts    bool
}

func (r *root) Program() string { return r.program }

func (r *root) FlagSet() *flag.FlagSet { return r.fs }

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	sub := *r
	sub.fs = nil
	sub.program = program
	return &sub
}

func (r *root) adbClient() *adb.Client {
	path := r.adbPath
	if path == "" {
		path = r.config.AdbPath
	}
	if path == "" {
		path = adb.DefaultPath
	}
	return &adb.Client{Path: path}
}

// deviceSerial returns the preferred serial: flag first, then config.
func (r *root) deviceSerial() string {
	if r.device != "" {
		return r.device
	}
	return r.config.Device
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("robotshot", flag.ExitOnError),
		program:  "robotshot",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.StringVar(&r.device, "device", "", "device serial to target (default: the only connected device)")
	r.fs.StringVar(&r.adbPath, "adb", "", "path to the adb binary")
	r.fs.StringVar(&r.paletteName, "palette", "", "annotation palette (default, dark, mono or a .palette file)")
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", cfg.Notify.Capture, "show a desktop notification after capturing a screenshot")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting a report")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventCapture, r.captureAlerts)
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}

	// Palette precedence: flag, then ROBOTSHOT_PALETTE, then config.
	name := r.paletteName
	if name == "" {
		name = os.Getenv("ROBOTSHOT_PALETTE")
	}
	if name == "" {
		name = r.config.Palette
	}
	if p, ok := r.config.Palettes[name]; ok {
		r.pal = p
	} else {
		p, err := palette.NewLoader().Load(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v, using default palette\n", err)
			p = palette.Default()
		}
		r.pal = p
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "capture":
		cmd, err = parseCaptureCmd(subArgs, r.subcommand("capture"))
	case "mirror":
		cmd, err = parseMirrorCmd(subArgs, r.subcommand("mirror"))
	case "annotate":
		cmd, err = parseAnnotateCmd(subArgs, r.subcommand("annotate"))
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r.subcommand("draw"))
	case "devices":
		cmd, err = parseDevicesCmd(subArgs, r.subcommand("devices"))
	case "session":
		cmd, err = parseSessionCmd(subArgs, r.subcommand("session"))
	case "export":
		cmd, err = parseExportCmd(subArgs, r.subcommand("export"))
	case "config":
		cmd, err = parseConfigCmd(subArgs, r.subcommand("config"))
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

func (r *root) notifyCapture(detail string, img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Capture(detail, img)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyExport(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}
