package adb

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os/exec"
	"strings"
)

// DefaultPath is used when no adb binary is configured.
const DefaultPath = "adb"

// Device describes one entry of `adb devices -l`.
type Device struct {
	Serial  string
	State   string
	Model   string
	Product string
}

// Online reports whether the device can serve commands.
func (d Device) Online() bool { return d.State == "device" }

// Client shells out to the adb binary. The zero value uses DefaultPath.
type Client struct {
	Path string
}

func (c *Client) path() string {
	if c != nil && c.Path != "" {
		return c.Path
	}
	return DefaultPath
}

// ListDevices returns the devices currently known to the adb server.
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	out, err := exec.CommandContext(ctx, c.path(), "devices", "-l").Output()
	if err != nil {
		return nil, fmt.Errorf("adb devices: %w", err)
	}
	return parseDevices(string(out)), nil
}

// parseDevices reads `adb devices -l` output. The first line is the banner;
// each following non-empty line is "serial state key:value...".
func parseDevices(out string) []Device {
	var devices []Device
	for i, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if i == 0 || line == "" || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		d := Device{Serial: fields[0], State: fields[1]}
		for _, kv := range fields[2:] {
			key, val, ok := strings.Cut(kv, ":")
			if !ok {
				continue
			}
			switch key {
			case "model":
				d.Model = val
			case "product":
				d.Product = val
			}
		}
		devices = append(devices, d)
	}
	return devices
}

// PickDevice resolves a serial selector against the attached devices. An
// empty selector picks the only online device and fails when several are
// attached, mirroring adb's own behaviour.
func PickDevice(devices []Device, serial string) (Device, error) {
	if serial != "" {
		for _, d := range devices {
			if d.Serial == serial {
				if !d.Online() {
					return Device{}, fmt.Errorf("device %s is %s", d.Serial, d.State)
				}
				return d, nil
			}
		}
		return Device{}, fmt.Errorf("device %q not found", serial)
	}
	var online []Device
	for _, d := range devices {
		if d.Online() {
			online = append(online, d)
		}
	}
	switch len(online) {
	case 0:
		return Device{}, fmt.Errorf("no online devices attached")
	case 1:
		return online[0], nil
	default:
		return Device{}, fmt.Errorf("%d devices attached, pick one with -device", len(online))
	}
}

// Screenshot captures the device screen via `adb exec-out screencap -p` and
// decodes the PNG stream.
func (c *Client) Screenshot(ctx context.Context, serial string) (*image.RGBA, error) {
	args := []string{}
	if serial != "" {
		args = append(args, "-s", serial)
	}
	args = append(args, "exec-out", "screencap", "-p")

	cmd := exec.CommandContext(ctx, c.path(), args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("adb screencap: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("adb screencap: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("adb screencap: empty capture")
	}

	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("decode screencap: %w", err)
	}
	rgba := image.NewRGBA(decoded.Bounds())
	draw.Draw(rgba, rgba.Bounds(), decoded, decoded.Bounds().Min, draw.Src)
	return rgba, nil
}
