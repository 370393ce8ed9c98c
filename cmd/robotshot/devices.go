package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
)

// devicesCmd lists the devices adb can see.
type devicesCmd struct {
	*root
	fs *flag.FlagSet
}

func (d *devicesCmd) FlagSet() *flag.FlagSet { return d.fs }

func parseDevicesCmd(args []string, r *root) (*devicesCmd, error) {
	fs := flag.NewFlagSet("devices", flag.ExitOnError)
	d := &devicesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *devicesCmd) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), adbTimeout)
	defer cancel()

	devices, err := d.root.adbClient().ListDevices(ctx)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		fmt.Fprintln(os.Stderr, "no devices found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SERIAL\tSTATE\tMODEL\tPRODUCT")
	for _, dev := range devices {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", dev.Serial, dev.State, dev.Model, dev.Product)
	}
	return w.Flush()
}
