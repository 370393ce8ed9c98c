package adb

import (
	"strings"
	"testing"
)

const devicesOutput = `List of devices attached
emulator-5554          device product:sdk_gphone64_x86_64 model:sdk_gphone64_x86_64 device:emu64xa transport_id:1
RFCN20ABCDE            device usb:1-1 product:beyond1ltexx model:SM_G973F device:beyond1 transport_id:2
192.168.0.12:5555      offline transport_id:3

`

func TestParseDevices(t *testing.T) {
	devices := parseDevices(devicesOutput)
	if len(devices) != 3 {
		t.Fatalf("expected 3 devices, got %d: %+v", len(devices), devices)
	}
	if devices[0].Serial != "emulator-5554" || !devices[0].Online() {
		t.Fatalf("unexpected first device %+v", devices[0])
	}
	if devices[1].Model != "SM_G973F" || devices[1].Product != "beyond1ltexx" {
		t.Fatalf("metadata not parsed: %+v", devices[1])
	}
	if devices[2].State != "offline" || devices[2].Online() {
		t.Fatalf("offline state lost: %+v", devices[2])
	}
}

func TestParseDevicesEmpty(t *testing.T) {
	if got := parseDevices("List of devices attached\n\n"); len(got) != 0 {
		t.Fatalf("expected none, got %+v", got)
	}
}

func TestPickDevice(t *testing.T) {
	devices := parseDevices(devicesOutput)

	d, err := PickDevice(devices, "RFCN20ABCDE")
	if err != nil {
		t.Fatalf("explicit serial: %v", err)
	}
	if d.Serial != "RFCN20ABCDE" {
		t.Fatalf("picked %+v", d)
	}

	if _, err := PickDevice(devices, "missing"); err == nil {
		t.Fatal("expected error for unknown serial")
	}
	if _, err := PickDevice(devices, "192.168.0.12:5555"); err == nil {
		t.Fatal("expected error for offline device")
	}
	// Two online devices and no selector is ambiguous; the error names
	// the flag that disambiguates.
	if _, err := PickDevice(devices, ""); err == nil {
		t.Fatal("expected ambiguity error")
	} else if !strings.Contains(err.Error(), "-device") {
		t.Fatalf("ambiguity error %q does not mention -device", err)
	}

	single := []Device{{Serial: "only", State: "device"}}
	d, err = PickDevice(single, "")
	if err != nil || d.Serial != "only" {
		t.Fatalf("single device pick: %v %+v", err, d)
	}
}
