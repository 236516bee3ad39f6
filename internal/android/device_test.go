package android

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAdbDevices(t *testing.T) {
	out := `List of devices attached
* daemon not running; starting now at tcp:5037
* daemon started successfully
emulator-5554	device
0a388e93	device usb:1-1 product:razor model:Nexus_7 device:flo
ce0717171c	unauthorized
192.168.1.20:5555	offline

`
	serials := parseAdbDevices(out)
	assert.Equal(t, []string{"emulator-5554", "0a388e93"}, serials)
}

func TestParseAdbDevicesEmpty(t *testing.T) {
	assert.Empty(t, parseAdbDevices("List of devices attached\n\n"))
}

func TestDeviceString(t *testing.T) {
	d := Device{Serial: "0a388e93", Name: "razor", Model: "Nexus_7"}
	assert.Equal(t, "razor (Nexus_7)", d.String())

	d = Device{Serial: "emulator-5554", Name: "sdk_gphone64_arm64", Model: "sdk_gphone64_arm64"}
	assert.Equal(t, "sdk_gphone64_arm64", d.String())
}
