package apple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimctlList(t *testing.T) {
	out := `{
  "devices": {
    "com.apple.CoreSimulator.SimRuntime.iOS-17-0": [
      {"udid": "AAAA-1111", "name": "iPhone 15", "state": "Booted", "isAvailable": true},
      {"udid": "BBBB-2222", "name": "iPad Air", "state": "Shutdown", "isAvailable": true},
      {"udid": "CCCC-3333", "name": "iPhone 8", "state": "Shutdown", "isAvailable": false}
    ],
    "com.apple.CoreSimulator.SimRuntime.iOS-16-4": [
      {"udid": "DDDD-4444", "name": "iPhone 14", "state": "Shutdown", "isAvailable": true}
    ],
    "com.apple.CoreSimulator.SimRuntime.watchOS-10-0": [
      {"udid": "EEEE-5555", "name": "Apple Watch", "state": "Shutdown", "isAvailable": true}
    ]
  }
}`
	sims, err := parseSimctlList(out)
	require.NoError(t, err)
	require.Len(t, sims, 3)

	assert.Equal(t, "iPad Air", sims[0].Name)
	assert.Equal(t, "iOS 17.0", sims[0].Runtime)
	assert.Equal(t, "iPhone 15", sims[1].Name)
	assert.True(t, sims[1].Booted)
	assert.Equal(t, "iPhone 14", sims[2].Name)
	assert.Equal(t, "iOS 16.4", sims[2].Runtime)
}

func TestParseSimctlListBadJSON(t *testing.T) {
	_, err := parseSimctlList("not json")
	assert.Error(t, err)
}

func TestParseDetectOutput(t *testing.T) {
	out := `{"Event": "DeviceDetected", "Device": {"DeviceIdentifier": "00008101-000E", "DeviceName": "Jane's iPhone", "modelName": "iPhone 12"}}
{"Event": "DeviceDetected", "Device": {"DeviceIdentifier": "00008120-001A", "DeviceName": "Test iPad", "modelName": "iPad Pro"}}`
	devices, err := parseDetectOutput(out)
	require.NoError(t, err)
	require.Len(t, devices, 2)
	assert.Equal(t, "00008101-000E", devices[0].ID)
	assert.Equal(t, "Jane's iPhone (iPhone 12)", devices[0].String())
}

func TestParseDetectOutputEmpty(t *testing.T) {
	devices, err := parseDetectOutput("")
	require.NoError(t, err)
	assert.Empty(t, devices)
}
