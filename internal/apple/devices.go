package apple

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/agiangrant/mobl/internal/util"
)

// Device is a physical device visible to ios-deploy.
type Device struct {
	ID    string
	Name  string
	Model string
}

func (d Device) String() string {
	if d.Model != "" {
		return fmt.Sprintf("%s (%s)", d.Name, d.Model)
	}
	return d.Name
}

type detectEvent struct {
	Event  string `json:"Event"`
	Device struct {
		DeviceIdentifier string `json:"DeviceIdentifier"`
		DeviceName       string `json:"DeviceName"`
		ModelName        string `json:"modelName"`
	} `json:"Device"`
}

// ListDevices detects attached devices via ios-deploy. ios-deploy exits
// nonzero when nothing is attached, so its output is parsed either way.
func ListDevices(ctx context.Context) ([]Device, error) {
	if !IosDeploy.Present() {
		return nil, fmt.Errorf("ios-deploy not found; run `mobl doctor` to install it")
	}
	cmd := exec.CommandContext(ctx, "ios-deploy", "--detect", "--timeout", "1", "--json")
	out, _ := cmd.Output()
	return parseDetectOutput(string(out))
}

// parseDetectOutput reads the stream of JSON event objects ios-deploy emits.
func parseDetectOutput(out string) ([]Device, error) {
	dec := json.NewDecoder(strings.NewReader(out))
	var devices []Device
	for dec.More() {
		var event detectEvent
		if err := dec.Decode(&event); err != nil {
			return devices, fmt.Errorf("failed to parse ios-deploy output: %w", err)
		}
		if event.Event != "DeviceDetected" {
			continue
		}
		devices = append(devices, Device{
			ID:    event.Device.DeviceIdentifier,
			Name:  event.Device.DeviceName,
			Model: event.Device.ModelName,
		})
	}
	return devices, nil
}

// Run deploys the built .app to the device and launches it with the
// debugger attached.
func (d Device) Run(ctx context.Context, appPath string, nonInteractive bool) error {
	args := []string{"--id", d.ID, "--bundle", appPath, "--debug"}
	if nonInteractive {
		args = append(args, "--noninteractive", "--justlaunch")
	}
	if err := util.Run(ctx, "ios-deploy", args...); err != nil {
		return fmt.Errorf("failed to deploy to %s: %w", d, err)
	}
	return nil
}
