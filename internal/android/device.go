package android

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/agiangrant/mobl/internal/config"
	"github.com/agiangrant/mobl/internal/util"
)

// Device is one adb-visible device or emulator.
type Device struct {
	Serial string
	Name   string
	Model  string
	Target Target
}

func (d Device) String() string {
	if d.Model != "" && d.Model != d.Name {
		return fmt.Sprintf("%s (%s)", d.Name, d.Model)
	}
	return d.Name
}

// ListDevices queries adb for attached devices and resolves each one's
// product name, model, and ABI.
func ListDevices(ctx context.Context, env *Env) ([]Device, error) {
	out, err := util.Output(ctx, "adb", "devices")
	if err != nil {
		return nil, fmt.Errorf("failed to run adb devices: %w", err)
	}
	serials := parseAdbDevices(out)
	devices := make([]Device, 0, len(serials))
	for _, serial := range serials {
		device := Device{Serial: serial}
		if name, err := getProp(ctx, serial, "ro.product.name"); err == nil {
			device.Name = name
		}
		if model, err := getProp(ctx, serial, "ro.product.model"); err == nil {
			device.Model = model
		}
		abi, err := getProp(ctx, serial, "ro.product.cpu.abi")
		if err != nil {
			return nil, fmt.Errorf("failed to read ABI of device %q: %w", serial, err)
		}
		target, err := TargetForAbi(abi)
		if err != nil {
			log.Warn().Str("serial", serial).Str("abi", abi).Msg("skipping device with unsupported ABI")
			continue
		}
		device.Target = target
		devices = append(devices, device)
	}
	return devices, nil
}

// parseAdbDevices extracts serials from `adb devices` output, keeping only
// entries in the "device" state.
func parseAdbDevices(out string) []string {
	var serials []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[1] == "device" {
			serials = append(serials, fields[0])
		}
	}
	return serials
}

func getProp(ctx context.Context, serial, prop string) (string, error) {
	return util.Output(ctx, "adb", "-s", serial, "shell", "getprop", prop)
}

// RunOptions controls deployment to a device.
type RunOptions struct {
	Release  bool
	Filter   LogFilter
	NoLogcat bool
}

// Run builds the APK for the device's architecture, installs it, wakes the
// screen, launches the activity, and tails logcat.
func (d Device) Run(ctx context.Context, env *Env, cfg *config.Config, opts RunOptions) error {
	buildType := buildTypeName(opts.Release)
	if err := BuildApk(ctx, env, cfg, []Target{d.Target}, opts.Release); err != nil {
		return err
	}
	apk := ApkPath(cfg, d.Target, opts.Release)

	fmt.Printf("  ✓ Installing %s build on %s\n", buildType, d)
	if err := util.Run(ctx, "adb", "-s", d.Serial, "install", "-r", apk); err != nil {
		return fmt.Errorf("failed to install APK on %q: %w", d.Serial, err)
	}
	if err := util.Run(ctx, "adb", "-s", d.Serial, "shell", "input", "keyevent", "KEYCODE_WAKEUP"); err != nil {
		return fmt.Errorf("failed to wake device %q: %w", d.Serial, err)
	}
	activity := cfg.App().Identifier() + "/android.app.NativeActivity"
	if err := util.Run(ctx, "adb", "-s", d.Serial, "shell", "am", "start", "-n", activity); err != nil {
		return fmt.Errorf("failed to start %q on %q: %w", activity, d.Serial, err)
	}
	if opts.NoLogcat {
		return nil
	}
	return d.Logcat(ctx, opts.Filter)
}

// LogFilter is a logcat priority filter.
type LogFilter string

// Logcat filters. Empty means everything at warn and above.
const (
	LogFilterError LogFilter = "E"
	LogFilterWarn  LogFilter = "W"
	LogFilterInfo  LogFilter = "I"
)

// Logcat tails the device log until interrupted.
func (d Device) Logcat(ctx context.Context, filter LogFilter) error {
	if filter == "" {
		filter = LogFilterWarn
	}
	err := util.Run(ctx, "adb", "-s", d.Serial, "logcat", "-v", "color", "*:"+string(filter))
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("failed to tail logcat on %q: %w", d.Serial, err)
	}
	return nil
}

// Stacktrace symbolizes the most recent native crash from the device log.
func (d Device) Stacktrace(ctx context.Context, env *Env, cfg *config.Config, release bool) error {
	symDir := jniLibsDir(cfg, d.Target)
	logcat := exec.CommandContext(ctx, "adb", "-s", d.Serial, "logcat", "-d")
	stack := exec.CommandContext(ctx, env.Ndk().NdkStackPath(), "-sym", symDir)
	piped, err := util.Pipe(ctx, logcat, stack)
	if err != nil {
		return fmt.Errorf("failed to symbolize crash log from %q: %w", d.Serial, err)
	}
	if !piped {
		fmt.Println("No native crash found in the device log.")
	}
	return nil
}

func buildTypeName(release bool) string {
	if release {
		return "release"
	}
	return "debug"
}
