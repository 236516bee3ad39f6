// Package apple drives the Apple side of a project: xcodegen project
// generation, cargo static library builds, xcodebuild, and deployment to
// devices and simulators.
package apple

import (
	"fmt"
	"sort"
	"strings"
)

// Target is one supported Apple architecture.
type Target struct {
	// Arch is the short name used on the CLI.
	Arch string
	// Triple is the Rust target triple.
	Triple string
	// SDK is the xcodebuild SDK the produced library serves.
	SDK string
}

var targets = map[string]Target{
	"arm64": {
		Arch:   "arm64",
		Triple: "aarch64-apple-ios",
		SDK:    "iphoneos",
	},
	"arm64-sim": {
		Arch:   "arm64-sim",
		Triple: "aarch64-apple-ios-sim",
		SDK:    "iphonesimulator",
	},
	"x86_64": {
		Arch:   "x86_64",
		Triple: "x86_64-apple-ios",
		SDK:    "iphonesimulator",
	},
}

// AllTargets returns every supported target in stable order.
func AllTargets() []Target {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Target, 0, len(names))
	for _, name := range names {
		out = append(out, targets[name])
	}
	return out
}

// DeviceTargets returns the targets that run on physical hardware.
func DeviceTargets() []Target {
	return []Target{targets["arm64"]}
}

// SimulatorTargets returns the targets that run in the simulator.
func SimulatorTargets() []Target {
	return []Target{targets["arm64-sim"], targets["x86_64"]}
}

// TargetForArch resolves a short arch name like "arm64-sim".
func TargetForArch(arch string) (Target, error) {
	t, ok := targets[arch]
	if !ok {
		names := make([]string, 0, len(targets))
		for name := range targets {
			names = append(names, name)
		}
		sort.Strings(names)
		return Target{}, fmt.Errorf("unsupported Apple arch %q (expected one of %s)", arch, strings.Join(names, ", "))
	}
	return t, nil
}
