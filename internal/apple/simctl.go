package apple

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/agiangrant/mobl/internal/util"
)

// Simulator is one available simulator device.
type Simulator struct {
	UDID    string
	Name    string
	Runtime string
	Booted  bool
}

func (s Simulator) String() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.Runtime)
}

type simctlList struct {
	Devices map[string][]struct {
		UDID        string `json:"udid"`
		Name        string `json:"name"`
		State       string `json:"state"`
		IsAvailable bool   `json:"isAvailable"`
	} `json:"devices"`
}

// ListSimulators returns the available iOS simulators, newest runtime first.
func ListSimulators(ctx context.Context) ([]Simulator, error) {
	out, err := util.Output(ctx, "xcrun", "simctl", "list", "devices", "available", "-j")
	if err != nil {
		return nil, fmt.Errorf("failed to list simulators: %w", err)
	}
	return parseSimctlList(out)
}

func parseSimctlList(out string) ([]Simulator, error) {
	var list simctlList
	if err := json.Unmarshal([]byte(out), &list); err != nil {
		return nil, fmt.Errorf("failed to parse simctl output: %w", err)
	}
	const iosPrefix = "com.apple.CoreSimulator.SimRuntime.iOS-"
	var sims []Simulator
	for runtime, devices := range list.Devices {
		if !strings.HasPrefix(runtime, iosPrefix) {
			continue
		}
		version := strings.ReplaceAll(strings.TrimPrefix(runtime, iosPrefix), "-", ".")
		for _, d := range devices {
			if !d.IsAvailable {
				continue
			}
			sims = append(sims, Simulator{
				UDID:    d.UDID,
				Name:    d.Name,
				Runtime: "iOS " + version,
				Booted:  d.State == "Booted",
			})
		}
	}
	sort.Slice(sims, func(i, j int) bool {
		if sims[i].Runtime != sims[j].Runtime {
			return sims[i].Runtime > sims[j].Runtime
		}
		return sims[i].Name < sims[j].Name
	})
	return sims, nil
}

// Run boots the simulator if needed, installs the .app, and launches it with
// console output attached.
func (s Simulator) Run(ctx context.Context, appPath, identifier string) error {
	if !s.Booted {
		if err := util.Run(ctx, "xcrun", "simctl", "boot", s.UDID); err != nil {
			return fmt.Errorf("failed to boot simulator %s: %w", s, err)
		}
	}
	if err := util.Run(ctx, "open", "-a", "Simulator"); err != nil {
		return fmt.Errorf("failed to open Simulator.app: %w", err)
	}
	if err := util.Run(ctx, "xcrun", "simctl", "install", s.UDID, appPath); err != nil {
		return fmt.Errorf("failed to install app on simulator %s: %w", s, err)
	}
	if err := util.Run(ctx, "xcrun", "simctl", "launch", "--console-pty", s.UDID, identifier); err != nil {
		return fmt.Errorf("failed to launch %q on simulator %s: %w", identifier, s, err)
	}
	return nil
}
