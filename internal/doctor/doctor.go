// Package doctor checks the host for everything the mobile workflows need
// and prints a sectioned report.
package doctor

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/agiangrant/mobl/internal/android"
	"github.com/agiangrant/mobl/internal/apple"
	baseenv "github.com/agiangrant/mobl/internal/env"
	"github.com/agiangrant/mobl/internal/rust"
	"github.com/agiangrant/mobl/internal/util"
)

// Status classifies one check result.
type Status int

// Statuses, ordered by severity.
const (
	StatusGood Status = iota
	StatusWarning
	StatusError
)

func (s Status) symbol() string {
	switch s {
	case StatusGood:
		return "[✔]"
	case StatusWarning:
		return "[!]"
	default:
		return "[✗]"
	}
}

// Item is one line of a section.
type Item struct {
	Status Status
	Text   string
}

func good(format string, args ...any) Item {
	return Item{Status: StatusGood, Text: fmt.Sprintf(format, args...)}
}

func warning(format string, args ...any) Item {
	return Item{Status: StatusWarning, Text: fmt.Sprintf(format, args...)}
}

func failure(format string, args ...any) Item {
	return Item{Status: StatusError, Text: fmt.Sprintf(format, args...)}
}

// Section groups related checks under a title.
type Section struct {
	Title string
	Items []Item
}

// Worst returns the most severe status in the section.
func (s Section) Worst() Status {
	worst := StatusGood
	for _, item := range s.Items {
		if item.Status > worst {
			worst = item.Status
		}
	}
	return worst
}

// Print writes the section to stdout.
func (s Section) Print() {
	fmt.Printf("%s %s\n", s.Worst().symbol(), s.Title)
	for _, item := range s.Items {
		fmt.Printf("  %s %s\n", item.Status.symbol(), item.Text)
	}
}

// Report is an ordered list of sections.
type Report []Section

// Print writes the whole report.
func (r Report) Print() {
	for i, section := range r {
		if i > 0 {
			fmt.Println("")
		}
		section.Print()
	}
}

// Run executes every check. Independent sections probe external tools, so
// they run concurrently and print in a fixed order afterwards.
func Run(ctx context.Context, version string) Report {
	sections := make([]Section, 5)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { sections[0] = hostSection(ctx, version); return nil })
	g.Go(func() error { sections[1] = rustSection(ctx); return nil })
	g.Go(func() error { sections[2] = appleSection(ctx); return nil })
	g.Go(func() error { sections[3] = androidSection(); return nil })
	g.Go(func() error { sections[4] = deviceSection(ctx); return nil })
	_ = g.Wait()
	return sections
}

var macosVersionRe = regexp.MustCompile(`System Version: (.+)`)

func hostSection(ctx context.Context, version string) Section {
	s := Section{Title: "mobl"}
	s.Items = append(s.Items, good("mobl v%s", version))
	if runtime.GOOS == "darwin" {
		if osVersion, err := util.RunAndSearch(ctx, macosVersionRe, "system_profiler", "SPSoftwareDataType"); err == nil {
			s.Items = append(s.Items, good("%s (%s)", osVersion, runtime.GOARCH))
		} else {
			s.Items = append(s.Items, good("host %s/%s", runtime.GOOS, runtime.GOARCH))
		}
	} else {
		s.Items = append(s.Items, good("host %s/%s", runtime.GOOS, runtime.GOARCH))
	}
	if installDir, err := util.InstallDir(); err == nil {
		s.Items = append(s.Items, good("install directory %s", installDir))
	}
	if _, err := baseenv.New(); err != nil {
		s.Items = append(s.Items, failure("%v", err))
	}
	return s
}

func rustSection(ctx context.Context) Section {
	s := Section{Title: "Rust toolchain"}
	rustcVersion, err := rust.RustcVersion(ctx)
	if err != nil {
		s.Items = append(s.Items, failure("rustc not found; install via https://rustup.rs"))
		return s
	}
	s.Items = append(s.Items, good("rustc v%s", rustcVersion))
	if !util.CommandPresent("rustup") {
		s.Items = append(s.Items, failure("rustup not found; install via https://rustup.rs"))
		return s
	}
	installed, err := rust.InstalledTargets(ctx)
	if err != nil {
		s.Items = append(s.Items, warning("failed to list rustup targets: %v", err))
		return s
	}
	var missing []string
	for _, target := range android.AllTargets() {
		if !containsString(installed, target.Triple) {
			missing = append(missing, target.Triple)
		}
	}
	if runtime.GOOS == "darwin" {
		for _, target := range apple.AllTargets() {
			if !containsString(installed, target.Triple) {
				missing = append(missing, target.Triple)
			}
		}
	}
	if len(missing) == 0 {
		s.Items = append(s.Items, good("all cross-compilation targets installed"))
	} else {
		s.Items = append(s.Items, warning("missing targets (installed on demand): %s", strings.Join(missing, ", ")))
	}
	return s
}

func appleSection(ctx context.Context) Section {
	s := Section{Title: "Apple tools"}
	if runtime.GOOS != "darwin" {
		s.Items = append(s.Items, warning("not running macOS; Apple workflows unavailable"))
		return s
	}
	if xcode, err := util.Output(ctx, "xcodebuild", "-version"); err != nil {
		s.Items = append(s.Items, failure("Xcode not found; install it from the App Store"))
	} else {
		s.Items = append(s.Items, good("%s", strings.ReplaceAll(xcode, "\n", ", ")))
	}
	if devDir, err := util.Output(ctx, "xcode-select", "--print-path"); err != nil {
		s.Items = append(s.Items, warning("xcode-select has no developer directory (run `xcode-select --install`)"))
	} else {
		s.Items = append(s.Items, good("developer directory %s", devDir))
	}
	for _, pkg := range []apple.BrewPackage{apple.XcodeGen, apple.IosDeploy, apple.CocoaPods} {
		switch {
		case !pkg.Present():
			s.Items = append(s.Items, warning("%s not installed (brew install %s)", pkg.Name, pkg.Name))
		case pkg.Outdated(ctx):
			s.Items = append(s.Items, warning("%s installed but outdated (brew upgrade %s)", pkg.Name, pkg.Name))
		default:
			s.Items = append(s.Items, good("%s installed", pkg.Name))
		}
	}
	teams, err := apple.FindTeams(ctx)
	if err != nil || len(teams) == 0 {
		s.Items = append(s.Items, warning("no development teams found in keychain"))
	} else {
		for _, team := range teams {
			s.Items = append(s.Items, good("development team: %s (%s)", team.Name, team.ID))
		}
	}
	return s
}

func androidSection() Section {
	s := Section{Title: "Android tools"}
	e, err := baseenv.New()
	if err != nil {
		s.Items = append(s.Items, failure("%v", err))
		return s
	}
	androidEnv, err := android.NewEnv(e)
	if err != nil {
		s.Items = append(s.Items, failure("%v", err))
		return s
	}
	if sdkVersion, err := androidEnv.SdkVersion(); err == nil {
		s.Items = append(s.Items, good("SDK v%s at %s", sdkVersion, androidEnv.SdkRoot()))
	} else {
		s.Items = append(s.Items, good("SDK at %s", androidEnv.SdkRoot()))
	}
	ndk := androidEnv.Ndk()
	ndkVersion, err := ndk.Version()
	if err != nil {
		s.Items = append(s.Items, failure("NDK at %s has no readable version: %v", ndk.Home(), err))
	} else if err := ndk.CheckVersion(); err != nil {
		s.Items = append(s.Items, failure("%v", err))
	} else {
		s.Items = append(s.Items, good("NDK v%s at %s", ndkVersion, ndk.Home()))
	}
	if _, err := os.Stat(ndk.ArPath()); err != nil {
		s.Items = append(s.Items, failure("NDK toolchain incomplete: %s missing", ndk.ArPath()))
	}
	if !util.CommandPresent("adb") {
		s.Items = append(s.Items, warning("adb not on PATH; device workflows unavailable"))
	}
	return s
}

func deviceSection(ctx context.Context) Section {
	s := Section{Title: "Connected devices"}
	if util.CommandPresent("adb") {
		e, err := baseenv.New()
		if err == nil {
			if androidEnv, err := android.NewEnv(e); err == nil {
				devices, err := android.ListDevices(ctx, androidEnv)
				if err != nil {
					s.Items = append(s.Items, warning("adb device query failed: %v", err))
				}
				for _, device := range devices {
					s.Items = append(s.Items, good("%s (Android, %s)", device, device.Target.ABI))
				}
			}
		}
	}
	if runtime.GOOS == "darwin" && apple.IosDeploy.Present() {
		devices, err := apple.ListDevices(ctx)
		if err != nil {
			s.Items = append(s.Items, warning("ios-deploy device query failed: %v", err))
		}
		for _, device := range devices {
			s.Items = append(s.Items, good("%s (iOS)", device))
		}
	}
	if len(s.Items) == 0 {
		s.Items = append(s.Items, warning("no devices detected"))
	}
	return s
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
