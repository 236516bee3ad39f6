package apple

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/agiangrant/mobl/internal/util"
)

// BrewPackage is one Homebrew-managed tool the Apple workflow shells out to.
type BrewPackage struct {
	Name string
	// Bin overrides Name for the PATH check when the formula installs a
	// differently named binary.
	Bin string
	// Tap qualifies Name when the formula lives outside homebrew/core.
	Tap string
}

// Packages the Apple workflow depends on.
var (
	XcodeGen  = BrewPackage{Name: "xcodegen"}
	IosDeploy = BrewPackage{Name: "ios-deploy"}
	CocoaPods = BrewPackage{Name: "cocoapods", Bin: "pod"}
)

func (p BrewPackage) formula() string {
	if p.Tap != "" {
		return p.Tap + "/" + p.Name
	}
	return p.Name
}

func (p BrewPackage) bin() string {
	if p.Bin != "" {
		return p.Bin
	}
	return p.Name
}

// Present reports whether the tool is already on PATH.
func (p BrewPackage) Present() bool {
	return util.CommandPresent(p.bin())
}

// Install brews the package, tapping first when needed. With reinstall, an
// existing install is rebuilt instead of skipped.
func (p BrewPackage) Install(ctx context.Context, reinstall bool) error {
	if p.Present() && !reinstall {
		return nil
	}
	if p.Tap != "" {
		if err := util.Run(ctx, "brew", "tap", p.Tap); err != nil {
			return fmt.Errorf("failed to tap %q: %w", p.Tap, err)
		}
	}
	verb := "install"
	if p.Present() {
		verb = "reinstall"
	}
	fmt.Printf("  ✓ Installing %s via Homebrew\n", p.formula())
	if err := util.Run(ctx, "brew", verb, p.formula()); err != nil {
		return fmt.Errorf("failed to %s %q: %w", verb, p.formula(), err)
	}
	return nil
}

// Outdated reports whether a newer formula version is available. brew exits
// nonzero when the package is outdated, so the error is the signal here.
func (p BrewPackage) Outdated(ctx context.Context) bool {
	if !util.CommandPresent("brew") {
		return false
	}
	_, err := util.Output(ctx, "brew", "outdated", p.formula())
	return err != nil
}

// EnsureDeps installs whichever workflow tools are missing.
func EnsureDeps(ctx context.Context, packages ...BrewPackage) error {
	if !util.CommandPresent("brew") {
		return fmt.Errorf("Homebrew not found; install it from https://brew.sh")
	}
	for _, pkg := range packages {
		if pkg.Present() {
			log.Debug().Str("package", pkg.Name).Msg("already installed")
			continue
		}
		if err := pkg.Install(ctx, false); err != nil {
			return err
		}
	}
	return nil
}
