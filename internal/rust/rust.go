// Package rust drives rustup and cargo for the cross-compilation targets.
package rust

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/agiangrant/mobl/internal/env"
	"github.com/agiangrant/mobl/internal/util"
)

var rustcVersionRe = regexp.MustCompile(`rustc (\d+\.\d+\.\d+)`)

// RustcVersion returns the installed rustc version, e.g. "1.79.0".
func RustcVersion(ctx context.Context) (string, error) {
	version, err := util.RunAndSearch(ctx, rustcVersionRe, "rustc", "--version")
	if err != nil {
		return "", fmt.Errorf("failed to detect rustc: %w", err)
	}
	return version, nil
}

// InstalledTargets lists the triples rustup has installed.
func InstalledTargets(ctx context.Context) ([]string, error) {
	out, err := util.Output(ctx, "rustup", "target", "list", "--installed")
	if err != nil {
		return nil, fmt.Errorf("failed to list rustup targets: %w", err)
	}
	var targets []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			targets = append(targets, line)
		}
	}
	return targets, nil
}

// EnsureTarget installs a triple if rustup does not already have it.
func EnsureTarget(ctx context.Context, triple string) error {
	installed, err := InstalledTargets(ctx)
	if err != nil {
		return err
	}
	for _, t := range installed {
		if t == triple {
			return nil
		}
	}
	log.Info().Str("triple", triple).Msg("installing rustup target")
	if err := util.Run(ctx, "rustup", "target", "add", triple); err != nil {
		return fmt.Errorf("failed to install rust target %q: %w", triple, err)
	}
	return nil
}

// Build describes one cargo invocation.
type Build struct {
	Dir               string
	Triple            string
	Release           bool
	Features          []string
	NoDefaultFeatures bool
	ExtraEnv          map[string]string
}

// Run executes cargo build with the explicit environment plus ExtraEnv.
func (b Build) Run(ctx context.Context, e *env.Env) error {
	args := []string{"build", "--target", b.Triple}
	if b.Release {
		args = append(args, "--release")
	}
	if b.NoDefaultFeatures {
		args = append(args, "--no-default-features")
	}
	if len(b.Features) > 0 {
		args = append(args, "--features", strings.Join(b.Features, " "))
	}
	environ := e.ExplicitEnv()
	for k, v := range b.ExtraEnv {
		environ = append(environ, k+"="+v)
	}
	if err := util.RunIn(ctx, b.Dir, environ, "cargo", args...); err != nil {
		return fmt.Errorf("cargo build failed for %q: %w", b.Triple, err)
	}
	return nil
}

// Profile returns the cargo output profile directory name.
func (b Build) Profile() string {
	if b.Release {
		return "release"
	}
	return "debug"
}
