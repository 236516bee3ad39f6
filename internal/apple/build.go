package apple

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/agiangrant/mobl/internal/config"
	"github.com/agiangrant/mobl/internal/env"
	"github.com/agiangrant/mobl/internal/metadata"
	"github.com/agiangrant/mobl/internal/rust"
	"github.com/agiangrant/mobl/internal/templating"
	"github.com/agiangrant/mobl/internal/util"
)

func runIn(ctx context.Context, dir, name string, args ...string) error {
	return util.RunIn(ctx, dir, nil, name, args...)
}

const exportPlistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>method</key>
	<string>{{.Method}}</string>
	<key>teamID</key>
	<string>{{.TeamID}}</string>
</dict>
</plist>
`

// BuildLibs cross-compiles the crate as a static library for each target and
// merges the results into one fat archive per SDK under <project>/lib.
func BuildLibs(ctx context.Context, e *env.Env, cfg *config.Config, targets []Target, release bool) error {
	apple, err := cfg.Apple()
	if err != nil {
		return err
	}
	meta, err := metadata.Load(cfg.App().RootDir())
	if err != nil {
		return err
	}
	libName := "lib" + cfg.App().NameSnake() + ".a"

	bySDK := make(map[string][]string)
	for _, target := range targets {
		if err := rust.EnsureTarget(ctx, target.Triple); err != nil {
			return err
		}
		build := rust.Build{
			Dir:               cfg.App().RootDir(),
			Triple:            target.Triple,
			Release:           release,
			Features:          meta.Apple.IOS.Features,
			NoDefaultFeatures: meta.Apple.IOS.NoDefaultFeatures(),
			ExtraEnv:          cfg.EnvStrings(),
		}
		if err := build.Run(ctx, e); err != nil {
			return err
		}
		lib := filepath.Join(cfg.App().RootDir(), "target", target.Triple, build.Profile(), libName)
		bySDK[target.SDK] = append(bySDK[target.SDK], lib)
	}

	for sdk, libs := range bySDK {
		outDir := filepath.Join(apple.ProjectDir(), "lib", sdk)
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
		out := filepath.Join(outDir, libName)
		args := append([]string{"-create"}, libs...)
		args = append(args, "-output", out)
		if err := util.Run(ctx, "lipo", args...); err != nil {
			return fmt.Errorf("lipo failed for %q: %w", sdk, err)
		}
		fmt.Printf("  ✓ Built %s\n", out)
	}
	return nil
}

// Build compiles the app for the device or the simulator without archiving.
func Build(ctx context.Context, e *env.Env, cfg *config.Config, simulator, release bool) error {
	apple, err := cfg.Apple()
	if err != nil {
		return err
	}
	targets := DeviceTargets()
	sdk := "iphoneos"
	if simulator {
		targets = SimulatorTargets()
		sdk = "iphonesimulator"
	}
	if err := BuildLibs(ctx, e, cfg, targets, release); err != nil {
		return err
	}
	args := []string{
		"build",
		"-scheme", apple.Scheme(),
		"-configuration", configuration(release),
		"-sdk", sdk,
		"-derivedDataPath", "build",
		"-allowProvisioningUpdates",
	}
	args = append(workspaceArgs(apple), args...)
	if err := runIn(ctx, apple.ProjectDir(), "xcodebuild", args...); err != nil {
		return fmt.Errorf("xcodebuild failed: %w", err)
	}
	return nil
}

// SimulatorAppPath returns where Build leaves the simulator .app bundle.
func SimulatorAppPath(cfg *config.Config, release bool) (string, error) {
	apple, err := cfg.Apple()
	if err != nil {
		return "", err
	}
	products := configuration(release) + "-iphonesimulator"
	return filepath.Join(apple.ProjectDir(), "build", "Build", "Products", products,
		cfg.App().StylizedName()+".app"), nil
}

// Archive produces an .xcarchive for distribution.
func Archive(ctx context.Context, e *env.Env, cfg *config.Config, buildNumber int) error {
	apple, err := cfg.Apple()
	if err != nil {
		return err
	}
	if err := BuildLibs(ctx, e, cfg, DeviceTargets(), true); err != nil {
		return err
	}
	version := cfg.App().Version()
	if buildNumber > 0 {
		version = version.WithBuildNumber(buildNumber)
	}
	args := []string{
		"archive",
		"-scheme", apple.Scheme(),
		"-configuration", configuration(true),
		"-sdk", "iphoneos",
		"-archivePath", archivePath(apple),
		"-allowProvisioningUpdates",
		"MARKETING_VERSION=" + cfg.App().Version().String(),
		"CURRENT_PROJECT_VERSION=" + version.String(),
	}
	args = append(workspaceArgs(apple), args...)
	if err := runIn(ctx, apple.ProjectDir(), "xcodebuild", args...); err != nil {
		return fmt.Errorf("xcodebuild archive failed: %w", err)
	}
	fmt.Printf("  ✓ Archived %s\n", archivePath(apple))
	return nil
}

// ExportIpa exports the archive into an IPA using the configured team.
func ExportIpa(ctx context.Context, cfg *config.Config) (string, error) {
	apple, err := cfg.Apple()
	if err != nil {
		return "", err
	}
	plist, err := templating.RenderString(exportPlistTemplate, map[string]string{
		"Method": "development",
		"TeamID": apple.DevelopmentTeam(),
	})
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(apple.ExportDir(), 0o755); err != nil {
		return "", err
	}
	if err := renameio.WriteFile(apple.ExportPlistPath(), []byte(plist), 0o644); err != nil {
		return "", fmt.Errorf("failed to write export plist: %w", err)
	}
	err = runIn(ctx, apple.ProjectDir(), "xcodebuild",
		"-exportArchive",
		"-archivePath", archivePath(apple),
		"-exportOptionsPlist", apple.ExportPlistPath(),
		"-exportPath", apple.ExportDir(),
	)
	if err != nil {
		return "", fmt.Errorf("xcodebuild export failed: %w", err)
	}
	ipa, err := apple.IPAPath()
	if err != nil {
		return "", err
	}
	fmt.Printf("  ✓ Exported %s\n", ipa)
	return ipa, nil
}

// ExtractApp unpacks the .app out of the exported IPA so ios-deploy and
// simctl can install it.
func ExtractApp(ctx context.Context, cfg *config.Config) (string, error) {
	apple, err := cfg.Apple()
	if err != nil {
		return "", err
	}
	ipa, err := apple.IPAPath()
	if err != nil {
		return "", err
	}
	if err := os.RemoveAll(apple.AppPath()); err != nil {
		return "", err
	}
	if err := runIn(ctx, apple.ExportDir(), "unzip", "-o", "-q", ipa); err != nil {
		return "", fmt.Errorf("failed to unpack %q: %w", ipa, err)
	}
	if _, err := os.Stat(apple.AppPath()); err != nil {
		return "", fmt.Errorf("no app bundle in %q: %w", ipa, err)
	}
	return apple.AppPath(), nil
}

// Open launches the generated project in Xcode.
func Open(ctx context.Context, cfg *config.Config) error {
	apple, err := cfg.Apple()
	if err != nil {
		return err
	}
	path := apple.WorkspacePath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("no Xcode project at %q; run `mobl gen` first", path)
	}
	return util.Run(ctx, "open", path)
}

func workspaceArgs(apple *config.Apple) []string {
	if _, err := os.Stat(apple.WorkspacePath()); err == nil {
		return []string{"-workspace", apple.WorkspacePath()}
	}
	return []string{"-project", filepath.Join(apple.ProjectDir(), apple.App().Name()+".xcodeproj")}
}

func archivePath(apple *config.Apple) string {
	return filepath.Join(apple.ArchiveDir(), apple.Scheme()+".xcarchive")
}

func configuration(release bool) string {
	if release {
		return "Release"
	}
	return "Debug"
}
