package apple

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/mobl/internal/config"
	"github.com/agiangrant/mobl/internal/metadata"
	"github.com/agiangrant/mobl/internal/templating"
)

// projectSpec is the xcodegen project.yml document.
type projectSpec struct {
	Name    string                `yaml:"name"`
	Options projectOptions        `yaml:"options"`
	Targets map[string]targetSpec `yaml:"targets"`
	Include []string              `yaml:"include,omitempty"`
}

type projectOptions struct {
	BundleIDPrefix string `yaml:"bundleIdPrefix"`
}

type targetSpec struct {
	Type             string           `yaml:"type"`
	Platform         string           `yaml:"platform"`
	DeploymentTarget string           `yaml:"deploymentTarget"`
	Sources          []string         `yaml:"sources"`
	Settings         map[string]any   `yaml:"settings"`
	Dependencies     []map[string]any `yaml:"dependencies,omitempty"`
}

type packData struct {
	StylizedName     string
	NameSnake        string
	Identifier       string
	Version          string
	BuildNumber      string
	DeploymentTarget string
	Scheme           string
	Pods             []string
}

// buildSpec assembles the xcodegen document for the app.
func buildSpec(cfg *config.Config, apple *config.Apple, meta *metadata.Apple) projectSpec {
	app := cfg.App()
	sources := []string{"Sources"}
	sources = append(sources, meta.IOS.AssetCatalogs...)

	settings := map[string]any{
		"PRODUCT_BUNDLE_IDENTIFIER": apple.BundleIdentifier(),
		"PRODUCT_NAME":              app.StylizedName(),
		"DEVELOPMENT_TEAM":          apple.DevelopmentTeam(),
		"INFOPLIST_FILE":            "Info.plist",
		"ENABLE_BITCODE":            false,
		"LIBRARY_SEARCH_PATHS[sdk=iphoneos*]":        "$(PROJECT_DIR)/lib/iphoneos",
		"LIBRARY_SEARCH_PATHS[sdk=iphonesimulator*]": "$(PROJECT_DIR)/lib/iphonesimulator",
		"OTHER_LDFLAGS": []string{"-lc++", "-l" + app.NameSnake()},
	}

	var deps []map[string]any
	for _, framework := range meta.IOS.Frameworks {
		deps = append(deps, map[string]any{"sdk": framework + ".framework"})
	}
	for _, vendor := range meta.IOS.VendorFrameworks {
		deps = append(deps, map[string]any{"framework": vendor, "embed": true})
	}
	for _, sdk := range meta.IOS.VendorSDKs {
		deps = append(deps, map[string]any{"framework": sdk, "embed": false})
	}

	return projectSpec{
		Name:    app.Name(),
		Options: projectOptions{BundleIDPrefix: app.ReverseDomain()},
		Targets: map[string]targetSpec{
			apple.Scheme(): {
				Type:             "application",
				Platform:         "iOS",
				DeploymentTarget: apple.IOSVersion().String(),
				Sources:          sources,
				Settings:         settings,
				Dependencies:     deps,
			},
		},
		Include: meta.IOS.AdditionalTargets,
	}
}

// CreateProject renders the Xcode project directory, generates the
// .xcodeproj with xcodegen, and installs pods when the app declares any.
func CreateProject(ctx context.Context, cfg *config.Config, meta *metadata.Apple) error {
	apple, err := cfg.Apple()
	if err != nil {
		return err
	}
	projectDir := apple.ProjectDir()

	data := packData{
		StylizedName:     cfg.App().StylizedName(),
		NameSnake:        cfg.App().NameSnake(),
		Identifier:       apple.BundleIdentifier(),
		Version:          cfg.App().Version().String(),
		BuildNumber:      "1",
		DeploymentTarget: apple.IOSVersion().String(),
		Scheme:           apple.Scheme(),
		Pods:             meta.IOS.Pods,
	}
	pack, err := templating.LookupPack("xcode")
	if err != nil {
		return err
	}
	err = pack.Render(projectDir, data, func(rel string) string {
		if filepath.Base(rel) == "Podfile" && len(meta.IOS.Pods) == 0 {
			return ""
		}
		return rel
	})
	if err != nil {
		return err
	}

	spec := buildSpec(cfg, apple, meta)
	specBytes, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to serialize project.yml: %w", err)
	}
	specPath := filepath.Join(projectDir, "project.yml")
	if err := renameio.WriteFile(specPath, specBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", specPath, err)
	}
	fmt.Printf("  ✓ Created %s\n", specPath)

	if err := EnsureDeps(ctx, XcodeGen); err != nil {
		return err
	}
	if err := runIn(ctx, projectDir, "xcodegen", "generate", "--spec", specPath); err != nil {
		return fmt.Errorf("xcodegen failed: %w", err)
	}
	if len(meta.IOS.Pods) > 0 {
		if err := PodInstall(ctx, cfg, false); err != nil {
			return err
		}
	}

	fmt.Println("")
	fmt.Printf("  ✓ Xcode project generated at %s\n", projectDir)
	return nil
}

// PodInstall runs CocoaPods in the project directory. With update, the
// lockfile is refreshed via `pod install --repo-update`.
func PodInstall(ctx context.Context, cfg *config.Config, update bool) error {
	apple, err := cfg.Apple()
	if err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(apple.ProjectDir(), "Podfile")); os.IsNotExist(err) {
		return fmt.Errorf("no Podfile in %q", apple.ProjectDir())
	}
	if err := EnsureDeps(ctx, CocoaPods); err != nil {
		return err
	}
	args := []string{"install", "--project-directory=" + apple.ProjectDir()}
	if update {
		args = append(args, "--repo-update")
	}
	if err := runIn(ctx, apple.ProjectDir(), "pod", args...); err != nil {
		return fmt.Errorf("pod install failed: %w", err)
	}
	return nil
}
