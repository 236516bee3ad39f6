package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agiangrant/mobl/internal/util"
)

const defaultAppleProjectDir = "gen/apple"

var (
	defaultIOSVersion   = VersionDouble{Major: 9}
	defaultMacOSVersion = VersionDouble{Major: 11}
)

// RawApple is the `[apple]` table of mobl.toml.
type RawApple struct {
	DevelopmentTeam  string `toml:"development-team"`
	ProjectDir       string `toml:"project-dir,omitempty"`
	IOSVersion       string `toml:"ios-version,omitempty"`
	MacOSVersion     string `toml:"macos-version,omitempty"`
	BundleIdentifier string `toml:"bundle-identifier,omitempty"`
}

// Apple is the validated Apple platform configuration.
type Apple struct {
	app              *App
	developmentTeam  string
	projectDir       string
	iosVersion       VersionDouble
	macOSVersion     VersionDouble
	bundleIdentifier string
}

// NewApple validates the raw Apple section against app. A nil raw section is
// an error: Apple builds can't proceed without a development team.
func NewApple(app *App, raw *RawApple) (*Apple, error) {
	if raw == nil {
		return nil, fmt.Errorf("`apple.development-team` must be specified")
	}
	if raw.DevelopmentTeam == "" {
		return nil, fmt.Errorf("`apple.development-team` is empty")
	}
	projectDir, err := checkProjectDir(app, raw.ProjectDir, defaultAppleProjectDir, "apple", false)
	if err != nil {
		return nil, err
	}
	iosVersion := defaultIOSVersion
	if raw.IOSVersion != "" {
		if iosVersion, err = ParseVersionDouble(raw.IOSVersion); err != nil {
			return nil, fmt.Errorf("`apple.ios-version` invalid: %w", err)
		}
	}
	macOSVersion := defaultMacOSVersion
	if raw.MacOSVersion != "" {
		if macOSVersion, err = ParseVersionDouble(raw.MacOSVersion); err != nil {
			return nil, fmt.Errorf("`apple.macos-version` invalid: %w", err)
		}
	}
	bundleID := raw.BundleIdentifier
	if bundleID == "" {
		bundleID = app.Identifier()
	}
	return &Apple{
		app:              app,
		developmentTeam:  raw.DevelopmentTeam,
		projectDir:       projectDir,
		iosVersion:       iosVersion,
		macOSVersion:     macOSVersion,
		bundleIdentifier: bundleID,
	}, nil
}

// App returns the owning app config.
func (a *Apple) App() *App { return a.app }

// DevelopmentTeam is the Apple developer team id used for signing.
func (a *Apple) DevelopmentTeam() string { return a.developmentTeam }

// IOSVersion is the iOS deployment target.
func (a *Apple) IOSVersion() VersionDouble { return a.iosVersion }

// MacOSVersion is the macOS deployment target.
func (a *Apple) MacOSVersion() VersionDouble { return a.macOSVersion }

// BundleIdentifier is the CFBundleIdentifier of the generated app.
func (a *Apple) BundleIdentifier() string { return a.bundleIdentifier }

// ProjectDir is the absolute path of the generated Xcode project.
func (a *Apple) ProjectDir() string {
	return util.PrefixPath(a.app.RootDir(), a.projectDir)
}

// ProjectDirExists reports whether the Xcode project has been generated.
func (a *Apple) ProjectDirExists() bool {
	return dirExists(a.ProjectDir())
}

// WorkspacePath prefers a root .xcworkspace (CocoaPods) and falls back to the
// workspace embedded in the .xcodeproj.
func (a *Apple) WorkspacePath() string {
	root := filepath.Join(a.ProjectDir(), a.app.Name()+".xcworkspace")
	if dirExists(root) {
		return root
	}
	return filepath.Join(a.ProjectDir(), a.app.Name()+".xcodeproj", "project.xcworkspace")
}

// Scheme is the xcodebuild scheme of the iOS target.
func (a *Apple) Scheme() string {
	return a.app.Name() + "_iOS"
}

// ArchiveDir is where xcodebuild archives land.
func (a *Apple) ArchiveDir() string {
	return filepath.Join(a.ProjectDir(), "build")
}

// ExportDir is where exported IPAs land.
func (a *Apple) ExportDir() string {
	return filepath.Join(a.ProjectDir(), "build")
}

// ExportPlistPath is the ExportOptions.plist handed to -exportArchive.
func (a *Apple) ExportPlistPath() string {
	return filepath.Join(a.ProjectDir(), "ExportOptions.plist")
}

// IPAPath probes the two names xcodebuild has been known to use for exported
// IPAs, returning an error naming both when neither exists.
func (a *Apple) IPAPath() (string, error) {
	old := filepath.Join(a.ExportDir(), a.Scheme()+".ipa")
	new := filepath.Join(a.ExportDir(), a.app.Name()+".ipa")
	for _, path := range []string{old, new} {
		if fileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("IPA found at neither %q nor %q", old, new)
}

// AppPath is the .app bundle inside the export payload.
func (a *Apple) AppPath() string {
	return filepath.Join(a.ExportDir(), "Payload", a.app.Name()+".app")
}

func checkProjectDir(app *App, projectDir, fallback, section string, noSpaces bool) (string, error) {
	if projectDir == "" {
		return fallback, nil
	}
	under, err := util.UnderRoot(projectDir, app.RootDir())
	if err != nil {
		return "", fmt.Errorf("`%s.project-dir` %q couldn't be normalized: %w", section, projectDir, err)
	}
	if !under {
		return "", fmt.Errorf("`%s.project-dir` %q is outside of the app root %q", section, projectDir, app.RootDir())
	}
	if noSpaces && strings.Contains(projectDir, " ") {
		return "", fmt.Errorf("`%s.project-dir` %q contains spaces, which the NDK is remarkably intolerant of", section, projectDir)
	}
	return projectDir, nil
}
