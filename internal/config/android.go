package config

import (
	"os"
	"path/filepath"

	"github.com/agiangrant/mobl/internal/util"
)

const (
	defaultMinSDKVersion     = 24
	defaultAndroidProjectDir = "gen/android"
)

// RawAndroid is the `[android]` table of mobl.toml.
type RawAndroid struct {
	MinSDKVersion     int      `toml:"min-sdk-version,omitempty"`
	ProjectDir        string   `toml:"project-dir,omitempty"`
	NoDefaultFeatures bool     `toml:"no-default-features,omitempty"`
	Features          []string `toml:"features,omitempty"`
}

// Android is the validated Android platform configuration. Unlike Apple, a
// missing section is fine; everything has a sensible default.
type Android struct {
	app               *App
	minSDKVersion     int
	projectDir        string
	noDefaultFeatures bool
	features          []string
}

// NewAndroid validates the raw Android section against app.
func NewAndroid(app *App, raw *RawAndroid) (*Android, error) {
	if raw == nil {
		raw = &RawAndroid{}
	}
	minSDK := raw.MinSDKVersion
	if minSDK == 0 {
		minSDK = defaultMinSDKVersion
	}
	projectDir, err := checkProjectDir(app, raw.ProjectDir, defaultAndroidProjectDir, "android", true)
	if err != nil {
		return nil, err
	}
	return &Android{
		app:               app,
		minSDKVersion:     minSDK,
		projectDir:        projectDir,
		noDefaultFeatures: raw.NoDefaultFeatures,
		features:          raw.Features,
	}, nil
}

// App returns the owning app config.
func (a *Android) App() *App { return a.app }

// MinSDKVersion is the minimum Android API level.
func (a *Android) MinSDKVersion() int { return a.minSDKVersion }

// NoDefaultFeatures reports whether cargo should build with
// --no-default-features.
func (a *Android) NoDefaultFeatures() bool { return a.noDefaultFeatures }

// Features are the cargo features enabled for Android builds. The returned
// slice is a copy; callers append platform features from the Cargo metadata
// to it.
func (a *Android) Features() []string {
	return append([]string(nil), a.features...)
}

// SoName is the Android shared library name, e.g. "libmy_app.so".
func (a *Android) SoName() string {
	return "lib" + a.app.NameSnake() + ".so"
}

// ProjectDir is the absolute path of the generated Android Studio project.
// The app name is appended so Android Studio's window title is useful.
func (a *Android) ProjectDir() string {
	return filepath.Join(util.PrefixPath(a.app.RootDir(), a.projectDir), a.app.Name())
}

// ProjectDirExists reports whether the Android project has been generated.
func (a *Android) ProjectDirExists() bool {
	return dirExists(a.ProjectDir())
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
