// Package metadata reads the per-platform build configuration that lives in
// the Cargo manifest's `[package.metadata.mobl]` tables. Config answers "what
// is this app"; metadata answers "what does its native build need".
package metadata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ApplePlatform is the metadata for one Apple platform (ios or macos).
type ApplePlatform struct {
	Features          []string `toml:"features"`
	Frameworks        []string `toml:"frameworks"`
	VendorFrameworks  []string `toml:"vendor-frameworks"`
	VendorSDKs        []string `toml:"vendor-sdks"`
	AssetCatalogs     []string `toml:"asset-catalogs"`
	Pods              []string `toml:"pods"`
	AdditionalTargets []string `toml:"additional-targets"`
}

// NoDefaultFeatures reports whether the platform overrides the crate's
// default feature set.
func (p ApplePlatform) NoDefaultFeatures() bool {
	return p.Features != nil
}

// Apple is the `[package.metadata.mobl.apple]` table, split per platform.
type Apple struct {
	Supported *bool         `toml:"supported"`
	IOS       ApplePlatform `toml:"ios"`
	MacOS     ApplePlatform `toml:"macos"`
}

// IsSupported defaults to true when the table is absent.
func (a Apple) IsSupported() bool {
	return a.Supported == nil || *a.Supported
}

// AssetPack describes an Android Play Asset Delivery pack.
type AssetPack struct {
	Name         string `toml:"name"`
	DeliveryType string `toml:"delivery-type"`
}

// Android is the `[package.metadata.mobl.android]` table.
type Android struct {
	Supported               *bool       `toml:"supported"`
	Features                []string    `toml:"features"`
	AppSources              []string    `toml:"app-sources"`
	AppPlugins              []string    `toml:"app-plugins"`
	ProjectDependencies     []string    `toml:"project-dependencies"`
	AppDependencies         []string    `toml:"app-dependencies"`
	AppDependenciesPlatform []string    `toml:"app-dependencies-platform"`
	AssetPacks              []AssetPack `toml:"asset-packs"`
}

// IsSupported defaults to true when the table is absent.
func (a Android) IsSupported() bool {
	return a.Supported == nil || *a.Supported
}

// NoDefaultFeatures reports whether the platform overrides the crate's
// default feature set.
func (a Android) NoDefaultFeatures() bool {
	return a.Features != nil
}

// HasCode reports whether the generated Gradle project needs a Kotlin/Java
// compile step at all.
func (a Android) HasCode() bool {
	return len(a.ProjectDependencies) > 0 || len(a.AppDependencies) > 0 || len(a.AppDependenciesPlatform) > 0
}

// Metadata is the full mobl metadata table.
type Metadata struct {
	Apple   Apple   `toml:"apple"`
	Android Android `toml:"android"`
}

type manifest struct {
	Package struct {
		Name     string `toml:"name"`
		Version  string `toml:"version"`
		Metadata struct {
			Mobl Metadata `toml:"mobl"`
		} `toml:"metadata"`
	} `toml:"package"`
}

// Load parses Cargo.toml at rootDir and extracts the mobl metadata table.
// A manifest without the table yields zero-valued (all-defaults) metadata.
func Load(rootDir string) (*Metadata, error) {
	path := filepath.Join(rootDir, "Cargo.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read Cargo manifest at %q: %w", path, err)
	}
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse Cargo manifest at %q: %w", path, err)
	}
	meta := m.Package.Metadata.Mobl
	return &meta, nil
}
