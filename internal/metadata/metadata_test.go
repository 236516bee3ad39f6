package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte(contents), 0o644))
	return dir
}

func TestLoadFullTable(t *testing.T) {
	dir := writeManifest(t, `
[package]
name = "demo"
version = "0.1.0"

[package.metadata.mobl.apple]
supported = true

[package.metadata.mobl.apple.ios]
features = ["metal"]
frameworks = ["UserNotifications"]
vendor-frameworks = ["vendor/Analytics.framework"]
vendor-sdks = ["vendor/sdk"]
asset-catalogs = ["assets/Media.xcassets"]
pods = ["Firebase/Core"]
additional-targets = ["watch-app"]

[package.metadata.mobl.apple.macos]
frameworks = ["AppKit"]

[package.metadata.mobl.android]
features = []
app-sources = ["android/src"]
app-plugins = ["org.mozilla.rust-android-gradle.rust-android"]
project-dependencies = ["org.jetbrains.kotlin:kotlin-gradle-plugin:1.9.0"]
app-dependencies = ["androidx.core:core-ktx:1.12.0"]
app-dependencies-platform = ["com.google.firebase:firebase-bom:32.0.0"]

[[package.metadata.mobl.android.asset-packs]]
name = "textures"
delivery-type = "install-time"
`)

	meta, err := Load(dir)
	require.NoError(t, err)

	assert.True(t, meta.Apple.IsSupported())
	assert.True(t, meta.Apple.IOS.NoDefaultFeatures())
	assert.Equal(t, []string{"metal"}, meta.Apple.IOS.Features)
	assert.Equal(t, []string{"UserNotifications"}, meta.Apple.IOS.Frameworks)
	assert.Equal(t, []string{"Firebase/Core"}, meta.Apple.IOS.Pods)
	assert.False(t, meta.Apple.MacOS.NoDefaultFeatures())
	assert.Equal(t, []string{"AppKit"}, meta.Apple.MacOS.Frameworks)

	assert.True(t, meta.Android.IsSupported())
	assert.True(t, meta.Android.NoDefaultFeatures())
	assert.True(t, meta.Android.HasCode())
	if diff := cmp.Diff([]AssetPack{{Name: "textures", DeliveryType: "install-time"}}, meta.Android.AssetPacks); diff != "" {
		t.Errorf("asset packs mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDefaultsWhenAbsent(t *testing.T) {
	dir := writeManifest(t, `
[package]
name = "demo"
version = "0.1.0"
`)

	meta, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, meta.Apple.IsSupported())
	assert.True(t, meta.Android.IsSupported())
	assert.False(t, meta.Android.NoDefaultFeatures())
	assert.False(t, meta.Android.HasCode())
	assert.Empty(t, meta.Android.AssetPacks)
}

func TestLoadUnsupportedPlatform(t *testing.T) {
	dir := writeManifest(t, `
[package]
name = "demo"
version = "0.1.0"

[package.metadata.mobl.android]
supported = false
`)

	meta, err := Load(dir)
	require.NoError(t, err)
	assert.False(t, meta.Android.IsSupported())
	assert.True(t, meta.Apple.IsSupported())
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cargo manifest")
}
