package templating

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPack(t *testing.T) {
	for _, name := range []string{"base", "android-studio", "xcode"} {
		pack, err := LookupPack(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, pack.Name())
	}

	_, err := LookupPack("does-not-exist")
	require.Error(t, err)
}

func TestRenderBasePack(t *testing.T) {
	pack, err := LookupPack("base")
	require.NoError(t, err)

	dest := t.TempDir()
	data := map[string]string{
		"NameSnake":    "test_app",
		"StylizedName": "Test App",
		"AssetDirRel":  "assets",
	}
	require.NoError(t, pack.Render(dest, data, nil))

	gitignore, err := os.ReadFile(filepath.Join(dest, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(gitignore), "assets/.bundle")

	lib, err := os.ReadFile(filepath.Join(dest, "src", "lib.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(lib), "start_test_app")
	assert.Contains(t, string(lib), "Hello from Test App!")

	// .tmpl suffix must not survive rendering
	_, err = os.Stat(filepath.Join(dest, "src", "lib.rs.tmpl"))
	assert.True(t, os.IsNotExist(err))
}

func TestRenderAndroidPack(t *testing.T) {
	pack, err := LookupPack("android-studio")
	require.NoError(t, err)

	dest := t.TempDir()
	data := map[string]any{
		"AppName":                 "test-app",
		"StylizedName":            "Test App",
		"Identifier":              "com.example.test_app",
		"NameSnake":               "test_app",
		"MinSDK":                  24,
		"TargetSDK":               34,
		"Version":                 "1.2.3",
		"VersionCode":             10203,
		"HasCode":                 false,
		"BuildNumber":             "1",
		"Targets":                 []map[string]string{{"Arch": "arm64", "ABI": "arm64-v8a"}},
		"AppPlugins":              []string{},
		"ProjectDependencies":     []string{},
		"AppDependencies":         []string{"androidx.core:core-ktx:1.12.0"},
		"AppDependenciesPlatform": []string{},
		"AssetPacks":              nil,
	}
	require.NoError(t, pack.Render(dest, data, nil))

	// The manifest must register the exact component `am start -n` launches.
	manifest, err := os.ReadFile(filepath.Join(dest, "app", "src", "main", "AndroidManifest.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `android:name="android.app.NativeActivity"`)
	assert.Contains(t, string(manifest), `android:value="test_app"`)
	assert.Contains(t, string(manifest), `android:hasCode="false"`)

	gradle, err := os.ReadFile(filepath.Join(dest, "app", "build.gradle"))
	require.NoError(t, err)
	assert.Contains(t, string(gradle), "abiFilters 'arm64-v8a'")
	assert.Contains(t, string(gradle), "implementation 'androidx.core:core-ktx:1.12.0'")
	assert.NotContains(t, string(gradle), "assetPacks")
}

func TestRenderRenamerRelocates(t *testing.T) {
	pack, err := LookupPack("base")
	require.NoError(t, err)

	dest := t.TempDir()
	data := map[string]string{
		"NameSnake":    "test_app",
		"StylizedName": "Test App",
		"AssetDirRel":  "assets",
	}
	err = pack.Render(dest, data, func(rel string) string {
		if filepath.Base(rel) == "lib.rs" {
			return filepath.Join("crate", "src", "lib.rs")
		}
		return rel
	})
	require.NoError(t, err)

	lib, err := os.ReadFile(filepath.Join(dest, "crate", "src", "lib.rs"))
	require.NoError(t, err)
	assert.Contains(t, string(lib), "start_test_app")
	_, err = os.Stat(filepath.Join(dest, "src", "lib.rs"))
	assert.True(t, os.IsNotExist(err))
}

func TestRenderRejectsEscapingPaths(t *testing.T) {
	pack, err := LookupPack("base")
	require.NoError(t, err)

	err = pack.Render(t.TempDir(), map[string]string{
		"NameSnake":    "x",
		"StylizedName": "x",
		"AssetDirRel":  "assets",
	}, func(rel string) string {
		return filepath.Join("..", rel)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "escapes project directory")
}

func TestRenderSkipViaRenamer(t *testing.T) {
	pack, err := LookupPack("xcode")
	require.NoError(t, err)

	dest := t.TempDir()
	data := map[string]any{
		"StylizedName":     "Test App",
		"NameSnake":        "test_app",
		"Identifier":       "com.example.test_app",
		"Version":          "0.1.0",
		"BuildNumber":      "1",
		"DeploymentTarget": "9.0",
		"Scheme":           "test-app_iOS",
		"Pods":             []string{},
	}
	err = pack.Render(dest, data, func(rel string) string {
		if strings.HasPrefix(filepath.Base(rel), "Podfile") {
			return ""
		}
		return rel
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dest, "Podfile"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dest, "Sources", "main.m"))
	assert.NoError(t, err)
}

func TestRenderString(t *testing.T) {
	out, err := RenderString("lib{{.Name}}.so", map[string]string{"Name": "demo"})
	require.NoError(t, err)
	assert.Equal(t, "libdemo.so", out)

	_, err = RenderString("{{.Missing}}", map[string]string{})
	require.Error(t, err)
}
