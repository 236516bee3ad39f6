package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndLoad(t *testing.T) {
	root := t.TempDir()
	raw := Raw{
		App: RawApp{
			Name:    "my-app",
			Domain:  "example.com",
			Version: "1.2.3",
		},
		Android: &RawAndroid{MinSDKVersion: 26},
	}
	require.NoError(t, Write(root, raw))

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "my-app", cfg.App().Name())
	assert.Equal(t, "1.2.3", cfg.App().Version().String())
	assert.Equal(t, 26, cfg.Android().MinSDKVersion())
	assert.Equal(t, filepath.Join(root, FileName), cfg.Path())
}

func TestLoadMissingAppleSection(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Write(root, Raw{App: RawApp{Name: "app", Domain: "example.com"}}))

	cfg, err := Load(root)
	require.NoError(t, err)

	_, err = cfg.Apple()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apple.development-team")
}

func TestAppleErrorKeepsRealCause(t *testing.T) {
	root := t.TempDir()
	cfg, err := FromRaw(root, Raw{
		App:   RawApp{Name: "app", Domain: "example.com"},
		Apple: &RawApple{DevelopmentTeam: "ABC123DEF", IOSVersion: "bogus"},
	})
	require.NoError(t, err)

	_, err = cfg.Apple()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apple.ios-version")

	cfg, err = FromRaw(root, Raw{
		App:   RawApp{Name: "app", Domain: "example.com"},
		Apple: &RawApple{DevelopmentTeam: ""},
	})
	require.NoError(t, err)

	_, err = cfg.Apple()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")
}

func TestEnvStrings(t *testing.T) {
	root := t.TempDir()
	cfg, err := FromRaw(root, Raw{
		App: RawApp{Name: "app", Domain: "example.com"},
		Env: map[string]any{
			"RUST_BACKTRACE": "1",
			"SOME_NUMBER":    int64(42),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"RUST_BACKTRACE": "1"}, cfg.EnvStrings())
}

func TestDiscoverRootWalksUp(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Write(root, Raw{App: RawApp{Name: "app", Domain: "example.com"}}))
	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := DiscoverRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestDiscoverRootNotFound(t *testing.T) {
	_, err := DiscoverRoot(t.TempDir())
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestAndroidDerivedValues(t *testing.T) {
	root := t.TempDir()
	cfg, err := FromRaw(root, Raw{App: RawApp{Name: "game-engine", Domain: "example.com"}})
	require.NoError(t, err)

	android := cfg.Android()
	assert.Equal(t, "libgame_engine.so", android.SoName())
	assert.Equal(t, 24, android.MinSDKVersion())
	assert.Equal(t, filepath.Join(root, "gen", "android", "game-engine"), android.ProjectDir())
}

func TestFeaturesIsolatedFromCallers(t *testing.T) {
	root := t.TempDir()
	cfg, err := FromRaw(root, Raw{
		App:     RawApp{Name: "app", Domain: "example.com"},
		Android: &RawAndroid{Features: []string{"vulkan"}},
	})
	require.NoError(t, err)

	features := cfg.Android().Features()
	features[0] = "mutated"
	_ = append(features, "extra")

	assert.Equal(t, []string{"vulkan"}, cfg.Android().Features())
}

func TestProjectDirContainment(t *testing.T) {
	root := t.TempDir()
	_, err := FromRaw(root, Raw{
		App:     RawApp{Name: "app", Domain: "example.com"},
		Android: &RawAndroid{ProjectDir: "../outside"},
	})
	require.Error(t, err)

	_, err = FromRaw(root, Raw{
		App:     RawApp{Name: "app", Domain: "example.com"},
		Android: &RawAndroid{ProjectDir: "gen/an droid"},
	})
	require.Error(t, err)

	_, err = FromRaw(root, Raw{
		App:     RawApp{Name: "app", Domain: "example.com"},
		Android: &RawAndroid{ProjectDir: t.TempDir()},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside of the app root")

	// Spaces only break the android toolchain; the apple side keeps them.
	cfg, err := FromRaw(root, Raw{
		App:   RawApp{Name: "app", Domain: "example.com"},
		Apple: &RawApple{DevelopmentTeam: "ABC123DEF", ProjectDir: "gen/ap ple"},
	})
	require.NoError(t, err)
	apple, err := cfg.Apple()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "gen", "ap ple"), apple.ProjectDir())
}
