package android

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeNdk(t *testing.T, sdkRoot, version string) string {
	t.Helper()
	home := filepath.Join(sdkRoot, "ndk", version)
	require.NoError(t, os.MkdirAll(home, 0o755))
	contents := "Pkg.Desc = Android NDK\nPkg.Revision = " + version + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "source.properties"), []byte(contents), 0o644))
	return home
}

func TestLocateNdkPicksNewest(t *testing.T) {
	for _, key := range []string{"NDK_HOME", "ANDROID_NDK_ROOT", "ANDROID_NDK_HOME"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	sdkRoot := t.TempDir()
	writeNdk(t, sdkRoot, "23.1.7779620")
	newest := writeNdk(t, sdkRoot, "25.2.9519653")
	writeNdk(t, sdkRoot, "9.9.0")

	ndk, err := LocateNdk(sdkRoot)
	require.NoError(t, err)
	assert.Equal(t, newest, ndk.Home())
}

func TestLocateNdkHonorsEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("NDK_HOME", home)

	ndk, err := LocateNdk(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, home, ndk.Home())
}

func TestLocateNdkMissing(t *testing.T) {
	for _, key := range []string{"NDK_HOME", "ANDROID_NDK_ROOT", "ANDROID_NDK_HOME"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	_, err := LocateNdk(t.TempDir())
	assert.ErrorIs(t, err, ErrNdkNotFound)
}

func TestNdkVersion(t *testing.T) {
	sdkRoot := t.TempDir()
	home := writeNdk(t, sdkRoot, "25.2.9519653")

	ndk := &Ndk{home: home}
	version, err := ndk.Version()
	require.NoError(t, err)
	assert.Equal(t, "25.2.9519653", version)
	assert.NoError(t, ndk.CheckVersion())
}

func TestNdkCheckVersionTooOld(t *testing.T) {
	sdkRoot := t.TempDir()
	home := writeNdk(t, sdkRoot, "17.2.4988734")

	ndk := &Ndk{home: home}
	err := ndk.CheckVersion()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too old")
}

func TestCompareDottedVersions(t *testing.T) {
	assert.Positive(t, compareDottedVersions("25.2.9519653", "23.1.7779620"))
	assert.Negative(t, compareDottedVersions("9.9.0", "10.0.0"))
	assert.Zero(t, compareDottedVersions("21.0", "21.0.0"))
}
