package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnderRoot(t *testing.T) {
	root := t.TempDir()

	under, err := UnderRoot("gen/android", root)
	require.NoError(t, err)
	assert.True(t, under)

	under, err = UnderRoot(".", root)
	require.NoError(t, err)
	assert.True(t, under)

	under, err = UnderRoot("../outside", root)
	require.NoError(t, err)
	assert.False(t, under)

	under, err = UnderRoot("gen/../..", root)
	require.NoError(t, err)
	assert.False(t, under)

	// Absolute paths are compared as-is, not joined onto the root.
	under, err = UnderRoot(t.TempDir(), root)
	require.NoError(t, err)
	assert.False(t, under)

	under, err = UnderRoot(filepath.Join(root, "gen"), root)
	require.NoError(t, err)
	assert.True(t, under)
}

func TestPrefixPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/root", "rel"), PrefixPath("/root", "rel"))
	assert.Equal(t, "/abs", PrefixPath("/root", "/abs"))
}

func TestUnprefixPath(t *testing.T) {
	rel, err := UnprefixPath("/root", "/root/sub/file")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("sub", "file"), rel)

	_, err = UnprefixPath("/root", "/elsewhere/file")
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	expanded, err := ExpandHome("~/projects")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "projects"), expanded)

	expanded, err = ExpandHome("/no/tilde")
	require.NoError(t, err)
	assert.Equal(t, "/no/tilde", expanded)
}

func TestInstallDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := InstallDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".mobl"), dir)

	tools, err := ToolsDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tools"), tools)
}
