package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd("0.0.0-test")

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"init", "gen", "doctor", "devices", "open", "android", "apple"} {
		assert.Contains(t, names, want)
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, root.PersistentFlags().Lookup("non-interactive"))
}

func TestAndroidSubcommands(t *testing.T) {
	root := NewRootCmd("0.0.0-test")
	androidCmd, _, err := root.Find([]string{"android"})
	require.NoError(t, err)

	var names []string
	for _, cmd := range androidCmd.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"build", "apk", "aab", "run", "devices", "env", "stacktrace"} {
		assert.Contains(t, names, want)
	}
}

func TestAppleSubcommands(t *testing.T) {
	root := NewRootCmd("0.0.0-test")
	appleCmd, _, err := root.Find([]string{"apple"})
	require.NoError(t, err)

	var names []string
	for _, cmd := range appleCmd.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"build", "archive", "export", "run", "list", "pod", "open"} {
		assert.Contains(t, names, want)
	}
}

func TestGenFlags(t *testing.T) {
	root := NewRootCmd("0.0.0-test")
	genCmd, _, err := root.Find([]string{"gen"})
	require.NoError(t, err)
	assert.NotNil(t, genCmd.Flags().Lookup("watch"))
}
