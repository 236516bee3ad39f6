package env

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("PATH", "/usr/bin:/bin")
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("SSH_AUTH_SOCK", "/tmp/agent.sock")

	e, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin:/bin", e.Path())

	environ := e.ExplicitEnv()
	assert.Contains(t, environ, "HOME=/home/tester")
	assert.Contains(t, environ, "PATH=/usr/bin:/bin")
	assert.Contains(t, environ, "TERM=xterm-256color")
	assert.Contains(t, environ, "SSH_AUTH_SOCK=/tmp/agent.sock")
}

func TestNewMissingHome(t *testing.T) {
	t.Setenv("HOME", "")
	t.Setenv("PATH", "/usr/bin")
	require.NoError(t, os.Unsetenv("HOME"))

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HOME")
}

func TestPrependToPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("PATH", "/usr/bin")

	e, err := New()
	require.NoError(t, err)
	assert.Equal(t, "/opt/tools:/usr/bin", e.PrependToPath("/opt/tools"))
}
