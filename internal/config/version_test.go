package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersionDouble(t *testing.T) {
	v, err := ParseVersionDouble("9.0")
	require.NoError(t, err)
	assert.Equal(t, VersionDouble{Major: 9}, v)
	assert.Equal(t, "9.0", v.String())

	v, err = ParseVersionDouble("16")
	require.NoError(t, err)
	assert.Equal(t, VersionDouble{Major: 16}, v)

	for _, bad := range []string{"", "1.2.3", "a.b", "1.-2"} {
		_, err := ParseVersionDouble(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseVersionTriple(t *testing.T) {
	v, err := ParseVersionTriple("1.2.3")
	require.NoError(t, err)
	assert.Equal(t, VersionTriple{Major: 1, Minor: 2, Patch: 3}, v)

	v, err = ParseVersionTriple("2")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", v.String())

	_, err = ParseVersionTriple("1.2.3.4")
	assert.Error(t, err)
}

func TestParseVersionNumber(t *testing.T) {
	v, err := ParseVersionNumber("1.2.3.4.5")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4.5", v.String())
	assert.Equal(t, []int{4, 5}, v.Extra)

	v, err = ParseVersionNumber("0.1.0")
	require.NoError(t, err)
	assert.Empty(t, v.Extra)

	_, err = ParseVersionNumber("1.x.0")
	assert.Error(t, err)
}

func TestVersionCode(t *testing.T) {
	v, err := ParseVersionNumber("1.2.3")
	require.NoError(t, err)
	assert.Equal(t, int32(1_002_003), v.VersionCode())
}

func TestWithBuildNumber(t *testing.T) {
	v, err := ParseVersionNumber("1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.42", v.WithBuildNumber(42).String())
	assert.Equal(t, "1.2.3", v.String())
}
