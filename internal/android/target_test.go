package android

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetForArch(t *testing.T) {
	target, err := TargetForArch("arm64")
	require.NoError(t, err)
	assert.Equal(t, "aarch64-linux-android", target.Triple)
	assert.Equal(t, "arm64-v8a", target.ABI)

	_, err = TargetForArch("mips")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arm, arm64, x86, x86_64")
}

func TestTargetForAbi(t *testing.T) {
	target, err := TargetForAbi("armeabi-v7a")
	require.NoError(t, err)
	assert.Equal(t, "armv7-linux-androideabi", target.Triple)
	assert.Equal(t, "armv7a-linux-androideabi", target.ClangTriple)

	_, err = TargetForAbi("armeabi")
	assert.Error(t, err)
}

func TestAllTargetsStableOrder(t *testing.T) {
	var archs []string
	for _, target := range AllTargets() {
		archs = append(archs, target.Arch)
	}
	assert.Equal(t, []string{"arm", "arm64", "x86", "x86_64"}, archs)
}

func TestFlavorName(t *testing.T) {
	target, err := TargetForArch("x86_64")
	require.NoError(t, err)
	assert.Equal(t, "X86_64", target.FlavorName())

	target, err = TargetForArch("arm64")
	require.NoError(t, err)
	assert.Equal(t, "Arm64", target.FlavorName())
}

func TestCargoEnv(t *testing.T) {
	ndk := &Ndk{home: filepath.Join("/", "opt", "ndk")}
	target, err := TargetForArch("arm")
	require.NoError(t, err)

	env := target.CargoEnv(ndk, 24)
	assert.Contains(t, env["CARGO_TARGET_ARMV7_LINUX_ANDROIDEABI_LINKER"], "armv7a-linux-androideabi24-clang")
	assert.Contains(t, env["CC_armv7-linux-androideabi"], "armv7a-linux-androideabi24-clang")
	assert.Contains(t, env["AR_armv7-linux-androideabi"], "llvm-ar")
	assert.Equal(t, "24", env["ANDROID_PLATFORM"])
}
