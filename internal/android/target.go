package android

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agiangrant/mobl/internal/dotcargo"
)

// Target is one supported Android architecture.
type Target struct {
	// Arch is the short name used for Gradle flavors and on the CLI.
	Arch string
	// Triple is the Rust target triple.
	Triple string
	// ClangTriple differs from Triple only for 32-bit ARM.
	ClangTriple string
	// ABI is the Android binary interface name used under jniLibs.
	ABI string
}

var targets = map[string]Target{
	"arm64": {
		Arch:        "arm64",
		Triple:      "aarch64-linux-android",
		ClangTriple: "aarch64-linux-android",
		ABI:         "arm64-v8a",
	},
	"arm": {
		Arch:        "arm",
		Triple:      "armv7-linux-androideabi",
		ClangTriple: "armv7a-linux-androideabi",
		ABI:         "armeabi-v7a",
	},
	"x86": {
		Arch:        "x86",
		Triple:      "i686-linux-android",
		ClangTriple: "i686-linux-android",
		ABI:         "x86",
	},
	"x86_64": {
		Arch:        "x86_64",
		Triple:      "x86_64-linux-android",
		ClangTriple: "x86_64-linux-android",
		ABI:         "x86_64",
	},
}

// AllTargets returns every supported target in stable order.
func AllTargets() []Target {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Target, 0, len(names))
	for _, name := range names {
		out = append(out, targets[name])
	}
	return out
}

// TargetForArch resolves a short arch name like "arm64".
func TargetForArch(arch string) (Target, error) {
	t, ok := targets[arch]
	if !ok {
		return Target{}, fmt.Errorf("unsupported Android arch %q (expected one of %s)", arch, strings.Join(archNames(), ", "))
	}
	return t, nil
}

// TargetForAbi resolves an ABI name like "arm64-v8a", as reported by adb.
func TargetForAbi(abi string) (Target, error) {
	for _, t := range targets {
		if t.ABI == abi {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("unsupported device ABI %q", abi)
}

func archNames() []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FlavorName returns the Gradle task infix, e.g. Arm64 for assembleArm64Debug.
func (t Target) FlavorName() string {
	return strings.ToUpper(t.Arch[:1]) + t.Arch[1:]
}

// CargoEnv returns the cross-compilation variables cargo needs for this
// target: the C toolchain for build scripts and the rustc linker override.
func (t Target) CargoEnv(ndk *Ndk, minSdk int) map[string]string {
	tripleEnv := strings.ToUpper(strings.ReplaceAll(t.Triple, "-", "_"))
	return map[string]string{
		"CC_" + t.Triple:  ndk.ClangPath(t, minSdk),
		"CXX_" + t.Triple: ndk.ClangPlusPlusPath(t, minSdk),
		"AR_" + t.Triple:  ndk.ArPath(),
		"CARGO_TARGET_" + tripleEnv + "_LINKER": ndk.ClangPath(t, minSdk),
		"ANDROID_PLATFORM": fmt.Sprintf("%d", minSdk),
	}
}

// DotCargoTarget returns the [target.<triple>] entry recorded in the
// project's .cargo/config.toml.
func (t Target) DotCargoTarget(ndk *Ndk, minSdk int) dotcargo.Target {
	return dotcargo.Target{
		Ar:     ndk.ArPath(),
		Linker: ndk.ClangPath(t, minSdk),
	}
}
