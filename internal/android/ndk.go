package android

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
)

// MinNdkMajor is the oldest NDK release with the unified llvm toolchain
// layout this package depends on.
const MinNdkMajor = 19

// ErrNdkNotFound means no NDK could be located under the SDK or via the
// conventional environment variables.
var ErrNdkNotFound = errors.New("no NDK found; install one via sdkmanager or export NDK_HOME")

// Ndk is a located NDK install.
type Ndk struct {
	home string
}

// LocateNdk finds an NDK: NDK_HOME and friends first, then the newest
// versioned directory under <sdk>/ndk, then the legacy ndk-bundle.
func LocateNdk(sdkRoot string) (*Ndk, error) {
	for _, key := range []string{"NDK_HOME", "ANDROID_NDK_ROOT", "ANDROID_NDK_HOME"} {
		if home := os.Getenv(key); home != "" {
			return &Ndk{home: home}, nil
		}
	}
	ndkDir := filepath.Join(sdkRoot, "ndk")
	entries, err := os.ReadDir(ndkDir)
	if err == nil {
		var versions []string
		for _, entry := range entries {
			if entry.IsDir() {
				versions = append(versions, entry.Name())
			}
		}
		if len(versions) > 0 {
			sort.Slice(versions, func(i, j int) bool {
				return compareDottedVersions(versions[i], versions[j]) > 0
			})
			return &Ndk{home: filepath.Join(ndkDir, versions[0])}, nil
		}
	}
	bundle := filepath.Join(sdkRoot, "ndk-bundle")
	if info, err := os.Stat(bundle); err == nil && info.IsDir() {
		return &Ndk{home: bundle}, nil
	}
	return nil, ErrNdkNotFound
}

// Home returns the NDK install directory.
func (n *Ndk) Home() string {
	return n.home
}

// Version reads Pkg.Revision from the NDK's source.properties.
func (n *Ndk) Version() (string, error) {
	path := filepath.Join(n.home, "source.properties")
	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	revision, ok := props.Get("Pkg.Revision")
	if !ok {
		return "", fmt.Errorf("no Pkg.Revision in %q", path)
	}
	return strings.TrimSpace(revision), nil
}

// CheckVersion errors when the NDK predates the unified toolchain layout.
func (n *Ndk) CheckVersion() error {
	version, err := n.Version()
	if err != nil {
		return err
	}
	major, _, _ := strings.Cut(version, ".")
	m, err := strconv.Atoi(major)
	if err != nil {
		return fmt.Errorf("unparseable NDK version %q", version)
	}
	if m < MinNdkMajor {
		return fmt.Errorf("NDK r%d is too old; r%d or newer is required", m, MinNdkMajor)
	}
	return nil
}

// HostTag returns the NDK prebuilt directory name for this host.
func HostTag() string {
	switch runtime.GOOS {
	case "darwin":
		// Apple Silicon NDKs still ship under the x86_64 tag.
		return "darwin-x86_64"
	case "linux":
		return "linux-x86_64"
	default:
		return runtime.GOOS + "-x86_64"
	}
}

func (n *Ndk) toolchainBin() string {
	return filepath.Join(n.home, "toolchains", "llvm", "prebuilt", HostTag(), "bin")
}

// ClangPath returns the target C compiler for a triple at minSdk.
func (n *Ndk) ClangPath(target Target, minSdk int) string {
	return filepath.Join(n.toolchainBin(), fmt.Sprintf("%s%d-clang", target.ClangTriple, minSdk))
}

// ClangPlusPlusPath returns the target C++ compiler for a triple at minSdk.
func (n *Ndk) ClangPlusPlusPath(target Target, minSdk int) string {
	return n.ClangPath(target, minSdk) + "++"
}

// ArPath returns the archiver. r19 through r21 ship per-target GNU ar;
// newer NDKs only ship llvm-ar.
func (n *Ndk) ArPath() string {
	return filepath.Join(n.toolchainBin(), "llvm-ar")
}

// NdkStackPath returns the ndk-stack symbolizer.
func (n *Ndk) NdkStackPath() string {
	return filepath.Join(n.home, "ndk-stack")
}

func compareDottedVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var ai, bi int
		if i < len(as) {
			ai, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bi, _ = strconv.Atoi(bs[i])
		}
		if ai != bi {
			return ai - bi
		}
	}
	return 0
}
