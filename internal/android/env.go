// Package android drives the Android side of a project: SDK/NDK discovery,
// Gradle project generation, cargo cross builds, and adb deployment.
package android

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magiconair/properties"
	"github.com/rs/zerolog/log"

	baseenv "github.com/agiangrant/mobl/internal/env"
)

// ErrSdkNotFound means neither ANDROID_SDK_ROOT nor ANDROID_HOME points at an
// installed SDK.
var ErrSdkNotFound = errors.New("ANDROID_SDK_ROOT is not set; install the Android SDK and export ANDROID_SDK_ROOT")

// Env wraps the base environment with the Android SDK and NDK locations.
type Env struct {
	base    *baseenv.Env
	sdkRoot string
	ndk     *Ndk
}

// NewEnv discovers the SDK and NDK. ANDROID_HOME is honored as a deprecated
// fallback for ANDROID_SDK_ROOT.
func NewEnv(base *baseenv.Env) (*Env, error) {
	sdkRoot := os.Getenv("ANDROID_SDK_ROOT")
	if sdkRoot == "" {
		if legacy := os.Getenv("ANDROID_HOME"); legacy != "" {
			log.Warn().Msg("ANDROID_HOME is deprecated; export ANDROID_SDK_ROOT instead")
			sdkRoot = legacy
		}
	}
	if sdkRoot == "" {
		return nil, ErrSdkNotFound
	}
	if info, err := os.Stat(sdkRoot); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("ANDROID_SDK_ROOT %q is not a directory", sdkRoot)
	}
	ndk, err := LocateNdk(sdkRoot)
	if err != nil {
		return nil, err
	}
	return &Env{base: base, sdkRoot: sdkRoot, ndk: ndk}, nil
}

// Base returns the wrapped environment.
func (e *Env) Base() *baseenv.Env {
	return e.base
}

// SdkRoot returns the SDK install directory.
func (e *Env) SdkRoot() string {
	return e.sdkRoot
}

// Ndk returns the located NDK.
func (e *Env) Ndk() *Ndk {
	return e.ndk
}

// SdkVersion reads Pkg.Revision from the SDK's command-line tools, probing
// the modern layout first and the legacy tools directory second.
func (e *Env) SdkVersion() (string, error) {
	candidates := []string{
		filepath.Join(e.sdkRoot, "cmdline-tools", "latest", "source.properties"),
		filepath.Join(e.sdkRoot, "tools", "source.properties"),
	}
	for _, path := range candidates {
		props, err := properties.LoadFile(path, properties.UTF8)
		if err != nil {
			continue
		}
		if revision, ok := props.Get("Pkg.Revision"); ok {
			return strings.TrimSpace(revision), nil
		}
	}
	return "", fmt.Errorf("no readable source.properties under %q", e.sdkRoot)
}

// ExplicitEnv returns the variables subprocesses get: the base allowlist plus
// the SDK and NDK locations under every name the Android tooling looks for.
func (e *Env) ExplicitEnv() []string {
	environ := e.base.ExplicitEnv()
	environ = append(environ,
		"ANDROID_SDK_ROOT="+e.sdkRoot,
		"ANDROID_HOME="+e.sdkRoot,
	)
	if e.ndk != nil {
		environ = append(environ,
			"NDK_HOME="+e.ndk.Home(),
			"ANDROID_NDK_ROOT="+e.ndk.Home(),
		)
	}
	return environ
}
