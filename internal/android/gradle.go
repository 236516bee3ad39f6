package android

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/agiangrant/mobl/internal/config"
	"github.com/agiangrant/mobl/internal/metadata"
	"github.com/agiangrant/mobl/internal/rust"
	"github.com/agiangrant/mobl/internal/util"
)

// gradlew runs the wrapper in the generated project, falling back to a
// system gradle when the wrapper was never generated.
func gradlew(ctx context.Context, env *Env, cfg *config.Config, args ...string) error {
	projectDir := cfg.Android().ProjectDir()
	name := filepath.Join(projectDir, "gradlew")
	if _, err := os.Stat(name); err != nil {
		if !util.CommandPresent("gradle") {
			return fmt.Errorf("no gradlew in %q and no system gradle on PATH", projectDir)
		}
		name = "gradle"
	}
	args = append(args, gradleNoiseFlag())
	if err := util.RunIn(ctx, projectDir, env.ExplicitEnv(), name, args...); err != nil {
		return fmt.Errorf("gradle invocation failed: %w", err)
	}
	return nil
}

// gradleNoiseFlag maps the active log level onto Gradle's verbosity.
func gradleNoiseFlag() string {
	switch zerolog.GlobalLevel() {
	case zerolog.TraceLevel:
		return "--debug"
	case zerolog.DebugLevel:
		return "--info"
	default:
		return "--warn"
	}
}

// CompileLib cross-compiles the crate for one target and links the output
// into the project's jniLibs tree.
func CompileLib(ctx context.Context, env *Env, cfg *config.Config, meta *metadata.Android, target Target, release bool) error {
	if err := rust.EnsureTarget(ctx, target.Triple); err != nil {
		return err
	}
	features := cfg.Android().Features()
	noDefault := cfg.Android().NoDefaultFeatures()
	if meta != nil && meta.NoDefaultFeatures() {
		noDefault = true
		features = append(features, meta.Features...)
	}
	extraEnv := target.CargoEnv(env.Ndk(), cfg.Android().MinSDKVersion())
	for key, value := range cfg.EnvStrings() {
		extraEnv[key] = value
	}
	build := rust.Build{
		Dir:               cfg.App().RootDir(),
		Triple:            target.Triple,
		Release:           release,
		Features:          features,
		NoDefaultFeatures: noDefault,
		ExtraEnv:          extraEnv,
	}
	if err := build.Run(ctx, env.Base()); err != nil {
		return err
	}
	so := filepath.Join(cfg.App().RootDir(), "target", target.Triple, build.Profile(), cfg.Android().SoName())
	return linkJniLib(cfg, target, so)
}

// BuildApk produces per-arch APKs via the Gradle flavors.
func BuildApk(ctx context.Context, env *Env, cfg *config.Config, targets []Target, release bool) error {
	meta, err := metadata.Load(cfg.App().RootDir())
	if err != nil {
		return err
	}
	tasks := make([]string, 0, len(targets))
	for _, target := range targets {
		if err := CompileLib(ctx, env, cfg, &meta.Android, target, release); err != nil {
			return err
		}
		tasks = append(tasks, "assemble"+target.FlavorName()+buildTypeTask(release))
	}
	if err := gradlew(ctx, env, cfg, tasks...); err != nil {
		return err
	}
	for _, target := range targets {
		fmt.Printf("  ✓ Built %s\n", ApkPath(cfg, target, release))
	}
	return nil
}

// BuildAab produces per-arch App Bundles.
func BuildAab(ctx context.Context, env *Env, cfg *config.Config, targets []Target, release bool) error {
	meta, err := metadata.Load(cfg.App().RootDir())
	if err != nil {
		return err
	}
	tasks := make([]string, 0, len(targets))
	for _, target := range targets {
		if err := CompileLib(ctx, env, cfg, &meta.Android, target, release); err != nil {
			return err
		}
		tasks = append(tasks, ":app:bundle"+target.FlavorName()+buildTypeTask(release))
	}
	if err := gradlew(ctx, env, cfg, tasks...); err != nil {
		return err
	}
	for _, target := range targets {
		fmt.Printf("  ✓ Built %s\n", AabPath(cfg, target, release))
	}
	return nil
}

// ApkPath returns where Gradle leaves the flavor's APK.
func ApkPath(cfg *config.Config, target Target, release bool) string {
	buildType := buildTypeName(release)
	fileName := fmt.Sprintf("app-%s-%s.apk", target.Arch, buildType)
	return filepath.Join(cfg.Android().ProjectDir(), "app", "build", "outputs", "apk", target.Arch, buildType, fileName)
}

// AabPath returns where Gradle leaves the flavor's App Bundle.
func AabPath(cfg *config.Config, target Target, release bool) string {
	buildType := buildTypeName(release)
	fileName := fmt.Sprintf("app-%s-%s.aab", target.Arch, buildType)
	return filepath.Join(cfg.Android().ProjectDir(), "app", "build", "outputs", "bundle", target.Arch+buildTypeTask(release), fileName)
}

func buildTypeTask(release bool) string {
	if release {
		return "Release"
	}
	return "Debug"
}
