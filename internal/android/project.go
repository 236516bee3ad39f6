package android

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agiangrant/mobl/internal/config"
	"github.com/agiangrant/mobl/internal/dotcargo"
	"github.com/agiangrant/mobl/internal/metadata"
	"github.com/agiangrant/mobl/internal/templating"
	"github.com/agiangrant/mobl/internal/util"
)

const targetSdkVersion = 34

type projectData struct {
	AppName                 string
	StylizedName            string
	Identifier              string
	NameSnake               string
	MinSDK                  int
	TargetSDK               int
	Version                 string
	VersionCode             int32
	HasCode                 bool
	Targets                 []Target
	AppPlugins              []string
	ProjectDependencies     []string
	AppDependencies         []string
	AppDependenciesPlatform []string
	AssetPacks              []metadata.AssetPack
}

const assetPackGradleTemplate = `apply plugin: 'com.android.asset-pack'

assetPack {
    packName = "{{.Name}}"
    dynamicDelivery {
        deliveryType = "{{.DeliveryType}}"
    }
}
`

// CreateProject renders the Gradle project for the app and wires the crate's
// cross toolchains into .cargo/config.toml.
func CreateProject(ctx context.Context, env *Env, cfg *config.Config, meta *metadata.Android) error {
	app := cfg.App()
	projectDir := cfg.Android().ProjectDir()

	data := projectData{
		AppName:                 app.Name(),
		StylizedName:            app.StylizedName(),
		Identifier:              app.Identifier(),
		NameSnake:               app.NameSnake(),
		MinSDK:                  cfg.Android().MinSDKVersion(),
		TargetSDK:               targetSdkVersion,
		Version:                 app.Version().String(),
		VersionCode:             app.Version().VersionCode(),
		HasCode:                 meta.HasCode(),
		Targets:                 AllTargets(),
		AppPlugins:              meta.AppPlugins,
		ProjectDependencies:     meta.ProjectDependencies,
		AppDependencies:         meta.AppDependencies,
		AppDependenciesPlatform: meta.AppDependenciesPlatform,
		AssetPacks:              meta.AssetPacks,
	}

	pack, err := templating.LookupPack("android-studio")
	if err != nil {
		return err
	}
	if err := pack.Render(projectDir, data, nil); err != nil {
		return err
	}

	for _, assetPack := range meta.AssetPacks {
		if err := writeAssetPack(projectDir, assetPack); err != nil {
			return err
		}
	}
	for _, src := range meta.AppSources {
		if err := copyTree(filepath.Join(app.RootDir(), src), filepath.Join(projectDir, "app")); err != nil {
			return fmt.Errorf("failed to copy app sources from %q: %w", src, err)
		}
	}
	if err := linkAssets(util.PrefixPath(app.RootDir(), app.AssetDir()), projectDir); err != nil {
		return err
	}
	if err := writeDotCargo(env, cfg); err != nil {
		return err
	}
	if err := ensureGradleWrapper(ctx, env, projectDir); err != nil {
		return err
	}

	fmt.Println("")
	fmt.Printf("  ✓ Android project generated at %s\n", projectDir)
	return nil
}

func writeAssetPack(projectDir string, pack metadata.AssetPack) error {
	contents, err := templating.RenderString(assetPackGradleTemplate, pack)
	if err != nil {
		return err
	}
	dir := filepath.Join(projectDir, pack.Name)
	if err := os.MkdirAll(filepath.Join(dir, "src", "main", "assets"), 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "build.gradle"), []byte(contents), 0o644)
}

// linkAssets exposes the shared asset directory to the APK packaging step
// without duplicating it.
func linkAssets(assetDir, projectDir string) error {
	if _, err := os.Stat(assetDir); os.IsNotExist(err) {
		return nil
	}
	mainDir := filepath.Join(projectDir, "app", "src", "main")
	if err := os.MkdirAll(mainDir, 0o755); err != nil {
		return err
	}
	link := filepath.Join(mainDir, "assets")
	if _, err := os.Lstat(link); err == nil {
		return nil
	}
	rel, err := filepath.Rel(mainDir, assetDir)
	if err != nil {
		rel = assetDir
	}
	return os.Symlink(rel, link)
}

func writeDotCargo(env *Env, cfg *config.Config) error {
	rootDir := cfg.App().RootDir()
	f, err := dotcargo.Load(rootDir)
	if err != nil {
		return err
	}
	minSdk := cfg.Android().MinSDKVersion()
	for _, target := range AllTargets() {
		f.SetTarget(target.Triple, target.DotCargoTarget(env.Ndk(), minSdk))
	}
	f.SetEnv("ANDROID_NDK_ROOT", env.Ndk().Home())
	for key, value := range cfg.EnvStrings() {
		f.SetEnv(key, value)
	}
	return f.Write(rootDir)
}

// ensureGradleWrapper generates gradlew when a system gradle is available.
// Builds fall back to that system gradle either way.
func ensureGradleWrapper(ctx context.Context, env *Env, projectDir string) error {
	if _, err := os.Stat(filepath.Join(projectDir, "gradlew")); err == nil {
		return nil
	}
	if !util.CommandPresent("gradle") {
		return nil
	}
	return util.RunIn(ctx, projectDir, env.ExplicitEnv(), "gradle", "wrapper")
}

func copyTree(src, dest string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		out, err := os.Create(target)
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = io.Copy(out, in)
		return err
	})
}
