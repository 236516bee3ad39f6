package android

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog/log"

	"github.com/agiangrant/mobl/internal/util"
)

// BundletoolVersion is the pinned release used for the jar download.
const BundletoolVersion = "1.8.0"

var bundletoolURL = fmt.Sprintf(
	"https://github.com/google/bundletool/releases/download/%s/bundletool-all-%s.jar",
	BundletoolVersion, BundletoolVersion,
)

// Bundletool is an installed copy of Google's bundletool.
type Bundletool struct {
	// jarPath is empty when a brew-installed `bundletool` wrapper is used.
	jarPath string
}

// InstallBundletool makes bundletool available: brew on macOS, otherwise a
// pinned jar downloaded into the tools directory.
func InstallBundletool(ctx context.Context, client *http.Client) (*Bundletool, error) {
	if runtime.GOOS == "darwin" {
		if !util.CommandPresent("bundletool") {
			fmt.Println("  ✓ Installing bundletool via Homebrew")
			if err := util.Run(ctx, "brew", "install", "bundletool"); err != nil {
				return nil, fmt.Errorf("failed to install bundletool: %w", err)
			}
		}
		return &Bundletool{}, nil
	}
	toolsDir, err := util.ToolsDir()
	if err != nil {
		return nil, err
	}
	jarPath := filepath.Join(toolsDir, fmt.Sprintf("bundletool-all-%s.jar", BundletoolVersion))
	if _, err := os.Stat(jarPath); err == nil {
		return &Bundletool{jarPath: jarPath}, nil
	}
	if err := downloadJar(ctx, client, jarPath); err != nil {
		return nil, err
	}
	return &Bundletool{jarPath: jarPath}, nil
}

func downloadJar(ctx context.Context, client *http.Client, jarPath string) error {
	if client == nil {
		client = http.DefaultClient
	}
	log.Info().Str("url", bundletoolURL).Msg("downloading bundletool")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bundletoolURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download bundletool: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download bundletool: unexpected status %s", resp.Status)
	}
	if err := os.MkdirAll(filepath.Dir(jarPath), 0o755); err != nil {
		return err
	}
	pending, err := renameio.NewPendingFile(jarPath, renameio.WithPermissions(0o644))
	if err != nil {
		return err
	}
	defer pending.Cleanup()
	if _, err := io.Copy(pending, resp.Body); err != nil {
		return fmt.Errorf("failed to download bundletool: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return err
	}
	fmt.Printf("  ✓ Downloaded %s\n", jarPath)
	return nil
}

func (b *Bundletool) command(args ...string) (string, []string) {
	if b.jarPath == "" {
		return "bundletool", args
	}
	return "java", append([]string{"-jar", b.jarPath}, args...)
}

// BuildApks converts an App Bundle into a .apks archive holding the splits
// the connected device needs.
func (b *Bundletool) BuildApks(ctx context.Context, aabPath, apksPath string) error {
	name, args := b.command("build-apks", "--overwrite", "--connected-device", "--bundle="+aabPath, "--output="+apksPath)
	if err := util.Run(ctx, name, args...); err != nil {
		return fmt.Errorf("bundletool build-apks failed: %w", err)
	}
	return nil
}

// InstallApks deploys a .apks archive to a connected device.
func (b *Bundletool) InstallApks(ctx context.Context, apksPath, serial string) error {
	name, args := b.command("install-apks", "--apks="+apksPath, "--device-id="+serial)
	if err := util.Run(ctx, name, args...); err != nil {
		return fmt.Errorf("bundletool install-apks failed: %w", err)
	}
	return nil
}
