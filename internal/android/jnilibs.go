package android

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/agiangrant/mobl/internal/config"
)

func jniLibsDir(cfg *config.Config, target Target) string {
	return filepath.Join(cfg.Android().ProjectDir(), "app", "src", "main", "jniLibs", target.ABI)
}

// linkJniLib symlinks the compiled shared library into the Gradle project.
// A symlink keeps debug-cycle rebuilds out of the project tree.
func linkJniLib(cfg *config.Config, target Target, soPath string) error {
	dir := jniLibsDir(cfg, target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := removeBrokenLinks(dir); err != nil {
		return err
	}
	dest := filepath.Join(dir, cfg.Android().SoName())
	if _, err := os.Lstat(dest); err == nil {
		if err := os.Remove(dest); err != nil {
			return err
		}
	}
	if err := os.Symlink(soPath, dest); err != nil {
		return fmt.Errorf("failed to link %q into jniLibs: %w", soPath, err)
	}
	return nil
}

// removeBrokenLinks cleans up symlinks whose library was deleted, e.g. after
// a cargo clean or a profile switch. Gradle fails the build on dangling ones.
func removeBrokenLinks(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("removing dangling jniLibs symlink")
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}
	return nil
}
