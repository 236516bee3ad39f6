// Package dotcargo manages the project's .cargo/config.toml, where the
// Android cross linkers and build-time environment variables are recorded.
package dotcargo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// Target is one [target.<triple>] section.
type Target struct {
	Ar        string   `toml:"ar,omitempty"`
	Linker    string   `toml:"linker,omitempty"`
	Rustflags []string `toml:"rustflags,omitempty"`
}

// File models the subset of .cargo/config.toml that gets managed. Unknown
// keys written by hand are preserved only within this subset, so edits are
// merged through Load before every Write.
type File struct {
	Target map[string]Target `toml:"target,omitempty"`
	Env    map[string]string `toml:"env,omitempty"`
}

func dirPath(rootDir string) string {
	return filepath.Join(rootDir, ".cargo")
}

func filePath(rootDir string) string {
	return filepath.Join(dirPath(rootDir), "config.toml")
}

func oldFilePath(rootDir string) string {
	return filepath.Join(dirPath(rootDir), "config")
}

// Load reads .cargo/config.toml, falling back to the pre-1.39 `config` name.
// The old file is renamed on sight so later writes land in one place.
func Load(rootDir string) (*File, error) {
	path := filePath(rootDir)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		old := oldFilePath(rootDir)
		if _, err := os.Stat(old); err == nil {
			log.Warn().Str("path", old).Msg("migrating old-style cargo config to config.toml")
			if err := os.Rename(old, path); err != nil {
				return nil, fmt.Errorf("failed to migrate %q: %w", old, err)
			}
		}
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return &f, nil
}

// SetTarget records the toolchain entry for a triple.
func (f *File) SetTarget(triple string, target Target) {
	if f.Target == nil {
		f.Target = make(map[string]Target)
	}
	f.Target[triple] = target
}

// SetEnv records a build-time environment variable.
func (f *File) SetEnv(key, value string) {
	if f.Env == nil {
		f.Env = make(map[string]string)
	}
	f.Env[key] = value
}

// Write serializes the file back under rootDir atomically.
func (f *File) Write(rootDir string) error {
	if err := os.MkdirAll(dirPath(rootDir), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to serialize cargo config: %w", err)
	}
	path := filePath(rootDir)
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}
