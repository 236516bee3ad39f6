// Package config loads mobl.toml and resolves it into validated, immutable
// configuration objects shared by every command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// FileName is the config file discovered at the app root.
const FileName = "mobl.toml"

// ErrNoConfig is returned when no mobl.toml exists between the CWD and the
// filesystem root.
var ErrNoConfig = errors.New("no " + FileName + " found")

// Raw mirrors mobl.toml exactly as written.
type Raw struct {
	App     RawApp         `toml:"app"`
	Apple   *RawApple      `toml:"apple,omitempty"`
	Android *RawAndroid    `toml:"android,omitempty"`
	Env     map[string]any `toml:"env,omitempty"`
}

// Config is the validated configuration bound to a discovered app root.
type Config struct {
	app      *App
	apple    *Apple
	appleErr error
	android  *Android
	env      map[string]any
}

// FromRaw validates raw and binds it to rootDir.
func FromRaw(rootDir string, raw Raw) (*Config, error) {
	app, err := NewApp(rootDir, raw.App)
	if err != nil {
		return nil, err
	}
	apple, appleErr := NewApple(app, raw.Apple)
	// An absent/invalid Apple section only matters once an Apple command
	// runs; Android-only users never provide a development team. The error
	// is kept so Apple() can report the real cause.
	if appleErr != nil {
		log.Debug().Err(appleErr).Msg("apple config unavailable")
		apple = nil
	}
	android, err := NewAndroid(app, raw.Android)
	if err != nil {
		return nil, err
	}
	return &Config{
		app:      app,
		apple:    apple,
		appleErr: appleErr,
		android:  android,
		env:      raw.Env,
	}, nil
}

// App returns the validated app section.
func (c *Config) App() *App { return c.app }

// Apple returns the validated Apple section, or an error explaining why it
// couldn't be validated.
func (c *Config) Apple() (*Apple, error) {
	if c.apple == nil {
		return nil, fmt.Errorf("`apple` config unavailable: %w", c.appleErr)
	}
	return c.apple, nil
}

// Android returns the validated Android section.
func (c *Config) Android() *Android { return c.android }

// Env is the free-form `[env]` table passed to build environments.
func (c *Config) Env() map[string]any { return c.env }

// EnvStrings returns the string-valued `[env]` entries, the form child
// process environments accept. Non-string values are skipped.
func (c *Config) EnvStrings() map[string]string {
	out := make(map[string]string, len(c.env))
	for key, value := range c.env {
		if s, ok := value.(string); ok {
			out[key] = s
		}
	}
	return out
}

// Path is the absolute path of the config file.
func (c *Config) Path() string {
	return filepath.Join(c.app.RootDir(), FileName)
}

// DiscoverRoot walks up from cwd looking for mobl.toml, returning the
// directory that contains it.
func DiscoverRoot(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize %q: %w", cwd, err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		log.Debug().Str("path", candidate).Msg("looking for config file")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoConfig
		}
		dir = parent
	}
}

// Load discovers and parses mobl.toml starting from cwd.
func Load(cwd string) (*Config, error) {
	rootDir, err := DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(rootDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file at %q: %w", path, err)
	}
	var raw Raw
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %q: %w", path, err)
	}
	config, err := FromRaw(rootDir, raw)
	if err != nil {
		return nil, fmt.Errorf("config file at %q invalid: %w", path, err)
	}
	return config, nil
}

// Write serializes raw to rootDir/mobl.toml atomically.
func Write(rootDir string, raw Raw) error {
	data, err := toml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	path := filepath.Join(rootDir, FileName)
	log.Debug().Str("path", path).Msg("writing config")
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", path, err)
	}
	return nil
}

// LoadOrErr is Load, but with the raw cwd defaulted to the process CWD.
func LoadOrErr() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return Load(cwd)
}

// ProjectDirDefaults reports the default generated-project locations, used by
// init output and doctor.
func ProjectDirDefaults() (apple, android string) {
	return defaultAppleProjectDir, defaultAndroidProjectDir
}
