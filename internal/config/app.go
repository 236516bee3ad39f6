package config

import (
	"fmt"
	"strings"
	"unicode"
)

// Last domain label must not shadow a language package root; Gradle refuses
// to compile such packages.
var reservedPackageNames = []string{"kotlin", "java"}

// RawApp is the `[app]` table of mobl.toml as written by the user.
type RawApp struct {
	Name         string `toml:"name"`
	StylizedName string `toml:"stylized-name,omitempty"`
	Domain       string `toml:"domain"`
	AssetDir     string `toml:"asset-dir,omitempty"`
	Version      string `toml:"version,omitempty"`
}

// App is the validated, immutable app configuration.
type App struct {
	rootDir      string
	name         string
	stylizedName string
	domain       string
	assetDir     string
	version      VersionNumber
}

// NewApp validates raw against the app-level invariants and binds the result
// to rootDir.
func NewApp(rootDir string, raw RawApp) (*App, error) {
	if err := CheckAppName(raw.Name); err != nil {
		return nil, fmt.Errorf("`app.name` invalid: %w", err)
	}
	if err := CheckDomainSyntax(raw.Domain); err != nil {
		return nil, fmt.Errorf("`app.domain` invalid: %w", err)
	}
	stylized := raw.StylizedName
	if stylized == "" {
		stylized = raw.Name
	}
	assetDir := raw.AssetDir
	if assetDir == "" {
		assetDir = "assets"
	}
	versionStr := raw.Version
	if versionStr == "" {
		versionStr = "0.1.0"
	}
	version, err := ParseVersionNumber(versionStr)
	if err != nil {
		return nil, fmt.Errorf("`app.version` invalid: %w", err)
	}
	return &App{
		rootDir:      rootDir,
		name:         raw.Name,
		stylizedName: stylized,
		domain:       raw.Domain,
		assetDir:     assetDir,
		version:      version,
	}, nil
}

// RootDir is the directory containing mobl.toml.
func (a *App) RootDir() string { return a.rootDir }

// Name is the plain app name, safe for use in file names and identifiers.
func (a *App) Name() string { return a.name }

// StylizedName is the display name shown under the launcher icon.
func (a *App) StylizedName() string { return a.stylizedName }

// Domain is the app's reverse-DNS-style domain, e.g. "example.com".
func (a *App) Domain() string { return a.domain }

// AssetDir is the configured asset directory, relative to the root.
func (a *App) AssetDir() string { return a.assetDir }

// Version is the parsed app version.
func (a *App) Version() VersionNumber { return a.version }

// NameSnake returns the app name with hyphens flattened to underscores, the
// form used for library and package names.
func (a *App) NameSnake() string {
	return strings.ReplaceAll(a.name, "-", "_")
}

// ReverseDomain flips the domain labels, e.g. "example.com" -> "com.example".
func (a *App) ReverseDomain() string {
	labels := strings.Split(a.domain, ".")
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return strings.Join(labels, ".")
}

// Identifier is the full application id: reverse domain plus snake name.
func (a *App) Identifier() string {
	return a.ReverseDomain() + "." + a.NameSnake()
}

// CheckAppName enforces the app-name syntax: non-empty, ASCII
// letters/digits/hyphen/underscore, not starting with a digit or hyphen.
func CheckAppName(name string) error {
	if name == "" {
		return fmt.Errorf("app name can't be empty")
	}
	first := rune(name[0])
	if unicode.IsDigit(first) || first == '-' {
		return fmt.Errorf("%q starts with %q, which is invalid", name, first)
	}
	var bad []rune
	for _, c := range name {
		ok := c <= unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' || c == '_')
		if !ok && !containsRune(bad, c) {
			bad = append(bad, c)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%q are not valid app name characters", string(bad))
	}
	return nil
}

// CheckDomainSyntax enforces the domain rules shared by Android package names
// and Apple bundle identifiers.
func CheckDomainSyntax(domain string) error {
	if domain == "" {
		return fmt.Errorf("domain can't be empty")
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return fmt.Errorf("domain can't start or end with a dot")
	}
	labels := strings.Split(domain, ".")
	for _, label := range labels {
		if label == "" {
			return fmt.Errorf("labels cannot be empty")
		}
		if unicode.IsDigit(rune(label[0])) {
			return fmt.Errorf("%q label starts with a digit, which is invalid", label)
		}
		var bad []rune
		for _, c := range label {
			if !(c <= unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c))) && !containsRune(bad, c) {
				bad = append(bad, c)
			}
		}
		if len(bad) > 0 {
			return fmt.Errorf("%q are not valid ASCII alphanumeric characters", string(bad))
		}
	}
	last := labels[len(labels)-1]
	for _, reserved := range reservedPackageNames {
		if last == reserved {
			return fmt.Errorf("%q is reserved and cannot be used", last)
		}
	}
	return nil
}

func containsRune(runes []rune, r rune) bool {
	for _, c := range runes {
		if c == r {
			return true
		}
	}
	return false
}
