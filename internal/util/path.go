package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return home, nil
}

// InstallDir is where mobl keeps its own state (~/.mobl).
func InstallDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mobl"), nil
}

// ToolsDir is where downloaded tools (bundletool.jar etc.) live.
func ToolsDir() (string, error) {
	install, err := InstallDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(install, "tools"), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// NormalizePath resolves path to an absolute, lexically-clean form. Existing
// paths go through EvalSymlinks so containment checks can't be defeated by
// links.
func NormalizePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to normalize %q: %w", path, err)
	}
	if _, statErr := os.Stat(abs); statErr == nil {
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return "", fmt.Errorf("failed to resolve symlinks in %q: %w", path, err)
		}
		return resolved, nil
	}
	return filepath.Clean(abs), nil
}

// UnderRoot reports whether path normalizes to a location inside root. An
// absolute path stands on its own; a relative one is joined onto the resolved
// root first, so a not-yet-created path under a symlinked root still compares
// correctly.
func UnderRoot(path, root string) (bool, error) {
	normRoot, err := NormalizePath(root)
	if err != nil {
		return false, err
	}
	norm, err := NormalizePath(PrefixPath(normRoot, path))
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(normRoot, norm)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

// PrefixPath joins path onto root unless path is already absolute.
func PrefixPath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// UnprefixPath strips root from path, failing if path isn't under root.
func UnprefixPath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q didn't have prefix %q", path, root)
	}
	return rel, nil
}

// RelativizePath transforms absPath to be relative to absRelativeTo. Both
// arguments must be absolute.
func RelativizePath(absPath, absRelativeTo string) string {
	rel, err := filepath.Rel(absRelativeTo, absPath)
	if err != nil {
		return absPath
	}
	return rel
}
