// Package fileutil provides the directory scanning and path helpers used to
// locate macro files.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DevRootAlias is the alias that ResolveAlias replaces with the editor's
// development root.
const DevRootAlias = "@devroot@"

// Scanner lists files on the local file system.
type Scanner struct{}

// ScanDirectory returns the names of regular files directly inside dir whose
// names match the glob pattern, sorted. A missing dir yields no files and no
// error.
func (Scanner) ScanDirectory(dir, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ok, _ := filepath.Match(pattern, e.Name()); ok {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// UserSandboxDir returns the per-user directory where the toolbox keeps its
// files: <UserConfigDir>/toolbox.
func UserSandboxDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, "toolbox"), nil
}

// ResolveAlias replaces a leading alias such as "@devroot@" with its value.
// Paths without a known alias are returned cleaned but otherwise unchanged.
func ResolveAlias(path string, aliases map[string]string) string {
	for alias, target := range aliases {
		if path == alias {
			return filepath.Clean(target)
		}
		if rest, ok := strings.CutPrefix(path, alias+"/"); ok {
			return filepath.Join(target, rest)
		}
	}
	return filepath.Clean(path)
}

// ParentDir returns the directory containing path.
func ParentDir(path string) string {
	return filepath.Dir(path)
}

// FileName returns the base name of path without its extension.
func FileName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
