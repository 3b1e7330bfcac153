// Package script holds what the script engines share: the host bridge that
// exposes the console and macro execution to scripts, and search path
// handling.
//
// The engines live in the lua and starlark subpackages. Both satisfy
// toolbox.ScriptRunner and expose the host to scripts as a module named
// "toolbox" with get_var, set_var, exec and run_macro.
package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ModuleName is the name under which the host is visible to scripts.
const ModuleName = "toolbox"

// ErrNoHost is returned by host functions called before a host is bound.
var ErrNoHost = errors.New("script: no host bound")

// Host is the editor side of a script engine.
type Host interface {
	GetVar(name string) float64
	SetVar(name string, value float64)
	ExecuteString(line string) error
	RunMacro(title string) error
}

// SearchPath is an ordered, duplicate-free list of module directories.
type SearchPath struct {
	dirs []string
}

// Add appends dir. It fails when dir is not an existing directory; adding a
// directory twice is a no-op.
func (p *SearchPath) Add(dir string) error {
	if dir == "" {
		return fmt.Errorf("script: empty search path")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("script: resolving search path %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("script: search path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("script: search path %s is not a directory", abs)
	}
	for _, d := range p.dirs {
		if d == abs {
			return nil
		}
	}
	p.dirs = append(p.dirs, abs)
	return nil
}

// Dirs returns the directories in search order.
func (p *SearchPath) Dirs() []string {
	out := make([]string, len(p.dirs))
	copy(out, p.dirs)
	return out
}

// Find returns the first existing file named name under one of the
// directories, trying each extension in exts when name has none.
func (p *SearchPath) Find(name string, exts ...string) (string, bool) {
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range exts {
			candidates = append(candidates, name+ext)
		}
	}

	for _, dir := range p.dirs {
		for _, c := range candidates {
			path := filepath.Join(dir, filepath.FromSlash(c))
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path, true
			}
		}
	}
	return "", false
}
