package toolbox

import "github.com/dshills/toolbox/internal/xmltree"

// ScriptRunner executes script source for script commands.
type ScriptRunner interface {
	// Execute runs source to completion.
	Execute(source string) error
	// AddSearchPath makes modules under path importable by later scripts.
	AddSearchPath(path string) error
}

// Console is the host's console: numeric variables and command strings.
type Console interface {
	// GetVar returns the variable's value, 0 when unknown.
	GetVar(name string) float64
	// SetVar assigns a variable.
	SetVar(name string, value float64)
	// ExecuteString runs a console command line.
	ExecuteString(line string) error
}

// Action is something the host UI can trigger.
type Action interface {
	Trigger()
}

// ActionFunc adapts a function to Action.
type ActionFunc func()

// Trigger calls f.
func (f ActionFunc) Trigger() { f() }

// ActionRegistrar binds identifiers to actions in the host UI.
type ActionRegistrar interface {
	AddAction(id ActionID, action Action)
}

// ShortcutBinder binds keyboard shortcuts to action identifiers.
type ShortcutBinder interface {
	// Valid reports whether spec parses as a shortcut.
	Valid(spec string) bool
	// AddShortcut binds spec to id. It returns false when the spec is
	// invalid or already taken.
	AddShortcut(id ActionID, spec string) bool
	// RemoveShortcut drops the binding for id, reporting whether one existed.
	RemoveShortcut(id ActionID) bool
}

// SettingsStore retains parsed settings documents so the host can save or
// roll them back later.
type SettingsStore interface {
	AddSettingsNode(node *xmltree.Node)
}

// FileScanner lists files in a directory.
type FileScanner interface {
	// ScanDirectory returns the names, relative to dir, of regular files
	// matching the glob pattern, sorted.
	ScanDirectory(dir, pattern string) ([]string, error)
}

// Runtime carries the collaborators commands execute against.
// A nil collaborator turns the matching commands into no-ops.
type Runtime struct {
	Scripts ScriptRunner
	Console Console

	// Observe, when set, is called after every command with its result.
	Observe func(cmd Command, err error)
}
