// Package config loads toolbox settings.
//
// Sources are layered, later ones winning: built-in defaults, a TOML file,
// TOOLBOX_* environment variables (a .env file is read first), then command
// line flags.
package config

import (
	"fmt"
	"time"

	"github.com/dshills/toolbox/internal/logging"
	"github.com/dshills/toolbox/internal/toolbox"
)

// Script engines.
const (
	EngineStarlark = "starlark"
	EngineLua      = "lua"
)

// Config is the full toolbox configuration.
type Config struct {
	Paths     PathsConfig     `koanf:"paths"`
	EditorEnv string          `koanf:"editor_env"`
	Script    ScriptConfig    `koanf:"script"`
	Log       LogConfig       `koanf:"log"`
	Watch     WatchConfig     `koanf:"watch"`
	Console   ConsoleConfig   `koanf:"console"`
	Ranges    RangesConfig    `koanf:"ranges"`
	Shortcuts ShortcutsConfig `koanf:"shortcuts"`
	Metrics   MetricsConfig   `koanf:"metrics"`

	// File is the config file that was read, or "".
	File string `koanf:"-"`
}

// PathsConfig locates the toolbox files.
type PathsConfig struct {
	// Sandbox holds the primary save file.
	Sandbox string `koanf:"sandbox"`
	// DevRoot is what the @devroot@ alias expands to.
	DevRoot string `koanf:"devroot"`
}

// ScriptConfig selects and limits the script engine.
type ScriptConfig struct {
	Engine  string        `koanf:"engine"`
	Timeout time.Duration `koanf:"timeout"`
	// Paths are added to the engine's search path at startup.
	Paths []string `koanf:"paths"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `koanf:"level"`
}

// WatchConfig configures the shelf watcher.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// ConsoleConfig seeds the console.
type ConsoleConfig struct {
	Vars map[string]float64 `koanf:"vars"`
}

// RangesConfig sets the action identifier ranges.
type RangesConfig struct {
	ToolboxFirst int `koanf:"toolbox_first"`
	ToolboxLast  int `koanf:"toolbox_last"`
	ShelfFirst   int `koanf:"shelf_first"`
	ShelfLast    int `koanf:"shelf_last"`
}

// ShortcutsConfig configures the shortcut binder.
type ShortcutsConfig struct {
	// Reserved specs are never bound to macros.
	Reserved []string `koanf:"reserved"`
}

// MetricsConfig configures the metrics endpoint.
type MetricsConfig struct {
	// Addr is the listen address of the /metrics endpoint; empty disables it.
	Addr string `koanf:"addr"`
}

// defaults returns the built-in settings as a flat koanf map.
func defaults(sandbox, devroot string) map[string]any {
	return map[string]any{
		"paths.sandbox":        sandbox,
		"paths.devroot":        devroot,
		"editor_env":           "Editor/env.xml",
		"script.engine":        EngineStarlark,
		"script.timeout":       "5s",
		"log.level":            "info",
		"watch.debounce":       "250ms",
		"ranges.toolbox_first": int(toolbox.DefaultToolboxRange.First),
		"ranges.toolbox_last":  int(toolbox.DefaultToolboxRange.Last),
		"ranges.shelf_first":   int(toolbox.DefaultShelfRange.First),
		"ranges.shelf_last":    int(toolbox.DefaultShelfRange.Last),
		"shortcuts.reserved":   []string{},
		"metrics.addr":         "",
	}
}

// Validate checks values that the loaders cannot.
func (c *Config) Validate() error {
	switch c.Script.Engine {
	case EngineStarlark, EngineLua:
	default:
		return fmt.Errorf("%w: script.engine %q (want %s or %s)", ErrInvalidValue, c.Script.Engine, EngineStarlark, EngineLua)
	}

	for _, r := range []struct {
		name string
		rng  toolbox.IDRange
	}{
		{"toolbox", c.ToolboxRange()},
		{"shelf", c.ShelfRange()},
	} {
		if r.rng.Capacity() == 0 {
			return fmt.Errorf("%w: %s range %d-%d is empty", ErrInvalidValue, r.name, r.rng.First, r.rng.Last)
		}
		if r.rng.First <= toolbox.SeparatorActionID {
			return fmt.Errorf("%w: %s range must start above %d", ErrInvalidValue, r.name, toolbox.SeparatorActionID)
		}
	}
	tb, sh := c.ToolboxRange(), c.ShelfRange()
	if tb.First <= sh.Last && sh.First <= tb.Last {
		return fmt.Errorf("%w: toolbox and shelf ranges overlap", ErrInvalidValue)
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("%w: watch.debounce must not be negative", ErrInvalidValue)
	}
	return nil
}

// ToolboxRange returns the toolbox identifier range.
func (c *Config) ToolboxRange() toolbox.IDRange {
	return toolbox.IDRange{First: toolbox.ActionID(c.Ranges.ToolboxFirst), Last: toolbox.ActionID(c.Ranges.ToolboxLast)}
}

// ShelfRange returns the shelf identifier range.
func (c *Config) ShelfRange() toolbox.IDRange {
	return toolbox.IDRange{First: toolbox.ActionID(c.Ranges.ShelfFirst), Last: toolbox.ActionID(c.Ranges.ShelfLast)}
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}
