// Package app wires the macro manager to its collaborators and owns their
// lifecycle.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dshills/toolbox/internal/action"
	"github.com/dshills/toolbox/internal/config"
	"github.com/dshills/toolbox/internal/console"
	"github.com/dshills/toolbox/internal/logging"
	"github.com/dshills/toolbox/internal/metrics"
	"github.com/dshills/toolbox/internal/script"
	"github.com/dshills/toolbox/internal/script/lua"
	"github.com/dshills/toolbox/internal/script/starlark"
	"github.com/dshills/toolbox/internal/settings"
	"github.com/dshills/toolbox/internal/shortcut"
	"github.com/dshills/toolbox/internal/toolbox"
)

// scriptEngine is what both script engines provide.
type scriptEngine interface {
	toolbox.ScriptRunner
	Bind(host script.Host)
	Close() error
}

// Application owns a Manager and everything it executes against.
//
// Like the Manager it is not safe for concurrent use: Load, Save, Run and
// the watch loop must be called from one goroutine.
type Application struct {
	cfg    *config.Config
	logger *logging.Logger

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	console   *console.Console
	engine    scriptEngine
	actions   *action.Registry
	shortcuts *shortcut.Binder
	settings  *settings.Store
	manager   *toolbox.Manager

	closed bool
}

// Options configures an Application.
type Options struct {
	// Config is required.
	Config *config.Config

	// Output receives console and script output. Defaults to os.Stdout.
	Output io.Writer

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// Registry collects metrics. Defaults to a new registry.
	Registry *prometheus.Registry
}

// New builds an application. Macros are not read until Load is called.
func New(opts Options) (*Application, error) {
	if opts.Config == nil {
		return nil, ErrNoConfig
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	cfg := opts.Config
	a := &Application{
		cfg: cfg,
		logger: logging.New(logging.Config{
			Level:  cfg.LogLevel(),
			Output: opts.LogOutput,
			Prefix: "toolbox",
		}),
		registry: opts.Registry,
	}
	a.metrics = metrics.New(a.registry)

	a.console = console.New(
		console.WithOutput(opts.Output),
		console.WithLogger(a.logger),
		console.WithVars(cfg.Console.Vars),
	)
	if err := a.registerConsoleCommands(); err != nil {
		return nil, &InitError{Component: "console", Err: err}
	}

	engine, err := newEngine(cfg, opts.Output)
	if err != nil {
		return nil, &InitError{Component: "script engine", Err: err}
	}
	engine.Bind(host{app: a})
	a.engine = engine
	for _, p := range cfg.Script.Paths {
		if err := engine.AddSearchPath(p); err != nil {
			a.logger.Warn("ignoring script path", "path", p, "error", err)
		}
	}

	a.actions = action.NewRegistry()
	a.shortcuts = shortcut.NewBinder(cfg.Shortcuts.Reserved...)
	a.settings = settings.NewStore()

	a.manager = toolbox.NewManager(
		toolbox.WithSandboxDir(cfg.Paths.Sandbox),
		toolbox.WithEnvironmentFile(cfg.EditorEnvPath()),
		toolbox.WithScriptRunner(engine),
		toolbox.WithConsole(a.console),
		toolbox.WithShortcutBinder(a.shortcuts),
		toolbox.WithSettingsStore(a.settings),
		toolbox.WithLogger(a.logger),
		toolbox.WithMetrics(a.metrics),
		toolbox.WithToolboxRange(cfg.ToolboxRange()),
		toolbox.WithShelfRange(cfg.ShelfRange()),
	)

	a.logger.Debug("application ready",
		"engine", cfg.Script.Engine,
		"sandbox", cfg.Paths.Sandbox,
		"config", cfg.File)
	return a, nil
}

func newEngine(cfg *config.Config, out io.Writer) (scriptEngine, error) {
	switch cfg.Script.Engine {
	case config.EngineLua:
		return lua.New(lua.WithTimeout(cfg.Script.Timeout), lua.WithOutput(out)), nil
	case config.EngineStarlark:
		return starlark.New(starlark.WithTimeout(cfg.Script.Timeout), starlark.WithOutput(out)), nil
	default:
		return nil, fmt.Errorf("%w: script engine %q", config.ErrInvalidValue, cfg.Script.Engine)
	}
}

// Config returns the configuration the application was built from.
func (a *Application) Config() *config.Config { return a.cfg }

// Manager returns the macro manager.
func (a *Application) Manager() *toolbox.Manager { return a.manager }

// Console returns the console.
func (a *Application) Console() *console.Console { return a.console }

// Actions returns the action registry that Load fills.
func (a *Application) Actions() *action.Registry { return a.actions }

// Shortcuts returns the shortcut binder.
func (a *Application) Shortcuts() *shortcut.Binder { return a.shortcuts }

// Settings returns the store holding the parsed primary file.
func (a *Application) Settings() *settings.Store { return a.settings }

// Logger returns the application logger.
func (a *Application) Logger() *logging.Logger { return a.logger }

// Gatherer returns the metrics registry.
func (a *Application) Gatherer() prometheus.Gatherer { return a.registry }

// Load reads the primary file and the shelves listed by the environment
// descriptor and registers an action for every macro. Actions left over
// from a previous load are removed first. Called while a macro runs, Load
// returns toolbox.ErrReentrant and leaves the registry untouched.
func (a *Application) Load() error {
	if a.manager.Busy() {
		return toolbox.ErrReentrant
	}
	tb, sh := a.manager.Range(true), a.manager.Range(false)
	for _, id := range a.actions.IDs() {
		if tb.Contains(id) || sh.Contains(id) {
			a.actions.Remove(id)
		}
	}
	if err := a.manager.Load(a.actions); err != nil {
		return err
	}
	a.manager.RegisterToolboxActions(a.actions)
	return nil
}

// Import reads toolbox macros from a YAML export and registers their
// actions in place of the previous toolbox actions.
func (a *Application) Import(data []byte, merge bool) (int, error) {
	n, err := a.manager.Import(data, true, merge)
	if errors.Is(err, toolbox.ErrReentrant) {
		return 0, err
	}

	tb := a.manager.Range(true)
	for _, id := range a.actions.IDs() {
		if tb.Contains(id) {
			a.actions.Remove(id)
		}
	}
	a.manager.RegisterToolboxActions(a.actions)
	return n, err
}

// Save writes the toolbox collection, creating the sandbox directory if
// needed.
func (a *Application) Save() error {
	if err := os.MkdirAll(filepath.Dir(a.manager.SaveFilePath()), 0o755); err != nil {
		return fmt.Errorf("creating sandbox: %w", err)
	}
	return a.manager.Save()
}

// Lookup finds a macro by title, trying the toolbox before the shelves.
func (a *Application) Lookup(title string) (index int, inToolbox bool, err error) {
	for _, tb := range []bool{true, false} {
		if i := a.manager.MacroIndex(title, tb); i != toolbox.NotFound {
			return i, tb, nil
		}
	}
	return toolbox.NotFound, false, fmt.Errorf("%w: %q", ErrMacroNotFound, title)
}

// Run executes the macro with the given title.
func (a *Application) Run(title string) error {
	index, tb, err := a.Lookup(title)
	if err != nil {
		return err
	}
	return a.manager.ExecuteMacro(index, tb)
}

// TriggerShortcut runs the action bound to spec.
func (a *Application) TriggerShortcut(spec string) error {
	id, ok := a.shortcuts.Lookup(spec)
	if !ok {
		return fmt.Errorf("%w: %s", ErrShortcutNotBound, spec)
	}
	return a.actions.Trigger(id)
}

// Shutdown releases the script engine. It is safe to call more than once.
func (a *Application) Shutdown() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.logger.Debug("shutting down")
	return a.engine.Close()
}
