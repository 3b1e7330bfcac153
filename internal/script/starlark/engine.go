// Package starlark runs macro script commands with Starlark, the Python
// dialect.
//
// Every Execute starts from fresh globals. Modules loaded with load() are
// resolved through the search path and executed once per engine.
package starlark

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/dshills/toolbox/internal/script"
)

// DefaultTimeout bounds a single Execute call.
const DefaultTimeout = 5 * time.Second

// ModuleExt is the file extension of loadable modules.
const ModuleExt = ".star"

// Errors returned by the engine.
var (
	ErrExecutionTimeout = errors.New("starlark execution timeout")
	ErrModuleNotFound   = errors.New("starlark module not found")
	ErrLoadCycle        = errors.New("starlark load cycle")
)

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// module is a load() cache entry. A nil globals with a nil err marks a
// module whose load is in progress.
type module struct {
	globals starlark.StringDict
	err     error
}

// Engine executes Starlark source.
type Engine struct {
	mu      sync.Mutex
	timeout time.Duration
	out     io.Writer
	paths   script.SearchPath
	host    script.Host
	modules map[string]*module
	toolbox starlark.Value
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout sets the per-execution timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithOutput redirects print.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		timeout: DefaultTimeout,
		out:     os.Stdout,
		modules: make(map[string]*module),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.toolbox = e.newHostModule()
	return e
}

// Bind connects the toolbox module to host.
func (e *Engine) Bind(host script.Host) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.host = host
}

// AddSearchPath makes <path>/<name>.star loadable with load("name", ...).
func (e *Engine) AddSearchPath(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paths.Add(path)
}

// Close drops cached modules.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.modules = make(map[string]*module)
	return nil
}

func (e *Engine) predeclared() starlark.StringDict {
	return starlark.StringDict{script.ModuleName: e.toolbox}
}

func (e *Engine) newThread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(e.out, msg)
		},
		Load: e.load,
	}
}

// Execute runs source to completion.
func (e *Engine) Execute(source string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	thread := e.newThread("macro")

	var timedOut atomic.Bool
	if e.timeout > 0 {
		timer := time.AfterFunc(e.timeout, func() {
			timedOut.Store(true)
			thread.Cancel("timeout")
		})
		defer timer.Stop()
	}

	_, err := starlark.ExecFileOptions(fileOptions, thread, "<macro>", source, e.predeclared())
	if err != nil {
		if timedOut.Load() {
			return fmt.Errorf("%w after %s", ErrExecutionTimeout, e.timeout)
		}
		return fmt.Errorf("starlark: %w", err)
	}
	return nil
}

// load implements the load statement. Each thread that runs a module shares
// the cache, so a module executes once per engine.
func (e *Engine) load(_ *starlark.Thread, name string) (starlark.StringDict, error) {
	path, ok := e.paths.Find(name, ModuleExt)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrModuleNotFound, name)
	}

	if m, ok := e.modules[path]; ok {
		if m.globals == nil && m.err == nil {
			return nil, fmt.Errorf("%w: %s", ErrLoadCycle, name)
		}
		return m.globals, m.err
	}

	e.modules[path] = &module{}
	src, err := os.ReadFile(path)
	if err != nil {
		delete(e.modules, path)
		return nil, fmt.Errorf("reading module %s: %w", name, err)
	}

	globals, err := starlark.ExecFileOptions(fileOptions, e.newThread("load:"+name), path, src, e.predeclared())
	e.modules[path] = &module{globals: globals, err: err}
	return globals, err
}
