// Package lua runs macro script commands with gopher-lua.
package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/toolbox/internal/script"
)

// DefaultTimeout bounds a single Execute call.
const DefaultTimeout = 5 * time.Second

// Engine executes Lua source in one long-lived state, so globals set by one
// command are visible to the next.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes Go callers.
// Scripts must not call back into the same engine.
type Engine struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	out     io.Writer
	paths   script.SearchPath
	host    script.Host
	module  *lua.LTable
	loaded  *lua.LTable
	closed  bool
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

// New creates an engine with the safe standard libraries, a print bound to
// the engine's output, and a require that resolves modules through the
// search path.
func New(opts ...Option) *Engine {
	e := &Engine{
		timeout: DefaultTimeout,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(e.L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		e.L.SetGlobal(name, lua.LNil)
	}

	e.loaded = e.L.NewTable()
	e.module = e.newHostModule()
	e.L.SetGlobal(script.ModuleName, e.module)
	e.L.SetGlobal("print", e.L.NewFunction(e.print))
	e.L.SetGlobal("require", e.L.NewFunction(e.require))
	return e
}

// openSafeLibraries opens the libraries that cannot reach the filesystem or
// the process.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// Bind connects the toolbox module to host.
func (e *Engine) Bind(host script.Host) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.host = host
}

// AddSearchPath makes <path>/<name>.lua loadable with require("name").
// Dotted names map to subdirectories.
func (e *Engine) AddSearchPath(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paths.Add(path)
}

// Execute runs source to completion.
func (e *Engine) Execute(source string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}

	ctx := context.Background()
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	err := e.doWithRecovery(func() error {
		return e.L.DoString(source)
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s", ErrExecutionTimeout, e.timeout)
		}
		return fmt.Errorf("lua: %w", err)
	}
	return nil
}

// doWithRecovery executes a function with panic recovery.
func (e *Engine) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// Global returns a global variable, for inspection.
func (e *Engine) Global(name string) lua.LValue {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return lua.LNil
	}
	return e.L.GetGlobal(name)
}

// Close releases the Lua state. It is safe to call more than once.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}

func (e *Engine) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(e.out, strings.Join(parts, "\t"))
	return 0
}

var builtinModules = map[string]bool{
	"string": true,
	"table":  true,
	"math":   true,
}

// require loads built-in libraries, the toolbox module, and files found on
// the search path. Results are cached per engine.
func (e *Engine) require(L *lua.LState) int {
	name := L.CheckString(1)

	if v := e.loaded.RawGetString(name); v != lua.LNil {
		L.Push(v)
		return 1
	}
	if builtinModules[name] {
		L.Push(L.GetGlobal(name))
		return 1
	}
	if name == script.ModuleName {
		L.Push(e.module)
		return 1
	}

	path, ok := e.paths.Find(strings.ReplaceAll(name, ".", "/"), ".lua")
	if !ok {
		L.RaiseError("module %q not found on the script search path", name)
		return 0
	}

	fn, err := L.LoadFile(path)
	if err != nil {
		L.RaiseError("loading module %q: %v", name, err)
		return 0
	}

	L.Push(fn)
	L.Push(lua.LString(name))
	L.Call(1, 1)
	ret := L.Get(-1)
	L.Pop(1)
	if ret == lua.LNil {
		ret = lua.LTrue
	}
	e.loaded.RawSetString(name, ret)

	L.Push(ret)
	return 1
}
