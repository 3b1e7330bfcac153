package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/toolbox/internal/script"
)

// newHostModule builds the toolbox table. Each function raises a Lua error
// when no host is bound or the host call fails.
func (e *Engine) newHostModule() *lua.LTable {
	return e.L.SetFuncs(e.L.NewTable(), map[string]lua.LGFunction{
		"get_var":   e.getVar,
		"set_var":   e.setVar,
		"exec":      e.exec,
		"run_macro": e.runMacro,
	})
}

func (e *Engine) checkHost(L *lua.LState) script.Host {
	if e.host == nil {
		L.RaiseError("%s", script.ErrNoHost)
	}
	return e.host
}

func (e *Engine) getVar(L *lua.LState) int {
	name := L.CheckString(1)
	host := e.checkHost(L)
	L.Push(lua.LNumber(host.GetVar(name)))
	return 1
}

func (e *Engine) setVar(L *lua.LState) int {
	name := L.CheckString(1)
	value := L.CheckNumber(2)
	e.checkHost(L).SetVar(name, float64(value))
	return 0
}

func (e *Engine) exec(L *lua.LState) int {
	line := L.CheckString(1)
	if err := e.checkHost(L).ExecuteString(line); err != nil {
		L.RaiseError("%s", err)
	}
	return 0
}

func (e *Engine) runMacro(L *lua.LState) int {
	title := L.CheckString(1)
	if err := e.checkHost(L).RunMacro(title); err != nil {
		L.RaiseError("%s", err)
	}
	return 0
}
