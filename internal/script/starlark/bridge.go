package starlark

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/dshills/toolbox/internal/script"
)

// newHostModule builds the toolbox module value.
func (e *Engine) newHostModule() starlark.Value {
	return &starlarkstruct.Module{
		Name: script.ModuleName,
		Members: starlark.StringDict{
			"get_var":   starlark.NewBuiltin("get_var", e.getVar),
			"set_var":   starlark.NewBuiltin("set_var", e.setVar),
			"exec":      starlark.NewBuiltin("exec", e.exec),
			"run_macro": starlark.NewBuiltin("run_macro", e.runMacro),
		},
	}
}

func (e *Engine) getVar(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name); err != nil {
		return nil, err
	}
	if e.host == nil {
		return nil, script.ErrNoHost
	}
	return starlark.Float(e.host.GetVar(name)), nil
}

func (e *Engine) setVar(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		name  string
		value starlark.Value
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "value", &value); err != nil {
		return nil, err
	}
	f, ok := starlark.AsFloat(value)
	if !ok {
		return nil, fmt.Errorf("%s: value must be a number, got %s", b.Name(), value.Type())
	}
	if e.host == nil {
		return nil, script.ErrNoHost
	}
	e.host.SetVar(name, f)
	return starlark.None, nil
}

func (e *Engine) exec(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var line string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "line", &line); err != nil {
		return nil, err
	}
	if e.host == nil {
		return nil, script.ErrNoHost
	}
	return starlark.None, e.host.ExecuteString(line)
}

func (e *Engine) runMacro(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var title string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "title", &title); err != nil {
		return nil, err
	}
	if e.host == nil {
		return nil, script.ErrNoHost
	}
	return starlark.None, e.host.RunMacro(title)
}
