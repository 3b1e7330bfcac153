package toolbox

import (
	"errors"
	"fmt"
	"strings"
)

// callLog records collaborator calls in order.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

type fakeScripts struct {
	log         *callLog
	searchPaths []string
	fail        map[string]bool
}

func (s *fakeScripts) Execute(source string) error {
	s.log.add("script %s", source)
	if s.fail[source] {
		return errors.New("script failed")
	}
	return nil
}

func (s *fakeScripts) AddSearchPath(path string) error {
	s.searchPaths = append(s.searchPaths, path)
	return nil
}

type fakeConsole struct {
	log  *callLog
	vars map[string]float64
	// onExec runs inside ExecuteString.
	onExec func(line string) error
}

func newFakeConsole(log *callLog) *fakeConsole {
	return &fakeConsole{log: log, vars: map[string]float64{}}
}

func (c *fakeConsole) GetVar(name string) float64 {
	c.log.add("get %s", name)
	return c.vars[name]
}

func (c *fakeConsole) SetVar(name string, v float64) {
	c.log.add("set %s %g", name, v)
	c.vars[name] = v
}

func (c *fakeConsole) ExecuteString(line string) error {
	c.log.add("exec %s", line)
	if c.onExec != nil {
		return c.onExec(line)
	}
	return nil
}

type fakeRegistrar struct {
	actions map[ActionID]Action
}

func newFakeRegistrar() *fakeRegistrar {
	return &fakeRegistrar{actions: map[ActionID]Action{}}
}

func (r *fakeRegistrar) AddAction(id ActionID, a Action) {
	r.actions[id] = a
}

type fakeBinder struct {
	bound map[ActionID]string
}

func newFakeBinder() *fakeBinder {
	return &fakeBinder{bound: map[ActionID]string{}}
}

func (b *fakeBinder) Valid(spec string) bool {
	return spec != "" && !strings.Contains(spec, "bogus")
}

func (b *fakeBinder) AddShortcut(id ActionID, spec string) bool {
	if !b.Valid(spec) {
		return false
	}
	for _, s := range b.bound {
		if strings.EqualFold(s, spec) {
			return false
		}
	}
	b.bound[id] = spec
	return true
}

func (b *fakeBinder) RemoveShortcut(id ActionID) bool {
	_, ok := b.bound[id]
	delete(b.bound, id)
	return ok
}
