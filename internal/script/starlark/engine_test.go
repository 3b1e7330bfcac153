package starlark

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	vars   map[string]float64
	lines  []string
	macros []string
	err    error
}

func newFakeHost() *fakeHost {
	return &fakeHost{vars: map[string]float64{}}
}

func (h *fakeHost) GetVar(name string) float64 { return h.vars[name] }
func (h *fakeHost) SetVar(name string, v float64) { h.vars[name] = v }
func (h *fakeHost) ExecuteString(line string) error { h.lines = append(h.lines, line); return h.err }
func (h *fakeHost) RunMacro(title string) error { h.macros = append(h.macros, title); return h.err }

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	e := New(append([]Option{WithOutput(&out)}, opts...)...)
	t.Cleanup(func() { _ = e.Close() })
	return e, &out
}

func TestExecutePrint(t *testing.T) {
	e, out := newTestEngine(t)
	require.NoError(t, e.Execute("print('x')\nprint(1 + 2)"))
	assert.Equal(t, "x\n3\n", out.String())
}

func TestExecuteErrors(t *testing.T) {
	e, _ := newTestEngine(t)

	err := e.Execute("def (")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "starlark:")

	err = e.Execute("fail('boom')")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestHostBridge(t *testing.T) {
	e, _ := newTestEngine(t)
	host := newFakeHost()
	e.Bind(host)

	require.NoError(t, e.Execute(`
if toolbox.get_var("r_DebugDraw") == 0:
    toolbox.set_var("r_DebugDraw", 1)
toolbox.set_var(name = "r_Gamma", value = 1.5)
toolbox.exec("r_width 1024")
toolbox.run_macro("Build")
`))

	assert.Equal(t, float64(1), host.vars["r_DebugDraw"])
	assert.Equal(t, 1.5, host.vars["r_Gamma"])
	assert.Equal(t, []string{"r_width 1024"}, host.lines)
	assert.Equal(t, []string{"Build"}, host.macros)
}

func TestHostBridgeErrors(t *testing.T) {
	e, _ := newTestEngine(t)

	err := e.Execute(`toolbox.exec("x")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no host bound")

	host := newFakeHost()
	host.err = errors.New("unknown command")
	e.Bind(host)
	err = e.Execute(`toolbox.exec("bogus")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")

	err = e.Execute(`toolbox.set_var("v", "high")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a number")
}

func TestLoadFromSearchPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lib.star"), []byte(`
print("loading lib")
def greet(name):
    return "hello " + name
`), 0o644))

	e, out := newTestEngine(t)
	err := e.Execute(`load("lib", "greet")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	require.NoError(t, e.AddSearchPath(dir))
	require.NoError(t, e.Execute(`load("lib", "greet")
print(greet("star"))`))
	require.NoError(t, e.Execute(`load("lib.star", "greet")`))

	assert.Equal(t, "loading lib\nhello star\n", out.String())
}

func TestLoadCycle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.star"), []byte(`load("b", "y")
x = 1`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.star"), []byte(`load("a", "x")
y = 1`), 0o644))

	e, _ := newTestEngine(t)
	require.NoError(t, e.AddSearchPath(dir))
	err := e.Execute(`load("a", "x")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestExecuteTimeout(t *testing.T) {
	e, _ := newTestEngine(t, WithTimeout(50*time.Millisecond))
	err := e.Execute("while True:\n    pass\n")
	assert.ErrorIs(t, err, ErrExecutionTimeout)

	require.NoError(t, e.Execute("x = 1"))
}
