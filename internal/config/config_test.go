package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/toolbox/internal/logging"
	"github.com/dshills/toolbox/internal/toolbox"
)

// isolate runs the test from an empty directory so no stray toolbox.toml or
// .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, EngineStarlark, cfg.Script.Engine)
	assert.Equal(t, 5*time.Second, cfg.Script.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "Editor/env.xml", cfg.EditorEnv)
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel())
	assert.Equal(t, toolbox.DefaultToolboxRange, cfg.ToolboxRange())
	assert.Equal(t, toolbox.DefaultShelfRange, cfg.ShelfRange())
	assert.Empty(t, cfg.File)

	wd, _ := os.Getwd()
	assert.Equal(t, wd, cfg.Paths.DevRoot)
	assert.Equal(t, filepath.Join(wd, "Editor", "env.xml"), cfg.EditorEnvPath())
}

func TestLoadLayers(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`
editor_env = "@devroot@/Config/env.xml"

[paths]
devroot = "/game"

[script]
engine = "lua"
timeout = "2s"

[log]
level = "debug"

[console.vars]
r_DebugDraw = 1
r_Gamma = 1.5

[ranges]
toolbox_first = 1000
toolbox_last = 1009
`), 0o644))

	t.Setenv("TOOLBOX_LOG__LEVEL", "warn")
	t.Setenv("TOOLBOX_WATCH__DEBOUNCE", "1s")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--engine", "starlark"}))

	cfg, err := Load(Options{Flags: fs})
	require.NoError(t, err)

	assert.Equal(t, FileName, cfg.File)
	assert.Equal(t, EngineStarlark, cfg.Script.Engine, "flag beats file")
	assert.Equal(t, 2*time.Second, cfg.Script.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level, "env beats file")
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, map[string]float64{"r_DebugDraw": 1, "r_Gamma": 1.5}, cfg.Console.Vars)
	assert.Equal(t, toolbox.IDRange{First: 1000, Last: 1009}, cfg.ToolboxRange())
	assert.Equal(t, filepath.Join("/game", "Config", "env.xml"), cfg.EditorEnvPath())
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TOOLBOX_SCRIPT__ENGINE=lua\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("TOOLBOX_SCRIPT__ENGINE") })

	cfg, err := Load(Options{DotEnv: path})
	require.NoError(t, err)
	assert.Equal(t, EngineLua, cfg.Script.Engine)
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(Options{File: filepath.Join(dir, "missing.toml")})
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[script\nengine ="), 0o644))
	_, err = Load(Options{File: bad})
	assert.ErrorAs(t, err, &perr)

	t.Setenv("TOOLBOX_SCRIPT__ENGINE", "python")
	_, err = Load(Options{})
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestValidateRanges(t *testing.T) {
	base := Config{
		Script: ScriptConfig{Engine: EngineLua},
		Ranges: RangesConfig{ToolboxFirst: 100, ToolboxLast: 199, ShelfFirst: 200, ShelfLast: 299},
	}
	require.NoError(t, base.Validate())

	overlap := base
	overlap.Ranges.ShelfFirst = 150
	assert.ErrorIs(t, overlap.Validate(), ErrInvalidValue)

	empty := base
	empty.Ranges.ToolboxLast = 50
	assert.ErrorIs(t, empty.Validate(), ErrInvalidValue)

	zero := base
	zero.Ranges.ToolboxFirst = 0
	assert.ErrorIs(t, zero.Validate(), ErrInvalidValue)
}
