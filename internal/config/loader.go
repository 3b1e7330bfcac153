package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/dshills/toolbox/internal/fileutil"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: TOOLBOX_PATHS__SANDBOX sets paths.sandbox.
const EnvPrefix = "TOOLBOX_"

// FileName is the config file looked up in the working directory and the
// user sandbox.
const FileName = "toolbox.toml"

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"sandbox":      "paths.sandbox",
	"devroot":      "paths.devroot",
	"editor-env":   "editor_env",
	"engine":       "script.engine",
	"log-level":    "log.level",
	"debounce":     "watch.debounce",
	"metrics-addr": "metrics.addr",
}

// RegisterFlags defines the flags Load understands on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default ./"+FileName+" or <sandbox>/"+FileName+")")
	fs.String("sandbox", "", "directory holding Macros.xml")
	fs.String("devroot", "", "directory the @devroot@ alias expands to")
	fs.String("editor-env", "", "environment descriptor listing shelf sources")
	fs.String("engine", "", "script engine: starlark or lua")
	fs.String("log-level", "", "log level: debug, info, warn, error")
	fs.Duration("debounce", 0, "delay before reloading after a shelf change")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address")
}

// Options controls Load.
type Options struct {
	// File is an explicit config file. When empty, Load looks for
	// ./toolbox.toml and then <sandbox>/toolbox.toml.
	File string
	// DotEnv is read into the process environment before environment
	// overrides are applied; a missing file is ignored. Defaults to ".env".
	DotEnv string
	// Flags, when set, overrides settings with flags that were changed.
	Flags *pflag.FlagSet
}

// Load builds the configuration from defaults, file, environment and flags.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	sandbox, err := fileutil.UserSandboxDir()
	if err != nil {
		sandbox = "."
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(sandbox, cwd), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Config file
	path := opts.File
	if path == "" && opts.Flags != nil {
		if v, _ := opts.Flags.GetString("config"); v != "" {
			path = v
		}
	}
	explicit := path != ""
	if !explicit {
		path = findConfigFile(sandbox)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, &ParseError{Path: path, Err: err}
			}
			path = ""
		}
	}

	// 3. Environment
	dotenv := opts.DotEnv
	if dotenv == "" {
		dotenv = ".env"
	}
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", dotenv, err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	// 4. Flags
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps TOOLBOX_SCRIPT__ENGINE to script.engine.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// findConfigFile returns the first existing default config file, or "".
func findConfigFile(sandbox string) string {
	for _, candidate := range []string{FileName, filepath.Join(sandbox, FileName)} {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

// EditorEnvPath returns the environment descriptor path with the @devroot@
// alias expanded. Relative paths are taken relative to the dev root.
func (c *Config) EditorEnvPath() string {
	if c.EditorEnv == "" {
		return ""
	}
	p := fileutil.ResolveAlias(c.EditorEnv, map[string]string{fileutil.DevRootAlias: c.Paths.DevRoot})
	if !filepath.IsAbs(p) {
		p = filepath.Join(c.Paths.DevRoot, p)
	}
	return p
}
