// Package console implements the editor console that macro console commands
// run against: numeric variables and named commands.
//
// A line holds one or more statements separated by ';'. A statement is a
// command name followed by its arguments, or a variable name optionally
// followed by a new value. Names are case-insensitive.
package console

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dshills/toolbox/internal/logging"
)

// CommandFunc implements a console command. args excludes the command name.
type CommandFunc func(c *Console, args []string) error

type command struct {
	name string
	help string
	fn   CommandFunc
}

type variable struct {
	name  string
	value float64
}

// Console holds variables and commands.
type Console struct {
	mu       sync.RWMutex
	vars     map[string]*variable
	commands map[string]command
	out      io.Writer
	logger   *logging.Logger
}

// Option configures a Console.
type Option func(*Console)

// WithOutput sets where echo and variable queries write.
func WithOutput(w io.Writer) Option {
	return func(c *Console) { c.out = w }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Console) { c.logger = l }
}

// WithVars seeds variables.
func WithVars(vars map[string]float64) Option {
	return func(c *Console) {
		for name, v := range vars {
			c.vars[key(name)] = &variable{name: name, value: v}
		}
	}
}

// New creates a console with the built-in commands registered.
func New(opts ...Option) *Console {
	c := &Console{
		vars:     make(map[string]*variable),
		commands: make(map[string]command),
		out:      os.Stdout,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithComponent("console")
	registerBuiltins(c)
	return c
}

func key(name string) string { return strings.ToLower(name) }

// GetVar returns the variable's value, or 0 when it does not exist.
func (c *Console) GetVar(name string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.vars[key(name)]; ok {
		return v.value
	}
	return 0
}

// SetVar assigns a variable, creating it if needed.
func (c *Console) SetVar(name string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.vars[key(name)]; ok {
		v.value = value
		return
	}
	c.vars[key(name)] = &variable{name: name, value: value}
}

// HasVar reports whether a variable exists.
func (c *Console) HasVar(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.vars[key(name)]
	return ok
}

// Vars returns a snapshot of all variables.
func (c *Console) Vars() map[string]float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]float64, len(c.vars))
	for _, v := range c.vars {
		out[v.name] = v.value
	}
	return out
}

// Register adds a command.
func (c *Console) Register(name, help string, fn CommandFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.commands[key(name)]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}
	c.commands[key(name)] = command{name: name, help: help, fn: fn}
	return nil
}

// Commands returns the registered command names, sorted.
func (c *Console) Commands() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.commands))
	for _, cmd := range c.commands {
		names = append(names, cmd.name)
	}
	sort.Strings(names)
	return names
}

// Printf writes to the console output.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// ExecuteString runs every statement in line. Execution stops at the first
// failing statement.
func (c *Console) ExecuteString(line string) error {
	statements, err := Split(line)
	if err != nil {
		return err
	}
	for _, args := range statements {
		if err := c.execute(args); err != nil {
			c.logger.Debug("console statement failed", "line", line, "error", err)
			return err
		}
	}
	return nil
}

func (c *Console) execute(args []string) error {
	name := args[0]

	c.mu.RLock()
	cmd, isCommand := c.commands[key(name)]
	c.mu.RUnlock()
	if isCommand {
		return cmd.fn(c, args[1:])
	}

	if len(args) == 1 {
		if !c.HasVar(name) {
			return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		}
		fmt.Fprintf(c.out, "%s = %s\n", name, FormatValue(c.GetVar(name)))
		return nil
	}

	value, err := ParseValue(args[1])
	if err != nil {
		return err
	}
	c.SetVar(name, value)
	return nil
}

// ParseValue parses a variable value. Booleans map to 1 and 0.
func ParseValue(s string) (float64, error) {
	switch strings.ToLower(s) {
	case "true", "on", "yes":
		return 1, nil
	case "false", "off", "no":
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadValue, s)
	}
	return v, nil
}

// FormatValue renders a value the shortest way.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
