package console

import (
	"fmt"
	"strings"
)

func registerBuiltins(c *Console) {
	builtins := []command{
		{"echo", "echo <text...>: print text", echo},
		{"set", "set <var> <value>: assign a variable", set},
		{"toggle", "toggle <var>: flip a variable between 0 and 1", toggle},
		{"help", "help: list commands", help},
	}
	for _, b := range builtins {
		c.commands[key(b.name)] = b
	}
}

func echo(c *Console, args []string) error {
	fmt.Fprintln(c.out, strings.Join(args, " "))
	return nil
}

func set(c *Console, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("set: want <var> <value>, got %d arguments", len(args))
	}
	v, err := ParseValue(args[1])
	if err != nil {
		return err
	}
	c.SetVar(args[0], v)
	return nil
}

func toggle(c *Console, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("toggle: want <var>, got %d arguments", len(args))
	}
	if c.GetVar(args[0]) != 0 {
		c.SetVar(args[0], 0)
	} else {
		c.SetVar(args[0], 1)
	}
	return nil
}

func help(c *Console, _ []string) error {
	names := c.Commands()
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, name := range names {
		fmt.Fprintln(c.out, c.commands[key(name)].help)
	}
	return nil
}
