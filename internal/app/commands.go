package app

import (
	"fmt"

	"github.com/dshills/toolbox/internal/console"
)

func (a *Application) registerConsoleCommands() error {
	commands := []struct {
		name, help string
		fn         console.CommandFunc
	}{
		{"macros", "macros: list toolbox and shelf macros", a.listMacros},
		{"macro", "macro <title>: run a macro", a.runMacro},
		{"reload", "reload: read macros and shelves again", a.reload},
		{"savemacros", "savemacros: write the toolbox macros", a.saveMacros},
	}
	for _, cmd := range commands {
		if err := a.console.Register(cmd.name, cmd.help, cmd.fn); err != nil {
			return err
		}
	}
	return nil
}

func (a *Application) listMacros(c *console.Console, _ []string) error {
	for _, tb := range []bool{true, false} {
		label := "shelf"
		if tb {
			label = "toolbox"
		}
		for i, m := range a.manager.Macros(tb) {
			c.Printf("%s %d: %s\n", label, i, m.Title())
		}
	}
	return nil
}

func (a *Application) runMacro(_ *console.Console, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("macro: want <title>, got %d arguments", len(args))
	}
	return a.Run(args[0])
}

func (a *Application) reload(c *console.Console, _ []string) error {
	if err := a.Load(); err != nil {
		return err
	}
	c.Printf("%d toolbox macros, %d shelf macros\n", a.manager.MacroCount(true), a.manager.MacroCount(false))
	return nil
}

func (a *Application) saveMacros(_ *console.Console, _ []string) error {
	return a.Save()
}
