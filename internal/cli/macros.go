package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/toolbox/internal/toolbox"
)

func newListCommand() *cobra.Command {
	var shelf, all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List macros",
		Example: `  # Toolbox macros
  toolbox list

  # Toolbox and shelf macros
  toolbox list --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd)
			var collections []bool
			switch {
			case all:
				collections = []bool{true, false}
			case shelf:
				collections = []bool{false}
			default:
				collections = []bool{true}
			}
			renderMacros(cmd.OutOrStdout(), a.Manager(), collections)
			return nil
		},
	}
	cmd.Flags().BoolVar(&shelf, "shelf", false, "list shelf macros instead of toolbox macros")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "list both collections")
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <title>",
		Short: "Show a macro and its commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			index, tb, err := a.Lookup(args[0])
			if err != nil {
				return err
			}
			renderMacro(cmd.OutOrStdout(), a.Manager().Macro(index, tb), tb)
			return nil
		},
	}
}

func newRunCommand() *cobra.Command {
	var keys []string
	cmd := &cobra.Command{
		Use:   "run [title...]",
		Short: "Run macros by title or by shortcut",
		Example: `  toolbox run "Debug Draw"
  toolbox run --key Ctrl+Shift+D`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if len(args) == 0 && len(keys) == 0 {
				return fmt.Errorf("run: give a title or --key")
			}
			for _, title := range args {
				if err := a.Run(title); err != nil {
					return fmt.Errorf("%s: %w", title, err)
				}
			}
			for _, k := range keys {
				if err := a.TriggerShortcut(k); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&keys, "key", "k", nil, "run the macro bound to this shortcut (repeatable)")
	return cmd
}

func newExecCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <console line>",
		Short: "Run a console command line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return appFrom(cmd).Console().ExecuteString(strings.Join(args, " "))
		},
	}
}

func newAddCommand() *cobra.Command {
	var shortcut, icon string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a toolbox macro",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			m := a.Manager()
			if shortcut != "" && !m.IsPossibleToAddShortcut(shortcut) {
				return fmt.Errorf("shortcut %q is not a valid key spec", shortcut)
			}
			mac, index, err := m.NewMacro(args[0], true)
			if err != nil {
				return err
			}
			mac.SetShortcutName(shortcut)
			mac.SetIconPath(icon)
			m.UpdateShortcuts()
			if err := a.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %q as toolbox macro %d\n", mac.Title(), index)
			return nil
		},
	}
	cmd.Flags().StringVar(&shortcut, "shortcut", "", "keyboard shortcut, e.g. Ctrl+Shift+D")
	cmd.Flags().StringVar(&icon, "icon", "", "icon path")
	return cmd
}

func newAddCommandCommand() *cobra.Command {
	var toggle bool
	cmd := &cobra.Command{
		Use:   "add-command <title> <script|console|separator> [text]",
		Short: "Append a command to a toolbox macro",
		Example: `  toolbox add-command "Debug Draw" console r_DebugDraw --toggle
  toolbox add-command "Debug Draw" script 'toolbox.exec("echo done")'`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			index, err := toolboxIndex(a, args[0])
			if err != nil {
				return err
			}
			kind, ok := toolbox.ParseKind(args[1])
			if !ok {
				return fmt.Errorf("unknown command kind %q", args[1])
			}
			var text string
			if len(args) == 3 {
				text = args[2]
			}
			if kind != toolbox.KindInvalid && text == "" {
				return fmt.Errorf("%s command needs text", kind)
			}
			mac := a.Manager().Macro(index, true)
			mac.AddCommand(kind, text, toggle)
			return a.Save()
		},
	}
	cmd.Flags().BoolVar(&toggle, "toggle", false, "flip the console variable named by the text")
	return cmd
}

func newRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <title> <new title>",
		Short: "Rename a toolbox macro",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			index, err := toolboxIndex(a, args[0])
			if err != nil {
				return err
			}
			if !a.Manager().SetMacroTitle(index, args[1], true) {
				return fmt.Errorf("%w: %q", toolbox.ErrDuplicateTitle, args[1])
			}
			return a.Save()
		},
	}
}

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <title>",
		Aliases: []string{"rm"},
		Short:   "Delete a toolbox macro",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			index, err := toolboxIndex(a, args[0])
			if err != nil {
				return err
			}
			a.Manager().RemoveMacro(index, true)
			return a.Save()
		},
	}
}

func newSwapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "swap <title> <title>",
		Short: "Swap the positions of two toolbox macros",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			i, err := toolboxIndex(a, args[0])
			if err != nil {
				return err
			}
			j, err := toolboxIndex(a, args[1])
			if err != nil {
				return err
			}
			a.Manager().SwapMacro(i, j, true)
			return a.Save()
		},
	}
}

func newSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Rewrite Macros.xml from the loaded toolbox",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd)
			if err := a.Save(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.Manager().SaveFilePath())
			return nil
		},
	}
}

func newExportCommand() *cobra.Command {
	var shelf bool
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a collection as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := appFrom(cmd).Manager().Export(!shelf)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(out, data, 0o644)
		},
	}
	cmd.Flags().BoolVar(&shelf, "shelf", false, "export shelf macros")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func newImportCommand() *cobra.Command {
	var merge bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Read toolbox macros from a YAML export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			a := appFrom(cmd)
			n, err := a.Import(data, merge)
			if err != nil {
				return err
			}
			if err := a.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d macros\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&merge, "merge", false, "keep existing macros and skip titles that already exist")
	return cmd
}
