// Package cli provides the toolbox command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/toolbox/internal/app"
	"github.com/dshills/toolbox/internal/config"
	"github.com/dshills/toolbox/internal/toolbox"
)

// Version information (set at build time).
var (
	Version   = "dev"
	GitCommit = "unknown"
)

type appKey struct{}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "toolbox",
		Short: "Manage editor toolbox macros and shelves",
		Long: `toolbox edits the macros saved in Macros.xml, lists the shelves
described by the editor environment file and runs macros against a console
and a script engine.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(config.Options{Flags: cmd.Root().PersistentFlags()})
			if err != nil {
				return err
			}
			a, err := app.New(app.Options{
				Config:    cfg,
				Output:    cmd.OutOrStdout(),
				LogOutput: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			if err := a.Load(); err != nil {
				_ = a.Shutdown()
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, a))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a, ok := cmd.Context().Value(appKey{}).(*app.Application); ok {
				return a.Shutdown()
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("{{.Name}} {{.Version}} (%s)\n", GitCommit))

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newListCommand(),
		newShowCommand(),
		newRunCommand(),
		newExecCommand(),
		newAddCommand(),
		newAddCommandCommand(),
		newRenameCommand(),
		newRemoveCommand(),
		newSwapCommand(),
		newShelvesCommand(),
		newCheckCommand(),
		newSaveCommand(),
		newExportCommand(),
		newImportCommand(),
		newWatchCommand(),
	)
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func appFrom(cmd *cobra.Command) *app.Application {
	return cmd.Context().Value(appKey{}).(*app.Application)
}

// toolboxIndex finds a macro in the editable toolbox collection.
func toolboxIndex(a *app.Application, title string) (int, error) {
	i := a.Manager().MacroIndex(title, true)
	if i == toolbox.NotFound {
		if _, inToolbox, err := a.Lookup(title); err == nil && !inToolbox {
			return i, fmt.Errorf("%q is a shelf macro; edit its shelf file instead", title)
		}
		return i, fmt.Errorf("%w: %q", app.ErrMacroNotFound, title)
	}
	return i, nil
}

// IsUsageError reports whether err came from bad arguments rather than a
// failed operation.
func IsUsageError(err error) bool {
	var pe *config.ParseError
	return errors.Is(err, config.ErrInvalidValue) || errors.As(err, &pe)
}
