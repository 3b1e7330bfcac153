package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/toolbox/internal/watcher"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload macros whenever their files change",
		Long: `watch keeps the macros loaded and reloads them when Macros.xml, the
environment file or a shelf file changes. When metrics.addr is set the
Prometheus endpoint is served while watching.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a := appFrom(cmd)
			srv, err := a.ServeMetrics(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "watching %s\n", a.Manager().SaveFilePath())
			err = a.Watch(ctx, func(change watcher.Change, err error) {
				if err != nil {
					fmt.Fprintf(out, "reload failed: %v\n", err)
					return
				}
				fmt.Fprintf(out, "%s reloaded: %d toolbox, %d shelf macros (%d files changed)\n",
					change.Time.Format("15:04:05"),
					a.Manager().MacroCount(true), a.Manager().MacroCount(false), len(change.Paths))
			})
			if srv != nil {
				stop()
				if serr := <-srv.Done(); serr != nil && err == nil {
					err = serr
				}
			}
			return err
		},
	}
}
