package cli

import (
	"fmt"

	"github.com/disiqueira/gotree/v3"
	"github.com/spf13/cobra"

	"github.com/dshills/toolbox/internal/toolbox"
)

func newShelvesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shelves",
		Short: "Show the toolbars built from shelf files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := appFrom(cmd).Manager()
			fmt.Fprint(cmd.OutOrStdout(), shelfTree(m).Print())
			return nil
		},
	}
}

func shelfTree(m *toolbox.Manager) gotree.Tree {
	root := gotree.New(fmt.Sprintf("shelves (%d)", len(m.Toolbars())))
	shelfRange := m.Range(false)

	for _, tb := range m.Toolbars() {
		label := tb.PrettyName
		if tb.PrettyName != tb.Name {
			label = fmt.Sprintf("%s [%s]", tb.PrettyName, tb.Name)
		}
		if !tb.ShowByDefault {
			label += " (hidden)"
		}
		bar := root.Add(label)
		for _, id := range tb.Actions {
			if id == toolbox.SeparatorActionID {
				bar.Add("---")
				continue
			}
			index := shelfRange.Index(id)
			if index == toolbox.NotFound || index >= m.MacroCount(false) {
				bar.Add(fmt.Sprintf("#%d (missing)", id))
				continue
			}
			mac := m.Macro(index, false)
			if s := mac.ShortcutName(); s != "" {
				bar.Add(fmt.Sprintf("%s <%s>", mac.Title(), s))
				continue
			}
			bar.Add(mac.Title())
		}
	}
	return root
}

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report entries skipped while loading",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			diags := appFrom(cmd).Manager().Diagnostics()
			if len(diags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no problems found")
				return nil
			}
			renderDiagnostics(cmd.OutOrStdout(), diags)
			return fmt.Errorf("%d entries skipped", len(diags))
		},
	}
}
