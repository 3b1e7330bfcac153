package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"github.com/dshills/toolbox/internal/toolbox"
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newTable returns a table writer. Terminals get box drawing; anything
// else gets CSV from render.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func render(w io.Writer, t table.Writer) {
	if isTerminal(w) {
		t.Render()
		return
	}
	t.RenderCSV()
}

func collectionName(tb bool) string {
	if tb {
		return "toolbox"
	}
	return "shelf"
}

func renderMacros(w io.Writer, m *toolbox.Manager, collections []bool) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Collection", "#", "Title", "Shortcut", "Commands", "Action"})
	for _, tb := range collections {
		r := m.Range(tb)
		for i, mac := range m.Macros(tb) {
			t.AppendRow(table.Row{collectionName(tb), i, mac.Title(), mac.ShortcutName(), mac.CommandCount(), int(r.ID(i))})
		}
	}
	render(w, t)
}

func renderMacro(w io.Writer, mac *toolbox.Macro, tb bool) {
	fmt.Fprintf(w, "%s (%s)\n", mac.Title(), collectionName(tb))
	if s := mac.ShortcutName(); s != "" {
		fmt.Fprintf(w, "  shortcut: %s\n", s)
	}
	if s := mac.IconPath(); s != "" {
		fmt.Fprintf(w, "  icon:     %s\n", s)
	}
	if s := mac.Tooltip(); s != "" {
		fmt.Fprintf(w, "  tooltip:  %s\n", s)
	}
	if id := mac.ToolbarID(); id != toolbox.FreeStanding {
		fmt.Fprintf(w, "  toolbar:  %d\n", id)
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Kind", "Text", "Toggle"})
	for i, c := range mac.Commands() {
		t.AppendRow(table.Row{i, c.Kind, c.Text, c.Toggle})
	}
	render(w, t)
}

func renderDiagnostics(w io.Writer, diags []toolbox.Diagnostic) {
	t := newTable(w)
	t.AppendHeader(table.Row{"File", "Title", "Reason", "Error"})
	for _, d := range diags {
		errText := ""
		if d.Err != nil {
			errText = d.Err.Error()
		}
		t.AppendRow(table.Row{d.File, d.Title, string(d.Reason), errText})
	}
	render(w, t)
}
