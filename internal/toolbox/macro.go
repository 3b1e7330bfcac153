package toolbox

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/toolbox/internal/xmltree"
)

const commandTag = "command"

// Macro is a titled sequence of commands.
//
// Macros are created by Manager.NewMacro, which keeps titles unique within a
// collection; rename through Manager.SetMacroTitle for the same reason.
type Macro struct {
	id        uuid.UUID
	title     string
	shortcut  string
	icon      string
	tooltip   string
	toolbarID int
	commands  []Command
}

func newMacro(title string) *Macro {
	return &Macro{
		id:        uuid.New(),
		title:     title,
		toolbarID: FreeStanding,
	}
}

// ID returns the macro's stable identifier. It survives reordering and
// renaming, unlike the macro's index.
func (m *Macro) ID() uuid.UUID { return m.id }

// Title returns the display title.
func (m *Macro) Title() string { return m.title }

// ShortcutName returns the key binding spec, or "".
func (m *Macro) ShortcutName() string { return m.shortcut }

// SetShortcutName sets the key binding spec.
func (m *Macro) SetShortcutName(spec string) { m.shortcut = spec }

// IconPath returns the icon file path.
func (m *Macro) IconPath() string { return m.icon }

// SetIconPath sets the icon file path.
func (m *Macro) SetIconPath(path string) { m.icon = path }

// Tooltip returns the toolbar tooltip of a shelf macro.
func (m *Macro) Tooltip() string { return m.tooltip }

// SetTooltip sets the toolbar tooltip.
func (m *Macro) SetTooltip(text string) { m.tooltip = text }

// ToolbarID returns FreeStanding, or the id of the generated toolbar action
// the macro belongs to.
func (m *Macro) ToolbarID() int { return m.toolbarID }

// SetToolbarID sets the toolbar id. Only FreeStanding macros are saved.
func (m *Macro) SetToolbarID(id int) { m.toolbarID = id }

// AddCommand appends a command.
func (m *Macro) AddCommand(kind Kind, text string, toggle bool) {
	m.commands = append(m.commands, Command{Kind: kind, Text: text, Toggle: toggle})
}

// CommandCount returns the number of commands.
func (m *Macro) CommandCount() int { return len(m.commands) }

// CommandAt returns a copy of the command at index. It panics when index is
// out of range.
func (m *Macro) CommandAt(index int) Command {
	m.checkIndex(index)
	return m.commands[index]
}

// MutableCommandAt returns the command at index for in-place editing. It
// panics when index is out of range.
func (m *Macro) MutableCommandAt(index int) *Command {
	m.checkIndex(index)
	return &m.commands[index]
}

// Commands returns a copy of the command list.
func (m *Macro) Commands() []Command {
	out := make([]Command, len(m.commands))
	copy(out, m.commands)
	return out
}

// SwapCommand exchanges two commands. It panics when either index is out of
// range.
func (m *Macro) SwapCommand(i, j int) {
	m.checkIndex(i)
	m.checkIndex(j)
	m.commands[i], m.commands[j] = m.commands[j], m.commands[i]
}

// RemoveCommand deletes the command at index. It panics when index is out of
// range.
func (m *Macro) RemoveCommand(index int) {
	m.checkIndex(index)
	m.commands = append(m.commands[:index], m.commands[index+1:]...)
}

// Clear removes every command.
func (m *Macro) Clear() {
	m.commands = nil
}

func (m *Macro) checkIndex(index int) {
	if index < 0 || index >= len(m.commands) {
		panic(fmt.Sprintf("toolbox: command index %d out of range [0,%d) in macro %q", index, len(m.commands), m.title))
	}
}

// Execute runs every command in order. A failing command does not stop the
// ones after it; all failures are joined into the returned error.
func (m *Macro) Execute(rt Runtime) error {
	var errs []error
	for _, c := range m.commands {
		err := c.Execute(rt)
		if rt.Observe != nil {
			rt.Observe(c, err)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s command %q: %w", c.Kind, c.Text, err))
		}
	}
	return errors.Join(errs...)
}

// Save appends one command element per command to node.
func (m *Macro) Save(node *xmltree.Node) {
	for _, c := range m.commands {
		c.Save(node.NewChild(commandTag))
	}
}

// Load replaces the commands with one per child element of node, in
// document order.
func (m *Macro) Load(node *xmltree.Node) {
	m.Clear()
	for _, child := range node.Children() {
		var c Command
		c.Load(child)
		m.commands = append(m.commands, c)
	}
}
