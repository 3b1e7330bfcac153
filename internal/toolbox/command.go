package toolbox

import (
	"fmt"

	"github.com/dshills/toolbox/internal/xmltree"
)

// Kind selects how a command executes. The numeric value is the persisted
// "type" attribute.
type Kind int

const (
	// KindScript runs Text with the script runner.
	KindScript Kind = iota
	// KindConsole runs Text as a console command, or toggles the console
	// variable named by Text when Toggle is set.
	KindConsole
	// KindInvalid does nothing. A macro whose first command is invalid is
	// shown as a toolbar separator.
	KindInvalid
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindConsole:
		return "console"
	case KindInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind parses a kind name as returned by String.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "script":
		return KindScript, true
	case "console":
		return KindConsole, true
	case "invalid", "separator":
		return KindInvalid, true
	}
	return KindInvalid, false
}

// XML attribute names of a command element.
const (
	attrType   = "type"
	attrText   = "text"
	attrToggle = "bVariableToggle"
)

// Command is one step of a macro.
type Command struct {
	Kind Kind
	// Text is the script source, the console command line, or the
	// console variable name.
	Text string
	// Toggle makes a console command flip the variable named by Text
	// between 0 and 1 instead of executing Text.
	Toggle bool
}

// Execute runs the command against rt.
//
// A toggle reads the variable, treats any nonzero value as on, and writes 0
// or 1. Commands whose collaborator is missing, and invalid commands, do
// nothing.
func (c Command) Execute(rt Runtime) error {
	switch c.Kind {
	case KindScript:
		if rt.Scripts == nil {
			return nil
		}
		return rt.Scripts.Execute(c.Text)

	case KindConsole:
		if rt.Console == nil {
			return nil
		}
		if c.Toggle {
			on := rt.Console.GetVar(c.Text) != 0
			if on {
				rt.Console.SetVar(c.Text, 0)
			} else {
				rt.Console.SetVar(c.Text, 1)
			}
			return nil
		}
		return rt.Console.ExecuteString(c.Text)
	}
	return nil
}

// IsSeparator reports whether the command is the separator marker.
func (c Command) IsSeparator() bool {
	return c.Kind == KindInvalid
}

// Save writes the command's attributes onto node.
func (c Command) Save(node *xmltree.Node) {
	node.SetIntAttr(attrType, int(c.Kind))
	node.SetAttr(attrText, c.Text)
	node.SetBoolAttr(attrToggle, c.Toggle)
}

// Load reads the command's attributes from node. A missing or unparsable
// type loads as KindScript and a missing toggle keeps the current value.
func (c *Command) Load(node *xmltree.Node) {
	kind, _ := node.IntAttr(attrType)
	c.Kind = Kind(kind)
	c.Text = node.Attr(attrText)
	if toggle, ok := node.BoolAttr(attrToggle); ok {
		c.Toggle = toggle
	}
}
