package toolbox

// ToolbarDescriptor describes one toolbar generated from a shelf file.
type ToolbarDescriptor struct {
	// Name is the internal toolbar name.
	Name string
	// PrettyName is the name shown to the user.
	PrettyName string
	// ShowByDefault is false when the shelf asks to start hidden.
	ShowByDefault bool
	// Actions lists the toolbar's buttons in order. SeparatorActionID marks
	// a separator.
	Actions []ActionID
	// Source is the shelf file the toolbar was read from.
	Source string
}

// NewToolbarDescriptor creates a visible toolbar with no actions.
func NewToolbarDescriptor(name, prettyName string) ToolbarDescriptor {
	return ToolbarDescriptor{
		Name:          name,
		PrettyName:    prettyName,
		ShowByDefault: true,
	}
}

// SetName sets both names.
func (t *ToolbarDescriptor) SetName(name, prettyName string) {
	t.Name = name
	t.PrettyName = prettyName
}

// AddAction appends an action identifier.
func (t *ToolbarDescriptor) AddAction(id ActionID) {
	t.Actions = append(t.Actions, id)
}

func (t ToolbarDescriptor) clone() ToolbarDescriptor {
	c := t
	if t.Actions != nil {
		c.Actions = make([]ActionID, len(t.Actions))
		copy(c.Actions, t.Actions)
	}
	return c
}
