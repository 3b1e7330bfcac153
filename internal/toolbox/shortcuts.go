package toolbox

// updateShortcuts rebinds every macro's shortcut to the action id of its
// position. Macros whose shortcut cannot be bound lose it.
func (m *Manager) updateShortcuts() {
	if m.shortcuts == nil {
		return
	}

	for _, c := range []*collection{m.toolbox, m.shelf} {
		for i := 0; i < c.ids.Capacity(); i++ {
			m.shortcuts.RemoveShortcut(c.ids.ID(i))
		}
	}

	for _, c := range []*collection{m.toolbox, m.shelf} {
		for i, mac := range c.macros {
			if mac.shortcut == "" {
				continue
			}
			if !m.AddShortcut(c.ids.ID(i), mac.shortcut) {
				m.logger.Debug("shortcut not bound", "title", mac.title, "shortcut", mac.shortcut)
				mac.shortcut = ""
			}
		}
	}
}

// UpdateShortcuts rebinds all macro shortcuts, as Load does.
func (m *Manager) UpdateShortcuts() {
	m.updateShortcuts()
}

// AddShortcut binds spec to id. It returns false without a shortcut binder
// or when the spec cannot be bound.
func (m *Manager) AddShortcut(id ActionID, spec string) bool {
	if !m.IsPossibleToAddShortcut(spec) {
		return false
	}
	return m.shortcuts.AddShortcut(id, spec)
}

// IsPossibleToAddShortcut reports whether spec is a valid shortcut. It
// returns false without a shortcut binder.
func (m *Manager) IsPossibleToAddShortcut(spec string) bool {
	if m.shortcuts == nil {
		return false
	}
	return m.shortcuts.Valid(spec)
}

// removeMacroShortcut drops the binding of the macro at index, if any.
func (m *Manager) removeMacroShortcut(index int, toolbox bool) {
	c := m.collection(toolbox)
	if index >= c.count() || m.shortcuts == nil {
		return
	}
	m.shortcuts.RemoveShortcut(c.ids.ID(index))
}
