package toolbox

import (
	"fmt"

	"github.com/dshills/toolbox/internal/xmltree"
)

// Save writes every free-standing toolbox macro to the primary save file.
// Shelf macros belong to their shelf files and are never written here.
func (m *Manager) Save() error {
	if err := m.enter(); err != nil {
		return err
	}
	defer m.leave()

	root := m.document()
	path := m.SaveFilePath()
	if err := xmltree.SaveFile(root, path); err != nil {
		return fmt.Errorf("saving macros to %s: %w", path, err)
	}

	m.logger.Debug("macros saved", "file", path, "count", root.ChildCount())
	return nil
}

// document builds the primary save file tree.
func (m *Manager) document() *xmltree.Node {
	root := xmltree.New(rootTag)
	for _, mac := range m.toolbox.macros {
		if mac.toolbarID != FreeStanding {
			continue
		}
		node := root.NewChild(macroTag)
		node.SetAttr(attrTitle, mac.title)
		node.SetAttr(attrShortcut, mac.shortcut)
		node.SetAttr(attrIcon, mac.icon)
		mac.Save(node)
	}
	return root
}
