package toolbox

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

const exchangeVersion = 1

type exchangeData struct {
	Version    int             `yaml:"version"`
	Collection string          `yaml:"collection"`
	ExportedAt time.Time       `yaml:"exported_at"`
	Macros     []exchangeMacro `yaml:"macros"`
}

type exchangeMacro struct {
	Title    string            `yaml:"title"`
	Shortcut string            `yaml:"shortcut,omitempty"`
	Icon     string            `yaml:"icon,omitempty"`
	Tooltip  string            `yaml:"tooltip,omitempty"`
	Commands []exchangeCommand `yaml:"commands"`
}

type exchangeCommand struct {
	Kind   string `yaml:"kind"`
	Text   string `yaml:"text"`
	Toggle bool   `yaml:"toggle,omitempty"`
}

// Export renders a collection as YAML for sharing or backup.
func (m *Manager) Export(toolbox bool) ([]byte, error) {
	c := m.collection(toolbox)
	data := exchangeData{
		Version:    exchangeVersion,
		Collection: c.name,
		ExportedAt: time.Now().UTC(),
		Macros:     make([]exchangeMacro, 0, c.count()),
	}

	for _, mac := range c.macros {
		em := exchangeMacro{
			Title:    mac.title,
			Shortcut: mac.shortcut,
			Icon:     mac.icon,
			Tooltip:  mac.tooltip,
			Commands: make([]exchangeCommand, len(mac.commands)),
		}
		for i, cmd := range mac.commands {
			em.Commands[i] = exchangeCommand{Kind: cmd.Kind.String(), Text: cmd.Text, Toggle: cmd.Toggle}
		}
		data.Macros = append(data.Macros, em)
	}

	out, err := yaml.Marshal(&data)
	if err != nil {
		return nil, fmt.Errorf("marshaling macros: %w", err)
	}
	return out, nil
}

// Import creates macros from YAML produced by Export and returns how many
// were added. With merge set, macros whose title already exists are skipped;
// otherwise the collection is cleared first. Commands of unknown kind import
// as separators. Shortcuts are rebound afterwards; actions are not, so
// callers holding a registry register the toolbox actions again.
func (m *Manager) Import(data []byte, toolbox bool, merge bool) (int, error) {
	var in exchangeData
	if err := yaml.Unmarshal(data, &in); err != nil {
		return 0, fmt.Errorf("unmarshaling macros: %w", err)
	}
	if in.Version > exchangeVersion {
		return 0, fmt.Errorf("%w: %d (max supported: %d)", ErrUnsupportedVersion, in.Version, exchangeVersion)
	}

	if err := m.enter(); err != nil {
		return 0, err
	}
	defer m.leave()

	if !merge {
		if toolbox {
			m.Clear()
		} else {
			for i := range m.shelf.macros {
				m.removeMacroShortcut(i, false)
			}
			m.shelf.clear()
		}
	}

	added := 0
	for _, em := range in.Macros {
		mac, _, err := m.NewMacro(em.Title, toolbox)
		if errors.Is(err, ErrDuplicateTitle) {
			m.logger.Debug("import skipped existing macro", "title", em.Title)
			continue
		}
		if err != nil {
			m.updateShortcuts()
			return added, err
		}

		mac.SetShortcutName(em.Shortcut)
		mac.SetIconPath(em.Icon)
		mac.SetTooltip(em.Tooltip)
		for _, ec := range em.Commands {
			kind, _ := ParseKind(ec.Kind)
			mac.AddCommand(kind, ec.Text, ec.Toggle)
		}
		added++
	}
	m.updateShortcuts()

	m.logger.Info("macros imported", "collection", m.collection(toolbox).name, "added", added)
	return added, nil
}
