package toolbox

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/dshills/toolbox/internal/fileutil"
	"github.com/dshills/toolbox/internal/xmltree"
)

// XML names used by macro files.
const (
	rootTag  = "toolboxmacros"
	macroTag = "macro"

	attrTitle    = "title"
	attrShortcut = "shortcut"
	attrIcon     = "icon"
	attrTooltip  = "tooltip"

	attrShelfName     = "shelfName"
	attrPrettyName    = "prettyName"
	attrShowByDefault = "showByDefault"

	attrScriptPath  = "scriptPath"
	attrShelvesPath = "shelvesPath"
)

// SkipReason classifies why Load skipped something.
type SkipReason string

// Skip reasons.
const (
	SkipMalformed      SkipReason = "malformed"
	SkipDuplicateTitle SkipReason = "duplicate-title"
	SkipCapacity       SkipReason = "capacity"
	SkipScan           SkipReason = "scan-failed"
)

// Diagnostic records one entry or file skipped by Load.
type Diagnostic struct {
	File   string
	Title  string
	Reason SkipReason
	Err    error
}

// Diagnostics returns what the last Load skipped.
func (m *Manager) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(m.diagnostics))
	copy(out, m.diagnostics)
	return out
}

func (m *Manager) skip(d Diagnostic) {
	m.diagnostics = append(m.diagnostics, d)
	m.metrics.Skipped(string(d.Reason))
	m.logger.Debug("skipped while loading", "file", d.File, "title", d.Title, "reason", d.Reason, "error", d.Err)
}

// Load discards all macros and toolbars, reads the toolbox from the primary
// save file and, when actions is non-nil, loads every shelf listed in the
// environment descriptor, registering shelf macros with actions.
//
// Bad files and entries are skipped (see Diagnostics); the only error is
// ErrReentrant.
func (m *Manager) Load(actions ActionRegistrar) error {
	if err := m.enter(); err != nil {
		return err
	}
	defer m.leave()

	m.clearAll()
	m.loadFile(m.SaveFilePath(), nil, true, nil)

	if actions != nil {
		m.loadEnvironment(actions)
	}

	m.updateShortcuts()

	m.logger.Info("macros loaded",
		"toolbox", m.toolbox.count(),
		"shelf", m.shelf.count(),
		"toolbars", len(m.toolbars),
		"skipped", len(m.diagnostics))
	return nil
}

// loadEnvironment reads the environment descriptor and loads each shelf
// source that names both a script path and a shelves directory.
func (m *Manager) loadEnvironment(actions ActionRegistrar) {
	if m.envFile == "" {
		return
	}
	env, ok := m.parse(m.envFile)
	if !ok {
		return
	}

	for _, child := range env.Children() {
		scriptPath, hasScript := child.LookupAttr(attrScriptPath)
		shelvesPath, hasShelves := child.LookupAttr(attrShelvesPath)
		if !hasScript || !hasShelves {
			continue
		}
		m.LoadShelves(scriptPath, shelvesPath, actions)
	}
}

// LoadShelves adds scriptPath to the script search path and loads every
// *.xml file in shelvesPath as one toolbar of shelf macros.
func (m *Manager) LoadShelves(scriptPath, shelvesPath string, actions ActionRegistrar) {
	if m.scripts != nil {
		if err := m.scripts.AddSearchPath(scriptPath); err != nil {
			m.logger.Warn("adding script search path", "path", scriptPath, "error", err)
		}
	}

	files, err := m.scanner.ScanDirectory(shelvesPath, "*.xml")
	if err != nil {
		m.skip(Diagnostic{File: shelvesPath, Reason: SkipScan, Err: err})
		return
	}

	for _, name := range files {
		if filepath.Ext(name) != ".xml" {
			continue
		}

		shelf := fileutil.FileName(name)
		toolbar := NewToolbarDescriptor(shelf, shelf)
		path := filepath.Join(shelvesPath, name)
		toolbar.Source = path

		m.loadFile(path, &toolbar, false, actions)

		m.toolbars = append(m.toolbars, toolbar)
		m.metrics.ShelfLoaded()
	}
}

// parse loads an XML file. A missing file is silent; a malformed one is
// recorded.
func (m *Manager) parse(path string) (*xmltree.Node, bool) {
	root, err := xmltree.LoadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			m.logger.Debug("macro file not found", "file", path)
		} else {
			m.skip(Diagnostic{File: path, Reason: SkipMalformed, Err: err})
		}
		return nil, false
	}
	return root, true
}

// loadFile reads one macro file into a collection. A nil toolbar means the
// primary file: the parsed tree is handed to the settings store and toolbar
// attributes are ignored.
func (m *Manager) loadFile(path string, toolbar *ToolbarDescriptor, toolbox bool, actions ActionRegistrar) {
	root, ok := m.parse(path)
	if !ok {
		return
	}

	if toolbar == nil {
		if m.settings != nil {
			m.settings.AddSettingsNode(root)
		}
	} else {
		applyToolbarAttrs(root, toolbar)
	}

	coll := m.collection(toolbox)
	dir := fileutil.ParentDir(path)

	for _, node := range root.Children() {
		title := node.Attr(attrTitle)
		shortcut := node.Attr(attrShortcut)
		icon := node.Attr(attrIcon)

		mac, index, err := m.NewMacro(title, toolbox)
		if err != nil {
			reason := SkipDuplicateTitle
			if errors.Is(err, ErrCollectionFull) {
				reason = SkipCapacity
			}
			m.skip(Diagnostic{File: path, Title: title, Reason: reason, Err: err})
			continue
		}

		mac.Load(node)
		mac.SetShortcutName(shortcut)
		mac.SetIconPath(icon)
		mac.SetToolbarID(FreeStanding)
		m.metrics.MacroLoaded(coll.name)

		if toolbar == nil {
			continue
		}

		if icon != "" {
			mac.SetIconPath(filepath.Join(dir, icon))
		}
		mac.SetTooltip(node.Attr(attrTooltip))

		id := SeparatorActionID
		if mac.CommandCount() > 0 && !mac.CommandAt(0).IsSeparator() {
			id = coll.ids.ID(index)
			if actions != nil {
				actions.AddAction(id, m.action(mac, coll.name))
			}
		}
		toolbar.AddAction(id)
	}
}

// applyToolbarAttrs applies the shelfName, prettyName and showByDefault root
// attributes. prettyName defaults to the shelf name.
func applyToolbarAttrs(root *xmltree.Node, toolbar *ToolbarDescriptor) {
	name := toolbar.Name
	if v, ok := root.LookupAttr(attrShelfName); ok {
		name = v
	}
	pretty := name
	if v, ok := root.LookupAttr(attrPrettyName); ok {
		pretty = v
	}
	toolbar.SetName(name, pretty)

	if v, ok := root.LookupAttr(attrShowByDefault); ok {
		v = strings.TrimSpace(v)
		hidden := strings.EqualFold(v, "false") || v == "0"
		toolbar.ShowByDefault = !hidden
	}
}
