package toolbox

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dshills/toolbox/internal/fileutil"
	"github.com/dshills/toolbox/internal/logging"
	"github.com/dshills/toolbox/internal/metrics"
)

// SaveFileName is the name of the primary save file inside the sandbox
// directory.
const SaveFileName = "Macros.xml"

// Collection labels used in logs and metrics.
const (
	toolboxLabel = "toolbox"
	shelfLabel   = "shelf"
)

// Manager owns the toolbox and shelf macro collections and the toolbars
// generated from shelf files.
//
// The zero value is not usable; create one with NewManager.
type Manager struct {
	toolbox *collection
	shelf   *collection

	toolbars    []ToolbarDescriptor
	diagnostics []Diagnostic

	sandboxDir string
	envFile    string

	scripts   ScriptRunner
	console   Console
	shortcuts ShortcutBinder
	settings  SettingsStore
	scanner   FileScanner

	logger  *logging.Logger
	metrics *metrics.Metrics

	// busy is set while Load, Save or a macro execution runs.
	busy bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithSandboxDir sets the directory holding the primary save file.
func WithSandboxDir(dir string) Option {
	return func(m *Manager) { m.sandboxDir = dir }
}

// WithEnvironmentFile sets the environment descriptor listing shelf sources.
// Without one, Load reads only the primary file.
func WithEnvironmentFile(path string) Option {
	return func(m *Manager) { m.envFile = path }
}

// WithScriptRunner sets the runner for script commands.
func WithScriptRunner(r ScriptRunner) Option {
	return func(m *Manager) { m.scripts = r }
}

// WithConsole sets the console for console commands.
func WithConsole(c Console) Option {
	return func(m *Manager) { m.console = c }
}

// WithShortcutBinder sets the keyboard shortcut collaborator.
func WithShortcutBinder(b ShortcutBinder) Option {
	return func(m *Manager) { m.shortcuts = b }
}

// WithSettingsStore sets the store that retains the parsed primary file.
func WithSettingsStore(s SettingsStore) Option {
	return func(m *Manager) { m.settings = s }
}

// WithFileScanner replaces the directory scanner used to find shelf files.
func WithFileScanner(s FileScanner) Option {
	return func(m *Manager) { m.scanner = s }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithMetrics sets the metrics collectors.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) { m.metrics = mt }
}

// WithToolboxRange sets the identifier range, and so the capacity, of the
// toolbox collection.
func WithToolboxRange(r IDRange) Option {
	return func(m *Manager) { m.toolbox.ids = r }
}

// WithShelfRange sets the identifier range of the shelf collection.
func WithShelfRange(r IDRange) Option {
	return func(m *Manager) { m.shelf.ids = r }
}

// NewManager creates an empty manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		toolbox: newCollection(toolboxLabel, DefaultToolboxRange),
		shelf:   newCollection(shelfLabel, DefaultShelfRange),
		scanner: fileutil.Scanner{},
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.sandboxDir == "" {
		if dir, err := fileutil.UserSandboxDir(); err == nil {
			m.sandboxDir = dir
		}
	}
	m.logger = m.logger.WithComponent("toolbox")
	return m
}

func (m *Manager) collection(toolbox bool) *collection {
	if toolbox {
		return m.toolbox
	}
	return m.shelf
}

// enter marks the start of a non-reentrant operation.
func (m *Manager) enter() error {
	if m.busy {
		return ErrReentrant
	}
	m.busy = true
	return nil
}

func (m *Manager) leave() { m.busy = false }

// Busy reports whether Load, Save or a macro execution is in progress.
func (m *Manager) Busy() bool { return m.busy }

// SaveFilePath returns the primary save file path.
func (m *Manager) SaveFilePath() string {
	return filepath.Join(m.sandboxDir, SaveFileName)
}

// Range returns the identifier range of a collection.
func (m *Manager) Range(toolbox bool) IDRange {
	return m.collection(toolbox).ids
}

// MacroCount returns the number of macros in a collection.
func (m *Manager) MacroCount(toolbox bool) int {
	return m.collection(toolbox).count()
}

// Macro returns the macro at index. It panics when index is out of range.
func (m *Manager) Macro(index int, toolbox bool) *Macro {
	return m.collection(toolbox).at(index)
}

// Macros returns the macros of a collection in order.
func (m *Manager) Macros(toolbox bool) []*Macro {
	return m.collection(toolbox).all()
}

// MacroIndex returns the index of the first macro whose title matches
// case-insensitively, or NotFound.
func (m *Manager) MacroIndex(title string, toolbox bool) int {
	return m.collection(toolbox).indexOf(title, NotFound)
}

// MacroByID finds a macro in either collection by its stable identifier.
func (m *Manager) MacroByID(id uuid.UUID) (mac *Macro, index int, toolbox bool) {
	for _, tb := range []bool{true, false} {
		for i, candidate := range m.collection(tb).macros {
			if candidate.id == id {
				return candidate, i, tb
			}
		}
	}
	return nil, NotFound, false
}

// NewMacro appends an empty macro to a collection and returns it with its
// index. It fails with ErrDuplicateTitle when the title is already used in
// the collection and with ErrCollectionFull when the collection's range is
// exhausted; the collection is unchanged on failure.
func (m *Manager) NewMacro(title string, toolbox bool) (*Macro, int, error) {
	return m.collection(toolbox).create(title)
}

// SetMacroTitle renames the macro at index. It returns false, changing
// nothing, when another macro in the collection already has the title.
// It panics when index is out of range.
func (m *Manager) SetMacroTitle(index int, title string, toolbox bool) bool {
	return m.collection(toolbox).rename(index, title)
}

// SwapMacro exchanges two macros. It panics when either index is out of
// range.
func (m *Manager) SwapMacro(i, j int, toolbox bool) {
	m.collection(toolbox).swap(i, j)
}

// RemoveMacro releases the shortcut bound to the macro's action id and
// deletes the macro. It panics when index is out of range.
func (m *Manager) RemoveMacro(index int, toolbox bool) {
	c := m.collection(toolbox)
	c.checkIndex(index)
	m.removeMacroShortcut(index, toolbox)
	c.remove(index)
}

// Clear releases every toolbox macro's shortcut and deletes the toolbox
// macros. Shelf macros are only cleared by Load.
func (m *Manager) Clear() {
	for i := range m.toolbox.macros {
		m.removeMacroShortcut(i, true)
	}
	m.toolbox.clear()
}

// clearAll resets everything Load rebuilds.
func (m *Manager) clearAll() {
	m.Clear()
	for i := range m.shelf.macros {
		m.removeMacroShortcut(i, false)
	}
	m.shelf.clear()
	m.toolbars = nil
	m.diagnostics = nil
}

// Toolbars returns the toolbars created by the last Load.
func (m *Manager) Toolbars() []ToolbarDescriptor {
	out := make([]ToolbarDescriptor, len(m.toolbars))
	for i, t := range m.toolbars {
		out[i] = t.clone()
	}
	return out
}

// Runtime returns the collaborators commands run against, with metrics
// observation attached.
func (m *Manager) Runtime() Runtime {
	return Runtime{
		Scripts: m.scripts,
		Console: m.console,
		Observe: func(c Command, err error) {
			m.metrics.CommandExecuted(c.Kind.String(), err)
			if err != nil {
				m.logger.Warn("command failed", "kind", c.Kind, "text", c.Text, "error", err)
			}
		},
	}
}

// ExecuteMacro runs the macro at index. An out-of-range index does nothing.
//
// The macro always runs to completion; the returned error is ErrReentrant or
// the joined failures of its commands.
func (m *Manager) ExecuteMacro(index int, toolbox bool) error {
	c := m.collection(toolbox)
	if index < 0 || index >= c.count() {
		return nil
	}
	return m.run(c.macros[index], c.name)
}

// ExecuteMacroByTitle runs the first macro whose title matches
// case-insensitively. An unknown title does nothing.
func (m *Manager) ExecuteMacroByTitle(title string, toolbox bool) error {
	index := m.MacroIndex(title, toolbox)
	if index == NotFound {
		return nil
	}
	return m.ExecuteMacro(index, toolbox)
}

func (m *Manager) run(mac *Macro, collection string) error {
	if err := m.enter(); err != nil {
		m.logger.Warn("reentrant macro execution rejected", "title", mac.title)
		return err
	}
	defer m.leave()

	m.metrics.MacroExecuted(collection)
	return mac.Execute(m.Runtime())
}

// action returns an Action that runs mac through the manager, so the
// reentrancy guard applies to UI triggers too.
func (m *Manager) action(mac *Macro, collection string) Action {
	return ActionFunc(func() {
		if err := m.run(mac, collection); err != nil {
			m.logger.Debug("macro action failed", "title", mac.title, "error", err)
		}
	})
}

// RegisterToolboxActions registers an action for every toolbox macro under
// the identifier of its current position. Load registers shelf macros only.
func (m *Manager) RegisterToolboxActions(actions ActionRegistrar) {
	for i, mac := range m.toolbox.macros {
		actions.AddAction(m.toolbox.ids.ID(i), m.action(mac, m.toolbox.name))
	}
}
