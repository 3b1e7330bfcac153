// Package toolbox implements the editor's macro system.
//
// A Command is one executable step: a script snippet, a console command, or a
// console variable toggle. A Macro is a titled, ordered list of commands. The
// Manager owns two collections of macros, the user's toolbox and the
// file-sourced shelves, and implements their XML load/save protocol.
//
// # Collections
//
// Each collection is bound to a range of action identifiers. A macro's
// position in its collection maps to an identifier in that range, which is how
// shelf macros are registered as actions and how shortcuts are bound. The
// range also caps the number of macros a collection can hold. Titles are
// unique within a collection, compared with Unicode case folding.
//
// # Files
//
// The toolbox is persisted to Macros.xml in the user sandbox directory:
//
//	<toolboxmacros>
//	  <macro title="Toggle debug draw" shortcut="Ctrl+D" icon="">
//	    <command type="1" text="r_DebugDraw" bVariableToggle="1"/>
//	  </macro>
//	</toolboxmacros>
//
// Shelves are discovered through an environment descriptor whose children
// name a script search path and a shelves directory. Every *.xml file in a
// shelves directory becomes one toolbar and contributes its macros to the
// shelf collection.
//
// # Errors
//
// Loading never aborts on bad data. Missing or malformed files, duplicate
// titles and full collections are skipped and recorded as diagnostics.
// Indexing outside a collection or a macro's command list is a programming
// error and panics.
//
// # Concurrency
//
// A Manager is meant to be driven from a single goroutine. Load, Save and
// macro execution are not reentrant: a script that triggers one of them while
// another is running gets ErrReentrant.
package toolbox
