package toolbox

import "errors"

// Errors returned by Manager operations.
var (
	// ErrReentrant is returned when Load, Save or a macro execution is started
	// while another one is still running on the same Manager.
	ErrReentrant = errors.New("toolbox: operation already in progress")

	// ErrDuplicateTitle is returned when a title collides case-insensitively
	// with another macro in the same collection.
	ErrDuplicateTitle = errors.New("toolbox: duplicate macro title")

	// ErrCollectionFull is returned when a collection has used its whole
	// identifier range.
	ErrCollectionFull = errors.New("toolbox: macro collection is full")

	// ErrUnsupportedVersion is returned by Import for exports from a newer format.
	ErrUnsupportedVersion = errors.New("toolbox: unsupported export version")
)
