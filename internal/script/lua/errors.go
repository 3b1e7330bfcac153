package lua

import "errors"

// Errors returned by the engine.
var (
	// ErrEngineClosed is returned when executing on a closed engine.
	ErrEngineClosed = errors.New("lua engine is closed")

	// ErrExecutionTimeout is returned when a script runs past the engine's
	// timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")
)
