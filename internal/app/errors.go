package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrMacroNotFound is returned when no macro in either collection has
	// the requested title.
	ErrMacroNotFound = errors.New("macro not found")

	// ErrShortcutNotBound is returned when a shortcut has no action.
	ErrShortcutNotBound = errors.New("shortcut not bound")

	// ErrNoConfig is returned by New without a configuration.
	ErrNoConfig = errors.New("no configuration")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
