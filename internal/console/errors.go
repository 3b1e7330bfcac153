package console

import "errors"

// Errors returned by the console.
var (
	ErrUnknownCommand   = errors.New("console: unknown command or variable")
	ErrDuplicateCommand = errors.New("console: command already registered")
	ErrBadValue         = errors.New("console: invalid variable value")
	ErrUnterminated     = errors.New("console: unterminated quote")
)
