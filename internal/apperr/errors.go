// Package apperr defines the error taxonomy shared by the interpreter,
// command execution and storage.
package apperr

import "errors"

// Parse-time errors. They abort interpretation of one line only.
var (
	ErrMissingIndex        = errors.New("missing index")
	ErrInvalidIndex        = errors.New("invalid index")
	ErrEmptyDescription    = errors.New("empty description")
	ErrInvalidFormat       = errors.New("invalid format")
	ErrInvalidDate         = errors.New("invalid date")
	ErrUnrecognizedCommand = errors.New("unrecognized command")
)

// Execution and storage errors.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrIO              = errors.New("io error")
	ErrCorruptRecord   = errors.New("corrupt record")
)

// ParseError is returned by the interpreter. Kind is one of the parse-time
// sentinels above; Message is meant for the user.
type ParseError struct {
	Kind    error
	Message string
}

// NewParseError builds a ParseError of the given kind.
func NewParseError(kind error, msg string) *ParseError {
	return &ParseError{Kind: kind, Message: msg}
}

func (e *ParseError) Error() string {
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}
