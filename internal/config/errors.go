package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrUnknownFormat indicates the file extension is not a supported format.
	ErrUnknownFormat = errors.New("unknown config format")

	// ErrUnsupportedVersion indicates format_version is not supported.
	ErrUnsupportedVersion = errors.New("unsupported format version")

	// ErrInvalidDocument indicates a document that parsed but does not
	// describe valid inputs.
	ErrInvalidDocument = errors.New("invalid config document")

	// ErrDuplicateModifiers indicates two event specs of one layout key
	// that name the same modifier set, e.g. "C" and "ctrl".
	ErrDuplicateModifiers = errors.New("duplicate modifier set")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
