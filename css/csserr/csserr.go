/*
Package csserr defines the error codes raised by CSS value operations.

Codes follow the DOMException names of the CSS object model. Every error
returned from packages value, calc and color carries one of these codes
and can be tested with errors.Is against the Err… sentinels:

    if errors.Is(err, csserr.ErrTypeMismatch) {
        …
    }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package csserr

import (
	"errors"
	"fmt"
)

// Code is a DOM style error code.
type Code int8

// Error codes for CSS value operations.
const (
	NoErr                  Code = iota
	SyntaxErr                   // malformed expression or function structure
	TypeMismatchErr             // unit-incompatible arithmetic or wrong value kind
	InvalidAccessErr            // 0/0, strict gamut violations, out-of-range assignments
	InvalidStateErr             // operation on a value with pending components
	InvalidModificationErr      // re-typing a value holder
	NotSupportedErr             // valid, but declined input
)

var codeNames = [...]string{"NO_ERR", "SYNTAX_ERR", "TYPE_MISMATCH_ERR", "INVALID_ACCESS_ERR",
	"INVALID_STATE_ERR", "INVALID_MODIFICATION_ERR", "NOT_SUPPORTED_ERR"}

func (c Code) String() string {
	if c < 0 || int(c) >= len(codeNames) {
		return fmt.Sprintf("ERR(%d)", int(c))
	}
	return codeNames[c]
}

// Error is the error type for CSS value operations.
type Error struct {
	Code Code
	Msg  string
	Err  error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code. This makes the sentinels below
// usable with errors.Is, regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Msg == "" || t.Msg == e.Msg)
}

// Sentinels for errors.Is.
var (
	ErrSyntax              = &Error{Code: SyntaxErr}
	ErrTypeMismatch        = &Error{Code: TypeMismatchErr}
	ErrInvalidAccess       = &Error{Code: InvalidAccessErr}
	ErrInvalidState        = &Error{Code: InvalidStateErr}
	ErrInvalidModification = &Error{Code: InvalidModificationErr}
	ErrNotSupported        = &Error{Code: NotSupportedErr}
)

// New creates an error with code c and a formatted message.
func New(c Code, format string, args ...interface{}) error {
	return &Error{Code: c, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an error with code c, wrapping cause err.
func Wrap(c Code, err error, format string, args ...interface{}) error {
	return &Error{Code: c, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Syntax creates a SYNTAX_ERR.
func Syntax(format string, args ...interface{}) error {
	return New(SyntaxErr, format, args...)
}

// TypeMismatch creates a TYPE_MISMATCH_ERR.
func TypeMismatch(format string, args ...interface{}) error {
	return New(TypeMismatchErr, format, args...)
}

// InvalidAccess creates an INVALID_ACCESS_ERR.
func InvalidAccess(format string, args ...interface{}) error {
	return New(InvalidAccessErr, format, args...)
}

// InvalidState creates an INVALID_STATE_ERR.
func InvalidState(format string, args ...interface{}) error {
	return New(InvalidStateErr, format, args...)
}

// InvalidModification creates an INVALID_MODIFICATION_ERR.
func InvalidModification(format string, args ...interface{}) error {
	return New(InvalidModificationErr, format, args...)
}

// NotSupported creates a NOT_SUPPORTED_ERR.
func NotSupported(format string, args ...interface{}) error {
	return New(NotSupportedErr, format, args...)
}

// CodeOf returns the code of the first *Error in err's chain, or NoErr.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return NoErr
}
