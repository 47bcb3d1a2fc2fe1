// Package chainerrors defines the error taxonomy shared by the codec,
// keyring and combiner packages. Every failure is fatal and surfaces
// synchronously; nothing in this module retries on its own.
package chainerrors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable classification of a failure.
type Code int

const (
	// CodeStructural marks malformed wire input: bad RLP, a wrong type
	// tag, or a wrong field count.
	CodeStructural Code = iota + 1
	// CodeInvalidArgument marks a malformed value at the point of
	// assignment, such as a bad numeric string or address.
	CodeInvalidArgument
	// CodeMissingField marks a required field still unset at encode or
	// sign time.
	CodeMissingField
	// CodeInvalidKey marks an unusable private key.
	CodeInvalidKey
	// CodeSigning marks an ECDSA signing failure.
	CodeSigning
	// CodeIncompatibleType marks a combine candidate whose transaction
	// type differs from the target's.
	CodeIncompatibleType
	// CodeIncompatibleFields marks a combine candidate whose
	// non-signature fields differ from the target's.
	CodeIncompatibleFields
)

// Error is a typed error carrying a stable code. Field is set for
// CodeMissingField and names the offending transaction field.
type Error struct {
	Code    Code
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that wraps cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// MissingField creates a CodeMissingField Error naming the unset field.
func MissingField(field string) *Error {
	return &Error{
		Code:    CodeMissingField,
		Field:   field,
		Message: fmt.Sprintf("%s is undefined: define %s in the transaction or fill it from a chain context", field, field),
	}
}

// As unwraps err into an *Error if one is in its chain.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// CodeOf returns the code carried by err, or 0 if err carries none.
func CodeOf(err error) Code {
	if typed, ok := As(err); ok {
		return typed.Code
	}
	return 0
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
