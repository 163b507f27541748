// Package errz defines the error taxonomy shared by the staging builder
// and node evaluation.
package errz

import "fmt"

// Kind represents the category of an error.
type Kind int

const (
	// ErrStaging indicates misuse of the staging builder, such as a
	// Reflect call with no open session. Fatal programmer error.
	ErrStaging Kind = iota
	// ErrKindMismatch indicates a typed activation-record accessor was
	// invoked against a slot holding a different stored kind.
	ErrKindMismatch
	// ErrArith indicates an arithmetic fault in a leaf operation, such
	// as division by zero.
	ErrArith
	// ErrTarget indicates invalid call-target packaging, such as a block
	// referencing slots outside its layout.
	ErrTarget
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	switch k {
	case ErrStaging:
		return "staging error"
	case ErrKindMismatch:
		return "kind mismatch"
	case ErrArith:
		return "arithmetic error"
	case ErrTarget:
		return "target error"
	default:
		return "error"
	}
}

// Error is the structured error type used throughout the module.
type Error struct {
	kind    Kind
	message string
	cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.kind.String(), e.message)
}

// Kind returns the category of the error.
func (e *Error) Kind() Kind {
	return e.kind
}

// Unwrap returns the underlying cause of the error, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// New creates an Error with the given kind and formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error that carries an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...), cause: cause}
}

// Staging creates a staging-misuse error.
func Staging(format string, args ...interface{}) *Error {
	return New(ErrStaging, format, args...)
}

// KindMismatch creates a kind-mismatch error.
func KindMismatch(format string, args ...interface{}) *Error {
	return New(ErrKindMismatch, format, args...)
}

// Arith creates an arithmetic error.
func Arith(format string, args ...interface{}) *Error {
	return New(ErrArith, format, args...)
}

// Target creates a packaging error.
func Target(format string, args ...interface{}) *Error {
	return New(ErrTarget, format, args...)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.kind == kind
}
