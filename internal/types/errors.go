package types

import (
	"errors"
	"fmt"
)

// ErrorKind identifies a caller-recoverable failure class. The values are
// surfaced verbatim in API error envelopes.
type ErrorKind string

const (
	// Ledger state errors
	ErrGameNotFound       ErrorKind = "GameNotFound"
	ErrShowdownNotReached ErrorKind = "ShowdownNotReached"

	// Mapping errors
	ErrGameMappingNotFound   ErrorKind = "GameMappingNotFound"
	ErrInvalidCardIdentifier ErrorKind = "InvalidCardIdentifier"

	// Identity errors
	ErrInvalidSignature ErrorKind = "InvalidSignature"
	ErrPlayerNotInGame  ErrorKind = "PlayerNotInGame"
	ErrPlayerNotActive  ErrorKind = "PlayerNotActive"

	// Request and system errors
	ErrInvalidRequest ErrorKind = "InvalidRequest"
	ErrInternal       ErrorKind = "Internal"
)

// RevealError represents a failed reveal, mapping or showdown operation
type RevealError struct {
	Kind    ErrorKind
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *RevealError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *RevealError) Unwrap() error {
	return e.Err
}

// NewError creates a new RevealError
func NewError(kind ErrorKind, message string) *RevealError {
	return &RevealError{
		Kind:    kind,
		Message: message,
	}
}

// Errorf creates a new RevealError with a formatted message
func Errorf(kind ErrorKind, format string, args ...interface{}) *RevealError {
	return NewError(kind, fmt.Sprintf(format, args...))
}

// WrapError wraps an existing error in a RevealError
func WrapError(kind ErrorKind, message string, err error) *RevealError {
	return &RevealError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Is checks if an error chain contains a RevealError of the given kind
func Is(err error, kind ErrorKind) bool {
	var revealErr *RevealError
	if !errors.As(err, &revealErr) {
		return false
	}
	return revealErr.Kind == kind
}

// KindOf returns the kind of the first RevealError in the chain, or ErrInternal
// when the error did not originate from this package.
func KindOf(err error) ErrorKind {
	var revealErr *RevealError
	if errors.As(err, &revealErr) {
		return revealErr.Kind
	}
	return ErrInternal
}
