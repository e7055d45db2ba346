package common

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Error Taxonomy
// --------------------------------------------------------------------------

// ErrorKind classifies errors so callers can decide how to react:
// configuration errors are fatal, validation errors are caller mistakes
// and not retryable, unavailable errors are transport failures worth
// retrying, protocol errors indicate undecodable bytes on the wire.
type ErrorKind uint8

const (
	KindUnknown ErrorKind = iota
	KindConfig
	KindValidation
	KindTransport
	KindUnavailable
	KindProtocol
)

// String returns the string representation of an ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindValidation:
		return "invalid argument"
	case KindTransport:
		return "transport"
	case KindUnavailable:
		return "unavailable"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// Error is the typed error used across the RPC system.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// --------------------------------------------------------------------------
// Error Factory Functions
// --------------------------------------------------------------------------

// NewConfigError creates a new configuration error
func NewConfigError(format string, args ...interface{}) error {
	return &Error{Kind: KindConfig, Msg: fmt.Sprintf(format, args...)}
}

// NewValidationError creates a new validation error
func NewValidationError(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NewTransportError creates a new transport error
func NewTransportError(format string, args ...interface{}) error {
	return &Error{Kind: KindTransport, Msg: fmt.Sprintf(format, args...)}
}

// NewUnavailableError creates a new unavailable error
func NewUnavailableError(format string, args ...interface{}) error {
	return &Error{Kind: KindUnavailable, Msg: fmt.Sprintf(format, args...)}
}

// NewProtocolError creates a new protocol error
func NewProtocolError(format string, args ...interface{}) error {
	return &Error{Kind: KindProtocol, Msg: fmt.Sprintf(format, args...)}
}

// NewError creates an error with an explicit kind. Used to reconstruct
// a remote error from its wire representation.
func NewError(kind ErrorKind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// --------------------------------------------------------------------------
// Error Inspection
// --------------------------------------------------------------------------

// KindOf returns the kind of a typed error, or KindUnknown for plain errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsValidation reports whether the error is a validation error
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsConfig reports whether the error is a configuration error
func IsConfig(err error) bool { return KindOf(err) == KindConfig }

// IsUnavailable reports whether the error is a retryable transport failure
func IsUnavailable(err error) bool { return KindOf(err) == KindUnavailable }

// IsProtocol reports whether the error is a protocol error
func IsProtocol(err error) bool { return KindOf(err) == KindProtocol }
