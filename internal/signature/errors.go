package signature

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates the failure modes of signature verification
type ErrorKind string

const (
	// KindMissingTimestamp means the signature string has no timestamp field
	KindMissingTimestamp ErrorKind = "missing_timestamp"
	// KindInvalidTimestamp means the timestamp field is not a non-negative base-10 integer
	KindInvalidTimestamp ErrorKind = "invalid_timestamp"
	// KindMissingHmac means the signature string has no hmac field
	KindMissingHmac ErrorKind = "missing_hmac"
	// KindInvalidSignature means the computed digest does not match the claimed one
	KindInvalidSignature ErrorKind = "invalid_signature"
	// KindPayloadParse means the payload is authentic but not parseable as JSON
	KindPayloadParse ErrorKind = "payload_parse"
	// KindPayloadEncoding means the payload bytes are not valid UTF-8
	KindPayloadEncoding ErrorKind = "payload_encoding"
)

// VerificationError is the single error family produced by this package.
// Every failure carries a Kind so callers can map it to a rejection without
// string matching.
type VerificationError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// Error implements the error interface
func (e *VerificationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause
func (e *VerificationError) Unwrap() error {
	return e.Cause
}

// newError creates a new verification error
func newError(kind ErrorKind, format string, args ...interface{}) *VerificationError {
	return &VerificationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// wrapError creates a new verification error wrapping a cause
func wrapError(kind ErrorKind, cause error, format string, args ...interface{}) *VerificationError {
	return &VerificationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsKind checks if an error is a verification error of a specific kind
func IsKind(err error, kind ErrorKind) bool {
	var verr *VerificationError
	if !errors.As(err, &verr) {
		return false
	}
	return verr.Kind == kind
}

// KindOf returns the kind of a verification error, or an empty kind for
// nil and foreign errors
func KindOf(err error) ErrorKind {
	var verr *VerificationError
	if !errors.As(err, &verr) {
		return ""
	}
	return verr.Kind
}
