package analyzer

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorClass classifies an error by how the caller should react to it.
type ErrorClass string

const (
	// ErrorClassInvalid marks malformed input. The request must be fixed before retrying.
	ErrorClassInvalid ErrorClass = "invalid"

	// ErrorClassNotFound marks a lookup of an unknown policy, pack or record.
	ErrorClassNotFound ErrorClass = "not_found"

	// ErrorClassUnavailable marks a dependency (store, remote analyzer) that could not be reached.
	ErrorClassUnavailable ErrorClass = "unavailable"

	// ErrorClassInternal marks a fault inside the analyzer itself.
	ErrorClassInternal ErrorClass = "internal"
)

// Error is a classified analyzer error with optional resource context.
type Error struct {
	// Class is the error classification.
	Class ErrorClass `json:"class"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Code is a stable error code for programmatic handling.
	Code string `json:"code,omitempty"`

	// URN is the resource that caused the error, if any.
	URN string `json:"urn,omitempty"`

	// Field names the offending field for validation failures.
	Field string `json:"field,omitempty"`

	// Err is the underlying cause.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Class, e.Message)
	if e.URN != "" {
		msg += fmt.Sprintf(" (urn=%s)", e.URN)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" (field=%s)", e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same class and code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Class == t.Class && e.Code == t.Code
}

// NewInvalidError creates an error for malformed input.
func NewInvalidError(message string, err error) *Error {
	return &Error{Class: ErrorClassInvalid, Code: ErrCodeValidation, Message: message, Err: err}
}

// NewNotFoundError creates an error for an unknown entity.
func NewNotFoundError(message string, err error) *Error {
	return &Error{Class: ErrorClassNotFound, Code: ErrCodeNotFound, Message: message, Err: err}
}

// NewUnavailableError creates an error for an unreachable dependency.
func NewUnavailableError(message string, err error) *Error {
	return &Error{Class: ErrorClassUnavailable, Message: message, Err: err}
}

// NewInternalError creates an error for an analyzer fault.
func NewInternalError(message string, err error) *Error {
	return &Error{Class: ErrorClassInternal, Code: ErrCodeInternal, Message: message, Err: err}
}

// WithURN adds resource context to an error.
func (e *Error) WithURN(urn string) *Error {
	e.URN = urn
	return e
}

// WithField names the offending field.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithCode sets the error code.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

// IsInvalid reports whether err is classified as invalid input.
func IsInvalid(err error) bool {
	return classOf(err) == ErrorClassInvalid
}

// IsNotFound reports whether err is classified as not found.
func IsNotFound(err error) bool {
	return classOf(err) == ErrorClassNotFound
}

// IsInternal reports whether err is classified as internal.
func IsInternal(err error) bool {
	return classOf(err) == ErrorClassInternal
}

func classOf(err error) ErrorClass {
	var e *Error
	if errors.As(err, &e) {
		return e.Class
	}
	return ""
}

// Common error codes.
const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeMissingURN      = "MISSING_URN"
	ErrCodeDuplicateURN    = "DUPLICATE_URN"
	ErrCodeUnknownProperty = "UNKNOWN_PROPERTY_DEPENDENCY"
	ErrCodeDependencyCycle = "DEPENDENCY_CYCLE"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeStoreFailed     = "STORE_FAILED"
)

// toStatus converts an error into a gRPC status error. Errors that already
// carry a status pass through unchanged.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	var e *Error
	if !errors.As(err, &e) {
		return status.Error(codes.Internal, err.Error())
	}

	switch e.Class {
	case ErrorClassInvalid:
		return status.Error(codes.InvalidArgument, e.Error())
	case ErrorClassNotFound:
		return status.Error(codes.NotFound, e.Error())
	case ErrorClassUnavailable:
		return status.Error(codes.Unavailable, e.Error())
	default:
		return status.Error(codes.Internal, e.Error())
	}
}

// fromStatus maps a gRPC status error returned by a remote analyzer back onto
// the analyzer error classes.
func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.InvalidArgument:
		return NewInvalidError(st.Message(), err)
	case codes.NotFound:
		return NewNotFoundError(st.Message(), err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return NewUnavailableError(st.Message(), err)
	default:
		return NewInternalError(st.Message(), err)
	}
}
