package analyzer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("boom")
	err := NewInvalidError("bad resource", cause).WithURN("urn:a").WithField("type")

	msg := err.Error()
	for _, want := range []string{"[invalid]", "bad resource", "urn=urn:a", "field=type", "boom"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Expected %q in %q", want, msg)
		}
	}
	if !errors.Is(err, cause) {
		t.Error("Expected error to unwrap to its cause")
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		isInvalid  bool
		isNotFound bool
		isInternal bool
	}{
		{name: "invalid", err: NewInvalidError("x", nil), isInvalid: true},
		{name: "wrapped invalid", err: fmt.Errorf("resources[0]: %w", NewInvalidError("x", nil)), isInvalid: true},
		{name: "not found", err: NewNotFoundError("x", nil), isNotFound: true},
		{name: "internal", err: NewInternalError("x", nil), isInternal: true},
		{name: "plain", err: errors.New("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsInvalid(tt.err) != tt.isInvalid {
				t.Errorf("IsInvalid = %v", IsInvalid(tt.err))
			}
			if IsNotFound(tt.err) != tt.isNotFound {
				t.Errorf("IsNotFound = %v", IsNotFound(tt.err))
			}
			if IsInternal(tt.err) != tt.isInternal {
				t.Errorf("IsInternal = %v", IsInternal(tt.err))
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := NewInvalidError("dup", nil).WithCode(ErrCodeDuplicateURN)

	if !errors.Is(err, &Error{Class: ErrorClassInvalid, Code: ErrCodeDuplicateURN}) {
		t.Error("Expected match on class and code")
	}
	if errors.Is(err, &Error{Class: ErrorClassInvalid, Code: ErrCodeMissingURN}) {
		t.Error("Expected no match on a different code")
	}
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{name: "invalid", err: NewInvalidError("x", nil), code: codes.InvalidArgument},
		{name: "wrapped invalid", err: fmt.Errorf("ctx: %w", NewInvalidError("x", nil)), code: codes.InvalidArgument},
		{name: "not found", err: NewNotFoundError("x", nil), code: codes.NotFound},
		{name: "unavailable", err: NewUnavailableError("x", nil), code: codes.Unavailable},
		{name: "internal", err: NewInternalError("x", nil), code: codes.Internal},
		{name: "plain", err: errors.New("x"), code: codes.Internal},
		{name: "existing status", err: status.Error(codes.PermissionDenied, "no"), code: codes.PermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := status.Code(toStatus(tt.err)); got != tt.code {
				t.Errorf("Expected %s, got %s", tt.code, got)
			}
		})
	}

	if toStatus(nil) != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		code  codes.Code
		class ErrorClass
	}{
		{codes.InvalidArgument, ErrorClassInvalid},
		{codes.NotFound, ErrorClassNotFound},
		{codes.Unavailable, ErrorClassUnavailable},
		{codes.DeadlineExceeded, ErrorClassUnavailable},
		{codes.Internal, ErrorClassInternal},
		{codes.Unknown, ErrorClassInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			err := fromStatus(status.Error(tt.code, "msg"))
			if got := classOf(err); got != tt.class {
				t.Errorf("Expected class %s, got %s", tt.class, got)
			}
		})
	}
}
