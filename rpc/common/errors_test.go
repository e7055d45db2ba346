package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindClassification(t *testing.T) {
	tests := []struct {
		err  error
		kind ErrorKind
	}{
		{NewConfigError("bad config"), KindConfig},
		{NewValidationError("bad input"), KindValidation},
		{NewTransportError("bind failed"), KindTransport},
		{NewUnavailableError("down"), KindUnavailable},
		{NewProtocolError("garbage"), KindProtocol},
	}
	for _, tc := range tests {
		if got := KindOf(tc.err); got != tc.kind {
			t.Errorf("KindOf(%v): expected %s, got %s", tc.err, tc.kind, got)
		}
	}

	// Plain errors have no kind
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Errorf("expected unknown kind for plain error, got %s", got)
	}
	if got := KindOf(nil); got != KindUnknown {
		t.Errorf("expected unknown kind for nil, got %s", got)
	}
}

func TestErrorKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("request failed: %w", NewValidationError("division by zero is not allowed"))
	if !IsValidation(err) {
		t.Errorf("expected wrapped error to stay a validation error, got %v", err)
	}
}

// TestErrorRoundTripThroughMessage mirrors what the client does when it
// reconstructs a typed error from an error response
func TestErrorRoundTripThroughMessage(t *testing.T) {
	original := NewValidationError("empty message is not allowed")
	resp := NewErrorResponse(original)

	rebuilt := NewError(resp.ErrKind, resp.Err)
	if !IsValidation(rebuilt) {
		t.Errorf("expected validation kind after round trip, got %v", KindOf(rebuilt))
	}
	if rebuilt.Error() != original.Error() {
		t.Errorf("expected message %q, got %q", original.Error(), rebuilt.Error())
	}
}
