package client

import (
	"testing"

	"github.com/tkrause/echocalc/rpc/common"
)

func TestConnectRejectsInvalidEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "no-port", "host:notaport", "host:70000"} {
		_, err := NewBuilder(endpoint).Connect()
		if err == nil {
			t.Fatalf("expected error for endpoint %q", endpoint)
		}
		if !common.IsConfig(err) {
			t.Errorf("expected config error for %q, got %v", endpoint, err)
		}
	}
}

func TestConnectSucceedsWithoutServer(t *testing.T) {
	// Dialing is lazy, so building a client against a dead endpoint works
	c, err := NewBuilder("localhost:9990").Connect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()
}

// TestLocalValidationWithoutServer verifies that invalid inputs fail before
// any connection attempt is made
func TestLocalValidationWithoutServer(t *testing.T) {
	c, err := NewBuilder("localhost:9991").Connect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if _, err := c.Echo("   "); !common.IsValidation(err) {
		t.Errorf("expected validation error for blank echo, got %v", err)
	}
	if _, err := c.Divide(1, 0); !common.IsValidation(err) {
		t.Errorf("expected validation error for division by zero, got %v", err)
	}
	if _, err := c.Calculate(1, 2, common.OpUnknown); !common.IsValidation(err) {
		t.Errorf("expected validation error for unknown operation, got %v", err)
	}
}

// TestUnreachableServerReportsUnavailable verifies the error kind when all
// attempts against a dead endpoint fail
func TestUnreachableServerReportsUnavailable(t *testing.T) {
	c, err := NewBuilder("localhost:9992").
		WithTimeout(1).
		WithRetries(1).
		Connect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer c.Close()

	if _, err := c.Echo("hello"); !common.IsUnavailable(err) {
		t.Errorf("expected unavailable error, got %v", err)
	}
}

func TestClientCloseIsIdempotent(t *testing.T) {
	c, err := NewBuilder("localhost:9993").Connect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("first close failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second close failed: %v", err)
	}
}
