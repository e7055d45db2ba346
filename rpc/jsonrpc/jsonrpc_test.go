package jsonrpc

import (
	"fmt"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tkrause/echocalc/rpc/common"
)

// nextTestPort hands out unique ports so parallel tests never collide
var nextTestPort atomic.Int32

func init() {
	nextTestPort.Store(53700)
}

func testEndpoint() string {
	return fmt.Sprintf("localhost:%d", nextTestPort.Add(1))
}

// startTestServer starts a server and blocks until it accepts connections
func startTestServer(t *testing.T) (endpoint string, shutdown *common.ShutdownSignal, done chan error) {
	t.Helper()

	endpoint = testEndpoint()
	s, shutdown, err := NewBuilder().WithEndpoint(endpoint).Build()
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}

	done = make(chan error, 1)
	go func() {
		done <- s.Serve()
	}()

	// Wait until the port accepts connections
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", endpoint, 100*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			return endpoint, shutdown, done
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server on %s did not come up", endpoint)
	return "", nil, nil
}

func TestBuilderRequiresEndpoint(t *testing.T) {
	_, _, err := NewBuilder().Build()
	if !common.IsConfig(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestClientRejectsInvalidEndpoint(t *testing.T) {
	for _, endpoint := range []string{"", "no-port", "/tmp/some.sock"} {
		if _, err := NewClient(endpoint); !common.IsConfig(err) {
			t.Errorf("expected config error for %q, got %v", endpoint, err)
		}
	}
}

func TestEchoOverJSONRPC(t *testing.T) {
	endpoint, shutdown, done := startTestServer(t)
	defer func() {
		shutdown.Fire()
		<-done
	}()

	c, err := NewClient(endpoint)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	text, err := c.Echo("hello world")
	if err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	if text != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", text)
	}

	// Blank messages fail locally
	if _, err := c.Echo("  "); !common.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCalculateOverJSONRPC(t *testing.T) {
	endpoint, shutdown, done := startTestServer(t)
	defer func() {
		shutdown.Fire()
		<-done
	}()

	c, err := NewClient(endpoint)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	tests := []struct {
		op       common.Operation
		first    float64
		second   float64
		expected float64
	}{
		{common.OpAdd, 10, 5, 15},
		{common.OpSubtract, 10, 5, 5},
		{common.OpMultiply, 10, 5, 50},
		{common.OpDivide, 10, 5, 2},
	}
	for _, tc := range tests {
		result, err := c.Calculate(tc.first, tc.second, tc.op)
		if err != nil {
			t.Fatalf("%s failed: %v", tc.op, err)
		}
		if result != tc.expected {
			t.Errorf("%s(%v, %v): expected %v, got %v", tc.op, tc.first, tc.second, tc.expected, result)
		}
	}

	// Division by zero fails locally
	if _, err := c.Calculate(1, 0, common.OpDivide); !common.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

// TestServerSideValidationError exercises the error mapping for a request
// the client-side checks cannot catch
func TestServerSideValidationError(t *testing.T) {
	endpoint, shutdown, done := startTestServer(t)
	defer func() {
		shutdown.Fire()
		<-done
	}()

	c, err := NewClient(endpoint)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	// An operation string the server cannot parse travels to the server
	// and comes back as a bad-params error
	var reply CalculateReply
	err = c.call("Calculator.Calculate", &CalculateArgs{First: 1, Second: 2, Operation: "modulo"}, &reply)
	if !common.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestGracefulShutdownReleasesPort(t *testing.T) {
	endpoint, shutdown, done := startTestServer(t)

	shutdown.Fire()
	if err := <-done; err != nil {
		t.Fatalf("serve returned error: %v", err)
	}

	// The port must be bindable again after shutdown
	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		t.Fatalf("port not released after shutdown: %v", err)
	}
	_ = listener.Close()
}

func TestUnreachableServerReportsUnavailable(t *testing.T) {
	c, err := NewClient(testEndpoint())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	c.WithRetries(1).WithTimeout(time.Second)

	if _, err := c.Echo("hello"); !common.IsUnavailable(err) {
		t.Errorf("expected unavailable error, got %v", err)
	}
}
