package rpc_test

import (
	"fmt"
	"net"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tkrause/echocalc/rpc/client"
	"github.com/tkrause/echocalc/rpc/common"
	"github.com/tkrause/echocalc/rpc/serializer"
	"github.com/tkrause/echocalc/rpc/server"
	"github.com/tkrause/echocalc/rpc/transport"
	"github.com/tkrause/echocalc/rpc/transport/unix"
)

// nextTestPort hands out unique ports so parallel tests never collide
var nextTestPort atomic.Int32

func init() {
	nextTestPort.Store(52000)
}

func testEndpoint() string {
	return fmt.Sprintf("localhost:%d", nextTestPort.Add(1))
}

// startServer builds and starts a server, waiting until it accepts
// connections before returning
func startServer(t *testing.T, endpoint string, st transport.IRPCServerTransport, ser serializer.IRPCSerializer) (*common.ShutdownSignal, chan error) {
	t.Helper()

	b := server.NewBuilder().WithEndpoint(endpoint)
	if st != nil {
		b.WithTransport(st)
	}
	if ser != nil {
		b.WithSerializer(ser)
	}
	s, shutdown, err := b.Build()
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- s.Serve()
	}()

	network := "tcp"
	if filepath.IsAbs(endpoint) {
		network = "unix"
	}

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout(network, endpoint, 100*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			return shutdown, done
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("server on %s did not come up", endpoint)
	return nil, nil
}

func TestEchoAndCalculateEndToEnd(t *testing.T) {
	endpoint := testEndpoint()
	shutdown, done := startServer(t, endpoint, nil, nil)
	defer func() {
		shutdown.Fire()
		<-done
	}()

	c, err := client.NewBuilder(endpoint).WithTimeout(5).Connect()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	defer c.Close()

	// Echo returns the message unchanged
	text, err := c.Echo("hello")
	if err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	if text != "hello" {
		t.Errorf("expected %q, got %q", "hello", text)
	}

	// All four operations work end to end
	if result, err := c.Add(10, 5); err != nil || result != 15 {
		t.Errorf("add: expected 15, got %v (%v)", result, err)
	}
	if result, err := c.Subtract(10, 5); err != nil || result != 5 {
		t.Errorf("sub: expected 5, got %v (%v)", result, err)
	}
	if result, err := c.Multiply(10, 5); err != nil || result != 50 {
		t.Errorf("mul: expected 50, got %v (%v)", result, err)
	}
	if result, err := c.Divide(10, 5); err != nil || result != 2 {
		t.Errorf("div: expected 2, got %v (%v)", result, err)
	}

	// Division by zero comes back as a validation error
	if _, err := c.Divide(10, 0); !common.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestEndToEndOverUnixSocket(t *testing.T) {
	endpoint := filepath.Join(t.TempDir(), "echocalc.sock")
	shutdown, done := startServer(t, endpoint, unix.NewUnixDefaultServerTransport(), nil)
	defer func() {
		shutdown.Fire()
		<-done
	}()

	c, err := client.NewBuilder(endpoint).
		WithTransport(unix.NewUnixClientTransport()).
		Connect()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	defer c.Close()

	text, err := c.Echo("over unix")
	if err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	if text != "over unix" {
		t.Errorf("expected %q, got %q", "over unix", text)
	}
}

func TestEndToEndWithJSONSerializer(t *testing.T) {
	endpoint := testEndpoint()
	shutdown, done := startServer(t, endpoint, nil, serializer.NewJSONSerializer())
	defer func() {
		shutdown.Fire()
		<-done
	}()

	c, err := client.NewBuilder(endpoint).
		WithSerializer(serializer.NewJSONSerializer()).
		Connect()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	defer c.Close()

	if result, err := c.Calculate(7, 6, common.OpMultiply); err != nil || result != 42 {
		t.Errorf("expected 42, got %v (%v)", result, err)
	}
}

// TestConcurrentMixedCalls fires 1000 simultaneous echo and calculate
// requests and verifies that every response is paired with its request
func TestConcurrentMixedCalls(t *testing.T) {
	endpoint := testEndpoint()
	shutdown, done := startServer(t, endpoint, nil, nil)
	defer func() {
		shutdown.Fire()
		<-done
	}()

	c, err := client.NewBuilder(endpoint).
		WithTimeout(10).
		WithConnectionsPerEndpoint(4).
		Connect()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	defer c.Close()

	// Every call gets its own goroutine so all of them are in flight at
	// the same time
	const totalCalls = 1000

	var wg sync.WaitGroup
	errCh := make(chan error, totalCalls)

	for n := 0; n < totalCalls; n++ {
		wg.Add(1)
		go func(call int) {
			defer wg.Done()
			if call%2 == 0 {
				// Unique payload per call proves request/response pairing
				payload := fmt.Sprintf("call-%d", call)
				text, err := c.Echo(payload)
				if err != nil {
					errCh <- fmt.Errorf("echo %s: %v", payload, err)
					return
				}
				if text != payload {
					errCh <- fmt.Errorf("echo mismatch: sent %q, got %q", payload, text)
				}
			} else {
				first := float64(call)
				second := float64(call % 97)
				result, err := c.Add(first, second)
				if err != nil {
					errCh <- fmt.Errorf("add(%v, %v): %v", first, second, err)
					return
				}
				if result != first+second {
					errCh <- fmt.Errorf("add(%v, %v): expected %v, got %v", first, second, first+second, result)
				}
			}
		}(n)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Error(err)
	}
}

// TestGracefulShutdownReleasesPort verifies that Serve returns after the
// shutdown signal fires and that the port can be bound again
func TestGracefulShutdownReleasesPort(t *testing.T) {
	endpoint := testEndpoint()
	shutdown, done := startServer(t, endpoint, nil, nil)

	shutdown.Fire()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("serve did not return after shutdown")
	}

	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		t.Fatalf("port not released after shutdown: %v", err)
	}
	_ = listener.Close()
}

// TestInFlightRequestCompletesDuringShutdown verifies that a request
// accepted before the shutdown signal still gets its response
func TestInFlightRequestCompletesDuringShutdown(t *testing.T) {
	endpoint := testEndpoint()
	shutdown, done := startServer(t, endpoint, nil, nil)

	c, err := client.NewBuilder(endpoint).WithTimeout(5).Connect()
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	defer c.Close()

	// Establish the connection with a first call
	if _, err := c.Echo("warmup"); err != nil {
		t.Fatalf("warmup failed: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if text, err := c.Echo("during shutdown"); err == nil && text != "during shutdown" {
			t.Errorf("echo mismatch: got %q", text)
		}
	}()

	shutdown.Fire()
	wg.Wait()
	<-done
}

func TestServerRejectsOccupiedPort(t *testing.T) {
	endpoint := testEndpoint()
	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		t.Fatalf("failed to occupy port: %v", err)
	}
	defer listener.Close()

	s, _, err := server.NewBuilder().WithEndpoint(endpoint).Build()
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}
	if err := s.Serve(); err == nil {
		t.Fatalf("expected bind failure on occupied port")
	}
}
