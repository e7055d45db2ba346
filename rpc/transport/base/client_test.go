package base

import (
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/tkrause/echocalc/rpc/common"
)

// dialTestConnector is a minimal client connector that dials plain TCP
type dialTestConnector struct{}

func (dialTestConnector) Connect(endpoint string) (net.Conn, error) {
	return net.Dial("tcp", endpoint)
}

func (dialTestConnector) GetName() string {
	return "tcp-test"
}

func (dialTestConnector) UpgradeConnection(conn net.Conn, config common.ClientConfig) error {
	return nil
}

// TestConnectionLossFailsAllInFlight verifies that every request waiting on
// a connection fails promptly when the server drops it, instead of each one
// sitting out its full request timeout.
func TestConnectionLossFailsAllInFlight(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to create listener: %v", err)
	}
	defer ln.Close()

	// Swallow the requests without answering, then drop the connection
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		buf := make([]byte, 4096)
		_ = conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
		for {
			if _, err := conn.Read(buf); err != nil {
				break
			}
		}
		_ = conn.Close()
	}()

	tr := NewBaseClientTransport(dialTestConnector{})
	config := common.ClientConfig{TimeoutSecond: 10}
	config.Transport.Endpoints = []string{ln.Addr().String()}
	config.Transport.RetryCount = 1
	config.Transport.ConnectionsPerEndpoint = 1
	if err := tr.Connect(config); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer tr.Close()

	const inFlight = 4

	start := time.Now()
	var wg sync.WaitGroup
	errs := make(chan error, inFlight)
	for i := 0; i < inFlight; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := tr.Send([]byte(fmt.Sprintf("request-%d", n)))
			errs <- err
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	close(errs)
	for err := range errs {
		if err == nil {
			t.Errorf("expected an error for a request on a dropped connection")
		}
	}

	// All four were in flight when the connection dropped; none of them may
	// hang around anywhere near the 10 second request timeout
	if elapsed > 5*time.Second {
		t.Errorf("in-flight requests took %v to fail after the connection dropped", elapsed)
	}
}
