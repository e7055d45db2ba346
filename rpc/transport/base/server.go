package base

import (
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/tkrause/echocalc/rpc/common"
	"github.com/tkrause/echocalc/rpc/transport"
)

const (
	// defaultPollIntervalMs is the cooperative cancellation tick used when
	// the config does not set one. Shutdown latency is bounded by this.
	defaultPollIntervalMs = 50

	// defaultGraceMs is how long shutdown waits after draining so the OS
	// can release the listening socket
	defaultGraceMs = 200
)

// Lifecycle states of a server transport. Transitions only move forward:
// idle -> running -> draining -> stopped. Only Listen and Stop transition
// the state.
const (
	stateIdle int32 = iota
	stateRunning
	stateDraining
	stateStopped
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IServerConnector defines the interface for transport-specific server operations
type IServerConnector interface {
	// Listen creates a listener and returns it
	Listen(config common.ServerConfig) (net.Listener, error)

	// UpgradeConnection applies protocol-specific settings to an accepted connection
	UpgradeConnection(conn net.Conn, config common.ServerConfig) error

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string
}

// deadlineListener is satisfied by net.TCPListener and net.UnixListener and
// is what makes the accept loop poll instead of blocking forever
type deadlineListener interface {
	SetDeadline(t time.Time) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// serverTransport implements the core server transport functionality
type serverTransport struct {
	connector  IServerConnector
	handler    transport.ServerHandleFunc
	config     common.ServerConfig
	listener   net.Listener
	bufferPool *sync.Pool
	bufferSize int

	// state and conns are the only cross-goroutine mutable state
	state      atomic.Int32
	conns      *xsync.MapOf[uint64, net.Conn]
	nextConnID atomic.Uint64
	wg         sync.WaitGroup
	done       chan struct{} // closed once the transport has fully stopped
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseServerTransport creates a new base server transport using the
// given connector and per-connection read buffer size
func NewBaseServerTransport(connector IServerConnector, bufferSize int) transport.IRPCServerTransport {
	return &serverTransport{
		connector:  connector,
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				return make([]byte, bufferSize)
			},
		},
		conns: xsync.NewMapOf[uint64, net.Conn](),
		done:  make(chan struct{}),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCServerTransport)
// --------------------------------------------------------------------------

func (t *serverTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *serverTransport) Listen(config common.ServerConfig) error {
	if !t.state.CompareAndSwap(stateIdle, stateRunning) {
		return common.NewTransportError("transport is not in idle state")
	}
	t.config = config

	// Create listener using the connector; a bind failure is fatal and
	// reported to the caller
	listener, err := t.connector.Listen(config)
	if err != nil {
		t.state.Store(stateStopped)
		close(t.done)
		return common.NewTransportError("failed to create listener: %v", err)
	}
	t.listener = listener

	Logger.Infof("Starting %s server on %s", t.connector.GetName(), config.Transport.Endpoint)

	tick := t.pollInterval()

	// Accept connections until the state leaves Running
	for t.state.Load() == stateRunning {
		if dl, ok := listener.(deadlineListener); ok {
			_ = dl.SetDeadline(time.Now().Add(tick))
		}

		conn, err := listener.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue // poll tick elapsed, re-check the state
			}
			if t.state.Load() != stateRunning {
				break
			}
			// Accept errors are never fatal to the server
			Logger.Errorf("Accept error: %v", err)
			continue
		}

		if err := t.connector.UpgradeConnection(conn, config); err != nil {
			Logger.Errorf("Failed to upgrade connection: %v", err)
			_ = conn.Close()
			continue
		}

		// Register the connection and handle it in its own goroutine
		id := t.nextConnID.Add(1)
		t.conns.Store(id, conn)
		t.wg.Add(1)
		go t.handleConnection(id, conn)
	}

	// Drain: join every connection handler, release the socket, then wait
	// a short grace period for the OS to free the port
	t.wg.Wait()
	if err := listener.Close(); err != nil {
		Logger.Warningf("Failed to close listener: %v", err)
	}
	time.Sleep(t.grace())

	t.state.Store(stateStopped)
	close(t.done)
	Logger.Infof("Stopped %s server on %s", t.connector.GetName(), config.Transport.Endpoint)

	return nil
}

func (t *serverTransport) Stop() error {
	// Stop before Listen: nothing to drain
	if t.state.CompareAndSwap(stateIdle, stateStopped) {
		close(t.done)
		return nil
	}

	// Move a running transport into draining; if it is already draining or
	// stopped this is a no-op and we just wait for completion below
	t.state.CompareAndSwap(stateRunning, stateDraining)

	<-t.done
	return nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// handleConnection owns one accepted connection for its whole lifetime.
// Requests on a single connection are processed strictly in arrival order.
func (t *serverTransport) handleConnection(id uint64, conn net.Conn) {
	defer func() {
		_ = conn.Close()
		t.conns.Delete(id)
		t.wg.Done()
	}()

	timeout := time.Duration(t.config.TimeoutSecond) * time.Second
	tick := t.pollInterval()

	// Get a read buffer from the pool for the connection's lifetime
	buf := t.bufferPool.Get().([]byte)
	defer t.bufferPool.Put(buf)

	for t.state.Load() == stateRunning {
		// Wake up every tick while idle so a pending shutdown is observed.
		// Once a header arrives readFrame stretches the deadline to the
		// request timeout, so only truly idle connections recycle the tick.
		_ = conn.SetReadDeadline(time.Now().Add(tick))

		requestID, data, headerRead, err := readFrame(conn, buf, timeout)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() && headerRead == 0 {
				continue // idle connection, nothing consumed yet
			}
			// Zero-length read means the peer closed the connection cleanly
			if err == io.EOF {
				Logger.Infof("Connection closed by client")
				return
			}
			Logger.Errorf("Error reading frame: %v", err)
			return
		}

		// Process the request; the handler serializes its own errors
		resp := t.handler(data)

		if timeout > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(timeout))
		}

		// A partial write surfaces as an error here and ends the connection
		if err := writeFrame(conn, requestID, resp); err != nil {
			Logger.Errorf("Failed to write response: %v", err)
			return
		}
	}
}

// pollInterval returns the cooperative cancellation tick
func (t *serverTransport) pollInterval() time.Duration {
	ms := t.config.PollIntervalMs
	if ms <= 0 {
		ms = defaultPollIntervalMs
	}
	return time.Duration(ms) * time.Millisecond
}

// grace returns the post-drain wait before the transport reports stopped
func (t *serverTransport) grace() time.Duration {
	ms := t.config.GraceMs
	if ms < 0 {
		ms = 0
	} else if ms == 0 {
		ms = defaultGraceMs
	}
	return time.Duration(ms) * time.Millisecond
}
