package transport

import (
	"github.com/tkrause/echocalc/rpc/common"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc is a function type that handles incoming requests
// This function is called by a server transport layer when a request is received
// It takes the raw request bytes as a parameter and returns the raw response.
// The handler never fails; errors are serialized into the response itself.
type ServerHandleFunc func(req []byte) (resp []byte)

// IRPCServerTransport is the interface for the RPC transport layer
type IRPCServerTransport interface {
	// RegisterHandler registers a handler for the transport layer
	// This handler should be called when a request is received
	RegisterHandler(handler ServerHandleFunc)
	// Listen starts the transport layer and listens for incoming requests.
	// It blocks until Stop is called and all connections have drained.
	// A bind failure is returned immediately and is fatal.
	Listen(config common.ServerConfig) error
	// Stop gracefully stops the transport: no new connections are accepted,
	// in-flight requests complete, connection handlers are joined. It is
	// idempotent and safe to call from any goroutine.
	Stop() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration.
	// Connection establishment is lazy: the network handshake is deferred
	// until the first Send on transports that support it.
	Connect(config common.ClientConfig) error
	// Send sends a request to the server and returns the response.
	// Safe for concurrent use; responses are correlated per request.
	Send(req []byte) (resp []byte, err error)
	// Close closes the transport connection
	Close() error
}
