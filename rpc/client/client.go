package client

import (
	"github.com/tkrause/echocalc/rpc/common"
	"github.com/tkrause/echocalc/rpc/serializer"
	"github.com/tkrause/echocalc/rpc/transport"
	"github.com/tkrause/echocalc/rpc/transport/tcp"
)

// -----------------------------------------------------------
// Builder
// -----------------------------------------------------------

// Builder assembles an RPC client step by step. All With* methods return the
// builder so calls can be chained; validation happens once in Connect.
type Builder struct {
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// NewBuilder creates a builder targeting the given endpoint
func NewBuilder(endpoint string) *Builder {
	b := &Builder{}
	b.config.Transport.Endpoints = []string{endpoint}
	return b
}

// WithEndpoints replaces the endpoint list; transports that support load
// balancing round-robin over all of them
func (b *Builder) WithEndpoints(endpoints ...string) *Builder {
	b.config.Transport.Endpoints = endpoints
	return b
}

// WithConfig replaces the whole client configuration
func (b *Builder) WithConfig(config common.ClientConfig) *Builder {
	b.config = config
	return b
}

// WithTimeout sets the per-request timeout in seconds
func (b *Builder) WithTimeout(seconds int) *Builder {
	b.config.TimeoutSecond = seconds
	return b
}

// WithRetries sets how often a failed request is retried before the call
// reports the service as unavailable
func (b *Builder) WithRetries(count int) *Builder {
	b.config.Transport.RetryCount = count
	return b
}

// WithConnectionsPerEndpoint sets the connection pool size per endpoint
func (b *Builder) WithConnectionsPerEndpoint(count int) *Builder {
	b.config.Transport.ConnectionsPerEndpoint = count
	return b
}

// WithTransport sets the client transport (default: tcp)
func (b *Builder) WithTransport(t transport.IRPCClientTransport) *Builder {
	b.transport = t
	return b
}

// WithSerializer sets the wire serializer (default: binary)
func (b *Builder) WithSerializer(s serializer.IRPCSerializer) *Builder {
	b.serializer = s
	return b
}

// Connect validates the configuration and creates the client. No network
// traffic happens here; connections are dialed lazily when the first call
// needs them, so Connect succeeds even while the server is still down.
func (b *Builder) Connect() (*Client, error) {
	if len(b.config.Transport.Endpoints) == 0 {
		return nil, common.NewConfigError("no endpoints provided")
	}
	for _, endpoint := range b.config.Transport.Endpoints {
		if err := common.ValidateEndpoint(endpoint); err != nil {
			return nil, err
		}
	}

	// Defaults
	if b.transport == nil {
		b.transport = tcp.NewTCPClientTransport()
	}
	if b.serializer == nil {
		b.serializer = serializer.NewBinarySerializer()
	}
	if b.config.TimeoutSecond <= 0 {
		b.config.TimeoutSecond = 5
	}
	if b.config.Transport.RetryCount <= 0 {
		b.config.Transport.RetryCount = 3
	}

	common.InitLoggers(b.config.LogLevel, b.config.LogFile)

	// Prepare the transport (lazy, no dialing yet)
	if err := b.transport.Connect(b.config); err != nil {
		return nil, err
	}

	return &Client{
		config:     b.config,
		transport:  b.transport,
		serializer: b.serializer,
	}, nil
}

// -----------------------------------------------------------
// Client
// -----------------------------------------------------------

// Client gives access to the echo and calculator services over a shared
// transport. A single client is safe for concurrent use from multiple
// goroutines and should be reused rather than recreated per call.
type Client struct {
	config     common.ClientConfig
	transport  transport.IRPCClientTransport
	serializer serializer.IRPCSerializer
}

// Close releases all connections held by the client. The client must not
// be used afterwards. Close is idempotent.
func (c *Client) Close() error {
	return c.transport.Close()
}
