package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/tkrause/echocalc/rpc/common"
	"github.com/tkrause/echocalc/rpc/serializer"
	"github.com/tkrause/echocalc/rpc/transport"
	"github.com/tkrause/echocalc/rpc/transport/tcp"
)

var Logger = logger.GetLogger("rpc")

// -----------------------------------------------------------
// Builder
// -----------------------------------------------------------

// Builder assembles an RPC server step by step. All With* methods return the
// builder so calls can be chained; validation happens once in Build.
type Builder struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
}

// NewBuilder creates a builder with no endpoint set. An endpoint must be
// provided before Build is called.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithEndpoint sets the listen address (host:port for tcp, a filesystem
// path for unix sockets)
func (b *Builder) WithEndpoint(endpoint string) *Builder {
	b.config.Transport.Endpoint = endpoint
	return b
}

// WithConfig replaces the whole server configuration
func (b *Builder) WithConfig(config common.ServerConfig) *Builder {
	b.config = config
	return b
}

// WithTransport sets the server transport (default: tcp)
func (b *Builder) WithTransport(t transport.IRPCServerTransport) *Builder {
	b.transport = t
	return b
}

// WithSerializer sets the wire serializer (default: binary)
func (b *Builder) WithSerializer(s serializer.IRPCSerializer) *Builder {
	b.serializer = s
	return b
}

// WithTimeout sets the per-request timeout in seconds
func (b *Builder) WithTimeout(seconds int64) *Builder {
	b.config.TimeoutSecond = seconds
	return b
}

// WithMetricsEndpoint enables the Prometheus scrape endpoint
func (b *Builder) WithMetricsEndpoint(endpoint string) *Builder {
	b.config.MetricsEndpoint = endpoint
	return b
}

// Build validates the configuration and creates the server together with
// the signal that triggers its shutdown. Nothing is bound yet; the listen
// socket is only created by Serve.
func (b *Builder) Build() (*Server, *common.ShutdownSignal, error) {
	if b.config.Transport.Endpoint == "" {
		return nil, nil, common.NewConfigError("no endpoint provided")
	}
	if err := common.ValidateEndpoint(b.config.Transport.Endpoint); err != nil {
		return nil, nil, err
	}

	// Defaults
	if b.transport == nil {
		b.transport = tcp.NewTCPServerTransport()
	}
	if b.serializer == nil {
		b.serializer = serializer.NewBinarySerializer()
	}
	if b.config.TimeoutSecond <= 0 {
		b.config.TimeoutSecond = 5
	}

	shutdown := common.NewShutdownSignal()

	return &Server{
		config:     b.config,
		transport:  b.transport,
		serializer: b.serializer,
		adapters: map[common.MessageType]IRPCServerAdapter{
			common.MsgTEcho:      NewEchoServerAdapter(),
			common.MsgTCalculate: NewCalculatorServerAdapter(),
		},
		shutdown: shutdown,
	}, shutdown, nil
}

// -----------------------------------------------------------
// Server
// -----------------------------------------------------------

// Server hosts the echo and calculator services over a single framed
// transport. Create it via the Builder.
type Server struct {
	config     common.ServerConfig
	transport  transport.IRPCServerTransport
	serializer serializer.IRPCSerializer
	adapters   map[common.MessageType]IRPCServerAdapter
	shutdown   *common.ShutdownSignal
	stopOnce   sync.Once
}

// registerTransportHandler wires deserialization, adapter routing and
// serialization into the transport's request callback
func (s *Server) registerTransportHandler() {
	s.transport.RegisterHandler(func(req []byte) []byte {
		var msg common.Message
		var respMsg common.Message

		// Decode the request
		if err := s.serializer.Deserialize(req, &msg); err != nil {
			decodeErrorsTotal.Inc()
			Logger.Warningf("failed to deserialize request: %v", err)
			respMsg = *common.NewErrorResponse(
				common.NewProtocolError("failed to deserialize request: %s", err),
			)
		} else if adapter, ok := s.adapters[msg.MsgType]; !ok {
			respMsg = *common.NewErrorResponse(
				common.NewProtocolError("unsupported message type: %s", msg.MsgType),
			)
		} else {
			// Let the adapter handle the request
			respMsg = *adapter.Handle(&msg)
		}

		// Return result
		val, err := s.serializer.Serialize(respMsg)
		if err != nil {
			// A response that cannot be serialized is a bug in the
			// serializer; nothing sensible can be sent back
			Logger.Errorf("failed to serialize response: %v", err)
			return nil
		}
		return val
	})
}

// Serve starts the server and blocks until it stops, either because the
// shutdown signal fired or because the transport failed. A firing shutdown
// signal drains in-flight requests before Serve returns.
func (s *Server) Serve() error {
	// A shutdown requested before Serve ends the lifecycle without ever
	// binding the socket
	if s.shutdown.Fired() {
		return nil
	}

	// Init logger
	common.InitLoggers(s.config.LogLevel, s.config.LogFile)

	Logger.Infof("Created RPC Server")
	Logger.Infof(s.config.String())

	// Configure the transport layer
	s.registerTransportHandler()

	// Optional metrics scrape endpoint
	var metricsSrv *http.Server
	if s.config.MetricsEndpoint != "" {
		metricsSrv = newMetricsServer(s.config.MetricsEndpoint)
		go func() {
			Logger.Infof("serving metrics on %s", s.config.MetricsEndpoint)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				Logger.Errorf("metrics server failed: %v", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.transport.Listen(s.config)
	}()

	var serveErr error
	select {
	case err := <-errCh:
		// The transport stopped on its own (e.g. bind failure). Fire the
		// signal so external waiters unblock.
		s.shutdown.Fire()
		serveErr = err
	case <-s.shutdown.Done():
		stopErr := s.transport.Stop()
		serveErr = <-errCh
		if serveErr == nil {
			serveErr = stopErr
		}
	}

	if metricsSrv != nil {
		_ = metricsSrv.Close()
	}

	if serveErr != nil {
		return fmt.Errorf("rpc server: %w", serveErr)
	}
	return nil
}

// Stop requests a graceful shutdown. It is safe to call from any goroutine
// and at any time, including before Serve; calling it twice is a no-op.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		s.shutdown.Fire()
	})
}
