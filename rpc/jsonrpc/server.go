package jsonrpc

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	gorillarpc "github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/tkrause/echocalc/rpc/common"
)

var Logger = logger.GetLogger("jsonrpc")

const (
	// rpcPath is where the JSON-RPC endpoint is mounted
	rpcPath = "/rpc"

	// shutdownGrace bounds how long Serve waits for in-flight requests
	// after the shutdown signal fired
	shutdownGrace = 5 * time.Second
)

// -----------------------------------------------------------
// Service Argument / Reply Types
// -----------------------------------------------------------

// EchoArgs are the arguments of Echo.Echo
type EchoArgs struct {
	Message string `json:"message"`
}

// EchoReply is the reply of Echo.Echo
type EchoReply struct {
	Message string `json:"message"`
}

// CalculateArgs are the arguments of Calculator.Calculate
type CalculateArgs struct {
	First     float64 `json:"first"`
	Second    float64 `json:"second"`
	Operation string  `json:"operation"`
}

// CalculateReply is the reply of Calculator.Calculate
type CalculateReply struct {
	Result float64 `json:"result"`
}

// -----------------------------------------------------------
// Services
// -----------------------------------------------------------

// EchoService exposes the echo operation over JSON-RPC
type EchoService struct{}

// Echo returns the received message unchanged. Blank messages are rejected
// with a bad-params error.
func (s *EchoService) Echo(r *http.Request, args *EchoArgs, reply *EchoReply) error {
	if err := common.ValidateEchoText(args.Message); err != nil {
		return &json2.Error{Code: json2.E_BAD_PARAMS, Message: err.Error()}
	}
	reply.Message = args.Message
	return nil
}

// CalculatorService exposes the four arithmetic operations over JSON-RPC
type CalculatorService struct{}

// Calculate applies the named operation to the two operands
func (s *CalculatorService) Calculate(r *http.Request, args *CalculateArgs, reply *CalculateReply) error {
	op, err := common.ParseOperation(args.Operation)
	if err != nil {
		return &json2.Error{Code: json2.E_BAD_PARAMS, Message: err.Error()}
	}

	result, err := common.Evaluate(op, args.First, args.Second)
	if err != nil {
		return &json2.Error{Code: json2.E_BAD_PARAMS, Message: err.Error()}
	}

	reply.Result = result
	return nil
}

// -----------------------------------------------------------
// Builder
// -----------------------------------------------------------

// Builder assembles a JSON-RPC server. All With* methods return the builder
// so calls can be chained; validation happens once in Build.
type Builder struct {
	config common.ServerConfig
}

// NewBuilder creates a builder with no endpoint set
func NewBuilder() *Builder {
	return &Builder{}
}

// WithEndpoint sets the HTTP listen address (host:port)
func (b *Builder) WithEndpoint(endpoint string) *Builder {
	b.config.Transport.Endpoint = endpoint
	return b
}

// WithConfig replaces the whole server configuration
func (b *Builder) WithConfig(config common.ServerConfig) *Builder {
	b.config = config
	return b
}

// Build validates the configuration and creates the server together with
// the signal that triggers its shutdown
func (b *Builder) Build() (*Server, *common.ShutdownSignal, error) {
	if b.config.Transport.Endpoint == "" {
		return nil, nil, common.NewConfigError("no endpoint provided")
	}
	if err := common.ValidateEndpoint(b.config.Transport.Endpoint); err != nil {
		return nil, nil, err
	}

	shutdown := common.NewShutdownSignal()

	return &Server{
		config:   b.config,
		shutdown: shutdown,
	}, shutdown, nil
}

// -----------------------------------------------------------
// Server
// -----------------------------------------------------------

// Server hosts the echo and calculator services as JSON-RPC 2.0 over HTTP.
// Create it via the Builder.
type Server struct {
	config   common.ServerConfig
	shutdown *common.ShutdownSignal
}

// Serve starts the server and blocks until it stops, either because the
// shutdown signal fired or because the HTTP server failed. A firing
// shutdown signal lets in-flight requests complete before Serve returns.
func (s *Server) Serve() error {
	if s.shutdown.Fired() {
		return nil
	}

	common.InitLoggers(s.config.LogLevel, s.config.LogFile)

	rpcServer := gorillarpc.NewServer()
	rpcServer.RegisterCodec(json2.NewCodec(), "application/json")
	if err := rpcServer.RegisterService(&EchoService{}, "Echo"); err != nil {
		return common.NewConfigError("failed to register echo service: %v", err)
	}
	if err := rpcServer.RegisterService(&CalculatorService{}, "Calculator"); err != nil {
		return common.NewConfigError("failed to register calculator service: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle(rpcPath, rpcServer)

	// Bind synchronously so an occupied port surfaces as an error here
	// instead of inside the serving goroutine
	listener, err := net.Listen("tcp", s.config.Transport.Endpoint)
	if err != nil {
		s.shutdown.Fire()
		return common.NewTransportError("failed to bind %s: %v", s.config.Transport.Endpoint, err)
	}

	httpServer := &http.Server{Handler: mux}
	Logger.Infof("JSON-RPC server listening on %s%s", listener.Addr(), rpcPath)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		s.shutdown.Fire()
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("jsonrpc server: %w", err)
		}
		return nil
	case <-s.shutdown.Done():
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("jsonrpc shutdown: %w", err)
		}
		<-errCh
		Logger.Infof("JSON-RPC server stopped")
		return nil
	}
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.config.Transport.Endpoint
}
