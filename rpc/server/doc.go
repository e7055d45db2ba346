// Package server implements the RPC server for the echo and calculator
// service. It provides adapters for handling the two request families, along
// with the core server implementation that manages request routing and the
// server lifecycle.
//
// The package focuses on:
//   - Server-side RPC request handling for echo and calculator operations
//   - Adapter pattern to decouple application logic from RPC mechanisms
//   - A builder for assembling transport, serializer and configuration
//   - Graceful shutdown through an external shutdown signal
//
// Key Components:
//
//   - IRPCServerAdapter: Interface defining the contract for all server
//     adapters, with the Handle method that processes incoming requests.
//
//   - NewEchoServerAdapter: Factory function creating the adapter for echo
//     requests, validating and returning the received text.
//
//   - NewCalculatorServerAdapter: Factory function creating the adapter for
//     the four arithmetic operations.
//
//   - Builder: Assembles a configured server with the specified transport
//     and serializer mechanisms and returns it together with the shutdown
//     signal that stops it.
//
// Usage Example:
//
//	// Create and start the server
//	s, shutdown, err := server.NewBuilder().
//	  WithEndpoint("0.0.0.0:8080").
//	  WithTransport(tcp.NewTCPServerTransport()).
//	  WithSerializer(serializer.NewBinarySerializer()).
//	  Build()
//	if err != nil {
//	  log.Fatalf("invalid config: %v", err)
//	}
//
//	go func() {
//	  <-ctx.Done()
//	  shutdown.Fire()
//	}()
//
//	if err := s.Serve(); err != nil {
//	  log.Fatalf("Server error: %v", err)
//	}
//
// Thread Safety:
//
//	The server implementation is thread-safe and can handle concurrent
//	requests across multiple connections; requests on a single connection
//	are processed strictly in arrival order. Serve should be called only
//	once.
package server
