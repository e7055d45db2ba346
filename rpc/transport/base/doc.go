// Package base provides a foundation for transport layers of the echo and
// calculator service, implementing core functionality for RPC communication
// independent of the specific network protocol (TCP, Unix sockets, etc.). It
// serves as a base layer that can be extended with protocol-specific
// connectors.
//
// The package focuses on:
//   - Protocol-agnostic client and server transport implementations
//   - Performance optimization through buffer reuse and frame batching
//   - Frame-based message protocol with requestID tracking
//   - Automatic request routing and response correlation
//   - Robust error handling with retries and reconnection logic
//   - Graceful server shutdown that drains in-flight requests
//
// Key Components:
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific
//     operations that allow extending the base transport with different
//     network protocols.
//
//   - clientTransport: Core client implementation that manages multiple
//     connections with round-robin load balancing. Connections are dialed
//     lazily on the first request, so a client can be constructed before
//     the server is reachable.
//
//   - serverTransport: Core server implementation that accepts connections,
//     processes the requests of each connection strictly in arrival order
//     and shuts down gracefully through an explicit lifecycle state machine
//     (idle, running, draining, stopped).
//
// Performance Optimizations:
//
//   - Connection Pooling: Multiple client connections per endpoint improve
//     throughput for high-load scenarios. For small messages a single
//     connection per endpoint may actually perform better due to reduced
//     overhead.
//
//   - Buffer Pooling: The server uses a sync.Pool to reuse buffers, reducing
//     GC pressure and memory allocations.
//
//   - Asynchronous Processing: The client sends requests and correlates
//     responses asynchronously using unique request IDs, enabling higher
//     throughput.
//
//   - Frame Batching: The transport uses net.Buffers to reduce syscalls when
//     writing frames, combining header and payload into a single write
//     operation.
//
// Thread Safety:
//
//	All public methods are thread-safe. The client transport uses atomic
//	operations and mutexes to ensure concurrent access safety, while the
//	server creates a dedicated goroutine for each connection.
package base
