// Package transport defines the interfaces and abstractions for RPC
// communication in the echocalc system. It provides a common contract that
// all transport implementations must fulfill, enabling protocol-agnostic
// communication.
//
// The package focuses on:
//   - Defining clear interfaces for client and server transport layers
//   - Coordinated graceful shutdown of server transports
//   - Enabling multiple transport implementations (TCP, Unix sockets)
//
// Key Components:
//
//   - IRPCClientTransport: Interface for client-side transport implementations
//     that handles connection management and request sending.
//
//   - IRPCServerTransport: Interface for server-side transport implementations
//     that receives requests, routes them to the registered handler, and
//     drains cleanly on Stop.
//
//   - ServerHandleFunc: Function type for request handling callbacks.
package transport
