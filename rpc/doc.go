// Package rpc provides the framework for remote procedure calls in the
// echocalc service. It acts as the communication layer between clients and
// servers, enabling the echo and calculator operations across network
// boundaries.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures and utilities used across the RPC system,
//     including the Message protocol, shared validation, the error taxonomy,
//     configuration structures, and logging.
//
//   - transport: Network communication abstractions with pluggable
//     implementations (TCP, Unix sockets).
//
//   - serializer: Message serialization with multiple format options
//     (Binary, JSON, GOB) for converting between Message objects and byte
//     arrays.
//
//   - client: The RPC client with typed facades for the echo and calculator
//     services, allowing applications to interact with the remote services
//     transparently.
//
//   - server: RPC server components that handle incoming requests, including
//     adapters for the echo and calculator operations.
//
//   - jsonrpc: An alternative rendition of both services as JSON-RPC 2.0
//     over HTTP, with the same validation rules and error taxonomy.
package rpc
