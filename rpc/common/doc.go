// Package common provides core data structures and utilities shared across
// the echocalc RPC system. It defines fundamental types, configuration
// structures, and protocol elements used by other packages.
//
// The package focuses on:
//   - Message protocol definition for client/server communication
//   - Configuration structures for client and server components
//   - Shared validation rules enforced on both sides of every call
//   - Custom logging implementation with optional log-file rotation
//
// Key Components:
//
//   - Message: Core data structure for all RPC communication, with a
//     flexible structure that adapts to the echo and calculate operations.
//     Includes factory methods for creating request and response messages.
//
//   - Operation: Closed enumeration of the four supported arithmetic
//     operations. The zero value is invalid on purpose so an unset tag is
//     detected instead of silently defaulting.
//
//   - Error/ErrorKind: Typed errors classifying failures into config,
//     validation, transport, unavailable, and protocol errors. The kind
//     travels with error responses so remote callers can distinguish
//     retryable transport failures from caller mistakes.
//
//   - ValidateEchoText/ValidateCalculation: The two input rules of the
//     service as pure functions, called by the client facades (fail fast)
//     and by the server adapters (authoritative).
//
//   - ShutdownSignal: Single-use, idempotent handle for requesting graceful
//     shutdown of a running server.
//
//   - ServerConfig/ClientConfig: Configuration for the two process roles,
//     controlling endpoints, timeouts, retry behavior, and logging.
package common
