// Package client implements the RPC client for the echo and calculator
// service. It provides typed facades for both services on top of a shared
// transport and serializer.
//
// The package focuses on:
//   - Client-side facades translating method calls into RPC messages
//   - A builder for assembling endpoint, transport, serializer and timeouts
//   - Fail-fast local validation mirroring the server-side checks
//   - Lazy connection establishment deferred until the first call
//
// Key Components:
//
//   - Builder: Assembles a configured client. Connect validates the
//     configuration and prepares the transport without dialing.
//
//   - Client: The shared handle for both services. Safe for concurrent use
//     and meant to be reused across calls.
//
// Usage Example:
//
//	c, err := client.NewBuilder("localhost:8080").
//	  WithTimeout(5).
//	  WithRetries(3).
//	  Connect()
//	if err != nil {
//	  log.Fatalf("invalid config: %v", err)
//	}
//	defer c.Close()
//
//	text, err := c.Echo("hello")
//	sum, err := c.Add(10, 5)
//	quotient, err := c.Calculate(10, 5, common.OpDivide)
//
// Error Handling:
//
//	Invalid inputs fail locally with a validation error before any bytes
//	are sent. Transport failures are retried with exponential backoff and
//	reported as unavailable once all attempts are exhausted. Errors the
//	server reports keep their kind across the wire, so errors.As and the
//	common.Is* helpers work the same on both sides.
package client
