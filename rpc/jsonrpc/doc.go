// Package jsonrpc exposes the echo and calculator services as JSON-RPC 2.0
// over HTTP, as an alternative to the framed socket transport. It builds on
// the gorilla/rpc framework, so method registration, request decoding and
// response encoding are handled by the framework instead of the hand-rolled
// wire protocol.
//
// Both renditions of the services share the same validation rules and error
// taxonomy from the common package, so a caller switching between them sees
// identical behavior for identical inputs.
//
// Key Components:
//
//   - EchoService/CalculatorService: The service implementations registered
//     with the framework under the method names "Echo.Echo" and
//     "Calculator.Calculate".
//
//   - Builder/Server: The HTTP server hosting both services under /rpc,
//     with the same shutdown signal driven lifecycle as the framed server.
//
//   - Client: A typed client posting JSON-RPC requests with retry logic
//     for transient transport failures.
//
// Usage Example:
//
//	s, shutdown, err := jsonrpc.NewBuilder().
//	  WithEndpoint("localhost:8081").
//	  Build()
//	if err != nil {
//	  log.Fatalf("invalid config: %v", err)
//	}
//	go s.Serve()
//
//	c, err := jsonrpc.NewClient("localhost:8081")
//	text, err := c.Echo("hello")
//	sum, err := c.Calculate(10, 5, common.OpAdd)
//
//	shutdown.Fire()
package jsonrpc
