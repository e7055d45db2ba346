// Package cmd implements the command-line interface for the echocalc RPC
// service. It provides a hierarchical command structure with operations for
// running the server and interacting with it as a client.
//
// The package is organized into several subpackages:
//
//   - serve: Commands for starting and configuring the echocalc server
//   - echo: Command for sending a message to the echo service
//   - calc: Commands for calculator operations (add, sub, mul, div, eval)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See echocalc -help for a list of all commands.
package cmd
