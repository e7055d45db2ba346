package common

import (
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Shared socket configuration
// --------------------------------------------------------------------------

// SocketConf holds socket buffer settings shared by all stream transports.
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP specific tuning options (ignored by other transports).
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerTransportConf holds the transport settings of the server.
type ServerTransportConf struct {
	// Endpoint is the listen address, host:port for tcp (IPv6 literals in
	// brackets) or a filesystem path for unix sockets
	Endpoint string

	SocketConf
	TCPConf
}

// ServerConfig holds all configuration parameters for the RPC server.
type ServerConfig struct {
	Transport ServerTransportConf

	// TimeoutSecond bounds a single request/response cycle on a connection
	TimeoutSecond int64

	// PollIntervalMs is the cooperative cancellation tick: accept and idle
	// read calls wake up this often to observe a pending shutdown
	PollIntervalMs int

	// GraceMs is how long shutdown waits after draining so the OS can
	// release the socket
	GraceMs int

	// Logging configuration
	LogLevel string
	LogFile  string

	// Optional Prometheus scrape endpoint, disabled when empty
	MetricsEndpoint string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("RPC Server")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Poll Interval", fmt.Sprintf("%d ms", c.PollIntervalMs))
	addField("Shutdown Grace", fmt.Sprintf("%d ms", c.GraceMs))

	addSection("Logging")
	addField("Log Level", c.LogLevel)
	if c.LogFile != "" {
		addField("Log File", c.LogFile)
	}

	if c.MetricsEndpoint != "" {
		addSection("Metrics")
		addField("Endpoint", c.MetricsEndpoint)
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

// ClientTransportConf holds the transport settings of the client.
type ClientTransportConf struct {
	// Endpoints lists the server addresses; transports that support load
	// balancing round-robin over them
	Endpoints []string

	RetryCount             int
	ConnectionsPerEndpoint int

	SocketConf
	TCPConf
}

// ClientConfig holds all configuration parameters for the RPC client.
type ClientConfig struct {
	Transport ClientTransportConf

	TimeoutSecond int

	// Logging configuration
	LogLevel string
	LogFile  string
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.Transport.RetryCount))
	addField("Connections Per Endpoint", strconv.Itoa(int(math.Max(1, float64(c.Transport.ConnectionsPerEndpoint)))))

	addSection("Endpoints")
	for i, endpoint := range c.Transport.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// Endpoint validation
// --------------------------------------------------------------------------

// ValidateEndpoint checks an endpoint at build time so a malformed address
// never surfaces as a runtime failure. host:port forms (including bracketed
// IPv6 literals) and absolute unix socket paths are accepted.
func ValidateEndpoint(endpoint string) error {
	if endpoint == "" {
		return NewConfigError("endpoint must be provided")
	}

	// Unix socket path
	if strings.HasPrefix(endpoint, "/") {
		return nil
	}

	host, port, err := net.SplitHostPort(endpoint)
	if err != nil {
		return NewConfigError("invalid endpoint %q: %v", endpoint, err)
	}
	if port == "" {
		return NewConfigError("invalid endpoint %q: missing port", endpoint)
	}
	if p, err := strconv.Atoi(port); err != nil || p < 0 || p > 65535 {
		return NewConfigError("invalid endpoint %q: bad port %q", endpoint, port)
	}
	// Empty host means all interfaces, anything else must be a hostname or
	// an IP literal, both of which SplitHostPort already accepted.
	_ = host

	return nil
}
