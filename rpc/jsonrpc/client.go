package jsonrpc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/rpc/v2/json2"
	"github.com/tkrause/echocalc/rpc/common"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRetries = 3
	retryBaseWait  = 100 * time.Millisecond
)

// -----------------------------------------------------------
// Client
// -----------------------------------------------------------

// Client calls the echo and calculator services over JSON-RPC 2.0. A single
// client is safe for concurrent use and should be reused across calls.
type Client struct {
	endpoint   string
	httpClient *http.Client
	retries    int
}

// NewClient creates a client for the JSON-RPC endpoint at the given
// host:port address. The address is validated here so a malformed one never
// surfaces as a runtime failure.
func NewClient(endpoint string) (*Client, error) {
	if err := common.ValidateEndpoint(endpoint); err != nil {
		return nil, err
	}
	if strings.HasPrefix(endpoint, "/") {
		return nil, common.NewConfigError("jsonrpc requires a host:port endpoint, got %q", endpoint)
	}

	uri := url.URL{Scheme: "http", Host: endpoint, Path: rpcPath}

	return &Client{
		endpoint:   uri.String(),
		httpClient: &http.Client{Timeout: defaultTimeout},
		retries:    defaultRetries,
	}, nil
}

// WithTimeout overrides the per-request timeout
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithRetries overrides how often a transient failure is retried
func (c *Client) WithRetries(count int) *Client {
	if count > 0 {
		c.retries = count
	}
	return c
}

// Echo sends the message to the echo service and returns the text the
// server sent back. Blank messages are rejected locally.
func (c *Client) Echo(message string) (string, error) {
	if err := common.ValidateEchoText(message); err != nil {
		return "", err
	}

	var reply EchoReply
	if err := c.call("Echo.Echo", &EchoArgs{Message: message}, &reply); err != nil {
		return "", err
	}
	return reply.Message, nil
}

// Calculate applies the operation to the two operands on the calculator
// service. Division by zero and unknown operations are rejected locally.
func (c *Client) Calculate(first, second float64, op common.Operation) (float64, error) {
	if err := common.ValidateCalculation(op, second); err != nil {
		return 0, err
	}

	var reply CalculateReply
	args := &CalculateArgs{First: first, Second: second, Operation: op.String()}
	if err := c.call("Calculator.Calculate", args, &reply); err != nil {
		return 0, err
	}
	return reply.Result, nil
}

// Close releases idle connections held by the underlying HTTP client
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// call encodes the request, posts it and decodes the response. Transient
// transport failures are retried with exponential backoff; errors the
// server reports are mapped back onto the shared error kinds.
func (c *Client) call(method string, args, reply interface{}) error {
	body, err := json2.EncodeClientRequest(method, args)
	if err != nil {
		return common.NewProtocolError("failed to encode request: %v", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryBaseWait * time.Duration(1<<(attempt-1)))
		}

		resp, err := c.httpClient.Post(c.endpoint, "application/json", bytes.NewReader(body))
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			drainAndClose(resp.Body)
			lastErr = fmt.Errorf("received status code %d", resp.StatusCode)
			continue
		}

		err = json2.DecodeClientResponse(resp.Body, reply)
		drainAndClose(resp.Body)
		if err != nil {
			var rpcErr *json2.Error
			if errors.As(err, &rpcErr) {
				return mapRPCError(rpcErr)
			}
			return common.NewProtocolError("failed to decode response: %v", err)
		}
		return nil
	}

	return common.NewUnavailableError("service temporarily unavailable after %d attempts: %v", c.retries, lastErr)
}

// mapRPCError translates a JSON-RPC error object into the shared error
// taxonomy so callers see the same kinds as with the framed transport
func mapRPCError(rpcErr *json2.Error) error {
	switch rpcErr.Code {
	case json2.E_BAD_PARAMS, json2.E_INVALID_REQ:
		return common.NewValidationError("%s", rpcErr.Message)
	case json2.E_NO_METHOD:
		return common.NewProtocolError("%s", rpcErr.Message)
	default:
		return common.NewProtocolError("rpc error %d: %s", rpcErr.Code, rpcErr.Message)
	}
}

// drainAndClose empties and closes a response body so the underlying
// connection can be reused
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
