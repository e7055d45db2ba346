package client

import (
	"github.com/tkrause/echocalc/rpc/common"
)

// Echo sends the message to the echo service and returns the text the
// server sent back. Blank messages are rejected locally before any network
// traffic happens; the server applies the same check on its side.
func (c *Client) Echo(message string) (string, error) {
	if err := common.ValidateEchoText(message); err != nil {
		return "", err
	}

	req := common.NewEchoRequest(message)
	resp, err := invokeRPCRequest(req, c.transport, c.serializer)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}
