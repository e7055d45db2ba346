package client

import (
	"github.com/lni/dragonboat/v4/logger"
	"github.com/tkrause/echocalc/rpc/common"
	"github.com/tkrause/echocalc/rpc/serializer"
	"github.com/tkrause/echocalc/rpc/transport"
)

var (
	Logger = logger.GetLogger("rpc")
)

// invokeRPCRequest is a helper function used by all service facades to send
// requests. It serializes the request, sends it over the transport and
// deserializes the response.
//
// Error responses are turned back into typed errors carrying the kind the
// server reported, so callers can distinguish an invalid input from an
// unreachable service. The response type is checked against the request
// type to catch protocol level mixups.
func invokeRPCRequest(req *common.Message, transport transport.IRPCClientTransport, serializer serializer.IRPCSerializer) (*common.Message, error) {
	// Serialize the request
	reqBytes, err := serializer.Serialize(*req)
	if err != nil {
		return nil, err
	}

	// Send the request
	respBytes, err := transport.Send(reqBytes)
	if err != nil {
		return nil, err
	}

	// Deserialize the response
	resp := &common.Message{}
	if err := serializer.Deserialize(respBytes, resp); err != nil {
		return nil, common.NewProtocolError("failed to deserialize response: %s", err)
	}

	// Check if the response is an error response
	if resp.MsgType == common.MsgTError || resp.Err != "" {
		return nil, common.NewError(resp.ErrKind, resp.Err)
	}

	// Check if the type of the response is the expected type
	if resp.MsgType != req.MsgType {
		return nil, common.NewProtocolError("unexpected message type: %s, expected %s", resp.MsgType, req.MsgType)
	}

	// Return the response
	return resp, nil
}
