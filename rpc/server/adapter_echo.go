package server

import (
	"github.com/tkrause/echocalc/rpc/common"
)

// NewEchoServerAdapter creates the adapter for echo requests
func NewEchoServerAdapter() IRPCServerAdapter {
	return &echoServerAdapterImpl{}
}

type echoServerAdapterImpl struct{}

func (adapter *echoServerAdapterImpl) Handle(req *common.Message) *common.Message {
	// Handle different message types
	switch req.MsgType {
	case common.MsgTEcho:
		if err := common.ValidateEchoText(req.Text); err != nil {
			echoErrorsTotal.Inc()
			return common.NewErrorResponse(err)
		}
		echoRequestsTotal.Inc()
		return common.NewEchoResponse(req.Text)
	default:
		return common.NewErrorResponse(
			common.NewProtocolError("RPC EchoAdapter - Unsupported message type: %s", req.MsgType),
		)
	}
}
