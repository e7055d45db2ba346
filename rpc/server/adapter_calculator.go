package server

import (
	"github.com/tkrause/echocalc/rpc/common"
)

// NewCalculatorServerAdapter creates the adapter for calculator requests
func NewCalculatorServerAdapter() IRPCServerAdapter {
	return &calculatorServerAdapterImpl{}
}

type calculatorServerAdapterImpl struct{}

func (adapter *calculatorServerAdapterImpl) Handle(req *common.Message) *common.Message {
	// Handle different message types
	switch req.MsgType {
	case common.MsgTCalculate:
		result, err := common.Evaluate(req.Operation, req.First, req.Second)
		if err != nil {
			calcErrorsTotal.Inc()
			return common.NewErrorResponse(err)
		}
		calcRequestsTotal(req.Operation).Inc()
		return common.NewCalculateResponse(result)
	default:
		return common.NewErrorResponse(
			common.NewProtocolError("RPC CalculatorAdapter - Unsupported message type: %s", req.MsgType),
		)
	}
}
