package client

import (
	"github.com/tkrause/echocalc/rpc/common"
)

// Calculate applies the operation to the two operands on the calculator
// service and returns the result. Division by zero and unknown operations
// are rejected locally before any network traffic happens; the server
// applies the same checks on its side.
func (c *Client) Calculate(first, second float64, op common.Operation) (float64, error) {
	if err := common.ValidateCalculation(op, second); err != nil {
		return 0, err
	}

	req := common.NewCalculateRequest(first, second, op)
	resp, err := invokeRPCRequest(req, c.transport, c.serializer)
	if err != nil {
		return 0, err
	}
	return resp.Result, nil
}

// Add is shorthand for Calculate with the addition operation
func (c *Client) Add(first, second float64) (float64, error) {
	return c.Calculate(first, second, common.OpAdd)
}

// Subtract is shorthand for Calculate with the subtraction operation
func (c *Client) Subtract(first, second float64) (float64, error) {
	return c.Calculate(first, second, common.OpSubtract)
}

// Multiply is shorthand for Calculate with the multiplication operation
func (c *Client) Multiply(first, second float64) (float64, error) {
	return c.Calculate(first, second, common.OpMultiply)
}

// Divide is shorthand for Calculate with the division operation
func (c *Client) Divide(first, second float64) (float64, error) {
	return c.Calculate(first, second, common.OpDivide)
}
