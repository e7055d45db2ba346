package common

import (
	"strings"
)

// The two input rules below are enforced twice by design: once in the client
// facades before a request is sent (fail fast, saves a round trip) and once
// in the server adapters (authoritative, since not every caller goes through
// our client). Both call sites share these functions so the rules cannot
// drift apart.

// ValidateEchoText rejects messages that are empty or consist only of
// whitespace. Anything else, including control characters, NUL bytes and
// multi-byte runes, is allowed and echoed back unchanged.
func ValidateEchoText(text string) error {
	if strings.TrimSpace(text) == "" {
		return NewValidationError("empty message is not allowed")
	}
	return nil
}

// ValidateCalculation checks the operation tag and the divide-by-zero rule
// before any evaluation happens. Operand ranges are otherwise unrestricted,
// NaN and infinities propagate per IEEE-754.
func ValidateCalculation(op Operation, second float64) error {
	switch op {
	case OpAdd, OpSubtract, OpMultiply:
		return nil
	case OpDivide:
		if second == 0.0 {
			return NewValidationError("division by zero is not allowed")
		}
		return nil
	default:
		return NewValidationError("unknown operation")
	}
}

// Evaluate applies the operation to the operands. Inputs are assumed to have
// passed ValidateCalculation; an unknown operation still fails here rather
// than defaulting to some arithmetic.
func Evaluate(op Operation, first, second float64) (float64, error) {
	if err := ValidateCalculation(op, second); err != nil {
		return 0, err
	}

	switch op {
	case OpAdd:
		return first + second, nil
	case OpSubtract:
		return first - second, nil
	case OpMultiply:
		return first * second, nil
	default: // OpDivide, second != 0 after validation
		return first / second, nil
	}
}
