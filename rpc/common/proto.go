package common

import (
	"encoding/json"
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Message Structure
// --------------------------------------------------------------------------

// Message represents a single message used for both requests and responses.
// Which fields are used depends on the type of message.
type Message struct {
	// Type of message
	MsgType MessageType `json:"msg_type"`

	// Echo fields
	Text string `json:"text,omitempty"` // Used for: Echo request and response

	// Calculate fields
	First     float64   `json:"first,omitempty"`     // Used for: Calculate request
	Second    float64   `json:"second,omitempty"`    // Used for: Calculate request
	Operation Operation `json:"operation,omitempty"` // Used for: Calculate request
	Result    float64   `json:"result,omitempty"`    // Used for: Calculate response

	// Response only fields
	Err     string    `json:"err,omitempty"`      // Empty if no error, otherwise contains the error message
	ErrKind ErrorKind `json:"err_kind,omitempty"` // Classifies the error so clients can tell validation from transport failures

	// Meta information
	Meta []byte `json:"meta,omitempty"` // Unused, can be used for additional adapters
}

// --------------------------------------------------------------------------
// Message Factory Functions
// --------------------------------------------------------------------------

// NewEchoRequest creates a new Echo request
func NewEchoRequest(text string) *Message {
	return &Message{
		MsgType: MsgTEcho,
		Text:    text,
	}
}

// NewEchoResponse creates a new Echo response
func NewEchoResponse(text string) *Message {
	return &Message{
		MsgType: MsgTEcho,
		Text:    text,
	}
}

// NewCalculateRequest creates a new Calculate request
func NewCalculateRequest(first, second float64, op Operation) *Message {
	return &Message{
		MsgType:   MsgTCalculate,
		First:     first,
		Second:    second,
		Operation: op,
	}
}

// NewCalculateResponse creates a new Calculate response
func NewCalculateResponse(result float64) *Message {
	return &Message{
		MsgType: MsgTCalculate,
		Result:  result,
	}
}

// NewErrorResponse creates a new Error response from any error.
// The error kind is preserved for typed errors so the client side can
// reconstruct the classification; only the bare message crosses the wire
// so reconstruction does not double the kind prefix.
func NewErrorResponse(err error) *Message {
	msg := err.Error()
	var e *Error
	if errors.As(err, &e) {
		msg = e.Msg
	}
	return &Message{
		MsgType: MsgTError,
		Err:     msg,
		ErrKind: KindOf(err),
	}
}

// --------------------------------------------------------------------------
// Message Type Definition
// --------------------------------------------------------------------------

// MessageType defines the type of message used in RPC communication.
type MessageType uint8

// String returns the string representation of a MessageType.
func (t MessageType) String() string {
	switch t {
	case MsgTEcho:
		return "echo"
	case MsgTCalculate:
		return "calculate"
	case MsgTError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements the json.Marshaller interface for MessageType.
// This allows MessageType to be serialized as a string in JSON.
func (t MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for MessageType.
// This allows MessageType to be deserialized from a string in JSON.
func (t *MessageType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	// Convert string back to MessageType
	switch s {
	case "echo":
		*t = MsgTEcho
	case "calculate":
		*t = MsgTCalculate
	case "error":
		*t = MsgTError
	default:
		return fmt.Errorf("unknown message type: %s", s)
	}

	return nil
}

// --------------------------------------------------------------------------
// Message Type Constants
// --------------------------------------------------------------------------

const (
	// General message types

	MsgTUnknown MessageType = iota
	MsgTError               // Indicates an error occurred

	// Service operations

	MsgTEcho      // Echo a message back to the caller
	MsgTCalculate // Evaluate an arithmetic operation
)

// --------------------------------------------------------------------------
// Operation Definition
// --------------------------------------------------------------------------

// Operation is the closed set of arithmetic operations supported by the
// calculate service. The zero value is deliberately not a valid operation
// so that an unset tag is detectable instead of silently defaulting.
type Operation uint8

const (
	OpUnknown Operation = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// String returns the string representation of an Operation.
func (o Operation) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return "unknown"
	}
}

// ParseOperation converts a string to an Operation. It accepts both the
// canonical names and the usual arithmetic symbols.
func ParseOperation(s string) (Operation, error) {
	switch s {
	case "add", "+":
		return OpAdd, nil
	case "subtract", "sub", "-":
		return OpSubtract, nil
	case "multiply", "mul", "*", "x":
		return OpMultiply, nil
	case "divide", "div", "/":
		return OpDivide, nil
	default:
		return OpUnknown, fmt.Errorf("unknown operation: %s", s)
	}
}

// MarshalJSON implements the json.Marshaller interface for Operation.
func (o Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for Operation.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	op, err := ParseOperation(s)
	if err != nil {
		return err
	}
	*o = op

	return nil
}
