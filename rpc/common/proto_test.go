package common

import (
	"encoding/json"
	"testing"
)

func TestParseOperation(t *testing.T) {
	tests := map[string]Operation{
		"add":      OpAdd,
		"+":        OpAdd,
		"subtract": OpSubtract,
		"sub":      OpSubtract,
		"-":        OpSubtract,
		"multiply": OpMultiply,
		"mul":      OpMultiply,
		"*":        OpMultiply,
		"x":        OpMultiply,
		"divide":   OpDivide,
		"div":      OpDivide,
		"/":        OpDivide,
	}
	for input, expected := range tests {
		op, err := ParseOperation(input)
		if err != nil {
			t.Fatalf("ParseOperation(%q) failed: %v", input, err)
		}
		if op != expected {
			t.Errorf("ParseOperation(%q): expected %s, got %s", input, expected, op)
		}
	}

	for _, input := range []string{"", "modulo", "ADD", "plus"} {
		if _, err := ParseOperation(input); err == nil {
			t.Errorf("expected ParseOperation(%q) to fail", input)
		}
	}
}

func TestOperationStringRoundTrip(t *testing.T) {
	for _, op := range []Operation{OpAdd, OpSubtract, OpMultiply, OpDivide} {
		parsed, err := ParseOperation(op.String())
		if err != nil {
			t.Fatalf("failed to parse %s: %v", op, err)
		}
		if parsed != op {
			t.Errorf("round trip changed %s into %s", op, parsed)
		}
	}
}

func TestMessageTypeJSONRoundTrip(t *testing.T) {
	for _, mt := range []MessageType{MsgTError, MsgTEcho, MsgTCalculate} {
		data, err := json.Marshal(mt)
		if err != nil {
			t.Fatalf("marshal %s failed: %v", mt, err)
		}

		var back MessageType
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s failed: %v", data, err)
		}
		if back != mt {
			t.Errorf("round trip changed %s into %s", mt, back)
		}
	}

	var mt MessageType
	if err := json.Unmarshal([]byte(`"bogus"`), &mt); err == nil {
		t.Errorf("expected unmarshal of unknown type to fail")
	}
}

func TestMessageFactories(t *testing.T) {
	if m := NewEchoRequest("hi"); m.MsgType != MsgTEcho || m.Text != "hi" {
		t.Errorf("unexpected echo request: %+v", m)
	}
	if m := NewCalculateRequest(1, 2, OpAdd); m.MsgType != MsgTCalculate || m.First != 1 || m.Second != 2 || m.Operation != OpAdd {
		t.Errorf("unexpected calculate request: %+v", m)
	}
	if m := NewCalculateResponse(3); m.MsgType != MsgTCalculate || m.Result != 3 {
		t.Errorf("unexpected calculate response: %+v", m)
	}
	if m := NewErrorResponse(NewValidationError("nope")); m.MsgType != MsgTError || m.Err != "nope" || m.ErrKind != KindValidation {
		t.Errorf("unexpected error response: %+v", m)
	}
}
