package common

import (
	"strings"
	"testing"
)

func TestValidateEchoText(t *testing.T) {
	valid := []string{"hello", "a", "hello world", " padded ", "ümläute"}
	for _, text := range valid {
		if err := ValidateEchoText(text); err != nil {
			t.Errorf("expected %q to be valid, got %v", text, err)
		}
	}

	invalid := []string{"", " ", "\t", "\n", "  \t \n "}
	for _, text := range invalid {
		err := ValidateEchoText(text)
		if err == nil {
			t.Fatalf("expected %q to be rejected", text)
		}
		if !IsValidation(err) {
			t.Errorf("expected validation error for %q, got %v", text, err)
		}
		if !strings.Contains(err.Error(), "empty message is not allowed") {
			t.Errorf("unexpected error text for %q: %v", text, err)
		}
	}
}

func TestValidateCalculation(t *testing.T) {
	for _, op := range []Operation{OpAdd, OpSubtract, OpMultiply} {
		if err := ValidateCalculation(op, 0); err != nil {
			t.Errorf("%s with zero second operand must be valid, got %v", op, err)
		}
	}

	if err := ValidateCalculation(OpDivide, 2); err != nil {
		t.Errorf("division by nonzero must be valid, got %v", err)
	}

	err := ValidateCalculation(OpDivide, 0)
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "division by zero is not allowed") {
		t.Errorf("unexpected error text: %v", err)
	}

	if err := ValidateCalculation(OpUnknown, 1); !IsValidation(err) {
		t.Errorf("expected validation error for unknown operation, got %v", err)
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		op       Operation
		first    float64
		second   float64
		expected float64
	}{
		{OpAdd, 2, 3, 5},
		{OpSubtract, 2, 3, -1},
		{OpMultiply, 2, 3, 6},
		{OpDivide, 3, 2, 1.5},
		{OpAdd, -1.5, -2.5, -4},
	}
	for _, tc := range tests {
		result, err := Evaluate(tc.op, tc.first, tc.second)
		if err != nil {
			t.Fatalf("%s(%v, %v) failed: %v", tc.op, tc.first, tc.second, err)
		}
		if result != tc.expected {
			t.Errorf("%s(%v, %v): expected %v, got %v", tc.op, tc.first, tc.second, tc.expected, result)
		}
	}

	if _, err := Evaluate(OpDivide, 1, 0); !IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
