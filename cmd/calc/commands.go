package calc

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tkrause/echocalc/rpc/common"
)

// parseOperands converts the two positional arguments to floats
func parseOperands(args []string) (float64, float64, error) {
	first, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("first operand must be a number: %w", err)
	}
	second, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("second operand must be a number: %w", err)
	}
	return first, second, nil
}

// runOp sends the calculation and prints the result
func runOp(op common.Operation, args []string) error {
	defer serviceClient.Close()

	first, second, err := parseOperands(args)
	if err != nil {
		return err
	}

	result, err := serviceClient.Calculate(first, second, op)
	if err != nil {
		return err
	}
	fmt.Println(result)
	return nil
}

var (
	addCmd = &cobra.Command{
		Use:   "add [first] [second]",
		Short: "Adds two numbers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(common.OpAdd, args)
		},
	}
	subCmd = &cobra.Command{
		Use:   "sub [first] [second]",
		Short: "Subtracts the second number from the first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(common.OpSubtract, args)
		},
	}
	mulCmd = &cobra.Command{
		Use:   "mul [first] [second]",
		Short: "Multiplies two numbers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(common.OpMultiply, args)
		},
	}
	divCmd = &cobra.Command{
		Use:   "div [first] [second]",
		Short: "Divides the first number by the second",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOp(common.OpDivide, args)
		},
	}
	evalCmd = &cobra.Command{
		Use:   "eval [first] [operation] [second]",
		Short: "Applies the named operation (add, sub, mul, div or +, -, *, /)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := common.ParseOperation(args[1])
			if err != nil {
				return err
			}
			return runOp(op, []string{args[0], args[2]})
		},
	}
)
