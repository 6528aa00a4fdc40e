package expr

import (
	"fmt"

	"github.com/lemonberrylabs/rpncalc/pkg/types"
)

// EvaluatePostfix walks a postfix token sequence with an operand stack.
// The result is flagged boolean as soon as any relational or logical
// operator has been applied.
func EvaluatePostfix(postfix []Token) (types.Result, error) {
	stack := make([]float64, 0, len(postfix))
	boolean := false

	// take pops n operands, returning them in push order.
	take := func(symbol string, n int) ([]float64, error) {
		if len(stack) < n {
			return nil, types.NewMissingOperandError(symbol, n, len(stack))
		}
		args := make([]float64, n)
		copy(args, stack[len(stack)-n:])
		stack = stack[:len(stack)-n]
		return args, nil
	}

	for _, tok := range postfix {
		switch tok.Type {
		case TokenNumber:
			stack = append(stack, tok.Num)

		case TokenOperator:
			op, ok := LookupOperator(tok.Symbol)
			if !ok {
				return types.Result{}, types.NewUnknownOperatorError(tok.Symbol, tok.Pos)
			}
			args, err := take(string(op.Symbol), int(op.Arity))
			if err != nil {
				return types.Result{}, err
			}
			stack = append(stack, applyArgs(op.Apply, args))
			if op.Boolean() {
				boolean = true
			}

		case TokenFunction:
			fn, ok := LookupFunction(tok.Name)
			if !ok {
				return types.Result{}, types.NewUnknownFunctionError(tok.Name, tok.Pos)
			}
			args, err := take(fn.Name, fn.Arity)
			if err != nil {
				return types.Result{}, err
			}
			stack = append(stack, applyArgs(fn.Apply, args))

		default:
			return types.Result{}, types.NewUnbalancedParenError(
				fmt.Sprintf("unexpected %s in postfix input at position %d", tok.Type, tok.Pos))
		}
	}

	switch len(stack) {
	case 0:
		return types.Result{}, types.NewEmptyExpressionError("nothing to evaluate")
	case 1:
		return types.Result{Value: stack[0], Boolean: boolean}, nil
	default:
		return types.Result{}, types.NewExtraOperandError(len(stack))
	}
}

func applyArgs(apply func(a, b float64) float64, args []float64) float64 {
	if len(args) == 1 {
		return apply(args[0], 0)
	}
	return apply(args[0], args[1])
}
