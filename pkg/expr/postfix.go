package expr

import (
	"fmt"

	"github.com/lemonberrylabs/rpncalc/pkg/types"
)

// ToPostfix reorders infix tokens into postfix order with the shunting-yard
// algorithm.
func ToPostfix(tokens []Token) ([]Token, error) {
	output := make([]Token, 0, len(tokens))
	var stack []Token

	pop := func() Token {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top
	}
	// drainToParen moves operators to the output until a left paren is on top.
	drainToParen := func() bool {
		for len(stack) > 0 {
			if stack[len(stack)-1].Type == TokenLParen {
				return true
			}
			output = append(output, pop())
		}
		return false
	}

	for _, tok := range tokens {
		switch tok.Type {
		case TokenNumber:
			output = append(output, tok)

		case TokenLParen, TokenFunction:
			stack = append(stack, tok)

		case TokenComma:
			if !drainToParen() {
				return nil, types.NewUnbalancedParenError(
					fmt.Sprintf("comma at position %d is outside a function call", tok.Pos))
			}

		case TokenOperator:
			o1, ok := LookupOperator(tok.Symbol)
			if !ok {
				return nil, types.NewUnknownOperatorError(tok.Symbol, tok.Pos)
			}
			if o1.Arity == Binary {
				for len(stack) > 0 && yields(stack[len(stack)-1], o1) {
					output = append(output, pop())
				}
			}
			stack = append(stack, tok)

		case TokenRParen:
			if !drainToParen() {
				return nil, types.NewUnbalancedParenError(
					fmt.Sprintf("unmatched ')' at position %d", tok.Pos))
			}
			pop()
			if len(stack) > 0 && stack[len(stack)-1].Type == TokenFunction {
				output = append(output, pop())
			}
		}
	}

	for len(stack) > 0 {
		top := pop()
		if top.Type == TokenLParen {
			return nil, types.NewUnbalancedParenError(
				fmt.Sprintf("unmatched '(' at position %d", top.Pos))
		}
		output = append(output, top)
	}
	return output, nil
}

// yields reports whether the stacked token must be emitted before the
// incoming binary operator o1 is pushed.
func yields(top Token, o1 *Operator) bool {
	switch top.Type {
	case TokenFunction:
		// A function without a parenthesized argument list binds tighter than
		// any operator: ln2+1 is ln(2)+1.
		return true
	case TokenOperator:
		o2, ok := LookupOperator(top.Symbol)
		if !ok {
			return false
		}
		if o2.Precedence > o1.Precedence {
			return true
		}
		return o2.Precedence == o1.Precedence && o1.Assoc == AssocLeft
	default:
		return false
	}
}

