package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an evaluation failure.
type ErrorKind string

// Error kinds reported by the evaluation pipeline.
const (
	KindEmptyExpression ErrorKind = "EmptyExpression"
	KindUnknownOperator ErrorKind = "UnknownOperator"
	KindUnknownFunction ErrorKind = "UnknownFunction"
	KindNumberParse     ErrorKind = "NumberParseError"
	KindUnbalancedParen ErrorKind = "UnbalancedParen"
	KindMissingOperand  ErrorKind = "MissingOperand"
	KindExtraOperand    ErrorKind = "ExtraOperand"
)

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrEmptyExpression = &EvaluationError{Kind: KindEmptyExpression}
	ErrUnknownOperator = &EvaluationError{Kind: KindUnknownOperator}
	ErrUnknownFunction = &EvaluationError{Kind: KindUnknownFunction}
	ErrNumberParse     = &EvaluationError{Kind: KindNumberParse}
	ErrUnbalancedParen = &EvaluationError{Kind: KindUnbalancedParen}
	ErrMissingOperand  = &EvaluationError{Kind: KindMissingOperand}
	ErrExtraOperand    = &EvaluationError{Kind: KindExtraOperand}
)

// EvaluationError is returned by every stage of the pipeline.
type EvaluationError struct {
	Kind    ErrorKind
	Message string
	Symbol  string // offending operator, function name or literal, if any
}

// Error implements the error interface.
func (e *EvaluationError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports whether target is an EvaluationError of the same kind.
func (e *EvaluationError) Is(target error) bool {
	t, ok := target.(*EvaluationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of err, or "" if err is not an EvaluationError.
func KindOf(err error) ErrorKind {
	var e *EvaluationError
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}

// Common error constructors.

// NewEmptyExpressionError creates an EmptyExpression error.
func NewEmptyExpressionError(msg string) *EvaluationError {
	return &EvaluationError{Kind: KindEmptyExpression, Message: msg}
}

// NewUnknownOperatorError creates an UnknownOperator error for r.
func NewUnknownOperatorError(r rune, pos int) *EvaluationError {
	return &EvaluationError{
		Kind:    KindUnknownOperator,
		Message: fmt.Sprintf("unknown operator %q at position %d", r, pos),
		Symbol:  string(r),
	}
}

// NewUnknownFunctionError creates an UnknownFunction error.
func NewUnknownFunctionError(name string, pos int) *EvaluationError {
	return &EvaluationError{
		Kind:    KindUnknownFunction,
		Message: fmt.Sprintf("unknown function %q at position %d", name, pos),
		Symbol:  name,
	}
}

// NewNumberParseError creates a NumberParseError for an invalid literal.
func NewNumberParseError(text string, pos int) *EvaluationError {
	return &EvaluationError{
		Kind:    KindNumberParse,
		Message: fmt.Sprintf("invalid number %q at position %d", text, pos),
		Symbol:  text,
	}
}

// NewUnbalancedParenError creates an UnbalancedParen error.
func NewUnbalancedParenError(msg string) *EvaluationError {
	return &EvaluationError{Kind: KindUnbalancedParen, Message: msg}
}

// NewMissingOperandError creates a MissingOperand error for the operator or
// function that ran out of operands.
func NewMissingOperandError(symbol string, want, have int) *EvaluationError {
	return &EvaluationError{
		Kind:    KindMissingOperand,
		Message: fmt.Sprintf("%s expects %d operand(s), got %d", symbol, want, have),
		Symbol:  symbol,
	}
}

// NewExtraOperandError creates an ExtraOperand error.
func NewExtraOperandError(left int) *EvaluationError {
	return &EvaluationError{
		Kind:    KindExtraOperand,
		Message: fmt.Sprintf("%d values left on the operand stack, expected 1", left),
	}
}
