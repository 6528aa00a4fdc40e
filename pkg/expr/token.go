// Package expr implements the infix expression pipeline: normalization,
// lexing, shunting-yard reordering into postfix, and postfix evaluation.
package expr

import (
	"strconv"
	"strings"
)

// TokenType represents the type of a lexical token.
type TokenType int

const (
	TokenNumber   TokenType = iota // numeric literal
	TokenOperator                  // single-rune operator
	TokenFunction                  // function name
	TokenLParen                    // (
	TokenRParen                    // )
	TokenComma                     // ,
)

// Token represents a single lexical token. Exactly one of Num, Symbol and
// Name is meaningful, depending on Type.
type Token struct {
	Type   TokenType
	Num    float64 // TokenNumber
	Symbol rune    // TokenOperator
	Name   string  // TokenFunction, canonical spelling
	Pos    int     // rune offset in the normalized text
}

// String returns a debug-friendly representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenNumber:
		return "NUMBER"
	case TokenOperator:
		return "OPERATOR"
	case TokenFunction:
		return "FUNCTION"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenComma:
		return "COMMA"
	default:
		return "UNKNOWN"
	}
}

// String renders the token the way it appears in postfix output.
func (t Token) String() string {
	switch t.Type {
	case TokenNumber:
		return formatNumber(t.Num)
	case TokenOperator:
		return string(t.Symbol)
	case TokenFunction:
		return t.Name
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenComma:
		return ","
	default:
		return "?"
	}
}

// JoinTokens renders tokens separated by single spaces, each token followed
// by one space.
func JoinTokens(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.String())
		sb.WriteByte(' ')
	}
	return sb.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func numberToken(v float64, pos int) Token {
	return Token{Type: TokenNumber, Num: v, Pos: pos}
}

func operatorToken(r rune, pos int) Token {
	return Token{Type: TokenOperator, Symbol: r, Pos: pos}
}

func functionToken(name string, pos int) Token {
	return Token{Type: TokenFunction, Name: name, Pos: pos}
}
