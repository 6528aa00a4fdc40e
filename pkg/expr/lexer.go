package expr

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/lemonberrylabs/rpncalc/pkg/types"
)

// Lexer tokenizes normalized expression text.
type Lexer struct {
	input  []rune
	tokens []Token

	num      strings.Builder
	numStart int
	name     strings.Builder
	nameAt   int
}

// NewLexer creates a new lexer for the given normalized input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// Tokenize scans the entire input and returns all tokens.
func (l *Lexer) Tokenize() ([]Token, error) {
	for pos, ch := range l.input {
		switch {
		case isDigit(ch) || ch == '.':
			if err := l.flushName(); err != nil {
				return nil, err
			}
			if l.num.Len() == 0 {
				l.numStart = pos
			}
			l.num.WriteRune(ch)

		case isSingle(ch):
			if err := l.flushNumber(); err != nil {
				return nil, err
			}
			if err := l.flushName(); err != nil {
				return nil, err
			}
			l.tokens = append(l.tokens, singleToken(ch, pos))

		case unicode.IsLetter(ch):
			if err := l.flushNumber(); err != nil {
				return nil, err
			}
			if l.name.Len() == 0 {
				l.nameAt = pos
			}
			l.name.WriteRune(ch)

		default:
			return nil, types.NewUnknownOperatorError(ch, pos)
		}
	}

	if err := l.flushNumber(); err != nil {
		return nil, err
	}
	if err := l.flushName(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *Lexer) flushNumber() error {
	if l.num.Len() == 0 {
		return nil
	}
	raw := l.num.String()
	l.num.Reset()
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) {
		return types.NewNumberParseError(raw, l.numStart)
	}
	l.tokens = append(l.tokens, numberToken(v, l.numStart))
	return nil
}

func (l *Lexer) flushName() error {
	if l.name.Len() == 0 {
		return nil
	}
	raw := l.name.String()
	l.name.Reset()
	fn, ok := LookupFunction(raw)
	if !ok {
		return types.NewUnknownFunctionError(raw, l.nameAt)
	}
	l.tokens = append(l.tokens, functionToken(fn.Name, l.nameAt))
	return nil
}

// isSingle reports whether ch is a complete token on its own.
func isSingle(ch rune) bool {
	switch ch {
	case '(', ')', ',':
		return true
	}
	_, ok := operators[ch]
	return ok
}

func singleToken(ch rune, pos int) Token {
	switch ch {
	case '(':
		return Token{Type: TokenLParen, Pos: pos}
	case ')':
		return Token{Type: TokenRParen, Pos: pos}
	case ',':
		return Token{Type: TokenComma, Pos: pos}
	default:
		return operatorToken(ch, pos)
	}
}

// Tokenize is shorthand for NewLexer(normalized).Tokenize().
func Tokenize(normalized string) ([]Token, error) {
	return NewLexer(normalized).Tokenize()
}
