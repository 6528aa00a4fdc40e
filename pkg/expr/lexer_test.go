package expr

import (
	"errors"
	"strings"
	"testing"

	"github.com/lemonberrylabs/rpncalc/pkg/types"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		types []TokenType
		text  string
	}{
		{"2*sin(3)", []TokenType{TokenNumber, TokenOperator, TokenFunction, TokenLParen, TokenNumber, TokenRParen}, "2 * sin ( 3 ) "},
		{"12.5+0.25", []TokenType{TokenNumber, TokenOperator, TokenNumber}, "12.5 + 0.25 "},
		{"log(8,2)", []TokenType{TokenFunction, TokenLParen, TokenNumber, TokenComma, TokenNumber, TokenRParen}, "log ( 8 , 2 ) "},
		{"~2≥1", []TokenType{TokenOperator, TokenNumber, TokenOperator, TokenNumber}, "~ 2 ≥ 1 "},
		{"tg(1)", []TokenType{TokenFunction, TokenLParen, TokenNumber, TokenRParen}, "tan ( 1 ) "},
		{"ARCSIN(1)", []TokenType{TokenFunction, TokenLParen, TokenNumber, TokenRParen}, "asin ( 1 ) "},
		{"ln2", []TokenType{TokenFunction, TokenNumber}, "ln 2 "},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := NewLexer(tt.input).Tokenize()
			if err != nil {
				t.Fatalf("tokenize error: %v", err)
			}
			if len(tokens) != len(tt.types) {
				t.Fatalf("got %d tokens (%s), want %d", len(tokens), JoinTokens(tokens), len(tt.types))
			}
			for i, tok := range tokens {
				if tok.Type != tt.types[i] {
					t.Errorf("token %d: got type %s, want %s", i, tok.Type, tt.types[i])
				}
			}
			if got := JoinTokens(tokens); got != tt.text {
				t.Errorf("got %q, want %q", got, tt.text)
			}
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("12+sin(3)")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	want := []int{0, 2, 3, 6, 7, 8}
	for i, tok := range tokens {
		if tok.Pos != want[i] {
			t.Errorf("token %d (%s): got pos %d, want %d", i, tok, tok.Pos, want[i])
		}
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		input  string
		want   error
		symbol string
	}{
		{"2$3", types.ErrUnknownOperator, "$"},
		{"2#", types.ErrUnknownOperator, "#"},
		{"foo(1)", types.ErrUnknownFunction, "foo"},
		{"2*x", types.ErrUnknownFunction, "x"},
		{"1.2.3", types.ErrNumberParse, "1.2.3"},
		{strings.Repeat("9", 400), types.ErrNumberParse, strings.Repeat("9", 400)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var evalErr *types.EvaluationError
			if !errors.As(err, &evalErr) {
				t.Fatalf("expected *types.EvaluationError, got %T", err)
			}
			if evalErr.Symbol != tt.symbol {
				t.Errorf("got symbol %q, want %q", evalErr.Symbol, tt.symbol)
			}
		})
	}
}
