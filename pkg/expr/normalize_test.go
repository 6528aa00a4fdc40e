package expr

import (
	"errors"
	"testing"

	"github.com/lemonberrylabs/rpncalc/pkg/types"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// whitespace and symbol unification
		{" 2 + 3 ", "2+3"},
		{"2\t*\n3", "2*3"},
		{"2**3", "2^3"},
		{"6//2", "6/2"},
		{"6:2", "6/2"},
		{"6÷2", "6/2"},
		{"2×3", "2*3"},
		{"5−1", "5-1"},
		{"1==1", "1=1"},
		{"1!=2", "1≠2"},
		{"1<>2", "1≠2"},
		{"1>=2", "1≥2"},
		{"1<=2", "1≤2"},
		{"1&&0", "1&0"},
		{"1||0", "1|0"},
		{"[1+2]*{3}", "(1+2)*(3)"},
		{"(1)(2)", "(1)*(2)"},

		// parenthesis repair
		{"(12", "(12)"},
		{"12)", "(12)"},
		{"((1+2", "((1+2))"},
		{"1)(2", "(1)*(2)"},

		// decimal repair
		{".5+5.", "0.5+5.0"},
		{".", "0.0"},

		// unary minus and plus
		{"-2", "~2"},
		{"3-2", "3-2"},
		{"2*-3", "2*~3"},
		{"(-1)", "(~1)"},
		{"(1)-2", "(1)-2"},
		{"--2", "~~2"},
		{"+2", "2"},
		{"2*+3", "2*3"},

		// constants, scientific notation and implicit multiplication
		{"π", "3.141592653589793"},
		{"e", "2.718281828459045"},
		{"2pi", "2*3.141592653589793"},
		{"pi2", "3.141592653589793*2"},
		{"(2)pi", "(2)*3.141592653589793"},
		{"pie", "3.141592653589793*2.718281828459045"},
		{"2(3)", "2*(3)"},
		{"(2)3", "(2)*3"},
		{"2sin(1)", "2*sin(1)"},
		{"cos(0)sin(0)", "cos(0)*sin(0)"},
		{"sec(0)", "sec(0)"},
		{"1E3", "(1*10^3)"},
		{"1E-3", "(1*10^~3)"},
		{"2.5E+2", "(2.5*10^2)"},
		{"2/1E3", "2/(1*10^3)"},
		{"3*12.5E2", "3*(12.5*10^2)"},
		{"2E(3)", "2*10^(3)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("normalize error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := Normalize(input)
		if !errors.Is(err, types.ErrEmptyExpression) {
			t.Errorf("Normalize(%q): expected EmptyExpression, got %v", input, err)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"-2 * (3 + 4)",
		"sin ( max ( 2, 3 ) ÷ 3 × π )",
		"cos(pi/2)sin(2pi)",
		"(12",
		"12)",
		".5 + 5.",
		"2.5E-2",
		"1 >= 2 && !0",
		"17 * -2 + 21**2",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once, err := Normalize(input)
			if err != nil {
				t.Fatalf("normalize error: %v", err)
			}
			twice, err := Normalize(once)
			if err != nil {
				t.Fatalf("normalize error: %v", err)
			}
			if once != twice {
				t.Errorf("not idempotent: %q -> %q -> %q", input, once, twice)
			}
		})
	}
}
