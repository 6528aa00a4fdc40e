package expr

import (
	"github.com/lemonberrylabs/rpncalc/pkg/types"
)

// MaxExpressionLength is the longest input, in bytes, that network-facing
// callers accept.
const MaxExpressionLength = 4096

// Analysis holds every intermediate stage of one evaluation.
type Analysis struct {
	Input      string
	Normalized string
	Tokens     []Token
	Postfix    []Token
	Result     types.Result
}

// PostfixString renders the postfix stage.
func (a *Analysis) PostfixString() string {
	return JoinTokens(a.Postfix)
}

// Trace runs the whole pipeline and returns all stages. On error the stages
// completed so far are still returned.
func Trace(infix string) (*Analysis, error) {
	a := &Analysis{Input: infix}
	if err := a.compile(); err != nil {
		return a, err
	}
	res, err := EvaluatePostfix(a.Postfix)
	if err != nil {
		return a, err
	}
	a.Result = res
	return a, nil
}

func (a *Analysis) compile() error {
	var err error
	if a.Normalized, err = Normalize(a.Input); err != nil {
		return err
	}
	if a.Tokens, err = Tokenize(a.Normalized); err != nil {
		return err
	}
	a.Postfix, err = ToPostfix(a.Tokens)
	return err
}

// Evaluate evaluates an infix expression.
func Evaluate(infix string) (types.Result, error) {
	a, err := Trace(infix)
	if err != nil {
		return types.Result{}, err
	}
	return a.Result, nil
}

// ToPostfixString converts an infix expression to its postfix rendering,
// e.g. "2^3^2" becomes "2 3 2 ^ ^ ".
func ToPostfixString(infix string) (string, error) {
	a := &Analysis{Input: infix}
	if err := a.compile(); err != nil {
		return "", err
	}
	return a.PostfixString(), nil
}
