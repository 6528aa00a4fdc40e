package expr

import (
	"math"
	"strings"
)

// Associativity decides grouping between operators of equal precedence.
type Associativity int

const (
	AssocLeft Associativity = iota
	AssocRight
)

// Arity is the number of operands an operator takes.
type Arity int

const (
	Unary  Arity = 1
	Binary Arity = 2
)

// OperatorClass groups operators by the kind of value they produce.
type OperatorClass int

const (
	ClassArithmetic OperatorClass = iota
	ClassRelational
	ClassLogical
)

// Operator describes a single-rune operator.
type Operator struct {
	Symbol     rune
	Precedence int
	Assoc      Associativity
	Arity      Arity
	Class      OperatorClass
	apply      func(a, b float64) float64
}

// Apply evaluates the operator. Unary operators ignore b.
func (o *Operator) Apply(a, b float64) float64 {
	return o.apply(a, b)
}

// Boolean reports whether the operator produces a truth value.
func (o *Operator) Boolean() bool {
	return o.Class != ClassArithmetic
}

// Canonical symbols produced by the normalizer.
const (
	symNeg = '~'
	symNot = '!'
	symNeq = '≠'
	symGte = '≥'
	symLte = '≤'
)

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// The logical band is right-associative throughout: 1|0&0 is 1|(0&0) and
// !1|0 is !(1|0).
var operators = map[rune]*Operator{
	'&':    {Symbol: '&', Precedence: 0, Class: ClassLogical, Arity: Binary, Assoc: AssocRight, apply: func(a, b float64) float64 { return b2f(a != 0 && b != 0) }},
	'|':    {Symbol: '|', Precedence: 0, Class: ClassLogical, Arity: Binary, Assoc: AssocRight, apply: func(a, b float64) float64 { return b2f(a != 0 || b != 0) }},
	symNot: {Symbol: symNot, Precedence: 0, Class: ClassLogical, Arity: Unary, Assoc: AssocRight, apply: func(a, _ float64) float64 { return b2f(a == 0) }},

	'=':    {Symbol: '=', Precedence: 1, Class: ClassRelational, Arity: Binary, apply: func(a, b float64) float64 { return b2f(a == b) }},
	symNeq: {Symbol: symNeq, Precedence: 1, Class: ClassRelational, Arity: Binary, apply: func(a, b float64) float64 { return b2f(a != b) }},
	'>':    {Symbol: '>', Precedence: 1, Class: ClassRelational, Arity: Binary, apply: func(a, b float64) float64 { return b2f(a > b) }},
	'<':    {Symbol: '<', Precedence: 1, Class: ClassRelational, Arity: Binary, apply: func(a, b float64) float64 { return b2f(a < b) }},
	symGte: {Symbol: symGte, Precedence: 1, Class: ClassRelational, Arity: Binary, apply: func(a, b float64) float64 { return b2f(a >= b) }},
	symLte: {Symbol: symLte, Precedence: 1, Class: ClassRelational, Arity: Binary, apply: func(a, b float64) float64 { return b2f(a <= b) }},

	'+': {Symbol: '+', Precedence: 2, Arity: Binary, apply: func(a, b float64) float64 { return a + b }},
	'-': {Symbol: '-', Precedence: 2, Arity: Binary, apply: func(a, b float64) float64 { return a - b }},

	'*': {Symbol: '*', Precedence: 3, Arity: Binary, apply: func(a, b float64) float64 { return a * b }},
	'/': {Symbol: '/', Precedence: 3, Arity: Binary, apply: func(a, b float64) float64 { return a / b }},
	'%': {Symbol: '%', Precedence: 3, Arity: Binary, apply: math.Mod},

	'^':    {Symbol: '^', Precedence: 4, Assoc: AssocRight, Arity: Binary, apply: math.Pow},
	symNeg: {Symbol: symNeg, Precedence: 4, Assoc: AssocRight, Arity: Unary, apply: func(a, _ float64) float64 { return -a }},
}

// LookupOperator returns the operator for a canonical symbol.
func LookupOperator(r rune) (*Operator, bool) {
	op, ok := operators[r]
	return op, ok
}

// Function describes a named function of one or two arguments.
type Function struct {
	Name  string
	Arity int
	apply func(a, b float64) float64
}

// Apply evaluates the function. One-argument functions ignore b.
func (f *Function) Apply(a, b float64) float64 {
	return f.apply(a, b)
}

func monadic(name string, fn func(float64) float64) *Function {
	return &Function{Name: name, Arity: 1, apply: func(a, _ float64) float64 { return fn(a) }}
}

func dyadic(name string, fn func(a, b float64) float64) *Function {
	return &Function{Name: name, Arity: 2, apply: fn}
}

func logBase(x, base float64) float64 {
	switch base {
	case 2:
		return math.Log2(x)
	case 10:
		return math.Log10(x)
	}
	return math.Log(x) / math.Log(base)
}

var functions = map[string]*Function{}

// functionAliases maps alternative spellings to canonical names.
var functionAliases = map[string]string{}

func register(f *Function, aliases ...string) {
	functions[f.Name] = f
	for _, a := range aliases {
		functionAliases[a] = f.Name
	}
}

func init() {
	register(monadic("sin", math.Sin))
	register(monadic("cos", math.Cos))
	register(monadic("tan", math.Tan), "tg", "tang")
	register(monadic("cot", func(x float64) float64 { return 1 / math.Tan(x) }), "ctan", "ctg")
	register(monadic("sec", func(x float64) float64 { return 1 / math.Cos(x) }), "sc")
	register(monadic("csc", func(x float64) float64 { return 1 / math.Sin(x) }), "csec", "cosec", "cosc")

	register(monadic("sinh", math.Sinh))
	register(monadic("cosh", math.Cosh))
	register(monadic("tanh", math.Tanh), "tgh", "tangh")
	register(monadic("coth", func(x float64) float64 { return 1 / math.Tanh(x) }), "ctanh", "ctgh")

	register(monadic("asin", math.Asin), "arcsin")
	register(monadic("acos", math.Acos), "arccos")
	register(monadic("atan", math.Atan), "atg", "atang", "arctan", "arctg", "arctang")
	register(monadic("acot", func(x float64) float64 { return math.Pi/2 - math.Atan(x) }),
		"actan", "actg", "arcctan", "arcctg", "arccot")

	register(monadic("asinh", math.Asinh), "arcsinh")
	register(monadic("acosh", math.Acosh), "arccosh")
	register(monadic("atanh", math.Atanh), "atgh", "atangh", "arctanh", "arctgh", "arctangh")
	register(monadic("acoth", func(x float64) float64 { return math.Atanh(1 / x) }),
		"actanh", "actgh", "arcctanh", "arcctgh", "arccoth")

	register(monadic("abs", math.Abs))
	register(monadic("ln", math.Log))
	register(monadic("lg", math.Log10))
	register(monadic("lb", math.Log2))
	register(monadic("sqrt", math.Sqrt))
	register(monadic("cbrt", math.Cbrt))
	register(monadic("exp", math.Exp))
	register(monadic("floor", math.Floor))
	register(monadic("ceil", math.Ceil))

	register(dyadic("log", logBase))
	register(dyadic("root", func(x, n float64) float64 { return math.Pow(x, 1/n) }), "rt")
	register(dyadic("pow", math.Pow))
	register(dyadic("max", math.Max))
	register(dyadic("min", math.Min))
}

// LookupFunction resolves a function by name or alias, case-insensitively.
func LookupFunction(name string) (*Function, bool) {
	name = strings.ToLower(name)
	if canonical, ok := functionAliases[name]; ok {
		name = canonical
	}
	f, ok := functions[name]
	return f, ok
}
