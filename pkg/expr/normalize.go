package expr

import (
	"math"
	"strings"
	"unicode"

	"github.com/lemonberrylabs/rpncalc/pkg/types"
)

// substitutions is applied in order; longer patterns come before any
// pattern they overlap with.
var substitutions = [][2]string{
	{"**", "^"},
	{"//", "/"},
	{":", "/"},
	{"÷", "/"},
	{"×", "*"},
	{"·", "*"},
	{"−", "-"},
	{"==", "="},
	{"!=", string(symNeq)},
	{"<>", string(symNeq)},
	{">=", string(symGte)},
	{"<=", string(symLte)},
	{"&&", "&"},
	{"||", "|"},
	{"{", "("},
	{"[", "("},
	{"}", ")"},
	{"]", ")"},
	{")(", ")*("},
}

// Named constants, spelled as the literals they expand to.
var constants = []struct {
	name  string
	value string
}{
	{"pi", formatNumber(math.Pi)},
	{"π", formatNumber(math.Pi)},
	{"e", formatNumber(math.E)},
}

// scientificMarker replaces an E written directly after a number.
// 1E3 becomes (1*10^3).
const scientificMarker = "*10^"

// Normalize rewrites raw input into the canonical alphabet understood by the
// lexer. It only fails when the input holds nothing but whitespace.
func Normalize(raw string) (string, error) {
	s := stripSpace(raw)
	if s == "" {
		return "", types.NewEmptyExpressionError("expression is empty")
	}

	for _, sub := range substitutions {
		s = strings.ReplaceAll(s, sub[0], sub[1])
	}

	rs := expandWords([]rune(s))
	rs = balanceParens(rs)
	rs = repairDecimals(rs)
	rs = resolveUnary(rs)
	rs = insertImplicitMul(rs)
	return string(rs), nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// expandWords handles every maximal run of letters: known functions are kept,
// an E after a number becomes the scientific marker, and runs made only of
// named constants are replaced by their values.
func expandWords(rs []rune) []rune {
	out := make([]rune, 0, len(rs))
	for i := 0; i < len(rs); {
		if !unicode.IsLetter(rs[i]) {
			out = append(out, rs[i])
			i++
			continue
		}
		j := i
		for j < len(rs) && unicode.IsLetter(rs[j]) {
			j++
		}
		word := string(rs[i:j])
		prev := rune(0)
		if len(out) > 0 {
			prev = out[len(out)-1]
		}
		next := rune(0)
		if j < len(rs) {
			next = rs[j]
		}
		i = j

		if word == "E" && (isDigit(prev) || prev == '.') {
			out, i = expandScientific(out, rs, i)
			continue
		}
		if _, ok := LookupFunction(word); ok {
			out = append(out, []rune(word)...)
			continue
		}
		values, ok := splitConstants(strings.ToLower(word))
		if !ok {
			out = append(out, []rune(word)...)
			continue
		}
		if isDigit(prev) || prev == '.' || prev == ')' {
			out = append(out, '*')
		}
		out = append(out, []rune(strings.Join(values, "*"))...)
		if isDigit(next) || next == '.' {
			out = append(out, '*')
		}
	}
	return out
}

// expandScientific rewrites the mantissa already in out and the exponent
// starting at rs[i] as one parenthesized group, so 2/1E3 divides by 1000.
// It returns the new output and the index after the exponent. Without a
// numeric exponent only the marker is emitted.
func expandScientific(out, rs []rune, i int) ([]rune, int) {
	j := i
	if j < len(rs) && (rs[j] == '-' || rs[j] == '+') {
		j++
	}
	k := j
	for k < len(rs) && (isDigit(rs[k]) || rs[k] == '.') {
		k++
	}
	if k == j {
		return append(out, []rune(scientificMarker)...), i
	}

	start := len(out)
	for start > 0 && (isDigit(out[start-1]) || out[start-1] == '.') {
		start--
	}
	mantissa := append([]rune(nil), out[start:]...)

	group := make([]rune, 0, len(mantissa)+len(scientificMarker)+k-i+2)
	group = append(group, '(')
	group = append(group, mantissa...)
	group = append(group, []rune(scientificMarker)...)
	group = append(group, rs[i:k]...)
	group = append(group, ')')
	return append(out[:start], group...), k
}

// splitConstants decomposes word into a sequence of named constants.
func splitConstants(word string) ([]string, bool) {
	var values []string
	for word != "" {
		matched := false
		for _, c := range constants {
			if strings.HasPrefix(word, c.name) {
				values = append(values, c.value)
				word = word[len(c.name):]
				matched = true
				break
			}
		}
		if !matched {
			return nil, false
		}
	}
	return values, true
}

// balanceParens prepends an opening paren for every unmatched closing paren
// and appends a closing paren for every unclosed opening paren.
func balanceParens(rs []rune) []rune {
	depth, deficit := 0, 0
	for _, r := range rs {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < -deficit {
				deficit = -depth
			}
		}
	}
	open := depth + deficit
	if deficit == 0 && open == 0 {
		return rs
	}
	out := make([]rune, 0, len(rs)+deficit+open)
	for range deficit {
		out = append(out, '(')
	}
	out = append(out, rs...)
	for range open {
		out = append(out, ')')
	}
	return out
}

// repairDecimals makes ".5" and "5." valid literals.
func repairDecimals(rs []rune) []rune {
	out := make([]rune, 0, len(rs))
	for i, r := range rs {
		if r != '.' {
			out = append(out, r)
			continue
		}
		if i == 0 || !isDigit(rs[i-1]) {
			out = append(out, '0')
		}
		out = append(out, '.')
		if i+1 >= len(rs) || !isDigit(rs[i+1]) {
			out = append(out, '0')
		}
	}
	return out
}

// resolveUnary rewrites a minus in prefix position to the negation symbol
// and drops a plus in prefix position.
func resolveUnary(rs []rune) []rune {
	out := make([]rune, 0, len(rs))
	for _, r := range rs {
		if r != '-' && r != '+' {
			out = append(out, r)
			continue
		}
		prefix := len(out) == 0
		if !prefix {
			prev := out[len(out)-1]
			prefix = !isDigit(prev) && prev != ')'
		}
		switch {
		case !prefix:
			out = append(out, r)
		case r == '-':
			out = append(out, symNeg)
		}
	}
	return out
}

// insertImplicitMul turns juxtaposition into multiplication: 2pi, 2(3),
// (2)3, (2)sin(1).
func insertImplicitMul(rs []rune) []rune {
	out := make([]rune, 0, len(rs))
	for i, r := range rs {
		if i > 0 {
			prev := rs[i-1]
			switch {
			case isDigit(prev) && (unicode.IsLetter(r) || r == '('):
				out = append(out, '*')
			case prev == ')' && (isDigit(r) || unicode.IsLetter(r) || r == '('):
				out = append(out, '*')
			}
		}
		out = append(out, r)
	}
	return out
}
