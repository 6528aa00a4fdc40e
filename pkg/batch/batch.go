// Package batch runs suites of expressions described in YAML and checks them
// against optional expectations.
//
// A suite looks like:
//
//	tolerance: 1e-9
//	cases:
//	  - name: precedence
//	    expression: "2+3*4"
//	    want: 14
//	    postfix: "2 3 4 * + "
//	  - expression: "1 >= 2"
//	    boolean: true
//	    want: 0
//	  - expression: "2+*3"
//	    error: MissingOperand
package batch

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/lemonberrylabs/rpncalc/pkg/expr"
	"github.com/lemonberrylabs/rpncalc/pkg/types"
	"gopkg.in/yaml.v3"
)

// MaxSourceSize is the largest suite file accepted, in bytes.
const MaxSourceSize = 1 << 20

// DefaultTolerance is used when a suite does not set one.
const DefaultTolerance = 1e-9

// Suite is a parsed batch file.
type Suite struct {
	Tolerance float64 `yaml:"tolerance"`
	Cases     []Case  `yaml:"cases"`
}

// Case is one expression with optional expectations. Unset expectations are
// not checked.
type Case struct {
	Name       string   `yaml:"name"`
	Expression string   `yaml:"expression"`
	Want       *float64 `yaml:"want"`
	Boolean    *bool    `yaml:"boolean"`
	Postfix    *string  `yaml:"postfix"`
	Error      string   `yaml:"error"`
}

// Label returns the case name, falling back to the expression.
func (c Case) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Expression
}

// Outcome is the result of running one case.
type Outcome struct {
	Case    Case
	Result  types.Result
	Postfix string
	Err     error
	Passed  bool
	Reason  string // why the case failed; empty when passed
}

// ParseError reports a malformed suite.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return "batch: " + e.Message
}

// Parse decodes a suite. Unknown keys are rejected.
func Parse(source []byte) (*Suite, error) {
	if len(source) > MaxSourceSize {
		return nil, &ParseError{Message: fmt.Sprintf("suite size %d exceeds maximum %d bytes", len(source), MaxSourceSize)}
	}

	dec := yaml.NewDecoder(bytes.NewReader(source))
	dec.KnownFields(true)

	var s Suite
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Message: "empty suite"}
		}
		return nil, &ParseError{Message: fmt.Sprintf("invalid YAML: %v", err)}
	}
	if len(s.Cases) == 0 {
		return nil, &ParseError{Message: "suite has no cases"}
	}
	for i, c := range s.Cases {
		if c.Error != "" && (c.Want != nil || c.Boolean != nil) {
			return nil, &ParseError{Message: fmt.Sprintf("case %d (%s): error cannot be combined with want/boolean", i+1, c.Label())}
		}
	}
	if s.Tolerance <= 0 {
		s.Tolerance = DefaultTolerance
	}
	return &s, nil
}

// Load reads and parses a suite file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Run evaluates every case in order.
func (s *Suite) Run() []Outcome {
	out := make([]Outcome, 0, len(s.Cases))
	for _, c := range s.Cases {
		out = append(out, s.runCase(c))
	}
	return out
}

func (s *Suite) runCase(c Case) Outcome {
	o := Outcome{Case: c}
	a, err := expr.Trace(c.Expression)
	o.Postfix = a.PostfixString()
	o.Result = a.Result
	o.Err = err
	o.Reason = s.check(c, o)
	o.Passed = o.Reason == ""
	return o
}

// check returns the first violated expectation.
func (s *Suite) check(c Case, o Outcome) string {
	if c.Error != "" {
		if o.Err == nil {
			return fmt.Sprintf("expected %s error, got %s", c.Error, o.Result)
		}
		if kind := types.KindOf(o.Err); string(kind) != c.Error {
			return fmt.Sprintf("expected %s error, got %v", c.Error, o.Err)
		}
		return ""
	}
	if o.Err != nil {
		return fmt.Sprintf("unexpected error: %v", o.Err)
	}
	if c.Postfix != nil && *c.Postfix != o.Postfix {
		return fmt.Sprintf("postfix %q, want %q", o.Postfix, *c.Postfix)
	}
	if c.Boolean != nil && *c.Boolean != o.Result.Boolean {
		return fmt.Sprintf("boolean flag %v, want %v", o.Result.Boolean, *c.Boolean)
	}
	if c.Want != nil && !closeEnough(o.Result.Value, *c.Want, s.Tolerance) {
		return fmt.Sprintf("value %v, want %v", o.Result.Value, *c.Want)
	}
	return ""
}

func closeEnough(got, want, tol float64) bool {
	switch {
	case math.IsNaN(want):
		return math.IsNaN(got)
	case math.IsInf(want, 0):
		return got == want
	}
	return math.Abs(got-want) <= tol
}

// Summary counts passed and failed outcomes.
func Summary(outcomes []Outcome) (passed, failed int) {
	for _, o := range outcomes {
		if o.Passed {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// Report writes one line per outcome followed by a summary line.
func Report(w io.Writer, outcomes []Outcome) error {
	for _, o := range outcomes {
		var err error
		switch {
		case !o.Passed:
			_, err = fmt.Fprintf(w, "FAIL %s: %s\n", o.Case.Label(), o.Reason)
		case o.Err != nil:
			_, err = fmt.Fprintf(w, "ok   %s => %s\n", o.Case.Label(), types.KindOf(o.Err))
		default:
			_, err = fmt.Fprintf(w, "ok   %s => %s\n", o.Case.Label(), o.Result)
		}
		if err != nil {
			return err
		}
	}
	passed, failed := Summary(outcomes)
	_, err := fmt.Fprintf(w, "%d passed, %d failed\n", passed, failed)
	return err
}
