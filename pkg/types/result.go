// Package types defines the values shared by the evaluator and its callers:
// the evaluation result and the typed evaluation errors.
package types

import (
	"encoding/json"
	"fmt"
	"math"
)

// Result is the outcome of evaluating one expression.
type Result struct {
	Value   float64
	Boolean bool // set once a relational or logical operator was applied
}

// NewNumber creates a numeric result.
func NewNumber(v float64) Result {
	return Result{Value: v}
}

// NewBoolean creates a boolean-flagged result.
func NewBoolean(v float64) Result {
	return Result{Value: v, Boolean: true}
}

// Bool interprets the value as a boolean.
func (r Result) Bool() bool {
	return r.Value == 1.0
}

// String renders the result the way the command line prints it: "true" or
// "false" for boolean results, ten fractional digits otherwise.
func (r Result) String() string {
	if r.Boolean {
		if r.Bool() {
			return "true"
		}
		return "false"
	}
	return fmt.Sprintf("%.10f", r.Value)
}

// MarshalJSON encodes the result. Non-finite values cannot be represented as
// JSON numbers, so value is null for NaN and ±Inf; display always carries the
// rendered form.
func (r Result) MarshalJSON() ([]byte, error) {
	out := struct {
		Value   *float64 `json:"value"`
		Boolean bool     `json:"boolean"`
		Display string   `json:"display"`
	}{
		Boolean: r.Boolean,
		Display: r.String(),
	}
	if !math.IsNaN(r.Value) && !math.IsInf(r.Value, 0) {
		v := r.Value
		out.Value = &v
	}
	return json.Marshal(out)
}
