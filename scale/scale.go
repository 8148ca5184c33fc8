// Package scale adjusts the turtle step length between generations
package scale

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"
)

// Scale multiplies step by factor
func Scale(step, factor float64) float64 {
	return step * factor
}

// A Scaler computes the step length for the next generation
type Scaler interface {
	Next(step float64, env Environment) (float64, error)
}

// Factor is the constant-factor Scaler, halving the step each generation when 0.5
type Factor float64

func (f Factor) Next(step float64, _ Environment) (float64, error) {
	return Scale(step, float64(f)), nil
}

func (f Factor) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

// ExpressionError reports a failure to parse or evaluate an expression
type ExpressionError struct {
	Expression string
	Err        error
}

func (e *ExpressionError) Error() string {
	return fmt.Sprintf("expression %q: %v", e.Expression, e.Err)
}

func (e *ExpressionError) Unwrap() error {
	return e.Err
}

func (e *ExpressionError) Cause() error {
	return e.Err
}

type expressionFunction func(env Environment) (float64, error)

type wrappedVariablesForExpression struct {
	Environment
}

func (wvfe wrappedVariablesForExpression) Get(name string) (interface{}, error) {
	if wvfe.Environment == nil {
		return nil, errors.Errorf("couldn't find %s", name)
	}
	val, err := wvfe.Environment.Get(name)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't find %s", name)
	}
	return val, nil
}

func parseExpression(asString string) (expressionFunction, error) {
	// Check if possible to simplify if it just a scalar
	if scalar, err := strconv.ParseFloat(strings.TrimSpace(asString), 64); err == nil {
		return func(_ Environment) (float64, error) {
			return scalar, nil
		}, nil
	}

	evaluable, err := govaluate.NewEvaluableExpression(asString)
	if err != nil {
		return nil, &ExpressionError{Expression: asString, Err: err}
	}

	return func(env Environment) (float64, error) {
		resAsInterface, err := evaluable.Eval(wrappedVariablesForExpression{env})
		if err != nil {
			return 0, &ExpressionError{Expression: asString, Err: err}
		}

		resAsFloat, ok := resAsInterface.(float64)
		if !ok {
			return 0, &ExpressionError{Expression: asString, Err: errors.Errorf("result %v is not a number", resAsInterface)}
		}

		return resAsFloat, nil
	}, nil
}

// Expression is a Scaler computing the next step from an arithmetic expression such as "step * 0.5".
// The expression sees the variables of the Environment it is given; Next sets "step" to its argument
// when the Environment is a *Snapshot.
type Expression struct {
	source string
	eval   expressionFunction
}

func ParseExpression(s string) (*Expression, error) {
	eval, err := parseExpression(s)
	if err != nil {
		return nil, err
	}
	return &Expression{source: s, eval: eval}, nil
}

func (e *Expression) Next(step float64, env Environment) (float64, error) {
	if snapshot, ok := env.(*Snapshot); ok {
		snapshot.Step = step
	} else {
		env = &Snapshot{Inner: env, Step: step}
	}
	return e.eval(env)
}

func (e *Expression) String() string {
	return e.source
}

// Evaluate computes a one-off expression, for example an angle given as "180/7"
func Evaluate(s string, env Environment) (float64, error) {
	eval, err := parseExpression(s)
	if err != nil {
		return 0, err
	}
	if env == nil {
		env = &Snapshot{}
	}
	return eval(env)
}

// Parse reads a Scaler: a plain number is a Factor, anything else an Expression
func Parse(s string) (Scaler, error) {
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return Factor(f), nil
	}
	return ParseExpression(s)
}
