package rules

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"

	"github.com/suderio/jdice/internal/dice"
)

// ErrNotBoolean is returned by Check when the expression does not yield a bool.
var ErrNotBoolean = errors.New("check expression must evaluate to a boolean")

// RollFunc rolls a notation string and returns its total.
type RollFunc func(notation string) (int, error)

// Registry manages the CEL environment and provides helper methods for evaluation.
type Registry struct {
	env *cel.Env
}

// NewRegistry initializes the CEL environment with roll result variables and
// a roll() function backed by rollFunc.
func NewRegistry(rollFunc RollFunc) (*Registry, error) {
	env, err := cel.NewEnv(
		// Variable declarations
		cel.Variable("total", cel.IntType),
		cel.Variable("bonus", cel.IntType),
		cel.Variable("values", cel.ListType(cel.IntType)),

		cel.Function("roll",
			cel.Overload("roll_string",
				[]*cel.Type{cel.StringType},
				cel.IntType,
				cel.UnaryBinding(func(arg ref.Val) ref.Val {
					s, ok := arg.Value().(string)
					if !ok {
						return types.NewErr("roll() expects a string")
					}
					total, err := rollFunc(s)
					if err != nil {
						return types.NewErr("roll(%q): %v", s, err)
					}
					return types.Int(total)
				}),
			),
		),
	)
	if err != nil {
		return nil, err
	}
	return &Registry{env: env}, nil
}

// Eval executes a CEL expression against the provided context.
func (r *Registry) Eval(expression string, context map[string]any) (any, error) {
	ast, iss := r.env.Compile(expression)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	prog, err := r.env.Program(ast)
	if err != nil {
		return nil, err
	}
	out, _, err := prog.Eval(context)
	if err != nil {
		return nil, err
	}
	return out.Value(), nil
}

// Check evaluates a boolean predicate against a roll result.
func (r *Registry) Check(expression string, res dice.Result) (bool, error) {
	out, err := r.Eval(expression, ContextFromResult(res))
	if err != nil {
		return false, fmt.Errorf("check %q: %w", expression, err)
	}
	passed, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("check %q yielded %T: %w", expression, out, ErrNotBoolean)
	}
	return passed, nil
}
