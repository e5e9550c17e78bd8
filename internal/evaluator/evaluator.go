// Package evaluator interprets parsed expression trees.
//
// Evaluate returns both the resulting value and the scope to use for
// the next expression: binds performed while evaluating one argument
// are visible to the arguments after it, and to the caller once the
// whole form finishes. Scopes are immutable, so the returned scope is
// a new value and the input scope stays valid.
package evaluator

import (
	"io"
	"os"

	"github.com/luizgabriel/LispInterpreter/internal/config"
	"github.com/luizgabriel/LispInterpreter/internal/scope"
	"github.com/luizgabriel/LispInterpreter/internal/value"
)

type Evaluator struct {
	// Out receives the output of print, debug and print_scope.
	Out io.Writer

	// MaxDepth bounds recursive evaluation. Recursion is the only
	// iteration mechanism of the language, so exceeding the bound is
	// a recoverable RecursionLimit error instead of a stack overflow.
	MaxDepth int

	depth int
}

func New() *Evaluator {
	return &Evaluator{Out: os.Stdout, MaxDepth: config.DefaultMaxDepth}
}

// Evaluate reduces expr in sc and returns the scope for the next
// evaluation together with the result.
func (e *Evaluator) Evaluate(sc *scope.Scope, expr value.Value) (*scope.Scope, value.Value, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.MaxDepth {
		return nil, nil, &RecursionLimit{Depth: e.MaxDepth}
	}

	switch v := expr.(type) {
	case *value.Symbol:
		bound, ok := sc.Get(v.Name)
		if !ok {
			return nil, nil, &UnknownIdentifier{Name: v.Name}
		}
		return sc, bound, nil
	case *value.Sequence:
		return e.evalSequence(sc, v.Elements)
	case *value.Quoted:
		// Remove exactly one layer of deferral; the wrapped value is
		// not evaluated.
		return sc, v.Value, nil
	default:
		return sc, expr, nil
	}
}

// evalSequence dispatches a list form: special forms on raw arguments,
// then the native registry, then scope-bound functions.
func (e *Evaluator) evalSequence(sc *scope.Scope, elements []value.Value) (*scope.Scope, value.Value, error) {
	if len(elements) == 0 {
		return sc, &value.Sequence{}, nil
	}

	head, tail := elements[0], elements[1:]

	if sym, ok := head.(*value.Symbol); ok {
		callScope := sc.WithContext(sym.Name)

		// Special forms receive their arguments unevaluated; they are
		// a closed set checked before anything user-defined.
		if form, ok := specialForms[sym.Name]; ok {
			return form.call(e, callScope, tail)
		}

		callScope, args, err := e.evalArguments(callScope, tail)
		if err != nil {
			return nil, nil, err
		}

		if sym.Name == config.ListFuncName {
			return callScope, &value.Sequence{Elements: args}, nil
		}

		if native, ok := natives[sym.Name]; ok {
			return native.call(e, callScope, args)
		}

		bound, ok := callScope.Get(sym.Name)
		if !ok {
			return nil, nil, &UnknownIdentifier{Name: sym.Name}
		}
		fn, ok := bound.(*value.Function)
		if !ok {
			return nil, nil, &InvalidFunctionCall{Values: elements}
		}
		return e.applyFunction(callScope, fn, args)
	}

	// The call position may hold a Function directly (the result of a
	// prior curry step invoked without a named head), or a nested form
	// like ((fn! (a) a) 5) that evaluates to one.
	callable := head
	if nested, ok := head.(*value.Sequence); ok {
		var err error
		sc, callable, err = e.evalSequence(sc, nested.Elements)
		if err != nil {
			return nil, nil, err
		}
	}
	if fn, ok := callable.(*value.Function); ok {
		callScope, args, err := e.evalArguments(sc.WithContext(config.AnonymousContext), tail)
		if err != nil {
			return nil, nil, err
		}
		sc, result, err := e.applyFunction(callScope, fn, args)
		if err != nil {
			return nil, nil, err
		}
		return sc, result, nil
	}

	return nil, nil, &InvalidFunctionCall{Values: elements}
}

// evalArguments evaluates a call's arguments left to right, threading
// the scope so a bind made by one argument is visible to the next.
func (e *Evaluator) evalArguments(sc *scope.Scope, args []value.Value) (*scope.Scope, []value.Value, error) {
	results := make([]value.Value, 0, len(args))
	for _, arg := range args {
		var (
			result value.Value
			err    error
		)
		sc, result, err = e.Evaluate(sc, arg)
		if err != nil {
			return nil, nil, err
		}
		results = append(results, result)
	}
	return sc, results, nil
}
