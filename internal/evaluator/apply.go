package evaluator

import (
	"github.com/luizgabriel/LispInterpreter/internal/scope"
	"github.com/luizgabriel/LispInterpreter/internal/value"
)

// applyFunction applies fn to the arguments supplied at this call
// site, on top of any arguments applied by earlier curry steps.
//
// Under-saturation returns a new Function with the extra arguments
// folded into Applied and the body untouched. Saturation binds the
// parameters into the call-time scope, evaluates the body there, then
// restores the caller's scope so bindings made inside the body never
// leak out.
func (e *Evaluator) applyFunction(sc *scope.Scope, fn *value.Function, args []value.Value) (*scope.Scope, value.Value, error) {
	supplied := make([]value.Value, 0, len(fn.Applied)+len(args))
	supplied = append(supplied, fn.Applied...)
	supplied = append(supplied, args...)

	if len(supplied) < len(fn.Parameters) {
		curried := &value.Function{
			Parameters: fn.Parameters,
			Body:       fn.Body,
			Applied:    supplied,
		}
		return sc, curried, nil
	}

	if len(supplied) > len(fn.Parameters) {
		return nil, nil, &WrongArgumentCount{
			Context:  sc.Context(),
			Expected: len(fn.Parameters),
			Got:      len(supplied),
		}
	}

	inner := sc
	for i, param := range fn.Parameters {
		inner = inner.Bind(param, supplied[i])
	}

	_, result, err := e.Evaluate(inner, fn.Body)
	if err != nil {
		return nil, nil, err
	}
	return sc, result, nil
}

// applyCallable resolves op to a callable and applies it to args by
// building a call form and evaluating it. fold and map use this: op
// may already be a Function, or a quoted operation list like '(+ 2)
// whose evaluation produces the curried native to apply.
func (e *Evaluator) applyCallable(sc *scope.Scope, op value.Value, args []value.Value) (*scope.Scope, value.Value, error) {
	sc, callable, err := e.Evaluate(sc, op)
	if err != nil {
		return nil, nil, err
	}
	form := make([]value.Value, 0, len(args)+1)
	form = append(form, callable)
	for _, arg := range args {
		// The arguments are values, not expressions; quoting keeps
		// the call from evaluating them a second time.
		form = append(form, &value.Quoted{Value: arg})
	}
	return e.Evaluate(sc, &value.Sequence{Elements: form})
}
