package evaluator

import (
	"github.com/luizgabriel/LispInterpreter/internal/config"
	"github.com/luizgabriel/LispInterpreter/internal/scope"
	"github.com/luizgabriel/LispInterpreter/internal/value"
)

// A special form receives its arguments unevaluated, because it must
// control which sub-expressions run (if!) or needs a raw symbol rather
// than its value (def!, defn!, fn!).
type specialForm struct {
	arity int
	apply func(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error)
}

// specialForms is the closed set of names resolved before generic
// dispatch. User identifiers that merely end in `!` are not special.
// Populated in init to avoid an initialization cycle through Evaluate.
var specialForms map[string]specialForm

func init() {
	specialForms = map[string]specialForm{
		config.DefFormName:  {arity: 2, apply: formDef},
		config.DefnFormName: {arity: 3, apply: formDefn},
		config.FnFormName:   {arity: 2, apply: formFn},
		config.IfFormName:   {arity: 3, apply: formIf},
	}
}

func (f specialForm) call(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
	if len(args) != f.arity {
		return nil, nil, &WrongArgumentCount{Context: sc.Context(), Expected: f.arity, Got: len(args)}
	}
	return f.apply(e, sc, args)
}

// formDef evaluates its second argument and binds the result under the
// raw symbol given first. Yields Unit; the binding lives in the
// returned scope.
func formDef(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
	name, err := value.AsSymbol(args[0])
	if err != nil {
		return nil, nil, argError(sc, 0, err)
	}
	sc, bound, err := e.Evaluate(sc, args[1])
	if err != nil {
		return nil, nil, err
	}
	return sc.Bind(name, bound), value.Void, nil
}

// formDefn builds a function from raw parameters and body and binds it
// under the raw symbol given first.
func formDefn(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
	name, err := value.AsSymbol(args[0])
	if err != nil {
		return nil, nil, argError(sc, 0, err)
	}
	fn, err := buildFunction(sc, args[1], args[2])
	if err != nil {
		return nil, nil, err
	}
	return sc.Bind(name, fn), value.Void, nil
}

// formFn builds an anonymous function value without evaluating its
// body.
func formFn(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
	fn, err := buildFunction(sc, args[0], args[1])
	if err != nil {
		return nil, nil, err
	}
	return sc, fn, nil
}

// formIf evaluates the condition only, then exactly one branch. Never
// both: recursive user functions rely on the untaken branch staying
// unevaluated to terminate.
func formIf(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
	sc, cond, err := e.Evaluate(sc, args[0])
	if err != nil {
		return nil, nil, err
	}
	truth, err := value.AsBoolean(cond)
	if err != nil {
		return nil, nil, argError(sc, 0, err)
	}
	if truth {
		return e.Evaluate(sc, args[1])
	}
	return e.Evaluate(sc, args[2])
}

// buildFunction validates that params is a literal sequence of symbols
// and wraps it with the unevaluated body into a Function value.
func buildFunction(sc *scope.Scope, params, body value.Value) (*value.Function, error) {
	elements, err := value.AsSequence(params)
	if err != nil {
		return nil, argError(sc, 0, err)
	}
	names := make([]string, len(elements))
	for i, el := range elements {
		name, err := value.AsSymbol(el)
		if err != nil {
			return nil, argError(sc, 1, err)
		}
		names[i] = name
	}
	return &value.Function{Parameters: names, Body: body}, nil
}
