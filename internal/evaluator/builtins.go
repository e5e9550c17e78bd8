package evaluator

import (
	"fmt"
	"strconv"

	"github.com/luizgabriel/LispInterpreter/internal/config"
	"github.com/luizgabriel/LispInterpreter/internal/scope"
	"github.com/luizgabriel/LispInterpreter/internal/value"
)

type nativeFunc func(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error)

// native is a registry entry: a required arity plus the
// implementation. Natives follow the same call protocol as user
// functions — fewer arguments than the arity yields a curried
// Function, more is an error.
type native struct {
	arity int
	fn    nativeFunc
}

func (n *native) call(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
	if len(args) < n.arity {
		return sc, n.curry(sc.Context(), args), nil
	}
	if len(args) > n.arity {
		return nil, nil, &WrongArgumentCount{Context: sc.Context(), Expected: n.arity, Got: len(args)}
	}
	return n.fn(e, sc, args)
}

// curry wraps an under-saturated native as a Function whose body
// re-invokes the native by name with generated parameter names, so a
// curried native is indistinguishable from a curried user closure.
func (n *native) curry(name string, applied []value.Value) *value.Function {
	params := make([]string, n.arity)
	body := make([]value.Value, 0, n.arity+1)
	body = append(body, &value.Symbol{Name: name})
	for i := range params {
		param := "a" + strconv.Itoa(i)
		params[i] = param
		body = append(body, &value.Symbol{Name: param})
	}
	bound := make([]value.Value, len(applied))
	copy(bound, applied)
	return &value.Function{
		Parameters: params,
		Body:       &value.Sequence{Elements: body},
		Applied:    bound,
	}
}

// natives is the process-wide registry, built once and never mutated.
// Populated in init to avoid an initialization cycle through Evaluate.
var natives map[string]*native

func init() {
	natives = map[string]*native{
		config.EvalFuncName: {arity: 1, fn: nativeEval},
		config.PrintFuncName: {arity: 1, fn: func(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
			text, err := textArg(sc, args, 0)
			if err != nil {
				return nil, nil, err
			}
			fmt.Fprintln(e.Out, text)
			return sc, value.Void, nil
		}},
		config.DebugFuncName: {arity: 1, fn: func(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
			fmt.Fprintln(e.Out, args[0].Inspect())
			return sc, args[0], nil
		}},
		"to_string": {arity: 1, fn: func(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
			n, err := numberArg(sc, args, 0)
			if err != nil {
				return nil, nil, err
			}
			return sc, &value.Text{Value: strconv.FormatInt(n, 10)}, nil
		}},

		"fold":   {arity: 3, fn: nativeFold},
		"map":    {arity: 2, fn: nativeMap},
		"concat": {arity: 2, fn: nativeConcat},
		"push":   {arity: 2, fn: nativePush},
		"head":   {arity: 1, fn: nativeHead},
		"tail":   {arity: 1, fn: nativeTail},
		"len": {arity: 1, fn: func(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
			elements, err := sequenceArg(sc, args, 0)
			if err != nil {
				return nil, nil, err
			}
			return sc, &value.Number{Value: int64(len(elements))}, nil
		}},

		config.PrintScopeFuncName: {arity: 0, fn: func(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
			fmt.Fprintln(e.Out, sc.String())
			return sc, value.Void, nil
		}},
		config.ClearScopeFuncName: {arity: 0, fn: func(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
			return scope.Default(), value.Void, nil
		}},

		"+":   {arity: 2, fn: arith(func(a, b int64) int64 { return a + b })},
		"-":   {arity: 2, fn: arith(func(a, b int64) int64 { return a - b })},
		"*":   {arity: 2, fn: arith(func(a, b int64) int64 { return a * b })},
		"/":   {arity: 2, fn: checkedArith("/", func(a, b int64) int64 { return a / b })},
		"%":   {arity: 2, fn: checkedArith("%", func(a, b int64) int64 { return a % b })},
		"add": {arity: 2, fn: arith(func(a, b int64) int64 { return a + b })},
		"sub": {arity: 2, fn: arith(func(a, b int64) int64 { return a - b })},
		"mul": {arity: 2, fn: arith(func(a, b int64) int64 { return a * b })},
		"div": {arity: 2, fn: checkedArith("div", func(a, b int64) int64 { return a / b })},
		"mod": {arity: 2, fn: checkedArith("mod", func(a, b int64) int64 { return a % b })},
		"max": {arity: 2, fn: arith(func(a, b int64) int64 {
			if a > b {
				return a
			}
			return b
		})},
		"min": {arity: 2, fn: arith(func(a, b int64) int64 {
			if a < b {
				return a
			}
			return b
		})},

		"<":   {arity: 2, fn: compare(func(a, b int64) bool { return a < b })},
		">":   {arity: 2, fn: compare(func(a, b int64) bool { return a > b })},
		"<=":  {arity: 2, fn: compare(func(a, b int64) bool { return a <= b })},
		">=":  {arity: 2, fn: compare(func(a, b int64) bool { return a >= b })},
		"=":   {arity: 2, fn: compare(func(a, b int64) bool { return a == b })},
		"lt":  {arity: 2, fn: compare(func(a, b int64) bool { return a < b })},
		"gt":  {arity: 2, fn: compare(func(a, b int64) bool { return a > b })},
		"ltq": {arity: 2, fn: compare(func(a, b int64) bool { return a <= b })},
		"gtq": {arity: 2, fn: compare(func(a, b int64) bool { return a >= b })},
		"eq":  {arity: 2, fn: compare(func(a, b int64) bool { return a == b })},

		"and": {arity: 2, fn: logic(func(a, b bool) bool { return a && b })},
		"or":  {arity: 2, fn: logic(func(a, b bool) bool { return a || b })},
		"not": {arity: 1, fn: func(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
			b, err := booleanArg(sc, args, 0)
			if err != nil {
				return nil, nil, err
			}
			return sc, value.FromBool(!b), nil
		}},
	}
}

// IsSpecialForm reports whether name is one of the closed set of
// special forms.
func IsSpecialForm(name string) bool {
	_, ok := specialForms[name]
	return ok
}

// nativeEval forces evaluation of an otherwise-deferred expression:
// its argument was evaluated once on the way in (stripping a quote
// layer), and evaluating it again reduces the exposed expression.
func nativeEval(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
	return e.Evaluate(sc, args[0])
}

// nativeFold left-folds an operation over a sequence, threading the
// scope across elements. The operation may be a Function value or a
// quoted operation list such as '(+ 2).
func nativeFold(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
	op := args[0]
	acc := args[1]
	elements, err := sequenceArg(sc, args, 2)
	if err != nil {
		return nil, nil, err
	}
	for _, el := range elements {
		sc, acc, err = e.applyCallable(sc, op, []value.Value{acc, el})
		if err != nil {
			return nil, nil, err
		}
	}
	return sc, acc, nil
}

// nativeMap applies an operation to every element, preserving order
// and length and threading the scope.
func nativeMap(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
	op := args[0]
	elements, err := sequenceArg(sc, args, 1)
	if err != nil {
		return nil, nil, err
	}
	results := make([]value.Value, len(elements))
	for i, el := range elements {
		var result value.Value
		sc, result, err = e.applyCallable(sc, op, []value.Value{el})
		if err != nil {
			return nil, nil, err
		}
		results[i] = result
	}
	return sc, &value.Sequence{Elements: results}, nil
}

func nativeConcat(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
	combined, ok := value.Concat(args[0], args[1])
	if !ok {
		return nil, nil, &InvalidConcatenation{Left: args[0].Kind(), Right: args[1].Kind()}
	}
	return sc, combined, nil
}

func nativePush(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
	elements, err := sequenceArg(sc, args, 0)
	if err != nil {
		return nil, nil, err
	}
	out := make([]value.Value, 0, len(elements)+1)
	out = append(out, elements...)
	out = append(out, args[1])
	return sc, &value.Sequence{Elements: out}, nil
}

func nativeHead(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
	elements, err := sequenceArg(sc, args, 0)
	if err != nil {
		return nil, nil, err
	}
	if len(elements) == 0 {
		return nil, nil, &EmptySequence{Op: "head"}
	}
	return sc, elements[0], nil
}

func nativeTail(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
	elements, err := sequenceArg(sc, args, 0)
	if err != nil {
		return nil, nil, err
	}
	if len(elements) == 0 {
		return nil, nil, &EmptySequence{Op: "tail"}
	}
	rest := make([]value.Value, len(elements)-1)
	copy(rest, elements[1:])
	return sc, &value.Sequence{Elements: rest}, nil
}

// arith builds a two-integer native.
func arith(op func(a, b int64) int64) nativeFunc {
	return func(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
		a, b, err := numberArgs(sc, args)
		if err != nil {
			return nil, nil, err
		}
		return sc, &value.Number{Value: op(a, b)}, nil
	}
}

// checkedArith builds a two-integer native that faults on a zero
// divisor instead of crashing the process.
func checkedArith(name string, op func(a, b int64) int64) nativeFunc {
	return func(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
		a, b, err := numberArgs(sc, args)
		if err != nil {
			return nil, nil, err
		}
		if b == 0 {
			return nil, nil, &DivisionByZero{Op: name}
		}
		return sc, &value.Number{Value: op(a, b)}, nil
	}
}

// compare builds a two-integer-to-boolean native.
func compare(op func(a, b int64) bool) nativeFunc {
	return func(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
		a, b, err := numberArgs(sc, args)
		if err != nil {
			return nil, nil, err
		}
		return sc, value.FromBool(op(a, b)), nil
	}
}

// logic builds a strict two-boolean native; no truthy coercion.
func logic(op func(a, b bool) bool) nativeFunc {
	return func(e *Evaluator, sc *scope.Scope, args []value.Value) (*scope.Scope, value.Value, error) {
		a, err := booleanArg(sc, args, 0)
		if err != nil {
			return nil, nil, err
		}
		b, err := booleanArg(sc, args, 1)
		if err != nil {
			return nil, nil, err
		}
		return sc, value.FromBool(op(a, b)), nil
	}
}

func numberArg(sc *scope.Scope, args []value.Value, position int) (int64, error) {
	n, err := value.AsNumber(args[position])
	if err != nil {
		return 0, argError(sc, position, err)
	}
	return n, nil
}

func numberArgs(sc *scope.Scope, args []value.Value) (int64, int64, error) {
	a, err := numberArg(sc, args, 0)
	if err != nil {
		return 0, 0, err
	}
	b, err := numberArg(sc, args, 1)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func booleanArg(sc *scope.Scope, args []value.Value, position int) (bool, error) {
	b, err := value.AsBoolean(args[position])
	if err != nil {
		return false, argError(sc, position, err)
	}
	return b, nil
}

func textArg(sc *scope.Scope, args []value.Value, position int) (string, error) {
	s, err := value.AsText(args[position])
	if err != nil {
		return "", argError(sc, position, err)
	}
	return s, nil
}

func sequenceArg(sc *scope.Scope, args []value.Value, position int) ([]value.Value, error) {
	elements, err := value.AsSequence(args[position])
	if err != nil {
		return nil, argError(sc, position, err)
	}
	return elements, nil
}
