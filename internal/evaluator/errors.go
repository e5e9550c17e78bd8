package evaluator

import (
	"errors"
	"fmt"

	"github.com/luizgabriel/LispInterpreter/internal/scope"
	"github.com/luizgabriel/LispInterpreter/internal/value"
)

// Evaluation errors are tagged values, not control flow: the first
// failure anywhere in an argument list aborts the enclosing call and
// propagates unchanged to the caller. Value fragments in messages are
// backtick-quoted so the display layer can re-parse and colorize them.

// InvalidArgumentType reports a coercion failure at a specific
// argument slot. Context is the name of the dispatched call.
type InvalidArgumentType struct {
	Context  string
	Expected value.Kind
	Got      value.Kind
	Position int
}

func (e *InvalidArgumentType) Error() string {
	return fmt.Sprintf("Invalid argument type for `%s` at position `%d`, expected `%s`, got `%s`",
		e.Context, e.Position, e.Expected, e.Got)
}

// InvalidConcatenation reports a concat over an unsupported kind pair.
type InvalidConcatenation struct {
	Left  value.Kind
	Right value.Kind
}

func (e *InvalidConcatenation) Error() string {
	return fmt.Sprintf("Invalid argument types, cannot concat `%s` and `%s`", e.Left, e.Right)
}

// InvalidFunctionCall reports a call whose head is neither a symbol,
// a bound callable, nor a Function. It carries the whole offending
// form so the message can suggest the corrected quoted spelling.
type InvalidFunctionCall struct {
	Values []value.Value
}

func (e *InvalidFunctionCall) Error() string {
	form := &value.Sequence{Elements: e.Values}
	suggestion := &value.Quoted{Value: form}
	head := e.Values[0]
	return fmt.Sprintf("Invalid function call, got `%s` of type `%s`.\nIs this supposed to be a list? If so, use `%s`",
		head.Inspect(), head.Kind(), suggestion.Inspect())
}

// UnknownIdentifier reports a failed symbol or registry lookup.
type UnknownIdentifier struct {
	Name string
}

func (e *UnknownIdentifier) Error() string {
	return fmt.Sprintf("Unknown identifier `%s`.", e.Name)
}

// WrongArgumentCount reports a callable or special form given more
// arguments than it has parameters. Too few arguments to a callable is
// never an error (that is currying); special forms accept neither.
type WrongArgumentCount struct {
	Context  string
	Expected int
	Got      int
}

func (e *WrongArgumentCount) Error() string {
	return fmt.Sprintf("Wrong number of arguments for `%s`, expected %d, got %d", e.Context, e.Expected, e.Got)
}

// DivisionByZero reports a zero divisor in division or modulo.
type DivisionByZero struct {
	Op string
}

func (e *DivisionByZero) Error() string {
	return fmt.Sprintf("Division by zero in `%s`", e.Op)
}

// EmptySequence reports head or tail applied to an empty sequence.
type EmptySequence struct {
	Op string
}

func (e *EmptySequence) Error() string {
	return fmt.Sprintf("Cannot take `%s` of an empty list", e.Op)
}

// RecursionLimit reports that evaluation nested past the configured
// depth bound.
type RecursionLimit struct {
	Depth int
}

func (e *RecursionLimit) Error() string {
	return fmt.Sprintf("Maximum recursion depth exceeded (%d)", e.Depth)
}

// argError wraps a coercion mismatch with the dispatched call name and
// argument position. Errors that are not mismatches pass through.
func argError(sc *scope.Scope, position int, err error) error {
	var m *value.Mismatch
	if errors.As(err, &m) {
		return &InvalidArgumentType{
			Context:  sc.Context(),
			Expected: m.Expected,
			Got:      m.Got,
			Position: position,
		}
	}
	return err
}
