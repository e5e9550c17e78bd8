package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Value. Kinds render in error
// messages, so the constants use the surface-language names.
type Kind string

const (
	KindAny      Kind = "any"
	KindSymbol   Kind = "symbol"
	KindText     Kind = "string"
	KindSequence Kind = "list"
	KindNumber   Kind = "number"
	KindBoolean  Kind = "boolean"
	KindFunction Kind = "function"
	KindUnit     Kind = "void"
)

// Value is the tagged representation shared by the parser and the
// evaluator: every expression tree node is a Value, and evaluation
// produces Values.
type Value interface {
	Kind() Kind
	Inspect() string
}

// Symbol is an identifier. Evaluating it looks up its binding.
type Symbol struct {
	Name string
}

func (s *Symbol) Kind() Kind      { return KindSymbol }
func (s *Symbol) Inspect() string { return s.Name }

// Text is a string scalar.
type Text struct {
	Value string
}

func (t *Text) Kind() Kind      { return KindText }
func (t *Text) Inspect() string { return strconv.Quote(t.Value) }

// Number is a 64-bit signed integer scalar.
type Number struct {
	Value int64
}

func (n *Number) Kind() Kind      { return KindNumber }
func (n *Number) Inspect() string { return strconv.FormatInt(n.Value, 10) }

// Boolean is a true/false scalar.
type Boolean struct {
	Value bool
}

func (b *Boolean) Kind() Kind { return KindBoolean }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// Sequence is an ordered list of Values. A non-empty sequence in
// evaluation position is a call form.
type Sequence struct {
	Elements []Value
}

func (s *Sequence) Kind() Kind { return KindSequence }
func (s *Sequence) Inspect() string {
	parts := make([]string, len(s.Elements))
	for i, el := range s.Elements {
		parts[i] = el.Inspect()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Quoted wraps one Value behind a single layer of deferral.
// Evaluating it yields the wrapped value without evaluating its
// contents. Its kind is the kind of the wrapped value.
type Quoted struct {
	Value Value
}

func (q *Quoted) Kind() Kind      { return q.Value.Kind() }
func (q *Quoted) Inspect() string { return "'" + q.Value.Inspect() }

// Function is a closure or a curried native wrapper. Applied holds
// already-bound argument values; a Function that escapes a call always
// has fewer applied values than parameters.
type Function struct {
	Parameters []string
	Body       Value
	Applied    []Value
}

func (f *Function) Kind() Kind { return KindFunction }
func (f *Function) Inspect() string {
	bound := make([]string, 0, len(f.Applied))
	for i, arg := range f.Applied {
		if i >= len(f.Parameters) {
			break
		}
		bound = append(bound, fmt.Sprintf("%s = %s", f.Parameters[i], arg.Inspect()))
	}
	return fmt.Sprintf("(fn! %s [%s])", f.Body.Inspect(), strings.Join(bound, ", "))
}

// Unit is the absence of a value, returned by binding and
// side-effecting forms.
type Unit struct{}

func (u *Unit) Kind() Kind      { return KindUnit }
func (u *Unit) Inspect() string { return "void" }

var (
	True  = &Boolean{Value: true}
	False = &Boolean{Value: false}
	Void  = &Unit{}
)

// FromBool returns the shared Boolean for b.
func FromBool(b bool) *Boolean {
	if b {
		return True
	}
	return False
}

// Equal reports structural equality of two Values. Quoted wrappers
// compare by their wrapped value only against other Quoted values.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case *Symbol:
		bv, ok := b.(*Symbol)
		return ok && av.Name == bv.Name
	case *Text:
		bv, ok := b.(*Text)
		return ok && av.Value == bv.Value
	case *Number:
		bv, ok := b.(*Number)
		return ok && av.Value == bv.Value
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	case *Unit:
		_, ok := b.(*Unit)
		return ok
	case *Quoted:
		bv, ok := b.(*Quoted)
		return ok && Equal(av.Value, bv.Value)
	case *Sequence:
		bv, ok := b.(*Sequence)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case *Function:
		bv, ok := b.(*Function)
		if !ok || len(av.Parameters) != len(bv.Parameters) || len(av.Applied) != len(bv.Applied) {
			return false
		}
		for i := range av.Parameters {
			if av.Parameters[i] != bv.Parameters[i] {
				return false
			}
		}
		for i := range av.Applied {
			if !Equal(av.Applied[i], bv.Applied[i]) {
				return false
			}
		}
		return Equal(av.Body, bv.Body)
	}
	return false
}
