package value

import "fmt"

// Mismatch reports a failed coercion between a Value and a native
// type. Callers wrap it with positional context before surfacing it.
type Mismatch struct {
	Expected Kind
	Got      Kind
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("expected `%s`, got `%s`", m.Expected, m.Got)
}

// AsNumber unwraps a Number.
func AsNumber(v Value) (int64, error) {
	if n, ok := v.(*Number); ok {
		return n.Value, nil
	}
	return 0, &Mismatch{Expected: KindNumber, Got: v.Kind()}
}

// AsBoolean unwraps a Boolean. No truthy coercion of other kinds.
func AsBoolean(v Value) (bool, error) {
	if b, ok := v.(*Boolean); ok {
		return b.Value, nil
	}
	return false, &Mismatch{Expected: KindBoolean, Got: v.Kind()}
}

// AsText unwraps a Text. Symbols coerce to their name; text and
// symbols are the only mutually coercible kinds.
func AsText(v Value) (string, error) {
	switch t := v.(type) {
	case *Text:
		return t.Value, nil
	case *Symbol:
		return t.Name, nil
	}
	return "", &Mismatch{Expected: KindText, Got: v.Kind()}
}

// AsSymbol unwraps a Symbol name.
func AsSymbol(v Value) (string, error) {
	if s, ok := v.(*Symbol); ok {
		return s.Name, nil
	}
	return "", &Mismatch{Expected: KindSymbol, Got: v.Kind()}
}

// AsSequence unwraps the elements of a Sequence.
func AsSequence(v Value) ([]Value, error) {
	if s, ok := v.(*Sequence); ok {
		return s.Elements, nil
	}
	return nil, &Mismatch{Expected: KindSequence, Got: v.Kind()}
}

// AsUnit checks for the absence of a value.
func AsUnit(v Value) error {
	if _, ok := v.(*Unit); ok {
		return nil
	}
	return &Mismatch{Expected: KindUnit, Got: v.Kind()}
}

// Concat combines two values under the sequence-building rules:
// two sequences concatenate, a scalar appends or prepends to a
// sequence, and two scalars form a new two-element sequence. Unit has
// no element representation, so any Unit operand is rejected.
func Concat(left, right Value) (Value, bool) {
	if left.Kind() == KindUnit || right.Kind() == KindUnit {
		return nil, false
	}
	ls, lok := left.(*Sequence)
	rs, rok := right.(*Sequence)
	switch {
	case lok && rok:
		out := make([]Value, 0, len(ls.Elements)+len(rs.Elements))
		out = append(out, ls.Elements...)
		out = append(out, rs.Elements...)
		return &Sequence{Elements: out}, true
	case lok:
		out := make([]Value, 0, len(ls.Elements)+1)
		out = append(out, ls.Elements...)
		out = append(out, right)
		return &Sequence{Elements: out}, true
	case rok:
		out := make([]Value, 0, len(rs.Elements)+1)
		out = append(out, left)
		out = append(out, rs.Elements...)
		return &Sequence{Elements: out}, true
	default:
		return &Sequence{Elements: []Value{left, right}}, true
	}
}
