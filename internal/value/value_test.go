package value

import (
	"errors"
	"testing"
)

func TestInspect(t *testing.T) {
	tests := []struct {
		name  string
		input Value
		want  string
	}{
		{"unit", Void, "void"},
		{"number", &Number{Value: 42}, "42"},
		{"negative number", &Number{Value: -7}, "-7"},
		{"boolean true", True, "true"},
		{"boolean false", False, "false"},
		{"symbol", &Symbol{Name: "max"}, "max"},
		{"text", &Text{Value: "hello"}, `"hello"`},
		{"text with escapes", &Text{Value: "a\nb"}, `"a\nb"`},
		{"empty sequence", &Sequence{}, "()"},
		{
			"sequence",
			&Sequence{Elements: []Value{&Symbol{Name: "+"}, &Number{Value: 1}, &Number{Value: 2}}},
			"(+ 1 2)",
		},
		{
			"quoted sequence",
			&Quoted{Value: &Sequence{Elements: []Value{&Number{Value: 1}}}},
			"'(1)",
		},
		{
			"double quoted",
			&Quoted{Value: &Quoted{Value: &Symbol{Name: "x"}}},
			"''x",
		},
		{
			"function without applied",
			&Function{
				Parameters: []string{"a", "b"},
				Body:       &Sequence{Elements: []Value{&Symbol{Name: "+"}, &Symbol{Name: "a"}, &Symbol{Name: "b"}}},
			},
			"(fn! (+ a b) [])",
		},
		{
			"curried function",
			&Function{
				Parameters: []string{"a0", "a1"},
				Body:       &Sequence{Elements: []Value{&Symbol{Name: "+"}, &Symbol{Name: "a0"}, &Symbol{Name: "a1"}}},
				Applied:    []Value{&Number{Value: 3}},
			},
			"(fn! (+ a0 a1) [a0 = 3])",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.Inspect(); got != tt.want {
				t.Errorf("Inspect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		input Value
		want  Kind
	}{
		{&Symbol{Name: "x"}, KindSymbol},
		{&Text{Value: "x"}, KindText},
		{&Number{Value: 1}, KindNumber},
		{True, KindBoolean},
		{&Sequence{}, KindSequence},
		{&Function{}, KindFunction},
		{Void, KindUnit},
		// A quote layer is transparent to the kind tag.
		{&Quoted{Value: &Number{Value: 1}}, KindNumber},
		{&Quoted{Value: &Quoted{Value: &Sequence{}}}, KindSequence},
	}

	for _, tt := range tests {
		if got := tt.input.Kind(); got != tt.want {
			t.Errorf("Kind(%s) = %q, want %q", tt.input.Inspect(), got, tt.want)
		}
	}
}

func TestCoercions(t *testing.T) {
	if n, err := AsNumber(&Number{Value: 3}); err != nil || n != 3 {
		t.Errorf("AsNumber = (%d, %v), want (3, nil)", n, err)
	}
	if b, err := AsBoolean(True); err != nil || !b {
		t.Errorf("AsBoolean = (%t, %v), want (true, nil)", b, err)
	}
	if s, err := AsText(&Text{Value: "hi"}); err != nil || s != "hi" {
		t.Errorf("AsText = (%q, %v), want (hi, nil)", s, err)
	}
	// Symbols coerce to text, the only cross-kind coercion.
	if s, err := AsText(&Symbol{Name: "hi"}); err != nil || s != "hi" {
		t.Errorf("AsText(symbol) = (%q, %v), want (hi, nil)", s, err)
	}
	if s, err := AsSymbol(&Symbol{Name: "x"}); err != nil || s != "x" {
		t.Errorf("AsSymbol = (%q, %v), want (x, nil)", s, err)
	}
	if els, err := AsSequence(&Sequence{Elements: []Value{Void}}); err != nil || len(els) != 1 {
		t.Errorf("AsSequence = (%v, %v), want 1 element", els, err)
	}
	if err := AsUnit(Void); err != nil {
		t.Errorf("AsUnit(Void) = %v, want nil", err)
	}
}

func TestCoercionMismatch(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
		got      Kind
	}{
		{"number from text", errOf(AsNumber(&Text{Value: "a"})), KindNumber, KindText},
		{"boolean from number", errOf(AsBoolean(&Number{Value: 1})), KindBoolean, KindNumber},
		{"text from number", errOf(AsText(&Number{Value: 1})), KindText, KindNumber},
		{"sequence from number", errOf(AsSequence(&Number{Value: 1})), KindSequence, KindNumber},
		{"symbol from text", errOf(AsSymbol(&Text{Value: "x"})), KindSymbol, KindText},
		{"unit from boolean", AsUnit(True), KindUnit, KindBoolean},
		// The mismatch reports the kind behind the quote layer.
		{"number from quoted list", errOf(AsNumber(&Quoted{Value: &Sequence{}})), KindNumber, KindSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m *Mismatch
			if !errors.As(tt.err, &m) {
				t.Fatalf("error = %v, want *Mismatch", tt.err)
			}
			if m.Expected != tt.expected || m.Got != tt.got {
				t.Errorf("Mismatch = {%s %s}, want {%s %s}", m.Expected, m.Got, tt.expected, tt.got)
			}
		})
	}
}

func errOf[T any](_ T, err error) error { return err }

func TestConcat(t *testing.T) {
	one := &Number{Value: 1}
	two := &Number{Value: 2}
	three := &Number{Value: 3}

	tests := []struct {
		name  string
		left  Value
		right Value
		want  Value
	}{
		{
			"sequence and sequence",
			&Sequence{Elements: []Value{one, two}},
			&Sequence{Elements: []Value{three}},
			&Sequence{Elements: []Value{one, two, three}},
		},
		{
			"sequence and scalar",
			&Sequence{Elements: []Value{one}},
			two,
			&Sequence{Elements: []Value{one, two}},
		},
		{
			"scalar and sequence",
			one,
			&Sequence{Elements: []Value{two}},
			&Sequence{Elements: []Value{one, two}},
		},
		{
			"scalar and scalar",
			one,
			two,
			&Sequence{Elements: []Value{one, two}},
		},
		{
			"text scalars",
			&Text{Value: "a"},
			&Text{Value: "b"},
			&Sequence{Elements: []Value{&Text{Value: "a"}, &Text{Value: "b"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Concat(tt.left, tt.right)
			if !ok {
				t.Fatalf("Concat failed, want %s", tt.want.Inspect())
			}
			if !Equal(got, tt.want) {
				t.Errorf("Concat = %s, want %s", got.Inspect(), tt.want.Inspect())
			}
		})
	}
}

func TestConcatRejectsUnit(t *testing.T) {
	if _, ok := Concat(Void, &Number{Value: 1}); ok {
		t.Error("Concat(void, 1) succeeded, want failure")
	}
	if _, ok := Concat(&Number{Value: 1}, Void); ok {
		t.Error("Concat(1, void) succeeded, want failure")
	}
}

func TestConcatDoesNotMutateOperands(t *testing.T) {
	left := &Sequence{Elements: []Value{&Number{Value: 1}}}
	right := &Sequence{Elements: []Value{&Number{Value: 2}}}
	got, ok := Concat(left, right)
	if !ok {
		t.Fatal("Concat failed")
	}
	seq := got.(*Sequence)
	seq.Elements[0] = &Number{Value: 99}
	if left.Elements[0].(*Number).Value != 1 {
		t.Error("Concat shares backing storage with its left operand")
	}
}

func TestEqual(t *testing.T) {
	a := &Sequence{Elements: []Value{&Number{Value: 1}, &Text{Value: "x"}}}
	b := &Sequence{Elements: []Value{&Number{Value: 1}, &Text{Value: "x"}}}
	if !Equal(a, b) {
		t.Error("structurally identical sequences compare unequal")
	}
	if Equal(a, &Sequence{Elements: []Value{&Number{Value: 1}}}) {
		t.Error("sequences of different length compare equal")
	}
	if Equal(&Number{Value: 1}, True) {
		t.Error("number compares equal to boolean")
	}
	if !Equal(&Quoted{Value: a}, &Quoted{Value: b}) {
		t.Error("quoted values compare unequal")
	}
	if Equal(&Quoted{Value: a}, a) {
		t.Error("quoted value compares equal to its unquoted form")
	}
}
