package stone

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// A Value is a Stone runtime value. Every variant implements the full
// capability surface; variants that don't support an operation get it from
// the embedded failDefaults, which reports the failure as an *EvaluateError.
//
// This replaces the original implementation's virtual-dispatch class
// hierarchy with a tagged sum: each concrete type embeds failDefaults for
// the operations it doesn't support and overrides the ones it does.
type Value interface {
	AsInteger(line int) (int32, error)
	AsString(line int) (string, error)
	Invoke(ev *Evaluator, args []Value, line int) (Value, error)
	GetMember(ev *Evaluator, name string, line int) (Value, error)
	SetMember(ev *Evaluator, name string, v Value, line int) error
	GetIndexed(ev *Evaluator, index Value, line int) (Value, error)
	SetIndexed(ev *Evaluator, index Value, v Value, line int) error

	// TypeName names the variant for error messages ("Integer", "Array", …).
	TypeName() string
}

// failDefaults supplies the uniform "this operation is unsupported" behavior
// described in §4.5's capability table. Concrete Value types embed it and
// override only the operations they actually support.
type failDefaults struct {
	typeName string
}

func (f failDefaults) TypeName() string { return f.typeName }

func (f failDefaults) AsInteger(line int) (int32, error) {
	return 0, NewEvaluateErrorf(line, "%s cannot be used as an integer", f.typeName)
}

func (f failDefaults) AsString(line int) (string, error) {
	return "", NewEvaluateErrorf(line, "%s cannot be used as a string", f.typeName)
}

func (f failDefaults) Invoke(ev *Evaluator, args []Value, line int) (Value, error) {
	return nil, NewEvaluateErrorf(line, "%s is not callable", f.typeName)
}

func (f failDefaults) GetMember(ev *Evaluator, name string, line int) (Value, error) {
	return nil, NewEvaluateErrorf(line, "%s has no member %q", f.typeName, name)
}

func (f failDefaults) SetMember(ev *Evaluator, name string, v Value, line int) error {
	return NewEvaluateErrorf(line, "cannot set member %q on %s", name, f.typeName)
}

func (f failDefaults) GetIndexed(ev *Evaluator, index Value, line int) (Value, error) {
	return nil, NewEvaluateErrorf(line, "%s is not indexable", f.typeName)
}

func (f failDefaults) SetIndexed(ev *Evaluator, index Value, v Value, line int) error {
	return NewEvaluateErrorf(line, "%s is not indexable", f.typeName)
}

// --- Null ---

// nullValue is the value of an unbound identifier reference and of a
// zero-iteration while loop. Any coercion on it fails like any other
// unsupported-capability access.
type nullValue struct {
	failDefaults
}

// Null is the single shared null Value.
var Null Value = &nullValue{failDefaults{typeName: "Null"}}

// --- Integer ---

// Integer is a 32-bit signed integer value.
type Integer struct {
	failDefaults
	Value int32
}

// NewInteger constructs an Integer value.
func NewInteger(v int32) *Integer {
	return &Integer{failDefaults{typeName: "Integer"}, v}
}

func (i *Integer) AsInteger(line int) (int32, error) { return i.Value, nil }
func (i *Integer) AsString(line int) (string, error) { return strconv.FormatInt(int64(i.Value), 10), nil }

// --- String ---

// String is an immutable string value. Constructed text is normalized to
// Unicode NFC so that `==`/`!=` (which compare AsString views, per §4.7) are
// not fooled by source text using different representations of the same
// visible string.
type String struct {
	failDefaults
	Value string
}

// NewString constructs a String value, normalizing v to NFC.
func NewString(v string) *String {
	return &String{failDefaults{typeName: "String"}, norm.NFC.String(v)}
}

func (s *String) AsString(line int) (string, error) { return s.Value, nil }

// --- Array ---

// Array is an ordered, mutable sequence of Values.
type Array struct {
	failDefaults
	Elements []Value
}

// NewArray constructs an Array from the given elements (not copied).
func NewArray(elements []Value) *Array {
	return &Array{failDefaults{typeName: "Array"}, elements}
}

func (a *Array) AsString(line int) (string, error) {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		s, err := e.AsString(line)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

func (a *Array) GetIndexed(ev *Evaluator, index Value, line int) (Value, error) {
	i, err := index.AsInteger(line)
	if err != nil {
		return nil, err
	}
	if i < 0 || int(i) >= len(a.Elements) {
		return nil, NewEvaluateErrorf(line, "array index %d out of bounds (length %d)", i, len(a.Elements))
	}
	return a.Elements[i], nil
}

func (a *Array) SetIndexed(ev *Evaluator, index Value, v Value, line int) error {
	i, err := index.AsInteger(line)
	if err != nil {
		return err
	}
	if i < 0 || int(i) >= len(a.Elements) {
		return NewEvaluateErrorf(line, "array index %d out of bounds (length %d)", i, len(a.Elements))
	}
	a.Elements[i] = v
	return nil
}

// valueString is a small helper used by error messages that want a value's
// AsString view but must fall back gracefully when that fails.
func valueString(ev *Evaluator, v Value, line int) string {
	s, err := v.AsString(line)
	if err != nil {
		return fmt.Sprintf("<%s>", v.TypeName())
	}
	return s
}
