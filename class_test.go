package stone

import "testing"

// TestClassNewBindsFieldsAndMethods checks that a class's `.new` produces an
// Instance whose members are readable and whose methods see `this`.
func TestClassNewBindsFieldsAndMethods(t *testing.T) {
	prog := mustParse(t, `
class Position {
	def init(x, y) {
		this.x = x
		this.y = y
	}
	def sum() {
		this.x + this.y
	}
}
`)
	env := NewEnvironment(nil)
	ev := NewEvaluator()
	if _, err := ev.Evaluate(prog, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cls, ok := env.Get("Position")
	if !ok {
		t.Fatal("expected Position to be bound")
	}
	inst, err := cls.GetMember(ev, "new", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	init, err := inst.GetMember(ev, "init", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := init.Invoke(ev, []Value{NewInteger(3), NewInteger(4)}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum, err := inst.GetMember(ev, "sum", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	result, err := sum.Invoke(ev, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, _ := result.AsInteger(0); i != 7 {
		t.Errorf("wanted 7, got %d", i)
	}
}

// TestClassExtendsFlattensIntoSharedEnvironment checks that a subclass's
// `.new` reuses the very same Instance environment the superclass's `.new`
// produced, so members declared in either class body are visible from both.
func TestClassExtendsFlattensIntoSharedEnvironment(t *testing.T) {
	prog := mustParse(t, `
class Position {
	def init(x, y) {
		this.x = x
		this.y = y
	}
}
class Pos3D extends Position {
	def initZ(z) {
		this.z = z
	}
	def sum() {
		this.x + this.y + this.z
	}
}
`)
	env := NewEnvironment(nil)
	ev := NewEvaluator()
	if _, err := ev.Evaluate(prog, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cls, _ := env.Get("Pos3D")
	inst, err := cls.GetMember(ev, "new", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	init, _ := inst.GetMember(ev, "init", 0)
	if _, err := init.Invoke(ev, []Value{NewInteger(1), NewInteger(2)}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	initZ, _ := inst.GetMember(ev, "initZ", 0)
	if _, err := initZ.Invoke(ev, []Value{NewInteger(3)}, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum, _ := inst.GetMember(ev, "sum", 0)
	result, err := sum.Invoke(ev, nil, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, _ := result.AsInteger(0); i != 6 {
		t.Errorf("wanted 6, got %d", i)
	}
}

// TestInstanceGetMemberDoesNotSeeEnclosingScope checks that member access
// only sees the instance's own bindings, not the class's defining scope.
func TestInstanceGetMemberDoesNotSeeEnclosingScope(t *testing.T) {
	prog := mustParse(t, `
outer = 42
class Empty {
}
`)
	env := NewEnvironment(nil)
	ev := NewEvaluator()
	if _, err := ev.Evaluate(prog, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cls, _ := env.Get("Empty")
	inst, err := cls.GetMember(ev, "new", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := inst.GetMember(ev, "outer", 0); err == nil {
		t.Error("expected instance member access not to see the defining scope")
	}
}

// TestClassGetMemberUnknownIsError checks that accessing an undeclared class
// member (other than "new") fails instead of returning Null.
func TestClassGetMemberUnknownIsError(t *testing.T) {
	prog := mustParse(t, "class Empty {\n}")
	env := NewEnvironment(nil)
	ev := NewEvaluator()
	if _, err := ev.Evaluate(prog, env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cls, _ := env.Get("Empty")
	if _, err := cls.GetMember(ev, "nope", 0); err == nil {
		t.Error("expected an error for an unknown class member")
	}
}

// TestNewClassValueCycleIsRejected exercises the contains.Set visited-set
// guard directly against a hand-constructed cyclic Super chain, which
// ordinary Stone surface syntax cannot produce (superclass resolution is
// frozen at class-declaration time) but an embedder calling NewClassValue
// directly could.
func TestNewClassValueCycleIsRejected(t *testing.T) {
	env := NewEnvironment(nil)
	nodeA := NewClassDecl(1, "A", "B", NewCompound(1, nil))
	nodeB := NewClassDecl(1, "B", "A", NewCompound(1, nil))

	a := NewClassValue(nodeA, env, nil)
	b := NewClassValue(nodeB, env, a)
	a.Super = b // close the cycle by hand

	ev := NewEvaluator()
	if _, err := a.GetMember(ev, "new", 0); err == nil {
		t.Error("expected a cycle error")
	}
}
