package stone

import "fmt"

// UserFunction is a guest-language closure: a parameter list and body taken
// from the AST, paired with the Environment captured at definition time (by
// `def`, by a `fun` Closure expression, or implicitly by a method in a
// Class's body).
type UserFunction struct {
	failDefaults
	Params  *ParameterList
	Body    *Compound
	Capture *Environment
	// Name is used only for diagnostics; it is "" for anonymous closures.
	Name string
}

// NewUserFunction constructs a closure capturing env.
func NewUserFunction(params *ParameterList, body *Compound, env *Environment, name string) *UserFunction {
	return &UserFunction{failDefaults{typeName: "Function"}, params, body, env, name}
}

func (f *UserFunction) AsString(line int) (string, error) {
	if f.Name != "" {
		return fmt.Sprintf("<function %s>", f.Name), nil
	}
	return "<function>", nil
}

// Invoke binds args by position into a fresh Environment chained to the
// captured environment, then evaluates the body there. Arity mismatch is a
// runtime error. A `return` inside the body unwinds to here (see
// returnSignal below) rather than propagating further.
func (f *UserFunction) Invoke(ev *Evaluator, args []Value, line int) (Value, error) {
	if len(args) != len(f.Params.Params) {
		return nil, NewEvaluateErrorf(line, "function %s expects %d argument(s), got %d", f.displayName(), len(f.Params.Params), len(args))
	}
	callEnv := NewEnvironment(f.Capture)
	for i, param := range f.Params.Params {
		callEnv.Put(param.Name, args[i])
	}
	result, err := ev.evalCompound(f.Body, callEnv)
	if ret, ok := err.(*returnSignal); ok {
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (f *UserFunction) displayName() string {
	if f.Name != "" {
		return f.Name
	}
	return "<anonymous>"
}

// HostFunc is the signature a native (host-provided) callable must satisfy
// to be wrapped as a HostFunction Value. Registering such a function into
// the top-level Environment is the embedder's job (§1, §6) — the core only
// defines the wrapper type.
type HostFunc func(ev *Evaluator, args []Value, line int) (Value, error)

// HostFunction wraps a Go function so it can be called from guest code like
// any other callable.
type HostFunction struct {
	failDefaults
	Name string
	Fn   HostFunc
}

// NewHostFunction wraps fn as a callable guest-visible Value named name.
func NewHostFunction(name string, fn HostFunc) *HostFunction {
	return &HostFunction{failDefaults{typeName: "Function"}, name, fn}
}

func (f *HostFunction) AsString(line int) (string, error) {
	return fmt.Sprintf("<native function %s>", f.Name), nil
}

func (f *HostFunction) Invoke(ev *Evaluator, args []Value, line int) (Value, error) {
	return f.Fn(ev, args, line)
}

// returnSignal is the sentinel "error" a `return` statement raises to unwind
// to the nearest enclosing UserFunction.Invoke. It is never surfaced to an
// embedder: Evaluate treats an escaping returnSignal (a `return` outside any
// function) as an ordinary EvaluateError.
type returnSignal struct {
	value Value
	line  int
}

func (r *returnSignal) Error() string {
	return fmt.Sprintf("%d: return used outside of a function", r.line)
}
