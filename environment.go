package stone

// Environment is a lexical scope frame: a mapping from name to Value plus a
// parent pointer. Environments form a chain shared by reference among
// closures, classes, and instances derived from the same lexical region.
//
// The core is explicitly single-threaded (§5), so unlike the teacher's
// Object, Environment carries no lock.
type Environment struct {
	vars   map[string]Value
	parent *Environment
}

// NewEnvironment creates a fresh, empty Environment chained to parent. A nil
// parent makes this the root (top-level) environment.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]Value), parent: parent}
}

// Get looks up name along the parent chain, starting at this frame. It
// reports whether the name was bound anywhere in the chain; an absent name
// is the caller's cue to treat the reference as Null (see the Identifier case
// of Evaluator.evalExpr).
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Own looks up name in this frame only, without walking to the parent. This
// is what Instance.GetMember uses: member access must not fall through to
// the class's enclosing scope.
func (e *Environment) Own(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Put binds name in this frame unconditionally, shadowing any binding of the
// same name in an enclosing frame. Used by `def`, `class`, formal parameter
// binding, and class-body member declarations.
func (e *Environment) Put(name string, v Value) {
	e.vars[name] = v
}

// Set walks the chain looking for the nearest frame that already binds name
// and rebinds it there. If no frame binds it, Set falls back to Put in this
// frame, creating the binding. This is what plain assignment `x = e` uses.
func (e *Environment) Set(name string, v Value) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return
		}
	}
	e.Put(name, v)
}
