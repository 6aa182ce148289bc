package stone

import (
	"fmt"
	"reflect"

	"github.com/zephyrtronium/contains"
)

// Class is a definition value manufacturing Instances via GetMember("new").
// It references the Class AST node, the Environment it was declared in
// (where free names in its body resolve), and an optional superclass.
type Class struct {
	failDefaults
	Node  *ClassDecl
	Env   *Environment
	Super *Class
}

// NewClassValue constructs a Class Value from its AST node, defining
// environment, and resolved superclass (nil if none).
func NewClassValue(node *ClassDecl, env *Environment, super *Class) *Class {
	return &Class{failDefaults{typeName: "Class"}, node, env, super}
}

func (c *Class) AsString(line int) (string, error) {
	return fmt.Sprintf("[class %s]", c.Node.Name), nil
}

func (c *Class) GetMember(ev *Evaluator, name string, line int) (Value, error) {
	if name == "new" {
		visited := contains.Set{}
		return c.newInstance(ev, line, &visited)
	}
	return nil, NewEvaluateErrorf(line, "class %s has no member %q", c.Node.Name, name)
}

// newInstance implements §4.5's Class.GetMember("new") algorithm: if there
// is a superclass, its Instance (and, crucially, its environment) is
// obtained first and reused as this class's initialization scope; otherwise
// a fresh Instance is created with this class's defining environment as
// parent and `this` bound to itself. Either way, this class's body is then
// evaluated against that Instance's environment.
//
// visited guards against a cyclic `extends` chain: without it, a cycle
// would recurse until the Go stack overflows instead of failing cleanly.
func (c *Class) newInstance(ev *Evaluator, line int, visited *contains.Set) (*Instance, error) {
	id := reflect.ValueOf(c).Pointer()
	if !visited.Add(id) {
		return nil, NewEvaluateErrorf(line, "cyclic class hierarchy involving %s", c.Node.Name)
	}

	var inst *Instance
	if c.Super != nil {
		base, err := c.Super.newInstance(ev, line, visited)
		if err != nil {
			return nil, err
		}
		inst = base
	} else {
		env := NewEnvironment(c.Env)
		inst = NewInstance(env)
		env.Put("this", inst)
	}

	if _, err := ev.evalCompound(c.Node.Body, inst.Env); err != nil {
		return nil, err
	}
	return inst, nil
}

// Instance is a Value whose state is a private Environment; member access
// reads and writes that Environment.
type Instance struct {
	failDefaults
	Env *Environment
}

// NewInstance wraps env as an Instance.
func NewInstance(env *Environment) *Instance {
	return &Instance{failDefaults{typeName: "Instance"}, env}
}

// GetMember looks up name in the instance's own frame only (§4.5: falling
// through to the parent would expose the class's enclosing scope).
func (i *Instance) GetMember(ev *Evaluator, name string, line int) (Value, error) {
	if v, ok := i.Env.Own(name); ok {
		return v, nil
	}
	return nil, NewEvaluateErrorf(line, "instance has no member %q", name)
}

// SetMember binds name in the instance's own frame unconditionally (§4.5's
// "env-put"), regardless of whether the name is already bound elsewhere in
// the environment chain.
func (i *Instance) SetMember(ev *Evaluator, name string, v Value, line int) error {
	i.Env.Put(name, v)
	return nil
}
