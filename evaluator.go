package stone

// Evaluator walks an AST against an explicitly-passed Environment. It holds
// no state of its own beyond the current Go call stack — the Environment
// carries everything that varies between runs (§2: "The Evaluator owns no
// state beyond the current call stack").
type Evaluator struct{}

// NewEvaluator constructs an Evaluator. There is nothing to configure.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate runs prog against env, returning the value of its last statement
// (Null if prog is empty). If env is nil, a fresh empty top-level
// Environment is created.
func (ev *Evaluator) Evaluate(prog *Program, env *Environment) (Value, error) {
	if env == nil {
		env = NewEnvironment(nil)
	}
	result, err := ev.evalStatements(prog.Statements, env)
	if ret, ok := err.(*returnSignal); ok {
		return nil, NewEvaluateErrorf(ret.line, "return used outside of a function")
	}
	return result, err
}

// evalCompound evaluates a Compound's statements in env. Per §3, a compound
// block does not introduce its own scope: it shares env with its caller.
func (ev *Evaluator) evalCompound(c *Compound, env *Environment) (Value, error) {
	return ev.evalStatements(c.Statements, env)
}

func (ev *Evaluator) evalStatements(stmts []Statement, env *Environment) (Value, error) {
	var result Value = Null
	for _, s := range stmts {
		v, err := ev.evalStatement(s, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

func (ev *Evaluator) evalStatement(s Statement, env *Environment) (Value, error) {
	switch n := s.(type) {
	case *Compound:
		return ev.evalCompound(n, env)
	case *If:
		return ev.evalIf(n, env)
	case *While:
		return ev.evalWhile(n, env)
	case *Procedure:
		return ev.evalProcedure(n, env)
	case *ClassDecl:
		return ev.evalClassDecl(n, env)
	case *Return:
		return ev.evalReturn(n, env)
	case *ExprStatement:
		return ev.evalExpr(n.Expr, env)
	default:
		return nil, NewEvaluateErrorf(s.Line(), "internal error: unhandled statement %T", s)
	}
}

func (ev *Evaluator) evalIf(n *If, env *Environment) (Value, error) {
	cond, err := ev.evalExpr(n.Cond, env)
	if err != nil {
		return nil, err
	}
	i, err := cond.AsInteger(n.Cond.Line())
	if err != nil {
		return nil, err
	}
	if i != 0 {
		return ev.evalCompound(n.Then, env)
	}
	if n.Else != nil {
		return ev.evalStatement(n.Else, env)
	}
	return Null, nil
}

func (ev *Evaluator) evalWhile(n *While, env *Environment) (Value, error) {
	var result Value = Null
	for {
		cond, err := ev.evalExpr(n.Cond, env)
		if err != nil {
			return nil, err
		}
		i, err := cond.AsInteger(n.Cond.Line())
		if err != nil {
			return nil, err
		}
		if i == 0 {
			return result, nil
		}
		result, err = ev.evalCompound(n.Body, env)
		if err != nil {
			return nil, err
		}
	}
}

func (ev *Evaluator) evalProcedure(n *Procedure, env *Environment) (Value, error) {
	fn := NewUserFunction(n.Params, n.Body, env, n.Name)
	env.Put(n.Name, fn)
	return fn, nil
}

func (ev *Evaluator) evalClassDecl(n *ClassDecl, env *Environment) (Value, error) {
	var super *Class
	if n.Super != "" {
		v, ok := env.Get(n.Super)
		if !ok {
			return nil, NewEvaluateErrorf(n.Line(), "superclass %s is not defined", n.Super)
		}
		super, ok = v.(*Class)
		if !ok {
			return nil, NewEvaluateErrorf(n.Line(), "superclass %s is not a class", n.Super)
		}
	}
	cls := NewClassValue(n, env, super)
	env.Put(n.Name, cls)
	return cls, nil
}

func (ev *Evaluator) evalReturn(n *Return, env *Environment) (Value, error) {
	var v Value = Null
	if n.Value != nil {
		var err error
		v, err = ev.evalExpr(n.Value, env)
		if err != nil {
			return nil, err
		}
	}
	return nil, &returnSignal{value: v, line: n.Line()}
}

func (ev *Evaluator) evalExpr(e Expression, env *Environment) (Value, error) {
	switch n := e.(type) {
	case *IntegerLiteral:
		return NewInteger(n.Value), nil
	case *StringLiteral:
		return NewString(n.Value), nil
	case *Identifier:
		if v, ok := env.Get(n.Name); ok {
			return v, nil
		}
		return Null, nil
	case *ArrayLiteral:
		return ev.evalArrayLiteral(n, env)
	case *Closure:
		return NewUserFunction(n.Params, n.Body, env, ""), nil
	case *Unary:
		return ev.evalUnary(n, env)
	case *Binary:
		return ev.evalBinary(n, env)
	case *Assign:
		return ev.evalAssign(n, env)
	case *Call:
		return ev.evalCall(n, env)
	case *ArrayIndex:
		return ev.evalArrayIndex(n, env)
	case *MemberAccess:
		return ev.evalMemberAccess(n, env)
	default:
		return nil, NewEvaluateErrorf(e.Line(), "internal error: unhandled expression %T", e)
	}
}

func (ev *Evaluator) evalArrayLiteral(n *ArrayLiteral, env *Environment) (Value, error) {
	elems := make([]Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := ev.evalExpr(e, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return NewArray(elems), nil
}

func (ev *Evaluator) evalUnary(n *Unary, env *Environment) (Value, error) {
	operand, err := ev.evalExpr(n.Operand, env)
	if err != nil {
		return nil, err
	}
	i, err := operand.AsInteger(n.Line())
	if err != nil {
		return nil, err
	}
	return NewInteger(-i), nil
}

func (ev *Evaluator) evalBinary(n *Binary, env *Environment) (Value, error) {
	left, err := ev.evalExpr(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ev.evalExpr(n.Right, env)
	if err != nil {
		return nil, err
	}
	return ev.applyBinary(n.Op, left, right, n.Line())
}

func (ev *Evaluator) applyBinary(op TokenKind, left, right Value, line int) (Value, error) {
	switch op {
	case Plus:
		li, lok := left.(*Integer)
		ri, rok := right.(*Integer)
		if lok && rok {
			return NewInteger(li.Value + ri.Value), nil
		}
		ls, err := left.AsString(line)
		if err != nil {
			return nil, err
		}
		rs, err := right.AsString(line)
		if err != nil {
			return nil, err
		}
		return NewString(ls + rs), nil

	case Minus, Star, Slash, Percent:
		li, err := left.AsInteger(line)
		if err != nil {
			return nil, err
		}
		ri, err := right.AsInteger(line)
		if err != nil {
			return nil, err
		}
		switch op {
		case Minus:
			return NewInteger(li - ri), nil
		case Star:
			return NewInteger(li * ri), nil
		case Slash:
			if ri == 0 {
				return nil, NewEvaluateErrorf(line, "division by zero")
			}
			return NewInteger(li / ri), nil
		case Percent:
			if ri == 0 {
				return nil, NewEvaluateErrorf(line, "modulo by zero")
			}
			return NewInteger(li % ri), nil
		}

	case LessThan, LessEqual, GreaterThan, GreaterEqual:
		li, err := left.AsInteger(line)
		if err != nil {
			return nil, err
		}
		ri, err := right.AsInteger(line)
		if err != nil {
			return nil, err
		}
		var result bool
		switch op {
		case LessThan:
			result = li < ri
		case LessEqual:
			result = li <= ri
		case GreaterThan:
			result = li > ri
		case GreaterEqual:
			result = li >= ri
		}
		return NewInteger(boolToInt(result)), nil

	case Equal, NotEqual:
		eq, err := ev.valuesEqual(left, right, line)
		if err != nil {
			return nil, err
		}
		if op == NotEqual {
			eq = !eq
		}
		return NewInteger(boolToInt(eq)), nil
	}
	return nil, NewEvaluateErrorf(line, "internal error: unhandled operator %s", op)
}

// valuesEqual implements §4.7's `==`/`!=` rule: numeric comparison when both
// sides are Integer; string comparison (via AsString) when either side is a
// String; otherwise reference identity.
func (ev *Evaluator) valuesEqual(left, right Value, line int) (bool, error) {
	li, lok := left.(*Integer)
	ri, rok := right.(*Integer)
	if lok && rok {
		return li.Value == ri.Value, nil
	}
	_, lstr := left.(*String)
	_, rstr := right.(*String)
	if lstr || rstr {
		ls, err := left.AsString(line)
		if err != nil {
			return false, err
		}
		rs, err := right.AsString(line)
		if err != nil {
			return false, err
		}
		return ls == rs, nil
	}
	return left == right, nil
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (ev *Evaluator) evalAssign(n *Assign, env *Environment) (Value, error) {
	rhs, err := ev.evalExpr(n.Rhs, env)
	if err != nil {
		return nil, err
	}
	switch lhs := n.Lhs.(type) {
	case *Identifier:
		env.Set(lhs.Name, rhs)
	case *MemberAccess:
		operand, err := ev.evalExpr(lhs.Operand, env)
		if err != nil {
			return nil, err
		}
		if err := operand.SetMember(ev, lhs.Member, rhs, n.Line()); err != nil {
			return nil, err
		}
	case *ArrayIndex:
		operand, err := ev.evalExpr(lhs.Operand, env)
		if err != nil {
			return nil, err
		}
		index, err := ev.evalExpr(lhs.Index, env)
		if err != nil {
			return nil, err
		}
		if err := operand.SetIndexed(ev, index, rhs, n.Line()); err != nil {
			return nil, err
		}
	default:
		return nil, NewEvaluateErrorf(n.Line(), "invalid assignment target")
	}
	return rhs, nil
}

func (ev *Evaluator) evalCall(n *Call, env *Environment) (Value, error) {
	callee, err := ev.evalExpr(n.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(n.Args.Args))
	for i, a := range n.Args.Args {
		v, err := ev.evalExpr(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return callee.Invoke(ev, args, n.Line())
}

func (ev *Evaluator) evalArrayIndex(n *ArrayIndex, env *Environment) (Value, error) {
	operand, err := ev.evalExpr(n.Operand, env)
	if err != nil {
		return nil, err
	}
	index, err := ev.evalExpr(n.Index, env)
	if err != nil {
		return nil, err
	}
	return operand.GetIndexed(ev, index, n.Line())
}

func (ev *Evaluator) evalMemberAccess(n *MemberAccess, env *Environment) (Value, error) {
	operand, err := ev.evalExpr(n.Operand, env)
	if err != nil {
		return nil, err
	}
	return operand.GetMember(ev, n.Member, n.Line())
}
