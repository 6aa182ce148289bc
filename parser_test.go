package stone

import "testing"

// TestParsePrecedence checks that binary(min) builds the expected left/right
// nesting for mixed-precedence expressions without parentheses.
func TestParsePrecedence(t *testing.T) {
	cases := map[string]struct {
		src  string
		want string // rendered by a small recursive Binary/Unary walk below
	}{
		"MulBeforeAdd":    {"1 + 2 * 3", "(1 + (2 * 3))"},
		"AddLeftAssoc":    {"1 - 2 - 3", "((1 - 2) - 3)"},
		"Comparison":      {"1 + 2 < 3 * 4", "((1 + 2) < (3 * 4))"},
		"EqualityLowest":  {"1 < 2 == 3 < 4", "((1 < 2) == (3 < 4))"},
		"UnaryBindsTight": {"-1 + 2", "((-1) + 2)"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			prog, err := NewParser(NewLexer(c.src)).Parse()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(prog.Statements) != 1 {
				t.Fatalf("wanted 1 statement, got %d", len(prog.Statements))
			}
			stmt, ok := prog.Statements[0].(*ExprStatement)
			if !ok {
				t.Fatalf("wanted *ExprStatement, got %T", prog.Statements[0])
			}
			got := renderExpr(stmt.Expr)
			if got != c.want {
				t.Errorf("wanted %s, got %s", c.want, got)
			}
		})
	}
}

func renderExpr(e Expression) string {
	switch n := e.(type) {
	case *IntegerLiteral:
		return itoa32(n.Value)
	case *Identifier:
		return n.Name
	case *Unary:
		return "(-" + renderExpr(n.Operand) + ")"
	case *Binary:
		return "(" + renderExpr(n.Left) + " " + n.Op.String() + " " + renderExpr(n.Right) + ")"
	case *Assign:
		return "(" + renderExpr(n.Lhs) + " = " + renderExpr(n.Rhs) + ")"
	default:
		return "?"
	}
}

func itoa32(v int32) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

// TestParseAssignmentRightAssociative checks that `a = b = c` parses as
// `a = (b = c)`, not `(a = b) = c`.
func TestParseAssignmentRightAssociative(t *testing.T) {
	prog, err := NewParser(NewLexer("a = b = 1")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt := prog.Statements[0].(*ExprStatement)
	assign, ok := stmt.Expr.(*Assign)
	if !ok {
		t.Fatalf("wanted *Assign, got %T", stmt.Expr)
	}
	if _, ok := assign.Lhs.(*Identifier); !ok {
		t.Fatalf("wanted lhs Identifier, got %T", assign.Lhs)
	}
	if _, ok := assign.Rhs.(*Assign); !ok {
		t.Fatalf("wanted rhs nested Assign, got %T", assign.Rhs)
	}
}

// TestParseAssignmentToNonAssignableLHSStillParses checks that `1 = 2`-shaped
// expressions parse successfully: assignability of the LHS is an
// Evaluator-time concern (see TestEvaluateAssignmentToNonAssignableLHSFails
// in evaluator_test.go), not a parser-time one.
func TestParseAssignmentToNonAssignableLHSStillParses(t *testing.T) {
	prog, err := NewParser(NewLexer("1 = 2")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt := prog.Statements[0].(*ExprStatement)
	if _, ok := stmt.Expr.(*Assign); !ok {
		t.Fatalf("wanted *Assign, got %T", stmt.Expr)
	}
}

// TestParsePostfixChaining checks call/member/index chaining composes
// left-to-right: a.b(1)[2] reads as ((a.b)(1))[2].
func TestParsePostfixChaining(t *testing.T) {
	prog, err := NewParser(NewLexer("a.b(1)[2]")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt := prog.Statements[0].(*ExprStatement)
	index, ok := stmt.Expr.(*ArrayIndex)
	if !ok {
		t.Fatalf("wanted *ArrayIndex at the top, got %T", stmt.Expr)
	}
	call, ok := index.Operand.(*Call)
	if !ok {
		t.Fatalf("wanted *Call under the index, got %T", index.Operand)
	}
	if _, ok := call.Callee.(*MemberAccess); !ok {
		t.Fatalf("wanted *MemberAccess callee, got %T", call.Callee)
	}
}

// TestParseIfElseIfChain checks that `else if` nests as a Statement chain
// rather than requiring its own compound block.
func TestParseIfElseIfChain(t *testing.T) {
	prog, err := NewParser(NewLexer("if a {1} else if b {2} else {3}")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	top, ok := prog.Statements[0].(*If)
	if !ok {
		t.Fatalf("wanted *If, got %T", prog.Statements[0])
	}
	mid, ok := top.Else.(*If)
	if !ok {
		t.Fatalf("wanted nested *If in Else, got %T", top.Else)
	}
	if _, ok := mid.Else.(*Compound); !ok {
		t.Fatalf("wanted *Compound as the final else, got %T", mid.Else)
	}
}

// TestParseClassExtends checks class/extends parses into a ClassDecl with
// Super populated.
func TestParseClassExtends(t *testing.T) {
	prog, err := NewParser(NewLexer("class B extends A {\n}")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decl, ok := prog.Statements[0].(*ClassDecl)
	if !ok {
		t.Fatalf("wanted *ClassDecl, got %T", prog.Statements[0])
	}
	if decl.Name != "B" || decl.Super != "A" {
		t.Errorf("wanted B extends A, got %s extends %q", decl.Name, decl.Super)
	}
}

// TestParseEmptyStatementsAreDropped checks that stray separators between
// statements don't produce nil/empty AST nodes.
func TestParseEmptyStatementsAreDropped(t *testing.T) {
	prog, err := NewParser(NewLexer(";;1;;2;;")).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("wanted 2 statements, got %d", len(prog.Statements))
	}
}

// TestParseUnexpectedTokenReportsLine checks that a ParseError carries the
// line on which the bad token occurred.
func TestParseUnexpectedTokenReportsLine(t *testing.T) {
	_, err := NewParser(NewLexer("1\n2\n)")).Parse()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("wanted *ParseError, got %T", err)
	}
	if perr.Line != 3 {
		t.Errorf("wanted line 3, got %d", perr.Line)
	}
}
