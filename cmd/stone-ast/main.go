// Command stone-ast is the debug AST pretty-printer: an external
// collaborator that parses its argument and writes an indented
// S-expression rendering of the resulting Program, one node per line
// tagged with its source line number.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Ryooooooga/stone"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: stone-ast <file>")
		os.Exit(1)
	}
	src, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	prog, err := stone.NewParser(stone.NewLexer(string(src))).Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, s := range prog.Statements {
		printNode(s, 0)
	}
}

func printNode(n stone.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *stone.If:
		fmt.Printf("%s(if @%d\n", indent, v.Line())
		printNode(v.Cond, depth+1)
		printNode(v.Then, depth+1)
		if v.Else != nil {
			printNode(v.Else, depth+1)
		}
		fmt.Printf("%s)\n", indent)
	case *stone.While:
		fmt.Printf("%s(while @%d\n", indent, v.Line())
		printNode(v.Cond, depth+1)
		printNode(v.Body, depth+1)
		fmt.Printf("%s)\n", indent)
	case *stone.Compound:
		fmt.Printf("%s(compound @%d\n", indent, v.Line())
		for _, s := range v.Statements {
			printNode(s, depth+1)
		}
		fmt.Printf("%s)\n", indent)
	case *stone.Procedure:
		fmt.Printf("%s(def %s @%d\n", indent, v.Name, v.Line())
		printNode(v.Body, depth+1)
		fmt.Printf("%s)\n", indent)
	case *stone.ClassDecl:
		super := v.Super
		if super == "" {
			super = "-"
		}
		fmt.Printf("%s(class %s extends %s @%d\n", indent, v.Name, super, v.Line())
		printNode(v.Body, depth+1)
		fmt.Printf("%s)\n", indent)
	case *stone.Return:
		fmt.Printf("%s(return @%d\n", indent, v.Line())
		if v.Value != nil {
			printNode(v.Value, depth+1)
		}
		fmt.Printf("%s)\n", indent)
	case *stone.ExprStatement:
		printNode(v.Expr, depth)
	case *stone.Assign:
		fmt.Printf("%s(= @%d\n", indent, v.Line())
		printNode(v.Lhs, depth+1)
		printNode(v.Rhs, depth+1)
		fmt.Printf("%s)\n", indent)
	case *stone.Binary:
		fmt.Printf("%s(binop @%d\n", indent, v.Line())
		printNode(v.Left, depth+1)
		printNode(v.Right, depth+1)
		fmt.Printf("%s)\n", indent)
	case *stone.Unary:
		fmt.Printf("%s(neg @%d\n", indent, v.Line())
		printNode(v.Operand, depth+1)
		fmt.Printf("%s)\n", indent)
	case *stone.Call:
		fmt.Printf("%s(call @%d\n", indent, v.Line())
		printNode(v.Callee, depth+1)
		for _, a := range v.Args.Args {
			printNode(a, depth+1)
		}
		fmt.Printf("%s)\n", indent)
	case *stone.ArrayIndex:
		fmt.Printf("%s(index @%d\n", indent, v.Line())
		printNode(v.Operand, depth+1)
		printNode(v.Index, depth+1)
		fmt.Printf("%s)\n", indent)
	case *stone.MemberAccess:
		fmt.Printf("%s(member %s @%d\n", indent, v.Member, v.Line())
		printNode(v.Operand, depth+1)
		fmt.Printf("%s)\n", indent)
	case *stone.Closure:
		fmt.Printf("%s(fun @%d\n", indent, v.Line())
		printNode(v.Body, depth+1)
		fmt.Printf("%s)\n", indent)
	case *stone.ArrayLiteral:
		fmt.Printf("%s(array @%d\n", indent, v.Line())
		for _, e := range v.Elements {
			printNode(e, depth+1)
		}
		fmt.Printf("%s)\n", indent)
	case *stone.Identifier:
		fmt.Printf("%s(id %s @%d)\n", indent, v.Name, v.Line())
	case *stone.IntegerLiteral:
		fmt.Printf("%s(int %d @%d)\n", indent, v.Value, v.Line())
	case *stone.StringLiteral:
		fmt.Printf("%s(str %q @%d)\n", indent, v.Value, v.Line())
	default:
		fmt.Printf("%s(? @%d)\n", indent, n.Line())
	}
}
