// Command stone is the process entry point for the Stone interpreter: it
// feeds source text to the core package and prints the result. It is one of
// the external collaborators the core package itself never imports (no
// os, no bufio) — see SPEC_FULL.md §1.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/Ryooooooga/stone"
)

func main() {
	env := stone.NewEnvironment(nil)
	registerBuiltins(env)

	if len(os.Args) > 1 {
		runFile(env, os.Args[1])
		return
	}
	runREPL(env)
}

func runFile(env *stone.Environment, path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(env, string(src)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runREPL(env *stone.Environment) {
	stdin := bufio.NewScanner(os.Stdin)
	fmt.Print("stone> ")
	for stdin.Scan() {
		if err := run(env, stdin.Text()); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Print("stone> ")
	}
	fmt.Println()
}

func run(env *stone.Environment, src string) error {
	lex := stone.NewLexer(src)
	parser := stone.NewParser(lex)
	prog, err := parser.Parse()
	if err != nil {
		return err
	}
	ev := stone.NewEvaluator()
	result, err := ev.Evaluate(prog, env)
	if err != nil {
		return err
	}
	if s, err := result.AsString(0); err == nil {
		fmt.Println(s)
	}
	return nil
}

// registerBuiltins puts the host-provided callables an embedder chooses to
// expose into the top-level Environment before evaluation (§6.4). The core
// never does this itself.
func registerBuiltins(env *stone.Environment) {
	env.Put("print", stone.NewHostFunction("print", func(ev *stone.Evaluator, args []stone.Value, line int) (stone.Value, error) {
		for i, a := range args {
			if i > 0 {
				fmt.Print(" ")
			}
			s, err := a.AsString(line)
			if err != nil {
				return nil, err
			}
			fmt.Print(s)
		}
		fmt.Println()
		return stone.Null, nil
	}))
}
