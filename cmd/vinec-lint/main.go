// Command vinec-lint runs the Method Linker over a pre-parsed program
// description and reports its diagnostics, colorized when stdout is a
// terminal. Lexing and parsing real .vine source are out of scope for
// this module, so the input here is a minimal already-parsed fixture
// format (one class-or-methods-block per line) rather than surface
// syntax — this command exists to exercise internal/linker and
// github.com/mattn/go-isatty end to end, picking colorized vs. plain
// rendering the way a CLI entry point typically does.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/vinelang/vinec/internal/ast"
	"github.com/vinelang/vinec/internal/linker"
	"github.com/vinelang/vinec/internal/token"
)

// Fixture lines look like:
//
//	class Shape
//	methods Shape
//	methods Unknown
//
// "class X" becomes a VarDef whose Value is a Class(...) call; "methods
// X" becomes a MethodsBlock naming X as a SimpleTarget.
func parseFixture(r *bufio.Scanner) *ast.Program {
	prog := &ast.Program{}
	for r.Scan() {
		line := strings.TrimSpace(r.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		name := &ast.Identifier{Token: token.Token{Lexeme: fields[1]}, Name: fields[1]}
		switch fields[0] {
		case "class":
			prog.Statements = append(prog.Statements, &ast.VarDef{
				Token: name.Token,
				Name:  name,
				Value: &ast.CallExpression{Callee: &ast.Identifier{Name: "Class"}},
			})
		case "methods":
			prog.Statements = append(prog.Statements, &ast.MethodsBlock{
				Token:  name.Token,
				Target: ast.SimpleTarget{Name: name},
			})
		}
	}
	return prog
}

func main() {
	prog := parseFixture(bufio.NewScanner(os.Stdin))
	bag := linker.Link(prog)

	colorize := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	for _, d := range bag.Errors {
		printDiagnostic(d.Error(), colorize, "31")
	}
	for _, d := range bag.Warnings {
		printDiagnostic(d.Error(), colorize, "33")
	}

	fmt.Printf("%d class(es) linked, %d error(s), %d warning(s)\n",
		countClassDefs(prog), len(bag.Errors), len(bag.Warnings))

	if bag.Failed() {
		os.Exit(1)
	}
}

func printDiagnostic(msg string, colorize bool, ansiCode string) {
	if !colorize {
		fmt.Println(msg)
		return
	}
	fmt.Printf("\x1b[%sm%s\x1b[0m\n", ansiCode, msg)
}

func countClassDefs(prog *ast.Program) int {
	n := 0
	for _, s := range prog.Statements {
		if _, ok := s.(*ast.ClassDef); ok {
			n++
		}
	}
	return n
}
