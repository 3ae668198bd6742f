// Package linker implements the Method Linker: a single pass over a
// Program that folds orphan `Methods <class> ... end` blocks into the
// ClassDef they extend.
//
// The pass keeps a position map from class name to its slot in the
// rewritten statement list, built while scanning definitions left to
// right and consulted when a Methods block is reached later in the
// same pass — a single left-to-right rewrite of the statement slice
// rather than a second resolution pass. Unknown-class and
// compound-target cases are reported as diagnostics.DiagnosticError
// rather than a panic, since the pass must accumulate an error and
// continue rather than abort the whole compile.
package linker

import (
	"fmt"
	"sort"

	"github.com/vinelang/vinec/internal/ast"
	"github.com/vinelang/vinec/internal/diagnostics"
)

// classConstructors names the VarDef initializers that mark a
// definition as a class. All three are treated identically by the
// pass: the constructor call is folded into the ClassDef regardless of
// which of the three spellings introduced it.
var classConstructors = map[string]bool{
	"Class":       true,
	"Inherit":     true,
	"Inheritable": true,
}

// Link runs the Method Linker over prog in place and returns the
// accumulated diagnostics. prog.Statements is rewritten to fold every
// resolvable Methods block into its ClassDef; unresolved ones are
// dropped from the output and reported in the returned Bag.
func Link(prog *ast.Program) *diagnostics.Bag {
	bag := &diagnostics.Bag{}

	// rootPosByName records, for each class seen so far, its index in
	// `out`.
	rootPosByName := map[string]int{}
	var out []ast.Statement

	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.VarDef:
			if call, ok := s.Value.(*ast.CallExpression); ok && call.Callee != nil && classConstructors[call.Callee.Name] {
				rootPosByName[s.Name.Name] = len(out)
				out = append(out, &ast.ClassDef{
					Token: s.Token,
					Name:  s.Name,
					Ctor:  call,
				})
				continue
			}
			out = append(out, s)

		case *ast.MethodsBlock:
			switch target := s.Target.(type) {
			case ast.SimpleTarget:
				pos, known := rootPosByName[target.Name.Name]
				if !known {
					bag.Add(noVarError(s, target.Name.Name, rootPosByName))
					continue
				}
				classDef := out[pos].(*ast.ClassDef)
				classDef.MethodsList = append(classDef.MethodsList, s)

			default:
				bag.Add(unimplementedTargetError(s))
			}

		default:
			out = append(out, s)
		}
	}

	prog.Statements = out
	return bag
}

func noVarError(block *ast.MethodsBlock, name string, known map[string]int) *diagnostics.DiagnosticError {
	candidates := make([]string, 0, len(known))
	for k := range known {
		candidates = append(candidates, k)
	}
	sort.Strings(candidates)

	d := diagnostics.NewError(diagnostics.NameError, block.GetToken(), diagnostics.Message(diagnostics.English, "no_var_message"))
	// The hint enumerates every known class name, not just the single
	// nearest match diagnostics.Suggest would pick — a Methods block
	// naming an unknown class is ambiguous enough that the full
	// candidate list is more useful.
	d.WithHint(fmt.Sprintf(diagnostics.Message(diagnostics.English, "no_var_hint"), name, joinCandidates(candidates)))
	return d
}

func unimplementedTargetError(block *ast.MethodsBlock) *diagnostics.DiagnosticError {
	return diagnostics.NewError(
		diagnostics.UnimplementedError,
		block.GetToken(),
		"Methods blocks naming a non-simple target (a generic instantiation or qualified path) are not yet supported",
	)
}

func joinCandidates(candidates []string) string {
	if len(candidates) == 0 {
		return "(none defined)"
	}
	out := candidates[0]
	for _, c := range candidates[1:] {
		out += ", " + c
	}
	return out
}

