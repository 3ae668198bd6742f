package linker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vinelang/vinec/internal/ast"
	"github.com/vinelang/vinec/internal/diagnostics"
	"github.com/vinelang/vinec/internal/token"
)

func ident(name string) *ast.Identifier {
	return &ast.Identifier{Token: token.Token{Lexeme: name}, Name: name}
}

func classDefStmt(name string) *ast.VarDef {
	return &ast.VarDef{
		Token: token.Token{Lexeme: name},
		Name:  ident(name),
		Value: &ast.CallExpression{Callee: ident("Class")},
	}
}

func methodsBlock(target string) *ast.MethodsBlock {
	return &ast.MethodsBlock{
		Token:  token.Token{Lexeme: "Methods"},
		Target: ast.SimpleTarget{Name: ident(target)},
	}
}

func TestLinkFoldsMethodsIntoMatchingClassDef(t *testing.T) {
	prog := &ast.Program{
		Statements: []ast.Statement{
			classDefStmt("Shape"),
			methodsBlock("Shape"),
		},
	}

	bag := Link(prog)

	require.False(t, bag.Failed())
	require.Len(t, prog.Statements, 1)
	cd, ok := prog.Statements[0].(*ast.ClassDef)
	require.True(t, ok, "expected the VarDef to have been folded into a ClassDef")
	require.Equal(t, "Shape", cd.Name.Name)
	require.Len(t, cd.MethodsList, 1)
}

func TestLinkPreservesSourceOrderAcrossMultipleClasses(t *testing.T) {
	prog := &ast.Program{
		Statements: []ast.Statement{
			classDefStmt("Shape"),
			classDefStmt("Color"),
			methodsBlock("Shape"),
			methodsBlock("Color"),
		},
	}

	bag := Link(prog)

	require.False(t, bag.Failed())
	require.Len(t, prog.Statements, 2)
	require.Equal(t, "Shape", prog.Statements[0].(*ast.ClassDef).Name.Name)
	require.Equal(t, "Color", prog.Statements[1].(*ast.ClassDef).Name.Name)
}

func TestLinkAccumulatesMultipleMethodsBlocksForOneClass(t *testing.T) {
	prog := &ast.Program{
		Statements: []ast.Statement{
			classDefStmt("Shape"),
			methodsBlock("Shape"),
			methodsBlock("Shape"),
		},
	}

	bag := Link(prog)

	require.False(t, bag.Failed())
	cd := prog.Statements[0].(*ast.ClassDef)
	require.Len(t, cd.MethodsList, 2)
}

func TestLinkReportsNoVarErrorForUnknownClassWithEnumeratedHint(t *testing.T) {
	prog := &ast.Program{
		Statements: []ast.Statement{
			classDefStmt("Shape"),
			classDefStmt("Color"),
			methodsBlock("Shpae"), // typo
		},
	}

	bag := Link(prog)

	require.True(t, bag.Failed())
	require.Len(t, bag.Errors, 1)
	require.Equal(t, diagnostics.NameError, bag.Errors[0].Code)
	require.Contains(t, bag.Errors[0].Hint, "Color")
	require.Contains(t, bag.Errors[0].Hint, "Shape")
	// the unresolved block itself must not survive linking
	require.Len(t, prog.Statements, 2)
}

func TestLinkReportsUnimplementedForCompoundTarget(t *testing.T) {
	compound := &ast.MethodsBlock{
		Token:  token.Token{Lexeme: "Methods"},
		Target: ast.CompoundTarget{Expr: ident("Pair(T)")},
	}
	prog := &ast.Program{
		Statements: []ast.Statement{
			classDefStmt("Pair"),
			compound,
		},
	}

	bag := Link(prog)

	require.True(t, bag.Failed())
	require.Equal(t, diagnostics.UnimplementedError, bag.Errors[0].Code)
}
