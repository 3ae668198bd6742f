// Package ast is trimmed to the surface the Method Linker needs:
// top-level definitions, the constructor-call shape that marks a
// definition as a class, orphan Methods blocks, and a Visitor wide
// enough to walk just those. It keeps a conventional
// Node/Statement/Expression/Accept(Visitor) shape, trimmed down from a
// full expression-language AST since lexing, parsing, and evaluation
// are out of scope here.
package ast

import "github.com/vinelang/vinec/internal/token"

// Node is the base interface for every AST node kept in this package.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
}

// Statement is a top-level or block-level Node.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that yields a value.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Identifier is a bare name reference.
type Identifier struct {
	Token token.Token
	Name  string
}

func (i *Identifier) Accept(v Visitor)      { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// Program is the root node produced for one source file: a flat,
// source-ordered list of top-level statements. The Method Linker
// consumes and rewrites Program.Statements in place.
type Program struct {
	File       string
	Statements []Statement
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) == 0 {
		return ""
	}
	return p.Statements[0].TokenLiteral()
}

// CallExpression is kept only so a VarDef's initializer can be
// recognized as a Class/Inherit/Inheritable constructor invocation; it
// does not model the full call-expression grammar.
type CallExpression struct {
	Token  token.Token
	Callee *Identifier
	Args   []Expression
}

func (c *CallExpression) Accept(v Visitor)      { v.VisitCallExpression(c) }
func (c *CallExpression) expressionNode()       {}
func (c *CallExpression) TokenLiteral() string  { return c.Token.Lexeme }
func (c *CallExpression) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// VarDef is a top-level name binding: `Name := Value`. Before linking
// it is how every class declaration also arrives — `Shape := Class(...)`
// is a VarDef whose Value is a CallExpression naming the Class
// constructor, which the linker recognizes and folds into a ClassDef.
type VarDef struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (d *VarDef) Accept(v Visitor)      { v.VisitVarDef(d) }
func (d *VarDef) statementNode()        {}
func (d *VarDef) TokenLiteral() string  { return d.Token.Lexeme }
func (d *VarDef) GetToken() token.Token {
	if d == nil {
		return token.Token{}
	}
	return d.Token
}

// ClassDef is the folded node the Method Linker produces in place of a
// VarDef whose Value was a Class/Inherit/Inheritable call. Ctor
// retains the original constructor call so later
// passes can still inspect its arguments (base class, trait list).
type ClassDef struct {
	Token       token.Token
	Name        *Identifier
	Ctor        *CallExpression
	MethodsList []*MethodsBlock
}

func (c *ClassDef) Accept(v Visitor)      { v.VisitClassDef(c) }
func (c *ClassDef) statementNode()        {}
func (c *ClassDef) TokenLiteral() string  { return c.Token.Lexeme }
func (c *ClassDef) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// TargetSpec is the type naming a MethodsBlock's subject class. Most
// source writes a plain name (`Methods Shape ... end`), which resolves
// to SimpleTarget; anything else (a parameterized or qualified
// reference) becomes a CompoundTarget, which the linker refuses to
// fold.
type TargetSpec interface {
	targetSpecNode()
	GetToken() token.Token
}

// SimpleTarget names a class by a single bare identifier.
type SimpleTarget struct {
	Name *Identifier
}

func (SimpleTarget) targetSpecNode() {}
func (s SimpleTarget) GetToken() token.Token { return s.Name.GetToken() }

// CompoundTarget is any MethodsBlock target the linker does not
// attempt to resolve: a generic instantiation (`Methods List(T)`), a
// qualified path (`Methods pkg.Shape`), or any other non-identifier
// expression in target position.
type CompoundTarget struct {
	Expr Expression
}

func (CompoundTarget) targetSpecNode() {}
func (c CompoundTarget) GetToken() token.Token { return c.Expr.GetToken() }

// MethodsBlock is an orphan `Methods <target> ... end` block before
// linking. The linker either folds it into the
// matching ClassDef's MethodsList or reports a diagnostic; it never
// survives linking as a standalone top-level statement.
type MethodsBlock struct {
	Token      token.Token
	Target     TargetSpec
	Statements []Statement
}

func (m *MethodsBlock) Accept(v Visitor)      { v.VisitMethodsBlock(m) }
func (m *MethodsBlock) statementNode()        {}
func (m *MethodsBlock) TokenLiteral() string  { return m.Token.Lexeme }
func (m *MethodsBlock) GetToken() token.Token {
	if m == nil {
		return token.Token{}
	}
	return m.Token
}

// Visitor is deliberately narrow: only the node kinds the Method
// Linker (and its tests) ever walk.
type Visitor interface {
	VisitProgram(p *Program)
	VisitIdentifier(i *Identifier)
	VisitCallExpression(c *CallExpression)
	VisitVarDef(d *VarDef)
	VisitClassDef(c *ClassDef)
	VisitMethodsBlock(m *MethodsBlock)
}
