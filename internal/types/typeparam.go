package types

import "fmt"

// TypeParam is the parallel algebra for the arguments nominal type
// constructors take: a type itself, a value-level literal used for
// const generics, a Constraint lifted into parameter position, or a
// free variable ranging over TypeParam values.
type TypeParam interface {
	isTypeParam()
	String() string
	Equal(other TypeParam, budget int) bool
	render(depth int, debug bool) string
	freeVars(into *[]*Cell[Type], seen map[int64]bool)
}

// ParamType lifts an ordinary Type into parameter position, e.g. the
// Int in List(Int).
type ParamType struct {
	T Type
}

func (ParamType) isTypeParam() {}
func (p ParamType) String() string { return p.T.String() }
func (p ParamType) render(depth int, debug bool) string { return p.T.render(depth, debug) }
func (p ParamType) freeVars(into *[]*Cell[Type], seen map[int64]bool) { p.T.freeVars(into, seen) }
func (p ParamType) Equal(other TypeParam, budget int) bool {
	o, ok := other.(ParamType)
	return ok && p.T.Equal(o.T, budget)
}

// ParamLiteral is a value-level constant used as a type parameter
// (array lengths, string-literal singleton types).
type ParamLiteral struct {
	Value any
}

func (ParamLiteral) isTypeParam() {}
func (p ParamLiteral) String() string { return fmt.Sprintf("%v", p.Value) }
func (p ParamLiteral) render(int, bool) string { return fmt.Sprintf("%v", p.Value) }
func (ParamLiteral) freeVars(*[]*Cell[Type], map[int64]bool) {}
func (p ParamLiteral) Equal(other TypeParam, _ int) bool {
	o, ok := other.(ParamLiteral)
	return ok && p.Value == o.Value
}

// ParamTypeOf marks a parameter position whose value is itself
// governed by a Constraint rather than known outright — a TypeOf
// bound lifted into parameter position.
type ParamTypeOf struct {
	Bound Constraint
}

func (ParamTypeOf) isTypeParam() {}
func (p ParamTypeOf) String() string { return p.render(2, false) }
func (p ParamTypeOf) render(depth int, debug bool) string {
	if depth <= 0 {
		return "..."
	}
	return fmt.Sprintf("TypeOf(%s)", p.Bound.render(depth-1, debug))
}
func (p ParamTypeOf) freeVars(into *[]*Cell[Type], seen map[int64]bool) {
	p.Bound.freeVars(into, seen)
}
func (p ParamTypeOf) Equal(other TypeParam, budget int) bool {
	o, ok := other.(ParamTypeOf)
	if !ok || budget <= 0 {
		return ok && budget <= 0
	}
	return p.Bound.Equal(o.Bound, budget-1)
}

// ParamFreeVar wraps a free-variable cell ranging over TypeParam
// values, the TypeParam-side twin of FreeVar.
type ParamFreeVar struct {
	Cell *Cell[TypeParam]
}

func (ParamFreeVar) isTypeParam() {}
func (f ParamFreeVar) cellID() int64 { return f.Cell.id }
func (f ParamFreeVar) String() string { return f.Cell.String() }
func (f ParamFreeVar) render(depth int, debug bool) string { return f.Cell.render(depth, debug) }

func (f ParamFreeVar) freeVars(into *[]*Cell[Type], seen map[int64]bool) {
	// ParamFreeVar cells range over TypeParam, so they don't themselves
	// belong in a []*Cell[Type] set; but their bound may still mention
	// Type-side free variables (e.g. TypeOf(x) where x : T).
	if s, ok := GetSubSupConstraintParam(f.Cell.Constraint()); ok {
		s.Sub.freeVars(into, seen)
		s.Sup.freeVars(into, seen)
	} else if t, ok := GetTypeOfParam(f.Cell.Constraint()); ok {
		t.freeVars(into, seen)
	}
}

func (f ParamFreeVar) Equal(other TypeParam, budget int) bool {
	o, ok := other.(ParamFreeVar)
	if !ok {
		return false
	}
	if f.Cell == o.Cell {
		return true
	}
	if budget <= 0 {
		return true
	}
	return f.Cell.equalAsTerm(o.Cell, budget-1)
}

// GetSubSupConstraintParam and GetTypeOfParam are declared in
// constraint.go next to the rest of the Constraint accessor family;
// forward-referenced here because typeparam.go is read top-to-bottom
// by a reviewer scanning the TypeParam variants together.
