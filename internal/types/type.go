package types

import (
	"fmt"
	"strings"

	"github.com/vinelang/vinec/internal/config"
)

// Type is the algebraic representation of a type term: a
// finite-but-possibly-cyclic tagged value. Every walk over a Type must
// be depth-limited because a free variable's sandwich bound may
// legally embed the variable itself (T <: Add(T)).
type Type interface {
	isType()
	// String renders the type with the package default depth limit.
	String() string
	// Equal is bounded-recursion structural equality: budget is
	// decremented on every descent; once it reaches zero the traversal
	// stops and treats the remainder as equal rather than recursing
	// further (this is what keeps a self-referential sandwich bound
	// from overflowing the stack). Two Types holding the same Cell
	// pointer are always equal without descending into the cell's
	// constraint at all.
	Equal(other Type, budget int) bool
	// render is the depth-limited, optionally debug-annotated printer
	// backing String/FormatType.
	render(depth int, debug bool) string
	// freeVars collects every Cell reachable from this term, used by
	// Level/generalization bookkeeping.
	freeVars(into *[]*Cell[Type], seen map[int64]bool)
	// level reports the minimum level among every free variable
	// embedded in this term, or ok=false when the term is ground
	// (contains no free variables at all).
	level() (lvl Level, ok bool)
}

// minEmbeddedLevel is the shared level() implementation for every
// Type variant that may embed free variables: collect them and take
// the minimum of their own cell levels.
func minEmbeddedLevel(t Type) (Level, bool) {
	var cells []*Cell[Type]
	t.freeVars(&cells, map[int64]bool{})
	if len(cells) == 0 {
		return 0, false
	}
	min := cells[0].Level()
	for _, c := range cells[1:] {
		if c.Level() < min {
			min = c.Level()
		}
	}
	return min, true
}

// Never is the distinguished bottom type.
type Never struct{}

func (Never) isType()                                 {}
func (Never) String() string                          { return "Never" }
func (Never) render(int, bool) string                 { return "Never" }
func (Never) freeVars(*[]*Cell[Type], map[int64]bool) {}
func (Never) level() (Level, bool)                    { return 0, false }
func (Never) Equal(other Type, _ int) bool {
	_, ok := other.(Never)
	return ok
}

// Obj is the distinguished top type.
type Obj struct{}

func (Obj) isType()                                 {}
func (Obj) String() string                          { return "Obj" }
func (Obj) render(int, bool) string                 { return "Obj" }
func (Obj) freeVars(*[]*Cell[Type], map[int64]bool) {}
func (Obj) level() (Level, bool)                    { return 0, false }
func (Obj) Equal(other Type, _ int) bool {
	_, ok := other.(Obj)
	return ok
}

// Universe is the reserved "type of types". It is what
// Constraint.GetType returns for both an explicit TypeOf(Universe{})
// and the degenerate fully-open sandwich Sandwiched{Never, Obj}.
type Universe struct{}

func (Universe) isType()                                 {}
func (Universe) String() string                          { return "Type" }
func (Universe) render(int, bool) string                 { return "Type" }
func (Universe) freeVars(*[]*Cell[Type], map[int64]bool) {}
func (Universe) level() (Level, bool)                    { return 0, false }
func (Universe) Equal(other Type, _ int) bool {
	_, ok := other.(Universe)
	return ok
}

// Nominal is a named type applied to zero or more type-parameter
// terms. KindVal is optional; when nil, Kind() reports Star
// for a nullary nominal and a left-to-right arrow matching len(Params)
// would be the caller's responsibility to assign at declaration time.
type Nominal struct {
	Name    string
	Params  []TypeParam
	KindVal Kind
}

func (Nominal) isType() {}

func (n Nominal) Kind() Kind {
	if n.KindVal != nil {
		return n.KindVal
	}
	return Star
}

func (n Nominal) String() string { return n.render(config.MaxPrintDepth, false) }

func (n Nominal) render(depth int, debug bool) string {
	if depth <= 0 {
		return "..."
	}
	if len(n.Params) == 0 {
		return n.Name
	}
	parts := make([]string, len(n.Params))
	for i, p := range n.Params {
		parts[i] = p.render(depth-1, debug)
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(parts, ", "))
}

func (n Nominal) freeVars(into *[]*Cell[Type], seen map[int64]bool) {
	for _, p := range n.Params {
		p.freeVars(into, seen)
	}
}

func (n Nominal) level() (Level, bool) { return minEmbeddedLevel(n) }

func (n Nominal) Equal(other Type, budget int) bool {
	o, ok := other.(Nominal)
	if !ok || n.Name != o.Name || len(n.Params) != len(o.Params) {
		return false
	}
	if budget <= 0 {
		return true
	}
	for i := range n.Params {
		if !n.Params[i].Equal(o.Params[i], budget-1) {
			return false
		}
	}
	return true
}

// FreeVar wraps a free-variable cell inside the Type algebra.
type FreeVar struct {
	Cell *Cell[Type]
}

func (FreeVar) isType() {}

func (f FreeVar) cellID() int64 { return f.Cell.id }

func (f FreeVar) String() string { return f.render(config.MaxPrintDepth, false) }

func (f FreeVar) render(depth int, debug bool) string {
	return f.Cell.render(depth, debug)
}

func (f FreeVar) freeVars(into *[]*Cell[Type], seen map[int64]bool) {
	if seen[f.Cell.id] {
		return
	}
	seen[f.Cell.id] = true
	*into = append(*into, f.Cell)
	if s, ok := GetSubSupConstraint(f.Cell.Constraint()); ok {
		s.Sub.freeVars(into, seen)
		s.Sup.freeVars(into, seen)
	} else if t, ok := GetType(f.Cell.Constraint()); ok {
		t.freeVars(into, seen)
	}
}

func (f FreeVar) level() (Level, bool) { return minEmbeddedLevel(f) }

func (f FreeVar) Equal(other Type, budget int) bool {
	o, ok := other.(FreeVar)
	if !ok {
		return false
	}
	// Same cell: always equal, and crucially we never descend into the
	// cell's own constraint to get here. That's what keeps a type
	// containing its own free variable from recursing forever.
	if f.Cell == o.Cell {
		return true
	}
	if budget <= 0 {
		return true
	}
	return f.Cell.equalAsTerm(o.Cell, budget-1)
}

// GetSubSupConstraint is a small local alias kept next to the Type
// variants that need it; the full accessor family lives in constraint.go.
func GetSubSupConstraint(c Constraint) (Sandwiched, bool) {
	s, ok := c.(Sandwiched)
	return s, ok
}
