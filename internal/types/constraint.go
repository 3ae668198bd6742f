package types

import (
	"errors"
	"fmt"
	"log"
)

// Constraint is the bound attached to a free-variable cell: either a
// sandwich sub <: x <: sup, a fixed TypeOf bound, or the Uninited
// placeholder used before a variable's declared type has been
// processed.
type Constraint interface {
	isConstraint()
	render(depth int, debug bool) string
	freeVars(into *[]*Cell[Type], seen map[int64]bool)
	Equal(other Constraint, budget int) bool
}

// Sandwiched is the general-case bound for a Cell[Type]: Sub <: x <: Sup.
// The fully open bound used for a brand-new variable is
// Sandwiched{Never{}, Obj{}}.
type Sandwiched struct {
	Sub Type
	Sup Type
}

func NewSandwiched(sub, sup Type) Constraint { return Sandwiched{Sub: sub, Sup: sup} }

func (Sandwiched) isConstraint() {}

func (s Sandwiched) render(depth int, debug bool) string {
	if depth <= 0 {
		return "..."
	}
	return fmt.Sprintf("%s :> ? <: %s", s.Sub.render(depth-1, debug), s.Sup.render(depth-1, debug))
}

func (s Sandwiched) freeVars(into *[]*Cell[Type], seen map[int64]bool) {
	s.Sub.freeVars(into, seen)
	s.Sup.freeVars(into, seen)
}

func (s Sandwiched) Equal(other Constraint, budget int) bool {
	o, ok := other.(Sandwiched)
	if !ok {
		return false
	}
	if budget <= 0 {
		return true
	}
	return s.Sub.Equal(o.Sub, budget-1) && s.Sup.Equal(o.Sup, budget-1)
}

// ParamSandwiched is Sandwiched's twin for a Cell[TypeParam].
type ParamSandwiched struct {
	Sub TypeParam
	Sup TypeParam
}

func NewParamSandwiched(sub, sup TypeParam) Constraint { return ParamSandwiched{Sub: sub, Sup: sup} }

func (ParamSandwiched) isConstraint() {}

func (s ParamSandwiched) render(depth int, debug bool) string {
	if depth <= 0 {
		return "..."
	}
	return fmt.Sprintf("%s :> ? <: %s", s.Sub.render(depth-1, debug), s.Sup.render(depth-1, debug))
}

func (s ParamSandwiched) freeVars(into *[]*Cell[Type], seen map[int64]bool) {
	s.Sub.freeVars(into, seen)
	s.Sup.freeVars(into, seen)
}

func (s ParamSandwiched) Equal(other Constraint, budget int) bool {
	o, ok := other.(ParamSandwiched)
	if !ok {
		return false
	}
	if budget <= 0 {
		return true
	}
	return s.Sub.Equal(o.Sub, budget-1) && s.Sup.Equal(o.Sup, budget-1)
}

// TypeOf fixes a cell's value to exactly one type, e.g. once a `let`
// binding's initializer has been checked. Universe{} wrapped in TypeOf
// is the canonical "this slot holds a type, not a value" bound, but it
// folds into the degenerate fully-open sandwich instead of being kept
// as a literal TypeOf — see NewTypeOf.
type TypeOf struct {
	T Type
}

// NewTypeOf builds a TypeOf bound, except for Universe{} which
// canonicalizes to the degenerate fully-open sandwich
// Sandwiched{Never, Obj}: "a term of type Type" is always encoded that
// way so every constraint constructor produces the same representation
// for it. GetType reverses this when reading the bound back.
func NewTypeOf(t Type) Constraint {
	if _, ok := t.(Universe); ok {
		return Sandwiched{Sub: Never{}, Sup: Obj{}}
	}
	return TypeOf{T: t}
}

// NewSubtypeOf builds a half-open sandwich bound: the variable is
// known only to be a subtype of sup, with no known lower bound.
func NewSubtypeOf(sup Type) Constraint {
	return Sandwiched{Sub: Never{}, Sup: sup}
}

// NewSupertypeOf builds a half-open sandwich bound: the variable is
// known only to be a supertype of sub, with no known upper bound.
func NewSupertypeOf(sub Type) Constraint {
	return Sandwiched{Sub: sub, Sup: Obj{}}
}

func (TypeOf) isConstraint() {}

func (t TypeOf) render(depth int, debug bool) string {
	if depth <= 0 {
		return "..."
	}
	return fmt.Sprintf("TypeOf(%s)", t.T.render(depth-1, debug))
}

func (t TypeOf) freeVars(into *[]*Cell[Type], seen map[int64]bool) {
	t.T.freeVars(into, seen)
}

func (t TypeOf) Equal(other Constraint, budget int) bool {
	o, ok := other.(TypeOf)
	if !ok || budget <= 0 {
		return ok && budget <= 0
	}
	return t.T.Equal(o.T, budget-1)
}

// Uninited marks a cell whose binding has not yet been visited by the
// checker. Reading through an Uninited constraint anywhere but the
// pass that installs the real one is a checker bug; UpdateConstraint
// reports it by returning the plain error errUninitedRead rather than
// panicking.
type Uninited struct{}

func (Uninited) isConstraint()                            {}
func (Uninited) render(int, bool) string                  { return "Uninited" }
func (Uninited) freeVars(*[]*Cell[Type], map[int64]bool)  {}
func (Uninited) Equal(other Constraint, _ int) bool {
	_, ok := other.(Uninited)
	return ok
}

// GetType extracts the Type from a TypeOf constraint, and also from
// the degenerate fully-open sandwich Sandwiched{Never, Obj} — the
// canonical form NewTypeOf(Universe{}) folds to — which yields
// Universe{} (the "this slot holds a type" reading).
func GetType(c Constraint) (Type, bool) {
	if t, ok := c.(TypeOf); ok {
		return t.T, true
	}
	if s, ok := c.(Sandwiched); ok {
		if _, subOk := s.Sub.(Never); subOk {
			if _, supOk := s.Sup.(Obj); supOk {
				return Universe{}, true
			}
		}
	}
	return nil, false
}

// GetTypeOfParam mirrors GetType for the TypeParam algebra's
// freeVars walk; a TypeOf bound always wraps a plain Type regardless
// of which cell flavor it constrains.
func GetTypeOfParam(c Constraint) (Type, bool) {
	return GetType(c)
}

// GetSubSupConstraintParam extracts the ParamSandwiched bound, the
// TypeParam-side twin of GetSubSupConstraint in type.go.
func GetSubSupConstraintParam(c Constraint) (ParamSandwiched, bool) {
	s, ok := c.(ParamSandwiched)
	return s, ok
}

var errUninitedRead = errors.New("types: read of an Uninited constraint")

// UpdateConstraint narrows an unbound Type cell's sandwich bound to
// (sub, sup). inInstantiationOrGeneralization must be true when the
// caller is instantiating a generic scheme or is itself the
// generalization pass; ordinary unification passes false. Special
// cases apply before the bound is actually replaced:
//
//   - a cell already resolved to another free variable forwards the
//     update to that variable instead of touching its own (stale)
//     bound;
//   - a cell at GENERIC_LEVEL refuses the update when
//     inInstantiationOrGeneralization is false: this is not an error,
//     just a no-op, logged and returned, since a generalized variable
//     is routinely probed by passes that must not be allowed to
//     re-narrow it; when true, the update proceeds regardless of level;
//   - an Uninited bound cannot be narrowed at all — the checker must
//     install a real TypeOf/Sandwiched bound first.
func UpdateConstraint(c *Cell[Type], sub, sup Type, inInstantiationOrGeneralization bool) error {
	if c.IsLinked() {
		target, _ := c.linkedTarget()
		if fv, ok := target.(FreeVar); ok {
			return UpdateConstraint(fv.Cell, sub, sup, inInstantiationOrGeneralization)
		}
		return nil
	}
	if c.level == GenericLevel && !inInstantiationOrGeneralization {
		log.Printf("types: refusing to update constraint on generalized cell %d outside instantiation/generalization", c.id)
		return nil
	}
	if _, ok := c.Constraint().(Uninited); ok {
		return errUninitedRead
	}
	c.SetConstraint(NewSandwiched(sub, sup))
	return nil
}

// RefineSuper narrows only the upper bound, keeping the cell's current
// lower bound. Used when the unifier has only learned a new supertype
// fact and the existing lower bound still holds.
func RefineSuper(c *Cell[Type], sup Type, inInstantiationOrGeneralization bool) error {
	existing, ok := c.Constraint().(Sandwiched)
	sub := Type(Never{})
	if ok {
		sub = existing.Sub
	}
	return UpdateConstraint(c, sub, sup, inInstantiationOrGeneralization)
}

// RefineSub is RefineSuper's lower-bound counterpart.
func RefineSub(c *Cell[Type], sub Type, inInstantiationOrGeneralization bool) error {
	existing, ok := c.Constraint().(Sandwiched)
	sup := Type(Obj{})
	if ok {
		sup = existing.Sup
	}
	return UpdateConstraint(c, sub, sup, inInstantiationOrGeneralization)
}
