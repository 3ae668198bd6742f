package types

import "github.com/vinelang/vinec/internal/config"

// Level is the binding-depth counter used for let-polymorphism. A
// fresh free variable is stamped with
// the level of the let-binding currently being checked; generalization
// only quantifies over variables whose level is deeper than the
// enclosing scope's level.
type Level int

// GenericLevel is the sentinel level assigned to a variable once it
// has been generalized (GENERIC_LEVEL). It must sit above every real
// binding depth a checking pass can ever reach, so that lowering a
// scope's level (entering a nested let) never pulls a generalized
// variable back down into a live, re-constrainable level. A generic
// variable is never itself re-linked by unification; each use of the
// enclosing scheme instantiates a fresh copy instead.
const GenericLevel Level = Level(config.GenericLevelValue)

// Scope threads the current binding depth through a checking pass.
// Enter descends into a let-binding; Level reports the depth at which
// cells minted inside it are stamped.
type Scope struct {
	depth Level
}

// NewScope starts a fresh top-level scope at depth 0.
func NewScope() *Scope {
	return &Scope{depth: 0}
}

// Enter descends one let-binding deeper, returning the new Scope. The
// caller restores the outer scope by simply discarding the returned
// value and keeping the receiver.
func (s *Scope) Enter() *Scope {
	return &Scope{depth: s.depth + 1}
}

// Level reports the current binding depth.
func (s *Scope) Level() Level {
	return s.depth
}

// Generalize promotes every free variable reachable from t whose level
// is strictly deeper than the scope's own level to GenericLevel,
// skipping variables
// that are already linked (those aren't free anymore) or that were
// bound at or above the current depth (they belong to an enclosing
// let and must stay monomorphic here).
func (s *Scope) Generalize(t Type) {
	var cells []*Cell[Type]
	t.freeVars(&cells, map[int64]bool{})
	for _, c := range cells {
		if c.IsUnbound() && c.level > s.depth {
			c.Generalize()
		}
	}
}

// GeneralizeParam is the TypeParam-side twin of Generalize.
func (s *Scope) GeneralizeParam(p TypeParam) {
	var cells []*Cell[Type]
	p.freeVars(&cells, map[int64]bool{})
	for _, c := range cells {
		if c.IsUnbound() && c.level > s.depth {
			c.Generalize()
		}
	}
}
