package types

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/vinelang/vinec/internal/config"
)

// errUndoNotUndoable is the error Undo returns when the cell is not
// UndoableLinked. Undo itself does not panic; this package's own
// callers of Undo (SetLevel, Hash) panic on it, since their paired
// ForcedUndoableLink guarantees it cannot occur there.
var errUndoNotUndoable = errors.New("cell: undo() called on a cell that is not UndoableLinked")

// Equatable is the constraint Cell[T] needs on its payload type: enough
// to compare two terms for the self-link guard and to print them for
// debugging. Both Type and TypeParam satisfy it.
type Equatable[T any] interface {
	Equal(other T, budget int) bool
	render(depth int, debug bool) string
}

type cellState int

const (
	stateUnbound cellState = iota
	stateNamedUnbound
	stateLinked
	stateUndoableLinked
)

// snapshot is one entry in a Cell's undo chain (the UndoableLinked
// state): the full prior state to restore, so that nested
// undoable_links form a proper restoring stack instead of losing
// everything but the most recent layer.
type snapshot[T any] struct {
	prevState      cellState
	prevConstraint Constraint
	prevName       string
	prevLinked     T
}

var nextCellID int64

// Cell is the shared, mutable free-variable box, generic over the
// two term algebras (Type and TypeParam)
// that can flow through a free variable. It is always handled through
// a pointer; two FreeVar/ParamFreeVar values sharing a *Cell are the
// same variable by definition, which is what lets a Cell legally
// reference itself through its own constraint (T <: Add(T)).
type Cell[T Equatable[T]] struct {
	id         int64
	state      cellState
	name       string
	constraint Constraint
	level      Level
	linked     T
	undoStack  []snapshot[T]
}

// NewUnbound creates a fresh anonymous free variable at the given
// level with the supplied initial constraint (typically a fully open
// Sandwiched{Never, Obj}).
func NewUnbound[T Equatable[T]](level Level, initial Constraint) *Cell[T] {
	return &Cell[T]{
		id:         atomic.AddInt64(&nextCellID, 1),
		state:      stateUnbound,
		constraint: initial,
		level:      level,
	}
}

// NewNamedUnbound creates a fresh free variable carrying a surface
// name (NamedUnbound — used for explicit type parameters like the T
// in def id(x: T) -> T).
func NewNamedUnbound[T Equatable[T]](name string, level Level, initial Constraint) *Cell[T] {
	return &Cell[T]{
		id:         atomic.AddInt64(&nextCellID, 1),
		state:      stateNamedUnbound,
		name:       name,
		constraint: initial,
		level:      level,
	}
}

func (c *Cell[T]) ID() int64 { return c.id }

func (c *Cell[T]) IsUnbound() bool {
	return c.state == stateUnbound || c.state == stateNamedUnbound
}

func (c *Cell[T]) IsLinked() bool {
	return c.state == stateLinked || c.state == stateUndoableLinked
}

func (c *Cell[T]) IsUndoableLinked() bool {
	return c.state == stateUndoableLinked
}

func (c *Cell[T]) Name() (string, bool) {
	if c.state == stateNamedUnbound {
		return c.name, true
	}
	return "", false
}

func (c *Cell[T]) Level() Level { return c.level }

// SetLevel sets this cell's level, short-circuiting once it is already
// at l — this is what lets it terminate on a cyclic bound such as
// T <: Add(T). When the cell carries a sandwich-shaped constraint, the
// level is also set on every free variable embedded in that bound; the
// cell is temporarily treated as resolved via the forced-undoable-link
// protocol (the same one Hash uses) while that embedded walk runs, so
// a bound that mentions the cell itself does not re-enter it.
func (c *Cell[T]) SetLevel(l Level) {
	if c.level == l {
		return
	}
	c.level = l
	if c.IsLinked() {
		return
	}
	var cells []*Cell[Type]
	c.Constraint().freeVars(&cells, map[int64]bool{})
	if len(cells) == 0 {
		return
	}
	var zero T
	c.ForcedUndoableLink(zero)
	for _, fc := range cells {
		fc.SetLevel(l)
	}
	if err := c.Undo(); err != nil {
		panic(err)
	}
}

// Lift raises this cell's level by one, saturating at GenericLevel —
// it never increments past the sentinel.
func (c *Cell[T]) Lift() {
	if c.level >= GenericLevel {
		return
	}
	c.SetLevel(c.level + 1)
}

// Lower widens this cell's level to l, but only if its current level
// is strictly less than l; it never narrows a level.
func (c *Cell[T]) Lower(l Level) {
	if c.level < l {
		c.SetLevel(l)
	}
}

// Generalize raises this cell's level to GenericLevel, universally
// quantifying it at the enclosing scheme.
func (c *Cell[T]) Generalize() {
	c.SetLevel(GenericLevel)
}

// IsGeneralized reports whether this cell has been generalized.
func (c *Cell[T]) IsGeneralized() bool {
	return c.level == GenericLevel
}

// Constraint returns the cell's current sandwich/typeof/uninited bound.
// On a linked cell it returns the stale pre-link bound rather than
// panicking — Link does not clear the bound it supersedes. SetLevel and
// UpdateConstraint check for a linked cell first; FreeVar's freeVars
// walk and RefineSuper/RefineSub read the bound without that check.
func (c *Cell[T]) Constraint() Constraint { return c.constraint }

// SetConstraint installs a new bound on an unbound cell (the
// UpdateConstraint target in constraint.go). It does not itself implement the
// GENERIC_LEVEL special case; callers use UpdateConstraint in
// constraint.go for that.
func (c *Cell[T]) SetConstraint(k Constraint) {
	c.constraint = k
}

// Crack borrows the term behind a linked cell. Precondition: the cell
// must be linked; callers that are unsure should check IsLinked first.
func (c *Cell[T]) Crack() T {
	target, ok := c.linkedTarget()
	if !ok {
		panic(fmt.Sprintf("cell %d: Crack called on a cell that is not linked", c.id))
	}
	return target
}

// ForceReplace overwrites this cell's linked term in place without
// touching its state, bypassing the self-link guard. Reserved for
// traversals that already hold a reference into the cell (the
// hash/equality cycle-breaking protocol); ordinary callers use Link.
func (c *Cell[T]) ForceReplace(target T) {
	c.linked = target
}

// Detach returns a fresh cell carrying the same name/level/constraint
// as c but none of its mutable state (link target, undo stack) — used
// when a generic scheme is instantiated and each of its generalized
// variables needs an independent fresh copy.
func (c *Cell[T]) Detach() *Cell[T] {
	state := stateUnbound
	if c.state == stateNamedUnbound {
		state = stateNamedUnbound
	}
	return &Cell[T]{
		id:         atomic.AddInt64(&nextCellID, 1),
		state:      state,
		name:       c.name,
		constraint: c.constraint,
		level:      c.level,
	}
}

// UnwrapUnbound extracts this cell's name/level/constraint, panicking
// if the cell is not Unbound or NamedUnbound.
func (c *Cell[T]) UnwrapUnbound() (string, Level, Constraint) {
	if !c.IsUnbound() {
		panic(fmt.Sprintf("cell %d: UnwrapUnbound called on a cell that is not unbound", c.id))
	}
	return c.name, c.level, c.constraint
}

// UnwrapLinked extracts the term behind a linked cell, panicking if
// the cell is not Linked or UndoableLinked.
func (c *Cell[T]) UnwrapLinked() T {
	target, ok := c.linkedTarget()
	if !ok {
		panic(fmt.Sprintf("cell %d: UnwrapLinked called on a cell that is not linked", c.id))
	}
	return target
}

// selfLinkGuard reports whether linking this cell to target would
// create a direct self-reference (target is a free variable wrapping
// this very cell). Link must reject it rather than silently creating
// a one-cell cycle that every other operation would then have to
// special-case.
func (c *Cell[T]) selfLinkGuard(target T) bool {
	ref, ok := any(target).(cellRef)
	return ok && ref.cellID() == c.id
}

// Link permanently resolves an unbound cell to target. It is a no-op if the cell is already linked to the address-identical
// target, and it panics if target would alias the cell itself — by
// construction this is a bug in the caller's unification order, not a
// recoverable condition.
func (c *Cell[T]) Link(target T) {
	if c.selfLinkGuard(target) {
		panic(fmt.Sprintf("cell %d: Link target aliases the cell itself", c.id))
	}
	if c.IsLinked() {
		if cur, ok := c.linkedTarget(); ok && sameInterfaceIdentity(any(cur), any(target)) {
			return
		}
	}
	c.state = stateLinked
	c.undoStack = nil
	c.linked = target
}

func (c *Cell[T]) linkedTarget() (T, bool) {
	if !c.IsLinked() {
		var zero T
		return zero, false
	}
	return c.linked, true
}

// UndoableLink speculatively resolves the cell, recording enough state
// to restore it with Undo (the UndoableLinked state, used while
// probing a unification branch that might fail downstream).
func (c *Cell[T]) UndoableLink(target T) {
	if c.selfLinkGuard(target) {
		panic(fmt.Sprintf("cell %d: UndoableLink target aliases the cell itself", c.id))
	}
	c.undoStack = append(c.undoStack, snapshot[T]{
		prevState:      c.state,
		prevConstraint: c.constraint,
		prevName:       c.name,
		prevLinked:     c.linked,
	})
	c.state = stateUndoableLinked
	c.linked = target
}

// Undo restores the most recent UndoableLink, popping the undo
// journal. This is a stack, not a single slot: nested
// UndoableLink/ForcedUndoableLink calls on the same cell each push a
// full snapshot, so a matching sequence of Undo calls restores them in
// LIFO order. Calling it on a cell that is not UndoableLinked leaves
// the cell unchanged and returns errUndoNotUndoable instead of
// panicking.
func (c *Cell[T]) Undo() error {
	if c.state != stateUndoableLinked {
		return errUndoNotUndoable
	}
	n := len(c.undoStack)
	top := c.undoStack[n-1]
	c.undoStack = c.undoStack[:n-1]
	c.state = top.prevState
	c.constraint = top.prevConstraint
	c.name = top.prevName
	c.linked = top.prevLinked
	return nil
}

// ForcedLink installs target as the permanent resolution regardless of
// current state, without the self-link guard or an undo snapshot. No
// code in this package calls it; Hash and SetLevel use the undoable
// form, ForcedUndoableLink.
func (c *Cell[T]) ForcedLink(target T) {
	c.state = stateLinked
	c.linked = target
}

// ForcedUndoableLink is ForcedLink's undoable counterpart: it does not
// run the self-link guard at all. Hash and SetLevel use it to treat a
// cell as resolved while they walk a term or bound that may contain
// the cell itself, and then Undo.
func (c *Cell[T]) ForcedUndoableLink(target T) {
	c.undoStack = append(c.undoStack, snapshot[T]{
		prevState:      c.state,
		prevConstraint: c.constraint,
		prevName:       c.name,
		prevLinked:     c.linked,
	})
	c.state = stateUndoableLinked
	c.linked = target
}

// equalAsTerm implements Cell.Equal for two distinct cells. Unbound
// cells compare by identity (two distinct unbound cells, named or not,
// are unequal unless the budget is already exhausted, in which case
// the remainder is treated as equal like every other bounded walk);
// linked cells compare their resolved targets. Equality does not use
// the ForcedUndoableLink/Undo protocol that Hash uses: the Type and
// TypeParam Equal methods short-circuit on a shared cell pointer and
// otherwise rely on the decrementing budget.
func (c *Cell[T]) equalAsTerm(other *Cell[T], budget int) bool {
	if c == other {
		return true
	}
	if budget <= 0 {
		return true
	}
	if c.IsUnbound() && other.IsUnbound() {
		return c.id == other.id
	}
	cLinked, cOK := c.linkedTarget()
	oLinked, oOK := other.linkedTarget()
	if cOK && oOK {
		return cLinked.Equal(oLinked, budget-1)
	}
	return false
}

// Hash produces a structural digest for this cell, stable across
// cycles through the cell itself. An
// unbound cell hashes by identity; its bound is not walked. A linked
// cell's target may mention the cell itself; Hash breaks that cycle by
// forcing the cell to resolve to the given placeholder term for the
// duration of hashing its own target, then restores the prior state
// with Undo so the cell is left exactly as it was found.
func (c *Cell[T]) Hash(placeholder T) uint64 {
	if c.IsUnbound() {
		return uint64(c.id) * 2654435761
	}
	target, ok := c.linkedTarget()
	if !ok {
		return uint64(c.id) * 2654435761
	}
	c.ForcedUndoableLink(placeholder)
	h := fnv1a(target.render(config.MaxEqualityDepth, false))
	if err := c.Undo(); err != nil {
		panic(err)
	}
	return h
}

func fnv1a(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

func (c *Cell[T]) render(depth int, debug bool) string {
	label := fmt.Sprintf("?%d", c.id)
	if c.state == stateNamedUnbound {
		label = c.name
	}
	if target, ok := c.linkedTarget(); ok && depth > 0 {
		return target.render(depth-1, debug)
	}
	if debug {
		return fmt.Sprintf("%s(%s)[%s]", label, c.constraint.render(depth, debug), c.levelLabel())
	}
	return label
}

func (c *Cell[T]) levelLabel() string {
	if c.level == GenericLevel {
		return "generic"
	}
	return fmt.Sprintf("%d", int(c.level))
}

func (c *Cell[T]) String() string {
	return c.render(config.MaxPrintDepth, false)
}
