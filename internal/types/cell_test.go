package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func openBound() Constraint { return NewSandwiched(Never{}, Obj{}) }

func TestNewUnboundStartsFullyOpenAndUnbound(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	require.True(t, c.IsUnbound())
	require.False(t, c.IsLinked())
	s, ok := c.Constraint().(Sandwiched)
	require.True(t, ok)
	require.IsType(t, Never{}, s.Sub)
	require.IsType(t, Obj{}, s.Sup)
}

func TestLinkResolvesAndIsIdempotentOnSameTarget(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	intT := Nominal{Name: "Int"}
	c.Link(intT)
	require.True(t, c.IsLinked())
	target, ok := c.linkedTarget()
	require.True(t, ok)
	require.True(t, EqualTypes(target, intT))

	// linking again to the same term must not panic or change state
	c.Link(intT)
	require.True(t, c.IsLinked())
}

func TestLinkRejectsSelfReference(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	self := FreeVar{Cell: c}
	require.Panics(t, func() { c.Link(self) })
}

func TestUndoableLinkAndUndoRestorePriorState(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	c.UndoableLink(Nominal{Name: "Int"})
	require.True(t, c.IsUndoableLinked())

	err := c.Undo()
	require.NoError(t, err)
	require.True(t, c.IsUnbound())
}

func TestUndoOnNonUndoableCellReturnsError(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	err := c.Undo()
	require.ErrorIs(t, err, errUndoNotUndoable)
}

func TestEqualTypesShortCircuitsOnSharedCellWithoutDescendingIntoCycle(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	// Build a self-referential sandwich bound: T <: Wrap(T).
	c.SetConstraint(NewSandwiched(Never{}, Nominal{
		Name:   "Wrap",
		Params: []TypeParam{ParamType{T: FreeVar{Cell: c}}},
	}))

	a := FreeVar{Cell: c}
	b := FreeVar{Cell: c}

	require.True(t, EqualTypes(a, b), "two FreeVars over the same cell must be equal without infinite recursion")
}

func TestGeneralizePromotesDeeperVariablesToGenericLevel(t *testing.T) {
	scope := NewScope()
	inner := scope.Enter()
	c := NewUnbound[Type](inner.Level(), openBound())
	fv := FreeVar{Cell: c}

	scope.Generalize(fv)

	require.Equal(t, GenericLevel, c.Level())
}

func TestGeneralizeDoesNotPromoteVariablesBoundAtOrAboveCurrentLevel(t *testing.T) {
	scope := NewScope()
	c := NewUnbound[Type](scope.Level(), openBound())
	fv := FreeVar{Cell: c}

	scope.Generalize(fv)

	require.NotEqual(t, GenericLevel, c.Level())
}

func TestUpdateConstraintLeavesGenericLevelCellUnchangedOutsideInstantiation(t *testing.T) {
	c := NewUnbound[Type](GenericLevel, openBound())
	err := UpdateConstraint(c, Never{}, Nominal{Name: "Int"}, false)
	require.NoError(t, err)

	s, ok := c.Constraint().(Sandwiched)
	require.True(t, ok)
	require.IsType(t, Obj{}, s.Sup, "the bound must be left exactly as it was")
}

func TestUpdateConstraintInstallsBoundOnGenericLevelCellDuringInstantiation(t *testing.T) {
	c := NewUnbound[Type](GenericLevel, openBound())
	err := UpdateConstraint(c, Never{}, Nominal{Name: "Int"}, true)
	require.NoError(t, err)

	s, ok := c.Constraint().(Sandwiched)
	require.True(t, ok)
	require.True(t, EqualTypes(s.Sup, Nominal{Name: "Int"}))
}

func TestUpdateConstraintForwardsThroughLinkedFreeVar(t *testing.T) {
	inner := NewUnbound[Type](0, openBound())
	outer := NewUnbound[Type](0, openBound())
	outer.Link(FreeVar{Cell: inner})

	err := UpdateConstraint(outer, Never{}, Nominal{Name: "Int"}, false)
	require.NoError(t, err)

	s, ok := inner.Constraint().(Sandwiched)
	require.True(t, ok)
	require.True(t, EqualTypes(s.Sup, Nominal{Name: "Int"}))
}

func TestSetLevelOnVariableGeneralizesDirectly(t *testing.T) {
	v := NewUnbound[Type](0, openBound())
	v.SetLevel(1)
	require.Equal(t, Level(1), v.Level())

	v.Generalize()
	require.Equal(t, GenericLevel, v.Level())
	require.True(t, v.IsGeneralized())
}

func TestLiftIncrementsLevelAndSaturatesAtGenericLevel(t *testing.T) {
	v := NewUnbound[Type](0, openBound())
	v.Lift()
	require.Equal(t, Level(1), v.Level())

	v.Generalize()
	v.Lift()
	require.Equal(t, GenericLevel, v.Level(), "Lift must not increment past GenericLevel")
}

func TestLowerOnlyWidensLevel(t *testing.T) {
	v := NewUnbound[Type](0, openBound())
	v.Lower(3)
	require.Equal(t, Level(3), v.Level())

	v.Lower(1)
	require.Equal(t, Level(3), v.Level(), "Lower must never narrow an existing level")
}

func TestSetLevelRecursesIntoSandwichBoundAndTerminatesOnCycle(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	inner := NewUnbound[Type](0, openBound())
	// c's own bound mentions c itself, plus inner through Sup.
	c.SetConstraint(NewSandwiched(FreeVar{Cell: c}, Nominal{
		Name:   "Wrap",
		Params: []TypeParam{ParamType{T: FreeVar{Cell: inner}}},
	}))

	c.SetLevel(2)

	require.Equal(t, Level(2), c.Level())
	require.Equal(t, Level(2), inner.Level())
	require.True(t, c.IsUnbound(), "the forced-undoable-link used to break the cycle must be fully undone")
}

func TestCrackReturnsTermBehindLinkedCell(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	intT := Nominal{Name: "Int"}
	c.Link(intT)

	require.True(t, EqualTypes(c.Crack(), intT))
}

func TestCrackPanicsOnUnlinkedCell(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	require.Panics(t, func() { c.Crack() })
}

func TestDetachReturnsIndependentCellWithSameBound(t *testing.T) {
	c := NewUnbound[Type](2, openBound())
	d := c.Detach()

	require.NotEqual(t, c.ID(), d.ID())
	require.Equal(t, c.Level(), d.Level())
	require.True(t, d.IsUnbound())

	d.Link(Nominal{Name: "Int"})
	require.False(t, c.IsLinked(), "detach must not share mutable state with the source cell")
}

func TestUnwrapUnboundPanicsOnLinkedCell(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	c.Link(Nominal{Name: "Int"})
	require.Panics(t, func() { c.UnwrapUnbound() })
}

func TestUnwrapLinkedPanicsOnUnboundCell(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	require.Panics(t, func() { c.UnwrapLinked() })
}

func TestNestedUndoableLinksRestoreInLIFOOrder(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	c.UndoableLink(Nominal{Name: "A"})
	c.UndoableLink(Nominal{Name: "B"})

	target, ok := c.linkedTarget()
	require.True(t, ok)
	require.True(t, EqualTypes(target, Nominal{Name: "B"}))

	require.NoError(t, c.Undo())
	target, ok = c.linkedTarget()
	require.True(t, ok)
	require.True(t, EqualTypes(target, Nominal{Name: "A"}), "undoing the inner link must restore the outer one")

	require.NoError(t, c.Undo())
	require.True(t, c.IsUnbound())
}

func TestNewTypeOfCanonicalizesUniverseToDegenerateSandwich(t *testing.T) {
	k := NewTypeOf(Universe{})
	s, ok := k.(Sandwiched)
	require.True(t, ok)
	require.IsType(t, Never{}, s.Sub)
	require.IsType(t, Obj{}, s.Sup)
}

func TestGetTypeReadsBothTypeOfAndDegenerateSandwich(t *testing.T) {
	tv, ok := GetType(NewTypeOf(Nominal{Name: "Int"}))
	require.True(t, ok)
	require.True(t, EqualTypes(tv, Nominal{Name: "Int"}))

	tv, ok = GetType(NewSandwiched(Never{}, Obj{}))
	require.True(t, ok)
	require.IsType(t, Universe{}, tv)

	_, ok = GetType(NewSandwiched(Never{}, Nominal{Name: "Int"}))
	require.False(t, ok, "a non-degenerate sandwich does not carry a Type reading")
}
