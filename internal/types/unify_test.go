package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnifyTightensFreeVarSupBound(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	err := Unify(FreeVar{Cell: c}, Nominal{Name: "Int"})
	require.NoError(t, err)

	s, ok := c.Constraint().(Sandwiched)
	require.True(t, ok)
	require.True(t, EqualTypes(s.Sup, Nominal{Name: "Int"}))
}

func TestUnifyMatchesIdenticalNominals(t *testing.T) {
	require.NoError(t, Unify(Nominal{Name: "Int"}, Nominal{Name: "Int"}))
}

func TestUnifyRejectsMismatchedNominals(t *testing.T) {
	err := Unify(Nominal{Name: "Int"}, Nominal{Name: "Str"})
	require.Error(t, err)
}

func TestUnifyNeverIsAssignableToAnything(t *testing.T) {
	require.NoError(t, Unify(Never{}, Nominal{Name: "Int"}))
}

func TestUnifyAnythingIsAssignableToObj(t *testing.T) {
	require.NoError(t, Unify(Nominal{Name: "Int"}, Obj{}))
}

func TestUnifyRecursesIntoNominalParams(t *testing.T) {
	listInt := Nominal{Name: "List", Params: []TypeParam{ParamType{T: Nominal{Name: "Int"}}}}
	c := NewUnbound[Type](0, openBound())
	listVar := Nominal{Name: "List", Params: []TypeParam{ParamType{T: FreeVar{Cell: c}}}}

	require.NoError(t, Unify(listInt, listVar))

	s, ok := c.Constraint().(Sandwiched)
	require.True(t, ok)
	require.True(t, EqualTypes(s.Sub, Nominal{Name: "Int"}))
}

func TestUnifySameSelfReferentialCellReturnsImmediately(t *testing.T) {
	c := NewUnbound[Type](0, openBound())
	self := Nominal{Name: "Wrap", Params: []TypeParam{ParamType{T: FreeVar{Cell: c}}}}
	c.SetConstraint(NewSandwiched(Never{}, self))

	// Unifying a self-referential free variable with itself must return
	// rather than recurse through the cycle in its own bound.
	require.NoError(t, Unify(FreeVar{Cell: c}, FreeVar{Cell: c}))
}
