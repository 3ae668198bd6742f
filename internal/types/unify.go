package types

import "fmt"

// Unify is the minimal subtype-checking driver that ties the term
// graph, the cell, and the constraint model together end to end: a
// co-inductive unifier adapted to this package's cycle-safety rules.
// Instead of reflect.DeepEqual over a visited list of type pairs, it
// tracks a set of cell-ID pairs already on the call stack, since
// reflect.DeepEqual would recurse forever through a legally
// self-referential sandwich bound.
type pairKey struct {
	a, b int64
}

// Unify checks that sub is assignable where sup is expected, tightening
// any free variables encountered along the way via UpdateConstraint.
// It returns a DiagnosticError-free plain error on mismatch; callers
// (internal/rpc's Server.Solve) wrap it with their own context.
func Unify(sub, sup Type) error {
	return unify(sub, sup, map[pairKey]bool{})
}

func unify(sub, sup Type, visited map[pairKey]bool) error {
	if fv, ok := sub.(FreeVar); ok {
		if target, linked := fv.Cell.linkedTarget(); linked {
			return unify(target, sup, visited)
		}
	}
	if fv, ok := sup.(FreeVar); ok {
		if target, linked := fv.Cell.linkedTarget(); linked {
			return unify(sub, target, visited)
		}
	}

	subFV, subIsFV := sub.(FreeVar)
	supFV, supIsFV := sup.(FreeVar)
	if subIsFV && supIsFV {
		key := pairKey{subFV.Cell.id, supFV.Cell.id}
		if visited[key] {
			return nil
		}
		visited[key] = true
		if subFV.Cell.id == supFV.Cell.id {
			return nil
		}
		return RefineSuper(subFV.Cell, sup, false)
	}
	if subIsFV {
		return RefineSuper(subFV.Cell, sup, false)
	}
	if supIsFV {
		return RefineSub(supFV.Cell, sub, false)
	}

	if _, ok := sub.(Never); ok {
		return nil
	}
	if _, ok := sup.(Obj); ok {
		return nil
	}

	subNom, subOK := sub.(Nominal)
	supNom, supOK := sup.(Nominal)
	if subOK && supOK {
		if subNom.Name != supNom.Name || len(subNom.Params) != len(supNom.Params) {
			return fmt.Errorf("cannot unify %s with %s", sub, sup)
		}
		for i := range subNom.Params {
			if err := unifyParam(subNom.Params[i], supNom.Params[i], visited); err != nil {
				return err
			}
		}
		return nil
	}

	if EqualTypes(sub, sup) {
		return nil
	}
	return fmt.Errorf("cannot unify %s with %s", sub, sup)
}

func unifyParam(sub, sup TypeParam, visited map[pairKey]bool) error {
	subT, subOK := sub.(ParamType)
	supT, supOK := sup.(ParamType)
	if subOK && supOK {
		return unify(subT.T, supT.T, visited)
	}
	if EqualParams(sub, sup) {
		return nil
	}
	return fmt.Errorf("cannot unify type parameter %s with %s", sub, sup)
}
