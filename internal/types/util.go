package types

// Package types implements the core of the inference kernel: the type
// term graph (Type/TypeParam), the free-variable cell, the sandwich
// constraint model, and level-based generalization. It intentionally
// keeps these in one package rather than splitting them apart: Cell
// and Constraint are mutually recursive with Type and splitting them
// would only add import-cycle ceremony.

// sameInterfaceIdentity reports whether a and b hold the same value,
// treating "uncomparable dynamic type" (e.g. a Nominal whose Params is a
// slice) as "not identical" rather than panicking. This backs the
// "address-identical, no-op otherwise" check Cell.Link needs without
// requiring every Type variant to be comparable with ==.
func sameInterfaceIdentity(a, b any) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

// cellRef is implemented by FreeVar and ParamFreeVar so that the generic
// Cell[T] machinery can detect "to is a free variable wrapping this very
// cell" (the self-link guard in Link/UndoableLink) without needing T to
// carry any other identity method.
type cellRef interface {
	cellID() int64
}
