package types

import "github.com/vinelang/vinec/internal/config"

// EqualTypes is the public entry point for structural type equality,
// applying the package default recursion budget so callers outside
// this package never have to pick one themselves.
func EqualTypes(a, b Type) bool {
	return a.Equal(b, config.MaxEqualityDepth)
}

// EqualParams is EqualTypes' TypeParam twin.
func EqualParams(a, b TypeParam) bool {
	return a.Equal(b, config.MaxEqualityDepth)
}

// EqualConstraints compares two bounds structurally with the same
// budget discipline.
func EqualConstraints(a, b Constraint) bool {
	return a.Equal(b, config.MaxEqualityDepth)
}
