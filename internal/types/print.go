package types

import "github.com/vinelang/vinec/internal/config"

// FormatType renders t the way diagnostics show it to a user: depth
// limited, no internal cell IDs or level annotations.
func FormatType(t Type) string {
	return t.render(config.MaxPrintDepth, false)
}

// FormatTypeParam is FormatType's TypeParam twin.
func FormatTypeParam(p TypeParam) string {
	return p.render(config.MaxPrintDepth, false)
}

// DebugType renders t with cell IDs, constraints, and levels visible,
// rather than the user-facing rendering.
func DebugType(t Type) string {
	return t.render(config.MaxPrintDepth, true)
}

// DebugConstraint renders a bound in debug form.
func DebugConstraint(c Constraint) string {
	return c.render(config.MaxPrintDepth, true)
}
