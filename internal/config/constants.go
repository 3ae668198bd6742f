// Package config holds small, package-level tunables shared across
// the inference kernel, keeping mode flags and naming constants out
// of the packages that use them.
package config

import "math"

// Version is the current vinec version.
var Version = "0.1.0"

const SourceFileExt = ".vine"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".vine", ".er"}

// InterfaceFileExt is the extension for interface-only stub files:
// declarations without bodies, used to describe host bindings.
const InterfaceFileExt = ".d.er"

// TrimSourceExt removes any recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode indicates if the program is running in test mode. No
// package in this module reads it; printed output such as fresh cell
// IDs is not normalized by it.
var IsTestMode = false

// MaxPrintDepth is the default recursion budget for type printing.
const MaxPrintDepth = 10

// MaxEqualityDepth bounds structural equality and hashing traversals so that
// cyclic sandwich bounds (T <: Add(T)) cannot overflow the stack.
const MaxEqualityDepth = 64

// GenericLevelValue is the concrete sentinel level a variable is
// stamped with once generalized. It must sit above every real binding
// depth a checking pass can ever reach, so that lowering a scope's
// level (entering a nested let) never accidentally pulls a generalized
// variable back down into a live, re-constrainable level.
const GenericLevelValue = math.MaxInt

// Recognized class-constructor call names for the Method Linker.
const (
	ClassCtorName       = "Class"
	InheritCtorName     = "Inherit"
	InheritableCtorName = "Inheritable"
)

// Built-in nominal type names.
const (
	NeverTypeName = "Never"
	ObjTypeName   = "Obj"
	TypeTypeName  = "Type"
)
