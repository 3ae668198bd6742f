// Package hostbind loads the exported surface of a Go package and
// turns it into the Kind/arity information the inference kernel needs
// to describe a host-provided builtin: a statically typed language
// targeting Python-compatible bytecode still needs a way to describe
// the builtins its runtime exposes without re-deriving their
// signatures from source on every compile.
//
// It loads Go packages with golang.org/x/tools/go/packages and walks
// go/types signatures, producing a small Nominal/Kind arity table
// rather than full binding codegen, since there is no VM or embed
// layer in this tree to generate bindings for.
package hostbind

import (
	"fmt"
	"go/types"
	"os"
	"sort"

	"golang.org/x/tools/go/packages"

	ourtypes "github.com/vinelang/vinec/internal/types"
)

// BuiltinFunc describes one exported Go function's arity as plain
// parameter and result counts, so the checker need not re-derive its
// signature from source each time.
type BuiltinFunc struct {
	GoName   string
	ParamArity int
	ResultArity int
}

// BuiltinType describes one exported Go named type, translated into a
// Nominal constructor kind.
type BuiltinType struct {
	GoName string
	Kind   ourtypes.Kind
}

// LoadResult is everything Load extracted from one Go package.
type LoadResult struct {
	PkgPath string
	Funcs   []BuiltinFunc
	Types   []BuiltinType
}

// Load loads pkgPath (resolved against dir, typically the directory
// containing the .d.er stub that named it) and extracts its exported
// functions and named types.
func Load(dir, pkgPath string) (*LoadResult, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax,
		Dir:  dir,
		Env:  append(os.Environ(), "GOWORK=off"),
	}

	pkgs, err := packages.Load(cfg, pkgPath)
	if err != nil {
		return nil, fmt.Errorf("hostbind: loading %s: %w", pkgPath, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("hostbind: %s resolved to no packages", pkgPath)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("hostbind: %s: %s", pkgPath, pkg.Errors[0].Msg)
	}

	result := &LoadResult{PkgPath: pkgPath}
	scope := pkg.Types.Scope()
	names := scope.Names()
	sort.Strings(names)

	for _, name := range names {
		obj := scope.Lookup(name)
		if !obj.Exported() {
			continue
		}
		switch o := obj.(type) {
		case *types.Func:
			sig, ok := o.Type().(*types.Signature)
			if !ok || sig.Recv() != nil {
				continue
			}
			result.Funcs = append(result.Funcs, BuiltinFunc{
				GoName:      name,
				ParamArity:  sig.Params().Len(),
				ResultArity: sig.Results().Len(),
			})
		case *types.TypeName:
			named, ok := o.Type().(*types.Named)
			if !ok {
				continue
			}
			result.Types = append(result.Types, BuiltinType{
				GoName: name,
				Kind:   ourtypes.MakeArrow(arrowArgs(named.TypeParams().Len())...),
			})
		}
	}

	return result, nil
}

func arrowArgs(n int) []ourtypes.Kind {
	if n == 0 {
		return []ourtypes.Kind{ourtypes.Star}
	}
	args := make([]ourtypes.Kind, n+1)
	for i := range args {
		args[i] = ourtypes.Star
	}
	return args
}
