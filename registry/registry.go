// Package registry collects function signatures from a parsed Program,
// ahead of codegen, so that calls and entries can be resolved by name
// (spec §4.3). It is built once and is immutable thereafter.
package registry

import "github.com/gopherlang/minic/ast"

// Function is the stored signature of one top-level function.
type Function struct {
	Params []ast.Param
}

// TypeRegistry maps function name to signature. Duplicates overwrite
// rather than error, matching the baseline behaviour spec.md §4.3
// describes for the reference implementation.
type TypeRegistry struct {
	functions map[string]Function
}

// FromProgram walks program once, recording every top-level function's
// signature.
func FromProgram(program *ast.Program) *TypeRegistry {
	r := &TypeRegistry{functions: make(map[string]Function, len(program.Items))}
	for _, fn := range program.Items {
		r.functions[fn.Name] = Function{Params: fn.Params}
	}
	return r
}

// GetFunction returns the stored signature for name, or false if no
// such function was registered.
func (r *TypeRegistry) GetFunction(name string) (Function, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}
