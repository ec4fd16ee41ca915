// Package ast defines the tagged-variant tree the parser builds and the
// code generator walks, per spec §3. Each statement and expression kind
// lives in its own file, following the shape of a node-per-file AST
// package: a struct, a Loc accessor, and an unexported marker method
// that pins the type to the Statement or Expr interface.
package ast

import "github.com/gopherlang/minic/token"

// Node is implemented by every AST node; it exposes the source location
// the node was parsed from, for error reporting.
type Node interface {
	Loc() token.Location
}
