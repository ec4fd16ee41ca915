package ast

// Expr is implemented by every expression kind. At codegen, literals,
// identifiers, arithmetic, comparisons and calls each leave exactly one
// slot on the symbolic stack; assignments, compound assignments and
// the block/if/loop/while forms leave none.
type Expr interface {
	Node

	// exprNode is a no-op method to differentiate this interface from
	// Statement.
	exprNode()
}
