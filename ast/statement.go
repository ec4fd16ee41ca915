package ast

// Statement is implemented by every statement kind: Exit, Let, Expr,
// Break, Continue, Return. Block, If, Loop and While are expressions
// (§3) but are most often used in statement position.
type Statement interface {
	Node

	// stmtNode is a no-op method to differentiate this interface from
	// Expr.
	stmtNode()
}
