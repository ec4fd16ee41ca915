package ast

import "github.com/gopherlang/minic/token"

// ExprStatement is an expression evaluated for side effect; its
// result is discarded at codegen.
type ExprStatement struct {
	Location token.Location
	Value    Expr
}

func (e *ExprStatement) Loc() token.Location { return e.Location }

func (e *ExprStatement) stmtNode() {}

var _ Statement = (*ExprStatement)(nil)
