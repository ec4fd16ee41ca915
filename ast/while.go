package ast

import "github.com/gopherlang/minic/token"

// WhileExpr runs Body repeatedly while Check evaluates non-zero.
// Continue re-evaluates Check (§9 open question, resolved).
type WhileExpr struct {
	Location token.Location
	Check    Expr
	Body     Statement
}

func (w *WhileExpr) Loc() token.Location { return w.Location }

func (w *WhileExpr) exprNode() {}

func (w *WhileExpr) stmtNode() {}

var _ Expr = (*WhileExpr)(nil)
var _ Statement = (*WhileExpr)(nil)
