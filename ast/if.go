package ast

import "github.com/gopherlang/minic/token"

// IfExpr runs Body when Check evaluates non-zero, otherwise Else (if
// present). Body and Else are single statements, commonly a *Block.
type IfExpr struct {
	Location token.Location
	Check    Expr
	Body     Statement
	Else     Statement // nil when there is no else-arm
}

func (i *IfExpr) Loc() token.Location { return i.Location }

func (i *IfExpr) exprNode() {}

func (i *IfExpr) stmtNode() {}

var _ Expr = (*IfExpr)(nil)
var _ Statement = (*IfExpr)(nil)
