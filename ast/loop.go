package ast

import "github.com/gopherlang/minic/token"

// LoopExpr runs Body forever; the only way out is Break (or Return, or
// process exit).
type LoopExpr struct {
	Location token.Location
	Body     Statement
}

func (l *LoopExpr) Loc() token.Location { return l.Location }

func (l *LoopExpr) exprNode() {}

func (l *LoopExpr) stmtNode() {}

var _ Expr = (*LoopExpr)(nil)
var _ Statement = (*LoopExpr)(nil)
