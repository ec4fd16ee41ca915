package ast

import "github.com/gopherlang/minic/token"

// AssignExpr is `identifier = value`: store, no arithmetic. It is the
// degenerate case alongside CompoundAssignExpr's AddAssign/SubAssign/
// MulAssign/DivAssign/ModAssign family - the binding must already
// exist and be mutable, exactly as for a compound assignment.
type AssignExpr struct {
	Location   token.Location
	Identifier string
	Value      Expr
}

func (a *AssignExpr) Loc() token.Location { return a.Location }

func (a *AssignExpr) exprNode() {}

var _ Expr = (*AssignExpr)(nil)
