package ast

import "github.com/gopherlang/minic/token"

// CompoundAssignExpr is `identifier OP= value`, one of
// AddAssign/SubAssign/MulAssign/DivAssign/ModAssign, per §3. It fails
// codegen if Identifier is not a mutable binding.
type CompoundAssignExpr struct {
	Location   token.Location
	Op         ArithOp
	Identifier string
	Value      Expr
}

func (c *CompoundAssignExpr) Loc() token.Location { return c.Location }

func (c *CompoundAssignExpr) exprNode() {}

var _ Expr = (*CompoundAssignExpr)(nil)
