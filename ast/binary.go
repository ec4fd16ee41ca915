package ast

import "github.com/gopherlang/minic/token"

// ArithOp is the operator of a BinaryExpr.
type ArithOp string

const (
	Add ArithOp = "+"
	Sub ArithOp = "-"
	Mul ArithOp = "*"
	Div ArithOp = "/"
	Mod ArithOp = "%"
)

// BinaryExpr is one of Add/Sub/Mul/Div/Mod(l, r), per §3. Left-
// associativity among same-tier operators is established by the parser
// before the tree reaches codegen (§4.2).
type BinaryExpr struct {
	Location token.Location
	Op       ArithOp
	Left     Expr
	Right    Expr
}

func (b *BinaryExpr) Loc() token.Location { return b.Location }

func (b *BinaryExpr) exprNode() {}

var _ Expr = (*BinaryExpr)(nil)
