package ast

import "github.com/gopherlang/minic/token"

// CompareOp is the operator of a ComparisonExpr.
type CompareOp string

const (
	Eq CompareOp = "=="
	Ne CompareOp = "!="
	Lt CompareOp = "<"
	Le CompareOp = "<="
	Gt CompareOp = ">"
	Ge CompareOp = ">="
)

// ComparisonExpr is one of Eq/Ne/Lt/Le/Gt/Ge(l, r), per §3. Comparisons
// are non-chaining: the parser accepts at most one per *cmp* production
// (§4.2).
type ComparisonExpr struct {
	Location token.Location
	Op       CompareOp
	Left     Expr
	Right    Expr
}

func (c *ComparisonExpr) Loc() token.Location { return c.Location }

func (c *ComparisonExpr) exprNode() {}

var _ Expr = (*ComparisonExpr)(nil)
