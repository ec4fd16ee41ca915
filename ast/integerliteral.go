package ast

import "github.com/gopherlang/minic/token"

// IntegerLiteral is a run of decimal digits, kept as text: it is never
// parsed to a number, only emitted verbatim as an assembly operand.
type IntegerLiteral struct {
	Location token.Location
	Value    string
}

func (i *IntegerLiteral) Loc() token.Location { return i.Location }

func (i *IntegerLiteral) exprNode() {}

var _ Expr = (*IntegerLiteral)(nil)
