package ast

import "github.com/gopherlang/minic/token"

// FunctionCall invokes Name with Args evaluated left-to-right, each
// pushing one slot before the `call` instruction is emitted.
type FunctionCall struct {
	Location token.Location
	Name     string
	Args     []Expr
}

func (c *FunctionCall) Loc() token.Location { return c.Location }

func (c *FunctionCall) exprNode() {}

var _ Expr = (*FunctionCall)(nil)
