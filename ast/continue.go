package ast

import "github.com/gopherlang/minic/token"

// ContinueStatement jumps to the start of the innermost labelled loop
// region. Invalid outside one.
type ContinueStatement struct {
	Location token.Location
}

func (c *ContinueStatement) Loc() token.Location { return c.Location }

func (c *ContinueStatement) stmtNode() {}

var _ Statement = (*ContinueStatement)(nil)
