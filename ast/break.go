package ast

import "github.com/gopherlang/minic/token"

// BreakStatement jumps to the end of the innermost labelled loop
// region. Invalid outside one.
type BreakStatement struct {
	Location token.Location
}

func (b *BreakStatement) Loc() token.Location { return b.Location }

func (b *BreakStatement) stmtNode() {}

var _ Statement = (*BreakStatement)(nil)
