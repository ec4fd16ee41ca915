package ast

import "github.com/gopherlang/minic/token"

// Block is a lexically-scoped sequence of statements. At codegen it
// brackets its statements with a fresh Context scope frame (enter) and
// a frame-exit stack-pointer restore (exit).
type Block struct {
	Location   token.Location
	Statements []Statement
}

func (b *Block) Loc() token.Location { return b.Location }

func (b *Block) exprNode() {}

func (b *Block) stmtNode() {}

var _ Expr = (*Block)(nil)
var _ Statement = (*Block)(nil)
