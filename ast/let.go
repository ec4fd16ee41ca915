package ast

import "github.com/gopherlang/minic/token"

// LetStatement introduces a binding, mutable or not, in the current
// scope.
type LetStatement struct {
	Location   token.Location
	Identifier string
	Value      Expr
	IsMutable  bool
}

func (l *LetStatement) Loc() token.Location { return l.Location }

func (l *LetStatement) stmtNode() {}

var _ Statement = (*LetStatement)(nil)
