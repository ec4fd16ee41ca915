package ast

import "github.com/gopherlang/minic/token"

// ReturnStatement returns Value's evaluation from the enclosing
// function.
type ReturnStatement struct {
	Location token.Location
	Value    Expr
}

func (r *ReturnStatement) Loc() token.Location { return r.Location }

func (r *ReturnStatement) stmtNode() {}

var _ Statement = (*ReturnStatement)(nil)
