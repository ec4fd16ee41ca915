package ast

import "github.com/gopherlang/minic/token"

// Identifier references a variable binding, resolved at codegen time
// via the enclosing Context's scope stack.
type Identifier struct {
	Location token.Location
	Name     string
}

func (i *Identifier) Loc() token.Location { return i.Location }

func (i *Identifier) exprNode() {}

var _ Expr = (*Identifier)(nil)
