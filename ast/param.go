package ast

import "github.com/gopherlang/minic/token"

// Param is one positional parameter in a Function's signature.
type Param struct {
	Location token.Location
	Name     string
}

func (p Param) Loc() token.Location { return p.Location }
