package ast

import "github.com/gopherlang/minic/token"

// Function is the sole Item kind: a top-level named function with
// positional parameters and a body statement (conventionally a Block).
type Function struct {
	Location token.Location
	Name     string
	Params   []Param
	Body     Statement
}

func (f *Function) Loc() token.Location { return f.Location }
