package ast

import "github.com/gopherlang/minic/token"

// ExitStatement terminates the process, using Value's evaluation as the
// exit code.
type ExitStatement struct {
	Location token.Location
	Value    Expr
}

func (e *ExitStatement) Loc() token.Location { return e.Location }

func (e *ExitStatement) stmtNode() {}

var _ Statement = (*ExitStatement)(nil)
