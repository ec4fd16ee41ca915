// Package cerrors defines the single error union propagated through the
// compiler's pipeline: every lexer, parser, and codegen failure is
// reported as an *Error carrying a Kind and the token.Location of the
// offending input, per spec §7. The collaborator layers (CLI,
// toolchain) wrap their own IOError/SubprocessError the same way so
// every failure the user sees is rendered uniformly by Format.
package cerrors

import (
	"fmt"
	"strings"

	"github.com/gopherlang/minic/token"
)

// Kind identifies which of the error kinds in spec §7 occurred.
type Kind string

const (
	UnrecognizedCharacter    Kind = "UnrecognizedCharacter"
	UnexpectedToken          Kind = "UnexpectedToken"
	IdentifierNotDeclared    Kind = "IdentifierNotDeclared"
	FunctionNotDeclared      Kind = "FunctionNotDeclared"
	ChangedImmutableVariable Kind = "ChangedImmutableVariable"
	BreakOutsideLoop         Kind = "BreakOutsideLoop"
	IOError                  Kind = "IOError"
	SubprocessError          Kind = "SubprocessError"
)

// Error is the single error type returned by every stage of the
// pipeline. Loc is the zero Location when the failure has no single
// offending token (e.g. a missing source file).
type Error struct {
	Kind    Kind
	Loc     token.Location
	Message string

	// Output, when non-empty, carries captured subprocess stdout/stderr
	// (SubprocessError only) - see toolchain.
	Output string

	cause error
}

func New(kind Kind, loc token.Location, format string, args ...any) *Error {
	return &Error{Kind: kind, Loc: loc, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around an external error (IOError, SubprocessError)
// that has no meaningful source location.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), cause: cause}
}

func (e *Error) Error() string {
	return e.Format("")
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Format renders "kind: line:col: message", and, when source is
// non-empty, appends the offending source line with a caret under the
// column - the same two-part rendering go-dws's CompilerError.Format
// produces.
func (e *Error) Format(source string) string {
	var b strings.Builder

	if e.Loc.Line > 0 {
		fmt.Fprintf(&b, "%s: %s: %s", e.Kind, e.Loc, e.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	}

	if source != "" && e.Loc.Line > 0 {
		if line, ok := sourceLine(source, e.Loc.Line); ok {
			fmt.Fprintf(&b, "\n  %s\n  %s^", line, strings.Repeat(" ", max(0, e.Loc.Column-1)))
		}
	}

	if e.Output != "" {
		fmt.Fprintf(&b, "\n%s", e.Output)
	}

	return b.String()
}

func sourceLine(source string, line int) (string, bool) {
	lines := strings.Split(source, "\n")
	if line < 1 || line > len(lines) {
		return "", false
	}
	return lines[line-1], true
}

