package cerrors

import (
	"strings"
	"testing"

	"github.com/gopherlang/minic/token"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name        string
		err         *Error
		source      string
		wantContain []string
	}{
		{
			name:   "with source line and caret",
			err:    New(IdentifierNotDeclared, token.Location{Line: 1, Column: 10}, "undeclared variable %q", "x"),
			source: "let y = x + 5;",
			wantContain: []string{
				"IdentifierNotDeclared: 1:10",
				"let y = x + 5;",
				"^",
			},
		},
		{
			name: "without source",
			err:  New(UnexpectedToken, token.Location{Line: 5, Column: 15}, "unexpected token"),
			wantContain: []string{
				"UnexpectedToken: 5:15: unexpected token",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(tt.source)
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("Format() = %q, want substring %q", got, want)
				}
			}
		})
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := &Error{Kind: IOError, Message: "boom"}
	wrapped := Wrap(SubprocessError, cause, "nasm failed")
	if wrapped.Unwrap() != cause {
		t.Fatalf("expected Unwrap to return the wrapped cause")
	}
}
