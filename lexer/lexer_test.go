package lexer

import (
	"testing"

	"github.com/gopherlang/minic/token"
)

// Trivial test of the parsing of integers and identifiers.
func TestParseIdentifiersAndIntegers(t *testing.T) {
	input := `let mut x = 43;`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.LET, "let"},
		{token.MUT, "mut"},
		{token.IDENTIFIER, "x"},
		{token.EQUALS, "="},
		{token.INTEGER, "43"},
		{token.SEMI, ";"},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %s", i, err)
		}
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}

	tok, err := l.Next()
	if err != nil || tok != nil {
		t.Fatalf("expected end of stream, got tok=%v err=%v", tok, err)
	}
}

// Trivial test of the multi-character symbol disambiguation table.
func TestParseOperators(t *testing.T) {
	input := `+ - * / % == != >= <= += -= *= /= %= < > ( ) { } ; ,`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.STAR, "*"},
		{token.SLASH, "/"},
		{token.PERCENT, "%"},
		{token.EQ, "=="},
		{token.NOTEQ, "!="},
		{token.GTEQ, ">="},
		{token.LTEQ, "<="},
		{token.PLUSEQ, "+="},
		{token.MINUSEQ, "-="},
		{token.STAREQ, "*="},
		{token.SLASHEQ, "/="},
		{token.PERCENTEQ, "%="},
		{token.LANGLE, "<"},
		{token.RANGLE, ">"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RBRACE, "}"},
		{token.SEMI, ";"},
		{token.COMMA, ","},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %s", i, err)
		}
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong, expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong, expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

// Trivial test of invalid input.
func TestUnrecognizedCharacter(t *testing.T) {
	l := New(`$`)
	tok, err := l.Next()
	if err == nil {
		t.Fatalf("expected an error for '$', got token %v", tok)
	}
}

// A bare '!' not followed by '=' is a lex error.
func TestBangWithoutEquals(t *testing.T) {
	l := New(`!x`)
	tok, err := l.Next()
	if err == nil {
		t.Fatalf("expected an error for bare '!', got token %v", tok)
	}
}

// Token locations must be non-decreasing in Index, and line/column
// tracking must follow newlines correctly.
func TestLocationTracking(t *testing.T) {
	input := "let x = 1;\nlet y = 2;"
	l := New(input)

	lastIndex := -1
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if tok == nil {
			break
		}
		if tok.Location.Index < lastIndex {
			t.Fatalf("location index decreased: %d -> %d", lastIndex, tok.Location.Index)
		}
		lastIndex = tok.Location.Index
	}

	// Re-lex just to confirm the second "let" lands on line 2.
	l = New(input)
	var secondLet *token.Token
	count := 0
	for {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if tok == nil {
			break
		}
		if tok.Type == token.LET {
			count++
			if count == 2 {
				secondLet = tok
			}
		}
	}
	if secondLet == nil {
		t.Fatalf("expected to find a second 'let'")
	}
	if secondLet.Location.Line != 2 {
		t.Fatalf("expected second let on line 2, got line %d", secondLet.Location.Line)
	}
}

// Whitespace between tokens must not affect the token sequence produced.
func TestWhitespaceIrrelevant(t *testing.T) {
	tight := New(`1+2`)
	spaced := New("  1  +  2  ")

	for i := 0; i < 3; i++ {
		a, errA := tight.Next()
		b, errB := spaced.Next()
		if errA != nil || errB != nil {
			t.Fatalf("unexpected errors: %v %v", errA, errB)
		}
		if a.Type != b.Type || a.Literal != b.Literal {
			t.Fatalf("token %d differs: %v vs %v", i, a, b)
		}
	}
}
