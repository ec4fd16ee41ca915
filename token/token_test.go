package token

import "testing"

// Trivial test of keyword lookup.
func TestLookupIdentifier(t *testing.T) {
	tests := []struct {
		input        string
		expectedType Type
		expectedOK   bool
	}{
		{"exit", EXIT, true},
		{"let", LET, true},
		{"mut", MUT, true},
		{"if", IF, true},
		{"else", ELSE, true},
		{"loop", LOOP, true},
		{"while", WHILE, true},
		{"break", BREAK, true},
		{"continue", CONTINUE, true},
		{"fn", FN, true},
		{"return", RETURN, true},
		{"foo", IDENTIFIER, false},
		{"x", IDENTIFIER, false},
		{"exitable", IDENTIFIER, false},
	}

	for i, tt := range tests {
		got, ok := LookupIdentifier(tt.input)
		if got != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong, expected=%q, got=%q", i, tt.expectedType, got)
		}
		if ok != tt.expectedOK {
			t.Fatalf("tests[%d] - ok wrong, expected=%v, got=%v", i, tt.expectedOK, ok)
		}
	}
}

func TestLocationString(t *testing.T) {
	loc := Location{Index: 10, Line: 2, Column: 5}
	if got := loc.String(); got != "2:5" {
		t.Fatalf("expected %q, got %q", "2:5", got)
	}
}
