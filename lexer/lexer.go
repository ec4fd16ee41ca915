// Package lexer turns a source file's character stream into a lazy,
// fallible sequence of token.Token values, per spec §4.1.
package lexer

import (
	"github.com/gopherlang/minic/cerrors"
	"github.com/gopherlang/minic/token"
)

// Lexer holds our object-state: the full rune slice of the input plus
// the running position/location.
type Lexer struct {
	characters []rune
	position   int // current character position
	loc        token.Location
}

// New builds a Lexer over the given source text. loc starts at
// {Index:0, Line:1, Column:1} per spec §3.
func New(input string) *Lexer {
	return &Lexer{
		characters: []rune(input),
		loc:        token.Location{Index: 0, Line: 1, Column: 1},
	}
}

func (l *Lexer) peek() rune {
	if l.position >= len(l.characters) {
		return 0
	}
	return l.characters[l.position]
}

func (l *Lexer) peekAt(offset int) rune {
	if l.position+offset >= len(l.characters) {
		return 0
	}
	return l.characters[l.position+offset]
}

// consume advances one character and updates the location: index and
// column both increment, except on '\n' where line increments and
// column resets to 1.
func (l *Lexer) consume() rune {
	ch := l.peek()
	l.position++
	l.loc.Index++
	if ch == '\n' {
		l.loc.Line++
		l.loc.Column = 1
	} else {
		l.loc.Column++
	}
	return ch
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.characters)
}

// Next skips whitespace, then produces the next token or an error. A
// nil token with a nil error signals end of stream (Ok(None) in spec
// terms).
func (l *Lexer) Next() (*token.Token, error) {
	l.skipWhitespace()

	if l.atEnd() {
		return nil, nil
	}

	start := l.loc
	ch := l.peek()

	switch {
	case isAlpha(ch) || ch == '_':
		return l.lexIdentifier(start), nil
	case isDigit(ch):
		return l.lexInteger(start), nil
	default:
		return l.lexSymbol(start)
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && isWhitespace(l.peek()) {
		l.consume()
	}
}

func (l *Lexer) lexIdentifier(start token.Location) *token.Token {
	var buf []rune
	for !l.atEnd() && isAlphaNumeric(l.peek()) {
		buf = append(buf, l.consume())
	}
	text := string(buf)
	if kw, ok := token.LookupIdentifier(text); ok {
		return &token.Token{Type: kw, Literal: text, Location: start}
	}
	return &token.Token{Type: token.IDENTIFIER, Literal: text, Location: start}
}

func (l *Lexer) lexInteger(start token.Location) *token.Token {
	var buf []rune
	for !l.atEnd() && isDigit(l.peek()) {
		buf = append(buf, l.consume())
	}
	return &token.Token{Type: token.INTEGER, Literal: string(buf), Location: start}
}

// symbolTwoChar maps a lead character plus an '=' follower to the
// compound two-character token type, per the §4.1 symbol table.
var symbolTwoChar = map[rune]token.Type{
	'<': token.LTEQ,
	'>': token.GTEQ,
	'!': token.NOTEQ,
	'=': token.EQ,
	'+': token.PLUSEQ,
	'-': token.MINUSEQ,
	'*': token.STAREQ,
	'/': token.SLASHEQ,
	'%': token.PERCENTEQ,
}

// symbolOneChar maps a lead character, when not followed by '=', to its
// single-character token type. '!' has no single-character mapping: a
// bare '!' is a lex error per §4.1.
var symbolOneChar = map[rune]token.Type{
	'<': token.LANGLE,
	'>': token.RANGLE,
	'=': token.EQUALS,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.SLASH,
	'%': token.PERCENT,
	'(': token.LPAREN,
	')': token.RPAREN,
	'{': token.LBRACE,
	'}': token.RBRACE,
	';': token.SEMI,
	',': token.COMMA,
}

func (l *Lexer) lexSymbol(start token.Location) (*token.Token, error) {
	ch := l.consume()

	if _, ok := symbolTwoChar[ch]; ok && l.peek() == '=' {
		l.consume()
		return &token.Token{Type: symbolTwoChar[ch], Literal: string(ch) + "=", Location: start}, nil
	}

	if typ, ok := symbolOneChar[ch]; ok {
		return &token.Token{Type: typ, Literal: string(ch), Location: start}, nil
	}

	return nil, cerrors.New(cerrors.UnrecognizedCharacter, start, "unrecognized character %q", ch)
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlphaNumeric(ch rune) bool {
	return isAlpha(ch) || isDigit(ch) || ch == '_'
}
