// Package parser implements the recursive-descent parser of spec
// §4.2: a token stream becomes a *ast.Program via stratified
// precedence productions, with a small buffered lookahead backed by a
// deque so assign_expr can distinguish `IDENT OP= ...` compound
// assignment and `IDENT = ...` plain assignment from a plain
// expression without unreading.
package parser

import (
	"github.com/gopherlang/minic/ast"
	"github.com/gopherlang/minic/cerrors"
	"github.com/gopherlang/minic/lexer"
	"github.com/gopherlang/minic/token"
)

// tokenSource is the minimal pull interface the parser needs from the
// lexer; tests substitute a canned source.
type tokenSource interface {
	Next() (*token.Token, error)
}

// Parser buffers tokens pulled from a tokenSource into a small deque,
// so peekAhead(n) never re-lexes.
type Parser struct {
	src       tokenSource
	lookahead []*token.Token // nil entries mark EOF
}

// New builds a Parser pulling from l.
func New(l *lexer.Lexer) *Parser {
	return &Parser{src: l}
}

// fill ensures at least n+1 tokens (or EOF) are buffered.
func (p *Parser) fill(n int) error {
	for len(p.lookahead) <= n {
		tok, err := p.src.Next()
		if err != nil {
			return err
		}
		p.lookahead = append(p.lookahead, tok) // tok may be nil (EOF)
	}
	return nil
}

// peekAhead returns the token n positions ahead of the cursor (0 =
// the next token to be consumed), or nil at EOF.
func (p *Parser) peekAhead(n int) (*token.Token, error) {
	if err := p.fill(n); err != nil {
		return nil, err
	}
	return p.lookahead[n], nil
}

func (p *Parser) peek() (*token.Token, error) {
	return p.peekAhead(0)
}

// advance consumes and returns the next token.
func (p *Parser) advance() (*token.Token, error) {
	tok, err := p.peekAhead(0)
	if err != nil {
		return nil, err
	}
	p.lookahead = p.lookahead[1:]
	return tok, nil
}

// expect consumes the next token, failing with UnexpectedToken unless
// it has type typ.
func (p *Parser) expect(typ token.Type) (*token.Token, error) {
	tok, err := p.advance()
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.Type != typ {
		return nil, unexpectedToken(tok, string(typ))
	}
	return tok, nil
}

// check reports whether the next token has type typ, without
// consuming it.
func (p *Parser) check(typ token.Type) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	return tok != nil && tok.Type == typ, nil
}

func unexpectedToken(tok *token.Token, want string) error {
	if tok == nil {
		return cerrors.New(cerrors.UnexpectedToken, token.Location{}, "unexpected end of input, wanted %s", want)
	}
	return cerrors.New(cerrors.UnexpectedToken, tok.Location, "unexpected token %s, wanted %s", tok, want)
}

// ParseProgram parses a full source file: zero or more function items
// until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return program, nil
		}
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		program.Items = append(program.Items, fn)
	}
}

// parseFunction parses `fn NAME ( params ) body_stmt`.
func (p *Parser) parseFunction() (*ast.Function, error) {
	fnTok, err := p.expect(token.FN)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var params []ast.Param
	closed, err := p.check(token.RPAREN)
	if err != nil {
		return nil, err
	}
	for !closed {
		nameTok, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Location: nameTok.Location, Name: nameTok.Literal})

		comma, err := p.check(token.COMMA)
		if err != nil {
			return nil, err
		}
		if comma {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
		}
		closed, err = p.check(token.RPAREN)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	return &ast.Function{Location: fnTok.Location, Name: nameTok.Literal, Params: params, Body: body}, nil
}

// parseStatement parses one statement, per the control forms in
// spec §4.2.
func (p *Parser) parseStatement() (ast.Statement, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, unexpectedToken(nil, "statement")
	}

	switch tok.Type {
	case token.EXIT:
		return p.parseExit()
	case token.LET:
		return p.parseLet()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.RETURN:
		return p.parseReturn()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parseExit() (ast.Statement, error) {
	tok, err := p.expect(token.EXIT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ExitStatement{Location: tok.Location, Value: value}, nil
}

func (p *Parser) parseLet() (ast.Statement, error) {
	tok, err := p.expect(token.LET)
	if err != nil {
		return nil, err
	}

	isMutable, err := p.check(token.MUT)
	if err != nil {
		return nil, err
	}
	if isMutable {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
	}

	nameTok, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EQUALS); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}

	return &ast.LetStatement{Location: tok.Location, Identifier: nameTok.Literal, Value: value, IsMutable: isMutable}, nil
}

func (p *Parser) parseBreak() (ast.Statement, error) {
	tok, err := p.expect(token.BREAK)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.BreakStatement{Location: tok.Location}, nil
}

func (p *Parser) parseContinue() (ast.Statement, error) {
	tok, err := p.expect(token.CONTINUE)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ContinueStatement{Location: tok.Location}, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok, err := p.expect(token.RETURN)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.ReturnStatement{Location: tok.Location, Value: value}, nil
}

// parseExprStatement parses a bare expression followed by `;`. A
// control-flow expression (if/while/loop/block) used in statement
// position does not require a trailing `;` - the spec's grammar draws
// these from *atom*, but in practice the reference only requires the
// semicolon after value-producing expression statements; this parser
// makes the semicolon optional after a block, if, loop or while
// expression, to match the common C-like convention the other control
// forms already follow.
func (p *Parser) parseExprStatement() (ast.Statement, error) {
	loc, err := p.currentLoc()
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !bracedExpr(value) {
		if _, err := p.expect(token.SEMI); err != nil {
			return nil, err
		}
	} else {
		semi, err := p.check(token.SEMI)
		if err != nil {
			return nil, err
		}
		if semi {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return &ast.ExprStatement{Location: loc, Value: value}, nil
}

// bracedExpr reports whether value is a block or one of the
// control-flow expressions (if, loop, while), for which a trailing `;`
// is optional in statement position.
func bracedExpr(value ast.Expr) bool {
	switch value.(type) {
	case *ast.Block, *ast.IfExpr, *ast.LoopExpr, *ast.WhileExpr:
		return true
	default:
		return false
	}
}

func (p *Parser) currentLoc() (token.Location, error) {
	tok, err := p.peek()
	if err != nil {
		return token.Location{}, err
	}
	if tok == nil {
		return token.Location{}, nil
	}
	return tok.Location, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	tok, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	return p.parseBlockBody(tok)
}

// parseBlockBody parses the statements and closing brace of a block
// whose opening `{` (openTok) has already been consumed.
func (p *Parser) parseBlockBody(openTok *token.Token) (*ast.Block, error) {
	block := &ast.Block{Location: openTok.Location}
	for {
		closed, err := p.check(token.RBRACE)
		if err != nil {
			return nil, err
		}
		if closed {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	return block, nil
}

// parseExpr is the *expression* = *assign_expr* production.
func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseAssignExpr()
}

var compoundAssignOps = map[token.Type]ast.ArithOp{
	token.PLUSEQ:    ast.Add,
	token.MINUSEQ:   ast.Sub,
	token.STAREQ:    ast.Mul,
	token.SLASHEQ:   ast.Div,
	token.PERCENTEQ: ast.Mod,
}

// parseAssignExpr detects the two-token `Identifier SYM` lookahead for
// compound assignment, and the plain-assignment degenerate case
// `Identifier =`; otherwise falls through to *cmp*.
func (p *Parser) parseAssignExpr() (ast.Expr, error) {
	first, err := p.peekAhead(0)
	if err != nil {
		return nil, err
	}
	if first != nil && first.Type == token.IDENTIFIER {
		second, err := p.peekAhead(1)
		if err != nil {
			return nil, err
		}
		if second != nil {
			if op, ok := compoundAssignOps[second.Type]; ok {
				if _, err := p.advance(); err != nil { // identifier
					return nil, err
				}
				if _, err := p.advance(); err != nil { // SYM
					return nil, err
				}
				value, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				return &ast.CompoundAssignExpr{Location: first.Location, Op: op, Identifier: first.Literal, Value: value}, nil
			}
			if second.Type == token.EQUALS {
				if _, err := p.advance(); err != nil { // identifier
					return nil, err
				}
				if _, err := p.advance(); err != nil { // =
					return nil, err
				}
				value, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				return &ast.AssignExpr{Location: first.Location, Identifier: first.Literal, Value: value}, nil
			}
		}
	}
	return p.parseCmp()
}

var comparisonOps = map[token.Type]ast.CompareOp{
	token.EQ:     ast.Eq,
	token.NOTEQ:  ast.Ne,
	token.LANGLE: ast.Lt,
	token.LTEQ:   ast.Le,
	token.RANGLE: ast.Gt,
	token.GTEQ:   ast.Ge,
}

// parseCmp parses one *add*, then an optional single comparator
// followed by one more *add*. Comparisons do not chain.
func (p *Parser) parseCmp() (ast.Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return left, nil
	}
	op, ok := comparisonOps[tok.Type]
	if !ok {
		return left, nil
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	return &ast.ComparisonExpr{Location: tok.Location, Op: op, Left: left, Right: right}, nil
}

var addOps = map[token.Type]ast.ArithOp{
	token.PLUS:  ast.Add,
	token.MINUS: ast.Sub,
}

// parseAdd parses one *mul*, then folds each following `+`/`-` and
// its *mul* operand onto the tree built so far, so that same-tier
// operators group left-associatively.
func (p *Parser) parseAdd() (ast.Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	return p.parseAddTail(left)
}

func (p *Parser) parseAddTail(left ast.Expr) (ast.Expr, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return left, nil
	}
	op, ok := addOps[tok.Type]
	if !ok {
		return left, nil
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}

	loc := tok.Location
	right, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	return p.parseAddTail(&ast.BinaryExpr{Location: loc, Op: op, Left: left, Right: right})
}

func isAddOp(op ast.ArithOp) bool {
	return op == ast.Add || op == ast.Sub
}

var mulOps = map[token.Type]ast.ArithOp{
	token.STAR:    ast.Mul,
	token.SLASH:   ast.Div,
	token.PERCENT: ast.Mod,
}

// parseMul is parseAdd's analogue for `* / %`.
func (p *Parser) parseMul() (ast.Expr, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return p.parseMulTail(left)
}

func (p *Parser) parseMulTail(left ast.Expr) (ast.Expr, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return left, nil
	}
	op, ok := mulOps[tok.Type]
	if !ok {
		return left, nil
	}
	if _, err := p.advance(); err != nil {
		return nil, err
	}

	loc := tok.Location
	right, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	return p.parseMulTail(&ast.BinaryExpr{Location: loc, Op: op, Left: left, Right: right})
}

func isMulOp(op ast.ArithOp) bool {
	return op == ast.Mul || op == ast.Div || op == ast.Mod
}

// parseAtom parses the terminal productions: literals, identifiers
// (with an optional call suffix), parenthesised sub-expressions, and
// the control-flow expressions if/loop/while/block.
func (p *Parser) parseAtom() (ast.Expr, error) {
	tok, err := p.advance()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, unexpectedToken(nil, "expression")
	}

	switch tok.Type {
	case token.INTEGER:
		return &ast.IntegerLiteral{Location: tok.Location, Value: tok.Literal}, nil

	case token.IDENTIFIER:
		isCall, err := p.check(token.LPAREN)
		if err != nil {
			return nil, err
		}
		if !isCall {
			return &ast.Identifier{Location: tok.Location, Name: tok.Literal}, nil
		}
		return p.parseCallArgs(tok)

	case token.LPAREN:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	case token.LBRACE:
		return p.parseBlockBody(tok)

	case token.IF:
		return p.parseIf(tok)

	case token.LOOP:
		return p.parseLoop(tok)

	case token.WHILE:
		return p.parseWhile(tok)

	default:
		return nil, unexpectedToken(tok, "expression")
	}
}

func (p *Parser) parseCallArgs(nameTok *token.Token) (ast.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var args []ast.Expr
	closed, err := p.check(token.RPAREN)
	if err != nil {
		return nil, err
	}
	for !closed {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		comma, err := p.check(token.COMMA)
		if err != nil {
			return nil, err
		}
		if comma {
			if _, err := p.advance(); err != nil {
				return nil, err
			}
		}
		closed, err = p.check(token.RPAREN)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	return &ast.FunctionCall{Location: nameTok.Location, Name: nameTok.Literal, Args: args}, nil
}

func (p *Parser) parseIf(tok *token.Token) (ast.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	check, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	ifExpr := &ast.IfExpr{Location: tok.Location, Check: check, Body: body}

	hasElse, err := p.check(token.ELSE)
	if err != nil {
		return nil, err
	}
	if hasElse {
		if _, err := p.advance(); err != nil {
			return nil, err
		}
		els, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		ifExpr.Else = els
	}

	return ifExpr, nil
}

func (p *Parser) parseLoop(tok *token.Token) (ast.Expr, error) {
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.LoopExpr{Location: tok.Location, Body: body}, nil
}

func (p *Parser) parseWhile(tok *token.Token) (ast.Expr, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	check, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.WhileExpr{Location: tok.Location, Body: body, Check: check}, nil
}
