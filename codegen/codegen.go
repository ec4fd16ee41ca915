// Package codegen walks a parsed Program and emits NASM-syntax x86-64
// assembly text, per spec §4.5. It is a pure pre-order tree walk:
// every node produces a string, and the caller concatenates.
package codegen

import (
	"fmt"
	"strings"

	"github.com/gopherlang/minic/ast"
	"github.com/gopherlang/minic/cerrors"
	"github.com/gopherlang/minic/cgctx"
)

// Codegen holds the mutable Context threaded through one compilation.
type Codegen struct {
	ctx *cgctx.Context
}

// New builds a Codegen over ctx.
func New(ctx *cgctx.Context) *Codegen {
	return &Codegen{ctx: ctx}
}

const header = `; generated by minic - hand edits will be lost
global _start
section .text

`

// Generate produces the full assembly text for program, or the first
// error encountered.
func (g *Codegen) Generate(program *ast.Program) (string, error) {
	var body strings.Builder
	for _, fn := range program.Items {
		code, err := g.genFunction(fn)
		if err != nil {
			return "", err
		}
		body.WriteString(code)
	}
	return header + body.String(), nil
}

// genFunction emits one function's label, prologue, body, and a
// fallback epilogue for bodies whose control flow falls off the end
// without an explicit `return`.
func (g *Codegen) genFunction(fn *ast.Function) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", fn.Name)

	g.ctx.EnterFunction(fn.Params)

	bodyCode, terminated, err := g.genStatement(fn.Body)
	if err != nil {
		return "", err
	}
	b.WriteString(bodyCode)

	if !terminated {
		b.WriteString(g.ctx.Push("0"))
		b.WriteString(g.ctx.UnwindToFunction())
	}

	return b.String(), nil
}

// genStatement emits stmt's code and reports whether control has
// already left the function by the end of it - i.e. whether a
// `return` on every reachable path already ran UnwindToFunction and
// fully cleared the frame stack. The caller (genBlock) uses this to
// know whether its own Exit() is still safe to call.
func (g *Codegen) genStatement(stmt ast.Statement) (string, bool, error) {
	switch s := stmt.(type) {
	case *ast.ExitStatement:
		code, err := g.genExit(s)
		return code, false, err
	case *ast.LetStatement:
		code, err := g.genLet(s)
		return code, false, err
	case *ast.ExprStatement:
		code, err := g.genExprStatement(s)
		return code, false, err
	case *ast.BreakStatement:
		code, err := g.genBreak(s)
		return code, false, err
	case *ast.ContinueStatement:
		code, err := g.genContinue(s)
		return code, false, err
	case *ast.ReturnStatement:
		code, err := g.genReturn(s)
		return code, true, err
	case *ast.Block:
		return g.genBlock(s)
	case *ast.IfExpr:
		return g.genIf(s)
	case *ast.LoopExpr:
		return g.genLoop(s)
	case *ast.WhileExpr:
		return g.genWhile(s)
	default:
		panic(fmt.Sprintf("codegen: unhandled statement type %T", stmt))
	}
}

func (g *Codegen) genExpr(expr ast.Expr) (string, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return g.ctx.Push(e.Value), nil
	case *ast.Identifier:
		return g.genIdentifier(e)
	case *ast.BinaryExpr:
		return g.genBinary(e)
	case *ast.ComparisonExpr:
		return g.genComparison(e)
	case *ast.CompoundAssignExpr:
		return g.genCompoundAssign(e)
	case *ast.AssignExpr:
		return g.genAssign(e)
	case *ast.FunctionCall:
		return g.genCall(e)
	case *ast.Block:
		code, _, err := g.genBlock(e)
		return code, err
	case *ast.IfExpr:
		code, _, err := g.genIf(e)
		return code, err
	case *ast.LoopExpr:
		code, _, err := g.genLoop(e)
		return code, err
	case *ast.WhileExpr:
		code, _, err := g.genWhile(e)
		return code, err
	default:
		panic(fmt.Sprintf("codegen: unhandled expression type %T", expr))
	}
}

func (g *Codegen) genExit(stmt *ast.ExitStatement) (string, error) {
	valueCode, err := g.genExpr(stmt.Value)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(valueCode)
	b.WriteString("    mov rax, 60\n")
	b.WriteString(g.ctx.Pop("rdi"))
	b.WriteString("    syscall\n")
	return b.String(), nil
}

func (g *Codegen) genLet(stmt *ast.LetStatement) (string, error) {
	valueCode, err := g.genExpr(stmt.Value)
	if err != nil {
		return "", err
	}
	g.ctx.DeclareVariable(stmt.Identifier, stmt.IsMutable)
	return valueCode, nil
}

// genExprStatement leaves whatever its expression pushed on the stack
// (one slot for a value-producing expression, none for an assignment
// or a block/if/loop/while); the enclosing block's exit() (or, at
// function top level, the function epilogue) restores rsp en masse.
func (g *Codegen) genExprStatement(stmt *ast.ExprStatement) (string, error) {
	return g.genExpr(stmt.Value)
}

// genBreak unwinds every scope frame opened since the loop was
// entered before jumping - break/continue may fire from a block
// nested arbitrarily deep inside the loop body, and that block's own
// Exit() (which runs on the straight-line path, not this jump) would
// otherwise never execute for this path, leaving rsp desynchronized
// from every frame beneath the loop from here on.
func (g *Codegen) genBreak(stmt *ast.BreakStatement) (string, error) {
	loop, ok := g.ctx.CurrentLoop()
	if !ok {
		return "", cerrors.New(cerrors.BreakOutsideLoop, stmt.Loc(), "break outside of a loop")
	}
	return g.ctx.UnwindTo(loop.Depth) + fmt.Sprintf("    jmp %s\n", loop.End), nil
}

func (g *Codegen) genContinue(stmt *ast.ContinueStatement) (string, error) {
	loop, ok := g.ctx.CurrentLoop()
	if !ok {
		return "", cerrors.New(cerrors.BreakOutsideLoop, stmt.Loc(), "continue outside of a loop")
	}
	return g.ctx.UnwindTo(loop.Depth) + fmt.Sprintf("    jmp %s\n", loop.Start), nil
}

func (g *Codegen) genReturn(stmt *ast.ReturnStatement) (string, error) {
	valueCode, err := g.genExpr(stmt.Value)
	if err != nil {
		return "", err
	}
	return valueCode + g.ctx.UnwindToFunction(), nil
}

func (g *Codegen) genIdentifier(id *ast.Identifier) (string, error) {
	code, ok := g.ctx.GetVariable(id.Name)
	if !ok {
		return "", cerrors.New(cerrors.IdentifierNotDeclared, id.Loc(), "identifier %q not declared", id.Name)
	}
	return code, nil
}

// genBinary evaluates Left then Right, leaving Right on top; the
// first pop therefore yields Right, the second Left, so Left lands in
// rax (the dividend for Div/Mod) and Right in rbx.
func (g *Codegen) genBinary(expr *ast.BinaryExpr) (string, error) {
	leftCode, err := g.genExpr(expr.Left)
	if err != nil {
		return "", err
	}
	rightCode, err := g.genExpr(expr.Right)
	if err != nil {
		return "", err
	}

	op, resultReg := arithOp(expr.Op)

	var b strings.Builder
	b.WriteString(leftCode)
	b.WriteString(rightCode)
	b.WriteString(g.ctx.Pop("rbx"))
	b.WriteString(g.ctx.Pop("rax"))
	b.WriteString(op)
	b.WriteString(g.ctx.Push(resultReg))
	return b.String(), nil
}

func (g *Codegen) genComparison(expr *ast.ComparisonExpr) (string, error) {
	leftCode, err := g.genExpr(expr.Left)
	if err != nil {
		return "", err
	}
	rightCode, err := g.genExpr(expr.Right)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(leftCode)
	b.WriteString(rightCode)
	b.WriteString(g.ctx.Pop("rbx"))
	b.WriteString(g.ctx.Pop("rax"))
	b.WriteString(genCompare(expr.Op))
	b.WriteString(g.ctx.Push("rcx"))
	return b.String(), nil
}

// genCompoundAssign evaluates the right-hand side, then the current
// value of the identifier (pushed last, so it lands on top); the
// first pop yields the identifier's current value, the second the
// right-hand side.
func (g *Codegen) genCompoundAssign(expr *ast.CompoundAssignExpr) (string, error) {
	valueCode, err := g.genExpr(expr.Value)
	if err != nil {
		return "", err
	}
	currentCode, ok := g.ctx.GetVariable(expr.Identifier)
	if !ok {
		return "", cerrors.New(cerrors.IdentifierNotDeclared, expr.Loc(), "identifier %q not declared", expr.Identifier)
	}

	op, resultReg := arithOp(expr.Op)

	var b strings.Builder
	b.WriteString(valueCode)
	b.WriteString(currentCode)
	b.WriteString(g.ctx.Pop("rax"))
	b.WriteString(g.ctx.Pop("rbx"))
	b.WriteString(op)

	setCode, status := g.ctx.SetVariable(expr.Identifier, resultReg)
	switch status {
	case cgctx.SetNotDeclared:
		return "", cerrors.New(cerrors.IdentifierNotDeclared, expr.Loc(), "identifier %q not declared", expr.Identifier)
	case cgctx.SetImmutable:
		return "", cerrors.New(cerrors.ChangedImmutableVariable, expr.Loc(), "cannot assign to immutable variable %q", expr.Identifier)
	}
	b.WriteString(setCode)
	return b.String(), nil
}

// genAssign is CompoundAssignExpr's degenerate case: evaluate the
// right-hand side and store it directly, with no arithmetic.
func (g *Codegen) genAssign(expr *ast.AssignExpr) (string, error) {
	valueCode, err := g.genExpr(expr.Value)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(valueCode)
	b.WriteString(g.ctx.Pop("rax"))

	setCode, status := g.ctx.SetVariable(expr.Identifier, "rax")
	switch status {
	case cgctx.SetNotDeclared:
		return "", cerrors.New(cerrors.IdentifierNotDeclared, expr.Loc(), "identifier %q not declared", expr.Identifier)
	case cgctx.SetImmutable:
		return "", cerrors.New(cerrors.ChangedImmutableVariable, expr.Loc(), "cannot assign to immutable variable %q", expr.Identifier)
	}
	b.WriteString(setCode)
	return b.String(), nil
}

func (g *Codegen) genCall(call *ast.FunctionCall) (string, error) {
	if _, ok := g.ctx.Registry().GetFunction(call.Name); !ok {
		return "", cerrors.New(cerrors.FunctionNotDeclared, call.Loc(), "function %q not declared", call.Name)
	}

	var b strings.Builder
	for _, arg := range call.Args {
		code, err := g.genExpr(arg)
		if err != nil {
			return "", err
		}
		b.WriteString(code)
	}
	fmt.Fprintf(&b, "    call %s\n", call.Name)

	// The callee replaced len(Args) argument slots with exactly one
	// return-value slot; no push/pop was executed here to account for
	// that exchange, so the bookkeeping is adjusted directly.
	g.ctx.AdjustStack(1 - len(call.Args))

	return b.String(), nil
}

// genBlock emits Enter()/statements/Exit() and reports whether a
// `return` among its statements already ran UnwindToFunction. In that
// case every statement after it is unreachable and skipped, and the
// block's own Exit() is skipped too - UnwindToFunction already
// cleared the frame stack down past this block's own frame, so
// calling Exit() here would pop a frame that is no longer there.
func (g *Codegen) genBlock(blk *ast.Block) (string, bool, error) {
	var b strings.Builder
	b.WriteString(g.ctx.Enter())
	terminated := false
	for _, stmt := range blk.Statements {
		code, done, err := g.genStatement(stmt)
		if err != nil {
			return "", false, err
		}
		b.WriteString(code)
		if done {
			terminated = true
			break
		}
	}
	if !terminated {
		b.WriteString(g.ctx.Exit())
	}
	return b.String(), terminated, nil
}

// genIf reports terminated only when both arms are present and both
// terminate: the if/else pair then leaves no reachable path that
// falls through to endifLabel, so the enclosing block knows control
// already left the function on every branch.
func (g *Codegen) genIf(expr *ast.IfExpr) (string, bool, error) {
	ifLabel := g.ctx.CreateLabel("if")
	elseLabel := g.ctx.CreateLabel("else")
	endifLabel := g.ctx.CreateLabel("endif")

	checkCode, err := g.genExpr(expr.Check)
	if err != nil {
		return "", false, err
	}
	popCheck := g.ctx.Pop("rax")
	bodyCode, bodyTerminated, err := g.genStatement(expr.Body)
	if err != nil {
		return "", false, err
	}
	var elseCode string
	elseTerminated := false
	if expr.Else != nil {
		elseCode, elseTerminated, err = g.genStatement(expr.Else)
		if err != nil {
			return "", false, err
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", ifLabel)
	b.WriteString(checkCode)
	b.WriteString(popCheck)
	b.WriteString("    or rax, rax\n")
	fmt.Fprintf(&b, "    jz %s\n", elseLabel)
	b.WriteString(bodyCode)
	fmt.Fprintf(&b, "    jmp %s\n", endifLabel)
	fmt.Fprintf(&b, "%s:\n", elseLabel)
	b.WriteString(elseCode)
	fmt.Fprintf(&b, "%s:\n", endifLabel)

	terminated := expr.Else != nil && bodyTerminated && elseTerminated
	return b.String(), terminated, nil
}

// genLoop always reports terminated=false to its caller: a `loop`
// only gives up control via break (back to its own enclosing scope,
// frames intact) or an unconditional return inside the body, which
// that body's own genStatement/genBlock already unwound correctly on
// its own. Either way the code after the loop statement still runs
// with an intact frame stack from this function's point of view.
func (g *Codegen) genLoop(loop *ast.LoopExpr) (string, bool, error) {
	startLabel := g.ctx.CreateLabel("loop")
	endLabel := g.ctx.CreateLabel("endloop")

	g.ctx.EnterLoop(startLabel, endLabel)
	bodyCode, _, err := g.genStatement(loop.Body)
	g.ctx.ExitLoop()
	if err != nil {
		return "", false, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", startLabel)
	b.WriteString(bodyCode)
	fmt.Fprintf(&b, "    jmp %s\n", startLabel)
	fmt.Fprintf(&b, "%s:\n", endLabel)
	return b.String(), false, nil
}

// genWhile re-evaluates Check on `continue` (§9 open question,
// resolved): continue jumps to the start label, ahead of the check.
func (g *Codegen) genWhile(expr *ast.WhileExpr) (string, bool, error) {
	startLabel := g.ctx.CreateLabel("while")
	endLabel := g.ctx.CreateLabel("endwhile")

	g.ctx.EnterLoop(startLabel, endLabel)
	checkCode, err := g.genExpr(expr.Check)
	if err != nil {
		g.ctx.ExitLoop()
		return "", false, err
	}
	popCheck := g.ctx.Pop("rax")
	bodyCode, _, err := g.genStatement(expr.Body)
	g.ctx.ExitLoop()
	if err != nil {
		return "", false, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", startLabel)
	b.WriteString(checkCode)
	b.WriteString(popCheck)
	b.WriteString("    or rax, rax\n")
	fmt.Fprintf(&b, "    jz %s\n", endLabel)
	b.WriteString(bodyCode)
	fmt.Fprintf(&b, "    jmp %s\n", startLabel)
	fmt.Fprintf(&b, "%s:\n", endLabel)
	return b.String(), false, nil
}
