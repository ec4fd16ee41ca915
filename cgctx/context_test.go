package cgctx

import (
	"testing"

	"github.com/gopherlang/minic/ast"
	"github.com/gopherlang/minic/registry"
	"github.com/stretchr/testify/require"
)

func TestPushPopSymmetry(t *testing.T) {
	c := New(registry.FromProgram(&ast.Program{}))

	require.Equal(t, "    push rax\n", c.Push("rax"))
	require.Equal(t, 1, c.StackHeight())
	require.Equal(t, "    pop rbx\n", c.Pop("rbx"))
	require.Equal(t, 0, c.StackHeight())
}

func TestDeclareAndGetVariable(t *testing.T) {
	c := New(registry.FromProgram(&ast.Program{}))
	c.Enter()

	c.Push("1") // value for x
	c.DeclareVariable("x", false)
	c.Push("2") // value for y
	c.DeclareVariable("y", true)

	codeX, ok := c.GetVariable("x")
	require.True(t, ok)
	require.Equal(t, "    push qword [rsp + 8]\n", codeX)

	codeY, ok := c.GetVariable("y")
	require.True(t, ok)
	// After pushing x's lookup, y is now one slot further away.
	require.Equal(t, "    push qword [rsp + 8]\n", codeY)

	_, ok = c.GetVariable("missing")
	require.False(t, ok)
}

func TestSetVariableImmutableAndUndeclared(t *testing.T) {
	c := New(registry.FromProgram(&ast.Program{}))
	c.Enter()
	c.Push("1")
	c.DeclareVariable("x", false)

	_, status := c.SetVariable("x", "rax")
	require.Equal(t, SetImmutable, status)

	_, status = c.SetVariable("missing", "rax")
	require.Equal(t, SetNotDeclared, status)

	c.Push("2")
	c.DeclareVariable("y", true)
	code, status := c.SetVariable("y", "rax")
	require.Equal(t, SetOK, status)
	require.Equal(t, "    mov qword [rsp + 0], rax\n", code)
}

func TestEnterExitRestoresStack(t *testing.T) {
	c := New(registry.FromProgram(&ast.Program{}))
	c.Enter()
	c.Push("1")
	c.Push("2")
	require.Equal(t, "    add rsp, 16\n", c.Exit())
	require.Equal(t, 0, c.StackHeight())
}

func TestCreateLabelIsMonotonicPerTag(t *testing.T) {
	c := New(registry.FromProgram(&ast.Program{}))

	require.Equal(t, "loop00000000", c.CreateLabel("loop"))
	require.Equal(t, "loop00000001", c.CreateLabel("loop"))
	require.Equal(t, "if00000000", c.CreateLabel("if"))
}

func TestLoopStack(t *testing.T) {
	c := New(registry.FromProgram(&ast.Program{}))

	_, ok := c.CurrentLoop()
	require.False(t, ok)

	c.EnterLoop("start0", "end0")
	frame, ok := c.CurrentLoop()
	require.True(t, ok)
	require.Equal(t, LoopFrame{Start: "start0", End: "end0"}, frame)

	c.ExitLoop()
	_, ok = c.CurrentLoop()
	require.False(t, ok)
}

func TestEnterFunctionParamOffsets(t *testing.T) {
	c := New(registry.FromProgram(&ast.Program{}))
	c.EnterFunction([]ast.Param{{Name: "a"}, {Name: "b"}})

	// No code is emitted: params and the return address are already on
	// the real stack by the time the callee starts.
	require.Equal(t, 3, c.StackHeight())

	codeB, ok := c.GetVariable("b")
	require.True(t, ok)
	require.Equal(t, "    push qword [rsp + 8]\n", codeB)
}

func TestUnwindToFunctionDiscardsLocalsAndArgs(t *testing.T) {
	c := New(registry.FromProgram(&ast.Program{}))
	c.EnterFunction([]ast.Param{{Name: "a"}, {Name: "b"}})

	c.Push("1")
	c.DeclareVariable("local", true)

	c.Push("rax") // the value to return

	code := c.UnwindToFunction()
	require.Equal(t, 0, c.StackHeight())
	require.Contains(t, code, "pop rax\n")
	require.Contains(t, code, "add rsp, 8\n")  // the locals frame
	require.Contains(t, code, "pop rbx\n")     // the return address
	require.Contains(t, code, "add rsp, 16\n") // the two argument slots
	require.Contains(t, code, "push rax\n")
	require.Contains(t, code, "push rbx\n")
	require.Contains(t, code, "ret\n")
}
