// Package cgctx implements the code generator's compile-time state,
// spec §4.4: a symbolic evaluation-stack height, a stack of lexical
// scope frames mapping names to stack offsets, a monotonic label
// counter per tag, a stack of loop labels for break/continue, and a
// reference to the immutable function registry.
package cgctx

import (
	"fmt"
	"strings"

	"github.com/gopherlang/minic/ast"
	"github.com/gopherlang/minic/registry"
)

// VarMeta records one variable's declaration-time frame size (from
// which its current rsp-relative offset is derived) and mutability.
type VarMeta struct {
	Offset    int
	IsMutable bool
}

// VariableFrame is one scope: a function's params, a function's
// locals, or a block's locals. StackSize is the number of 64-bit
// slots currently attributed to this frame.
type VariableFrame struct {
	StackSize int
	Variables map[string]VarMeta
}

func newFrame() *VariableFrame {
	return &VariableFrame{Variables: make(map[string]VarMeta)}
}

// LoopFrame is the {start, end} label pair break/continue resolve
// against.
type LoopFrame struct {
	Start string
	End   string
	// Depth is len(frames) at the point the loop was entered: the
	// frame scopes a break/continue jumping to Start/End must unwind
	// are everything from the top down to, but not including, Depth.
	Depth int
}

// SetResult reports the outcome of Context.SetVariable.
type SetResult int

const (
	SetOK SetResult = iota
	SetNotDeclared
	SetImmutable
)

// Context is the mutable codegen state threaded through a single
// Codegen pass. It is not safe for concurrent use - spec §5 makes
// codegen strictly single-threaded.
type Context struct {
	stackHeight int
	frames      []*VariableFrame
	labelCounts map[string]int
	loopStack   []LoopFrame
	registry    *registry.TypeRegistry
}

// New builds a Context over reg, the pre-built function-signature
// registry (spec §4.3).
func New(reg *registry.TypeRegistry) *Context {
	return &Context{labelCounts: make(map[string]int), registry: reg}
}

// Registry returns the immutable function-signature table this
// Context was built with.
func (c *Context) Registry() *registry.TypeRegistry {
	return c.registry
}

// StackHeight returns the current symbolic stack height, in 64-bit
// slots - exposed chiefly so tests can assert the §8 invariants.
func (c *Context) StackHeight() int {
	return c.stackHeight
}

func (c *Context) currentFrame() *VariableFrame {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

// Push emits a push of operand and records the slot against both the
// global height and the current frame.
func (c *Context) Push(operand string) string {
	c.stackHeight++
	f := c.currentFrame()
	if f == nil {
		f = newFrame()
		c.frames = append(c.frames, f)
	}
	f.StackSize++
	return fmt.Sprintf("    push %s\n", operand)
}

// Pop emits a pop into dst and reverses Push's bookkeeping.
func (c *Context) Pop(dst string) string {
	c.stackHeight--
	if f := c.currentFrame(); f != nil {
		f.StackSize--
	}
	return fmt.Sprintf("    pop %s\n", dst)
}

// AdjustStack performs pure bookkeeping, with no emitted text: it is
// used after a `call` instruction, whose callee replaced N
// caller-pushed argument slots with exactly one return-value slot
// without the caller ever executing an explicit pop/push for that
// exchange.
func (c *Context) AdjustStack(delta int) {
	c.stackHeight += delta
	if f := c.currentFrame(); f != nil {
		f.StackSize += delta
	}
}

// Enter pushes a fresh, empty scope frame. It emits no code.
func (c *Context) Enter() string {
	c.frames = append(c.frames, newFrame())
	return ""
}

// Exit pops the innermost scope frame and emits the rsp restore for
// everything it held.
func (c *Context) Exit() string {
	n := len(c.frames)
	frame := c.frames[n-1]
	c.frames = c.frames[:n-1]
	c.stackHeight -= frame.StackSize
	return fmt.Sprintf("    add rsp, %d\n", 8*frame.StackSize)
}

// DeclareVariable records name at the current frame's current size,
// so that the value already pushed for it (by the caller, just
// before this call) is the slot it resolves to. If no frame is open
// yet, one is created first.
func (c *Context) DeclareVariable(name string, mutable bool) {
	f := c.currentFrame()
	if f == nil {
		f = newFrame()
		c.frames = append(c.frames, f)
	}
	f.Variables[name] = VarMeta{Offset: f.StackSize, IsMutable: mutable}
}

// offsetOf walks the frame stack top-down, accumulating the size of
// every frame that does not contain name, and returns name's distance
// (in 8-byte slots) from the current top of stack.
func (c *Context) offsetOf(name string) (int, bool) {
	offset := 0
	for i := len(c.frames) - 1; i >= 0; i-- {
		f := c.frames[i]
		if meta, ok := f.Variables[name]; ok {
			return f.StackSize - meta.Offset + offset, true
		}
		offset += f.StackSize
	}
	return 0, false
}

func (c *Context) isMutable(name string) (bool, bool) {
	for i := len(c.frames) - 1; i >= 0; i-- {
		if meta, ok := c.frames[i].Variables[name]; ok {
			return meta.IsMutable, true
		}
	}
	return false, false
}

// GetVariable emits a copy of name's current value to the top of the
// stack. ok is false when name was never declared.
func (c *Context) GetVariable(name string) (code string, ok bool) {
	off, ok := c.offsetOf(name)
	if !ok {
		return "", false
	}
	return c.Push(fmt.Sprintf("qword [rsp + %d]", 8*off)), true
}

// SetVariable stores srcReg into name's slot in place. It fails (with
// no emitted code) if name is undeclared or immutable.
func (c *Context) SetVariable(name, srcReg string) (string, SetResult) {
	mutable, ok := c.isMutable(name)
	if !ok {
		return "", SetNotDeclared
	}
	if !mutable {
		return "", SetImmutable
	}
	off, _ := c.offsetOf(name)
	return fmt.Sprintf("    mov qword [rsp + %d], %s\n", 8*off, srcReg), SetOK
}

// CreateLabel returns tag concatenated with a zero-padded, per-tag
// monotonic counter, and advances that counter.
func (c *Context) CreateLabel(tag string) string {
	n := c.labelCounts[tag]
	c.labelCounts[tag] = n + 1
	return fmt.Sprintf("%s%08x", tag, n)
}

// EnterLoop pushes a loop frame around a loop/while body; break/
// continue inside it resolve against start/end. Depth records
// len(frames) at this point, so a break/continue fired from a block
// nested inside the body knows exactly which frames above the loop it
// must unwind before jumping.
func (c *Context) EnterLoop(start, end string) {
	c.loopStack = append(c.loopStack, LoopFrame{Start: start, End: end, Depth: len(c.frames)})
}

// ExitLoop pops the innermost loop frame.
func (c *Context) ExitLoop() {
	c.loopStack = c.loopStack[:len(c.loopStack)-1]
}

// CurrentLoop returns the innermost loop frame, or false if break/
// continue was used outside of any loop.
func (c *Context) CurrentLoop() (LoopFrame, bool) {
	if len(c.loopStack) == 0 {
		return LoopFrame{}, false
	}
	return c.loopStack[len(c.loopStack)-1], true
}

// UnwindTo emits the rsp restore for every scope frame opened since
// depth (as recorded by EnterLoop), for a break/continue jumping out
// of those frames mid-block. It leaves the frame bookkeeping itself
// untouched: the straight-line path through the same frames still
// walks them normally via Exit() once control actually falls through
// to there.
func (c *Context) UnwindTo(depth int) string {
	var b strings.Builder
	for i := len(c.frames) - 1; i >= depth; i-- {
		fmt.Fprintf(&b, "    add rsp, %d\n", 8*c.frames[i].StackSize)
	}
	return b.String()
}

// EnterFunction pushes the params frame (stack_size = 1 + len(params),
// the extra slot for the return address `call` will push) and
// declares each parameter at its caller-pushed-left-to-right offset,
// then pushes an empty locals frame on top. It emits no code: the
// parameter values and return address are already on the real stack,
// placed there by the caller and by `call` itself.
func (c *Context) EnterFunction(params []ast.Param) {
	paramCount := len(params)
	frame := &VariableFrame{StackSize: paramCount + 1, Variables: make(map[string]VarMeta)}
	for i, p := range params {
		// Declared left-to-right, but the last-pushed argument sits
		// closest to the top: param i's offset from the frame's top
		// (before any locals are pushed) is paramCount-i.
		frame.Variables[p.Name] = VarMeta{Offset: i + 1}
	}
	c.frames = append(c.frames, frame)
	c.stackHeight += paramCount + 1
	c.Enter()
}

// UnwindToFunction is the function epilogue (§4.5, §9 open question on
// Return): it assumes exactly one value - the value to return - sits
// on top of the symbolic stack, pops it, discards every scope frame
// down to (but not including) the params frame, discards the params
// frame's argument slots while preserving its return-address slot,
// and re-exposes the return address on top before `ret`. This fully
// unwinds nested scopes, unlike the reference implementation the spec
// calls out as incomplete here.
func (c *Context) UnwindToFunction() string {
	var b strings.Builder

	b.WriteString(c.Pop("rax"))

	for len(c.frames) > 1 {
		n := len(c.frames)
		frame := c.frames[n-1]
		c.frames = c.frames[:n-1]
		c.stackHeight -= frame.StackSize
		fmt.Fprintf(&b, "    add rsp, %d\n", 8*frame.StackSize)
	}

	paramsFrame := c.frames[0]
	c.frames = c.frames[:0]
	paramCount := paramsFrame.StackSize - 1
	c.stackHeight -= paramsFrame.StackSize

	b.WriteString("    pop rbx\n")
	fmt.Fprintf(&b, "    add rsp, %d\n", 8*paramCount)
	b.WriteString("    push rax\n")
	b.WriteString("    push rbx\n")
	b.WriteString("    ret\n")

	return b.String()
}
