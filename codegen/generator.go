// generator.go holds the per-operator instruction emitters: the leaf
// assembly fragments that codegen.go's tree walk stitches together.
package codegen

import (
	"fmt"

	"github.com/gopherlang/minic/ast"
)

// genAdd emits rax = rax + rbx.
func genAdd() string {
	return "    add rax, rbx\n"
}

// genSub emits rax = rax - rbx.
func genSub() string {
	return "    sub rax, rbx\n"
}

// genMul emits the unsigned multiply rdx:rax = rax * rbx; the result
// lives in rax (callers only use the 64-bit product).
func genMul() string {
	return "    mul rbx\n"
}

// genDiv emits the unsigned division rdx:rax / rbx; the quotient ends
// up in rax. rdx is zeroed first (§9 open question, resolved): the
// baseline reference leaves rdx uncleared, but div takes rdx as the
// high half of the dividend, so any value left there (for instance by
// a preceding mul) silently corrupts the result or faults, so this
// implementation always clears it.
func genDiv() string {
	return "    xor rdx, rdx\n    div rbx\n"
}

// genMod is genDiv's sibling: same division, but the remainder in rdx
// is the one callers want.
func genMod() string {
	return "    xor rdx, rdx\n    div rbx\n"
}

// arithOp returns the instruction text for op (operands already in
// rax/rbx) and the register holding the result.
func arithOp(op ast.ArithOp) (code string, resultReg string) {
	switch op {
	case ast.Add:
		return genAdd(), "rax"
	case ast.Sub:
		return genSub(), "rax"
	case ast.Mul:
		return genMul(), "rax"
	case ast.Div:
		return genDiv(), "rax"
	case ast.Mod:
		return genMod(), "rdx"
	default:
		panic(fmt.Sprintf("codegen: unhandled arithmetic operator %q", op))
	}
}

// setcc maps a comparison operator to the SETcc condition-code suffix
// used against the low byte of rcx.
var setcc = map[ast.CompareOp]string{
	ast.Eq: "e",
	ast.Ne: "ne",
	ast.Lt: "l",
	ast.Le: "le",
	ast.Gt: "g",
	ast.Ge: "ge",
}

// genCompare emits the signed comparison sequence: operands already
// in rax/rbx, result (0 or 1) left in rcx.
func genCompare(op ast.CompareOp) string {
	suffix, ok := setcc[op]
	if !ok {
		panic(fmt.Sprintf("codegen: unhandled comparison operator %q", op))
	}
	return fmt.Sprintf("    mov rcx, 0\n    cmp rax, rbx\n    set%s cl\n", suffix)
}
