package registry

import (
	"testing"

	"github.com/gopherlang/minic/ast"
	"github.com/stretchr/testify/require"
)

func TestFromProgramAndGetFunction(t *testing.T) {
	program := &ast.Program{
		Items: []*ast.Function{
			{
				Name:   "add",
				Params: []ast.Param{{Name: "a"}, {Name: "b"}},
				Body:   &ast.Block{},
			},
			{
				Name:   "_start",
				Params: nil,
				Body:   &ast.Block{},
			},
		},
	}

	reg := FromProgram(program)

	add, ok := reg.GetFunction("add")
	require.True(t, ok)
	require.Len(t, add.Params, 2)
	require.Equal(t, "a", add.Params[0].Name)
	require.Equal(t, "b", add.Params[1].Name)

	start, ok := reg.GetFunction("_start")
	require.True(t, ok)
	require.Empty(t, start.Params)

	_, ok = reg.GetFunction("missing")
	require.False(t, ok)
}

// Duplicate function definitions overwrite the earlier signature,
// matching the reference's observable behaviour.
func TestFromProgramDuplicateOverwrites(t *testing.T) {
	program := &ast.Program{
		Items: []*ast.Function{
			{Name: "f", Params: []ast.Param{{Name: "a"}}, Body: &ast.Block{}},
			{Name: "f", Params: []ast.Param{{Name: "a"}, {Name: "b"}}, Body: &ast.Block{}},
		},
	}

	reg := FromProgram(program)

	f, ok := reg.GetFunction("f")
	require.True(t, ok)
	require.Len(t, f.Params, 2)
}
