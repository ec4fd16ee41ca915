package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopherlang/minic/cerrors"
	"github.com/stretchr/testify/require"
)

func TestDefaultTargetStripsExtension(t *testing.T) {
	require.Equal(t, "program", defaultTarget("program.mn"))
	require.Equal(t, "dir/program", defaultTarget("dir/program.mn"))
	require.Equal(t, "noext", defaultTarget("noext"))
}

// TestCompilePipelineWritesAssembly exercises the full lex/parse/
// codegen/write stage of the pipeline. Whether nasm/ld are installed
// on the machine running the test is out of this test's control, so it
// only requires that, on failure, the failure is a SubprocessError
// from the toolchain stage and that the .asm file was written either
// way - the assemble/link stages are the only ones allowed to fail.
func TestCompilePipelineWritesAssembly(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "program.mn")
	require.NoError(t, os.WriteFile(source, []byte("fn _start() { exit(0); }"), 0644))

	target := filepath.Join(dir, "program")
	rootCmd.SetArgs([]string{"compile", source, target, "--keep-asm"})
	err := rootCmd.Execute()

	_, statErr := os.Stat(target + ".asm")
	require.NoError(t, statErr, "expected .asm to be written regardless of toolchain availability")

	if err != nil {
		var cerr *cerrors.Error
		require.True(t, errors.As(err, &cerr))
		require.Equal(t, cerrors.SubprocessError, cerr.Kind)
	}
}

func TestCompileRejectsUnreadableSource(t *testing.T) {
	rootCmd.SetArgs([]string{"compile", "/nonexistent/no-such-file.mn"})
	err := rootCmd.Execute()
	require.Error(t, err)

	var cerr *cerrors.Error
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, cerrors.IOError, cerr.Kind)
}

func TestCompileRejectsSyntaxError(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "bad.mn")
	require.NoError(t, os.WriteFile(source, []byte("fn _start() { exit(; }"), 0644))

	rootCmd.SetArgs([]string{"compile", source})
	err := rootCmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "UnexpectedToken")
}
