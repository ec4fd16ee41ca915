package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopherlang/minic/cerrors"
	"github.com/gopherlang/minic/cgctx"
	"github.com/gopherlang/minic/codegen"
	"github.com/gopherlang/minic/lexer"
	"github.com/gopherlang/minic/parser"
	"github.com/gopherlang/minic/registry"
	"github.com/gopherlang/minic/toolchain"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	keepAsm bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <source_file> [target_file]",
	Short: "Compile a source file to a runnable ELF binary",
	Long: `compile runs the full pipeline - lex, parse, resolve, generate
x86-64 assembly, assemble with nasm, and link with ld - producing a
runnable ELF binary.

Examples:
  minic compile program.mn
  minic compile program.mn out
  minic compile program.mn out --verbose`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline stage progress to stderr")
	compileCmd.Flags().BoolVar(&keepAsm, "keep-asm", true, "keep the generated .asm file after a successful link")
}

func runCompile(_ *cobra.Command, args []string) error {
	source := args[0]
	target := defaultTarget(source)
	if len(args) == 2 {
		target = args[1]
	}

	stage := func(name string) func() {
		start := time.Now()
		if verbose {
			fmt.Fprintf(os.Stderr, "    %s\n", name)
		}
		return func() {
			if verbose {
				fmt.Fprintf(os.Stderr, "    %s done (%s)\n", name, time.Since(start))
			}
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s\n", source)
	}

	done := stage("reading")
	content, err := os.ReadFile(source)
	done()
	if err != nil {
		return cerrors.Wrap(cerrors.IOError, err, "reading %s", source)
	}

	done = stage("lexing")
	l := lexer.New(string(content))
	done()

	done = stage("parsing")
	program, err := parser.New(l).ParseProgram()
	done()
	if err != nil {
		return err
	}

	done = stage("codegen")
	reg := registry.FromProgram(program)
	ctx := cgctx.New(reg)
	asm, err := codegen.New(ctx).Generate(program)
	done()
	if err != nil {
		return err
	}

	asmPath := target + ".asm"
	objPath := target + ".o"

	done = stage("writing")
	err = os.WriteFile(asmPath, []byte(asm), 0644)
	done()
	if err != nil {
		return cerrors.Wrap(cerrors.IOError, err, "writing %s", asmPath)
	}

	done = stage("assembling")
	err = toolchain.Assemble(asmPath)
	done()
	if err != nil {
		return err
	}

	done = stage("linking")
	err = toolchain.Link(objPath, target)
	done()
	if err != nil {
		return err
	}

	if !keepAsm {
		os.Remove(asmPath)
	}

	if !verbose {
		fmt.Printf("Compiled %s -> %s\n", source, target)
	}
	return nil
}

// defaultTarget strips source's extension, matching §6's default
// output-filename rule.
func defaultTarget(source string) string {
	ext := filepath.Ext(source)
	if ext == "" {
		return source
	}
	return strings.TrimSuffix(source, ext)
}
