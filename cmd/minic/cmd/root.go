// Package cmd is the minic command-line front-end: a Cobra root
// command carrying the single `compile` subcommand over the
// lexer/parser/registry/cgctx/codegen/toolchain pipeline.
package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "minic",
	Short: "minic is an ahead-of-time compiler to x86-64 NASM assembly",
	Long: `minic compiles programs written in a small C-like imperative
language directly to x86-64 assembly, assembles the result with nasm,
and links it with ld into a runnable ELF binary.`,
	Version: "0.1.0-dev",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
