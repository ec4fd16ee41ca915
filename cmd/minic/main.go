package main

import (
	"fmt"
	"os"

	"github.com/gopherlang/minic/cmd/minic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
