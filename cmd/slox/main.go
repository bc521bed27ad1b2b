// Command slox is the shell entry point for the interpreter: argument
// dispatch and file reading live here, deliberately kept outside the
// core compiler/VM package (internal/bytecode) and its embedding API
// (pkg/slox).
package main

import (
	"os"

	"github.com/cwbudde/slox/cmd/slox/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
