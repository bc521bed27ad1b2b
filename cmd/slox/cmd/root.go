package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "slox",
	Short: "slox compiles and runs scripts on a bytecode virtual machine",
	Long: `slox is a single-pass bytecode compiler and stack-based VM for a
small dynamically-typed scripting language: block-scoped variables,
first-class functions, numbers, booleans, nil, and strings.

Source is compiled directly to bytecode with no intermediate AST, then
executed by a register-less stack machine with per-call frames.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
