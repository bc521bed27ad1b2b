package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/slox/pkg/slox"
	"github.com/spf13/cobra"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a script file or inline expression",
	Long: `Execute a script from a file or inline expression.

Examples:
  # Run a script file
  slox run script.lox

  # Evaluate an inline expression
  slox run -e 'print 1 + 2;'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	var source string
	var loader slox.FileSourceLoader

	switch {
	case evalExpr != "":
		source = evalExpr
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		source = string(content)
		loader = slox.FileSourceLoader{BaseDir: filepath.Dir(args[0])}
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	interp := slox.New(slox.WithSourceLoader(loader))

	result, err := interp.Run(source, 1)
	switch result {
	case slox.CompileError:
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("compilation failed")
	case slox.RuntimeError:
		// the VM has already written the formatted error and stack
		// trace to stderr; nothing further to print here.
		return fmt.Errorf("execution failed")
	default:
		if exit, ok := err.(*slox.ExitCode); ok && exit.Code != 0 {
			os.Exit(exit.Code)
		}
		return nil
	}
}
