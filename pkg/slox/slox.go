// Package slox is the public entry point for compiling and running
// scripts: it wires the scanner, compiler, and VM from internal/bytecode
// and internal/lexer behind a small embedder-facing API, the way the
// teacher repo's pkg-level package wraps its own lexer/parser/interp
// pipeline for callers outside the compiler internals.
package slox

import (
	"io"
	"os"

	"github.com/cwbudde/slox/internal/bytecode"
	slerrors "github.com/cwbudde/slox/internal/errors"
	"github.com/cwbudde/slox/internal/natives"
)

// Result mirrors the three outcomes the specification's interpret()
// contract distinguishes for its host.
type Result int

const (
	OK Result = iota
	CompileError
	RuntimeError
)

// Interpreter holds everything that persists across repeated Run calls:
// the shared heap (so string identity holds across separate compiles
// sharing it), the globals table, and configured collaborators.
type Interpreter struct {
	heap *bytecode.Heap
	vm   *bytecode.VM

	stdout, stderr io.Writer
	loader         bytecode.SourceLoader

	extraNatives    []func(vm *bytecode.VM, heap *bytecode.Heap)
	skipCoreNatives bool
}

// New creates an Interpreter, applying opts in order and registering
// the core native surface unless WithoutCoreNatives was given.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		stdout: os.Stdout,
		stderr: os.Stderr,
		heap:   bytecode.NewHeap(),
	}
	for _, opt := range opts {
		opt(i)
	}

	i.vm = bytecode.New(i.heap, i.stdout, i.stderr)
	if !i.skipCoreNatives {
		natives.Register(i.vm, i.heap)
	}
	for _, register := range i.extraNatives {
		register(i.vm, i.heap)
	}
	return i
}

// ExitCode is returned as Run's error when the script executed an EXIT
// statement; Run itself reports OK, since EXIT is a successful,
// host-directed termination rather than a compile or runtime failure.
// The embedder decides whether and how to actually terminate the
// process — the core never calls os.Exit.
type ExitCode struct {
	Code int
}

// Run compiles and executes source, starting line numbering at
// startLine (1 for a fresh file, otherwise wherever a REPL or embedder
// wants line numbers to continue from). On a compile failure the
// accumulated errors are returned as a single joined error; a runtime
// failure's message and trace have already been written to the
// configured stderr by the VM, and its error is returned here as well
// for callers that want it programmatically.
func (i *Interpreter) Run(source string, startLine int) (Result, error) {
	fn, compileErrs := bytecode.Compile(source, startLine, i.heap, i.loader)
	if len(compileErrs) > 0 {
		return CompileError, joinCompileErrors(compileErrs, source)
	}

	outcome, err := i.vm.Interpret(fn)
	switch outcome {
	case bytecode.ResultRuntimeError:
		return RuntimeError, err
	default:
		if exit, ok := err.(*bytecode.ExitError); ok {
			return OK, &ExitCode{Code: exit.Code}
		}
		return OK, nil
	}
}

func (e *ExitCode) Error() string {
	return "exit requested"
}

// joinCompileErrors renders each accumulated bytecode.CompileError as an
// errors.CompilerError so the caller sees the same source-context
// excerpt the teacher's CLI prints for a DWScript parse error, rather
// than a bare "[line N] message" string, then formats the batch with
// errors.FormatErrors the way the teacher's CLI reports a multi-error
// parse failure.
func joinCompileErrors(errs []bytecode.CompileError, source string) error {
	compilerErrs := make([]*slerrors.CompilerError, len(errs))
	wrapped := make([]error, len(errs))
	for idx, e := range errs {
		ce := slerrors.NewCompilerError(e.Line, e.Message, source, "")
		compilerErrs[idx] = ce
		wrapped[idx] = ce
	}
	return &compileFailure{errs: wrapped, formatted: slerrors.FormatErrors(compilerErrs, false)}
}

type compileFailure struct {
	errs      []error
	formatted string
}

func (f *compileFailure) Error() string {
	return f.formatted
}

// Unwrap exposes the individual compile errors for callers that want to
// inspect them with errors.As/errors.Is.
func (f *compileFailure) Unwrap() []error {
	return f.errs
}
