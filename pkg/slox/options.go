package slox

import (
	"io"

	"github.com/cwbudde/slox/internal/bytecode"
)

// Option configures an Interpreter at construction time, following the
// functional-options style the teacher repo's lexer uses for its own
// construction-time configuration.
type Option func(*Interpreter)

// WithStdout redirects `print`/`echo` output. Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) { i.stdout = w }
}

// WithStderr redirects runtime-error output (message and stack trace,
// written by the VM). Defaults to os.Stderr. Compile errors are not
// written here; Run returns them as its error.
func WithStderr(w io.Writer) Option {
	return func(i *Interpreter) { i.stderr = w }
}

// WithSourceLoader installs the collaborator the compiler consults to
// resolve `transclude` paths. Without one, transclude statements fail
// to compile with "transclude is not supported in this context."
func WithSourceLoader(loader bytecode.SourceLoader) Option {
	return func(i *Interpreter) { i.loader = loader }
}

// WithNatives registers additional native functions beyond the core set
// internal/natives installs by default. register is called once, after the
// core natives, with access to the VM's heap for interning any string
// constants the natives need (display names, error messages).
func WithNatives(register func(vm *bytecode.VM, heap *bytecode.Heap)) Option {
	return func(i *Interpreter) { i.extraNatives = append(i.extraNatives, register) }
}

// WithoutCoreNatives skips registering the built-in natives package,
// for embedders that want a fully custom native surface.
func WithoutCoreNatives() Option {
	return func(i *Interpreter) { i.skipCoreNatives = true }
}
