package bytecode

import (
	"fmt"

	"github.com/cwbudde/slox/internal/lexer"
)

// maxLocals and maxConstants both derive from the single-byte operand width
// the instruction encoding commits to: a slot or constant index that doesn't
// fit in a byte simply cannot be referenced by GET_LOCAL/SET_LOCAL or
// CONSTANT.
const (
	maxLocals     = 256
	maxConstants  = 256
	maxJumpOffset = 1<<16 - 1
)

// SourceLoader resolves a transclude path to source text. The core
// compiler depends only on this interface; pkg/slox supplies the
// filesystem-backed implementation, keeping file I/O out of this package
// the same way the rest of the native surface is kept out.
type SourceLoader interface {
	Load(path string) (string, error)
}

// CompileError is a single accumulated compile-time failure.
type CompileError struct {
	Message string
	Line    int
}

func (e CompileError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// FuncType distinguishes the implicit top-level script function from an
// ordinary `fun` declaration, which matters for what's legal inside it
// (e.g. `return` at script scope is an error).
type FuncType int

const (
	TypeScript FuncType = iota
	TypeFunction
)

// local is a resolved-or-resolving local variable slot. Depth of -1 means
// "declared but not yet initialized", which is what makes `var x = x;`
// a compile error: the name exists but isn't a legal read target yet.
type local struct {
	name  string
	depth int
}

// funcState is one function's worth of compiler bookkeeping. The chain of
// funcStates mirrors lexical nesting of `fun` declarations; Compiler keeps
// them in a slice rather than the classic linked `enclosing` pointer, so
// "current function" is just the slice's last element.
type funcState struct {
	function   *ObjFunction
	funcType   FuncType
	locals     []local
	scopeDepth int
}

// Compiler is a single-pass Pratt parser: it drives the Scanner, and as it
// parses each grammar production it emits bytecode directly into the
// current function's Chunk. There is no intermediate AST.
type Compiler struct {
	heap    *Heap
	scanner *lexer.Scanner
	loader  SourceLoader

	current  lexer.Token
	previous lexer.Token

	hadError  bool
	panicMode bool
	errors    []CompileError

	funcs []*funcState // stack of in-progress functions; last is current
}

// Compile compiles source into a top-level script Function. On success the
// returned error slice is empty. On failure, the returned function is nil
// and every accumulated error is returned — compilation never partially
// succeeds.
func Compile(source string, startLine int, heap *Heap, loader SourceLoader) (*ObjFunction, []CompileError) {
	c := &Compiler{
		heap:    heap,
		scanner: lexer.New(source, startLine),
		loader:  loader,
	}
	c.pushFunc(TypeScript, "")

	c.advance()
	for !c.match(lexer.EOF) {
		c.declaration()
	}

	fn := c.endCompiler()
	if c.hadError {
		return nil, c.errors
	}
	return fn, nil
}

func (c *Compiler) cur() *funcState {
	return c.funcs[len(c.funcs)-1]
}

func (c *Compiler) popFunc() *funcState {
	fs := c.cur()
	c.funcs = c.funcs[:len(c.funcs)-1]
	return fs
}

// --- token stream -----------------------------------------------------

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.Next()
		if c.current.Kind != lexer.ERROR {
			break
		}
		c.errorAtCurrent(c.current.Message)
	}
}

func (c *Compiler) check(kind lexer.TokenType) bool {
	return c.current.Kind == kind
}

func (c *Compiler) match(kind lexer.TokenType) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(kind lexer.TokenType, message string) {
	if c.current.Kind == kind {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// --- error reporting and panic-mode recovery ---------------------------

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) error(message string) {
	c.errorAt(c.previous, message)
}

func (c *Compiler) errorAt(tok lexer.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true
	c.errors = append(c.errors, CompileError{Line: tok.Line, Message: message})
}

// synchronize discards tokens until it finds a statement boundary, so a
// single syntax error doesn't cascade into a flood of spurious ones.
func (c *Compiler) synchronize() {
	c.panicMode = false

	for c.current.Kind != lexer.EOF {
		if c.previous.Kind == lexer.SEMICOLON {
			return
		}
		switch c.current.Kind {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.UNVAR, lexer.FOR,
			lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN:
			return
		}
		c.advance()
	}
}

// --- bytecode emission --------------------------------------------------

func (c *Compiler) chunk() *Chunk {
	return c.cur().function.Chunk
}

func (c *Compiler) emitByte(b byte) {
	c.chunk().Write(b, c.previous.Line)
}

func (c *Compiler) emitOp(op OpCode) {
	c.emitByte(byte(op))
}

func (c *Compiler) emitOpByte(op OpCode, operand byte) {
	c.emitByte(byte(op))
	c.emitByte(operand)
}

func (c *Compiler) emitConstant(v Value) {
	idx := c.makeConstant(v)
	c.emitOpByte(OpConstant, idx)
}

func (c *Compiler) makeConstant(v Value) byte {
	if len(c.chunk().Constants) >= maxConstants {
		c.error("Too many constants in one chunk.")
		return 0
	}
	return byte(c.chunk().AddConstant(v))
}

// emitJump writes a jump opcode with a two-byte placeholder operand and
// returns the offset of that placeholder for patchJump to fill in later.
func (c *Compiler) emitJump(op OpCode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return len(c.chunk().Code) - 2
}

// patchJump backfills the two-byte operand at offset with the distance
// from just after it to the current end of the chunk.
func (c *Compiler) patchJump(offset int) {
	jump := len(c.chunk().Code) - offset - 2
	if jump > maxJumpOffset {
		c.error("Too much code to jump over.")
		return
	}
	c.chunk().Code[offset] = byte(jump >> 8)
	c.chunk().Code[offset+1] = byte(jump)
}

// emitLoop writes a LOOP back to loopStart.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(OpLoop)
	offset := len(c.chunk().Code) - loopStart + 2
	if offset > maxJumpOffset {
		c.error("Loop body too large.")
		return
	}
	c.emitByte(byte(offset >> 8))
	c.emitByte(byte(offset))
}

func (c *Compiler) emitReturn() {
	c.emitOp(OpNil)
	c.emitOp(OpReturn)
}

// endCompiler finishes the current function, popping it off the compiler
// stack and returning the finished ObjFunction.
func (c *Compiler) endCompiler() *ObjFunction {
	c.emitReturn()
	fs := c.popFunc()
	return fs.function
}

// --- scopes and locals --------------------------------------------------

func (c *Compiler) beginScope() {
	c.cur().scopeDepth++
}

func (c *Compiler) endScope() {
	fs := c.cur()
	fs.scopeDepth--
	for len(fs.locals) > 0 && fs.locals[len(fs.locals)-1].depth > fs.scopeDepth {
		c.emitOp(OpPop)
		fs.locals = fs.locals[:len(fs.locals)-1]
	}
}

func (c *Compiler) identifierConstant(name string) byte {
	return c.makeConstant(ObjVal(c.heap.InternString(name)))
}

// declareVariable registers a local variable by name, checking that it
// doesn't collide with another local already declared at the same scope
// depth. It is a no-op at script scope, where variables live in globals
// instead.
func (c *Compiler) declareVariable(name string) {
	fs := c.cur()
	if fs.scopeDepth == 0 {
		return
	}
	for i := len(fs.locals) - 1; i >= 0; i-- {
		l := fs.locals[i]
		if l.depth != -1 && l.depth < fs.scopeDepth {
			break
		}
		if l.name == name {
			c.error("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name string) {
	fs := c.cur()
	if len(fs.locals) >= maxLocals {
		c.error("Too many local variables in function.")
		return
	}
	fs.locals = append(fs.locals, local{name: name, depth: -1})
}

func (c *Compiler) markInitialized() {
	fs := c.cur()
	if fs.scopeDepth == 0 {
		return
	}
	fs.locals[len(fs.locals)-1].depth = fs.scopeDepth
}

// resolveLocal scans locals back-to-front for name, matching the
// shadowing rule that the most recently declared local wins. It returns
// -1 if name isn't a local in the current function (so the caller should
// fall back to treating it as a global).
func (c *Compiler) resolveLocal(fs *funcState, name string) int {
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].name == name {
			if fs.locals[i].depth == -1 {
				c.error("Cannot read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}
