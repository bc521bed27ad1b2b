package bytecode

import "github.com/cwbudde/slox/internal/lexer"

// funDeclaration compiles `fun name(params) { body }`. The function's own
// name is bound before its body compiles, so at script scope recursion
// resolves normally as a global. A function declared inside a block is a
// local of the enclosing function; its body searches only its own locals
// (there are no upvalues), so a self-reference there compiles as a global
// lookup.
func (c *Compiler) funDeclaration() {
	global := c.parseVariable("Expect function name.")
	c.markInitialized()
	c.function(TypeFunction)
	c.defineVariable(global)
}

// function compiles a function's parameter list and body into its own
// Chunk, then emits the finished ObjFunction as a constant in the
// enclosing chunk. There are no closures: a function's Chunk is
// self-contained and carries no captured-variable bookkeeping.
func (c *Compiler) function(ft FuncType) {
	name := c.previous.Lexeme()
	c.pushFunc(ft, name)
	c.beginScope()

	c.consume(lexer.LEFT_PAREN, "Expect '(' after function name.")
	if !c.check(lexer.RIGHT_PAREN) {
		for {
			fs := c.cur()
			fs.function.Arity++
			if fs.function.Arity > 255 {
				c.error("Cannot have more than 255 parameters.")
			}
			paramConstant := c.parseVariable("Expect parameter name.")
			c.defineVariable(paramConstant)
			if !c.match(lexer.COMMA) {
				break
			}
		}
	}
	c.consume(lexer.RIGHT_PAREN, "Expect ')' after parameters.")
	c.consume(lexer.LEFT_BRACE, "Expect '{' before function body.")
	c.block()

	fn := c.endCompiler()
	idx := c.makeConstant(ObjVal(fn))
	c.emitOpByte(OpConstant, idx)
}

func (c *Compiler) pushFunc(ft FuncType, name string) {
	fs := &funcState{
		funcType: ft,
		function: c.heap.NewFunction(name, NewChunk(), 0),
	}
	// Slot 0 is reserved for the callee value itself (see the VM's CALL
	// handling), so it is pre-declared as an unnamed, already-initialized
	// local nobody can refer to by name.
	fs.locals = append(fs.locals, local{name: "", depth: 0})
	c.funcs = append(c.funcs, fs)
}
