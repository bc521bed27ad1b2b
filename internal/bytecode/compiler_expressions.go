package bytecode

import (
	"strconv"

	"github.com/cwbudde/slox/internal/lexer"
)

// Precedence is the Pratt parser's operator-precedence ladder. Binary
// parselets recurse at precedence+1, which is what gives left-associative
// operators their associativity: `a - b - c` parses as `(a - b) - c`
// because after consuming `-` the right operand is parsed no lower than
// one notch above PrecTerm, so it can't itself swallow a trailing `- c`.
type Precedence int

const (
	PrecNone       Precedence = iota
	PrecAssignment            // =
	PrecOr                    // or
	PrecAnd                   // and
	PrecEquality              // == !=
	PrecComparison            // < > <= >=
	PrecTerm                  // + -
	PrecFactor                // * /
	PrecUnary                 // ! -
	PrecCall                  // . ()
	PrecPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// rules is the statically known parselet table the design notes call for:
// each token kind maps to an optional prefix parselet, an optional infix
// parselet, and the precedence to use when that token appears as an
// infix/postfix operator.
var rules map[lexer.TokenType]parseRule

func init() {
	rules = map[lexer.TokenType]parseRule{
		lexer.LEFT_PAREN:    {prefix: grouping, infix: call, precedence: PrecCall},
		lexer.MINUS:         {prefix: unary, infix: binary, precedence: PrecTerm},
		lexer.PLUS:          {infix: binary, precedence: PrecTerm},
		lexer.SLASH:         {infix: binary, precedence: PrecFactor},
		lexer.STAR:          {infix: binary, precedence: PrecFactor},
		lexer.BANG:          {prefix: unary},
		lexer.BANG_EQUAL:    {infix: binary, precedence: PrecEquality},
		lexer.EQUAL_EQUAL:   {infix: binary, precedence: PrecEquality},
		lexer.GREATER:       {infix: binary, precedence: PrecComparison},
		lexer.GREATER_EQUAL: {infix: binary, precedence: PrecComparison},
		lexer.LESS:          {infix: binary, precedence: PrecComparison},
		lexer.LESS_EQUAL:    {infix: binary, precedence: PrecComparison},
		lexer.IDENTIFIER:    {prefix: variable},
		lexer.STRING:        {prefix: stringLiteral},
		lexer.NUMBER:        {prefix: number},
		lexer.AND:           {infix: and_, precedence: PrecAnd},
		lexer.OR:            {infix: or_, precedence: PrecOr},
		lexer.FALSE:         {prefix: literal},
		lexer.TRUE:          {prefix: literal},
		lexer.NIL:           {prefix: literal},
	}
}

func getRule(kind lexer.TokenType) parseRule {
	return rules[kind]
}

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	rule := getRule(c.previous.Kind)
	if rule.prefix == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := prec <= PrecAssignment
	rule.prefix(c, canAssign)

	for prec <= getRule(c.current.Kind).precedence {
		c.advance()
		infix := getRule(c.previous.Kind).infix
		infix(c, canAssign)
	}

	if canAssign && c.match(lexer.EQUAL) {
		c.error("Invalid assignment target.")
	}
}

func number(c *Compiler, _ bool) {
	n, err := strconv.ParseFloat(c.previous.Lexeme(), 64)
	if err != nil {
		c.error("Invalid number literal.")
		return
	}
	c.emitConstant(NumberVal(n))
}

// stringLiteral strips the delimiter quotes and interprets escapes: a
// double-quoted literal recognizes \n \r \t \" \\ and \xHH; a
// single-quoted literal recognizes only \'. A malformed \x escape (not
// followed by exactly two hex digits) is a compile error rather than
// being silently misinterpreted. decodeString carries the actual rules so
// transclude's path literal can reuse them.
func stringLiteral(c *Compiler, _ bool) {
	decoded, ok := c.decodeString(c.previous.Lexeme())
	if !ok {
		return
	}
	c.emitConstant(ObjVal(c.heap.InternString(decoded)))
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func literal(c *Compiler, _ bool) {
	switch c.previous.Kind {
	case lexer.FALSE:
		c.emitOp(OpFalse)
	case lexer.TRUE:
		c.emitOp(OpTrue)
	case lexer.NIL:
		c.emitOp(OpNil)
	}
}

func grouping(c *Compiler, _ bool) {
	c.expression()
	c.consume(lexer.RIGHT_PAREN, "Expect ')' after expression.")
}

func unary(c *Compiler, _ bool) {
	opKind := c.previous.Kind
	c.parsePrecedence(PrecUnary)

	switch opKind {
	case lexer.BANG:
		c.emitOp(OpNot)
	case lexer.MINUS:
		c.emitOp(OpNegate)
	}
}

func binary(c *Compiler, _ bool) {
	opKind := c.previous.Kind
	rule := getRule(opKind)
	c.parsePrecedence(rule.precedence + 1)

	switch opKind {
	case lexer.BANG_EQUAL:
		c.emitOp(OpEqual)
		c.emitOp(OpNot)
	case lexer.EQUAL_EQUAL:
		c.emitOp(OpEqual)
	case lexer.GREATER:
		c.emitOp(OpGreater)
	case lexer.GREATER_EQUAL:
		c.emitOp(OpLess)
		c.emitOp(OpNot)
	case lexer.LESS:
		c.emitOp(OpLess)
	case lexer.LESS_EQUAL:
		c.emitOp(OpGreater)
		c.emitOp(OpNot)
	case lexer.PLUS:
		c.emitOp(OpAdd)
	case lexer.MINUS:
		c.emitOp(OpSubtract)
	case lexer.STAR:
		c.emitOp(OpMultiply)
	case lexer.SLASH:
		c.emitOp(OpDivide)
	}
}

func and_(c *Compiler, _ bool) {
	endJump := c.emitJump(OpJumpIfFalse)
	c.emitOp(OpPop)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

func or_(c *Compiler, _ bool) {
	elseJump := c.emitJump(OpJumpIfFalse)
	endJump := c.emitJump(OpJump)

	c.patchJump(elseJump)
	c.emitOp(OpPop)

	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}

func call(c *Compiler, _ bool) {
	argc := c.argumentList()
	c.emitOpByte(OpCall, argc)
}

func (c *Compiler) argumentList() byte {
	var argc int
	if !c.check(lexer.RIGHT_PAREN) {
		for {
			c.expression()
			if argc == 255 {
				c.error("Cannot have more than 255 arguments.")
			}
			argc++
			if !c.match(lexer.COMMA) {
				break
			}
		}
	}
	c.consume(lexer.RIGHT_PAREN, "Expect ')' after arguments.")
	return byte(argc)
}

func variable(c *Compiler, canAssign bool) {
	c.namedVariable(c.previous.Lexeme(), canAssign)
}

func (c *Compiler) namedVariable(name string, canAssign bool) {
	var getOp, setOp OpCode
	arg := c.resolveLocal(c.cur(), name)
	if arg != -1 {
		getOp, setOp = OpGetLocal, OpSetLocal
	} else {
		arg = int(c.identifierConstant(name))
		getOp, setOp = OpGetGlobal, OpSetGlobal
	}

	if canAssign && c.match(lexer.EQUAL) {
		c.expression()
		c.emitOpByte(setOp, byte(arg))
	} else {
		c.emitOpByte(getOp, byte(arg))
	}
}
