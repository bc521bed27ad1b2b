package bytecode

// OpCode identifies a bytecode instruction. Operand sizes are fixed by
// convention rather than encoded per-instruction: slot/index/argc operands
// are a single byte (u8), jump and loop offsets are two bytes (u16,
// big-endian).
type OpCode byte

const (
	// Constants and literals
	OpConstant OpCode = iota
	OpNil
	OpTrue
	OpFalse

	// Variables
	OpGetLocal
	OpSetLocal
	OpGetGlobal
	OpDefineGlobal
	OpSetGlobal

	// Arithmetic and comparison
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate

	// Statements
	OpPrint
	OpEcho
	OpExit
	OpPop

	// Control flow
	OpJump
	OpJumpIfFalse
	OpLoop

	// Functions
	OpCall
	OpReturn

	// Compile-time include bookkeeping (see compiler's transclude handling)
	OpTransclude
)

var opCodeNames = [...]string{
	OpConstant:     "CONSTANT",
	OpNil:          "NIL",
	OpTrue:         "TRUE",
	OpFalse:        "FALSE",
	OpGetLocal:     "GET_LOCAL",
	OpSetLocal:     "SET_LOCAL",
	OpGetGlobal:    "GET_GLOBAL",
	OpDefineGlobal: "DEFINE_GLOBAL",
	OpSetGlobal:    "SET_GLOBAL",
	OpEqual:        "EQUAL",
	OpGreater:      "GREATER",
	OpLess:         "LESS",
	OpAdd:          "ADD",
	OpSubtract:     "SUBTRACT",
	OpMultiply:     "MULTIPLY",
	OpDivide:       "DIVIDE",
	OpNot:          "NOT",
	OpNegate:       "NEGATE",
	OpPrint:        "PRINT",
	OpEcho:         "ECHO",
	OpExit:         "EXIT",
	OpPop:          "POP",
	OpJump:         "JUMP",
	OpJumpIfFalse:  "JUMP_IF_FALSE",
	OpLoop:         "LOOP",
	OpCall:         "CALL",
	OpReturn:       "RETURN",
	OpTransclude:   "TRANSCLUDE",
}

// String renders the opcode's mnemonic, or "UNKNOWN" for a byte outside
// the opcode set.
func (op OpCode) String() string {
	if int(op) < len(opCodeNames) && opCodeNames[op] != "" {
		return opCodeNames[op]
	}
	return "UNKNOWN"
}
