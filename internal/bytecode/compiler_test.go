package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileOK(t *testing.T, source string) *ObjFunction {
	t.Helper()
	heap := NewHeap()
	fn, errs := Compile(source, 1, heap, nil)
	require.Empty(t, errs, "expected no compile errors")
	require.NotNil(t, fn)
	return fn
}

func TestCompile_ChunkInvariant(t *testing.T) {
	fn := compileOK(t, `print 1 + 2;`)
	assert.Equal(t, len(fn.Chunk.Code), len(fn.Chunk.Lines), "code and lines must stay parallel")
}

func TestCompile_SimpleArithmeticEmitsExpectedOps(t *testing.T) {
	fn := compileOK(t, `print 1 + 2 * 3;`)
	ops := opNames(fn.Chunk.Code)
	assert.Contains(t, ops, OpMultiply.String())
	assert.Contains(t, ops, OpAdd.String())
	assert.Contains(t, ops, OpPrint.String())
}

func TestCompile_MissingSemicolonIsCompileError(t *testing.T) {
	heap := NewHeap()
	_, errs := Compile(`print 1`, 1, heap, nil)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "Expect ';'")
}

func TestCompile_ReturnAtTopLevelIsError(t *testing.T) {
	heap := NewHeap()
	_, errs := Compile(`return 1;`, 1, heap, nil)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "Can't return from top-level code.")
}

func TestCompile_ReadLocalInOwnInitializerIsError(t *testing.T) {
	heap := NewHeap()
	_, errs := Compile(`{ var a = a; }`, 1, heap, nil)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "Cannot read local variable in its own initializer.")
}

func TestCompile_DuplicateLocalInSameScopeIsError(t *testing.T) {
	heap := NewHeap()
	_, errs := Compile(`{ var a = 1; var a = 2; }`, 1, heap, nil)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "Already a variable with this name in this scope.")
}

func TestCompile_InvalidAssignmentTargetIsError(t *testing.T) {
	heap := NewHeap()
	_, errs := Compile(`1 + 2 = 3;`, 1, heap, nil)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "Invalid assignment target.")
}

func TestCompile_MalformedHexEscapeIsError(t *testing.T) {
	heap := NewHeap()
	_, errs := Compile(`print "\xZZ";`, 1, heap, nil)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "Invalid hex escape sequence.")
}

func TestCompile_CompoundComparisonOperators(t *testing.T) {
	fn := compileOK(t, `print 1 != 2; print 1 >= 2; print 1 <= 2;`)
	ops := opNames(fn.Chunk.Code)
	assert.Contains(t, ops, OpEqual.String())
	assert.Contains(t, ops, OpNot.String())
	assert.Contains(t, ops, OpGreater.String())
	assert.Contains(t, ops, OpLess.String())
}

func TestCompile_Transclude(t *testing.T) {
	heap := NewHeap()
	loader := mapLoader{"inc.lox": `var included = 1;`}
	fn, errs := Compile(`transclude "inc.lox"; print included;`, 1, heap, loader)
	require.Empty(t, errs)
	ops := opNames(fn.Chunk.Code)
	assert.Contains(t, ops, OpTransclude.String())
}

func TestCompile_TranscludeWithoutLoaderIsError(t *testing.T) {
	heap := NewHeap()
	_, errs := Compile(`transclude "inc.lox";`, 1, heap, nil)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "transclude is not supported")
}

// opNames walks chunk code collecting a flat list of opcode mnemonics,
// skipping over each opcode's operand bytes. It does not attempt to
// decode a full disassembly (out of scope per the specification); it
// exists only so tests can assert which opcodes were emitted.
func opNames(code []byte) []string {
	var names []string
	i := 0
	for i < len(code) {
		op := OpCode(code[i])
		names = append(names, op.String())
		switch op {
		case OpConstant, OpGetLocal, OpSetLocal, OpGetGlobal, OpDefineGlobal,
			OpSetGlobal, OpCall, OpEcho:
			i += 2
		case OpJump, OpJumpIfFalse, OpLoop:
			i += 3
		default:
			i++
		}
	}
	return names
}

type mapLoader map[string]string

func (m mapLoader) Load(path string) (string, error) {
	return m[path], nil
}
