// Package bytecode implements the single-pass Pratt-precedence compiler and
// the stack-based bytecode virtual machine that executes its output. The
// compiler and the VM are split across files in this one package because
// they only make sense against each other: the compiler emits opcodes the
// VM interprets, and both read and write the same Value/Object model.
package bytecode

import (
	"fmt"
	"math"
	"strconv"
)

// ValueType tags a Value's variant.
type ValueType byte

const (
	ValNil ValueType = iota
	ValBool
	ValNumber
	ValObj
)

// Value is the tagged union every bytecode operand, local, global, and
// constant is stored as. Only one of the fields beyond Type is meaningful
// for a given Type.
type Value struct {
	Obj    Object
	Type   ValueType
	Bool   bool
	Number float64
}

// NilVal is the singleton nil value.
var NilVal = Value{Type: ValNil}

// BoolVal wraps a boolean.
func BoolVal(b bool) Value { return Value{Type: ValBool, Bool: b} }

// NumberVal wraps a 64-bit float.
func NumberVal(n float64) Value { return Value{Type: ValNumber, Number: n} }

// ObjVal wraps a heap object reference.
func ObjVal(o Object) Value { return Value{Type: ValObj, Obj: o} }

// IsNil reports whether v is the nil value.
func (v Value) IsNil() bool { return v.Type == ValNil }

// IsFalsey implements the language's truthiness rule: nil and false are
// falsey, every other value — including 0, "", and empty collections — is
// truthy.
func (v Value) IsFalsey() bool {
	return v.Type == ValNil || (v.Type == ValBool && !v.Bool)
}

// ValuesEqual implements value equality. Numbers compare by IEEE-754
// bit semantics (so NaN != NaN); objects other than strings compare by
// identity; strings compare by identity too, but since they are interned,
// identity and content equality coincide.
func ValuesEqual(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case ValNil:
		return true
	case ValBool:
		return a.Bool == b.Bool
	case ValNumber:
		return a.Number == b.Number
	case ValObj:
		return a.Obj == b.Obj
	default:
		return false
	}
}

// Print renders a Value the way the language's `print`/`echo` statements
// do: nil, true/false, numbers as formatNumber renders them, raw string
// contents, and <fn name>/<script>/<native fn> for callables.
func Print(v Value) string {
	switch v.Type {
	case ValNil:
		return "nil"
	case ValBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValNumber:
		return formatNumber(v.Number)
	case ValObj:
		return printObject(v.Obj)
	default:
		return "<invalid value>"
	}
}

// formatNumber prints integral floats below 1e15 in magnitude without a
// fractional part, and every other finite number with at most 15
// significant digits (like C's "%.15g"), so a printed value does not
// always read back to the identical float64.
func formatNumber(n float64) string {
	if math.IsNaN(n) {
		return "nan"
	}
	if math.IsInf(n, 1) {
		return "inf"
	}
	if math.IsInf(n, -1) {
		return "-inf"
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', 15, 64)
}

func printObject(o Object) string {
	switch obj := o.(type) {
	case *ObjString:
		return obj.Chars
	case *ObjFunction:
		if obj.Name == "" {
			return "<script>"
		}
		return fmt.Sprintf("<fn %s>", obj.Name)
	case *ObjNative:
		return "<native fn>"
	case *ObjUserHash:
		return "<hash>"
	case *ObjUserArray:
		return "<array>"
	case *ObjFileHandle:
		return "<file>"
	case *ObjError:
		return fmt.Sprintf("<error %s>", obj.Kind)
	default:
		return "<object>"
	}
}

// TypeName returns the value's runtime type name, used by native argument
// type checking and by the `type` native.
func TypeName(v Value) string {
	switch v.Type {
	case ValNil:
		return "nil"
	case ValBool:
		return "bool"
	case ValNumber:
		return "number"
	case ValObj:
		switch v.Obj.(type) {
		case *ObjString:
			return "string"
		case *ObjFunction, *ObjNative:
			return "function"
		case *ObjUserHash:
			return "hash"
		case *ObjUserArray:
			return "array"
		case *ObjFileHandle:
			return "filehandle"
		case *ObjError:
			return "error"
		}
	}
	return "unknown"
}
