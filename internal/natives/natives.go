// Package natives registers the small set of host-provided functions the
// VM can dispatch to through an ordinary CALL, demonstrating both the
// NativeResult error channel and callback re-entry (see call, below)
// without attempting the full native surface (file I/O, process control,
// regex, user arrays/hashes) the specification explicitly keeps abstract.
package natives

import (
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/slox/internal/bytecode"
)

// Register installs the core native functions into vm's globals, the
// same way the original source's defineNative calls install its much
// larger native surface — just against this package's intentionally
// small subset.
func Register(vm *bytecode.VM, heap *bytecode.Heap) {
	vm.DefineNative("clock", 0, clock)
	vm.DefineNative("type", 1, typeOf(heap))
	vm.DefineNative("val_is_string", 1, valIsString)
	vm.DefineNative("val_is_number", 1, valIsNumber)
	vm.DefineNative("number_absolute", 1, numberAbsolute)
	vm.DefineNative("number_minimum", 2, numberMinimum)
	vm.DefineNative("number_maximum", 2, numberMaximum)
	vm.DefineNative("string_length", 1, stringLength)
	vm.DefineNative("call", -1, call(vm))
}

// call invokes args[0] (a function or native value) with the remaining
// arguments, re-entering the VM through CallCallback. It is the one
// native in this set that demonstrates callback re-entry: a native
// accepting a comparator, visitor, or other host-held function value and
// calling back into interpreted code rather than only being called from
// it. It is registered with arity -1 (unchecked by the VM) since the
// callee's own arity, not this native's, governs the argument count.
func call(vm *bytecode.VM) bytecode.NativeFn {
	return func(args []bytecode.Value) bytecode.NativeResult {
		if len(args) < 1 {
			return argTypeError(0, "function")
		}
		result, err := vm.CallCallback(args[0], args[1:])
		if err != nil {
			return bytecode.Fail(bytecode.ErrDomain, err.Error(), nil)
		}
		return bytecode.Ok(result)
	}
}

func clock(_ []bytecode.Value) bytecode.NativeResult {
	return bytecode.Ok(bytecode.NumberVal(float64(time.Now().UnixNano()) / float64(time.Second)))
}

func typeOf(heap *bytecode.Heap) bytecode.NativeFn {
	return func(args []bytecode.Value) bytecode.NativeResult {
		return bytecode.Ok(bytecode.ObjVal(heap.InternString(bytecode.TypeName(args[0]))))
	}
}

func valIsString(args []bytecode.Value) bytecode.NativeResult {
	_, ok := stringArg(args[0])
	return bytecode.Ok(bytecode.BoolVal(ok))
}

func valIsNumber(args []bytecode.Value) bytecode.NativeResult {
	return bytecode.Ok(bytecode.BoolVal(args[0].Type == bytecode.ValNumber))
}

func numberAbsolute(args []bytecode.Value) bytecode.NativeResult {
	n, ok := numberArg(args[0])
	if !ok {
		return argTypeError(0, "number")
	}
	return bytecode.Ok(bytecode.NumberVal(math.Abs(n)))
}

func numberMinimum(args []bytecode.Value) bytecode.NativeResult {
	a, aok := numberArg(args[0])
	b, bok := numberArg(args[1])
	if !aok {
		return argTypeError(0, "number")
	}
	if !bok {
		return argTypeError(1, "number")
	}
	return bytecode.Ok(bytecode.NumberVal(math.Min(a, b)))
}

func numberMaximum(args []bytecode.Value) bytecode.NativeResult {
	a, aok := numberArg(args[0])
	b, bok := numberArg(args[1])
	if !aok {
		return argTypeError(0, "number")
	}
	if !bok {
		return argTypeError(1, "number")
	}
	return bytecode.Ok(bytecode.NumberVal(math.Max(a, b)))
}

// stringLength fails with a structured NativeResult on a non-string
// argument, as the number_* natives do on non-numbers, exercising the
// VM's FError interception path (see bytecode.VM's native CALL handling).
func stringLength(args []bytecode.Value) bytecode.NativeResult {
	s, ok := stringArg(args[0])
	if !ok {
		return argTypeError(0, "string")
	}
	return bytecode.Ok(bytecode.NumberVal(float64(len(s))))
}

func numberArg(v bytecode.Value) (float64, bool) {
	if v.Type != bytecode.ValNumber {
		return 0, false
	}
	return v.Number, true
}

func stringArg(v bytecode.Value) (string, bool) {
	if v.Type != bytecode.ValObj {
		return "", false
	}
	s, ok := v.Obj.(*bytecode.ObjString)
	if !ok {
		return "", false
	}
	return s.Chars, true
}

func argTypeError(position int, wantType string) bytecode.NativeResult {
	return bytecode.Fail(bytecode.ErrArgType,
		fmt.Sprintf("argument %d must be a %s", position+1, wantType), nil)
}
