// Package errors formats compile-time and runtime failures for the
// scripting engine, including the call-frame trace a runtime error
// unwinds while aborting execution.
package errors

import (
	"fmt"
	"strings"
)

// StackFrame captures one call-frame's worth of location info at the
// moment a runtime error unwound it: the line the frame was executing,
// and the name of the function it belongs to ("script" for the
// implicit top-level frame).
type StackFrame struct {
	FunctionName string
	Line         int
}

// String renders a frame the way the VM prints it while unwinding:
// "[line L] in name".
func (sf StackFrame) String() string {
	return fmt.Sprintf("[line %d] in %s", sf.Line, sf.FunctionName)
}

// StackTrace is a complete call stack, ordered oldest (bottom, the
// script frame) to newest (top, the frame where the error occurred).
type StackTrace []StackFrame

// String prints the trace top-to-bottom, one frame per line, which is
// the order the VM actually walks it in while reporting a runtime
// error.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := len(st) - 1; i >= 0; i-- {
		sb.WriteString(st[i].String())
		if i > 0 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Reverse returns a new StackTrace with frame order flipped.
func (st StackTrace) Reverse() StackTrace {
	reversed := make(StackTrace, len(st))
	for i, frame := range st {
		reversed[len(st)-1-i] = frame
	}
	return reversed
}

// Top returns the most recently entered frame, or nil if the trace is
// empty.
func (st StackTrace) Top() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[len(st)-1]
}

// Bottom returns the script's own frame, or nil if the trace is empty.
func (st StackTrace) Bottom() *StackFrame {
	if len(st) == 0 {
		return nil
	}
	return &st[0]
}

// Depth returns the number of frames in the trace.
func (st StackTrace) Depth() int {
	return len(st)
}

func NewStackFrame(functionName string, line int) StackFrame {
	return StackFrame{FunctionName: functionName, Line: line}
}

func NewStackTrace() StackTrace {
	return make(StackTrace, 0)
}
