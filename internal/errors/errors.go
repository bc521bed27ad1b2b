// Package errors provides error formatting utilities for the compiler
// and VM. It formats compile errors with the failing source line as
// context, and formats the runtime error trace the VM prints while
// unwinding the call-frame stack.
package errors

import (
	"fmt"
	"strings"
)

// CompilerError represents a single compile-time failure with enough
// context to print the offending source line.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Line    int
}

func NewCompilerError(line int, message, source, file string) *CompilerError {
	return &CompilerError{Line: line, Message: message, Source: source, File: file}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context. If color is
// true, ANSI color codes are used for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d\n", e.File, e.Line))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d\n", e.Line))
	}

	sourceLine := e.getSourceLine(e.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// getSourceLine extracts a specific line from the source code. Lines
// are 1-indexed.
func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}

	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}

	return lines[lineNum-1]
}

// FormatErrors formats multiple compile errors the way the compiler
// reports a batch of accumulated failures: errors never partially
// execute, so every one collected during a single compile is printed
// together.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}

	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compilation failed with %d error(s):\n\n", len(errs)))

	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}

// RuntimeError is a failure detected while executing bytecode: an
// error message plus the stack trace captured while unwinding.
type RuntimeError struct {
	Message string
	Trace   StackTrace
}

func (e *RuntimeError) Error() string {
	return e.Format()
}

// Format renders the message followed by the unwound trace, matching
// the VM's `message\n[line L] in name\n...` error-stream output.
func (e *RuntimeError) Format() string {
	if len(e.Trace) == 0 {
		return e.Message
	}
	return e.Message + "\n" + e.Trace.String()
}
