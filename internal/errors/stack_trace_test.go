package errors

import (
	"strings"
	"testing"
)

func TestStackFrame_String(t *testing.T) {
	tests := []struct {
		name     string
		frame    StackFrame
		expected string
	}{
		{
			name:     "script frame",
			frame:    StackFrame{FunctionName: "script", Line: 1},
			expected: "[line 1] in script",
		},
		{
			name:     "named function frame",
			frame:    StackFrame{FunctionName: "fib", Line: 42},
			expected: "[line 42] in fib",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.frame.String()
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_String(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		trace    StackTrace
	}{
		{
			name:     "Empty stack trace",
			trace:    StackTrace{},
			expected: "",
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "script", Line: 1},
			},
			expected: "[line 1] in script",
		},
		{
			name: "Multiple frames, printed top to bottom",
			trace: StackTrace{
				{FunctionName: "script", Line: 20},
				{FunctionName: "foo", Line: 15},
				{FunctionName: "bar", Line: 10},
			},
			expected: "[line 10] in bar\n[line 15] in foo\n[line 20] in script",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.trace.String()
			if result != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_Reverse(t *testing.T) {
	original := StackTrace{
		{FunctionName: "first", Line: 1},
		{FunctionName: "second", Line: 2},
		{FunctionName: "third", Line: 3},
	}

	reversed := original.Reverse()

	if reversed[0].FunctionName != "third" {
		t.Errorf("Expected first frame to be 'third', got %q", reversed[0].FunctionName)
	}
	if reversed[1].FunctionName != "second" {
		t.Errorf("Expected second frame to be 'second', got %q", reversed[1].FunctionName)
	}
	if reversed[2].FunctionName != "first" {
		t.Errorf("Expected third frame to be 'first', got %q", reversed[2].FunctionName)
	}

	if original[0].FunctionName != "first" {
		t.Errorf("Original stack trace was modified")
	}
}

func TestStackTrace_Top(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{name: "Empty stack", trace: StackTrace{}, expected: nil},
		{
			name:     "Single frame",
			trace:    StackTrace{{FunctionName: "script", Line: 1}},
			expected: stringPtr("script"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "script", Line: 20},
				{FunctionName: "foo", Line: 15},
				{FunctionName: "bar", Line: 10},
			},
			expected: stringPtr("bar"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := tt.trace.Top()
			if tt.expected == nil {
				if top != nil {
					t.Errorf("Expected nil, got %v", top)
				}
			} else {
				if top == nil {
					t.Errorf("Expected %q, got nil", *tt.expected)
				} else if top.FunctionName != *tt.expected {
					t.Errorf("Expected %q, got %q", *tt.expected, top.FunctionName)
				}
			}
		})
	}
}

func TestStackTrace_Bottom(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{name: "Empty stack", trace: StackTrace{}, expected: nil},
		{
			name:     "Single frame",
			trace:    StackTrace{{FunctionName: "script", Line: 1}},
			expected: stringPtr("script"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "script", Line: 20},
				{FunctionName: "foo", Line: 15},
				{FunctionName: "bar", Line: 10},
			},
			expected: stringPtr("script"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bottom := tt.trace.Bottom()
			if tt.expected == nil {
				if bottom != nil {
					t.Errorf("Expected nil, got %v", bottom)
				}
			} else {
				if bottom == nil {
					t.Errorf("Expected %q, got nil", *tt.expected)
				} else if bottom.FunctionName != *tt.expected {
					t.Errorf("Expected %q, got %q", *tt.expected, bottom.FunctionName)
				}
			}
		})
	}
}

func TestStackTrace_Depth(t *testing.T) {
	tests := []struct {
		name     string
		trace    StackTrace
		expected int
	}{
		{name: "Empty stack", trace: StackTrace{}, expected: 0},
		{name: "Single frame", trace: StackTrace{{FunctionName: "script"}}, expected: 1},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "script"},
				{FunctionName: "foo"},
				{FunctionName: "bar"},
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth := tt.trace.Depth()
			if depth != tt.expected {
				t.Errorf("Expected depth %d, got %d", tt.expected, depth)
			}
		})
	}
}

func TestNewStackFrame(t *testing.T) {
	frame := NewStackFrame("testFunc", 42)

	if frame.FunctionName != "testFunc" {
		t.Errorf("Expected FunctionName 'testFunc', got %q", frame.FunctionName)
	}
	if frame.Line != 42 {
		t.Errorf("Expected Line 42, got %d", frame.Line)
	}
}

func TestNewStackTrace(t *testing.T) {
	trace := NewStackTrace()

	if trace == nil {
		t.Error("NewStackTrace returned nil")
	}
	if len(trace) != 0 {
		t.Errorf("Expected empty stack trace, got length %d", len(trace))
	}
}

func TestStackTrace_RealWorldScenario(t *testing.T) {
	// Simulate a call stack: script -> processData -> validateInput
	trace := StackTrace{
		{FunctionName: "script", Line: 50},
		{FunctionName: "processData", Line: 30},
		{FunctionName: "validateInput", Line: 10},
	}

	expected := "[line 10] in validateInput\n[line 30] in processData\n[line 50] in script"
	result := trace.String()
	if result != expected {
		t.Errorf("Stack trace string doesn't match.\nExpected:\n%s\nGot:\n%s", expected, result)
	}

	if trace.Depth() != 3 {
		t.Errorf("Expected depth 3, got %d", trace.Depth())
	}

	top := trace.Top()
	if top == nil || top.FunctionName != "validateInput" {
		t.Errorf("Expected top to be validateInput, got %v", top)
	}

	bottom := trace.Bottom()
	if bottom == nil || bottom.FunctionName != "script" {
		t.Errorf("Expected bottom to be script, got %v", bottom)
	}
}

func TestStackTrace_StringFormatMatchesRuntimeError(t *testing.T) {
	// Matches the `[line 1] in script` example from the
	// `print 1 + "a";` type-error scenario.
	trace := StackTrace{
		{FunctionName: "script", Line: 1},
	}

	result := trace.String()
	lines := strings.Split(result, "\n")

	if lines[0] != "[line 1] in script" {
		t.Errorf("Line doesn't match runtime error trace format: %q", lines[0])
	}
}

func stringPtr(s string) *string {
	return &s
}
