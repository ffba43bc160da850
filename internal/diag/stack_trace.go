package diag

import (
	"fmt"
	"strings"

	"github.com/brendancron/cx/internal/token"
)

// StackFrame records one call-stack entry for diagnostic reporting,
// adapted from the teacher's internal/errors/stack_trace.go.
type StackFrame struct {
	FunctionName string
	Pos          token.Position
}

// NewStackFrame constructs a StackFrame.
func NewStackFrame(functionName string, pos token.Position) StackFrame {
	return StackFrame{FunctionName: functionName, Pos: pos}
}

// String renders "FunctionName [line: N, column: M]".
func (f StackFrame) String() string {
	return fmt.Sprintf("%s [line: %d, column: %d]", f.FunctionName, f.Pos.Line, f.Pos.Column)
}

// StackTrace is an ordered sequence of call frames, oldest (outermost)
// first.
type StackTrace []StackFrame

// NewStackTrace creates an empty StackTrace.
func NewStackTrace() StackTrace { return StackTrace{} }

// Top returns the innermost (most recent) frame, or the zero value if
// empty.
func (t StackTrace) Top() StackFrame {
	if len(t) == 0 {
		return StackFrame{}
	}
	return t[len(t)-1]
}

// Bottom returns the outermost frame, or the zero value if empty.
func (t StackTrace) Bottom() StackFrame {
	if len(t) == 0 {
		return StackFrame{}
	}
	return t[0]
}

// Depth returns the number of frames.
func (t StackTrace) Depth() int { return len(t) }

// Reverse returns a copy of t with frames ordered innermost-first, the
// conventional order for printing a trace.
func (t StackTrace) Reverse() StackTrace {
	out := make(StackTrace, len(t))
	for i, f := range t {
		out[len(t)-1-i] = f
	}
	return out
}

// String renders one frame per line, innermost first.
func (t StackTrace) String() string {
	var sb strings.Builder
	for _, f := range t.Reverse() {
		sb.WriteString("  at ")
		sb.WriteString(f.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// CallStack manages the interpreter's function call stack for recursion
// tracking and stack-overflow detection, adapted from the teacher's
// internal/interp/runtime/callstack.go.
type CallStack struct {
	frames   StackTrace
	maxDepth int
}

// NewCallStack creates a call stack with the given maximum depth; a
// non-positive maxDepth defaults to 1024.
func NewCallStack(maxDepth int) *CallStack {
	if maxDepth <= 0 {
		maxDepth = 1024
	}
	return &CallStack{frames: NewStackTrace(), maxDepth: maxDepth}
}

// Push adds a frame, returning an error if the max depth is exceeded.
func (cs *CallStack) Push(functionName string, pos token.Position) error {
	if len(cs.frames) >= cs.maxDepth {
		return fmt.Errorf("stack overflow: maximum recursion depth (%d) exceeded in function %q", cs.maxDepth, functionName)
	}
	cs.frames = append(cs.frames, NewStackFrame(functionName, pos))
	return nil
}

// Pop removes the innermost frame; a no-op on an empty stack.
func (cs *CallStack) Pop() {
	if len(cs.frames) > 0 {
		cs.frames = cs.frames[:len(cs.frames)-1]
	}
}

// Frames returns a copy of all frames, oldest first.
func (cs *CallStack) Frames() StackTrace {
	out := make(StackTrace, len(cs.frames))
	copy(out, cs.frames)
	return out
}

// Depth returns the current stack depth.
func (cs *CallStack) Depth() int { return len(cs.frames) }
