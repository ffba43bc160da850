package diag

import (
	"strings"
	"testing"

	"github.com/brendancron/cx/internal/token"
)

func TestCompilerErrorFormatIncludesSourceLineAndCaret(t *testing.T) {
	source := "var x = 1;\nprint(y);\n"
	err := NewCompilerError(token.Position{Line: 2, Column: 7}, "undefined variable: y", source, "main.cx")

	out := err.Format(false)
	if !strings.Contains(out, "main.cx:2:7") {
		t.Errorf("missing file:line:col header, got:\n%s", out)
	}
	if !strings.Contains(out, "print(y);") {
		t.Errorf("missing source line, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret, got:\n%s", out)
	}
	if !strings.Contains(out, "undefined variable: y") {
		t.Errorf("missing message, got:\n%s", out)
	}
}

func TestCompilerErrorFormatWithoutSource(t *testing.T) {
	err := NewCompilerError(token.Position{Line: 1, Column: 1}, "boom", "", "")
	out := err.Format(false)
	if !strings.Contains(out, "boom") {
		t.Errorf("expected message in output, got:\n%s", out)
	}
}

func TestWrapExtractsPosition(t *testing.T) {
	inner := &UnexpectedTokenError{Found: "+", Expected: "identifier", Pos: token.Position{Line: 3, Column: 5}}
	wrapped := Wrap(inner, "", "")
	if wrapped.Pos.Line != 3 || wrapped.Pos.Column != 5 {
		t.Errorf("Wrap did not extract position, got %+v", wrapped.Pos)
	}
}

func TestStackTraceReverseOrdersInnermostFirst(t *testing.T) {
	trace := StackTrace{
		NewStackFrame("main", token.Position{Line: 1}),
		NewStackFrame("fib", token.Position{Line: 2}),
	}
	rev := trace.Reverse()
	if rev[0].FunctionName != "fib" || rev[1].FunctionName != "main" {
		t.Errorf("Reverse() = %+v, want innermost (fib) first", rev)
	}
}

func TestCallStackOverflow(t *testing.T) {
	cs := NewCallStack(2)
	if err := cs.Push("a", token.Position{}); err != nil {
		t.Fatal(err)
	}
	if err := cs.Push("b", token.Position{}); err != nil {
		t.Fatal(err)
	}
	if err := cs.Push("c", token.Position{}); err == nil {
		t.Fatal("expected stack overflow error")
	}
}

func TestCallStackPushPop(t *testing.T) {
	cs := NewCallStack(0)
	_ = cs.Push("f", token.Position{Line: 1})
	if cs.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", cs.Depth())
	}
	cs.Pop()
	if cs.Depth() != 0 {
		t.Fatalf("depth = %d, want 0", cs.Depth())
	}
}
