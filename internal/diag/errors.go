// Package diag implements the closed error hierarchy of spec.md §7 and
// formats them with source context for the CLI, grounded on the teacher's
// internal/errors package (CompilerError + caret-pointing source display).
package diag

import (
	"fmt"
	"strings"

	"github.com/brendancron/cx/internal/lexer"
	"github.com/brendancron/cx/internal/token"
)

// Scan errors (§7: lexer).
type UnterminatedStringError struct{ Pos token.Position }

func (e *UnterminatedStringError) Error() string {
	return fmt.Sprintf("unterminated string literal at %s", e.Pos)
}

type UnexpectedCharacterError struct {
	Pos token.Position
	Ch  rune
}

func (e *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected character %q at %s", e.Ch, e.Pos)
}

// Parse errors (§7: parser). Both are non-recoverable: the parser stops at
// the first one.
type UnexpectedTokenError struct {
	Found    string
	Expected string
	Pos      token.Position
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token %s at %s: expected %s", e.Found, e.Pos, e.Expected)
}

type UnexpectedEOFError struct {
	Expected string
	Pos      token.Position
}

func (e *UnexpectedEOFError) Error() string {
	return fmt.Sprintf("unexpected end of file at %s: expected %s", e.Pos, e.Expected)
}

// Eval errors (§7: interpreter).
type UnknownStructTypeError struct{ Name string }

func (e *UnknownStructTypeError) Error() string {
	return fmt.Sprintf("unknown struct type: %s", e.Name)
}

type UndefinedVariableError struct{ Name string }

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable: %s", e.Name)
}

type TypeError struct{ Expected string }

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error: expected %s", e.Expected)
}

type NonFunctionCallError struct{ Name string }

func (e *NonFunctionCallError) Error() string {
	return fmt.Sprintf("%s is not a function", e.Name)
}

type ArgumentMismatchError struct {
	Name     string
	Got      int
	Expected int
}

func (e *ArgumentMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %d argument(s), got %d", e.Name, e.Expected, e.Got)
}

// Meta errors (§7: meta-processor). Eval wraps a forwarded Eval error from
// a meta-time interpreter invocation.
type EmbedFailedError struct {
	Path   string
	Reason string
}

func (e *EmbedFailedError) Error() string {
	return fmt.Sprintf("embed failed for %q: %s", e.Path, e.Reason)
}

type UnknownTypeError struct{ Name string }

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type: %s", e.Name)
}

type UnimplementedError struct{ Description string }

func (e *UnimplementedError) Error() string {
	return fmt.Sprintf("unimplemented: %s", e.Description)
}

type MetaEvalError struct{ Err error }

func (e *MetaEvalError) Error() string { return e.Err.Error() }
func (e *MetaEvalError) Unwrap() error { return e.Err }

// CompilerError wraps any of the above with source context for display.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     token.Position
}

func NewCompilerError(pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, Message: message, Source: source, File: file}
}

// Wrap builds a CompilerError from any pipeline error. Errors that don't
// carry a token.Position print without source context.
func Wrap(err error, source, file string) *CompilerError {
	return &CompilerError{Message: err.Error(), Source: source, File: file, Pos: positionOf(err)}
}

func positionOf(err error) token.Position {
	switch e := err.(type) {
	case *UnterminatedStringError:
		return e.Pos
	case *UnexpectedCharacterError:
		return e.Pos
	case *lexer.UnterminatedStringError:
		return e.Pos
	case *lexer.UnexpectedCharacterError:
		return e.Pos
	case *UnexpectedTokenError:
		return e.Pos
	case *UnexpectedEOFError:
		return e.Pos
	}
	return token.Position{}
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders "File:Line:Column", the source line, and a caret pointing
// at the column, optionally ANSI-colored.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "Error at %d:%d\n", e.Pos.Line, e.Pos.Column)
	}

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")

		col := e.Pos.Column - 1
		if col < 0 {
			col = 0
		}
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
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

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
