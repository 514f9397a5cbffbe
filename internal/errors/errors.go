// Package errors implements this interpreter's error taxonomy: one typed
// error carrying a Kind, a message, and enough source context to render
// a caret-pointing diagnostic.
package errors

import (
	"fmt"
	"strings"

	"github.com/cwbudde/gotla/internal/token"
)

// Kind names one of the evaluator's error categories.
type Kind int

const (
	ParseError Kind = iota
	UnboundIdentifier
	TypeMismatch
	DomainError
	NoWitness
	NonexhaustiveCase
	AssertionFailure
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case UnboundIdentifier:
		return "UnboundIdentifier"
	case TypeMismatch:
		return "TypeMismatch"
	case DomainError:
		return "DomainError"
	case NoWitness:
		return "NoWitness"
	case NonexhaustiveCase:
		return "NonexhaustiveCase"
	case AssertionFailure:
		return "AssertionFailure"
	default:
		return "Error"
	}
}

// EvalError is the one error type the core ever raises; Kind tells a
// caller which category it falls into.
type EvalError struct {
	Kind    Kind
	Message string
	Pos     token.Position
	Source  string
	File    string
}

// New builds an EvalError of the given kind at pos.
func New(kind Kind, pos token.Position, format string, args ...any) *EvalError {
	return &EvalError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// WithSource attaches source text and a file name for caret rendering,
// returning the same error for chaining.
func (e *EvalError) WithSource(source, file string) *EvalError {
	e.Source = source
	e.File = file
	return e
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return e.Format(false)
}

// Format renders a position header, the offending source line, and a
// caret. If color is true, ANSI codes highlight the caret and kind tag.
func (e *EvalError) Format(color bool) string {
	var sb strings.Builder

	loc := fmt.Sprintf("%d:%d", e.Pos.Line, e.Pos.Column)
	if e.File != "" {
		sb.WriteString(fmt.Sprintf("%s error in %s:%s\n", e.Kind, e.File, loc))
	} else {
		sb.WriteString(fmt.Sprintf("%s at %s\n", e.Kind, loc))
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(e.Pos.Column-1, 0)))
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

func (e *EvalError) sourceLine(lineNum int) string {
	if e.Source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FormatErrors renders a batch of errors as a numbered list.
func FormatErrors(errs []*EvalError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("evaluation failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}
